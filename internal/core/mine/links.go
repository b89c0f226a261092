package mine

import "strings"

// LinkType is the fixed enumeration for classified download links
type LinkType string

const (
	// LinkGoogleDrive is a drive.google.com hosted file
	LinkGoogleDrive LinkType = "google_drive"
	// LinkMega is a mega.nz hosted file
	LinkMega LinkType = "mega"
	// LinkMediafire is a mediafire hosted file
	LinkMediafire LinkType = "mediafire"
	// LinkDropbox is a dropbox hosted file
	LinkDropbox LinkType = "dropbox"
	// LinkStream is an in-browser playback link
	LinkStream LinkType = "stream"
	// LinkDownload is the default direct download classification
	LinkDownload LinkType = "download"
)

// hostTypes maps known file-host markers to their type, checked before any
// text heuristics so hosting wins over wording
var hostTypes = []struct {
	marker string
	typ    LinkType
}{
	{"drive.google.", LinkGoogleDrive},
	{"drive.", LinkGoogleDrive},
	{"mega.", LinkMega},
	{"mediafire", LinkMediafire},
	{"dropbox", LinkDropbox},
}

// ClassifyLink buckets a hyperlink by host first, then by visible text
func ClassifyLink(text, url string) LinkType {
	lower := strings.ToLower(url)
	for _, h := range hostTypes {
		if strings.Contains(lower, h.marker) {
			return h.typ
		}
	}
	if strings.Contains(strings.ToLower(text), "watch") {
		return LinkStream
	}
	return LinkDownload
}

// ExtractValue returns the text following label up to the next line break,
// trimmed. The second return distinguishes a missing label from a present but
// empty value
func ExtractValue(label, text string) (string, bool) {
	idx := strings.Index(text, label)
	if idx < 0 {
		return "", false
	}
	rest := text[idx+len(label):]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}
	return strings.TrimSpace(rest), true
}
