package domain

import (
	"context"
	"io"
)

// ServicePort defines the service contract for audio resolution
type ServicePort interface {
	// Resolve classifies rawRef as a video reference and walks the
	// registered strategies for its metadata
	Resolve(ctx context.Context, rawRef string) (Result, error)
	// Transcode pipes the source media through the mp3 encoder into w,
	// returning the bytes written before completion or failure
	Transcode(ctx context.Context, sourceMediaURL string, w io.Writer) (int64, error)
}
