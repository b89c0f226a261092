package module

import (
	"tunepipe/internal/services/api/audio/domain"
)

// Ports exposes the audio service to other modules
type Ports struct {
	Service domain.ServicePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
