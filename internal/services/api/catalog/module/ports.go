package module

import (
	"tunepipe/internal/services/api/catalog/domain"
)

// Ports exposes the catalog service to other modules
type Ports struct {
	Service domain.ServicePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
