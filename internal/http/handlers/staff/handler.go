package staff

import (
	"github.com/sdrescue/trashtrack/internal/provider"
)

// Handler serves the staff-facing API endpoints.
type Handler struct {
	*provider.Container
}

// New creates the handler with its dependency container.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
