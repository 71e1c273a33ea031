package endpoint

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

// Error is a coded registry/transport-level error, distinct from the
// parameter errors the validation core produces.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

const (
	ErrResourceNotFound = "resource_not_found"
	ErrRequestFailed    = "request_failed"
)

// Registry maps resource names to their clients.
type Registry struct {
	endpoints map[Resource]Endpoint
	mu        sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{endpoints: make(map[Resource]Endpoint)}
}

// Register adds a resource client to the registry.
func (r *Registry) Register(ep Endpoint) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.endpoints[ep.Resource()] = ep
	log.Info().
		Str("resource", string(ep.Resource())).
		Strs("operations", ep.Operations()).
		Msg("registered API resource")
}

// Get returns a resource client by name.
func (r *Registry) Get(resource Resource) (Endpoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ep, ok := r.endpoints[resource]
	if !ok {
		return nil, &Error{
			Code:    ErrResourceNotFound,
			Message: fmt.Sprintf("resource %s not registered", resource),
		}
	}
	return ep, nil
}

// List returns all registered resource names.
func (r *Registry) List() []Resource {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var resources []Resource
	for res := range r.endpoints {
		resources = append(resources, res)
	}
	return resources
}
