package controller

import (
	"errors"
	"sync"

	"go.uber.org/zap"
)

// ErrDuplicateController is returned when a second controller is registered while one is active
var ErrDuplicateController = errors.New("more than one game controller")

// Registry holds the single active controller for the process.
// Consumers receive the instance from the registry instead of a package global.
type Registry struct {
	mu     sync.Mutex
	active *Controller
	log    *zap.Logger
}

// NewRegistry creates an empty registry
func NewRegistry(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{log: log.Named("registry")}
}

// Register makes c the active controller. If another controller is already
// active, c is destroyed, the error is logged and ErrDuplicateController returned.
func (r *Registry) Register(c *Controller) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active != nil && r.active != c {
		r.log.Error("there's more than one game controller, discarding the new one",
			zap.Stringer("activeState", r.active.CurrentState()))
		c.Destroy()
		return ErrDuplicateController
	}
	r.active = c
	return nil
}

// Active returns the registered controller, or nil
func (r *Registry) Active() *Controller {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Release clears the slot if c is the active controller
func (r *Registry) Release(c *Controller) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active == c {
		r.active = nil
	}
}
