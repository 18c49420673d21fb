package bot

import (
	"slices"
	"sync"
)

// Registry collects modules before the bot starts. Modules self-register
// from their package init functions, so registration has to be safe while
// the program is still initializing.
type Registry struct {
	mu      sync.RWMutex
	modules []Module
}

// NewRegistry creates an empty module registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a module.
func (r *Registry) Register(m Module) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modules = append(r.modules, m)
}

// Modules returns the registered modules in registration order. The returned
// slice is a copy; later registrations do not show up in it.
func (r *Registry) Modules() []Module {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.modules)
}

// globalRegistry backs the package-level Register/Modules that module init
// functions use.
var globalRegistry = NewRegistry()

// Register adds a module to the global registry.
func Register(m Module) {
	globalRegistry.Register(m)
}

// Modules returns all modules from the global registry.
func Modules() []Module {
	return globalRegistry.Modules()
}

// ResetGlobalRegistry swaps in a fresh global registry. Test helper.
func ResetGlobalRegistry() {
	globalRegistry = NewRegistry()
}
