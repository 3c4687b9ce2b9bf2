package registry

import "sync"

// Registry is a lockable global key-value registry. Extension packages
// populate it from init(); once a key is locked it is immutable until a
// test explicitly unlocks it.
type Registry struct {
	values sync.Map
	locked sync.Map
}

// GlobalRegistry holds process-wide registrations (cmd, cron, api, graphql).
var GlobalRegistry = &Registry{}

// SetGlobal stores a value. Panics if the key is locked.
func (r *Registry) SetGlobal(key string, value interface{}) {
	if r.IsLocked(key) {
		panic("registry: key locked: " + key)
	}
	r.values.Store(key, value)
}

// GetGlobal returns the stored value for key.
func (r *Registry) GetGlobal(key string) (interface{}, bool) {
	return r.values.Load(key)
}

// Lock freezes a key. Registration after Lock panics.
func (r *Registry) Lock(key string) {
	r.locked.Store(key, true)
}

// IsLocked reports whether the key is frozen.
func (r *Registry) IsLocked(key string) bool {
	v, ok := r.locked.Load(key)
	return ok && v.(bool)
}

// UnlockForTesting reopens a key so tests can re-register entries.
func (r *Registry) UnlockForTesting(key string) {
	r.locked.Delete(key)
}
