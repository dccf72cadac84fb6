package service

import (
	"context"
	"sync"
)

// leaseRegistry grants one exclusive run lease per project id. The stored
// cancel func doubles as the cancellation hook for an in-flight run.
type leaseRegistry struct {
	mu sync.Mutex
	m  map[string]context.CancelFunc
}

func newLeaseRegistry() *leaseRegistry {
	return &leaseRegistry{m: make(map[string]context.CancelFunc)}
}

// Acquire takes the lease for projectID, registering cancel for the run.
// A second acquisition while the lease is held returns ErrProjectBusy.
func (r *leaseRegistry) Acquire(projectID string, cancel context.CancelFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, held := r.m[projectID]; held {
		return ErrProjectBusy
	}
	r.m[projectID] = cancel
	return nil
}

// Release drops the lease at the end of a run.
func (r *leaseRegistry) Release(projectID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.m, projectID)
}

// Cancel aborts the in-flight run for projectID, if any. It reports whether
// a run was found.
func (r *leaseRegistry) Cancel(projectID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cancel, ok := r.m[projectID]; ok {
		cancel()
		return true
	}
	return false
}
