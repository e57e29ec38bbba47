package gymsync

import "sync"

type Status string

const (
	StatusIdle     Status = "idle"
	StatusSyncing  Status = "syncing"
	StatusComplete Status = "complete"
	StatusError    Status = "error"
)

// StatusRegistry tracks the sync status per user, and doubles as an advisory
// guard against two concurrent runs for the same user. It is in-memory only,
// which is adequate for a single-instance deployment; multi-instance would
// need a lease in the primary store instead.
type StatusRegistry struct {
	mu       sync.Mutex
	statuses map[string]Status
}

func NewStatusRegistry() *StatusRegistry {
	return &StatusRegistry{
		statuses: make(map[string]Status),
	}
}

// TryStart marks the user as syncing. It returns false when a run is already
// in flight for that user.
func (r *StatusRegistry) TryStart(userID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.statuses[userID] == StatusSyncing {
		return false
	}
	r.statuses[userID] = StatusSyncing
	return true
}

func (r *StatusRegistry) Set(userID string, status Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses[userID] = status
}

func (r *StatusRegistry) Get(userID string) Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	if status, ok := r.statuses[userID]; ok {
		return status
	}
	return StatusIdle
}
