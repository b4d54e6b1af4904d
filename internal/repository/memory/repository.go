package memory

import (
	"sync"
	"time"
)

// ViewKey identifies one rendered page in one chat.
type ViewKey struct {
	ChatID int64
	Page   string
}

// Snapshot is the last committed content of a view. Exactly one of Text or
// Err is meaningful.
type Snapshot struct {
	RequestID   uint64
	Text        string
	Err         string
	CommittedAt time.Time
}

type view struct {
	latest   uint64
	snapshot *Snapshot
}

// Repository keeps view snapshots keyed by view. A fetch that started before
// a newer one for the same view cannot overwrite the newer result.
type Repository struct {
	views map[ViewKey]*view
	next  uint64
	now   func() time.Time
	mu    sync.RWMutex
}

func NewRepository() *Repository {
	return &Repository{
		views: make(map[ViewKey]*view),
		now:   time.Now,
	}
}

// Begin hands out a request id for key. Ids grow monotonically across all
// views.
func (r *Repository) Begin(key ViewKey) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.next++
	v, ok := r.views[key]
	if !ok {
		v = &view{}
		r.views[key] = v
	}
	v.latest = r.next
	return r.next
}

// Commit stores snap for key when id is still the newest request for the
// view. It reports whether the snapshot was kept.
func (r *Repository) Commit(key ViewKey, id uint64, snap Snapshot) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.views[key]
	if !ok || v.latest != id {
		return false
	}
	snap.RequestID = id
	snap.CommittedAt = r.now()
	v.snapshot = &snap
	return true
}

// Latest returns the id of the newest request started for key.
func (r *Repository) Latest(key ViewKey) uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if v, ok := r.views[key]; ok {
		return v.latest
	}
	return 0
}

func (r *Repository) Get(key ViewKey) (Snapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.views[key]
	if !ok || v.snapshot == nil {
		return Snapshot{}, false
	}
	return *v.snapshot, true
}
