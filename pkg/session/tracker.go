package session

import (
	"sync"
	"time"
)

// Ticket identifies one started resolution of a session
type Ticket struct {
	Key string
	Seq uint64
}

type trackedKey struct {
	latest    uint64
	committed *Resolution
	touched   time.Time
}

// Tracker orders resolutions per session key. Only the result of the latest-started
// resolution of a key is committed; results of older tickets are dropped. Keys untouched
// for longer than the ttl are evicted, so the tracker never outlives the session cookie.
type Tracker struct {
	mu        sync.Mutex
	seq       uint64
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
	keys      map[string]*trackedKey
}

// NewTracker returns a tracker whose keys expire after ttl; ttl <= 0 keeps keys until Forget
func NewTracker(ttl time.Duration) *Tracker {
	return &Tracker{
		ttl:  ttl,
		now:  time.Now,
		keys: make(map[string]*trackedKey),
	}
}

func (t *Tracker) expired(k *trackedKey, now time.Time) bool {
	return t.ttl > 0 && now.Sub(k.touched) > t.ttl
}

// sweepLocked evicts expired keys, at most once per sweep interval
func (t *Tracker) sweepLocked(now time.Time) {
	if t.ttl <= 0 {
		return
	}
	interval := t.ttl
	if interval > time.Minute {
		interval = time.Minute
	}
	if now.Sub(t.lastSweep) < interval {
		return
	}
	t.lastSweep = now
	for key, k := range t.keys {
		if t.expired(k, now) {
			delete(t.keys, key)
		}
	}
}

// Begin issues a ticket that supersedes every earlier ticket of key
func (t *Tracker) Begin(key string) Ticket {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	t.sweepLocked(now)

	t.seq++
	k, ok := t.keys[key]
	if !ok {
		k = &trackedKey{}
		t.keys[key] = k
	}
	k.latest = t.seq
	k.touched = now
	return Ticket{Key: key, Seq: t.seq}
}

// Commit stores res if tk is still the latest ticket of its key
func (t *Tracker) Commit(tk Ticket, res Resolution) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	k, ok := t.keys[tk.Key]
	if !ok || k.latest != tk.Seq {
		return false
	}
	k.committed = &res
	k.touched = t.now()
	return true
}

// Current returns the last committed resolution of key
func (t *Tracker) Current(key string) (Resolution, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	k, ok := t.keys[key]
	if !ok || k.committed == nil {
		return Resolution{}, false
	}
	if t.expired(k, t.now()) {
		delete(t.keys, key)
		return Resolution{}, false
	}
	return *k.committed, true
}

// Forget drops everything known about key. In-flight tickets of key can no longer commit:
// a missing key matches no ticket.
func (t *Tracker) Forget(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.keys, key)
}

// Len is the number of session keys currently tracked
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.keys)
}
