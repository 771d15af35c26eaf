package award

import "sync"

// memberLocks serializes award processing per member id. Awards for different
// members proceed in parallel; two awards for the same member never overlap
// between the validation reads and the ledger commit. Entries are refcounted
// so the map stays bounded by the number of in-flight awards.
type memberLocks struct {
	mu    sync.Mutex
	locks map[string]*memberLock
}

type memberLock struct {
	sync.Mutex
	refs int
}

func newMemberLocks() *memberLocks {
	return &memberLocks{locks: make(map[string]*memberLock)}
}

func (ml *memberLocks) acquire(id string) {
	ml.mu.Lock()
	l, ok := ml.locks[id]
	if !ok {
		l = &memberLock{}
		ml.locks[id] = l
	}
	l.refs++
	ml.mu.Unlock()

	l.Lock()
}

func (ml *memberLocks) release(id string) {
	ml.mu.Lock()
	l := ml.locks[id]
	l.refs--
	if l.refs == 0 {
		delete(ml.locks, id)
	}
	ml.mu.Unlock()

	l.Unlock()
}
