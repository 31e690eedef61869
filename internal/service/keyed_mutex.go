package service

import "sync"

// FeedLocks serializes work on a single feed across services. Refresh holds a
// feed's lock from fetch to metadata update and Delete holds it while removing
// the feed and its articles. Keys nobody holds are forgotten.
type FeedLocks struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

func NewFeedLocks() *FeedLocks {
	return &FeedLocks{}
}

func (k *FeedLocks) lock(key string) (unlock func()) {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*keyedLock)
	}
	l, ok := k.locks[key]
	if !ok {
		l = &keyedLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
