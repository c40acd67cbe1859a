package usecase

import (
	"context"
	"sync"
)

// candidateLocks serializes pipeline work per candidate. Entries are dropped
// once nobody holds or waits for them.
type candidateLocks struct {
	mu   sync.Mutex
	held map[uint]*candidateLock
}

type candidateLock struct {
	ch   chan struct{}
	refs int
}

func newCandidateLocks() *candidateLocks {
	return &candidateLocks{held: make(map[uint]*candidateLock)}
}

// acquire blocks until the candidate is free or ctx is done.
func (l *candidateLocks) acquire(ctx context.Context, id uint) (release func(), err error) {
	l.mu.Lock()
	lk, ok := l.held[id]
	if !ok {
		lk = &candidateLock{ch: make(chan struct{}, 1)}
		l.held[id] = lk
	}
	lk.refs++
	l.mu.Unlock()

	select {
	case lk.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-lk.ch
				l.drop(id, lk)
			})
		}, nil
	case <-ctx.Done():
		l.drop(id, lk)
		return nil, ctx.Err()
	}
}

func (l *candidateLocks) drop(id uint, lk *candidateLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	lk.refs--
	if lk.refs == 0 {
		delete(l.held, id)
	}
}
