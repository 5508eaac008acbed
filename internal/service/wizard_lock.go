package service

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	// Interval for cleaning up stale wizard locks
	lockCleanupInterval = 10 * time.Minute

	// How long a lock must be unused before cleanup
	lockStaleThreshold = 10 * time.Minute
)

// WizardLocker serializes requests that touch the same wizard.  Locks for
// different wizards are independent.  Call Stop during shutdown.
type WizardLocker struct {
	log *logrus.Logger

	locks sync.Map // map[uuid.UUID]*lockWithTimestamp

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// lockWithTimestamp tracks lock usage for cleanup
type lockWithTimestamp struct {
	mu       sync.Mutex
	lastUsed atomic.Int64 // Unix timestamp
}

// NewWizardLocker starts the background cleanup goroutine.
func NewWizardLocker(log *logrus.Logger) *WizardLocker {
	l := &WizardLocker{
		log:      log,
		stopChan: make(chan struct{}),
	}

	l.wg.Add(1)
	go l.cleanupLoop()

	return l
}

// Stop ends the cleanup goroutine.  Safe to call multiple times.
func (l *WizardLocker) Stop() {
	if l.stopped.CompareAndSwap(false, true) {
		close(l.stopChan)
		l.wg.Wait()
		l.log.Info("WizardLocker stopped")
	}
}

// Lock blocks until the caller holds the lock for id and returns the
// matching unlock function.
func (l *WizardLocker) Lock(id uuid.UUID) (unlock func()) {
	for {
		v, _ := l.locks.LoadOrStore(id, &lockWithTimestamp{})
		lt := v.(*lockWithTimestamp)
		lt.mu.Lock()

		// The entry may have been dropped by cleanup or Forget while we
		// waited.  Only the mutex currently in the map counts.
		if cur, ok := l.locks.Load(id); ok && cur == lt {
			lt.lastUsed.Store(time.Now().Unix())
			return lt.mu.Unlock
		}
		lt.mu.Unlock()
	}
}

// Forget drops the lock entry for id.  The caller must hold the lock.
func (l *WizardLocker) Forget(id uuid.UUID) {
	l.locks.Delete(id)
}

func (l *WizardLocker) cleanupLoop() {
	defer l.wg.Done()

	ticker := time.NewTicker(lockCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-l.stopChan:
			l.log.Debug("Wizard lock cleanup goroutine stopping")
			return
		case <-ticker.C:
			l.cleanupStale(time.Now().Add(-lockStaleThreshold).Unix())
		}
	}
}

// cleanupStale removes locks unused since cutoff.  Held locks are skipped.
func (l *WizardLocker) cleanupStale(cutoff int64) int {
	var cleaned int

	l.locks.Range(func(key, value any) bool {
		lt, ok := value.(*lockWithTimestamp)
		if !ok {
			return true
		}

		if lt.mu.TryLock() {
			// lastUsed is read under the lock so a concurrent Lock cannot
			// refresh it between the check and the delete.
			if lt.lastUsed.Load() < cutoff {
				if l.locks.CompareAndDelete(key, lt) {
					cleaned++
				}
			}
			lt.mu.Unlock()
		}
		return true
	})

	if cleaned > 0 {
		l.log.Debugf("Cleaned up %d stale wizard locks", cleaned)
	}
	return cleaned
}
