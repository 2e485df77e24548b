package tracker

import (
	"sync"
	"time"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/sgoyal/zindagi/internal/storage"
)

// Watcher polls the store for a profile's history and invokes the callback
// whenever the table changes. The first load always fires. Stop the
// watcher when the consuming view goes away; the callback is never invoked
// after Stop returns.
type Watcher struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// Watch starts polling at the given interval. Errors are reported through
// the same callback with a zero-value History.
func Watch(store storage.Provider, userID, profileName string, interval time.Duration, fn func(History, error)) *Watcher {
	w := &Watcher{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}

	go func() {
		defer close(w.done)

		var lastHash uint64
		var hasLast bool

		load := func() {
			h, err := LoadHistory(store, userID, profileName)
			if err != nil {
				fn(History{}, err)
				hasLast = false
				return
			}
			hash, hashErr := hashstructure.Hash(h, hashstructure.FormatV2, nil)
			if hashErr == nil && hasLast && hash == lastHash {
				return
			}
			lastHash = hash
			hasLast = hashErr == nil
			fn(h, nil)
		}

		load()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.stop:
				return
			case <-ticker.C:
				load()
			}
		}
	}()

	return w
}

// Stop ends polling and waits for the poll goroutine to exit.
func (w *Watcher) Stop() {
	w.once.Do(func() { close(w.stop) })
	<-w.done
}
