package scheduler

import (
	"sync"
	"time"
)

// Scheduler runs a function at a fixed interval in a background goroutine
// until stopped. Stop is idempotent and waits for the goroutine to exit, so
// no task outlives its owner.
type Scheduler struct {
	interval time.Duration
	fn       func()
	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// New creates a Scheduler that will invoke fn every interval once started.
func New(interval time.Duration, fn func()) *Scheduler {
	return &Scheduler{
		interval: interval,
		fn:       fn,
		done:     make(chan struct{}),
	}
}

// Start launches the background loop.
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.run()
}

// Stop terminates the loop and waits for it to finish.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
	})
	s.wg.Wait()
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.fn()
		case <-s.done:
			return
		}
	}
}
