package scheduler

import (
	"log"
	"sync"
	"time"
)

// Scheduler owns one-shot timers for trigger jobs plus a daily planning loop.
// One instance per process, constructed in main and injected where needed.
type Scheduler struct {
	loc *time.Location
	now func() time.Time

	mu     sync.Mutex
	timers map[int]*time.Timer
	nextID int

	stopOnce sync.Once
	stopCh   chan struct{}
}

func New(loc *time.Location) *Scheduler {
	return &Scheduler{
		loc:    loc,
		now:    time.Now,
		timers: make(map[int]*time.Timer),
		stopCh: make(chan struct{}),
	}
}

// Start runs plan immediately, then once after every local midnight.
func (s *Scheduler) Start(plan func()) {
	go func() {
		s.runJob(plan)
		for {
			select {
			case <-time.After(s.untilNextMidnight()):
				s.runJob(plan)
			case <-s.stopCh:
				return
			}
		}
	}()
}

// At schedules job once at an absolute instant. Instants already in the past
// are not scheduled and false is returned.
func (s *Scheduler) At(t time.Time, job func()) bool {
	d := t.Sub(s.now())
	if d <= 0 {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-s.stopCh:
		return false
	default:
	}

	id := s.nextID
	s.nextID++
	s.timers[id] = time.AfterFunc(d, func() {
		s.mu.Lock()
		delete(s.timers, id)
		s.mu.Unlock()
		s.runJob(job)
	})
	return true
}

// Stop cancels the planning loop and every pending timer.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}

func (s *Scheduler) untilNextMidnight() time.Duration {
	now := s.now().In(s.loc)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc).AddDate(0, 0, 1)
	return midnight.Sub(now)
}

// runJob isolates a job so a panic degrades to a logged skip.
func (s *Scheduler) runJob(job func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("scheduler: job panicked: %v", r)
		}
	}()
	job()
}
