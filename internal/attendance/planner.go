package attendance

import (
	"log"
	"time"

	"github.com/example/attendance_bot/internal/schedule"
	"github.com/example/attendance_bot/internal/scheduler"
)

// Planner runs the daily planning pass: it resolves today's occurrences and
// registers one-shot notify and collect triggers for each. A failing pass is
// logged and skipped; the next midnight pass plans again from scratch.
type Planner struct {
	Resolver   *schedule.Resolver
	Sched      *scheduler.Scheduler
	Dispatcher *Dispatcher
	Assembler  *Assembler
	Store      Store

	NotifyLead time.Duration
	CollectLag time.Duration
	StaleAfter time.Duration
	Now        func() time.Time
}

func (p *Planner) PlanToday() {
	now := p.Now()
	occurrences, err := p.Resolver.ResolveDate(now)
	if err != nil {
		log.Printf("planner: occurrence resolution for %s failed: %v", now.Format("2006-01-02"), err)
		return
	}
	log.Printf("planner: %d occurrence(s) on %s", len(occurrences), now.Format("2006-01-02"))

	for _, oc := range occurrences {
		oc := oc
		if p.Sched.At(oc.Start.Add(-p.NotifyLead), func() { p.Dispatcher.Notify(oc) }) {
			log.Printf("planner: notify for group %d subject %d at %s",
				oc.GroupID, oc.SubjectID, oc.Start.Add(-p.NotifyLead).Format(time.RFC3339))
		}
		if p.Sched.At(oc.Start.Add(p.CollectLag), func() { p.Assembler.Collect(oc) }) {
			log.Printf("planner: collect for group %d subject %d at %s",
				oc.GroupID, oc.SubjectID, oc.Start.Add(p.CollectLag).Format(time.RFC3339))
		}
	}

	if p.StaleAfter > 0 {
		if n, err := p.Store.PurgeStale(now.Add(-p.StaleAfter)); err != nil {
			log.Printf("planner: stale purge failed: %v", err)
		} else if n > 0 {
			log.Printf("planner: purged %d stale provisional record(s)", n)
		}
	}
}
