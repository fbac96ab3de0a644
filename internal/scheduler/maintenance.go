// Package scheduler runs periodic catalog maintenance on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/shelfsync/internal/config"
)

// Default schedules, mirrored from the config package.
const (
	DailyLinkSweep  = config.DefaultLinkSweepSchedule
	DailyAuditPrune = config.DefaultAuditPruneSchedule
)

// Job names.
const (
	JobLinkSweep  = "link_sweep"
	JobAuditPrune = "audit_prune"
)

// Jobs holds the work run on each schedule. A nil func disables its job.
type Jobs struct {
	SweepLinks func() error
	PruneAudit func() error
}

type job struct {
	name     string
	schedule string
	run      func() error
	entryID  cron.EntryID
}

// MaintenanceScheduler manages the link sweep and audit prune jobs.
type MaintenanceScheduler struct {
	cfg  config.Maintenance
	jobs []*job

	cron       *cron.Cron
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewMaintenanceScheduler creates a new scheduler instance
func NewMaintenanceScheduler(cfg config.Maintenance, jobs Jobs) *MaintenanceScheduler {
	s := &MaintenanceScheduler{
		cfg:  cfg,
		cron: cron.New(cron.WithParser(parser)),
	}
	if jobs.SweepLinks != nil {
		s.jobs = append(s.jobs, &job{name: JobLinkSweep, schedule: cfg.LinkSweepSchedule, run: jobs.SweepLinks})
	}
	if jobs.PruneAudit != nil {
		s.jobs = append(s.jobs, &job{name: JobAuditPrune, schedule: cfg.AuditPruneSchedule, run: jobs.PruneAudit})
	}
	return s
}

// Start schedules every configured job. It stops when ctx is cancelled.
func (s *MaintenanceScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.cfg.Enabled {
		log.Printf("Maintenance scheduler: disabled")
		return nil
	}

	for _, j := range s.jobs {
		if err := ValidateCronSchedule(j.schedule); err != nil {
			return fmt.Errorf("invalid cron schedule '%s' for %s: %w", j.schedule, j.name, err)
		}
	}

	for _, j := range s.jobs {
		j := j
		entryID, err := s.cron.AddFunc(j.schedule, func() {
			s.runJob(j)
		})
		if err != nil {
			return fmt.Errorf("failed to schedule %s: %w", j.name, err)
		}
		j.entryID = entryID

		nextRun, _ := GetNextRunTime(j.schedule, time.Now())
		log.Printf("Maintenance scheduler: %s scheduled '%s' (%s). Next run: %v",
			j.name, j.schedule, GetCronDescription(j.schedule), nextRun)
	}

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *MaintenanceScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}

	log.Printf("Maintenance scheduler: stopped")
}

// RunNow runs the named job synchronously and returns its error.
func (s *MaintenanceScheduler) RunNow(name string) error {
	for _, j := range s.jobs {
		if j.name == name {
			return j.run()
		}
	}
	return fmt.Errorf("unknown maintenance job %q", name)
}

// IsRunning returns whether the scheduler is active
func (s *MaintenanceScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTimes returns the next fire time of each scheduled job.
func (s *MaintenanceScheduler) NextRunTimes() map[string]time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	next := make(map[string]time.Time, len(s.jobs))
	if !s.isRunning {
		return next
	}
	for _, j := range s.jobs {
		next[j.name] = s.cron.Entry(j.entryID).Next
	}
	return next
}

func (s *MaintenanceScheduler) runJob(j *job) {
	start := time.Now()
	if err := j.run(); err != nil {
		log.Printf("Maintenance %s: failed: %v", j.name, err)
		return
	}
	log.Printf("Maintenance %s: done in %v", j.name, time.Since(start).Round(time.Millisecond))
}
