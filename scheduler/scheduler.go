package scheduler

import (
	"log"
	"sync"

	"pricewatch/models"

	"github.com/robfig/cron/v3"
)

// Runner executes one monitoring cycle. Satisfied by *monitor.Monitor.
type Runner interface {
	Run() *models.RunReport
}

// Scheduler triggers monitoring cycles on a cron schedule. Cycles are
// serialized: a tick that arrives while a run is in flight waits for it.
type Scheduler struct {
	cron   *cron.Cron
	runner Runner
	spec   string
	mu     sync.Mutex
}

// NewScheduler creates a new scheduler with a cron spec that includes seconds
func NewScheduler(runner Runner, spec string) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithSeconds()),
		runner: runner,
		spec:   spec,
	}
}

// Start schedules the monitoring cycles and runs one immediately
func (s *Scheduler) Start() {
	if _, err := s.cron.AddFunc(s.spec, s.runCycle); err != nil {
		log.Printf("❌ Failed to schedule monitoring cycles: %v", err)
		return
	}

	// also run immediately on startup
	go s.runCycle()

	s.cron.Start()
	log.Printf("Monitoring cycles scheduled with spec %q", s.spec)
}

// Stop stops the scheduled cycles
func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) runCycle() {
	s.mu.Lock()
	defer s.mu.Unlock()

	report := s.runner.Run()
	if report.Failed() {
		log.Printf("⚠️  Scheduled cycle finished with %d errors", report.Errors)
	}
}
