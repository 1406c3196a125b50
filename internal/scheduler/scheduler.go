package scheduler

import (
	"fmt"
	"sort"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Named cadences accepted by AddOrUpdate. Anything else is handed to
// the cron parser as-is.
var cadenceSpecs = map[string]string{
	"daily":   "@daily",
	"weekly":  "@weekly",
	"monthly": "@monthly",
}

// Scheduler is a named recurring-job registry over a cron runner.
// Re-registering a name replaces the previous schedule, so startup
// registration is idempotent.
type Scheduler struct {
	cron *cron.Cron
	log  *logrus.Logger

	mu      sync.Mutex
	entries map[string]cron.EntryID
}

// New creates a stopped scheduler; call Start once jobs are registered.
func New(log *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		log:     log,
		entries: make(map[string]cron.EntryID),
	}
}

// AddOrUpdate binds a unique name to a cadence and a callback. A name
// that is already registered has its old entry removed first, leaving
// exactly one schedule entry per name.
func (s *Scheduler) AddOrUpdate(name, cadence string, fn func()) error {
	spec, ok := cadenceSpecs[cadence]
	if !ok {
		spec = cadence
	}

	// Validate before touching the registry so a bad cadence can't
	// unregister an existing entry.
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return fmt.Errorf("register job %q: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if id, exists := s.entries[name]; exists {
		s.cron.Remove(id)
	}
	s.entries[name] = s.cron.Schedule(schedule, cron.FuncJob(fn))

	s.log.WithFields(logrus.Fields{"job": name, "cadence": cadence}).Info("recurring job registered")
	return nil
}

// JobNames returns the registered job names in sorted order.
func (s *Scheduler) JobNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Start begins running registered jobs on their schedules.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the runner and waits for in-flight jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
