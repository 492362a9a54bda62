// Package scheduler runs configured watches on their cron schedules.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"ruddit-go/internal/config"
	"ruddit-go/internal/model"
	"ruddit-go/internal/ruddit"
)

// DefaultRunTimeout bounds a single watch run.
const DefaultRunTimeout = 10 * time.Minute

// WatchRunner executes one watch run. *ruddit.Service satisfies it.
type WatchRunner interface {
	RunWatch(ctx context.Context, w ruddit.Watch) (*ruddit.WatchReport, error)
}

var _ WatchRunner = (*ruddit.Service)(nil)

// Options tunes a Scheduler.
type Options struct {
	RunTimeout time.Duration
	Logger     ruddit.Logger
	// AfterRun is called once per run, from the cron goroutine, with the run's outcome.
	AfterRun func(name string, report *ruddit.WatchReport, err error)
}

// Scheduler wraps a cron instance. Overlapping runs of the same watch are skipped.
type Scheduler struct {
	cron    *cron.Cron
	runner  WatchRunner
	opts    Options
	logger  ruddit.Logger
	mu      sync.Mutex
	watches map[string]scheduled
	ctx     context.Context
	cancel  context.CancelFunc
}

type scheduled struct {
	id       cron.EntryID
	schedule string
	watch    ruddit.Watch
}

// Entry describes one scheduled watch.
type Entry struct {
	Name     string
	Schedule string
	Next     time.Time
	Prev     time.Time
}

// New creates a stopped Scheduler.
func New(runner WatchRunner, opts Options) *Scheduler {
	if opts.RunTimeout <= 0 {
		opts.RunTimeout = DefaultRunTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = ruddit.NewNopLogger()
	}
	cl := cronLogger{logger}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		runner:  runner,
		opts:    opts,
		logger:  logger,
		watches: make(map[string]scheduled),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// WatchFromConfig converts a configured watch into a service watch.
func WatchFromConfig(wc config.WatchConfig) (ruddit.Watch, error) {
	w := ruddit.Watch{
		Name:          wc.Name,
		Query:         wc.Query,
		Facets:        wc.Facets,
		MaxPages:      wc.MaxPages,
		FetchComments: wc.FetchComments,
	}
	if wc.MinIntent != "" {
		intent, err := model.ParseIntent(wc.MinIntent)
		if err != nil {
			return ruddit.Watch{}, fmt.Errorf("watch %s: %w", wc.Name, err)
		}
		w.MinIntent = intent
	}
	return w, nil
}

// Add schedules wc. Names must be unique.
func (s *Scheduler) Add(wc config.WatchConfig) error {
	w, err := WatchFromConfig(wc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.watches[w.Name]; ok {
		return fmt.Errorf("watch %s already scheduled", w.Name)
	}
	id, err := s.cron.AddFunc(wc.Schedule, func() { s.run(w) })
	if err != nil {
		return fmt.Errorf("watch %s: invalid schedule %q: %w", w.Name, wc.Schedule, err)
	}
	s.watches[w.Name] = scheduled{id: id, schedule: wc.Schedule, watch: w}
	s.logger.Debug("watch scheduled", "watch", w.Name, "schedule", wc.Schedule)
	return nil
}

// AddAll schedules every watch, stopping at the first error.
func (s *Scheduler) AddAll(watches []config.WatchConfig) error {
	for _, wc := range watches {
		if err := s.Add(wc); err != nil {
			return err
		}
	}
	return nil
}

// Entries lists scheduled watches by name. Next is zero until Start.
func (s *Scheduler) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]Entry, 0, len(s.watches))
	for name, sc := range s.watches {
		e := s.cron.Entry(sc.id)
		entries = append(entries, Entry{Name: name, Schedule: sc.schedule, Next: e.Next, Prev: e.Prev})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

// RunNow runs a scheduled watch immediately on the caller's goroutine.
func (s *Scheduler) RunNow(ctx context.Context, name string) (*ruddit.WatchReport, error) {
	s.mu.Lock()
	sc, ok := s.watches[name]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("no watch named %s", name)
	}
	return s.execute(ctx, sc.watch)
}

// Start begins running watches in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", "watches", len(s.watches))
}

// Stop cancels in-flight runs and waits for them to return.
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) run(w ruddit.Watch) {
	report, err := s.execute(s.ctx, w)
	if err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Error("watch run failed", "watch", w.Name, "error", err)
	}
	if s.opts.AfterRun != nil {
		s.opts.AfterRun(w.Name, report, err)
	}
}

func (s *Scheduler) execute(ctx context.Context, w ruddit.Watch) (*ruddit.WatchReport, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.RunTimeout)
	defer cancel()

	start := time.Now()
	report, err := s.runner.RunWatch(ctx, w)
	s.logger.Debug("watch run finished", "watch", w.Name, "elapsed", time.Since(start).String())
	return report, err
}

// cronLogger adapts ruddit.Logger to cron.Logger.
type cronLogger struct {
	l ruddit.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debug("cron: "+msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
