package app

import (
	"context"
	"fmt"

	"ruddit-go/internal/ruddit"
	"ruddit-go/internal/scheduler"
)

// watchRunner gives every watch run its own persisted operation and snapshot.
type watchRunner struct {
	app *RudditApp
}

var _ scheduler.WatchRunner = (*watchRunner)(nil)

func (r *watchRunner) RunWatch(ctx context.Context, w ruddit.Watch) (*ruddit.WatchReport, error) {
	a := r.app
	dbOp, err := a.db.CreateOperation("Watch", w.Name)
	if err != nil {
		return nil, fmt.Errorf("persisting operation: %w", err)
	}
	op := &Operation{ID: dbOp.ID, Name: "Watch", Parameters: w.Name, Status: "success"}

	report, err := a.service.RunWatch(ctx, w)
	op.Fail(err)
	if cerr := a.checkpoint(context.WithoutCancel(ctx), op); cerr != nil {
		a.log.Error("watch checkpoint failed", "watch", w.Name, "error", cerr)
		if err == nil {
			err = cerr
		}
	}
	return report, err
}

func (a *RudditApp) newScheduler(afterRun func(string, *ruddit.WatchReport, error)) (*scheduler.Scheduler, error) {
	s := scheduler.New(&watchRunner{app: a}, scheduler.Options{Logger: a.log, AfterRun: afterRun})
	if err := s.AddAll(a.cfg.Watches); err != nil {
		return nil, err
	}
	return s, nil
}

// Watches lists the configured watches with their schedules.
func (a *RudditApp) Watches() ([]scheduler.Entry, error) {
	s, err := a.newScheduler(nil)
	if err != nil {
		return nil, err
	}
	return s.Entries(), nil
}

// RunWatchOnce runs the named watch immediately.
func (a *RudditApp) RunWatchOnce(ctx context.Context, name string) (*ruddit.WatchReport, error) {
	s, err := a.newScheduler(nil)
	if err != nil {
		return nil, err
	}
	return s.RunNow(ctx, name)
}

// ServeWatches runs every configured watch on its schedule until ctx is done.
// onReport sees the outcome of each run.
func (a *RudditApp) ServeWatches(ctx context.Context, onReport func(name string, report *ruddit.WatchReport, err error)) error {
	if len(a.cfg.Watches) == 0 {
		return fmt.Errorf("no watches configured")
	}
	s, err := a.newScheduler(onReport)
	if err != nil {
		return err
	}
	s.Start()
	<-ctx.Done()
	s.Stop()
	return nil
}
