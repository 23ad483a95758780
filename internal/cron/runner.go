package cronrunner

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Runner schedules the discovery and detection cycles. Cancelling the base
// context stops new cycles from being scheduled; a cycle already in flight
// runs to completion under a detached context, and Stop waits for it.
type Runner struct {
	cron    *cron.Cron
	logger  *zap.Logger
	baseCtx context.Context
}

func New(logger *zap.Logger, baseCtx context.Context) *Runner {
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	return &Runner{
		cron:    cron.New(),
		logger:  logger,
		baseCtx: baseCtx,
	}
}

func (r *Runner) Add(spec string, job func(context.Context)) (cron.EntryID, error) {
	return r.cron.AddFunc(spec, func() {
		r.run(job)
	})
}

// run gates on shutdown before the job starts, never mid-cycle: the job body
// gets a context detached from cancellation, so store and HTTP calls in a
// cycle that already began keep working while Stop waits for it.
func (r *Runner) run(job func(context.Context)) {
	if r.baseCtx.Err() != nil {
		return
	}
	job(context.WithoutCancel(r.baseCtx))
}

func (r *Runner) Start() {
	if r.logger != nil {
		r.logger.Info("cron started")
	}
	r.cron.Start()
}

func (r *Runner) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	if r.logger != nil {
		r.logger.Info("cron stopped")
	}
}
