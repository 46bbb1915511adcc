package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/skipflow/skipflow-go/internal/core"
	"github.com/skipflow/skipflow-go/internal/domain/model"
	apperrors "github.com/skipflow/skipflow-go/internal/errors"
)

// lastEventConcurrency bounds the parallel timeline lookups per run.
const lastEventConcurrency = 4

// DriverRunServiceOptions groups dependencies for DriverRunService.
type DriverRunServiceOptions struct {
	Jobs   core.JobRepository
	Events core.JobEventRepository
}

// DriverRunService builds the read-only projection of a driver's outstanding
// work for a date. It derives entirely from job records; it holds no state.
type DriverRunService struct {
	jobs   core.JobRepository
	events core.JobEventRepository
}

// NewDriverRunService constructs a new DriverRunService.
func NewDriverRunService(opts DriverRunServiceOptions) *DriverRunService {
	return &DriverRunService{jobs: opts.Jobs, events: opts.Events}
}

// GetRun returns the driver's stops for the date, ordered by run group then
// sort key so the two legs of a swap appear adjacent.
func (s *DriverRunService) GetRun(
	ctx context.Context,
	tenantID, driverID string,
	date model.Date,
) (*model.DriverRun, error) {
	if driverID == "" {
		return nil, apperrors.ValidationField("driver_id", "driver_id is required")
	}
	if date.IsZero() {
		return nil, apperrors.ValidationField("date", "date is required")
	}

	jobs, err := s.jobs.ListForRun(ctx, tenantID, core.RunQueryParams{DriverID: driverID, Date: date})
	if err != nil {
		return nil, fmt.Errorf("list run jobs: %w", err)
	}

	run := &model.DriverRun{
		DriverID: driverID,
		Date:     date,
		Stops:    make([]model.RunStop, len(jobs)),
	}
	for i, job := range jobs {
		run.Stops[i] = model.RunStop{Action: stopAction(job, date), Job: job}
	}

	// Timeline lookups are independent per stop; fetch them in parallel.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(lastEventConcurrency)
	for i := range run.Stops {
		g.Go(func() error {
			last, lastErr := s.events.Last(gctx, tenantID, run.Stops[i].Job.ID)
			if lastErr != nil {
				return fmt.Errorf("last event for job %s: %w", run.Stops[i].Job.ID, lastErr)
			}
			run.Stops[i].LastEvent = last
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return run, nil
}

// stopAction decides what the driver does at a stop: deliver when the skip is
// due on the date and not yet dropped, otherwise collect.
func stopAction(job *model.Job, date model.Date) model.RunAction {
	if job.DeliveredAt == nil && job.ScheduledDate.Equal(date) {
		return model.RunActionDeliver
	}
	return model.RunActionCollect
}
