package services

import (
	"context"
	"log"
	"sync"
	"time"

	"batch-gateway-server/models"
)

// ScheduleRunner executes due batch schedules. Each claimed schedule becomes
// one batch run through the same BatchService the API uses.
type ScheduleRunner struct {
	scheduleService *ScheduleService
	batchService    *BatchService
	interval        time.Duration
	batchSize       int
	stopCh          chan struct{}
	wg              sync.WaitGroup
}

func NewScheduleRunner(scheduleService *ScheduleService, batchService *BatchService) *ScheduleRunner {
	return &ScheduleRunner{
		scheduleService: scheduleService,
		batchService:    batchService,
		interval:        time.Second,
		batchSize:       20,
		stopCh:          make(chan struct{}),
	}
}

func (r *ScheduleRunner) Start() {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.processDueSchedules()
			case <-r.stopCh:
				return
			}
		}
	}()
}

func (r *ScheduleRunner) Stop() {
	close(r.stopCh)
	r.wg.Wait()
}

func (r *ScheduleRunner) processDueSchedules() {
	ctx := context.Background()
	schedules, err := r.scheduleService.ClaimDueSchedules(ctx, r.batchSize)
	if err != nil {
		log.Printf("scheduler: failed to claim schedules: %v", err)
		return
	}
	for _, sched := range schedules {
		go r.executeSchedule(ctx, sched)
	}
}

func (r *ScheduleRunner) executeSchedule(ctx context.Context, sched models.BatchSchedule) {
	req := &models.BatchRequest{
		Calls:       sched.Calls,
		TotalBudget: sched.TotalBudget,
	}

	var run *models.BatchRun
	var err error
	if sched.Policy == models.PolicyBestEffort {
		run, err = r.batchService.TryExecute(ctx, req)
	} else {
		run, err = r.batchService.Execute(ctx, req)
	}
	if err != nil {
		r.scheduleService.MarkExecuted(ctx, sched.ID, nil, models.StatusFail, err.Error())
		return
	}

	errMsg := ""
	if run.Status == models.StatusFail {
		errMsg = string(run.ErrorPayload)
	}
	r.scheduleService.MarkExecuted(ctx, sched.ID, &run.ID, run.Status, errMsg)
}
