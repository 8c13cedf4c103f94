package background

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/jobs"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler owns the periodic background work.
type JobScheduler struct {
	scheduler  gocron.Scheduler
	sweeper    *jobs.AlertSweeper
	jobsByName map[string]gocron.Job
	mu         sync.RWMutex
}

func NewJobScheduler(sweeper *jobs.AlertSweeper) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:  scheduler,
		sweeper:    sweeper,
		jobsByName: make(map[string]gocron.Job),
	}
	js.registerJobs()
	return js, nil
}

func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	js.mu.Lock()
	defer js.mu.Unlock()

	alertsJob, err := js.scheduler.NewJob(
		gocron.DurationJob(30*time.Minute),
		gocron.NewTask(js.runAlertSweep),
		gocron.WithName("stock-alerts"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create stock alerts job: %v", err)
	} else {
		js.jobsByName["stock-alerts"] = alertsJob
	}

	log.Printf("Registered %d background jobs", len(js.jobsByName))
}

func (js *JobScheduler) runAlertSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	if err := js.sweeper.Sweep(ctx); err != nil {
		log.Printf("Stock alert sweep finished with error: %v", err)
	}
}
