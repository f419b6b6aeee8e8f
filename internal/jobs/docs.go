// Package jobs provides scheduled background tasks for the dispatch service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the service.
//
// # Available Jobs
//
// 1. DispatchJob - Runs the proactive dispatch sweep: matches the pending
// order backlog against the available courier pool and assigns the best
// candidate per order.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(dispatchHandler, "*/5 * * * * *", logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The sweep schedule is a six-field cron expression taken from
// configuration; the default runs every five seconds.
//
// # Error Handling
//
// An empty backlog or an empty courier pool is a normal outcome and never
// logged as an error. Per-order contention (another claim winning the race)
// is handled inside the sweep handler; only infrastructure failures reach
// the job's error log. A failed job start stops any already running jobs.
package jobs
