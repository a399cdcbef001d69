package main

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

var cleanScheduler gocron.Scheduler

func StartExpiredCleanSchedule(every time.Duration) error {
	var err error
	cleanScheduler, err = gocron.NewScheduler()
	if err != nil {
		return err
	}
	job, err := cleanScheduler.NewJob(gocron.DurationJob(every), gocron.NewTask(cleanTask))
	if err != nil {
		return err
	}
	log.Printf("history cleanup job %s every %s", job.ID(), every)
	cleanScheduler.Start()
	return nil
}

func StopScheduler() {
	if cleanScheduler == nil {
		return
	}
	if err := cleanScheduler.Shutdown(); err != nil {
		log.Println(err)
	}
}
