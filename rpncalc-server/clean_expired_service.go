package main

import (
	"log"
	"time"

	"github.com/tevino/abool/v2"
)

const kCleanBatchLimit = 2000

var cleanRunning = abool.NewBool(false)

func cleanTask() {
	removed, err := CleanExpired(time.Now(), kCleanBatchLimit)
	if err != nil {
		log.Printf("clean expired history: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("clean expired history: removed %d entries", removed)
	}
}

// CleanExpired purges up to limit expired or forgotten entries. A call
// made while another one is running returns immediately.
func CleanExpired(now time.Time, limit int) (int64, error) {
	if !cleanRunning.SetToIf(false, true) {
		return 0, nil
	}
	defer cleanRunning.UnSet()
	cleanRuns.Add(1)

	records, err := FindCleanableWithLimit(now, limit)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}
	ids := make([]int64, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.ID)
	}
	removed, err := PurgeEntries(ids)
	if err != nil {
		return 0, err
	}
	cleanRemoved.Add(removed)
	return removed, nil
}
