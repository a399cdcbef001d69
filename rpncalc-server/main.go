package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"rpncalc-go/model"
)

var (
	dbName     = flag.String("dbName", "rpncalc.db", "history db name, relative to the binary; empty disables history.")
	addr       = flag.String("addr", "localhost:8080", "TCP address to listen to")
	compress   = flag.Bool("compress", false, "Enables transparent response compression if set to true")
	expire     = flag.Duration("expire", model.DefaultExpiredDuration, "How long unused history entries are kept")
	cleanEvery = flag.Duration("cleanEvery", 5*time.Minute, "Interval of the history cleanup job")
	cacheSize  = flag.Int("cacheSize", 4096, "Number of memoized results, 0 disables the cache")
	recentSize = flag.Int("recent", 32, "Number of evaluations kept for /recent")
)

func main() {
	// Parse command-line flags.
	flag.Parse()
	if *dbName != "" {
		dbPath := *dbName
		if !filepath.IsAbs(dbPath) {
			dbPath = filepath.Join(filepath.Dir(os.Args[0]), dbPath)
		}
		if err := OpenDb(dbPath); err != nil {
			log.Fatalf("opening history db %q: %v", dbPath, err)
		}
		if err := StartExpiredCleanSchedule(*cleanEvery); err != nil {
			log.Fatalf("starting cleanup schedule: %v", err)
		}
	}

	service := NewEvalService(*expire, *cacheSize, *recentSize)
	server := NewServer(service, *compress)
	go func() {
		if err := Serve(server, *addr); err != nil {
			log.Fatalf("error in ListenAndServe: %v", err)
		}
	}()

	// Make a signal channel. Register SIGINT.
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt, syscall.SIGTERM)

	// Wait for the signal.
	<-sigch

	fmt.Println("Interrupted. Exiting.")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	shutdown(ctx, server)
}
