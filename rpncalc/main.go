package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func TerminateHandler() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	s := <-quit
	fmt.Fprintln(stderr, "terminate handler called:", s)
	os.Exit(int(ExitInterrupted))
}

func real_main(args []string) ExitStatus {
	config := NewConfig()
	options := NewOptions()

	exit_code := ReadFlags(&args, options, config)
	if exit_code >= 0 {
		return ExitStatus(exit_code)
	}

	if options.Tool != nil {
		return ExitStatus(options.Tool.Func1(options, config, args))
	}

	if len(args) != 1 {
		UsageMain(config)
		return ExitUsage
	}

	return NewCalculator(options, config).Run(args[0])
}

func main() {
	go TerminateHandler()
	os.Exit(int(real_main(os.Args)))
}
