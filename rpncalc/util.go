package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	stdout io.Writer = color.Output
	stderr io.Writer = color.Error

	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
)

func Error(msg string, ap ...interface{}) {
	fmt.Fprint(stderr, "rpncalc: ")
	errorColor.Fprint(stderr, "error: ")
	fmt.Fprintf(stderr, msg, ap...)
	fmt.Fprint(stderr, "\n")
}

func Warning(msg string, ap ...interface{}) {
	fmt.Fprint(stderr, "rpncalc: ")
	warningColor.Fprint(stderr, "warning: ")
	fmt.Fprintf(stderr, msg, ap...)
	fmt.Fprint(stderr, "\n")
}

func Info(msg string, ap ...interface{}) {
	fmt.Fprint(stdout, "rpncalc: ")
	fmt.Fprintf(stdout, msg, ap...)
	fmt.Fprint(stdout, "\n")
}
