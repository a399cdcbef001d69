package main

import (
	"fmt"
	"strconv"

	"rpncalc-go/rpn"
)

// Calculator is one rpncalc invocation: it evaluates the expression,
// prints the answer and records it when a history database is set.
type Calculator struct {
	/// Configuration set from flags and the environment.
	Config_ *Config

	Evaluator *rpn.Evaluator

	/// Set when "-d explain" is on.
	Explanations_ *Explanations
}

func NewCalculator(options *Options, config *Config) *Calculator {
	ret := &Calculator{Config_: config}
	opts := rpn.Options{UnknownTokens: config.UnknownTokens}
	if config.UnknownTokens == rpn.UnknownTokenWarn {
		opts.OnUnknown = func(pos int, token string) {
			Warning("ignoring token %d '%s': not a number or operator", pos, token)
		}
	}
	if options.Debugging("explain") {
		ret.Explanations_ = NewExplanations(stdout)
		opts.Trace = ret.Explanations_.Record
	}
	ret.Evaluator = rpn.NewEvaluator(opts)
	return ret
}

// Run evaluates expr and prints the result. The history is written for
// failed evaluations too; a history failure is reported but does not change
// the exit status.
func (this *Calculator) Run(expr string) ExitStatus {
	result, err := this.evaluate(expr)
	if this.Config_.HistoryPath != "" {
		if herr := this.record(expr, result, err); herr != nil {
			Warning("recording history in '%s': %v", this.Config_.HistoryPath, herr)
		}
	}
	status := ExitSuccess
	if err != nil {
		Error("%v", err)
		status = ExitFailure
	} else {
		this.printResult(result)
	}
	if GMetrics != nil {
		GMetrics.Report(stdout)
	}
	return status
}

func (this *Calculator) evaluate(expr string) (float64, error) {
	defer METRIC_RECORD("evaluate").Stop()
	return this.Evaluator.Evaluate(expr)
}

func (this *Calculator) record(expr string, result float64, evalErr error) error {
	history, err := OpenHistoryLog(this.Config_.HistoryPath, this.Config_.HistoryTTL)
	if err != nil {
		return err
	}
	defer history.Close()
	return history.Record(expr, result, evalErr)
}

func (this *Calculator) printResult(result float64) {
	answer := strconv.FormatFloat(result, 'f', this.Config_.Precision, 64)
	if this.Config_.Quiet {
		fmt.Fprintf(stdout, "%s\n", answer)
		return
	}
	fmt.Fprintf(stdout, "Answer: %s\n", answer)
}
