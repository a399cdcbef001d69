package main

import (
	"fmt"
	"io"
	"time"
)

// / The primary interface to metrics.  Use
// /   defer METRIC_RECORD("foobar").Stop()
// / at the top of a function to get timing stats recorded for each call.
func METRIC_RECORD(name string) *ScopedMetric {
	if GMetrics == nil {
		return nil
	}
	return &ScopedMetric{metric: GMetrics.NewMetric(name), start: HighResTimer()}
}

// GMetrics is non-nil only when "-d stats" is given.
var GMetrics *Metrics = nil

type Metric struct {
	name string
	/// Number of times we've hit the code path.
	count int
	/// Total time (in nanoseconds) we've spent on the code path.
	sum int64
}

type Metrics struct {
	metrics_ []*Metric
	byName_  map[string]*Metric
}

func NewMetrics() *Metrics {
	return &Metrics{byName_: make(map[string]*Metric)}
}

// NewMetric returns the metric called name, creating it on first use.
func (this *Metrics) NewMetric(name string) *Metric {
	if metric, ok := this.byName_[name]; ok {
		return metric
	}
	metric := &Metric{name: name}
	this.metrics_ = append(this.metrics_, metric)
	this.byName_[name] = metric
	return metric
}

type ScopedMetric struct {
	metric *Metric
	start  int64
}

// Stop adds the time elapsed since METRIC_RECORD to the metric. It is a
// no-op on the nil ScopedMetric returned when metrics are off.
func (this *ScopedMetric) Stop() {
	if this == nil {
		return
	}
	this.metric.count++
	this.metric.sum += HighResTimer() - this.start
}

// / Print a summary report to w.
func (this *Metrics) Report(w io.Writer) {
	width := 0
	for _, i := range this.metrics_ {
		width = max(len(i.name), width)
	}

	fmt.Fprintf(w, "%-*s\t%-6s\t%-9s\t%s\n", width,
		"metric", "count", "avg (us)", "total (ms)")
	for _, metric := range this.metrics_ {
		micros := TimerToMicros(metric.sum)
		total := float64(micros) / float64(1000)
		avg := 0.0
		if metric.count > 0 {
			avg = float64(micros) / float64(metric.count)
		}
		fmt.Fprintf(w, "%-*s\t%-6d\t%-8.1f\t%.1f\n", width, metric.name, metric.count, avg, total)
	}
}

// / Compute a high-res timer value that fits into an int64.
func HighResTimer() int64 {
	return time.Now().UnixNano()
}

func TimerToMicros(dt int64) int64 {
	return time.Duration(dt).Microseconds()
}
