// Reduces the logs of a finished run into the reported statistics.

package sim

import (
	"fmt"
	"io"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/mmcsim/sim/analytic"
)

// Result aggregates the statistics of one run for final reporting.
// It is produced once, after every worker has returned, and never mutated.
type Result struct {
	ArrivalRate    float64 `yaml:"arrival_rate"`
	ServiceRate    float64 `yaml:"service_rate"`
	Customers      int     `yaml:"customers"`
	Servers        int     `yaml:"servers"`
	SampleInterval float64 `yaml:"sample_interval"`

	Generated int `yaml:"generated"`
	Served    int `yaml:"served"`

	Interarrival Summary `yaml:"interarrival"`
	Wait         Summary `yaml:"wait"`
	Service      Summary `yaml:"service"`
	QueueLength  Summary `yaml:"queue_length"` // Mean is time-weighted

	Utilization float64 `yaml:"utilization"` // fraction of total server-time spent serving
	Duration    float64 `yaml:"duration"`    // simulated seconds from start to the last join

	PerServer []ServerStats `yaml:"per_server"`
	Analytic  *analytic.MMC `yaml:"analytic,omitempty"`
}

// Summarize reduces a finished run. It is single-threaded and must only be
// called after every worker goroutine has returned.
func Summarize(cfg Config, st *SharedState, sampler *QueueLengthSampler, pool *ServerPool, duration float64) *Result {
	counts := st.Counts()
	totals := st.Totals()

	res := &Result{
		ArrivalRate:    cfg.ArrivalRate,
		ServiceRate:    cfg.ServiceRate,
		Customers:      cfg.Customers,
		Servers:        cfg.Servers,
		SampleInterval: cfg.SampleInterval,
		Generated:      counts.Generated,
		Served:         counts.Served,
		Duration:       duration,
	}
	res.Interarrival = summarize(st.Arrivals(), func(c Customer) float64 { return c.Interarrival })
	res.Wait = summarize(st.Arrivals(), func(c Customer) float64 { return c.WaitEstimate })
	res.Service = summarize(st.Services(), func(s ServiceRecord) float64 { return s.Duration })

	if sampler != nil {
		res.QueueLength = summarize(sampler.Samples(), func(q QueueSample) float64 { return float64(q.Length) })
		res.QueueLength.Mean = sampler.TimeWeightedMean()
	} else {
		res.QueueLength = Summary{Mean: math.NaN(), StdDev: math.NaN()}
	}
	if pool != nil {
		res.PerServer = pool.Stats()
	}

	res.Utilization = safeDiv(totals.Occupied, duration*float64(cfg.Servers))

	if model, err := analytic.Solve(cfg.ArrivalRate, cfg.ServiceRate, cfg.Servers); err == nil {
		res.Analytic = &model
	} else {
		logrus.Warnf("No analytic reference: %v", err)
	}

	for _, stat := range []struct {
		name  string
		value float64
	}{
		{"interarrival mean", res.Interarrival.Mean},
		{"service mean", res.Service.Mean},
		{"queue length mean", res.QueueLength.Mean},
		{"utilization", res.Utilization},
	} {
		if math.IsNaN(stat.value) {
			logrus.Warnf("Statistic %q is undefined for this run", stat.name)
		}
	}
	return res
}

// Print writes the human-readable report.
func (r *Result) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "Customers Generated                  : %d\n", r.Generated)
	fmt.Fprintf(w, "Customers Served                     : %d\n", r.Served)
	fmt.Fprintf(w, "Servers                              : %d\n", r.Servers)
	fmt.Fprintf(w, "Duration                             : %s s\n", formatStat(r.Duration))
	fmt.Fprintf(w, "Queue Sample Interval                : %s s\n", formatStat(r.SampleInterval))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Mean Interarrival Time               : %s\n", formatStat(r.Interarrival.Mean))
	fmt.Fprintf(w, "Mean Waiting Time                    : %s\n", formatStat(r.Wait.Mean))
	fmt.Fprintf(w, "Mean Service Time                    : %s\n", formatStat(r.Service.Mean))
	fmt.Fprintf(w, "Mean Queue Length                    : %s\n", formatStat(r.QueueLength.Mean))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Standard Deviation Interarrival Time : %s\n", formatStat(r.Interarrival.StdDev))
	fmt.Fprintf(w, "Standard Deviation Waiting Time      : %s\n", formatStat(r.Wait.StdDev))
	fmt.Fprintf(w, "Standard Deviation Service Time      : %s\n", formatStat(r.Service.StdDev))
	fmt.Fprintf(w, "Standard Deviation Queue Length      : %s\n", formatStat(r.QueueLength.StdDev))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Server Utilization                   : %s\n", formatPercent(r.Utilization))

	if len(r.PerServer) > 1 {
		fmt.Fprintln(w)
		for _, s := range r.PerServer {
			fmt.Fprintf(w, "Server %-3d served %6d, busy %s s\n", s.ID, s.Served, formatStat(s.Busy))
		}
	}

	if r.Analytic != nil {
		a := r.Analytic
		fmt.Fprintln(w)
		fmt.Fprintln(w, "=== M/M/c Steady State ===")
		fmt.Fprintf(w, "Utilization                          : %s\n", formatPercent(a.Utilization))
		fmt.Fprintf(w, "Probability of Waiting               : %s\n", formatStat(a.ProbWait))
		fmt.Fprintf(w, "Mean Queue Length                    : %s\n", formatStat(a.MeanQueueLength))
		fmt.Fprintf(w, "Mean Wait in Queue                   : %s\n", formatStat(a.MeanWait))
		fmt.Fprintf(w, "Mean Response Time                   : %s\n", formatStat(a.MeanResponse))
	}
}

func formatStat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "undefined"
	}
	return fmt.Sprintf("%f", v)
}

func formatPercent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "undefined"
	}
	return fmt.Sprintf("%f%%", v*100)
}
