package sim

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Options injects the run's collaborators. Zero fields get real ones.
type Options struct {
	// Clock paces arrivals, services and sampling and measures the run.
	// Default: NewRealClock(cfg.TimeScale).
	Clock Clock
	// Sources hands each goroutine its private uniform stream.
	// Default: NewSourceFactory(cfg.Seed).
	Sources SourceFactory
}

// Simulator owns one run: its configuration, its shared state and the
// workers that operate on it. A Simulator runs once.
type Simulator struct {
	Config Config

	clock   Clock
	sources SourceFactory
	state   *SharedState

	arrivals *ArrivalGenerator
	pool     *ServerPool
	sampler  *QueueLengthSampler
	ran      bool
}

// NewSimulator validates cfg and allocates the run's state. No goroutine is
// started; a *ConfigurationError or *ResourceError is returned before that.
func NewSimulator(cfg Config, opts Options) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	st, err := NewSharedState(cfg.Customers)
	if err != nil {
		return nil, err
	}
	if opts.Clock == nil {
		opts.Clock = NewRealClock(cfg.TimeScale)
	}
	if opts.Sources == nil {
		opts.Sources = NewSourceFactory(cfg.Seed)
	}
	return &Simulator{
		Config:  cfg,
		clock:   opts.Clock,
		sources: opts.Sources,
		state:   st,
	}, nil
}

// State exposes the shared state, mainly for inspection after Run.
func (s *Simulator) State() *SharedState {
	return s.state
}

// Run starts one arrival generator, C servers and one sampler, waits for all
// of them, then reduces the recorded samples.
func (s *Simulator) Run() *Result {
	if s.ran {
		panic("Simulator.Run: a Simulator runs once")
	}
	s.ran = true
	cfg := s.Config
	logrus.Infof("Starting M/M/%d simulation: λ=%v μ=%v customers=%d ρ=%.4f",
		cfg.Servers, cfg.ArrivalRate, cfg.ServiceRate, cfg.Customers, cfg.TrafficIntensity())

	start := s.clock.Now()
	s.arrivals = NewArrivalGenerator(cfg.ArrivalRate, s.state, s.clock, start, nil)
	s.pool = NewServerPool(cfg.Servers, cfg.ServiceRate, s.state, s.clock, s.sources)
	s.sampler = NewQueueLengthSampler(cfg.SampleInterval, s.state, s.clock, start)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.arrivals.rng = NewVariateSource(s.sources(RoleArrival))
		s.arrivals.Run()
	}()
	s.pool.Start(&wg)
	go func() {
		defer wg.Done()
		s.sampler.Run()
	}()
	wg.Wait()
	duration := s.clock.Now() - start

	res := Summarize(cfg, s.state, s.sampler, s.pool, duration)
	logrus.Infof("Simulation complete: served %d customers in %.3fs", res.Served, duration)
	return res
}

// Simulate is NewSimulator followed by Run.
func Simulate(cfg Config, opts Options) (*Result, error) {
	s, err := NewSimulator(cfg, opts)
	if err != nil {
		return nil, err
	}
	return s.Run(), nil
}
