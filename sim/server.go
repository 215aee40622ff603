package sim

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Server is one worker of the server pool. All servers share the same queue
// and lock; each owns its service-time stream.
type Server struct {
	id    int
	rate  float64
	state *SharedState
	clock Clock
	rng   *VariateSource

	busy   float64 // seconds spent serving, written only by this server's goroutine
	served int

	due   float64 // scheduled completion of the latest service
	paced bool    // due holds a completion from this run
}

// NewServer creates server id with service rate μ.
func NewServer(id int, rate float64, state *SharedState, clock Clock, rng *VariateSource) *Server {
	return &Server{id: id, rate: rate, state: state, clock: clock, rng: rng}
}

// Run serves customers until every customer has been claimed.
// A customer taken without waiting starts at the previous scheduled
// completion, so back-to-back services do not accumulate sleep lateness.
// The simulated service sleep happens outside the lock.
func (s *Server) Run() {
	for {
		ok, waited := s.state.claim()
		if !ok {
			break
		}
		d := s.rng.Exponential(s.rate)
		if waited || !s.paced {
			s.due = s.clock.Now()
			s.paced = true
		}
		s.due += d
		s.clock.SleepUntil(s.due)
		total := s.state.complete(s.id, d)
		s.busy += d
		s.served++
		logrus.Debugf("[server %d] service=%.6fs served=%d", s.id, d, total)
	}
	logrus.Debugf("[server %d] exiting after %d customers", s.id, s.served)
}

// ServerStats is a per-server breakdown read after the pool has stopped.
type ServerStats struct {
	ID     int     `yaml:"id"`
	Served int     `yaml:"served"`
	Busy   float64 `yaml:"busy"`
}

// ServerPool runs C servers against one SharedState.
type ServerPool struct {
	servers []*Server
	sources SourceFactory
}

// NewServerPool creates count servers with service rate μ. Each server's
// stream is taken from sources when its goroutine starts.
func NewServerPool(count int, rate float64, state *SharedState, clock Clock, sources SourceFactory) *ServerPool {
	p := &ServerPool{servers: make([]*Server, count), sources: sources}
	for i := range p.servers {
		p.servers[i] = NewServer(i, rate, state, clock, nil)
	}
	return p
}

// Start launches one goroutine per server. wg is marked done as each exits.
func (p *ServerPool) Start(wg *sync.WaitGroup) {
	for i, s := range p.servers {
		i, s := i, s
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.rng == nil {
				s.rng = NewVariateSource(p.sources(RoleServer(i)))
			}
			s.Run()
		}()
	}
}

// Stats returns the per-server breakdown. Only valid after every server
// goroutine has returned.
func (p *ServerPool) Stats() []ServerStats {
	out := make([]ServerStats, len(p.servers))
	for i, s := range p.servers {
		out[i] = ServerStats{ID: s.id, Served: s.served, Busy: s.busy}
	}
	return out
}
