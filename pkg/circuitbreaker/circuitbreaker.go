package circuitbreaker

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

const (
	// DefaultMinRequests is the number of requests a breaker must see before
	// it can trip.
	DefaultMinRequests = 10
	// DefaultFailureRatio is the ratio of failing requests that trips a
	// breaker.
	DefaultFailureRatio = 0.6
	// DefaultOpenTimeout is how long a tripped breaker rejects requests
	// before letting a trial one through.
	DefaultOpenTimeout = 30 * time.Second
)

// Opts tweak the conditions under which a breaker trips. Zero values are
// replaced by the defaults.
type Opts struct {
	MinRequests  uint32
	FailureRatio float64
	OpenTimeout  time.Duration
}

func (o Opts) withDefaults() Opts {
	if o.MinRequests == 0 {
		o.MinRequests = DefaultMinRequests
	}
	if o.FailureRatio <= 0 {
		o.FailureRatio = DefaultFailureRatio
	}
	if o.OpenTimeout <= 0 {
		o.OpenTimeout = DefaultOpenTimeout
	}
	return o
}

// New returns a breaker guarding the named resource. It trips once more than
// MinRequests were made and at least FailureRatio of them failed.
func New(name string, opts Opts) *gobreaker.CircuitBreaker {
	opts = opts.withDefaults()

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    name,
		Timeout: opts.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests <= opts.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= opts.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Debugf("circuit breaker %s: %s -> %s", name, from, to)
		},
	})
}

// Group holds one breaker per guarded resource, created on first use.
type Group struct {
	opts Opts

	lock     sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker
}

func NewGroup(opts Opts) *Group {
	return &Group{
		opts:     opts,
		breakers: make(map[string]*gobreaker.CircuitBreaker),
	}
}

// Get returns the breaker of the named resource.
func (g *Group) Get(name string) *gobreaker.CircuitBreaker {
	g.lock.Lock()
	defer g.lock.Unlock()

	cb, ok := g.breakers[name]
	if !ok {
		cb = New(name, g.opts)
		g.breakers[name] = cb
	}
	return cb
}

// Execute runs fn through the breaker of the named resource.
func (g *Group) Execute(name string, fn func() error) error {
	_, err := g.Get(name).Execute(func() (interface{}, error) {
		return nil, fn()
	})
	return err
}
