package integration

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/brightforge/agency-backend/internal/config"
)

// Dispatcher fans events out to every enabled provider in parallel.
type Dispatcher struct {
	providers   []Provider
	maxParallel int
	timeout     time.Duration
	recorder    FailureRecorder
	log         zerolog.Logger
}

// NewDispatcher creates a Dispatcher over an explicit provider list.
func NewDispatcher(providers []Provider, maxParallel int, timeout time.Duration, log zerolog.Logger) *Dispatcher {
	if maxParallel <= 0 {
		maxParallel = 1
	}
	return &Dispatcher{
		providers:   providers,
		maxParallel: maxParallel,
		timeout:     timeout,
		log:         log.With().Str("component", "integrations").Logger(),
	}
}

// New builds the full provider set from configuration.
func New(cfg config.IntegrationsConfig, log zerolog.Logger) *Dispatcher {
	client := &http.Client{Timeout: cfg.HTTPTimeout}
	google := newGoogleTokens(cfg, client)

	providers := []Provider{
		newHubSpot(cfg, client),
		newSalesforce(cfg, client),
		newMailchimp(cfg, client),
		newSlack(cfg, client),
		newTeams(cfg, client),
		newTwilio(cfg, client),
		newCalendar(cfg, client, google),
		newSheets(cfg, client, google),
		newZapier(cfg, client),
		newN8N(cfg, client),
	}
	return NewDispatcher(providers, cfg.MaxParallel, cfg.HTTPTimeout, log)
}

// SetFailureRecorder installs a hook called for every failed provider call.
func (d *Dispatcher) SetFailureRecorder(r FailureRecorder) {
	d.recorder = r
}

// Dispatch delivers ev to every enabled provider that supports it and waits
// for all of them. It never fails: a provider error is logged and recorded
// as a nil result.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) Results {
	results := make(Results)
	var mu sync.Mutex

	g := new(errgroup.Group)
	g.SetLimit(d.maxParallel)

	for _, p := range d.providers {
		if !p.Enabled() || !p.Supports(ev.Kind) {
			continue
		}
		g.Go(func() error {
			res, err := d.call(ctx, p, ev)
			if err != nil {
				d.log.Warn().Err(err).
					Str("provider", p.Name()).
					Str("event", string(ev.Kind)).
					Msg("Integration call failed")
				if d.recorder != nil {
					d.recorder.RecordIntegrationFailure(ctx, p.Name(), ev.Kind, err)
				}
				res = nil
			}
			mu.Lock()
			results[p.Name()] = res
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// call runs a single provider under the per-call timeout, turning panics into errors.
func (d *Dispatcher) call(ctx context.Context, p Provider, ev Event) (res any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: panic: %v", p.Name(), r)
		}
	}()
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}
	return p.Notify(ctx, ev)
}

// Status reports every known provider with its enabled flag and capabilities.
func (d *Dispatcher) Status() map[string]ProviderStatus {
	out := make(map[string]ProviderStatus, len(d.providers))
	for _, p := range d.providers {
		out[p.Name()] = ProviderStatus{Enabled: p.Enabled(), Services: p.Services()}
	}
	return out
}
