package integration

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// mockProvider is a configurable Provider.
type mockProvider struct {
	name     string
	enabled  bool
	kinds    kindSet
	notifyFn func(ctx context.Context, ev Event) (any, error)
	calls    atomic.Int32
}

func (m *mockProvider) Name() string                 { return m.name }
func (m *mockProvider) Enabled() bool                { return m.enabled }
func (m *mockProvider) Services() []string           { return []string{"Test"} }
func (m *mockProvider) Supports(kind EventKind) bool { return m.kinds.has(kind) }

func (m *mockProvider) Notify(ctx context.Context, ev Event) (any, error) {
	m.calls.Add(1)
	if m.notifyFn != nil {
		return m.notifyFn(ctx, ev)
	}
	return "ok", nil
}

type recordedFailure struct {
	provider string
	kind     EventKind
}

type mockRecorder struct {
	mu       sync.Mutex
	failures []recordedFailure
}

func (r *mockRecorder) RecordIntegrationFailure(_ context.Context, provider string, kind EventKind, _ error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, recordedFailure{provider, kind})
}

func nopLogger() zerolog.Logger { return zerolog.New(io.Discard) }

func TestDispatchSkipsDisabledAndIsolatesFailures(t *testing.T) {
	ok := &mockProvider{name: "ok", enabled: true, kinds: kinds(EventNewContact)}
	failing := &mockProvider{name: "failing", enabled: true, kinds: kinds(EventNewContact),
		notifyFn: func(context.Context, Event) (any, error) { return nil, errors.New("boom") }}
	status := &mockProvider{name: "status", enabled: true, kinds: kinds(EventNewContact),
		notifyFn: func(context.Context, Event) (any, error) {
			return nil, &StatusError{Provider: "status", StatusCode: 500, Body: "nope"}
		}}
	panicking := &mockProvider{name: "panicking", enabled: true, kinds: kinds(EventNewContact),
		notifyFn: func(context.Context, Event) (any, error) { panic("kaboom") }}
	disabled := &mockProvider{name: "disabled", enabled: false, kinds: kinds(EventNewContact)}
	unsupported := &mockProvider{name: "unsupported", enabled: true, kinds: kinds(EventNewClient)}

	rec := &mockRecorder{}
	d := NewDispatcher([]Provider{ok, failing, status, panicking, disabled, unsupported}, 2, time.Second, nopLogger())
	d.SetFailureRecorder(rec)

	results := d.Dispatch(context.Background(), Event{Kind: EventNewContact, At: time.Now()})

	if len(results) != 4 {
		t.Fatalf("got %d results, want 4: %v", len(results), results)
	}
	if results["ok"] != "ok" {
		t.Errorf("ok result = %v", results["ok"])
	}
	for _, name := range []string{"failing", "status", "panicking"} {
		v, present := results[name]
		if !present || v != nil {
			t.Errorf("%s: present=%v value=%v, want present nil", name, present, v)
		}
	}
	for _, name := range []string{"disabled", "unsupported"} {
		if _, present := results[name]; present {
			t.Errorf("%s should be absent from results", name)
		}
	}
	if disabled.calls.Load() != 0 || unsupported.calls.Load() != 0 {
		t.Error("disabled or unsupported provider was called")
	}
	if len(rec.failures) != 3 {
		t.Errorf("recorded %d failures, want 3", len(rec.failures))
	}
}

func TestDispatchEnabledSubsetProperty(t *testing.T) {
	// Every combination of enabled/failing across four providers.
	for mask := 0; mask < 1<<8; mask++ {
		var providers []Provider
		wantPresent := map[string]bool{}
		wantNil := map[string]bool{}
		for i := 0; i < 4; i++ {
			enabled := mask&(1<<i) != 0
			fails := mask&(1<<(i+4)) != 0
			name := string(rune('a' + i))
			p := &mockProvider{name: name, enabled: enabled, kinds: kinds(EventNewContact)}
			if fails {
				p.notifyFn = func(context.Context, Event) (any, error) { return nil, errors.New("x") }
			}
			providers = append(providers, p)
			if enabled {
				wantPresent[name] = true
				wantNil[name] = fails
			}
		}

		d := NewDispatcher(providers, 3, time.Second, nopLogger())
		results := d.Dispatch(context.Background(), Event{Kind: EventNewContact})

		if len(results) != len(wantPresent) {
			t.Fatalf("mask %08b: got %d results, want %d", mask, len(results), len(wantPresent))
		}
		for name := range wantPresent {
			v, present := results[name]
			if !present {
				t.Fatalf("mask %08b: %s missing", mask, name)
			}
			if (v == nil) != wantNil[name] {
				t.Fatalf("mask %08b: %s = %v, want nil=%v", mask, name, v, wantNil[name])
			}
		}
	}
}

func TestDispatchRespectsParallelLimit(t *testing.T) {
	var inFlight, peak atomic.Int32
	slow := func(context.Context, Event) (any, error) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		inFlight.Add(-1)
		return "ok", nil
	}

	var providers []Provider
	for i := 0; i < 6; i++ {
		providers = append(providers, &mockProvider{
			name: string(rune('a' + i)), enabled: true, kinds: kinds(EventNewContact), notifyFn: slow,
		})
	}

	d := NewDispatcher(providers, 2, time.Second, nopLogger())
	results := d.Dispatch(context.Background(), Event{Kind: EventNewContact})

	if len(results) != 6 {
		t.Fatalf("got %d results, want 6", len(results))
	}
	if peak.Load() > 2 {
		t.Errorf("peak concurrency %d exceeds limit 2", peak.Load())
	}
}

func TestDispatchTimeout(t *testing.T) {
	hanging := &mockProvider{name: "hang", enabled: true, kinds: kinds(EventNewContact),
		notifyFn: func(ctx context.Context, _ Event) (any, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}}

	d := NewDispatcher([]Provider{hanging}, 1, 20*time.Millisecond, nopLogger())
	start := time.Now()
	results := d.Dispatch(context.Background(), Event{Kind: EventNewContact})

	if time.Since(start) > time.Second {
		t.Error("dispatch did not honour the per-call timeout")
	}
	if v, present := results["hang"]; !present || v != nil {
		t.Errorf("hang result = %v (present=%v)", v, present)
	}
}

func TestStatusListsAllProviders(t *testing.T) {
	d := NewDispatcher([]Provider{
		&mockProvider{name: "on", enabled: true},
		&mockProvider{name: "off", enabled: false},
	}, 1, 0, nopLogger())

	status := d.Status()
	if len(status) != 2 {
		t.Fatalf("got %d entries", len(status))
	}
	if !status["on"].Enabled || status["off"].Enabled {
		t.Errorf("status = %+v", status)
	}
}

// kindSet lists the event kinds a mockProvider accepts.
type kindSet map[EventKind]struct{}

func kinds(ks ...EventKind) kindSet {
	set := make(kindSet, len(ks))
	for _, k := range ks {
		set[k] = struct{}{}
	}
	return set
}

func (s kindSet) has(k EventKind) bool {
	_, ok := s[k]
	return ok
}
