// Package integration fans business events out to third-party services
// (CRM, marketing, chat, SMS, Google Workspace, automation webhooks).
//
// Every provider is optional and independent: a provider without credentials
// is skipped, and a failing provider never affects the others or the caller.
package integration

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brightforge/agency-backend/internal/model"
)

// EventKind names a business event that providers may react to.
type EventKind string

const (
	EventNewContact     EventKind = "new_contact"
	EventNewClient      EventKind = "new_client"
	EventNewProject     EventKind = "new_project"
	EventProjectUpdated EventKind = "project_updated"
)

// Event is the payload handed to every provider. Exactly one of Contact,
// Client or Project is set, matching Kind.
type Event struct {
	Kind    EventKind
	At      time.Time
	Contact *model.ContactSubmission
	Client  *model.Client
	Project *model.Project
}

// NewContactEvent builds an EventNewContact event.
func NewContactEvent(c *model.ContactSubmission, at time.Time) Event {
	return Event{Kind: EventNewContact, At: at, Contact: c}
}

// NewClientEvent builds an EventNewClient event.
func NewClientEvent(c *model.Client, at time.Time) Event {
	return Event{Kind: EventNewClient, At: at, Client: c}
}

// ProjectEvent builds an EventNewProject or EventProjectUpdated event.
func ProjectEvent(kind EventKind, p *model.Project, at time.Time) Event {
	return Event{Kind: kind, At: at, Project: p}
}

// Provider is a single outbound integration.
type Provider interface {
	Name() string
	// Enabled reports whether the provider has the credentials it needs.
	Enabled() bool
	Supports(kind EventKind) bool
	// Notify delivers ev and returns the provider's decoded response.
	Notify(ctx context.Context, ev Event) (any, error)
	// Services lists the capabilities reported on the status endpoint.
	Services() []string
}

// Results maps a provider name to its response, or nil when the call failed.
// Providers that were not attempted are absent.
type Results map[string]any

// ProviderStatus is one entry of the integration status report.
type ProviderStatus struct {
	Enabled  bool     `json:"enabled"`
	Services []string `json:"services"`
}

// StatusError is returned when a provider answers with a non-2xx status.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Provider, e.StatusCode, e.Body)
}

// FailureRecorder is notified of every failed provider call.
type FailureRecorder interface {
	RecordIntegrationFailure(ctx context.Context, provider string, kind EventKind, err error)
}

// splitName splits a display name into first name and remaining last name.
func splitName(name string) (first, last string) {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
