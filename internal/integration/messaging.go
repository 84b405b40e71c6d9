package integration

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/brightforge/agency-backend/internal/config"
)

// contactSummary renders the common fields shared by chat messages.
func contactSummary(ev Event) (name, email, company, phone, message string, err error) {
	if ev.Contact == nil {
		return "", "", "", "", "", errors.New("event has no contact")
	}
	c := ev.Contact
	return c.Name, c.Email, deref(c.Company), orDefault(deref(c.Phone), "N/A"), c.Message, nil
}

// ─── Slack ──────────────────────────────────────────────────────────

type slack struct {
	caller
	webhookURL string
}

func newSlack(cfg config.IntegrationsConfig, client *http.Client) *slack {
	return &slack{caller: caller{provider: "slack", client: client}, webhookURL: cfg.SlackWebhookURL}
}

func (p *slack) Name() string                 { return "slack" }
func (p *slack) Enabled() bool                { return p.webhookURL != "" }
func (p *slack) Services() []string           { return []string{"Webhooks"} }
func (p *slack) Supports(kind EventKind) bool { return kind == EventNewContact }

// Notify posts a message to the incoming webhook.
func (p *slack) Notify(ctx context.Context, ev Event) (any, error) {
	name, email, company, _, message, err := contactSummary(ev)
	if err != nil {
		return nil, fmt.Errorf("slack: %w", err)
	}
	text := fmt.Sprintf("New contact submission from %s (%s)\nCompany: %s\nMessage: %s", name, email, company, message)
	return p.postJSON(ctx, p.webhookURL, map[string]string{"text": text})
}

// ─── Microsoft Teams ────────────────────────────────────────────────

type teams struct {
	caller
	webhookURL string
}

func newTeams(cfg config.IntegrationsConfig, client *http.Client) *teams {
	return &teams{caller: caller{provider: "teams", client: client}, webhookURL: cfg.TeamsWebhookURL}
}

func (p *teams) Name() string                 { return "teams" }
func (p *teams) Enabled() bool                { return p.webhookURL != "" }
func (p *teams) Services() []string           { return []string{"Messages"} }
func (p *teams) Supports(kind EventKind) bool { return kind == EventNewContact }

// Notify posts a MessageCard to the connector webhook.
func (p *teams) Notify(ctx context.Context, ev Event) (any, error) {
	name, email, company, phone, message, err := contactSummary(ev)
	if err != nil {
		return nil, fmt.Errorf("teams: %w", err)
	}
	card := map[string]any{
		"@type":      "MessageCard",
		"@context":   "http://schema.org/extensions",
		"summary":    "New Contact Submission",
		"themeColor": "28A745",
		"sections": []map[string]string{{
			"activityTitle": "New Contact Submission",
			"activityText": fmt.Sprintf("**%s** from **%s** has submitted a contact form.\n\n**Email:** %s\n**Phone:** %s\n\n**Message:** %s",
				name, company, email, phone, message),
		}},
	}
	return p.postJSON(ctx, p.webhookURL, card)
}

// ─── Twilio ─────────────────────────────────────────────────────────

type twilio struct {
	caller
	accountSID string
	authToken  string
	from       string
	to         string
	baseURL    string
}

func newTwilio(cfg config.IntegrationsConfig, client *http.Client) *twilio {
	return &twilio{
		caller:     caller{provider: "twilio", client: client},
		accountSID: cfg.TwilioAccountSID,
		authToken:  cfg.TwilioAuthToken,
		from:       cfg.TwilioPhoneNumber,
		to:         cfg.AdminPhone,
		baseURL:    "https://api.twilio.com",
	}
}

func (p *twilio) Name() string { return "twilio" }

func (p *twilio) Enabled() bool {
	return p.accountSID != "" && p.authToken != "" && p.from != "" && p.to != ""
}

func (p *twilio) Services() []string           { return []string{"SMS"} }
func (p *twilio) Supports(kind EventKind) bool { return kind == EventNewClient }

// Notify texts the admin phone about a new client.
func (p *twilio) Notify(ctx context.Context, ev Event) (any, error) {
	if ev.Client == nil {
		return nil, errors.New("twilio: event has no client")
	}
	form := url.Values{
		"To":   {p.to},
		"From": {p.from},
		"Body": {fmt.Sprintf("New client added: %s from %s", ev.Client.Name, ev.Client.Company)},
	}
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", p.baseURL, url.PathEscape(p.accountSID))
	return p.postForm(ctx, endpoint, form, withBasicAuth(p.accountSID, p.authToken))
}
