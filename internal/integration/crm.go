package integration

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/brightforge/agency-backend/internal/config"
)

// ─── HubSpot ────────────────────────────────────────────────────────

type hubSpot struct {
	caller
	apiKey  string
	baseURL string
}

func newHubSpot(cfg config.IntegrationsConfig, client *http.Client) *hubSpot {
	return &hubSpot{
		caller:  caller{provider: "hubspot", client: client},
		apiKey:  cfg.HubSpotAPIKey,
		baseURL: "https://api.hubapi.com",
	}
}

func (p *hubSpot) Name() string       { return "hubspot" }
func (p *hubSpot) Enabled() bool      { return p.apiKey != "" }
func (p *hubSpot) Services() []string { return []string{"Contacts", "Deals"} }

func (p *hubSpot) Supports(kind EventKind) bool {
	return kind == EventNewContact || kind == EventNewClient
}

// Notify creates a CRM contact for a new inquiry or client.
func (p *hubSpot) Notify(ctx context.Context, ev Event) (any, error) {
	props := map[string]string{}
	switch {
	case ev.Contact != nil:
		first, last := splitName(ev.Contact.Name)
		props["email"] = ev.Contact.Email
		props["firstname"] = first
		props["lastname"] = last
		props["company"] = deref(ev.Contact.Company)
		props["phone"] = deref(ev.Contact.Phone)
	case ev.Client != nil:
		first, last := splitName(ev.Client.Name)
		props["email"] = ev.Client.Email
		props["firstname"] = first
		props["lastname"] = last
		props["company"] = ev.Client.Company
		props["phone"] = deref(ev.Client.Phone)
	default:
		return nil, errors.New("hubspot: event has no contact or client")
	}
	return p.postJSON(ctx, p.baseURL+"/crm/v3/objects/contacts",
		map[string]any{"properties": props}, withBearer(p.apiKey))
}

// ─── Salesforce ─────────────────────────────────────────────────────

type salesforce struct {
	caller
	instanceURL string
	accessToken string
}

func newSalesforce(cfg config.IntegrationsConfig, client *http.Client) *salesforce {
	return &salesforce{
		caller:      caller{provider: "salesforce", client: client},
		instanceURL: cfg.SalesforceInstanceURL,
		accessToken: cfg.SalesforceAccessToken,
	}
}

func (p *salesforce) Name() string       { return "salesforce" }
func (p *salesforce) Enabled() bool      { return p.instanceURL != "" && p.accessToken != "" }
func (p *salesforce) Services() []string { return []string{"Leads"} }

func (p *salesforce) Supports(kind EventKind) bool { return kind == EventNewContact }

// Notify creates a lead. Salesforce requires LastName and Company.
func (p *salesforce) Notify(ctx context.Context, ev Event) (any, error) {
	if ev.Contact == nil {
		return nil, errors.New("salesforce: event has no contact")
	}
	first, last := splitName(ev.Contact.Name)
	lead := map[string]any{
		"FirstName": first,
		"LastName":  orDefault(last, "Unknown"),
		"Email":     ev.Contact.Email,
		"Company":   orDefault(deref(ev.Contact.Company), "Unknown"),
		"Phone":     deref(ev.Contact.Phone),
		"Status":    "New",
	}
	return p.postJSON(ctx, p.instanceURL+"/services/data/v58.0/sobjects/Lead/", lead, withBearer(p.accessToken))
}

// ─── Mailchimp ──────────────────────────────────────────────────────

type mailchimp struct {
	caller
	apiKey  string
	listID  string
	baseURL string
}

func newMailchimp(cfg config.IntegrationsConfig, client *http.Client) *mailchimp {
	p := &mailchimp{
		caller: caller{provider: "mailchimp", client: client},
		apiKey: cfg.MailchimpAPIKey,
		listID: cfg.MailchimpListID,
	}
	// API keys end in "-<datacenter>", which selects the API host.
	if i := strings.LastIndex(p.apiKey, "-"); i >= 0 && i < len(p.apiKey)-1 {
		p.baseURL = fmt.Sprintf("https://%s.api.mailchimp.com", p.apiKey[i+1:])
	}
	return p
}

func (p *mailchimp) Name() string       { return "mailchimp" }
func (p *mailchimp) Enabled() bool      { return p.apiKey != "" && p.listID != "" && p.baseURL != "" }
func (p *mailchimp) Services() []string { return []string{"Mailing Lists"} }

func (p *mailchimp) Supports(kind EventKind) bool { return kind == EventNewContact }

// Notify subscribes the contact to the configured audience.
func (p *mailchimp) Notify(ctx context.Context, ev Event) (any, error) {
	if ev.Contact == nil {
		return nil, errors.New("mailchimp: event has no contact")
	}
	first, last := splitName(ev.Contact.Name)
	member := map[string]any{
		"email_address": ev.Contact.Email,
		"status":        "subscribed",
		"merge_fields":  map[string]string{"FNAME": first, "LNAME": last},
	}
	endpoint := fmt.Sprintf("%s/3.0/lists/%s/members", p.baseURL, url.PathEscape(p.listID))
	return p.postJSON(ctx, endpoint, member, withBasicAuth("anystring", p.apiKey))
}
