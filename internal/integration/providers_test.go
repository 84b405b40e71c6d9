package integration

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"github.com/brightforge/agency-backend/internal/config"
	"github.com/brightforge/agency-backend/internal/model"
)

// capturedRequest is what a fake provider endpoint received.
type capturedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// newCaptureServer answers every request with status and body, recording it.
func newCaptureServer(t *testing.T, status int, body string) (*httptest.Server, func() capturedRequest) {
	t.Helper()
	var (
		mu   sync.Mutex
		last capturedRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		mu.Lock()
		last = capturedRequest{Method: r.Method, Path: r.URL.Path, Query: r.URL.Query(), Header: r.Header.Clone(), Body: raw}
		mu.Unlock()
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, func() capturedRequest {
		mu.Lock()
		defer mu.Unlock()
		return last
	}
}

func strPtr(s string) *string { return &s }

func sampleContact() *model.ContactSubmission {
	return &model.ContactSubmission{
		ID:      7,
		Name:    "Jane Q Doe",
		Email:   "jane@example.com",
		Company: strPtr("Acme"),
		Message: "hello",
	}
}

func decodeJSON(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("invalid JSON body %q: %v", raw, err)
	}
	return m
}

func TestHubSpotContactPayload(t *testing.T) {
	srv, last := newCaptureServer(t, http.StatusCreated, `{"id":"123"}`)
	p := newHubSpot(config.IntegrationsConfig{HubSpotAPIKey: "key"}, srv.Client())
	p.baseURL = srv.URL

	res, err := p.Notify(context.Background(), NewContactEvent(sampleContact(), time.Now()))
	if err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if m, ok := res.(map[string]any); !ok || m["id"] != "123" {
		t.Errorf("result = %v", res)
	}

	req := last()
	if req.Path != "/crm/v3/objects/contacts" {
		t.Errorf("path = %s", req.Path)
	}
	if got := req.Header.Get("Authorization"); got != "Bearer key" {
		t.Errorf("Authorization = %q", got)
	}
	props := decodeJSON(t, req.Body)["properties"].(map[string]any)
	if props["firstname"] != "Jane" || props["lastname"] != "Q Doe" || props["company"] != "Acme" {
		t.Errorf("properties = %v", props)
	}
}

func TestSalesforceDefaultsLastNameAndCompany(t *testing.T) {
	srv, last := newCaptureServer(t, http.StatusCreated, `{"id":"00Q"}`)
	p := newSalesforce(config.IntegrationsConfig{SalesforceInstanceURL: srv.URL, SalesforceAccessToken: "tok"}, srv.Client())

	c := &model.ContactSubmission{Name: "Cher", Email: "cher@example.com", Message: "hi"}
	if _, err := p.Notify(context.Background(), NewContactEvent(c, time.Now())); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	body := decodeJSON(t, last().Body)
	if body["LastName"] != "Unknown" || body["Company"] != "Unknown" || body["Status"] != "New" {
		t.Errorf("lead = %v", body)
	}
}

func TestMailchimpDatacenterFromKey(t *testing.T) {
	p := newMailchimp(config.IntegrationsConfig{MailchimpAPIKey: "abc123-us21", MailchimpListID: "L1"}, http.DefaultClient)
	if p.baseURL != "https://us21.api.mailchimp.com" {
		t.Errorf("baseURL = %s", p.baseURL)
	}
	if !p.Enabled() {
		t.Error("should be enabled")
	}

	noDC := newMailchimp(config.IntegrationsConfig{MailchimpAPIKey: "abc123", MailchimpListID: "L1"}, http.DefaultClient)
	if noDC.Enabled() {
		t.Error("key without datacenter should disable the provider")
	}
}

func TestMailchimpMemberPayload(t *testing.T) {
	srv, last := newCaptureServer(t, http.StatusOK, `{"id":"m"}`)
	p := newMailchimp(config.IntegrationsConfig{MailchimpAPIKey: "abc-us1", MailchimpListID: "L1"}, srv.Client())
	p.baseURL = srv.URL

	if _, err := p.Notify(context.Background(), NewContactEvent(sampleContact(), time.Now())); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	req := last()
	if req.Path != "/3.0/lists/L1/members" {
		t.Errorf("path = %s", req.Path)
	}
	if user, pass, ok := (&http.Request{Header: req.Header}).BasicAuth(); !ok || user != "anystring" || pass != "abc-us1" {
		t.Errorf("basic auth = %q %q %v", user, pass, ok)
	}
	if body := decodeJSON(t, req.Body); body["status"] != "subscribed" {
		t.Errorf("body = %v", body)
	}
}

func TestSlackAcceptsPlainTextResponse(t *testing.T) {
	srv, last := newCaptureServer(t, http.StatusOK, "ok")
	p := newSlack(config.IntegrationsConfig{SlackWebhookURL: srv.URL}, srv.Client())

	res, err := p.Notify(context.Background(), NewContactEvent(sampleContact(), time.Now()))
	if err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if res != "ok" {
		t.Errorf("result = %v", res)
	}
	text := decodeJSON(t, last().Body)["text"].(string)
	if !strings.Contains(text, "Jane Q Doe (jane@example.com)") {
		t.Errorf("text = %q", text)
	}
}

func TestTeamsMessageCard(t *testing.T) {
	srv, last := newCaptureServer(t, http.StatusOK, "1")
	p := newTeams(config.IntegrationsConfig{TeamsWebhookURL: srv.URL}, srv.Client())

	if _, err := p.Notify(context.Background(), NewContactEvent(sampleContact(), time.Now())); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	body := decodeJSON(t, last().Body)
	if body["@type"] != "MessageCard" || body["themeColor"] != "28A745" {
		t.Errorf("card = %v", body)
	}
}

func TestTwilioSendsForm(t *testing.T) {
	srv, last := newCaptureServer(t, http.StatusCreated, `{"sid":"SM1"}`)
	p := newTwilio(config.IntegrationsConfig{
		TwilioAccountSID: "AC1", TwilioAuthToken: "secret", TwilioPhoneNumber: "+100", AdminPhone: "+200",
	}, srv.Client())
	p.baseURL = srv.URL

	client := &model.Client{Name: "Ada", Company: "Analytical"}
	if _, err := p.Notify(context.Background(), NewClientEvent(client, time.Now())); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	req := last()
	if req.Path != "/2010-04-01/Accounts/AC1/Messages.json" {
		t.Errorf("path = %s", req.Path)
	}
	form, _ := url.ParseQuery(string(req.Body))
	if form.Get("To") != "+200" || form.Get("From") != "+100" {
		t.Errorf("form = %v", form)
	}
	if form.Get("Body") != "New client added: Ada from Analytical" {
		t.Errorf("Body = %q", form.Get("Body"))
	}
}

func TestCalendarFollowUpWindow(t *testing.T) {
	loc := time.FixedZone("x", -5*3600)
	at := time.Date(2024, 12, 31, 22, 15, 0, 0, loc)
	start, end := followUpWindow(at)

	if want := time.Date(2025, 1, 1, 9, 0, 0, 0, loc); !start.Equal(want) {
		t.Errorf("start = %v, want %v", start, want)
	}
	if end.Sub(start) != 30*time.Minute {
		t.Errorf("duration = %v", end.Sub(start))
	}
}

func TestCalendarAndSheetsUseToken(t *testing.T) {
	srv, last := newCaptureServer(t, http.StatusOK, `{}`)
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "gtok"})
	cfg := config.IntegrationsConfig{GoogleCalendarID: "primary", GoogleSheetsID: "sheet1"}

	cal := newCalendar(cfg, srv.Client(), ts)
	cal.baseURL = srv.URL
	if _, err := cal.Notify(context.Background(), NewContactEvent(sampleContact(), time.Now())); err != nil {
		t.Fatalf("calendar Notify: %v", err)
	}
	if req := last(); req.Header.Get("Authorization") != "Bearer gtok" || req.Path != "/calendars/primary/events" {
		t.Errorf("calendar request = %s %q", req.Path, req.Header.Get("Authorization"))
	}

	sh := newSheets(cfg, srv.Client(), ts)
	sh.baseURL = srv.URL
	if _, err := sh.Notify(context.Background(), NewContactEvent(sampleContact(), time.Now())); err != nil {
		t.Fatalf("sheets Notify: %v", err)
	}
	req := last()
	if req.Query.Get("valueInputOption") != "RAW" {
		t.Errorf("query = %v", req.Query)
	}
	values := decodeJSON(t, req.Body)["values"].([]any)
	if row := values[0].([]any); len(row) != 6 || row[1] != "Jane Q Doe" {
		t.Errorf("row = %v", row)
	}
}

func TestGoogleTokensSelection(t *testing.T) {
	if ts := newGoogleTokens(config.IntegrationsConfig{}, http.DefaultClient); ts != nil {
		t.Error("no credentials should yield nil token source")
	}
	ts := newGoogleTokens(config.IntegrationsConfig{GoogleAccessToken: "a"}, http.DefaultClient)
	tok, err := ts.Token()
	if err != nil || tok.AccessToken != "a" {
		t.Errorf("static token = %v, %v", tok, err)
	}
}

func TestN8NWorkflowPaths(t *testing.T) {
	srv, last := newCaptureServer(t, http.StatusOK, `{"executionId":"e1"}`)
	p := newN8N(config.IntegrationsConfig{N8NBaseURL: srv.URL}, srv.Client())

	project := &model.Project{ID: 3, ClientID: 1, Name: "Site"}
	if _, err := p.Notify(context.Background(), ProjectEvent(EventProjectUpdated, project, time.Now())); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	req := last()
	if req.Path != "/webhook/project-updated" {
		t.Errorf("path = %s", req.Path)
	}
	body := decodeJSON(t, req.Body)
	if body["type"] != "project_updated" || body["project"] == nil {
		t.Errorf("body = %v", body)
	}
}

func TestNon2xxBecomesStatusError(t *testing.T) {
	srv, _ := newCaptureServer(t, http.StatusBadGateway, "upstream down")
	p := newZapier(config.IntegrationsConfig{ZapierWebhookURL: srv.URL}, srv.Client())

	_, err := p.Notify(context.Background(), NewContactEvent(sampleContact(), time.Now()))
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *StatusError", err)
	}
	if se.StatusCode != http.StatusBadGateway || se.Provider != "zapier" {
		t.Errorf("StatusError = %+v", se)
	}
}

func TestNewDisablesUnconfiguredProviders(t *testing.T) {
	d := New(config.IntegrationsConfig{SlackWebhookURL: "http://example.invalid", MaxParallel: 2}, nopLogger())
	status := d.Status()
	if len(status) != 10 {
		t.Fatalf("got %d providers, want 10", len(status))
	}
	for name, st := range status {
		if st.Enabled != (name == "slack") {
			t.Errorf("%s enabled = %v", name, st.Enabled)
		}
	}
}

func TestProviderEventRouting(t *testing.T) {
	d := New(config.IntegrationsConfig{MaxParallel: 2}, nopLogger())

	want := map[EventKind][]string{
		EventNewContact:     {"calendar", "hubspot", "mailchimp", "n8n", "salesforce", "sheets", "slack", "teams", "zapier"},
		EventNewClient:      {"hubspot", "twilio"},
		EventNewProject:     {"n8n", "zapier"},
		EventProjectUpdated: {"n8n", "zapier"},
	}
	for kind, names := range want {
		var got []string
		for _, p := range d.providers {
			if p.Supports(kind) {
				got = append(got, p.Name())
			}
		}
		sort.Strings(got)
		if strings.Join(got, ",") != strings.Join(names, ",") {
			t.Errorf("%s routed to %v, want %v", kind, got, names)
		}
	}
}
