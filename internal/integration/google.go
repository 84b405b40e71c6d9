package integration

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/brightforge/agency-backend/internal/config"
)

var googleScopes = []string{
	"https://www.googleapis.com/auth/calendar.events",
	"https://www.googleapis.com/auth/spreadsheets",
}

// newGoogleTokens returns a token source for the Google APIs, or nil when no
// credentials are configured. With a refresh token and client credentials the
// access token is renewed automatically; otherwise the static access token is used.
func newGoogleTokens(cfg config.IntegrationsConfig, client *http.Client) oauth2.TokenSource {
	canRefresh := cfg.GoogleRefreshToken != "" && cfg.GoogleClientID != "" && cfg.GoogleClientSecret != ""
	switch {
	case canRefresh:
		conf := &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       googleScopes,
		}
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, client)
		return conf.TokenSource(ctx, &oauth2.Token{
			AccessToken:  cfg.GoogleAccessToken,
			RefreshToken: cfg.GoogleRefreshToken,
			// Force a refresh on first use; the configured access token may be stale.
			Expiry: time.Unix(1, 0),
		})
	case cfg.GoogleAccessToken != "":
		return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.GoogleAccessToken})
	default:
		return nil
	}
}

func googleAuth(ts oauth2.TokenSource) (requestOption, error) {
	tok, err := ts.Token()
	if err != nil {
		return nil, fmt.Errorf("google token: %w", err)
	}
	return func(r *http.Request) { tok.SetAuthHeader(r) }, nil
}

// ─── Calendar ───────────────────────────────────────────────────────

type calendar struct {
	caller
	tokens     oauth2.TokenSource
	calendarID string
	baseURL    string
}

func newCalendar(cfg config.IntegrationsConfig, client *http.Client, ts oauth2.TokenSource) *calendar {
	return &calendar{
		caller:     caller{provider: "calendar", client: client},
		tokens:     ts,
		calendarID: cfg.GoogleCalendarID,
		baseURL:    "https://www.googleapis.com/calendar/v3",
	}
}

func (p *calendar) Name() string                 { return "calendar" }
func (p *calendar) Enabled() bool                { return p.tokens != nil }
func (p *calendar) Services() []string           { return []string{"Calendar"} }
func (p *calendar) Supports(kind EventKind) bool { return kind == EventNewContact }

// followUpWindow returns 09:00-09:30 on the day after at, in at's location.
func followUpWindow(at time.Time) (start, end time.Time) {
	next := at.AddDate(0, 0, 1)
	start = time.Date(next.Year(), next.Month(), next.Day(), 9, 0, 0, 0, at.Location())
	return start, start.Add(30 * time.Minute)
}

// Notify books a follow-up slot for the new contact.
func (p *calendar) Notify(ctx context.Context, ev Event) (any, error) {
	if ev.Contact == nil {
		return nil, errors.New("calendar: event has no contact")
	}
	auth, err := googleAuth(p.tokens)
	if err != nil {
		return nil, err
	}
	c := ev.Contact
	start, end := followUpWindow(ev.At)
	body := map[string]any{
		"summary": "Follow up: " + c.Name,
		"description": fmt.Sprintf("Follow up with %s from %s\nEmail: %s\nOriginal message: %s",
			c.Name, deref(c.Company), c.Email, c.Message),
		"start": map[string]string{"dateTime": start.Format(time.RFC3339)},
		"end":   map[string]string{"dateTime": end.Format(time.RFC3339)},
	}
	endpoint := fmt.Sprintf("%s/calendars/%s/events", p.baseURL, url.PathEscape(p.calendarID))
	return p.postJSON(ctx, endpoint, body, auth)
}

// ─── Sheets ─────────────────────────────────────────────────────────

const sheetsRange = "A:F"

type sheets struct {
	caller
	tokens  oauth2.TokenSource
	sheetID string
	baseURL string
}

func newSheets(cfg config.IntegrationsConfig, client *http.Client, ts oauth2.TokenSource) *sheets {
	return &sheets{
		caller:  caller{provider: "sheets", client: client},
		tokens:  ts,
		sheetID: cfg.GoogleSheetsID,
		baseURL: "https://sheets.googleapis.com/v4",
	}
}

func (p *sheets) Name() string                 { return "sheets" }
func (p *sheets) Enabled() bool                { return p.tokens != nil && p.sheetID != "" }
func (p *sheets) Services() []string           { return []string{"Sheets"} }
func (p *sheets) Supports(kind EventKind) bool { return kind == EventNewContact }

// Notify appends one row per submission to the tracking spreadsheet.
func (p *sheets) Notify(ctx context.Context, ev Event) (any, error) {
	if ev.Contact == nil {
		return nil, errors.New("sheets: event has no contact")
	}
	auth, err := googleAuth(p.tokens)
	if err != nil {
		return nil, err
	}
	c := ev.Contact
	body := map[string]any{
		"range":          sheetsRange,
		"majorDimension": "ROWS",
		"values": [][]string{{
			ev.At.UTC().Format(time.RFC3339),
			c.Name,
			c.Email,
			deref(c.Company),
			deref(c.Phone),
			c.Message,
		}},
	}
	endpoint := fmt.Sprintf("%s/spreadsheets/%s/values/%s:append",
		p.baseURL, url.PathEscape(p.sheetID), url.PathEscape(sheetsRange))
	return p.postJSON(ctx, endpoint, body, auth, withQuery("valueInputOption", "RAW"))
}
