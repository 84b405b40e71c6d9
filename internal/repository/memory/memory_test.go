package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/brightforge/agency-backend/internal/model"
	"github.com/brightforge/agency-backend/internal/repository"
)

// fakeClock is a settable clock safe for concurrent use.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(t time.Time) *fakeClock { return &fakeClock{now: t} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var epoch = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func TestContactDefaultsAndOrdering(t *testing.T) {
	clock := newFakeClock(epoch)
	s := New(clock.Now)
	ctx := context.Background()

	first := &model.ContactSubmission{Name: "Ada", Email: "ada@example.com", Message: "hi"}
	if err := s.Contacts.Create(ctx, first); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if first.ID != 1 || first.Status != model.ContactStatusNew || first.Priority != model.PriorityMedium {
		t.Fatalf("unexpected defaults: %+v", first)
	}
	if first.Source != model.DefaultContactSource {
		t.Errorf("source = %q", first.Source)
	}

	clock.Advance(time.Minute)
	second := &model.ContactSubmission{Name: "Bob", Email: "bob@example.com", Message: "yo"}
	_ = s.Contacts.Create(ctx, second)

	list, _ := s.Contacts.List(ctx)
	if len(list) != 2 || list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatalf("List not newest first: %+v", list)
	}
}

func TestContactUpdateAdvancesUpdatedAt(t *testing.T) {
	clock := newFakeClock(epoch)
	s := New(clock.Now)
	ctx := context.Background()

	c := &model.ContactSubmission{Name: "Ada", Email: "ada@example.com", Message: "hi"}
	_ = s.Contacts.Create(ctx, c)
	before := c.UpdatedAt

	// The clock does not move: updatedAt must still advance.
	c.Status = model.ContactStatusConverted
	if err := s.Contacts.Update(ctx, c); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := s.Contacts.GetByID(ctx, c.ID)
	if got.Status != model.ContactStatusConverted {
		t.Errorf("status = %q", got.Status)
	}
	if !got.UpdatedAt.After(before) {
		t.Errorf("updatedAt %v did not advance past %v", got.UpdatedAt, before)
	}
	if !got.CreatedAt.Equal(epoch) {
		t.Errorf("createdAt changed to %v", got.CreatedAt)
	}

	missing := &model.ContactSubmission{ID: 99}
	if err := s.Contacts.Update(ctx, missing); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Update missing = %v, want ErrNotFound", err)
	}
}

func TestContactReturnsCopies(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	c := &model.ContactSubmission{Name: "Ada", Email: "ada@example.com", Message: "hi", Tags: []string{"a"}}
	_ = s.Contacts.Create(ctx, c)
	c.Tags[0] = "mutated"

	got, _ := s.Contacts.GetByID(ctx, c.ID)
	if got.Tags[0] != "a" {
		t.Errorf("stored row aliased caller slice: %v", got.Tags)
	}
}

func TestContactStatsWindows(t *testing.T) {
	clock := newFakeClock(epoch.AddDate(0, 0, -40))
	s := New(clock.Now)
	ctx := context.Background()

	create := func() {
		_ = s.Contacts.Create(ctx, &model.ContactSubmission{Name: "x", Email: "x@example.com", Message: "m"})
	}
	create() // 40 days ago
	clock.Advance(20 * 24 * time.Hour)
	create() // 20 days ago
	clock.Advance(17 * 24 * time.Hour)
	create() // 3 days ago
	clock.Advance(3 * 24 * time.Hour)
	create() // now

	stats, err := s.Contacts.Stats(ctx, model.WindowsAt(epoch))
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	want := model.ContactStats{TotalSubmissions: 4, TodaySubmissions: 1, WeekSubmissions: 2, MonthSubmissions: 3}
	if *stats != want {
		t.Errorf("Stats = %+v, want %+v", *stats, want)
	}
}

func TestDeleteReportsExistence(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	c := &model.ContactSubmission{Name: "Ada", Email: "ada@example.com", Message: "hi"}
	_ = s.Contacts.Create(ctx, c)

	if ok, _ := s.Contacts.Delete(ctx, c.ID); !ok {
		t.Error("first delete should report true")
	}
	if ok, _ := s.Contacts.Delete(ctx, c.ID); ok {
		t.Error("second delete should report false")
	}
	if _, err := s.Contacts.GetByID(ctx, c.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("GetByID after delete = %v", err)
	}
}

func TestClientEmailUnique(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	a := &model.Client{Name: "A", Email: "team@acme.io", Company: "Acme"}
	if err := s.Clients.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.Status != model.ClientStatusPotential {
		t.Errorf("status = %q, want potential", a.Status)
	}

	dup := &model.Client{Name: "B", Email: "TEAM@acme.io", Company: "Acme"}
	if err := s.Clients.Create(ctx, dup); !errors.Is(err, repository.ErrConflict) {
		t.Errorf("duplicate Create = %v, want ErrConflict", err)
	}

	b := &model.Client{Name: "B", Email: "b@acme.io", Company: "Acme"}
	_ = s.Clients.Create(ctx, b)
	b.Email = a.Email
	if err := s.Clients.Update(ctx, b); !errors.Is(err, repository.ErrConflict) {
		t.Errorf("Update to taken email = %v, want ErrConflict", err)
	}
}

func TestClientContactReference(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	missing := 999
	orphan := &model.Client{Name: "A", Email: "a@acme.io", Company: "Acme", ContactSubmissionID: &missing}
	if err := s.Clients.Create(ctx, orphan); !errors.Is(err, repository.ErrInvalidReference) {
		t.Fatalf("Create with unknown contact = %v, want ErrInvalidReference", err)
	}

	contact := &model.ContactSubmission{Name: "Ada", Email: "ada@example.com", Message: "hi"}
	_ = s.Contacts.Create(ctx, contact)
	linked := &model.Client{Name: "Ada", Email: "ada@example.com", Company: "Acme", ContactSubmissionID: &contact.ID}
	if err := s.Clients.Create(ctx, linked); err != nil {
		t.Fatalf("Create: %v", err)
	}

	linked.ContactSubmissionID = &missing
	if err := s.Clients.Update(ctx, linked); !errors.Is(err, repository.ErrInvalidReference) {
		t.Errorf("Update to unknown contact = %v, want ErrInvalidReference", err)
	}

	if deleted, err := s.Contacts.Delete(ctx, contact.ID); err != nil || !deleted {
		t.Fatalf("Delete contact = %v, %v", deleted, err)
	}
	got, err := s.Clients.GetByID(ctx, linked.ID)
	if err != nil {
		t.Fatalf("client should survive its contact: %v", err)
	}
	if got.ContactSubmissionID != nil {
		t.Errorf("contactSubmissionId = %d, want null", *got.ContactSubmissionID)
	}
}

func TestProjectRequiresClientAndBlocksClientDelete(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	orphan := &model.Project{ClientID: 42, Name: "Ghost", Type: "web"}
	if err := s.Projects.Create(ctx, orphan); !errors.Is(err, repository.ErrInvalidReference) {
		t.Fatalf("orphan Create = %v, want ErrInvalidReference", err)
	}

	c := &model.Client{Name: "A", Email: "a@acme.io", Company: "Acme"}
	_ = s.Clients.Create(ctx, c)
	p := &model.Project{ClientID: c.ID, Name: "Site", Type: "web"}
	if err := s.Projects.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Status != model.ProjectStatusPlanning {
		t.Errorf("status = %q", p.Status)
	}

	if _, err := s.Clients.Delete(ctx, c.ID); !errors.Is(err, repository.ErrHasDependents) {
		t.Errorf("Delete client with projects = %v, want ErrHasDependents", err)
	}

	byClient, _ := s.Projects.ListByClient(ctx, c.ID)
	if len(byClient) != 1 {
		t.Errorf("ListByClient = %d, want 1", len(byClient))
	}

	_, _ = s.Projects.Delete(ctx, p.ID)
	if ok, err := s.Clients.Delete(ctx, c.ID); err != nil || !ok {
		t.Errorf("Delete client after project removal = %v, %v", ok, err)
	}
}

func TestProjectCountByStatus(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	c := &model.Client{Name: "A", Email: "a@acme.io", Company: "Acme"}
	_ = s.Clients.Create(ctx, c)
	for _, st := range []model.ProjectStatus{model.ProjectStatusActive, model.ProjectStatusActive, model.ProjectStatusOnHold} {
		_ = s.Projects.Create(ctx, &model.Project{ClientID: c.ID, Name: "p", Type: "web", Status: st})
	}

	counts, _ := s.Projects.CountByStatus(ctx)
	if counts[model.ProjectStatusActive] != 2 || counts[model.ProjectStatusOnHold] != 1 {
		t.Errorf("CountByStatus = %v", counts)
	}
}

func TestNotificationReadFlag(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	n := &model.Notification{Title: "t", Message: "m", IsRead: true}
	_ = s.Notifications.Create(ctx, n)
	if n.IsRead || n.Type != model.NotificationTypeInfo {
		t.Fatalf("new notification = %+v", n)
	}

	updated, err := s.Notifications.SetRead(ctx, n.ID, true)
	if err != nil || !updated.IsRead {
		t.Fatalf("SetRead = %+v, %v", updated, err)
	}
	if unread, _ := s.Notifications.ListUnread(ctx); len(unread) != 0 {
		t.Errorf("ListUnread = %d, want 0", len(unread))
	}
	if _, err := s.Notifications.SetRead(ctx, 99, true); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("SetRead missing = %v", err)
	}
}

func TestAnalyticsQuery(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	_ = s.Analytics.Record(ctx, &model.Analytics{Metric: "visits", Value: 3, Date: epoch})
	_ = s.Analytics.Record(ctx, &model.Analytics{Metric: "visits", Value: 1, Date: epoch.Add(-time.Hour)})
	_ = s.Analytics.Record(ctx, &model.Analytics{Metric: "signups", Value: 9, Date: epoch})
	_ = s.Analytics.Record(ctx, &model.Analytics{Metric: "visits", Value: 5, Date: epoch.AddDate(0, 0, -60)})

	got, _ := s.Analytics.Query(ctx, model.AnalyticsQuery{Metric: "visits", From: epoch.AddDate(0, 0, -30), To: epoch})
	if len(got) != 2 {
		t.Fatalf("Query returned %d rows, want 2", len(got))
	}
	if got[0].Value != 1 || got[1].Value != 3 {
		t.Errorf("Query not ordered by date ascending: %v, %v", got[0].Value, got[1].Value)
	}
}

func TestAdminCreateFirst(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	ok, err := s.AdminUsers.CreateFirst(ctx, &model.AdminUser{Username: "admin", PasswordHash: "h"})
	if err != nil || !ok {
		t.Fatalf("CreateFirst = %v, %v", ok, err)
	}
	ok, err = s.AdminUsers.CreateFirst(ctx, &model.AdminUser{Username: "other", PasswordHash: "h"})
	if err != nil || ok {
		t.Errorf("second CreateFirst = %v, %v; want false", ok, err)
	}
	if err := s.AdminUsers.Create(ctx, &model.AdminUser{Username: "admin"}); !errors.Is(err, repository.ErrConflict) {
		t.Errorf("duplicate username = %v", err)
	}
}

func TestSessionExpiryIsLazy(t *testing.T) {
	clock := newFakeClock(epoch)
	s := New(clock.Now)
	ctx := context.Background()

	sess := &model.AdminSession{Token: "tok", Username: "admin", CreatedAt: epoch, ExpiresAt: epoch.Add(time.Hour)}
	_ = s.Sessions.Create(ctx, sess)

	clock.Advance(time.Hour - time.Nanosecond)
	if _, err := s.Sessions.Get(ctx, "tok"); err != nil {
		t.Fatalf("Get before expiry: %v", err)
	}

	clock.Advance(time.Nanosecond)
	if _, err := s.Sessions.Get(ctx, "tok"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Get at expiry = %v, want ErrNotFound", err)
	}
	if s.Sessions.Len() != 0 {
		t.Error("expired session was not removed")
	}
}

func TestConcurrentCreatesAssignUniqueIDs(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	const n = 50
	ids := make(chan int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := &model.ContactSubmission{Name: "x", Email: "x@example.com", Message: "m"}
			_ = s.Contacts.Create(ctx, c)
			ids <- c.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int]bool)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = true
	}
}
