package model

import (
	"testing"
	"time"
)

func TestWindowsAt(t *testing.T) {
	loc := time.FixedZone("test", 2*3600)
	now := time.Date(2024, 3, 15, 13, 45, 0, 0, loc)
	w := WindowsAt(now)

	if want := time.Date(2024, 3, 15, 0, 0, 0, 0, loc); !w.Today.Equal(want) {
		t.Errorf("Today = %v, want %v", w.Today, want)
	}
	if want := time.Date(2024, 3, 8, 0, 0, 0, 0, loc); !w.Week.Equal(want) {
		t.Errorf("Week = %v, want %v", w.Week, want)
	}
	if want := time.Date(2024, 2, 14, 0, 0, 0, 0, loc); !w.Month.Equal(want) {
		t.Errorf("Month = %v, want %v", w.Month, want)
	}
}

func TestCreateClientRequestDefaultsStatus(t *testing.T) {
	req := CreateClientRequest{Name: "Ada", Email: "ada@example.com", Company: "Analytical"}
	if got := req.ToClient().Status; got != ClientStatusPotential {
		t.Errorf("status = %q, want %q", got, ClientStatusPotential)
	}

	active := ClientStatusActive
	req.Status = &active
	if got := req.ToClient().Status; got != ClientStatusActive {
		t.Errorf("status = %q, want %q", got, ClientStatusActive)
	}
}

func TestUpdateContactRequestApply(t *testing.T) {
	phone := "555-0100"
	c := &ContactSubmission{Name: "Ada", Email: "ada@example.com", Phone: &phone, Status: ContactStatusNew}

	status := ContactStatusContacted
	req := UpdateContactRequest{Status: &status, Tags: []string{"vip"}}
	req.Apply(c)

	if c.Status != ContactStatusContacted {
		t.Errorf("status = %q", c.Status)
	}
	if c.Name != "Ada" || c.Phone == nil || *c.Phone != phone {
		t.Errorf("untouched fields changed: %+v", c)
	}
	if len(c.Tags) != 1 || c.Tags[0] != "vip" {
		t.Errorf("tags = %v", c.Tags)
	}
}

func TestCreateProjectRequestDefaults(t *testing.T) {
	req := CreateProjectRequest{ClientID: 1, Name: "Site", Type: "web"}
	p := req.ToProject()
	if p.Status != ProjectStatusPlanning {
		t.Errorf("status = %q", p.Status)
	}
	if p.Progress != 0 {
		t.Errorf("progress = %d", p.Progress)
	}
}
