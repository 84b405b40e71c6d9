package model

import "time"

// ContactStatus tracks an inquiry through the sales funnel.
type ContactStatus string

const (
	ContactStatusNew       ContactStatus = "new"
	ContactStatusContacted ContactStatus = "contacted"
	ContactStatusConverted ContactStatus = "converted"
	ContactStatusClosed    ContactStatus = "closed"
)

// ContactPriority ranks inquiries for follow-up.
type ContactPriority string

const (
	PriorityHigh   ContactPriority = "high"
	PriorityMedium ContactPriority = "medium"
	PriorityLow    ContactPriority = "low"
)

// DefaultContactSource is recorded for submissions coming from the public form.
const DefaultContactSource = "website"

// ContactSubmission is a message sent through the public contact form.
type ContactSubmission struct {
	ID             int             `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Phone          *string         `json:"phone"`
	Company        *string         `json:"company"`
	Message        string          `json:"message"`
	Status         ContactStatus   `json:"status"`
	Priority       ContactPriority `json:"priority"`
	Source         string          `json:"source"`
	Tags           []string        `json:"tags"`
	AssignedTo     *string         `json:"assignedTo"`
	FollowUpDate   *time.Time      `json:"followUpDate"`
	N8NWorkflowID  *string         `json:"n8nWorkflowId"`
	N8NExecutionID *string         `json:"n8nExecutionId"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// CreateContactRequest is the public contact form payload.
type CreateContactRequest struct {
	Name    string  `json:"name" binding:"required,max=200"`
	Email   string  `json:"email" binding:"required,email,max=255"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
	Company *string `json:"company" binding:"omitempty,max=200"`
	Message string  `json:"message" binding:"required,max=5000"`
}

// UpdateContactRequest is a partial update issued from the admin dashboard.
// Nil fields are left untouched.
type UpdateContactRequest struct {
	Name           *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Email          *string          `json:"email" binding:"omitempty,email,max=255"`
	Phone          *string          `json:"phone" binding:"omitempty,max=50"`
	Company        *string          `json:"company" binding:"omitempty,max=200"`
	Message        *string          `json:"message" binding:"omitempty,min=1,max=5000"`
	Status         *ContactStatus   `json:"status" binding:"omitempty,oneof=new contacted converted closed"`
	Priority       *ContactPriority `json:"priority" binding:"omitempty,oneof=high medium low"`
	Source         *string          `json:"source" binding:"omitempty,max=50"`
	Tags           []string         `json:"tags" binding:"omitempty,dive,max=50"`
	AssignedTo     *string          `json:"assignedTo" binding:"omitempty,max=200"`
	FollowUpDate   *time.Time       `json:"followUpDate"`
	N8NWorkflowID  *string          `json:"n8nWorkflowId" binding:"omitempty,max=200"`
	N8NExecutionID *string          `json:"n8nExecutionId" binding:"omitempty,max=200"`
}

// Apply copies every non-nil field onto c.
func (r *UpdateContactRequest) Apply(c *ContactSubmission) {
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.Email != nil {
		c.Email = *r.Email
	}
	if r.Phone != nil {
		c.Phone = r.Phone
	}
	if r.Company != nil {
		c.Company = r.Company
	}
	if r.Message != nil {
		c.Message = *r.Message
	}
	if r.Status != nil {
		c.Status = *r.Status
	}
	if r.Priority != nil {
		c.Priority = *r.Priority
	}
	if r.Source != nil {
		c.Source = *r.Source
	}
	if r.Tags != nil {
		c.Tags = r.Tags
	}
	if r.AssignedTo != nil {
		c.AssignedTo = r.AssignedTo
	}
	if r.FollowUpDate != nil {
		c.FollowUpDate = r.FollowUpDate
	}
	if r.N8NWorkflowID != nil {
		c.N8NWorkflowID = r.N8NWorkflowID
	}
	if r.N8NExecutionID != nil {
		c.N8NExecutionID = r.N8NExecutionID
	}
}

// ContactStats counts submissions over fixed windows relative to the query time.
type ContactStats struct {
	TotalSubmissions int `json:"totalSubmissions"`
	TodaySubmissions int `json:"todaySubmissions"`
	WeekSubmissions  int `json:"weekSubmissions"`
	MonthSubmissions int `json:"monthSubmissions"`
}

// StatsWindows are the lower bounds used to compute ContactStats.
type StatsWindows struct {
	Today time.Time
	Week  time.Time
	Month time.Time
}

// WindowsAt returns the today/7-day/30-day bounds for the given instant,
// anchored at local midnight.
func WindowsAt(now time.Time) StatsWindows {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return StatsWindows{
		Today: today,
		Week:  today.Add(-7 * 24 * time.Hour),
		Month: today.Add(-30 * 24 * time.Hour),
	}
}
