package model

import "time"

// ClientStatus is the lifecycle of a customer account.
type ClientStatus string

const (
	ClientStatusActive    ClientStatus = "active"
	ClientStatusInactive  ClientStatus = "inactive"
	ClientStatusPotential ClientStatus = "potential"
)

// Client is a customer managed from the admin dashboard.
type Client struct {
	ID                  int          `json:"id"`
	Name                string       `json:"name"`
	Email               string       `json:"email"`
	Phone               *string      `json:"phone"`
	Company             string       `json:"company"`
	Industry            *string      `json:"industry"`
	Website             *string      `json:"website"`
	ContactSubmissionID *int         `json:"contactSubmissionId"`
	Status              ClientStatus `json:"status"`
	MonthlyBudget       *int         `json:"monthlyBudget"`
	Notes               *string      `json:"notes"`
	CreatedAt           time.Time    `json:"createdAt"`
	UpdatedAt           time.Time    `json:"updatedAt"`
}

// ClientWithProjects is returned by the client detail endpoint.
type ClientWithProjects struct {
	*Client
	Projects []*Project `json:"projects"`
}

// CreateClientRequest is the payload for creating a client.
type CreateClientRequest struct {
	Name                string        `json:"name" binding:"required,max=200"`
	Email               string        `json:"email" binding:"required,email,max=255"`
	Phone               *string       `json:"phone" binding:"omitempty,max=50"`
	Company             string        `json:"company" binding:"required,max=200"`
	Industry            *string       `json:"industry" binding:"omitempty,max=100"`
	Website             *string       `json:"website" binding:"omitempty,url,max=255"`
	ContactSubmissionID *int          `json:"contactSubmissionId" binding:"omitempty,gt=0"`
	Status              *ClientStatus `json:"status" binding:"omitempty,oneof=active inactive potential"`
	MonthlyBudget       *int          `json:"monthlyBudget" binding:"omitempty,min=0"`
	Notes               *string       `json:"notes" binding:"omitempty,max=5000"`
}

// ToClient builds a new Client, defaulting the status to potential.
func (r *CreateClientRequest) ToClient() *Client {
	status := ClientStatusPotential
	if r.Status != nil {
		status = *r.Status
	}
	return &Client{
		Name:                r.Name,
		Email:               r.Email,
		Phone:               r.Phone,
		Company:             r.Company,
		Industry:            r.Industry,
		Website:             r.Website,
		ContactSubmissionID: r.ContactSubmissionID,
		Status:              status,
		MonthlyBudget:       r.MonthlyBudget,
		Notes:               r.Notes,
	}
}

// UpdateClientRequest is a partial client update.
type UpdateClientRequest struct {
	Name                *string       `json:"name" binding:"omitempty,min=1,max=200"`
	Email               *string       `json:"email" binding:"omitempty,email,max=255"`
	Phone               *string       `json:"phone" binding:"omitempty,max=50"`
	Company             *string       `json:"company" binding:"omitempty,min=1,max=200"`
	Industry            *string       `json:"industry" binding:"omitempty,max=100"`
	Website             *string       `json:"website" binding:"omitempty,url,max=255"`
	ContactSubmissionID *int          `json:"contactSubmissionId" binding:"omitempty,gt=0"`
	Status              *ClientStatus `json:"status" binding:"omitempty,oneof=active inactive potential"`
	MonthlyBudget       *int          `json:"monthlyBudget" binding:"omitempty,min=0"`
	Notes               *string       `json:"notes" binding:"omitempty,max=5000"`
}

// Apply copies every non-nil field onto c.
func (r *UpdateClientRequest) Apply(c *Client) {
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
		c.Company = *r.Company
	}
	if r.Industry != nil {
		c.Industry = r.Industry
	}
	if r.Website != nil {
		c.Website = r.Website
	}
	if r.ContactSubmissionID != nil {
		c.ContactSubmissionID = r.ContactSubmissionID
	}
	if r.Status != nil {
		c.Status = *r.Status
	}
	if r.MonthlyBudget != nil {
		c.MonthlyBudget = r.MonthlyBudget
	}
	if r.Notes != nil {
		c.Notes = r.Notes
	}
}
