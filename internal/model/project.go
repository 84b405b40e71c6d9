package model

import (
	"encoding/json"
	"time"
)

// ProjectStatus is the delivery state of a project.
type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "planning"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusOnHold    ProjectStatus = "on-hold"
	ProjectStatusCompleted ProjectStatus = "completed"
)

// Project is an engagement owned by exactly one client.
type Project struct {
	ID           int             `json:"id"`
	ClientID     int             `json:"clientId"`
	Name         string          `json:"name"`
	Description  *string         `json:"description"`
	Type         string          `json:"type"`
	Status       ProjectStatus   `json:"status"`
	StartDate    *time.Time      `json:"startDate"`
	EndDate      *time.Time      `json:"endDate"`
	Budget       *int            `json:"budget"`
	Progress     int             `json:"progress"`
	N8NWorkflows []string        `json:"n8nWorkflows"`
	Requirements json.RawMessage `json:"requirements"`
	Deliverables []string        `json:"deliverables"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// CreateProjectRequest is the payload for creating a project.
type CreateProjectRequest struct {
	ClientID     int             `json:"clientId" binding:"required,gt=0"`
	Name         string          `json:"name" binding:"required,max=200"`
	Description  *string         `json:"description" binding:"omitempty,max=5000"`
	Type         string          `json:"type" binding:"required,max=100"`
	Status       *ProjectStatus  `json:"status" binding:"omitempty,oneof=planning active on-hold completed"`
	StartDate    *time.Time      `json:"startDate"`
	EndDate      *time.Time      `json:"endDate"`
	Budget       *int            `json:"budget" binding:"omitempty,min=0"`
	Progress     *int            `json:"progress" binding:"omitempty,min=0,max=100"`
	N8NWorkflows []string        `json:"n8nWorkflows" binding:"omitempty,dive,max=200"`
	Requirements json.RawMessage `json:"requirements"`
	Deliverables []string        `json:"deliverables" binding:"omitempty,dive,max=500"`
}

// ToProject builds a new Project, defaulting the status to planning.
func (r *CreateProjectRequest) ToProject() *Project {
	status := ProjectStatusPlanning
	if r.Status != nil {
		status = *r.Status
	}
	progress := 0
	if r.Progress != nil {
		progress = *r.Progress
	}
	return &Project{
		ClientID:     r.ClientID,
		Name:         r.Name,
		Description:  r.Description,
		Type:         r.Type,
		Status:       status,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		Budget:       r.Budget,
		Progress:     progress,
		N8NWorkflows: r.N8NWorkflows,
		Requirements: r.Requirements,
		Deliverables: r.Deliverables,
	}
}

// UpdateProjectRequest is a partial project update.
type UpdateProjectRequest struct {
	ClientID     *int            `json:"clientId" binding:"omitempty,gt=0"`
	Name         *string         `json:"name" binding:"omitempty,min=1,max=200"`
	Description  *string         `json:"description" binding:"omitempty,max=5000"`
	Type         *string         `json:"type" binding:"omitempty,min=1,max=100"`
	Status       *ProjectStatus  `json:"status" binding:"omitempty,oneof=planning active on-hold completed"`
	StartDate    *time.Time      `json:"startDate"`
	EndDate      *time.Time      `json:"endDate"`
	Budget       *int            `json:"budget" binding:"omitempty,min=0"`
	Progress     *int            `json:"progress" binding:"omitempty,min=0,max=100"`
	N8NWorkflows []string        `json:"n8nWorkflows" binding:"omitempty,dive,max=200"`
	Requirements json.RawMessage `json:"requirements"`
	Deliverables []string        `json:"deliverables" binding:"omitempty,dive,max=500"`
}

// Apply copies every non-nil field onto p.
func (r *UpdateProjectRequest) Apply(p *Project) {
	if r.ClientID != nil {
		p.ClientID = *r.ClientID
	}
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Description != nil {
		p.Description = r.Description
	}
	if r.Type != nil {
		p.Type = *r.Type
	}
	if r.Status != nil {
		p.Status = *r.Status
	}
	if r.StartDate != nil {
		p.StartDate = r.StartDate
	}
	if r.EndDate != nil {
		p.EndDate = r.EndDate
	}
	if r.Budget != nil {
		p.Budget = r.Budget
	}
	if r.Progress != nil {
		p.Progress = *r.Progress
	}
	if r.N8NWorkflows != nil {
		p.N8NWorkflows = r.N8NWorkflows
	}
	if r.Requirements != nil {
		p.Requirements = r.Requirements
	}
	if r.Deliverables != nil {
		p.Deliverables = r.Deliverables
	}
}
