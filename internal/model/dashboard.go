package model

// DashboardStats aggregates the counters shown on the admin landing page.
type DashboardStats struct {
	TotalContacts       int                   `json:"totalContacts"`
	Contacts            ContactStats          `json:"contacts"`
	TotalClients        int                   `json:"totalClients"`
	TotalProjects       int                   `json:"totalProjects"`
	ProjectsByStatus    map[ProjectStatus]int `json:"projectsByStatus"`
	UnreadNotifications int                   `json:"unreadNotifications"`
}
