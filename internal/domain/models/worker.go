// internal/domain/models/worker.go
package models

// WorkerPayload is the raw aggregate returned by POST /worker/dashboard,
// scoped to the authenticated worker.
type WorkerPayload struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`

	TotalAssignedLeads int `json:"totalAssignedLeads"`
	PendingFollowUps   int `json:"pendingFollowUps"`
	MissingFollowUps   int `json:"missingFollowUps"`

	FollowUpsToday        *FollowUpsToday       `json:"followUpsToday"`
	PerformanceByCategory []CategoryPerformance `json:"performanceByCategory"`
	UpcomingSchedule      *UpcomingSchedule     `json:"upcomingSchedule"`
	OverdueFollowUps      []OverdueFollowUp     `json:"overdueFollowUps"`
	RecentAssignments     []RecentAssignment    `json:"recentAssignments"`
}

// FollowUpsToday is the count and list of leads due today.
type FollowUpsToday struct {
	Count int            `json:"count"`
	Data  []FollowUpLead `json:"data"`
}

// FollowUpLead is a lead due for follow-up.
type FollowUpLead struct {
	ID      string  `json:"_id"`
	Name    string  `json:"name"`
	Company *string `json:"company"`
}

// CategoryPerformance is the profitable/non-profitable split for one category.
type CategoryPerformance struct {
	CategoryID    string `json:"categoryId"`
	CategoryName  string `json:"categoryName"`
	TotalLeads    int    `json:"totalLeads"`
	Profitable    int    `json:"profitable"`
	Nonprofitable int    `json:"nonprofitable"`
}

// UpcomingSchedule lists lead names due today and tomorrow.
type UpcomingSchedule struct {
	Today    []string `json:"today"`
	Tomorrow []string `json:"tomorrow"`
}

// OverdueFollowUp is a lead whose follow-up date has passed.
type OverdueFollowUp struct {
	ID            string   `json:"_id"`
	Name          string   `json:"name"`
	Position      *string  `json:"position"`
	FollowUpDates []string `json:"followUpDates"`
}

// RecentAssignment is a lead recently assigned to the worker.
type RecentAssignment struct {
	ID        string  `json:"_id"`
	Name      string  `json:"name"`
	Position  *string `json:"position"`
	CreatedAt string  `json:"createdAt"`
	Status    string  `json:"status"`
}
