// internal/domain/models/manager.go
package models

import (
	"bytes"
	"encoding/json"
)

// ManagerPayload is the raw aggregate returned by POST /manager/dashboard.
// All fields are siblings of Success on the wire. Any of them may be missing.
type ManagerPayload struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`

	TotalLeads       int     `json:"totalLeads"`
	EngagedLeads     int     `json:"engagedLeads"`
	ConversationRate Numeric `json:"conversationRate"`
	OverdueTasks     int     `json:"overdueTasks"`

	RecentLeads         []RecentLead      `json:"recentLeads"`
	RecentNotifications []Notification    `json:"recentNotifications"`
	UpcomingDeadlines   []Deadline        `json:"upcomingDeadlines"`
	LeadsByCategory     []CategoryCount   `json:"leadsByCategory"`
	LeadsBySource       []SourceCount     `json:"leadsBySource"`
	LeadPipeline        []StatusCount     `json:"leadPipeline"`
	DailyLeadsLast7Days []DailyCount      `json:"dailyLeadsLast7Days"`
	TeamLeaderboard     []WorkerStanding  `json:"teamLeaderboard"`
	CampaignPerformance []CampaignStat    `json:"campaignPerformance"`
	BusinessInsights    *BusinessInsights `json:"businessInsights"`
}

// RecentLead is one of the newest leads in range.
type RecentLead struct {
	ID         string    `json:"_id"`
	Name       string    `json:"name"`
	Company    *string   `json:"company"`
	Status     string    `json:"status"`
	AssignedTo WorkerRef `json:"assignedTo"`
	CreatedAt  string    `json:"createdAt"`
}

// Notification is an activity feed entry.
type Notification struct {
	ID        string `json:"_id"`
	Type      string `json:"type"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"`
}

// Deadline is a lead with pending follow-up dates.
type Deadline struct {
	ID            string    `json:"_id"`
	Name          string    `json:"name"`
	AssignedTo    WorkerRef `json:"assignedTo"`
	FollowUpDates []string  `json:"followUpDates"`
}

// CategoryCount is one slice of the leads-by-category breakdown.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// SourceCount is one slice of the leads-by-source breakdown.
type SourceCount struct {
	Source string `json:"source"`
	Count  int    `json:"count"`
}

// StatusCount is one pipeline stage.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// DailyCount is the number of leads created on one day.
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// WorkerStanding is one row of the team leaderboard.
type WorkerStanding struct {
	WorkerID            string  `json:"workerId"`
	Name                string  `json:"name"`
	TotalAssignedLeads  int     `json:"totalAssignedLeads"`
	ConvertedPercentage Numeric `json:"convertedPercentage"`
}

// CampaignStat is the performance of a single campaign.
type CampaignStat struct {
	ID             string  `json:"_id"`
	Title          string  `json:"title"`
	TargetLeads    int     `json:"targetLeads"`
	ConvertedLeads int     `json:"convertedLeads"`
	ConversionRate Numeric `json:"conversionRate"`
}

// BusinessInsights mixes numeric strings with small nested objects.
type BusinessInsights struct {
	AvgConversionTime     Numeric      `json:"avgConversionTime"`
	LeadGrowthRate        Numeric      `json:"leadGrowthRate"`
	AverageLeadsPerWorker Numeric      `json:"averageLeadsPerWorker"`
	TopCampaign           *CampaignRef `json:"topCampaign"`
	TopPerformer          *PersonRef   `json:"topPerformer"`
	TopCategory           *CategoryRef `json:"topCategory"`
}

// CampaignRef is a nested {title} object.
type CampaignRef struct {
	Title *string `json:"title"`
}

// PersonRef is a nested {name} object.
type PersonRef struct {
	Name *string `json:"name"`
}

// CategoryRef is a nested {category} object.
type CategoryRef struct {
	Category *string `json:"category"`
}

// WorkerRef is an assignee reference. The backend sends a worker id string,
// null, or occasionally a populated {_id, name} object.
type WorkerRef struct {
	ID   string
	Name string
}

// UnmarshalJSON accepts a string id, null, or an {_id, name} object.
func (w *WorkerRef) UnmarshalJSON(b []byte) error {
	*w = WorkerRef{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		return json.Unmarshal(b, &w.ID)
	}
	if b[0] == '{' {
		var obj struct {
			ID   string `json:"_id"`
			Name string `json:"name"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		w.ID, w.Name = obj.ID, obj.Name
	}
	return nil
}

// MarshalJSON writes the id, or null when unassigned.
func (w WorkerRef) MarshalJSON() ([]byte, error) {
	if w.ID == "" {
		return []byte("null"), nil
	}
	return json.Marshal(w.ID)
}
