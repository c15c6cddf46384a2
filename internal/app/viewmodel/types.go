// internal/app/viewmodel/types.go
package viewmodel

import "github.com/dalemusser/leadpulse/internal/app/system/textfmt"

// FunnelStage is one ordered pipeline step.
type FunnelStage struct {
	Label string `json:"label"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// DistributionPoint is one slice of a pie/bar chart.
type DistributionPoint struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// LeaderboardEntry is one worker on the team leaderboard.
type LeaderboardEntry struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	Assigned             int     `json:"assigned"`
	ConversionPercentage float64 `json:"conversionPercentage"`
	AvatarInitials       string  `json:"avatarInitials"`
}

// InsightCard is a single headline number or name.
type InsightCard struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Unit        string `json:"unit,omitempty"`
	Description string `json:"description"`
}

// TimeSeriesPoint is one labeled value in a series.
type TimeSeriesPoint struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// TimeSeries is a series plus the sum of its values.
type TimeSeries struct {
	Points []TimeSeriesPoint `json:"points"`
	Total  int               `json:"total"`
}

// ManagerKPIs are the headline counters on the manager dashboard.
type ManagerKPIs struct {
	TotalLeads     int     `json:"totalLeads"`
	ConversionRate float64 `json:"conversionRate"`
	EngagedLeads   int     `json:"engagedLeads"`
	OverdueTasks   int     `json:"overdueTasks"`
}

// CampaignRow is one line of the campaign performance table.
type CampaignRow struct {
	ID                  string  `json:"id"`
	Title               string  `json:"title"`
	TargetLeads         int     `json:"targetLeads"`
	ConvertedLeads      int     `json:"convertedLeads"`
	ConversionRate      float64 `json:"conversionRate"`
	ConversionRateLabel string  `json:"conversionRateLabel"`
}

// ActivityItem is one entry of the recent activity feed.
type ActivityItem struct {
	ID        string            `json:"id"`
	Icon      string            `json:"icon"`
	Segments  []textfmt.Segment `json:"segments"`
	TimeAgo   string            `json:"timeAgo"`
	CreatedAt string            `json:"createdAt"`
}

// RecentLeadItem is one row of the recent leads table.
type RecentLeadItem struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Company    string `json:"company"`
	AssignedTo string `json:"assignedTo"`
	Status     string `json:"status"`
}

// DeadlineItem is an upcoming follow-up.
type DeadlineItem struct {
	LeadName   string  `json:"leadName"`
	AssignedTo string  `json:"assignedTo"`
	DueDate    *string `json:"dueDate,omitempty"`
}

// ManagerViewModel is everything the manager dashboard renders.
type ManagerViewModel struct {
	KPIs           ManagerKPIs         `json:"kpis"`
	Funnel         []FunnelStage       `json:"funnel"`
	Categories     []DistributionPoint `json:"categories"`
	Sources        []DistributionPoint `json:"sources"`
	Leaderboard    []LeaderboardEntry  `json:"leaderboard"`
	Campaigns      []CampaignRow       `json:"campaigns"`
	RecentActivity []ActivityItem      `json:"recentActivity"`
	RecentLeads    []RecentLeadItem    `json:"recentLeads"`
	Deadlines      []DeadlineItem      `json:"deadlines"`
	Insights       []InsightCard       `json:"insights"`
	DailyLeads     TimeSeries          `json:"dailyLeads"`
}

// WorkerKPIs are the headline counters on the worker dashboard.
type WorkerKPIs struct {
	TotalAssignedLeads int `json:"totalAssignedLeads"`
	PendingFollowUps   int `json:"pendingFollowUps"`
	FollowUpsToday     int `json:"followUpsToday"`
	MissingFollowUps   int `json:"missingFollowUps"`
}

// CategoryRatio is the profitable share of one category.
type CategoryRatio struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	TotalLeads           int     `json:"totalLeads"`
	Profitable           int     `json:"profitable"`
	Nonprofitable        int     `json:"nonprofitable"`
	Total                int     `json:"total"`
	ProfitablePercentage float64 `json:"profitablePercentage"`
}

// FollowUpItem is a lead due today.
type FollowUpItem struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Company string `json:"company"`
	Status  string `json:"status"`
}

// ScheduleEntry groups lead names due on one day.
type ScheduleEntry struct {
	Day    string   `json:"day"` // "today" | "tomorrow"
	Date   string   `json:"date"`
	Events []string `json:"events"`
}

// OverdueItem is a missed follow-up.
type OverdueItem struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Company string `json:"company"`
	DueDate string `json:"dueDate"`
}

// AssignmentItem is a recently assigned lead.
type AssignmentItem struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Company      string `json:"company"`
	AssignedDate string `json:"assignedDate"`
	Status       string `json:"status"`
}

// WorkerViewModel is everything the worker dashboard renders.
type WorkerViewModel struct {
	KPIs                WorkerKPIs       `json:"kpis"`
	CategoryPerformance []CategoryRatio  `json:"categoryPerformance"`
	TodayFollowUps      []FollowUpItem   `json:"todayFollowUps"`
	Schedule            []ScheduleEntry  `json:"schedule"`
	Overdue             []OverdueItem    `json:"overdue"`
	RecentAssignments   []AssignmentItem `json:"recentAssignments"`
}
