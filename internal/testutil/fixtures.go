package testutil

import (
	"github.com/dalemusser/leadpulse/internal/domain/models"
)

func strp(s string) *string { return &s }

// ManagerFixture is a small but fully populated manager payload.
func ManagerFixture() *models.ManagerPayload {
	return &models.ManagerPayload{
		Success:          true,
		TotalLeads:       42,
		EngagedLeads:     17,
		ConversationRate: models.NewNumeric(23.8),
		OverdueTasks:     4,
		RecentLeads: []models.RecentLead{
			{ID: "l1", Name: "Acme renewal", Company: strp("Acme"), Status: "in-progress",
				AssignedTo: models.WorkerRef{ID: "w1"}, CreatedAt: "2024-03-08T09:00:00Z"},
			{ID: "l2", Name: "Walk-in", Status: "new", CreatedAt: "2024-03-09T10:30:00Z"},
		},
		RecentNotifications: []models.Notification{
			{ID: "n1", Type: "lead", Message: `Lead "Acme renewal" created`, CreatedAt: "2024-03-10T11:00:00Z"},
			{ID: "n2", Type: "conversion", Message: `"Globex" converted`, CreatedAt: "2024-03-09T12:00:00Z"},
		},
		UpcomingDeadlines: []models.Deadline{
			{ID: "d1", Name: "Acme renewal", AssignedTo: models.WorkerRef{ID: "w1"},
				FollowUpDates: []string{"2024-03-12"}},
		},
		LeadsByCategory: []models.CategoryCount{{Category: "Retail", Count: 20}, {Category: "B2B", Count: 22}},
		LeadsBySource:   []models.SourceCount{{Source: "web", Count: 30}, {Source: "referral", Count: 12}},
		LeadPipeline: []models.StatusCount{
			{Status: "new", Count: 20},
			{Status: "follow-up", Count: 10},
			{Status: "in-progress", Count: 8},
			{Status: "closed", Count: 4},
		},
		DailyLeadsLast7Days: []models.DailyCount{
			{Date: "2024-03-04", Count: 5},
			{Date: "2024-03-05", Count: 7},
		},
		TeamLeaderboard: []models.WorkerStanding{
			{WorkerID: "w1", Name: "Jane Roe", TotalAssignedLeads: 12, ConvertedPercentage: models.NewNumeric(41.7)},
		},
		CampaignPerformance: []models.CampaignStat{
			{ID: "c1", Title: "Spring Push", TargetLeads: 50, ConvertedLeads: 9, ConversionRate: models.NewNumeric(18)},
		},
		BusinessInsights: &models.BusinessInsights{
			AvgConversionTime:     models.NewNumeric(3.5),
			LeadGrowthRate:        models.NewNumeric(12.25),
			AverageLeadsPerWorker: models.NewNumeric(8),
			TopCampaign:           &models.CampaignRef{Title: strp("Spring Push")},
			TopPerformer:          &models.PersonRef{Name: strp("Jane Roe")},
			TopCategory:           &models.CategoryRef{Category: strp("B2B")},
		},
	}
}

// WorkerFixture is a small but fully populated worker payload.
func WorkerFixture() *models.WorkerPayload {
	return &models.WorkerPayload{
		Success:            true,
		TotalAssignedLeads: 12,
		PendingFollowUps:   5,
		MissingFollowUps:   1,
		FollowUpsToday: &models.FollowUpsToday{
			Count: 1,
			Data:  []models.FollowUpLead{{ID: "l1", Name: "Acme renewal", Company: strp("Acme")}},
		},
		PerformanceByCategory: []models.CategoryPerformance{
			{CategoryID: "c1", CategoryName: "Retail", TotalLeads: 6, Profitable: 3, Nonprofitable: 1},
		},
		UpcomingSchedule: &models.UpcomingSchedule{Today: []string{"Acme renewal"}},
		OverdueFollowUps: []models.OverdueFollowUp{
			{ID: "l3", Name: "Initech", FollowUpDates: []string{"2024-03-01"}},
		},
		RecentAssignments: []models.RecentAssignment{
			{ID: "l4", Name: "Umbrella", Position: strp("CFO"), CreatedAt: "2024-03-09", Status: "follow-up"},
		},
	}
}

// ManagerWireJSON is a manager response in the loose shapes the backend
// actually emits: numeric strings, null company, populated assignee objects.
const ManagerWireJSON = `{
  "success": true,
  "totalLeads": 3,
  "engagedLeads": 1,
  "conversationRate": "33.33",
  "overdueTasks": 0,
  "recentLeads": [
    {"_id": "l1", "name": "Acme", "company": null, "status": "follow-up",
     "assignedTo": {"_id": "w1", "name": "Jane Roe"}, "createdAt": "2024-03-08T09:00:00Z"},
    {"_id": "l2", "name": "Solo", "company": "Solo Ltd", "status": "new", "assignedTo": null}
  ],
  "teamLeaderboard": [
    {"workerId": "w1", "name": "Jane Roe", "totalAssignedLeads": 3, "convertedPercentage": "33.3"}
  ],
  "businessInsights": {"avgConversionTime": null, "topCampaign": {"title": null}}
}`

// Envelope builds a minimal response body with only the success flag and message.
func Envelope(success bool, message string) map[string]any {
	return map[string]any{"success": success, "message": message}
}
