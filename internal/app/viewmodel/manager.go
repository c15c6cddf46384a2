// internal/app/viewmodel/manager.go
package viewmodel

import (
	"slices"
	"strings"
	"time"

	"github.com/dalemusser/leadpulse/internal/app/system/textfmt"
	"github.com/dalemusser/leadpulse/internal/domain/models"
)

// Truncation limits for the manager dashboard lists.
const (
	SourceLimit     = 10
	CampaignLimit   = 5
	ActivityLimit   = 5
	RecentLeadLimit = 5
)

// Fallback labels.
const (
	NotAvailable = "N/A"
	Unassigned   = "Unassigned"
)

// DefaultStageColor is used for pipeline statuses without a fixed color.
const DefaultStageColor = "#9ca3af"

var stageColors = map[string]string{
	"new":         "#6366f1",
	"follow-up":   "#818cf8",
	"in-progress": "#a5b4fc",
	"closed":      "#c7d2fe",
}

// Activity icon categories.
const (
	IconCreated   = "created"
	IconConverted = "converted"
	IconSent      = "sent"
	IconDeleted   = "deleted"
	IconActivity  = "activity"
)

// DeriveManager projects a raw manager payload into its view model. It is
// total: nil or partial payloads produce zero values and empty lists.
func DeriveManager(raw *models.ManagerPayload, now time.Time) *ManagerViewModel {
	if raw == nil {
		raw = &models.ManagerPayload{}
	}

	names := workerNames(raw.TeamLeaderboard)

	return &ManagerViewModel{
		KPIs: ManagerKPIs{
			TotalLeads:     raw.TotalLeads,
			ConversionRate: raw.ConversationRate.Float(),
			EngagedLeads:   raw.EngagedLeads,
			OverdueTasks:   raw.OverdueTasks,
		},
		Funnel:         funnel(raw.LeadPipeline),
		Categories:     categories(raw.LeadsByCategory),
		Sources:        topSources(raw.LeadsBySource, SourceLimit),
		Leaderboard:    leaderboard(raw.TeamLeaderboard),
		Campaigns:      campaigns(raw.CampaignPerformance),
		RecentActivity: activity(raw.RecentNotifications, now),
		RecentLeads:    recentLeads(raw.RecentLeads, names),
		Deadlines:      deadlines(raw.UpcomingDeadlines, names),
		Insights:       insights(raw.BusinessInsights),
		DailyLeads:     dailySeries(raw.DailyLeadsLast7Days),
	}
}

func funnel(in []models.StatusCount) []FunnelStage {
	out := make([]FunnelStage, 0, len(in))
	for _, s := range in {
		color, ok := stageColors[s.Status]
		if !ok {
			color = DefaultStageColor
		}
		out = append(out, FunnelStage{
			Label: textfmt.StageLabel(s.Status),
			Value: s.Count,
			Color: color,
		})
	}
	return out
}

func categories(in []models.CategoryCount) []DistributionPoint {
	out := make([]DistributionPoint, 0, len(in))
	for _, c := range in {
		out = append(out, DistributionPoint{Name: c.Category, Value: c.Count})
	}
	return out
}

// topSources sorts by count descending (ties keep source order) and keeps
// the first limit entries.
func topSources(in []models.SourceCount, limit int) []DistributionPoint {
	out := make([]DistributionPoint, 0, len(in))
	for _, s := range in {
		out = append(out, DistributionPoint{Name: s.Source, Value: s.Count})
	}
	slices.SortStableFunc(out, func(a, b DistributionPoint) int {
		return b.Value - a.Value
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func leaderboard(in []models.WorkerStanding) []LeaderboardEntry {
	out := make([]LeaderboardEntry, 0, len(in))
	for _, w := range in {
		out = append(out, LeaderboardEntry{
			ID:                   w.WorkerID,
			Name:                 w.Name,
			Assigned:             w.TotalAssignedLeads,
			ConversionPercentage: w.ConvertedPercentage.Float(),
			AvatarInitials:       textfmt.Initials(w.Name),
		})
	}
	return out
}

func campaigns(in []models.CampaignStat) []CampaignRow {
	in = firstN(in, CampaignLimit)
	out := make([]CampaignRow, 0, len(in))
	for _, c := range in {
		rate := c.ConversionRate.Float()
		out = append(out, CampaignRow{
			ID:                  c.ID,
			Title:               c.Title,
			TargetLeads:         c.TargetLeads,
			ConvertedLeads:      c.ConvertedLeads,
			ConversionRate:      rate,
			ConversionRateLabel: textfmt.OneDecimal(rate),
		})
	}
	return out
}

// ActivityIcon maps a notification type to its icon category.
func ActivityIcon(kind string) string {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "lead", "create":
		return IconCreated
	case "conversion":
		return IconConverted
	case "campaign":
		return IconSent
	case "delete":
		return IconDeleted
	default:
		return IconActivity
	}
}

func activity(in []models.Notification, now time.Time) []ActivityItem {
	in = firstN(in, ActivityLimit)
	out := make([]ActivityItem, 0, len(in))
	for _, n := range in {
		out = append(out, ActivityItem{
			ID:        n.ID,
			Icon:      ActivityIcon(n.Type),
			Segments:  textfmt.Highlight(n.Message),
			TimeAgo:   textfmt.TimeAgoString(n.CreatedAt, now),
			CreatedAt: n.CreatedAt,
		})
	}
	return out
}

func recentLeads(in []models.RecentLead, names map[string]string) []RecentLeadItem {
	in = firstN(in, RecentLeadLimit)
	out := make([]RecentLeadItem, 0, len(in))
	for _, l := range in {
		assignee, ok := resolveAssignee(l.AssignedTo, names)
		if !ok {
			assignee = Unassigned
		}
		out = append(out, RecentLeadItem{
			ID:         l.ID,
			Name:       l.Name,
			Company:    orNA(l.Company),
			AssignedTo: assignee,
			Status:     textfmt.TitleWords(l.Status),
		})
	}
	return out
}

func deadlines(in []models.Deadline, names map[string]string) []DeadlineItem {
	out := make([]DeadlineItem, 0, len(in))
	for _, d := range in {
		assignee, ok := resolveAssignee(d.AssignedTo, names)
		if !ok {
			assignee = NotAvailable
		}
		item := DeadlineItem{LeadName: d.Name, AssignedTo: assignee}
		if len(d.FollowUpDates) > 0 {
			due := d.FollowUpDates[0]
			item.DueDate = &due
		}
		out = append(out, item)
	}
	return out
}

func insights(bi *models.BusinessInsights) []InsightCard {
	var in models.BusinessInsights
	if bi != nil {
		in = *bi
	}

	var campaign, performer, category *string
	if in.TopCampaign != nil {
		campaign = in.TopCampaign.Title
	}
	if in.TopPerformer != nil {
		performer = in.TopPerformer.Name
	}
	if in.TopCategory != nil {
		category = in.TopCategory.Category
	}

	return []InsightCard{
		{
			Key:         "avgConversionTime",
			Value:       textfmt.OneDecimal(in.AvgConversionTime.Float()),
			Unit:        "days",
			Description: "Average time to convert a lead",
		},
		{
			Key:         "leadGrowthRate",
			Value:       textfmt.OneDecimal(in.LeadGrowthRate.Float()),
			Unit:        "%",
			Description: "Lead growth compared with the previous period",
		},
		{
			Key:         "averageLeadsPerWorker",
			Value:       textfmt.OneDecimal(in.AverageLeadsPerWorker.Float()),
			Unit:        "leads",
			Description: "Average leads handled per worker",
		},
		{Key: "topCampaign", Value: orNA(campaign), Description: "Top performing campaign"},
		{Key: "topPerformer", Value: orNA(performer), Description: "Top performer"},
		{Key: "topCategory", Value: orNA(category), Description: "Most active category"},
	}
}

func dailySeries(in []models.DailyCount) TimeSeries {
	ts := TimeSeries{Points: make([]TimeSeriesPoint, 0, len(in))}
	for _, d := range in {
		ts.Points = append(ts.Points, TimeSeriesPoint{Label: textfmt.DayLabel(d.Date), Value: d.Count})
		ts.Total += d.Count
	}
	return ts
}

func workerNames(in []models.WorkerStanding) map[string]string {
	names := make(map[string]string, len(in))
	for _, w := range in {
		if w.WorkerID != "" {
			names[w.WorkerID] = w.Name
		}
	}
	return names
}

// resolveAssignee looks the worker up on the leaderboard first and falls
// back to a name embedded in the reference.
func resolveAssignee(ref models.WorkerRef, names map[string]string) (string, bool) {
	if ref.ID != "" {
		if name, ok := names[ref.ID]; ok && name != "" {
			return name, true
		}
	}
	if ref.Name != "" {
		return ref.Name, true
	}
	return "", false
}

func orNA(s *string) string {
	if s == nil {
		return NotAvailable
	}
	return *s
}

func firstN[T any](in []T, n int) []T {
	if len(in) > n {
		return in[:n]
	}
	return in
}
