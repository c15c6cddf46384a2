// internal/app/viewmodel/worker.go
package viewmodel

import (
	"time"

	"github.com/dalemusser/leadpulse/internal/app/system/textfmt"
	"github.com/dalemusser/leadpulse/internal/domain/models"
)

// FollowUpPending is the status shown for every follow-up due today.
const FollowUpPending = "Pending"

// DeriveWorker projects a raw worker payload into its view model. Like
// DeriveManager it never fails on missing fields.
func DeriveWorker(raw *models.WorkerPayload, now time.Time) *WorkerViewModel {
	if raw == nil {
		raw = &models.WorkerPayload{}
	}

	var today models.FollowUpsToday
	if raw.FollowUpsToday != nil {
		today = *raw.FollowUpsToday
	}

	return &WorkerViewModel{
		KPIs: WorkerKPIs{
			TotalAssignedLeads: raw.TotalAssignedLeads,
			PendingFollowUps:   raw.PendingFollowUps,
			FollowUpsToday:     today.Count,
			MissingFollowUps:   raw.MissingFollowUps,
		},
		CategoryPerformance: categoryRatios(raw.PerformanceByCategory),
		TodayFollowUps:      todayFollowUps(today.Data),
		Schedule:            schedule(raw.UpcomingSchedule, now),
		Overdue:             overdue(raw.OverdueFollowUps),
		RecentAssignments:   assignments(raw.RecentAssignments),
	}
}

// ProfitablePercentage is profitable/(profitable+nonprofitable)*100, or 0
// when there is nothing to divide by.
func ProfitablePercentage(profitable, nonprofitable int) float64 {
	total := profitable + nonprofitable
	if total <= 0 {
		return 0
	}
	return float64(profitable) / float64(total) * 100
}

func categoryRatios(in []models.CategoryPerformance) []CategoryRatio {
	out := make([]CategoryRatio, 0, len(in))
	for _, c := range in {
		out = append(out, CategoryRatio{
			ID:                   c.CategoryID,
			Name:                 c.CategoryName,
			TotalLeads:           c.TotalLeads,
			Profitable:           c.Profitable,
			Nonprofitable:        c.Nonprofitable,
			Total:                c.Profitable + c.Nonprofitable,
			ProfitablePercentage: ProfitablePercentage(c.Profitable, c.Nonprofitable),
		})
	}
	return out
}

func todayFollowUps(in []models.FollowUpLead) []FollowUpItem {
	out := make([]FollowUpItem, 0, len(in))
	for _, l := range in {
		out = append(out, FollowUpItem{
			ID:      l.ID,
			Name:    l.Name,
			Company: orNA(l.Company),
			Status:  FollowUpPending,
		})
	}
	return out
}

// schedule emits at most two entries; a day with no events is left out.
func schedule(in *models.UpcomingSchedule, now time.Time) []ScheduleEntry {
	out := make([]ScheduleEntry, 0, 2)
	if in == nil {
		return out
	}
	if len(in.Today) > 0 {
		out = append(out, ScheduleEntry{
			Day:    "today",
			Date:   now.Format("2006-01-02"),
			Events: append([]string(nil), in.Today...),
		})
	}
	if len(in.Tomorrow) > 0 {
		out = append(out, ScheduleEntry{
			Day:    "tomorrow",
			Date:   now.AddDate(0, 0, 1).Format("2006-01-02"),
			Events: append([]string(nil), in.Tomorrow...),
		})
	}
	return out
}

func overdue(in []models.OverdueFollowUp) []OverdueItem {
	out := make([]OverdueItem, 0, len(in))
	for _, o := range in {
		item := OverdueItem{
			ID:      o.ID,
			Name:    o.Name,
			Company: orNA(o.Position),
		}
		if len(o.FollowUpDates) > 0 {
			item.DueDate = o.FollowUpDates[0]
		}
		out = append(out, item)
	}
	return out
}

func assignments(in []models.RecentAssignment) []AssignmentItem {
	out := make([]AssignmentItem, 0, len(in))
	for _, a := range in {
		out = append(out, AssignmentItem{
			ID:           a.ID,
			Name:         a.Name,
			Company:      orNA(a.Position),
			AssignedDate: a.CreatedAt,
			Status:       textfmt.StatusLabel(a.Status),
		})
	}
	return out
}
