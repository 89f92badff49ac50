package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"timeo/internal/dates"
	apperrors "timeo/internal/errors"
	"timeo/internal/model"
	"timeo/internal/repository"
	"timeo/internal/streak"
)

const (
	defaultReportDays    = 7
	defaultReportPeriods = 30
	maxReportDays        = 366

	emojiCompleted = "🔥"
	emojiOpen      = "🪵"
)

type ReviewService struct {
	entries  *repository.TimeEntryRepository
	projects *repository.ProjectRepository
	goals    *repository.GoalRepository
	engine   *streak.Engine
	clock    dates.Clock
	loc      *time.Location
}

type ReviewEntry struct {
	model.TimeEntry
	ProjectName  string `json:"projectName"`
	ProjectColor string `json:"projectColor"`
	Minutes      int    `json:"minutes"`
}

type ProjectMinutes struct {
	ProjectID    string `json:"projectId"`
	ProjectName  string `json:"projectName"`
	ProjectColor string `json:"projectColor"`
	Minutes      int    `json:"minutes"`
}

type ReviewGoal struct {
	ID               string `json:"id"`
	ProjectID        string `json:"projectId"`
	Name             string `json:"name"`
	MinMinutesPerDay int    `json:"minMinutesPerDay"`
	Minutes          int    `json:"minutes"`
	Status           string `json:"status"`
	Emoji            string `json:"emoji"`
	Streak           int    `json:"streak"`
}

type TodayReview struct {
	Date          string           `json:"date"`
	Entries       []ReviewEntry    `json:"entries"`
	ProjectTotals []ProjectMinutes `json:"projectTotals"`
	Goals         []ReviewGoal     `json:"goals"`
}

type DailyReport struct {
	Date         string           `json:"date"`
	TotalMinutes int              `json:"totalMinutes"`
	Projects     []ProjectMinutes `json:"projects"`
}

const (
	ReportOverview = "overview"
	ReportDaily    = "daily"
	ReportWeekly   = "weekly"
	ReportMonthly  = "monthly"
)

// ReportQuery selects a report. Limit counts periods back from the current
// one and is ignored by the overview. Project keeps only projects whose name
// contains it, case-insensitively.
type ReportQuery struct {
	Type    string
	Limit   int
	Project string
}

// PeriodReport covers the local days Start through End inclusive.
type PeriodReport struct {
	Label        string           `json:"label"`
	Start        string           `json:"start"`
	End          string           `json:"end"`
	TotalMinutes int              `json:"totalMinutes"`
	Projects     []ProjectMinutes `json:"projects"`
}

type ReportSummary struct {
	Periods        int `json:"periods"`
	ActivePeriods  int `json:"activePeriods"`
	Projects       int `json:"projects"`
	TotalMinutes   int `json:"totalMinutes"`
	AverageMinutes int `json:"averageMinutes"`
}

// Report lists periods newest first.
type Report struct {
	Type    string         `json:"type"`
	Project string         `json:"project,omitempty"`
	Periods []PeriodReport `json:"periods"`
	Summary ReportSummary  `json:"summary"`
}

// TimeRange spans the local days of the first and last stopped entries.
type TimeRange struct {
	FirstDate *string `json:"firstDate"`
	LastDate  *string `json:"lastDate"`
}

func NewReviewService(
	entries *repository.TimeEntryRepository,
	projects *repository.ProjectRepository,
	goals *repository.GoalRepository,
	engine *streak.Engine,
	clock dates.Clock,
	loc *time.Location,
) *ReviewService {
	if clock == nil {
		clock = dates.SystemClock{}
	}
	if loc == nil {
		loc = time.Local
	}
	return &ReviewService{
		entries:  entries,
		projects: projects,
		goals:    goals,
		engine:   engine,
		clock:    clock,
		loc:      loc,
	}
}

// Today lists what was tracked today and where every goal stands.
func (s *ReviewService) Today(ctx context.Context) (*TodayReview, *apperrors.APIError) {
	now := s.clock.Now()
	today := dates.DayWindow(now, s.loc)

	projects, apiErr := projectIndex(ctx, s.projects)
	if apiErr != nil {
		return nil, apiErr
	}

	entries, err := s.entries.ListOverlapping(ctx, "", today.Start, today.End)
	if err != nil {
		return nil, storageError(err, "time_entry", "failed to list today's entries")
	}

	review := &TodayReview{
		Date:    dates.FormatDay(today.Start, s.loc),
		Entries: make([]ReviewEntry, 0, len(entries)),
		Goals:   make([]ReviewGoal, 0),
	}
	totals := make(map[string]int)
	for _, entry := range entries {
		minutes := dates.OverlapMinutes(entry.Start, entry.End, today, now)
		totals[entry.ProjectID] += minutes
		project := projects[entry.ProjectID]
		review.Entries = append(review.Entries, ReviewEntry{
			TimeEntry:    entry,
			ProjectName:  project.Name,
			ProjectColor: project.Color,
			Minutes:      minutes,
		})
	}
	review.ProjectTotals = projectTotals(totals, projects)

	goals, err := s.goals.ListGoals(ctx)
	if err != nil {
		return nil, storageError(err, "goal", "failed to list goals")
	}
	for _, goal := range goals {
		days, err := s.engine.GetGoalStreak(ctx, goal.ID, s.engine.DaysBack())
		if err != nil {
			return nil, storageError(err, "goal", "failed to compute streak")
		}

		item := ReviewGoal{
			ID:               goal.ID,
			ProjectID:        goal.ProjectID,
			Name:             projects[goal.ProjectID].Name,
			MinMinutesPerDay: goal.MinMinutesPerDay,
			Status:           model.StatusPending.Upper(),
			Emoji:            emojiOpen,
			Streak:           streak.CountStreak(days),
		}
		if len(days) > 0 {
			item.Minutes = days[0].Minutes
			item.Status = days[0].Status.Upper()
			if days[0].Status == model.StatusCompleted {
				item.Emoji = emojiCompleted
			}
		}
		review.Goals = append(review.Goals, item)
	}
	return review, nil
}

// Daily returns per-project minutes for each of the last days local days,
// newest first.
func (s *ReviewService) Daily(ctx context.Context, days int) ([]DailyReport, *apperrors.APIError) {
	if days <= 0 {
		days = defaultReportDays
	}
	if days > maxReportDays {
		return nil, apperrors.BadRequest("invalid_days", "days must be at most 366")
	}

	projects, apiErr := projectIndex(ctx, s.projects)
	if apiErr != nil {
		return nil, apiErr
	}

	now := s.clock.Now()
	reports := make([]DailyReport, 0, days)
	for i := 0; i < days; i++ {
		window := dates.DaysAgo(now, i, s.loc)
		total, perProject, apiErr := s.sumWindow(ctx, window, now, projects, "")
		if apiErr != nil {
			return nil, apiErr
		}
		reports = append(reports, DailyReport{
			Date:         dates.FormatDay(window.Start, s.loc),
			TotalMinutes: total,
			Projects:     perProject,
		})
	}
	return reports, nil
}

// Report aggregates tracked minutes per project over days, ISO weeks or
// calendar months, or over all time for the overview.
func (s *ReviewService) Report(ctx context.Context, query ReportQuery) (*Report, *apperrors.APIError) {
	kind := strings.ToLower(strings.TrimSpace(query.Type))
	if kind == "" {
		kind = ReportOverview
	}
	limit := query.Limit
	if limit <= 0 {
		limit = defaultReportPeriods
	}
	if limit > maxReportDays {
		return nil, apperrors.BadRequest("invalid_limit", "limit must be at most 366")
	}

	now := s.clock.Now()
	var windows []dates.Window
	switch kind {
	case ReportOverview:
		// the zero start reaches every stored entry
		windows = []dates.Window{{End: dates.DayWindow(now, s.loc).End}}
	case ReportDaily:
		for i := 0; i < limit; i++ {
			windows = append(windows, dates.DaysAgo(now, i, s.loc))
		}
	case ReportWeekly:
		for i := 0; i < limit; i++ {
			windows = append(windows, weekWindow(now, i, s.loc))
		}
	case ReportMonthly:
		for i := 0; i < limit; i++ {
			windows = append(windows, monthWindow(now, i, s.loc))
		}
	default:
		return nil, apperrors.BadRequest("invalid_report_type", "type must be overview, daily, weekly or monthly")
	}

	projects, apiErr := projectIndex(ctx, s.projects)
	if apiErr != nil {
		return nil, apiErr
	}

	filter := strings.TrimSpace(query.Project)
	report := &Report{Type: kind, Project: filter, Periods: make([]PeriodReport, 0, len(windows))}
	seen := make(map[string]bool)
	for _, window := range windows {
		total, perProject, apiErr := s.sumWindow(ctx, window, now, projects, filter)
		if apiErr != nil {
			return nil, apiErr
		}

		period := PeriodReport{
			Label:        s.periodLabel(kind, window),
			Start:        dates.FormatDay(window.Start, s.loc),
			End:          dates.FormatDay(dates.DaysAgo(window.End, 1, s.loc).Start, s.loc),
			TotalMinutes: total,
			Projects:     perProject,
		}
		if kind == ReportOverview {
			first, _, apiErr := s.dataRange(ctx)
			if apiErr != nil {
				return nil, apiErr
			}
			period.Start = ""
			if first != nil {
				period.Start = *first
			}
		}

		report.Periods = append(report.Periods, period)
		report.Summary.TotalMinutes += total
		if total > 0 {
			report.Summary.ActivePeriods++
		}
		for _, item := range perProject {
			seen[item.ProjectID] = true
		}
	}

	report.Summary.Periods = len(report.Periods)
	report.Summary.Projects = len(seen)
	if report.Summary.ActivePeriods > 0 {
		report.Summary.AverageMinutes = report.Summary.TotalMinutes / report.Summary.ActivePeriods
	}
	return report, nil
}

// Range reports the first and last local day with a stopped entry.
func (s *ReviewService) Range(ctx context.Context) (*TimeRange, *apperrors.APIError) {
	first, last, apiErr := s.dataRange(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	return &TimeRange{FirstDate: first, LastDate: last}, nil
}

func (s *ReviewService) dataRange(ctx context.Context) (*string, *string, *apperrors.APIError) {
	first, last, err := s.entries.StartRange(ctx)
	if err != nil {
		return nil, nil, storageError(err, "time_entry", "failed to read tracked range")
	}
	return s.dayString(first), s.dayString(last), nil
}

func (s *ReviewService) dayString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	day := dates.FormatDay(*t, s.loc)
	return &day
}

// sumWindow totals the minutes every entry spends inside w, per project.
// A non-empty filter keeps projects whose name contains it.
func (s *ReviewService) sumWindow(
	ctx context.Context,
	w dates.Window,
	now time.Time,
	projects map[string]model.Project,
	filter string,
) (int, []ProjectMinutes, *apperrors.APIError) {
	entries, err := s.entries.ListOverlapping(ctx, "", w.Start, w.End)
	if err != nil {
		return 0, nil, storageError(err, "time_entry", "failed to list entries")
	}

	filter = strings.ToLower(filter)
	total := 0
	totals := make(map[string]int)
	for _, entry := range entries {
		if filter != "" && !strings.Contains(strings.ToLower(projects[entry.ProjectID].Name), filter) {
			continue
		}
		minutes := dates.OverlapMinutes(entry.Start, entry.End, w, now)
		if minutes == 0 {
			continue
		}
		totals[entry.ProjectID] += minutes
		total += minutes
	}
	return total, projectTotals(totals, projects), nil
}

func (s *ReviewService) periodLabel(kind string, w dates.Window) string {
	start := w.Start.In(s.loc)
	switch kind {
	case ReportWeekly:
		year, week := start.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case ReportMonthly:
		return start.Format("January 2006")
	case ReportDaily:
		return dates.FormatDay(start, s.loc)
	default:
		return "All time"
	}
}

// weekWindow is the Monday-to-Monday local week i weeks before the one
// containing now.
func weekWindow(now time.Time, i int, loc *time.Location) dates.Window {
	y, m, d := now.In(loc).Date()
	offset := (int(time.Date(y, m, d, 12, 0, 0, 0, loc).Weekday()) + 6) % 7
	monday := d - offset - 7*i
	return dates.Window{
		Start: time.Date(y, m, monday, 0, 0, 0, 0, loc),
		End:   time.Date(y, m, monday+7, 0, 0, 0, 0, loc),
	}
}

// monthWindow is the local calendar month i months before the one
// containing now.
func monthWindow(now time.Time, i int, loc *time.Location) dates.Window {
	y, m, _ := now.In(loc).Date()
	return dates.Window{
		Start: time.Date(y, m-time.Month(i), 1, 0, 0, 0, 0, loc),
		End:   time.Date(y, m-time.Month(i)+1, 1, 0, 0, 0, 0, loc),
	}
}

// projectTotals orders totals by minutes descending, then by name.
func projectTotals(totals map[string]int, projects map[string]model.Project) []ProjectMinutes {
	out := make([]ProjectMinutes, 0, len(totals))
	for projectID, minutes := range totals {
		project := projects[projectID]
		out = append(out, ProjectMinutes{
			ProjectID:    projectID,
			ProjectName:  project.Name,
			ProjectColor: project.Color,
			Minutes:      minutes,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Minutes != out[j].Minutes {
			return out[i].Minutes > out[j].Minutes
		}
		return out[i].ProjectName < out[j].ProjectName
	})
	return out
}
