package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/templui/footprint/internal/emissions"
	"github.com/templui/footprint/internal/gamification"
	"github.com/templui/footprint/internal/model"
	"github.com/templui/footprint/internal/repository"
)

const (
	PeriodDay   = "day"
	PeriodWeek  = "week"
	PeriodMonth = "month"
)

var (
	ErrUnknownTemplate = errors.New("unknown quick log template")
	ErrUnknownPeriod   = errors.New("period must be day, week or month")
)

// quickLogs are one-tap presets for common green habits.
var quickLogs = map[string]emissions.Activity{
	"walked_to_work":   {Category: emissions.CategoryTransport, TransportMode: "walk", DistanceKm: 2},
	"cycled_to_work":   {Category: emissions.CategoryTransport, TransportMode: "bicycle", DistanceKm: 3},
	"vegetarian_lunch": {Category: emissions.CategoryFood, MealType: "vegetarian", Servings: 1},
	"lights_off_hour":  {Category: emissions.CategoryEnergy, EnergyType: "lights_off", Hours: 1},
	"recycled_waste":   {Category: emissions.CategoryWaste, WasteType: "recycled", WeightKg: 0.5},
}

// ActivityInput is a tracked activity as submitted. Date defaults to today.
type ActivityInput struct {
	emissions.Activity
	Date        string `json:"date,omitempty"`
	Description string `json:"description,omitempty"`
}

type ActivityResult struct {
	Activity *model.Activity `json:"activity"`
	Outcome  *Outcome        `json:"outcome"`
}

type DaySummary struct {
	Date       string  `json:"date"`
	CO2Saved   float64 `json:"co2_saved"`
	Activities int     `json:"activities_count"`
}

type CategorySummary struct {
	CO2Saved float64 `json:"co2_saved"`
	Count    int     `json:"count"`
	Points   int     `json:"points"`
}

type ActivitySummary struct {
	Period          string                     `json:"period"`
	From            string                     `json:"from"`
	To              string                     `json:"to"`
	TotalCO2Saved   float64                    `json:"total_co2_saved"`
	TotalPoints     int                        `json:"total_points"`
	TotalActivities int                        `json:"total_activities"`
	Daily           []DaySummary               `json:"daily_breakdown"`
	Categories      map[string]CategorySummary `json:"category_breakdown"`
	BestDay         *DaySummary                `json:"best_day,omitempty"`
	CurrentStreak   int                        `json:"current_streak"`
	LongestStreak   int                        `json:"longest_streak"`
	Equivalents     emissions.Equivalents      `json:"equivalents"`
}

type Comparison struct {
	Transport map[string]float64 `json:"transport"`
	Food      map[string]float64 `json:"food"`
}

type ActivityService struct {
	repo         repository.ActivityRepository
	stats        repository.StatsRepository
	gamification *GamificationService
	now          func() time.Time
}

func NewActivityService(repo repository.ActivityRepository, stats repository.StatsRepository, gamification *GamificationService) *ActivityService {
	return &ActivityService{
		repo:         repo,
		stats:        stats,
		gamification: gamification,
		now:          time.Now,
	}
}

// Create stores an activity with its CO2 impact. Saving activities earn ten
// points per kg and count towards carbon saved; every activity keeps the
// streak alive.
func (s *ActivityService) Create(userID string, in ActivityInput) (*ActivityResult, error) {
	impact, err := emissions.Impact(in.Activity)
	if err != nil {
		return nil, invalid(err)
	}

	day := in.Date
	if day == "" {
		day = s.now().Format(gamification.DateLayout)
	}
	_, err = time.Parse(gamification.DateLayout, day)
	if err != nil {
		return nil, invalid(fmt.Errorf("date must be YYYY-MM-DD"))
	}

	details, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("failed to encode activity: %w", err)
	}

	activity := &model.Activity{
		UserID:       userID,
		Category:     in.Category,
		ActivityType: activityType(in.Activity),
		Details:      details,
		CO2Kg:        impact,
		Points:       emissions.Points(impact),
		ActivityDate: day,
	}
	err = s.repo.Create(activity)
	if err != nil {
		return nil, fmt.Errorf("failed to save activity: %w", err)
	}

	outcome, err := s.gamification.Credit(userID, Gain{
		Points:   activity.Points,
		CarbonKg: math.Max(impact, 0),
		Active:   true,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("activity logged", "user_id", userID, "category", activity.Category, "co2_kg", impact)
	return &ActivityResult{Activity: activity, Outcome: outcome}, nil
}

func activityType(a emissions.Activity) string {
	switch a.Category {
	case emissions.CategoryTransport:
		return a.TransportMode
	case emissions.CategoryFood:
		return a.MealType
	case emissions.CategoryEnergy:
		return a.EnergyType
	case emissions.CategoryWaste:
		return a.WasteType
	}
	return ""
}

func (s *ActivityService) QuickLog(userID, template string) (*ActivityResult, error) {
	a, ok := quickLogs[template]
	if !ok {
		return nil, ErrUnknownTemplate
	}
	return s.Create(userID, ActivityInput{Activity: a, Description: template})
}

// List returns the newest activities, optionally of one category.
func (s *ActivityService) List(userID, category string, limit int) ([]*model.Activity, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	activities, err := s.repo.List(userID, category, limit)
	if err != nil {
		return nil, err
	}
	if activities == nil {
		activities = []*model.Activity{}
	}
	return activities, nil
}

// periodRange returns the inclusive days of the current day, ISO week
// (Monday first) or calendar month.
func periodRange(period string, now time.Time) (time.Time, time.Time, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch period {
	case PeriodDay, "":
		return today, today, nil
	case PeriodWeek:
		offset := (int(today.Weekday()) + 6) % 7
		start := today.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 6), nil
	case PeriodMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 1, -1), nil
	}
	return time.Time{}, time.Time{}, ErrUnknownPeriod
}

func (s *ActivityService) Summary(userID, period string) (*ActivitySummary, error) {
	if period == "" {
		period = PeriodDay
	}
	from, to, err := periodRange(period, s.now())
	if err != nil {
		return nil, err
	}

	activities, err := s.repo.Between(userID, from.Format(gamification.DateLayout), to.Format(gamification.DateLayout))
	if err != nil {
		return nil, err
	}

	summary := &ActivitySummary{
		Period:     period,
		From:       from.Format(gamification.DateLayout),
		To:         to.Format(gamification.DateLayout),
		Categories: make(map[string]CategorySummary, 4),
	}
	for _, c := range []string{emissions.CategoryTransport, emissions.CategoryFood, emissions.CategoryEnergy, emissions.CategoryWaste} {
		summary.Categories[c] = CategorySummary{}
	}

	days := make(map[string]int)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		key := d.Format(gamification.DateLayout)
		days[key] = len(summary.Daily)
		summary.Daily = append(summary.Daily, DaySummary{Date: key})
	}

	for _, a := range activities {
		saved := math.Max(a.CO2Kg, 0)
		summary.TotalCO2Saved += saved
		summary.TotalPoints += a.Points
		summary.TotalActivities++

		cat := summary.Categories[a.Category]
		cat.CO2Saved = emissions.Round3(cat.CO2Saved + saved)
		cat.Count++
		cat.Points += a.Points
		summary.Categories[a.Category] = cat

		if i, ok := days[a.ActivityDate]; ok {
			d := &summary.Daily[i]
			d.CO2Saved = emissions.Round3(d.CO2Saved + saved)
			d.Activities++
		}
	}
	summary.TotalCO2Saved = emissions.Round3(summary.TotalCO2Saved)

	for i := range summary.Daily {
		d := summary.Daily[i]
		if d.CO2Saved > 0 && (summary.BestDay == nil || d.CO2Saved > summary.BestDay.CO2Saved) {
			summary.BestDay = &d
		}
	}

	stats, err := s.stats.Get(userID)
	if err != nil {
		return nil, err
	}
	summary.CurrentStreak = stats.CurrentStreak
	summary.LongestStreak = stats.LongestStreak
	summary.Equivalents = emissions.Equivalent(summary.TotalCO2Saved)
	return summary, nil
}

// Equivalents converts the user's lifetime carbon saved to everyday terms.
func (s *ActivityService) Equivalents(userID string) (emissions.Equivalents, error) {
	stats, err := s.stats.Get(userID)
	if err != nil {
		return emissions.Equivalents{}, err
	}
	return emissions.Equivalent(stats.CarbonSaved), nil
}

// Compare shows what each transport mode and meal type would emit.
func Compare(distanceKm float64, servings int) (*Comparison, error) {
	if distanceKm < 0 || servings < 0 {
		return nil, invalid(emissions.ErrNegativeValue)
	}
	return &Comparison{
		Transport: emissions.TransportComparison(distanceKm),
		Food:      emissions.FoodComparison(servings),
	}, nil
}
