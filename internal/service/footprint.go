package service

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/templui/footprint/internal/emissions"
	"github.com/templui/footprint/internal/gamification"
	"github.com/templui/footprint/internal/model"
	"github.com/templui/footprint/internal/repository"
	"github.com/templui/footprint/internal/validation"
)

// History caps per user and method. The household calculator keeps a year.
const (
	HistoryLimit          = 50
	HouseholdHistoryLimit = 12
)

// ExportFilename is the download name of a history export.
const ExportFilename = "carbon-footprint-history.json"

// FootprintReport is a standard calculation with everything derived from it.
type FootprintReport struct {
	Result          emissions.Result           `json:"result"`
	AnnualTons      float64                    `json:"annual_tons"`
	Comparison      emissions.Comparison       `json:"comparison"`
	EcoScore        emissions.EcoScore         `json:"eco_score"`
	Percentages     emissions.Share            `json:"percentages"`
	Suggestions     []emissions.Suggestion     `json:"suggestions"`
	OffsetCostUSD   float64                    `json:"offset_cost_usd"`
	Record          *model.Calculation         `json:"record,omitempty"`
	NewAchievements []gamification.Achievement `json:"new_achievements,omitempty"`
}

type HouseholdReport struct {
	emissions.HouseholdResult
	Suggestions     []emissions.Suggestion     `json:"suggestions"`
	Record          *model.Calculation         `json:"record,omitempty"`
	NewAchievements []gamification.Achievement `json:"new_achievements,omitempty"`
}

type HistoryExport struct {
	ExportedAt   time.Time            `json:"exported_at"`
	Count        int                  `json:"count"`
	Summary      emissions.Summary    `json:"summary"`
	Calculations []*model.Calculation `json:"calculations"`
}

type FootprintService struct {
	repo         repository.CalculationRepository
	gamification *GamificationService
}

func NewFootprintService(repo repository.CalculationRepository, gamification *GamificationService) *FootprintService {
	return &FootprintService{
		repo:         repo,
		gamification: gamification,
	}
}

func validateInput(in emissions.Input) error {
	err := validation.Amounts(map[string]float64{
		"car_km":              in.CarKm,
		"bike_km":             in.BikeKm,
		"public_transport_km": in.PublicTransportKm,
		"flight_hours":        in.FlightHours,
		"electricity_kwh":     in.ElectricityKWh,
		"natural_gas_m3":      in.NaturalGasM3,
		"heating_liters":      in.HeatingLiters,
		"shopping":            in.Shopping,
		"waste_kg":            in.WasteKg,
	})
	if err != nil {
		return invalid(err)
	}
	return nil
}

func validateHousehold(in emissions.HouseholdInput) error {
	err := validation.Amounts(map[string]float64{
		"motorbike_km":    in.MotorbikeKm,
		"car_km":          in.CarKm,
		"bus_km":          in.BusKm,
		"ev_km":           in.EVKm,
		"electricity_kwh": in.ElectricityKWh,
		"lpg_cylinders":   in.LPGCylinders,
		"firewood_kg":     in.FirewoodKg,
	})
	if err != nil {
		return invalid(err)
	}
	return nil
}

// Estimate computes a report without saving anything.
func (s *FootprintService) Estimate(in emissions.Input) (*FootprintReport, error) {
	err := validateInput(in)
	if err != nil {
		return nil, err
	}

	r := emissions.Calculate(in)
	annual := emissions.AnnualTons(float64(r.Total))
	return &FootprintReport{
		Result:        r,
		AnnualTons:    annual,
		Comparison:    emissions.Compare(annual),
		EcoScore:      emissions.Score(float64(r.Total)),
		Percentages:   emissions.Percentages(r),
		Suggestions:   emissions.Suggest(in, r),
		OffsetCostUSD: emissions.OffsetCost(annual * 1000),
	}, nil
}

// Calculate computes a report and stores it as the user's newest record.
func (s *FootprintService) Calculate(userID string, in emissions.Input) (*FootprintReport, error) {
	report, err := s.Estimate(in)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("failed to encode input: %w", err)
	}

	calc := &model.Calculation{
		UserID:    userID,
		Method:    model.MethodStandard,
		Input:     raw,
		Transport: float64(report.Result.Transport),
		Energy:    float64(report.Result.Energy),
		Lifestyle: float64(report.Result.Lifestyle),
		Total:     float64(report.Result.Total),
		EcoLevel:  string(report.EcoScore.Level),
	}
	err = s.repo.Append(calc, HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to save calculation: %w", err)
	}
	report.Record = calc

	report.NewAchievements, err = s.gamification.CheckAchievements(userID)
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (s *FootprintService) EstimateHousehold(in emissions.HouseholdInput) (*HouseholdReport, error) {
	err := validateHousehold(in)
	if err != nil {
		return nil, err
	}
	r := emissions.CalculateHousehold(in)
	return &HouseholdReport{
		HouseholdResult: r,
		Suggestions:     emissions.SuggestHousehold(in, r),
	}, nil
}

// Household computes the Nepal household footprint and saves it. Waste is
// stored in the lifestyle column.
func (s *FootprintService) Household(userID string, in emissions.HouseholdInput) (*HouseholdReport, error) {
	report, err := s.EstimateHousehold(in)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("failed to encode input: %w", err)
	}

	calc := &model.Calculation{
		UserID:    userID,
		Method:    model.MethodHousehold,
		Input:     raw,
		Transport: report.Breakdown.Transport,
		Energy:    report.Breakdown.Energy,
		Lifestyle: report.Breakdown.Waste,
		Total:     report.TotalMonthly,
		EcoLevel:  string(report.EcoScore.Level),
	}
	err = s.repo.Append(calc, HouseholdHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to save calculation: %w", err)
	}
	report.Record = calc

	report.NewAchievements, err = s.gamification.CheckAchievements(userID)
	if err != nil {
		return nil, err
	}
	return report, nil
}

// History lists records newest first. An empty method lists both calculators.
func (s *FootprintService) History(userID, method string) ([]*model.Calculation, error) {
	return s.repo.List(userID, method)
}

func (s *FootprintService) Get(userID, id string) (*model.Calculation, error) {
	return s.repo.ByID(userID, id)
}

func (s *FootprintService) Delete(userID, id string) error {
	return s.repo.Delete(userID, id)
}

func (s *FootprintService) Clear(userID, method string) (int64, error) {
	return s.repo.Clear(userID, method)
}

// Stats summarizes the standard calculator history.
func (s *FootprintService) Stats(userID string) (emissions.Summary, error) {
	calcs, err := s.repo.List(userID, model.MethodStandard)
	if err != nil {
		return emissions.Summary{}, err
	}
	return summarize(calcs), nil
}

func summarize(calcs []*model.Calculation) emissions.Summary {
	totals := make([]int, len(calcs))
	for i, c := range calcs {
		totals[i] = int(math.Round(c.Total))
	}
	return emissions.Summarize(totals)
}

// Export renders the whole history as indented JSON.
func (s *FootprintService) Export(userID string) ([]byte, error) {
	calcs, err := s.repo.List(userID, "")
	if err != nil {
		return nil, err
	}
	if calcs == nil {
		calcs = []*model.Calculation{}
	}

	standard := make([]*model.Calculation, 0, len(calcs))
	for _, c := range calcs {
		if c.Method == model.MethodStandard {
			standard = append(standard, c)
		}
	}

	return json.MarshalIndent(HistoryExport{
		ExportedAt:   time.Now().UTC(),
		Count:        len(calcs),
		Summary:      summarize(standard),
		Calculations: calcs,
	}, "", "  ")
}

// Latest returns the newest standard calculation.
func (s *FootprintService) Latest(userID string) (*model.Calculation, error) {
	calcs, err := s.repo.List(userID, model.MethodStandard)
	if err != nil {
		return nil, err
	}
	if len(calcs) == 0 {
		return nil, repository.ErrCalculationNotFound
	}
	return calcs[0], nil
}
