package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/templui/footprint/internal/emissions"
	"github.com/templui/footprint/internal/model"
	"github.com/templui/footprint/internal/repository"
	"github.com/templui/footprint/internal/ui"
)

type StoredReport struct {
	File *model.File `json:"file"`
	URL  string      `json:"url"`
}

type ReportService struct {
	appName      string
	profiles     repository.ProfileRepository
	footprints   *FootprintService
	gamification *GamificationService
	files        *FileService
}

func NewReportService(appName string, profiles repository.ProfileRepository, footprints *FootprintService, gamification *GamificationService, files *FileService) *ReportService {
	return &ReportService{
		appName:      appName,
		profiles:     profiles,
		footprints:   footprints,
		gamification: gamification,
		files:        files,
	}
}

// Data collects the report contents. Users without a calculation still get
// a report with their impact and achievements.
func (s *ReportService) Data(userID string) (ui.ReportData, error) {
	data := ui.ReportData{AppName: s.appName, GeneratedAt: time.Now()}

	profile, err := s.profiles.ByUserID(userID)
	if err == nil {
		data.Name = profile.Name
	}

	latest, err := s.footprints.Latest(userID)
	switch {
	case err == nil:
		data.Calculation = latest
		data.Score = emissions.Score(latest.Total)
		data.Comparison = emissions.Compare(emissions.AnnualTons(latest.Total))
		data.Percentages = emissions.Percentages(emissions.Result{
			Transport: int(latest.Transport),
			Energy:    int(latest.Energy),
			Lifestyle: int(latest.Lifestyle),
			Total:     int(latest.Total),
		})
	case errors.Is(err, repository.ErrCalculationNotFound):
	default:
		return data, err
	}

	data.Summary, err = s.footprints.Stats(userID)
	if err != nil {
		return data, err
	}

	stats, err := s.gamification.Stats(userID)
	if err != nil {
		return data, err
	}
	data.CarbonSaved = stats.CarbonSaved
	for _, a := range stats.Achievements {
		if a.Unlocked {
			data.Achievements = append(data.Achievements, a.Name)
		}
	}
	return data, nil
}

// Store renders the report and uploads it as a private file. The returned
// URL is presigned and short lived.
func (s *ReportService) Store(ctx context.Context, userID string) (*StoredReport, error) {
	data, err := s.Data(userID)
	if err != nil {
		return nil, err
	}

	html, err := ui.Bytes(ctx, ui.FootprintReport(data))
	if err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	file, err := s.files.Upload(Upload{
		UserID:       userID,
		OwnerType:    model.OwnerTypeReport,
		OwnerID:      userID,
		FileType:     model.FileTypeReport,
		OriginalName: fmt.Sprintf("footprint-report-%s.html", data.GeneratedAt.Format("2006-01-02")),
		ContentType:  "text/html; charset=utf-8",
		Size:         int64(len(html)),
		Content:      bytes.NewReader(html),
	})
	if err != nil {
		return nil, err
	}

	slog.Info("report stored", "user_id", userID, "file_id", file.ID)
	return &StoredReport{File: file, URL: s.files.URL(file)}, nil
}

func (s *ReportService) List(userID string) ([]*StoredReport, error) {
	files, err := s.files.UserFiles(userID, model.FileTypeReport)
	if err != nil {
		return nil, err
	}

	reports := make([]*StoredReport, 0, len(files))
	for _, f := range files {
		reports = append(reports, &StoredReport{File: f, URL: s.files.URL(f)})
	}
	return reports, nil
}
