package service

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/templui/footprint/internal/gamification"
	"github.com/templui/footprint/internal/markdown"
	"github.com/templui/footprint/internal/model"
	"github.com/templui/footprint/internal/repository"
)

var ErrTipNotFound = errors.New("tip not found")

var firstNumber = regexp.MustCompile(`\d+`)

// ImplementedTips is a user's adopted tips with their combined effect.
type ImplementedTips struct {
	Tips         []*model.ImplementedTip `json:"tips"`
	TotalSavings int                     `json:"total_savings_kg_per_year"`
	EcoPoints    int                     `json:"eco_points"`
}

type TipService struct {
	repo         repository.TipRepository
	gamification *GamificationService
	tips         []*model.Tip
	bySlug       map[string]*model.Tip
}

// NewTipService loads every tips/*.md file of content.
func NewTipService(content fs.FS, repo repository.TipRepository, gamification *GamificationService) (*TipService, error) {
	tips, err := loadTips(content, markdown.NewParser())
	if err != nil {
		return nil, err
	}

	s := &TipService{
		repo:         repo,
		gamification: gamification,
		tips:         tips,
		bySlug:       make(map[string]*model.Tip, len(tips)),
	}
	for _, t := range tips {
		s.bySlug[t.Slug] = t
	}
	return s, nil
}

func loadTips(content fs.FS, parser *markdown.Parser) ([]*model.Tip, error) {
	files, err := fs.Glob(content, "tips/*.md")
	if err != nil {
		return nil, err
	}

	tips := make([]*model.Tip, 0, len(files))
	for _, file := range files {
		source, err := fs.ReadFile(content, file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}

		tip := &model.Tip{
			Slug:    strings.TrimSuffix(path.Base(file), ".md"),
			Content: string(source),
		}
		html, err := parser.Render(source, tip)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", file, err)
		}
		tip.HTMLContent = string(html)

		if tip.Title == "" {
			slog.Warn("skipping tip without title", "file", file)
			continue
		}
		tips = append(tips, tip)
	}

	sort.SliceStable(tips, func(i, j int) bool {
		if tips[i].Order != tips[j].Order {
			return tips[i].Order < tips[j].Order
		}
		return tips[i].Slug < tips[j].Slug
	})
	return tips, nil
}

// List returns the catalog, optionally limited to one category.
func (s *TipService) List(category string) []*model.Tip {
	if category == "" {
		return s.tips
	}
	var out []*model.Tip
	for _, t := range s.tips {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}

func (s *TipService) Tip(slug string) (*model.Tip, error) {
	tip, ok := s.bySlug[slug]
	if !ok {
		return nil, ErrTipNotFound
	}
	return tip, nil
}

// Implement marks a tip as adopted and awards its eco points. Adopting the same
// title twice fails with repository.ErrTipAlreadyImplemented.
func (s *TipService) Implement(userID, slug string) (*model.ImplementedTip, *Outcome, error) {
	tip, err := s.Tip(slug)
	if err != nil {
		return nil, nil, err
	}

	implemented := &model.ImplementedTip{
		UserID:  userID,
		Slug:    tip.Slug,
		Title:   tip.Title,
		Savings: tip.Savings,
	}
	err = s.repo.Create(implemented)
	if err != nil {
		return nil, nil, err
	}

	outcome, err := s.gamification.Credit(userID, Gain{Points: gamification.TipPoints})
	if err != nil {
		return nil, nil, err
	}

	slog.Info("tip implemented", "user_id", userID, "tip", slug)
	return implemented, outcome, nil
}

// Remove un-adopts a tip and takes its points back. A tip whose points
// were already spent stays implemented.
func (s *TipService) Remove(userID, id string) error {
	tip, err := s.repo.Delete(userID, id)
	if err != nil {
		return err
	}

	err = s.gamification.Revoke(userID, gamification.TipPoints)
	if err != nil {
		restoreErr := s.repo.Create(tip)
		if restoreErr != nil {
			slog.Error("failed to restore tip", "error", restoreErr, "user_id", userID, "tip", tip.Slug)
		}
		return err
	}

	slog.Info("tip removed", "user_id", userID, "tip", tip.Slug)
	return nil
}

func (s *TipService) Implemented(userID string) (*ImplementedTips, error) {
	tips, err := s.repo.ByUser(userID)
	if err != nil {
		return nil, err
	}
	if tips == nil {
		tips = []*model.ImplementedTip{}
	}

	total := 0
	for _, t := range tips {
		total += SavingsKg(t.Savings)
	}
	return &ImplementedTips{
		Tips:         tips,
		TotalSavings: total,
		EcoPoints:    len(tips) * gamification.TipPoints,
	}, nil
}

// SavingsKg reads the first whole number in a savings text, 0 if none.
func SavingsKg(savings string) int {
	n, err := strconv.Atoi(firstNumber.FindString(savings))
	if err != nil {
		return 0
	}
	return n
}
