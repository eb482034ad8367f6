package service

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/templui/footprint/internal/model"
	"github.com/templui/footprint/internal/repository"
	"github.com/templui/footprint/internal/validation"
)

type PledgeService struct {
	repo         repository.PledgeRepository
	userRepo     repository.UserRepository
	emailService *EmailService
	appURL       string
}

func NewPledgeService(repo repository.PledgeRepository, userRepo repository.UserRepository, emailService *EmailService, appURL string) *PledgeService {
	return &PledgeService{
		repo:         repo,
		userRepo:     userRepo,
		emailService: emailService,
		appURL:       appURL,
	}
}

// Pledge records a climate pledge. userID is empty for anonymous pledges;
// signed-in pledgers get a confirmation email with their certificate link.
func (s *PledgeService) Pledge(name, district, userID string) (*model.Pledge, error) {
	name = strings.TrimSpace(name)
	district = strings.TrimSpace(district)

	err := validation.ValidateName(name)
	if err != nil {
		return nil, invalid(err)
	}
	err = validation.ValidateDistrict(district)
	if err != nil {
		return nil, invalid(err)
	}

	pledge := &model.Pledge{Name: name, District: district}
	if userID != "" {
		pledge.UserID = &userID
	}
	err = s.repo.Create(pledge)
	if err != nil {
		return nil, fmt.Errorf("failed to save pledge: %w", err)
	}

	slog.Info("pledge taken", "pledge_id", pledge.ID, "number", pledge.Number)

	if userID != "" {
		user, err := s.userRepo.ByID(userID)
		if err != nil {
			slog.Error("failed to load pledger", "error", err, "user_id", userID)
			return pledge, nil
		}
		err = s.emailService.SendPledgeEmail(user.Email, name, pledge.Number, s.CertificateURL(pledge))
		if err != nil {
			slog.Error("failed to send pledge email", "error", err, "user_id", userID)
		}
	}

	return pledge, nil
}

func (s *PledgeService) Count() (int, error) {
	return s.repo.Count()
}

func (s *PledgeService) ByID(id string) (*model.Pledge, error) {
	return s.repo.ByID(id)
}

func (s *PledgeService) CertificateURL(p *model.Pledge) string {
	return fmt.Sprintf("%s/api/pledges/%s/certificate", s.appURL, p.ID)
}
