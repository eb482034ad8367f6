package service

import (
	"strings"

	"github.com/templui/footprint/internal/model"
	"github.com/templui/footprint/internal/repository"
	"github.com/templui/footprint/internal/validation"
)

type ProfileService struct {
	profileRepo repository.ProfileRepository
}

func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
	}
}

// ProfileUpdate carries the editable profile fields. Nil fields are left as is.
type ProfileUpdate struct {
	Name     *string `json:"name"`
	District *string `json:"district"`
	Category *string `json:"category"`
	Theme    *string `json:"theme"`
}

func (s *ProfileService) ByUserID(userID string) (*model.Profile, error) {
	return s.profileRepo.ByUserID(userID)
}

func (s *ProfileService) Update(userID string, in ProfileUpdate) (*model.Profile, error) {
	profile, err := s.profileRepo.ByUserID(userID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		profile.Name = strings.TrimSpace(*in.Name)
	}
	if in.District != nil {
		profile.District = strings.TrimSpace(*in.District)
	}
	if in.Category != nil {
		profile.Category = *in.Category
	}
	if in.Theme != nil {
		profile.Theme = *in.Theme
	}

	err = validateProfile(profile)
	if err != nil {
		return nil, err
	}

	err = s.profileRepo.Update(profile)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// SetTheme stores the light or dark preference.
func (s *ProfileService) SetTheme(userID, theme string) (*model.Profile, error) {
	return s.Update(userID, ProfileUpdate{Theme: &theme})
}

func validateProfile(p *model.Profile) error {
	err := validation.ValidateName(p.Name)
	if err != nil {
		return invalid(err)
	}
	if p.District != "" {
		err = validation.ValidateDistrict(p.District)
		if err != nil {
			return invalid(err)
		}
	}
	err = validation.ValidateCategory(p.Category)
	if err != nil {
		return invalid(err)
	}
	err = validation.ValidateTheme(p.Theme)
	if err != nil {
		return invalid(err)
	}
	return nil
}
