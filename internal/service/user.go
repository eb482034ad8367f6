package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/templui/footprint/internal/model"
	"github.com/templui/footprint/internal/repository"
	"github.com/templui/footprint/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCurrentPassword = errors.New("current password is incorrect")
	ErrNoPassword             = errors.New("passwordless accounts must set a password first")
)

type UserService struct {
	userRepository    repository.UserRepository
	profileRepository repository.ProfileRepository
	fileService       *FileService
	emailService      *EmailService
}

func NewUserService(
	userRepository repository.UserRepository,
	profileRepository repository.ProfileRepository,
	fileService *FileService,
	emailService *EmailService,
) *UserService {
	return &UserService{
		userRepository:    userRepository,
		profileRepository: profileRepository,
		fileService:       fileService,
		emailService:      emailService,
	}
}

// ByID loads a user with the avatar URL filled in.
func (s *UserService) ByID(id string) (*model.User, error) {
	user, err := s.userRepository.ByID(id)
	if err != nil {
		return nil, err
	}

	avatar, err := s.fileService.Avatar(id)
	if err == nil {
		user.AvatarURL = s.fileService.URL(avatar)
	}

	return user, nil
}

func (s *UserService) UpdatePassword(userID, currentPassword, newPassword, confirm string) error {
	user, err := s.userRepository.ByID(userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if !user.HasPassword() {
		return ErrNoPassword
	}

	err = bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(currentPassword))
	if err != nil {
		return ErrInvalidCurrentPassword
	}

	err = validation.ValidatePasswordConfirm(newPassword, confirm)
	if err != nil {
		return invalid(err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	hash := string(hashedPassword)
	user.PasswordHash = &hash

	err = s.userRepository.Update(user)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// DeleteAccount removes stored files first, then the user row. Everything
// else the user owns goes with it through ON DELETE CASCADE, pledges are
// kept anonymously.
func (s *UserService) DeleteAccount(userID string) error {
	user, err := s.userRepository.ByID(userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	name := "there"
	profile, err := s.profileRepository.ByUserID(userID)
	if err != nil {
		slog.Warn("failed to get profile for deletion email", "user_id", userID, "error", err)
	} else if profile.Name != "" {
		name = profile.Name
	}

	err = s.fileService.DeleteAllUserFilesFromStorage(userID)
	if err != nil {
		// orphaned objects beat a half deleted account
		slog.Warn("failed to delete user files from storage", "user_id", userID, "error", err)
	}

	err = s.emailService.SendAccountDeletedEmail(user.Email, name)
	if err != nil {
		slog.Warn("failed to send account deleted email", "user_id", userID, "error", err)
	}

	err = s.userRepository.Delete(userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	slog.Info("account deleted", "user_id", userID)
	return nil
}
