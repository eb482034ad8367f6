package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/templui/footprint/internal/model"
	"github.com/templui/footprint/internal/repository"
	"github.com/templui/footprint/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

const AuthCookieName = "auth_token"

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrEmailNotVerified    = errors.New("email not verified")
	ErrInvalidEmail        = errors.New("invalid email address")
	ErrPasswordlessLogin   = errors.New("this account signs in with a magic link")
	ErrInvalidLink         = errors.New("invalid or expired link")
	ErrInvalidToken        = errors.New("invalid token")
	ErrPasswordAlreadySet  = errors.New("password already set, use change password instead")
	ErrAlreadyPasswordless = errors.New("account is already passwordless")
)

type AuthService struct {
	userRepository           repository.UserRepository
	profileRepository        repository.ProfileRepository
	tokenRepository          repository.TokenRepository
	emailService             *EmailService
	jwtSecret                string
	isProduction             bool
	jwtExpiry                time.Duration
	tokenPasswordResetExpiry time.Duration
	tokenMagicLinkExpiry     time.Duration
}

func NewAuthService(
	userRepository repository.UserRepository,
	profileRepository repository.ProfileRepository,
	tokenRepository repository.TokenRepository,
	emailService *EmailService,
	jwtSecret string,
	isProduction bool,
	jwtExpiry time.Duration,
	tokenPasswordResetExpiry time.Duration,
	tokenMagicLinkExpiry time.Duration,
) *AuthService {
	return &AuthService{
		userRepository:           userRepository,
		profileRepository:        profileRepository,
		tokenRepository:          tokenRepository,
		emailService:             emailService,
		jwtSecret:                jwtSecret,
		isProduction:             isProduction,
		jwtExpiry:                jwtExpiry,
		tokenPasswordResetExpiry: tokenPasswordResetExpiry,
		tokenMagicLinkExpiry:     tokenMagicLinkExpiry,
	}
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

// Register creates a password account. The address is verified through the
// magic link mailed right after, until then Login refuses the account.
func (s *AuthService) Register(email, password, confirm, name string) (*model.User, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)

	err := validation.ValidateEmail(email)
	if err != nil {
		return nil, ErrInvalidEmail
	}

	err = validation.ValidatePasswordConfirm(password, confirm)
	if err != nil {
		return nil, invalid(err)
	}

	if name != "" {
		err = validation.ValidateName(name)
		if err != nil {
			return nil, invalid(err)
		}
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.createAccount(email, &hash, nil, name)
	if err != nil {
		return nil, err
	}

	err = s.issueLink(user, model.TokenTypeMagicLink, s.tokenMagicLinkExpiry, name, s.emailService.SendMagicLinkEmail)
	if err != nil {
		return nil, err
	}

	slog.Info("user registered", "user_id", user.ID)
	return user, nil
}

func (s *AuthService) createAccount(email string, passwordHash *string, verifiedAt *time.Time, name string) (*model.User, error) {
	now := time.Now()
	user := &model.User{
		ID:              uuid.New().String(),
		Email:           email,
		PasswordHash:    passwordHash,
		EmailVerifiedAt: verifiedAt,
		CreatedAt:       now,
	}

	err := s.userRepository.Create(user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// name may be empty, onboarding fills it in
	profile := &model.Profile{
		UserID:    user.ID,
		Name:      name,
		CreatedAt: now,
	}
	err = s.profileRepository.Create(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return user, nil
}

func (s *AuthService) Login(email, password string) (*model.User, error) {
	email = normalizeEmail(email)

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !user.HasPassword() {
		return nil, ErrPasswordlessLogin
	}

	err = s.ComparePassword(password, *user.PasswordHash)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.EmailVerifiedAt == nil {
		return nil, ErrEmailNotVerified
	}

	return user, nil
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *AuthService) ComparePassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func (s *AuthService) GenerateToken() (string, error) {
	bytes := make([]byte, 32)
	_, err := rand.Read(bytes)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

func (s *AuthService) GenerateJWT(user *model.User) (string, time.Time, error) {
	now := time.Now()
	expiry := now.Add(s.jwtExpiry)
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     expiry.Unix(),
		"iat":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiry, nil
}

func (s *AuthService) VerifyJWT(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// UserIDFromJWT returns the user_id claim of a valid token.
func (s *AuthService) UserIDFromJWT(tokenString string) (string, error) {
	claims, err := s.VerifyJWT(tokenString)
	if err != nil {
		return "", err
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", ErrInvalidToken
	}
	return userID, nil
}

func (s *AuthService) SetJWTCookie(w http.ResponseWriter, token string, expiry time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Expires:  expiry,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *AuthService) ClearJWTCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *AuthService) SetPassword(userID, newPassword, confirm string) error {
	user, err := s.userRepository.ByID(userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.HasPassword() {
		return ErrPasswordAlreadySet
	}

	err = validation.ValidatePasswordConfirm(newPassword, confirm)
	if err != nil {
		return invalid(err)
	}

	hashedPassword, err := s.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = &hashedPassword
	err = s.userRepository.Update(user)
	if err != nil {
		return fmt.Errorf("failed to set password: %w", err)
	}

	slog.Info("password set for passwordless account", "user_id", userID)
	return nil
}

func (s *AuthService) RemovePassword(userID string) error {
	user, err := s.userRepository.ByID(userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if !user.HasPassword() {
		return ErrAlreadyPasswordless
	}

	user.PasswordHash = nil
	err = s.userRepository.Update(user)
	if err != nil {
		return fmt.Errorf("failed to remove password: %w", err)
	}

	slog.Info("password removed", "user_id", userID)
	return nil
}

// issueLink replaces any outstanding token of tokenType and mails a fresh one.
func (s *AuthService) issueLink(user *model.User, tokenType string, ttl time.Duration, name string, deliver func(email, token, name string) error) error {
	err := s.tokenRepository.DeleteByUserAndType(user.ID, tokenType)
	if err != nil {
		slog.Warn("failed to delete old tokens", "error", err, "user_id", user.ID, "type", tokenType)
	}

	value, err := s.GenerateToken()
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	token := &model.Token{
		UserID:    user.ID,
		Type:      tokenType,
		Token:     value,
		ExpiresAt: time.Now().Add(ttl),
	}
	err = s.tokenRepository.Create(token)
	if err != nil {
		return fmt.Errorf("failed to create token: %w", err)
	}

	err = deliver(user.Email, value, name)
	if err != nil {
		slog.Error("failed to send link", "error", err, "type", tokenType, "user_id", user.ID)
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *AuthService) profileName(userID string) string {
	profile, err := s.profileRepository.ByUserID(userID)
	if err != nil {
		return ""
	}
	return profile.Name
}

// SendMagicLink signs existing users in and creates a passwordless account
// for unknown addresses.
func (s *AuthService) SendMagicLink(email string) error {
	email = normalizeEmail(email)

	err := validation.ValidateEmail(email)
	if err != nil {
		return ErrInvalidEmail
	}

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			return fmt.Errorf("failed to lookup user: %w", err)
		}

		user, err = s.createAccount(email, nil, nil, "")
		if err != nil {
			return err
		}
		slog.Info("new passwordless user created", "user_id", user.ID)
	}

	err = s.issueLink(user, model.TokenTypeMagicLink, s.tokenMagicLinkExpiry, s.profileName(user.ID), s.emailService.SendMagicLinkEmail)
	if err != nil {
		return err
	}

	slog.Info("magic link sent", "user_id", user.ID)
	return nil
}

// SendForgotPasswordLink mails a one-time link that drops the password and
// signs the user in. Unknown and passwordless addresses succeed silently so
// the endpoint can't be used to probe for accounts.
func (s *AuthService) SendForgotPasswordLink(email string) error {
	email = normalizeEmail(email)

	err := validation.ValidateEmail(email)
	if err != nil {
		return ErrInvalidEmail
	}

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		slog.Info("forgot password requested for unknown email")
		return nil
	}

	if !user.HasPassword() {
		slog.Info("forgot password requested for passwordless account", "user_id", user.ID)
		return nil
	}

	err = s.issueLink(user, model.TokenTypePasswordReset, s.tokenPasswordResetExpiry, s.profileName(user.ID), s.emailService.SendForgotPasswordEmail)
	if err != nil {
		return err
	}

	slog.Info("forgot password link sent", "user_id", user.ID)
	return nil
}

func (s *AuthService) consume(token, tokenType string) (*model.User, error) {
	tokenModel, err := s.tokenRepository.ConsumeToken(token)
	if err != nil {
		return nil, ErrInvalidLink
	}

	if tokenModel.Type != tokenType {
		return nil, ErrInvalidLink
	}

	user, err := s.userRepository.ByID(tokenModel.UserID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	if user.EmailVerifiedAt == nil {
		now := time.Now()
		user.EmailVerifiedAt = &now
		err = s.userRepository.Update(user)
		if err != nil {
			slog.Warn("failed to verify email", "error", err, "user_id", user.ID)
		}
	}

	return user, nil
}

// VerifyMagicLink consumes a magic link and verifies the address on first use.
func (s *AuthService) VerifyMagicLink(token string) (*model.User, error) {
	user, err := s.consume(token, model.TokenTypeMagicLink)
	if err != nil {
		return nil, err
	}

	slog.Info("user authenticated via magic link", "user_id", user.ID)
	return user, nil
}

// VerifyForgotPassword consumes a reset link and removes the password, the
// user sets a new one once signed in.
func (s *AuthService) VerifyForgotPassword(token string) (*model.User, error) {
	user, err := s.consume(token, model.TokenTypePasswordReset)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = nil
	err = s.userRepository.Update(user)
	if err != nil {
		return nil, fmt.Errorf("failed to remove password: %w", err)
	}

	slog.Info("user authenticated via forgot password link", "user_id", user.ID)
	return user, nil
}

func (s *AuthService) NeedsOnboarding(userID string) (bool, error) {
	profile, err := s.profileRepository.ByUserID(userID)
	if err != nil {
		return false, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile.Name == "", nil
}

// CompleteOnboarding sets the display name and leaderboard details, then
// sends the welcome email.
func (s *AuthService) CompleteOnboarding(userID, name, district, category string) error {
	profile, err := s.profileRepository.ByUserID(userID)
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}

	profile.Name = strings.TrimSpace(name)
	profile.District = strings.TrimSpace(district)
	if category != "" {
		profile.Category = category
	}

	err = validateProfile(profile)
	if err != nil {
		return err
	}

	err = s.profileRepository.Update(profile)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	user, err := s.userRepository.ByID(userID)
	if err == nil {
		err = s.emailService.SendWelcomeEmail(user.Email, profile.Name)
		if err != nil {
			slog.Warn("failed to send welcome email", "error", err, "user_id", userID)
		}
	}

	slog.Info("onboarding completed", "user_id", userID)
	return nil
}

// AuthenticateOAuth returns the account for a provider-verified email,
// creating it on first sign in.
func (s *AuthService) AuthenticateOAuth(email, provider string) (*model.User, error) {
	email = normalizeEmail(email)

	err := validation.ValidateEmail(email)
	if err != nil {
		return nil, ErrInvalidEmail
	}

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to lookup user: %w", err)
		}

		now := time.Now()
		user, err = s.createAccount(email, nil, &now, "")
		if err != nil {
			return nil, err
		}

		slog.Info("new OAuth user created", "user_id", user.ID, "provider", provider)
		return user, nil
	}

	if user.EmailVerifiedAt == nil {
		now := time.Now()
		user.EmailVerifiedAt = &now
		err = s.userRepository.Update(user)
		if err != nil {
			slog.Warn("failed to mark email as verified", "error", err, "user_id", user.ID)
		}
	}

	slog.Info("user authenticated via OAuth", "user_id", user.ID, "provider", provider)
	return user, nil
}
