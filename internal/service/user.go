package service

import (
	"context"
	"strings"

	goaway "github.com/TwiN/go-away"
	"github.com/asaskevich/govalidator"
	"github.com/windoze95/vanadisheart-api/internal/config"
	"github.com/windoze95/vanadisheart-api/internal/models"
)

const minUsernameLength = 3

// forbiddenUsernames cannot be used to log in.
var forbiddenUsernames = []string{
	"admin",
	"administrator",
	"root",
	"sys",
	"sysadmin",
	"system",
	"test",
	"testuser",
	"login",
	"logout",
	"register",
	"password",
	"user",
	"newuser",
	"support",
	"help",
	"faq",
	"vanadisheart",
	"vanadisheartadmin",
	"vanadisheartroot",
}

// UserService is the business logic layer for trivial username login.
type UserService struct {
	Cfg      *config.Config
	Profiles *ProfileService
}

// NewUserService is the constructor function for initializing a new UserService
func NewUserService(cfg *config.Config, profiles *ProfileService) *UserService {
	return &UserService{
		Cfg:      cfg,
		Profiles: profiles,
	}
}

// UserIDFor returns the profile ID owned by username.
func UserIDFor(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// Login validates the username and optional email and returns the user's
// profile, creating it on first login.
func (s *UserService) Login(ctx context.Context, username, email string) (*models.UserProfile, bool, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if err := s.ValidateUsername(username); err != nil {
		return nil, false, err
	}
	if email != "" {
		if err := s.ValidateEmail(email); err != nil {
			return nil, false, err
		}
	}

	return s.Profiles.EnsureProfile(ctx, UserIDFor(username), username, email)
}

// ValidateUsername validates a username against a set of rules.
func (s *UserService) ValidateUsername(username string) error {
	// Check if the username is long enough
	if len(username) < minUsernameLength {
		return NewValidationError("username", "username must be at least %d characters", minUsernameLength)
	}

	// Check if the username is alphanumeric
	if !govalidator.IsAlphanumeric(username) {
		return NewValidationError("username", "username can only contain alphanumeric characters")
	}

	// Check if the username is in the forbidden list
	for _, forbiddenUsername := range forbiddenUsernames {
		if strings.EqualFold(username, forbiddenUsername) {
			return NewValidationError("username", "username '%s' is not allowed", username)
		}
	}

	// Profanity check
	profanityDetector := goaway.NewProfanityDetector().WithSanitizeLeetSpeak(true).WithSanitizeSpecialCharacters(true).WithSanitizeAccents(false)
	if profanityDetector.IsProfane(username) {
		return NewValidationError("username", "username contains inappropriate language")
	}

	return nil
}

// ValidateEmail validates an email address against a set of rules.
func (s *UserService) ValidateEmail(email string) error {
	if !govalidator.IsEmail(email) {
		return NewValidationError("email", "invalid email format")
	}
	return nil
}
