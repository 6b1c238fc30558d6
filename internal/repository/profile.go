package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/windoze95/vanadisheart-api/internal/models"
)

// ProfileKeyPrefix is the fixed key under which each profile blob is stored.
const ProfileKeyPrefix = "vanadisHeartUserData:"

// ProfileRepository persists whole user profiles as JSON blobs.
type ProfileRepository struct {
	Store Store
}

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(store Store) *ProfileRepository {
	return &ProfileRepository{Store: store}
}

// GetProfile loads the profile of userID.
func (r *ProfileRepository) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	data, err := r.Store.Get(ctx, ProfileKeyPrefix+userID)
	if err != nil {
		if IsNotFound(err) {
			return nil, NewNotFoundError("profile %q not found", userID)
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	var profile models.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile %q: %w", userID, err)
	}
	profile.Normalize()
	return &profile, nil
}

// SaveProfile replaces the stored profile.
func (r *ProfileRepository) SaveProfile(ctx context.Context, profile *models.UserProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := r.Store.Set(ctx, ProfileKeyPrefix+profile.ID, data); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}
