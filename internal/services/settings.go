package services

import (
	"context"
	"fmt"

	"gift-registry-platform/internal/models"
)

// SettingsService administers platform-wide fee configuration and
// per-event fee overrides.
type SettingsService struct {
	settings SettingsRepository
	events   EventRepository
}

func NewSettingsService(settings SettingsRepository, events EventRepository) *SettingsService {
	return &SettingsService{settings: settings, events: events}
}

// Get returns the current platform settings
func (s *SettingsService) Get(ctx context.Context) (*models.PlatformSettings, error) {
	return s.settings.Get(ctx)
}

// Update applies a partial settings update
func (s *SettingsService) Update(ctx context.Context, req *models.SettingsUpdateRequest) (*models.PlatformSettings, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrInvalidInput, err.Error())
	}

	current, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	if req.DefaultFeePercentage != nil {
		current.DefaultFeePercentage = *req.DefaultFeePercentage
	}
	if req.TransactionFeePercentage != nil {
		current.TransactionFeePercentage = *req.TransactionFeePercentage
	}
	if req.TransactionFeeEnabled != nil {
		current.TransactionFeeEnabled = *req.TransactionFeeEnabled
	}

	if err := s.settings.Update(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

// SetCustomFee sets or clears an event's fee override. The override takes
// precedence over the platform default, including an explicit zero.
func (s *SettingsService) SetCustomFee(ctx context.Context, eventID int, fee *float64) error {
	if fee != nil && (*fee < 0 || *fee > 1) {
		return fmt.Errorf("%w: fee percentage must be between 0 and 1", models.ErrInvalidInput)
	}
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return err
	}
	return s.settings.SetCustomFee(ctx, eventID, fee)
}
