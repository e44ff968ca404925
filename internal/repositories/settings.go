package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"gift-registry-platform/internal/models"
)

// SettingsRepository stores the single platform-wide settings row.
type SettingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Get(ctx context.Context) (*models.PlatformSettings, error) {
	query := `
		SELECT default_fee_percentage, transaction_fee_percentage, transaction_fee_enabled
		FROM platform_settings
		WHERE id = 1`

	var settings models.PlatformSettings
	err := r.db.QueryRowContext(ctx, query).Scan(
		&settings.DefaultFeePercentage,
		&settings.TransactionFeePercentage,
		&settings.TransactionFeeEnabled,
	)
	if err == sql.ErrNoRows {
		return models.DefaultPlatformSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get platform settings: %w", err)
	}
	return &settings, nil
}

func (r *SettingsRepository) Update(ctx context.Context, settings *models.PlatformSettings) error {
	query := `
		INSERT INTO platform_settings (id, default_fee_percentage, transaction_fee_percentage, transaction_fee_enabled, updated_at)
		VALUES (1, $1, $2, $3, NOW())
		ON CONFLICT (id) DO UPDATE SET
			default_fee_percentage = $1,
			transaction_fee_percentage = $2,
			transaction_fee_enabled = $3,
			updated_at = NOW()`

	_, err := r.db.ExecContext(ctx, query,
		settings.DefaultFeePercentage,
		settings.TransactionFeePercentage,
		settings.TransactionFeeEnabled,
	)
	if err != nil {
		return fmt.Errorf("failed to update platform settings: %w", err)
	}
	return nil
}

// SetCustomFee sets or clears the per-event fee override. A nil value
// restores the platform default for that event.
func (r *SettingsRepository) SetCustomFee(ctx context.Context, eventID int, fee *float64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE events SET custom_fee_percentage = $1, updated_at = NOW() WHERE id = $2`,
		fee, eventID)
	if err != nil {
		return fmt.Errorf("failed to set custom fee: %w", err)
	}
	return requireRowAffected(result, models.ErrEventNotFound)
}
