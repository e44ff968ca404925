package models

import (
	"errors"
	"time"
)

// PlatformSettings holds platform-wide fee configuration. Fee percentages
// are fractions: 0.03 means 3% of the gift subtotal.
type PlatformSettings struct {
	ID                       int       `json:"id" db:"id"`
	DefaultFeePercentage     float64   `json:"default_fee_percentage" db:"default_fee_percentage"`
	TransactionFeePercentage float64   `json:"transaction_fee_percentage" db:"transaction_fee_percentage"`
	TransactionFeeEnabled    bool      `json:"transaction_fee_enabled" db:"transaction_fee_enabled"`
	CreatedAt                time.Time `json:"created_at" db:"created_at"`
	UpdatedAt                time.Time `json:"updated_at" db:"updated_at"`
}

// SettingsUpdateRequest updates platform fee configuration
type SettingsUpdateRequest struct {
	DefaultFeePercentage     *float64 `json:"default_fee_percentage"`
	TransactionFeePercentage *float64 `json:"transaction_fee_percentage"`
	TransactionFeeEnabled    *bool    `json:"transaction_fee_enabled"`
}

// DefaultPlatformSettings returns the settings applied when none are stored
func DefaultPlatformSettings() *PlatformSettings {
	return &PlatformSettings{
		DefaultFeePercentage:     0.03,   // 3% platform fee
		TransactionFeePercentage: 0.0499, // pass-through processing fee
		TransactionFeeEnabled:    false,
		CreatedAt:                time.Now(),
		UpdatedAt:                time.Now(),
	}
}

// Validate validates a settings update
func (req *SettingsUpdateRequest) Validate() error {
	if req.DefaultFeePercentage != nil {
		if *req.DefaultFeePercentage < 0 || *req.DefaultFeePercentage > 1 {
			return errors.New("default fee percentage must be between 0 and 1")
		}
	}
	if req.TransactionFeePercentage != nil {
		if *req.TransactionFeePercentage < 0 || *req.TransactionFeePercentage > 1 {
			return errors.New("transaction fee percentage must be between 0 and 1")
		}
	}
	return nil
}
