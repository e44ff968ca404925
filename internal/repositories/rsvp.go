package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"gift-registry-platform/internal/models"
)

type RSVPRepository struct {
	db *sql.DB
}

func NewRSVPRepository(db *sql.DB) *RSVPRepository {
	return &RSVPRepository{db: db}
}

func (r *RSVPRepository) Create(ctx context.Context, rsvp *models.RSVP) error {
	query := `
		INSERT INTO rsvps (event_id, guest_name, is_attending, plus_ones, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		rsvp.EventID, rsvp.GuestName, rsvp.IsAttending, rsvp.PlusOnes, rsvp.Message,
	).Scan(&rsvp.ID, &rsvp.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create rsvp: %w", err)
	}
	return nil
}

// ListByEventID returns confirmations first, then declines, newest first
// within each group.
func (r *RSVPRepository) ListByEventID(ctx context.Context, eventID int) ([]*models.RSVP, error) {
	query := `
		SELECT id, event_id, guest_name, is_attending, plus_ones, message, created_at
		FROM rsvps
		WHERE event_id = $1
		ORDER BY is_attending DESC, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rsvps: %w", err)
	}
	defer rows.Close()

	var rsvps []*models.RSVP
	for rows.Next() {
		var rsvp models.RSVP
		err := rows.Scan(&rsvp.ID, &rsvp.EventID, &rsvp.GuestName,
			&rsvp.IsAttending, &rsvp.PlusOnes, &rsvp.Message, &rsvp.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rsvp: %w", err)
		}
		rsvps = append(rsvps, &rsvp)
	}
	return rsvps, rows.Err()
}
