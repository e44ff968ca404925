package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"gift-registry-platform/internal/models"
)

type GiftRepository struct {
	db *sql.DB
}

func NewGiftRepository(db *sql.DB) *GiftRepository {
	return &GiftRepository{db: db}
}

func (r *GiftRepository) GetByEventID(ctx context.Context, eventID int) ([]*models.Gift, error) {
	query := `
		SELECT id, event_id, title, description, image_url, value_default, value_premium
		FROM gifts
		WHERE event_id = $1
		ORDER BY position, id`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query gifts: %w", err)
	}
	defer rows.Close()

	var gifts []*models.Gift
	for rows.Next() {
		var gift models.Gift
		err := rows.Scan(&gift.ID, &gift.EventID, &gift.Title, &gift.Description,
			&gift.ImageURL, &gift.ValueDefault, &gift.ValuePremium)
		if err != nil {
			return nil, fmt.Errorf("failed to scan gift: %w", err)
		}
		gifts = append(gifts, &gift)
	}
	return gifts, rows.Err()
}

func (r *GiftRepository) GetByID(ctx context.Context, id int) (*models.Gift, error) {
	query := `
		SELECT id, event_id, title, description, image_url, value_default, value_premium
		FROM gifts
		WHERE id = $1`

	var gift models.Gift
	err := r.db.QueryRowContext(ctx, query, id).Scan(&gift.ID, &gift.EventID,
		&gift.Title, &gift.Description, &gift.ImageURL, &gift.ValueDefault, &gift.ValuePremium)
	if err == sql.ErrNoRows {
		return nil, models.ErrGiftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get gift: %w", err)
	}
	return &gift, nil
}

// ReplaceForEvent reconciles the stored gift list with the submitted one.
// Gifts carrying an existing id are updated in place so their ids stay
// stable across saves, new gifts are inserted, and gifts absent from the
// submission are removed.
func (r *GiftRepository) ReplaceForEvent(ctx context.Context, tx *sql.Tx, eventID int, gifts []models.GiftInput) error {
	keep := make([]int, 0, len(gifts))

	for position, input := range gifts {
		if input.ID > 0 {
			result, err := tx.ExecContext(ctx, `
				UPDATE gifts
				SET title = $1, description = $2, image_url = $3,
					value_default = $4, value_premium = $5, position = $6, updated_at = NOW()
				WHERE id = $7 AND event_id = $8`,
				input.Title, input.Description, input.ImageURL,
				input.ValueDefault, input.ValuePremium, position, input.ID, eventID)
			if err != nil {
				return fmt.Errorf("failed to update gift %d: %w", input.ID, err)
			}
			rows, err := result.RowsAffected()
			if err != nil {
				return fmt.Errorf("failed to get rows affected: %w", err)
			}
			if rows > 0 {
				keep = append(keep, input.ID)
				continue
			}
			// Unknown id for this event, insert as a new gift instead.
		}

		var id int
		err := tx.QueryRowContext(ctx, `
			INSERT INTO gifts (event_id, title, description, image_url, value_default, value_premium, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id`,
			eventID, input.Title, input.Description, input.ImageURL,
			input.ValueDefault, input.ValuePremium, position).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to insert gift: %w", err)
		}
		keep = append(keep, id)
	}

	var err error
	if len(keep) == 0 {
		_, err = tx.ExecContext(ctx, `DELETE FROM gifts WHERE event_id = $1`, eventID)
	} else {
		_, err = tx.ExecContext(ctx,
			`DELETE FROM gifts WHERE event_id = $1 AND NOT (id = ANY($2))`,
			eventID, intArray(keep))
	}
	if err != nil {
		return fmt.Errorf("failed to prune removed gifts: %w", err)
	}
	return nil
}

func intArray(ids []int) interface{} {
	arr := make([]int64, len(ids))
	for i, id := range ids {
		arr[i] = int64(id)
	}
	return pq.Array(arr)
}
