package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"gift-registry-platform/internal/models"
)

type EventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `id, user_id, COALESCE(slug, ''), COALESCE(slug_premium, ''), layout_theme,
	main_title, event_date, intro_text, event_description, couple_signature,
	primary_color, title_color, hero_title_color, hero_image_url,
	gallery_photos, story_images_1, story_images_2,
	rsvp_enabled, story_section_enabled, gallery_section,
	mp_credentials, custom_fee_percentage`

func (r *EventRepository) GetByID(ctx context.Context, id int) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	return r.scanEvent(r.db.QueryRowContext(ctx, query, id))
}

func (r *EventRepository) GetBySlug(ctx context.Context, slug string) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE slug = $1`
	return r.scanEvent(r.db.QueryRowContext(ctx, query, slug))
}

func (r *EventRepository) GetBySlugPremium(ctx context.Context, slug string) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE slug_premium = $1`
	return r.scanEvent(r.db.QueryRowContext(ctx, query, slug))
}

func (r *EventRepository) GetByUserID(ctx context.Context, userID string) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE user_id = $1`
	return r.scanEvent(r.db.QueryRowContext(ctx, query, userID))
}

// Upsert creates or updates the event configuration for a user. Each user
// owns at most one event, keyed by user_id.
func (r *EventRepository) Upsert(ctx context.Context, tx *sql.Tx, event *models.Event) error {
	gallery, err := json.Marshal(stringSlice(event.GalleryPhotos))
	if err != nil {
		return fmt.Errorf("failed to marshal gallery photos: %w", err)
	}
	story1, err := json.Marshal(stringSlice(event.StoryImages1))
	if err != nil {
		return fmt.Errorf("failed to marshal story images: %w", err)
	}
	story2, err := json.Marshal(stringSlice(event.StoryImages2))
	if err != nil {
		return fmt.Errorf("failed to marshal story images: %w", err)
	}

	query := `
		INSERT INTO events (
			user_id, slug, slug_premium, layout_theme, main_title, event_date,
			intro_text, event_description, couple_signature,
			primary_color, title_color, hero_title_color, hero_image_url,
			gallery_photos, story_images_1, story_images_2,
			rsvp_enabled, story_section_enabled, gallery_section, updated_at
		) VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			slug = NULLIF($2, ''),
			slug_premium = NULLIF($3, ''),
			layout_theme = $4,
			main_title = $5,
			event_date = $6,
			intro_text = $7,
			event_description = $8,
			couple_signature = $9,
			primary_color = $10,
			title_color = $11,
			hero_title_color = $12,
			hero_image_url = $13,
			gallery_photos = $14,
			story_images_1 = $15,
			story_images_2 = $16,
			rsvp_enabled = $17,
			story_section_enabled = $18,
			gallery_section = $19,
			updated_at = NOW()
		RETURNING id`

	row := tx.QueryRowContext(ctx, query,
		event.UserID, event.Slug, event.SlugPremium, event.LayoutTheme,
		event.MainTitle, event.EventDate, event.IntroText, event.EventDescription,
		event.CoupleSignature, event.PrimaryColor, event.TitleColor,
		event.HeroTitleColor, event.HeroImageURL,
		gallery, story1, story2,
		event.RSVPEnabled, event.StorySectionEnabled, event.GallerySection,
	)

	if err := row.Scan(&event.ID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return models.ErrDuplicateSlug
		}
		return fmt.Errorf("failed to upsert event: %w", err)
	}
	return nil
}

// SlugTaken reports whether any other event already uses the given slug as
// either its public or premium address.
func (r *EventRepository) SlugTaken(ctx context.Context, slug string, excludeEventID int) (bool, error) {
	if slug == "" {
		return false, nil
	}
	var count int
	query := `SELECT COUNT(*) FROM events WHERE (slug = $1 OR slug_premium = $1) AND id <> $2`
	if err := r.db.QueryRowContext(ctx, query, slug, excludeEventID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check slug availability: %w", err)
	}
	return count > 0, nil
}

func (r *EventRepository) UpdateCredentials(ctx context.Context, eventID int, creds *models.MPCredentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}
	result, err := r.db.ExecContext(ctx,
		`UPDATE events SET mp_credentials = $1, updated_at = NOW() WHERE id = $2`, data, eventID)
	if err != nil {
		return fmt.Errorf("failed to update credentials: %w", err)
	}
	return requireRowAffected(result, models.ErrEventNotFound)
}

func (r *EventRepository) ClearCredentials(ctx context.Context, eventID int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE events SET mp_credentials = NULL, updated_at = NOW() WHERE id = $1`, eventID)
	if err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return requireRowAffected(result, models.ErrEventNotFound)
}

// InTx runs fn inside a transaction, committing on success and rolling
// back on error.
func (r *EventRepository) InTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *EventRepository) scanEvent(row *sql.Row) (*models.Event, error) {
	var event models.Event
	var gallery, story1, story2 []byte
	var creds []byte

	err := row.Scan(
		&event.ID, &event.UserID, &event.Slug, &event.SlugPremium, &event.LayoutTheme,
		&event.MainTitle, &event.EventDate, &event.IntroText, &event.EventDescription,
		&event.CoupleSignature, &event.PrimaryColor, &event.TitleColor,
		&event.HeroTitleColor, &event.HeroImageURL,
		&gallery, &story1, &story2,
		&event.RSVPEnabled, &event.StorySectionEnabled, &event.GallerySection,
		&creds, &event.CustomFeePercentage,
	)
	if err == sql.ErrNoRows {
		return nil, models.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan event: %w", err)
	}

	if err := json.Unmarshal(gallery, &event.GalleryPhotos); err != nil {
		return nil, fmt.Errorf("failed to unmarshal gallery photos: %w", err)
	}
	if err := json.Unmarshal(story1, &event.StoryImages1); err != nil {
		return nil, fmt.Errorf("failed to unmarshal story images: %w", err)
	}
	if err := json.Unmarshal(story2, &event.StoryImages2); err != nil {
		return nil, fmt.Errorf("failed to unmarshal story images: %w", err)
	}
	if len(creds) > 0 {
		event.MPCredentials = &models.MPCredentials{}
		if err := json.Unmarshal(creds, event.MPCredentials); err != nil {
			return nil, fmt.Errorf("failed to unmarshal payment credentials: %w", err)
		}
	}

	return &event, nil
}

func requireRowAffected(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return notFound
	}
	return nil
}

func stringSlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
