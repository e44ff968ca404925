package services

import (
	"context"
	"database/sql"

	"gift-registry-platform/internal/models"
)

// mockEventRepo is an in-memory event repository for service tests
type mockEventRepo struct {
	events       map[int]*models.Event
	updatedCreds map[int]*models.MPCredentials
	clearedCreds []int
	upserted     []*models.Event
	nextID       int
}

func newMockEventRepo(events ...*models.Event) *mockEventRepo {
	repo := &mockEventRepo{
		events:       make(map[int]*models.Event),
		updatedCreds: make(map[int]*models.MPCredentials),
		nextID:       1000,
	}
	for _, event := range events {
		repo.events[event.ID] = event
	}
	return repo
}

func (m *mockEventRepo) GetByID(ctx context.Context, id int) (*models.Event, error) {
	if event, ok := m.events[id]; ok {
		return event, nil
	}
	return nil, models.ErrEventNotFound
}

func (m *mockEventRepo) GetBySlug(ctx context.Context, slug string) (*models.Event, error) {
	for _, event := range m.events {
		if event.Slug == slug && slug != "" {
			return event, nil
		}
	}
	return nil, models.ErrEventNotFound
}

func (m *mockEventRepo) GetBySlugPremium(ctx context.Context, slug string) (*models.Event, error) {
	for _, event := range m.events {
		if event.SlugPremium == slug && slug != "" {
			return event, nil
		}
	}
	return nil, models.ErrEventNotFound
}

func (m *mockEventRepo) GetByUserID(ctx context.Context, userID string) (*models.Event, error) {
	for _, event := range m.events {
		if event.UserID == userID {
			return event, nil
		}
	}
	return nil, models.ErrEventNotFound
}

func (m *mockEventRepo) Upsert(ctx context.Context, tx *sql.Tx, event *models.Event) error {
	if event.ID == 0 {
		m.nextID++
		event.ID = m.nextID
	}
	m.events[event.ID] = event
	m.upserted = append(m.upserted, event)
	return nil
}

func (m *mockEventRepo) SlugTaken(ctx context.Context, slug string, excludeEventID int) (bool, error) {
	if slug == "" {
		return false, nil
	}
	for _, event := range m.events {
		if event.ID == excludeEventID {
			continue
		}
		if event.Slug == slug || event.SlugPremium == slug {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockEventRepo) UpdateCredentials(ctx context.Context, eventID int, creds *models.MPCredentials) error {
	event, ok := m.events[eventID]
	if !ok {
		return models.ErrEventNotFound
	}
	event.MPCredentials = creds
	m.updatedCreds[eventID] = creds
	return nil
}

func (m *mockEventRepo) ClearCredentials(ctx context.Context, eventID int) error {
	event, ok := m.events[eventID]
	if !ok {
		return models.ErrEventNotFound
	}
	event.MPCredentials = nil
	m.clearedCreds = append(m.clearedCreds, eventID)
	return nil
}

func (m *mockEventRepo) InTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	// Mocks ignore the tx; a nil tx flows through the repository calls.
	return fn(nil)
}

// mockGiftRepo is an in-memory gift repository for service tests
type mockGiftRepo struct {
	gifts    map[int][]*models.Gift
	replaced map[int][]models.GiftInput
}

func newMockGiftRepo() *mockGiftRepo {
	return &mockGiftRepo{
		gifts:    make(map[int][]*models.Gift),
		replaced: make(map[int][]models.GiftInput),
	}
}

func (m *mockGiftRepo) GetByEventID(ctx context.Context, eventID int) ([]*models.Gift, error) {
	return m.gifts[eventID], nil
}

func (m *mockGiftRepo) GetByID(ctx context.Context, id int) (*models.Gift, error) {
	for _, gifts := range m.gifts {
		for _, gift := range gifts {
			if gift.ID == id {
				return gift, nil
			}
		}
	}
	return nil, models.ErrGiftNotFound
}

func (m *mockGiftRepo) ReplaceForEvent(ctx context.Context, tx *sql.Tx, eventID int, gifts []models.GiftInput) error {
	m.replaced[eventID] = gifts
	stored := make([]*models.Gift, 0, len(gifts))
	nextID := 1
	for _, input := range gifts {
		id := input.ID
		if id == 0 {
			id = 9000 + nextID
			nextID++
		}
		stored = append(stored, &models.Gift{
			ID:           id,
			EventID:      eventID,
			Title:        input.Title,
			Description:  input.Description,
			ImageURL:     input.ImageURL,
			ValueDefault: input.ValueDefault,
			ValuePremium: input.ValuePremium,
		})
	}
	m.gifts[eventID] = stored
	return nil
}

// mockRSVPRepo is an in-memory RSVP repository for service tests
type mockRSVPRepo struct {
	rsvps  []*models.RSVP
	nextID int
}

func newMockRSVPRepo() *mockRSVPRepo {
	return &mockRSVPRepo{}
}

func (m *mockRSVPRepo) Create(ctx context.Context, rsvp *models.RSVP) error {
	m.nextID++
	rsvp.ID = m.nextID
	m.rsvps = append(m.rsvps, rsvp)
	return nil
}

func (m *mockRSVPRepo) ListByEventID(ctx context.Context, eventID int) ([]*models.RSVP, error) {
	var result []*models.RSVP
	for _, rsvp := range m.rsvps {
		if rsvp.EventID == eventID {
			result = append(result, rsvp)
		}
	}
	return result, nil
}

// mockSettingsRepo is an in-memory settings repository for service tests
type mockSettingsRepo struct {
	settings   *models.PlatformSettings
	customFees map[int]*float64
}

func newMockSettingsRepo() *mockSettingsRepo {
	return &mockSettingsRepo{
		settings:   models.DefaultPlatformSettings(),
		customFees: make(map[int]*float64),
	}
}

func (m *mockSettingsRepo) Get(ctx context.Context) (*models.PlatformSettings, error) {
	return m.settings, nil
}

func (m *mockSettingsRepo) Update(ctx context.Context, settings *models.PlatformSettings) error {
	m.settings = settings
	return nil
}

func (m *mockSettingsRepo) SetCustomFee(ctx context.Context, eventID int, fee *float64) error {
	m.customFees[eventID] = fee
	return nil
}

// mockUserRepo is an in-memory user repository for service tests
type mockUserRepo struct {
	users map[string]*models.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*models.User)}
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if user, ok := m.users[id]; ok {
		return user, nil
	}
	return nil, models.ErrUserNotFound
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (m *mockUserRepo) UpdateEmail(ctx context.Context, id, email string) error {
	user, ok := m.users[id]
	if !ok {
		return models.ErrUserNotFound
	}
	user.Email = email
	return nil
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	user, ok := m.users[id]
	if !ok {
		return models.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}
