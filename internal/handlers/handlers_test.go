package handlers

import (
	"context"
	"database/sql"

	"gift-registry-platform/internal/models"
	"gift-registry-platform/internal/services"
)

// fakeEventRepo is a minimal in-memory event repository for handler tests
type fakeEventRepo struct {
	events map[int]*models.Event
}

func newFakeEventRepo(events ...*models.Event) *fakeEventRepo {
	repo := &fakeEventRepo{events: make(map[int]*models.Event)}
	for _, event := range events {
		repo.events[event.ID] = event
	}
	return repo
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id int) (*models.Event, error) {
	if event, ok := f.events[id]; ok {
		return event, nil
	}
	return nil, models.ErrEventNotFound
}

func (f *fakeEventRepo) GetBySlug(ctx context.Context, slug string) (*models.Event, error) {
	for _, event := range f.events {
		if slug != "" && event.Slug == slug {
			return event, nil
		}
	}
	return nil, models.ErrEventNotFound
}

func (f *fakeEventRepo) GetBySlugPremium(ctx context.Context, slug string) (*models.Event, error) {
	for _, event := range f.events {
		if slug != "" && event.SlugPremium == slug {
			return event, nil
		}
	}
	return nil, models.ErrEventNotFound
}

func (f *fakeEventRepo) GetByUserID(ctx context.Context, userID string) (*models.Event, error) {
	for _, event := range f.events {
		if event.UserID == userID {
			return event, nil
		}
	}
	return nil, models.ErrEventNotFound
}

func (f *fakeEventRepo) Upsert(ctx context.Context, tx *sql.Tx, event *models.Event) error {
	if event.ID == 0 {
		event.ID = len(f.events) + 1
	}
	f.events[event.ID] = event
	return nil
}

func (f *fakeEventRepo) SlugTaken(ctx context.Context, slug string, excludeEventID int) (bool, error) {
	if slug == "" {
		return false, nil
	}
	for _, event := range f.events {
		if event.ID != excludeEventID && (event.Slug == slug || event.SlugPremium == slug) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEventRepo) UpdateCredentials(ctx context.Context, eventID int, creds *models.MPCredentials) error {
	event, ok := f.events[eventID]
	if !ok {
		return models.ErrEventNotFound
	}
	event.MPCredentials = creds
	return nil
}

func (f *fakeEventRepo) ClearCredentials(ctx context.Context, eventID int) error {
	event, ok := f.events[eventID]
	if !ok {
		return models.ErrEventNotFound
	}
	event.MPCredentials = nil
	return nil
}

func (f *fakeEventRepo) InTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return fn(nil)
}

// fakeGiftRepo is a minimal in-memory gift repository for handler tests
type fakeGiftRepo struct {
	gifts map[int][]*models.Gift
}

func newFakeGiftRepo() *fakeGiftRepo {
	return &fakeGiftRepo{gifts: make(map[int][]*models.Gift)}
}

func (f *fakeGiftRepo) GetByEventID(ctx context.Context, eventID int) ([]*models.Gift, error) {
	return f.gifts[eventID], nil
}

func (f *fakeGiftRepo) GetByID(ctx context.Context, id int) (*models.Gift, error) {
	for _, gifts := range f.gifts {
		for _, gift := range gifts {
			if gift.ID == id {
				return gift, nil
			}
		}
	}
	return nil, models.ErrGiftNotFound
}

func (f *fakeGiftRepo) ReplaceForEvent(ctx context.Context, tx *sql.Tx, eventID int, inputs []models.GiftInput) error {
	stored := make([]*models.Gift, 0, len(inputs))
	for i, input := range inputs {
		id := input.ID
		if id == 0 {
			id = 100 + i
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
	f.gifts[eventID] = stored
	return nil
}

// fakeRSVPRepo is a minimal in-memory RSVP repository for handler tests
type fakeRSVPRepo struct {
	rsvps []*models.RSVP
}

func (f *fakeRSVPRepo) Create(ctx context.Context, rsvp *models.RSVP) error {
	rsvp.ID = len(f.rsvps) + 1
	f.rsvps = append(f.rsvps, rsvp)
	return nil
}

func (f *fakeRSVPRepo) ListByEventID(ctx context.Context, eventID int) ([]*models.RSVP, error) {
	var result []*models.RSVP
	for _, rsvp := range f.rsvps {
		if rsvp.EventID == eventID {
			result = append(result, rsvp)
		}
	}
	return result, nil
}

// fakeSettingsRepo serves the default platform settings
type fakeSettingsRepo struct {
	settings *models.PlatformSettings
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{settings: models.DefaultPlatformSettings()}
}

func (f *fakeSettingsRepo) Get(ctx context.Context) (*models.PlatformSettings, error) {
	return f.settings, nil
}

func (f *fakeSettingsRepo) Update(ctx context.Context, settings *models.PlatformSettings) error {
	f.settings = settings
	return nil
}

func (f *fakeSettingsRepo) SetCustomFee(ctx context.Context, eventID int, fee *float64) error {
	return nil
}

// testFixture bundles the wired services handler tests need
type testFixture struct {
	events   *fakeEventRepo
	gifts    *fakeGiftRepo
	rsvps    *fakeRSVPRepo
	payments *services.MockPaymentProvider
	registry *services.RegistryService
	checkout *services.CheckoutService
	connect  *services.ConnectService
}

func newTestFixture() *testFixture {
	events := newFakeEventRepo(&models.Event{
		ID:          1,
		UserID:      "owner-1",
		Slug:        "ana-e-bruno",
		SlugPremium: "ana-e-bruno-familia",
		MainTitle:   "Ana & Bruno",
		LayoutTheme: models.ThemeClassic,
		RSVPEnabled: true,
		MPCredentials: &models.MPCredentials{
			AccessToken: "owner-token",
			UserID:      555,
		},
	})
	gifts := newFakeGiftRepo()
	gifts.gifts[1] = []*models.Gift{
		{ID: 10, EventID: 1, Title: "Jantar romantico", ValueDefault: 150, ValuePremium: 200},
		{ID: 11, EventID: 1, Title: "Lua de mel", ValueDefault: 500},
	}
	rsvps := &fakeRSVPRepo{}
	settings := newFakeSettingsRepo()
	payments := services.NewMockPaymentProvider()

	registry := services.NewRegistryService(events, gifts, rsvps, settings)
	checkout := services.NewCheckoutService(events, gifts, settings, payments,
		services.NewMemoryIdempotencyStore(), "https://presentes.example.com")
	connect := services.NewConnectService(events, payments)

	return &testFixture{
		events:   events,
		gifts:    gifts,
		rsvps:    rsvps,
		payments: payments,
		registry: registry,
		checkout: checkout,
		connect:  connect,
	}
}
