package services

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/google/uuid"
	apperrors "github.com/pawsitivecheck/backend/services/common/errors"
	"github.com/pawsitivecheck/backend/services/pet-service/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var errDBDown = errors.New("connection refused")

// ---- fake repositories ----

type fakePetRepo struct {
	pets    map[uuid.UUID]*models.Pet
	saved   []models.SavedProduct
	saveErr error
	findErr error
}

func newFakePetRepo(pets ...models.Pet) *fakePetRepo {
	r := &fakePetRepo{pets: map[uuid.UUID]*models.Pet{}}
	for i := range pets {
		p := pets[i]
		r.pets[p.ID] = &p
	}
	return r
}

func (r *fakePetRepo) Create(ctx context.Context, pet *models.Pet) error {
	pet.ID = uuid.New()
	r.pets[pet.ID] = pet
	return nil
}
func (r *fakePetRepo) FindByID(ctx context.Context, id uuid.UUID, ownerID string) (*models.Pet, error) {
	if p, ok := r.pets[id]; ok && p.OwnerUserID == ownerID {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (r *fakePetRepo) FindByOwner(ctx context.Context, ownerID string) ([]models.Pet, error) {
	var out []models.Pet
	for _, p := range r.pets {
		if p.OwnerUserID == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}
func (r *fakePetRepo) Update(ctx context.Context, pet *models.Pet) error {
	r.pets[pet.ID] = pet
	return nil
}
func (r *fakePetRepo) Delete(ctx context.Context, id uuid.UUID, ownerID string) error {
	if p, ok := r.pets[id]; ok && p.OwnerUserID == ownerID {
		delete(r.pets, id)
		return nil
	}
	return gorm.ErrRecordNotFound
}
func (r *fakePetRepo) SaveProduct(ctx context.Context, saved *models.SavedProduct) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	saved.ID = uuid.New()
	r.saved = append(r.saved, *saved)
	return nil
}
func (r *fakePetRepo) FindSavedProducts(ctx context.Context, petID uuid.UUID) ([]models.SavedProduct, error) {
	var out []models.SavedProduct
	for _, s := range r.saved {
		if s.PetID == petID {
			out = append(out, s)
		}
	}
	return out, nil
}
func (r *fakePetRepo) DeleteSavedProduct(ctx context.Context, petID, savedID uuid.UUID) error {
	for i, s := range r.saved {
		if s.ID == savedID && s.PetID == petID {
			r.saved = append(r.saved[:i], r.saved[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}
func (r *fakePetRepo) FindPetsByProduct(ctx context.Context, productID uuid.UUID) ([]models.Pet, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	var out []models.Pet
	for _, s := range r.saved {
		if s.ProductID == productID {
			out = append(out, *r.pets[s.PetID])
		}
	}
	return out, nil
}

type fakeLivestockRepo struct {
	herds map[uuid.UUID]*models.Livestock
	feeds []models.FeedRecord
}

func newFakeLivestockRepo(herds ...models.Livestock) *fakeLivestockRepo {
	r := &fakeLivestockRepo{herds: map[uuid.UUID]*models.Livestock{}}
	for i := range herds {
		h := herds[i]
		r.herds[h.ID] = &h
	}
	return r
}

func (r *fakeLivestockRepo) Create(ctx context.Context, herd *models.Livestock) error {
	herd.ID = uuid.New()
	r.herds[herd.ID] = herd
	return nil
}
func (r *fakeLivestockRepo) FindByID(ctx context.Context, id uuid.UUID, ownerID string) (*models.Livestock, error) {
	if h, ok := r.herds[id]; ok && h.OwnerUserID == ownerID {
		cp := *h
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (r *fakeLivestockRepo) FindByOwner(ctx context.Context, ownerID string) ([]models.Livestock, error) {
	var out []models.Livestock
	for _, h := range r.herds {
		if h.OwnerUserID == ownerID {
			out = append(out, *h)
		}
	}
	return out, nil
}
func (r *fakeLivestockRepo) Update(ctx context.Context, herd *models.Livestock) error {
	r.herds[herd.ID] = herd
	return nil
}
func (r *fakeLivestockRepo) Delete(ctx context.Context, id uuid.UUID, ownerID string) error {
	if h, ok := r.herds[id]; ok && h.OwnerUserID == ownerID {
		delete(r.herds, id)
		return nil
	}
	return gorm.ErrRecordNotFound
}
func (r *fakeLivestockRepo) CreateFeed(ctx context.Context, feed *models.FeedRecord) error {
	feed.ID = uuid.New()
	r.feeds = append(r.feeds, *feed)
	return nil
}
func (r *fakeLivestockRepo) FindFeeds(ctx context.Context, livestockID uuid.UUID, page, limit int) ([]models.FeedRecord, int64, error) {
	var out []models.FeedRecord
	for _, f := range r.feeds {
		if f.LivestockID == livestockID {
			out = append(out, f)
		}
	}
	return out, int64(len(out)), nil
}
func (r *fakeLivestockRepo) DeleteFeed(ctx context.Context, livestockID, feedID uuid.UUID) error {
	for i, f := range r.feeds {
		if f.ID == feedID && f.LivestockID == livestockID {
			r.feeds = append(r.feeds[:i], r.feeds[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}
func (r *fakeLivestockRepo) FindLivestockByProduct(ctx context.Context, productID uuid.UUID) ([]models.Livestock, error) {
	var out []models.Livestock
	seen := map[uuid.UUID]bool{}
	for _, f := range r.feeds {
		if f.ProductID != nil && *f.ProductID == productID && !seen[f.LivestockID] {
			seen[f.LivestockID] = true
			out = append(out, *r.herds[f.LivestockID])
		}
	}
	return out, nil
}

type alertKey struct {
	recall  string
	subject uuid.UUID
}

type fakeAlertRepo struct {
	mu        sync.Mutex
	alerts    map[alertKey]models.RecallAlert
	createErr error
	lastQuery models.AlertFilter
}

func newFakeAlertRepo() *fakeAlertRepo {
	return &fakeAlertRepo{alerts: map[alertKey]models.RecallAlert{}}
}

func (r *fakeAlertRepo) CreateIfAbsent(ctx context.Context, alert *models.RecallAlert) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return false, r.createErr
	}
	key := alertKey{alert.RecallNumber, alert.SubjectID}
	if _, ok := r.alerts[key]; ok {
		return false, nil
	}
	alert.ID = uuid.New()
	r.alerts[key] = *alert
	return true, nil
}
func (r *fakeAlertRepo) FindByOwner(ctx context.Context, filter models.AlertFilter) ([]models.RecallAlert, int64, error) {
	r.lastQuery = filter
	var out []models.RecallAlert
	for _, a := range r.alerts {
		if a.OwnerUserID == filter.OwnerUserID {
			out = append(out, a)
		}
	}
	return out, int64(len(out)), nil
}
func (r *fakeAlertRepo) MarkRead(ctx context.Context, id uuid.UUID, ownerID string) error {
	for k, a := range r.alerts {
		if a.ID == id && a.OwnerUserID == ownerID {
			a.IsRead = true
			r.alerts[k] = a
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var appErr *apperrors.Error
	require.True(t, errors.As(err, &appErr), "expected *errors.Error, got %T", err)
	return appErr.Code
}

// ---- pet service ----

func TestPetCreate_NormalizesAllergies(t *testing.T) {
	svc := NewPetService(newFakePetRepo(), zap.NewNop())

	pet, err := svc.Create(context.Background(), "user-1", &models.CreatePetRequest{
		Name:      "  Biscuit ",
		Species:   models.SpeciesDog,
		Allergies: []string{"Chicken", " chicken", "", "BEEF"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Biscuit", pet.Name)
	assert.Equal(t, "user-1", pet.OwnerUserID)
	assert.Equal(t, []string{"chicken", "beef"}, pet.Allergies)
}

func TestPetGet_OtherOwnerIsNotFound(t *testing.T) {
	pet := models.Pet{ID: uuid.New(), OwnerUserID: "user-1", Name: "Mochi"}
	svc := NewPetService(newFakePetRepo(pet), zap.NewNop())

	_, err := svc.Get(context.Background(), pet.ID, "user-2")
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))

	got, err := svc.Get(context.Background(), pet.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Mochi", got.Name)
}

func TestPetUpdate_PartialFields(t *testing.T) {
	pet := models.Pet{ID: uuid.New(), OwnerUserID: "user-1", Name: "Mochi", Species: models.SpeciesCat, Breed: "Siamese"}
	repo := newFakePetRepo(pet)
	svc := NewPetService(repo, zap.NewNop())

	weight := 4.2
	updated, err := svc.Update(context.Background(), pet.ID, "user-1", &models.UpdatePetRequest{WeightKg: &weight})
	require.NoError(t, err)
	assert.Equal(t, "Siamese", updated.Breed)
	require.NotNil(t, updated.WeightKg)
	assert.InDelta(t, 4.2, *updated.WeightKg, 0.0001)
}

func TestPetDelete_NotFound(t *testing.T) {
	svc := NewPetService(newFakePetRepo(), zap.NewNop())
	err := svc.Delete(context.Background(), uuid.New(), "user-1")
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestSaveProduct_Duplicate(t *testing.T) {
	pet := models.Pet{ID: uuid.New(), OwnerUserID: "user-1"}
	repo := newFakePetRepo(pet)
	repo.saveErr = gorm.ErrDuplicatedKey
	svc := NewPetService(repo, zap.NewNop())

	_, err := svc.SaveProduct(context.Background(), pet.ID, "user-1", &models.SaveProductRequest{ProductID: uuid.New()})
	assert.Equal(t, http.StatusConflict, statusOf(t, err))
}

func TestSaveProduct_RequiresOwnership(t *testing.T) {
	pet := models.Pet{ID: uuid.New(), OwnerUserID: "user-1"}
	repo := newFakePetRepo(pet)
	svc := NewPetService(repo, zap.NewNop())

	_, err := svc.SaveProduct(context.Background(), pet.ID, "intruder", &models.SaveProductRequest{ProductID: uuid.New()})
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
	assert.Empty(t, repo.saved)
}

func TestSavedProducts_ListAndRemove(t *testing.T) {
	pet := models.Pet{ID: uuid.New(), OwnerUserID: "user-1"}
	repo := newFakePetRepo(pet)
	svc := NewPetService(repo, zap.NewNop())
	ctx := context.Background()

	saved, err := svc.SaveProduct(ctx, pet.ID, "user-1", &models.SaveProductRequest{ProductID: uuid.New(), ProductName: " Kibble "})
	require.NoError(t, err)
	assert.Equal(t, "Kibble", saved.ProductName)

	list, err := svc.ListSaved(ctx, pet.ID, "user-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.RemoveSaved(ctx, pet.ID, saved.ID, "user-1"))
	err = svc.RemoveSaved(ctx, pet.ID, saved.ID, "user-1")
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

// ---- livestock service ----

func TestAddFeed_DefaultsFedAt(t *testing.T) {
	herd := models.Livestock{ID: uuid.New(), OwnerUserID: "farmer-1", Name: "Flock"}
	repo := newFakeLivestockRepo(herd)
	svc := NewLivestockService(repo, zap.NewNop())

	feed, err := svc.AddFeed(context.Background(), herd.ID, "farmer-1", &models.CreateFeedRecordRequest{
		FeedName: "Layer pellets", Quantity: 10, Unit: "kg",
	})
	require.NoError(t, err)
	assert.False(t, feed.FedAt.IsZero())
	assert.Equal(t, herd.ID, feed.LivestockID)
}

func TestFeeds_OtherOwnerIsNotFound(t *testing.T) {
	herd := models.Livestock{ID: uuid.New(), OwnerUserID: "farmer-1"}
	svc := NewLivestockService(newFakeLivestockRepo(herd), zap.NewNop())

	_, _, err := svc.ListFeeds(context.Background(), herd.ID, "farmer-2", 1, 20)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))

	err = svc.DeleteFeed(context.Background(), herd.ID, uuid.New(), "farmer-1")
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestLivestockCreateAndUpdate(t *testing.T) {
	svc := NewLivestockService(newFakeLivestockRepo(), zap.NewNop())
	ctx := context.Background()

	herd, err := svc.Create(ctx, "farmer-1", &models.CreateLivestockRequest{Name: "North paddock", Species: " Sheep ", HeadCount: 40})
	require.NoError(t, err)
	assert.Equal(t, "sheep", herd.Species)

	count := 38
	updated, err := svc.Update(ctx, herd.ID, "farmer-1", &models.UpdateLivestockRequest{HeadCount: &count})
	require.NoError(t, err)
	assert.Equal(t, 38, updated.HeadCount)
	assert.Equal(t, "North paddock", updated.Name)
}

// ---- alert service ----

type alertFixture struct {
	pets      *fakePetRepo
	livestock *fakeLivestockRepo
	alerts    *fakeAlertRepo
	svc       AlertService
	productID uuid.UUID
}

func newAlertFixture() *alertFixture {
	productID := uuid.New()
	dog := models.Pet{ID: uuid.New(), OwnerUserID: "user-1", Name: "Biscuit"}
	cat := models.Pet{ID: uuid.New(), OwnerUserID: "user-2", Name: "Mochi"}
	herd := models.Livestock{ID: uuid.New(), OwnerUserID: "farmer-1", Name: "Flock"}

	pets := newFakePetRepo(dog, cat)
	pets.saved = []models.SavedProduct{
		{ID: uuid.New(), PetID: dog.ID, ProductID: productID},
		{ID: uuid.New(), PetID: cat.ID, ProductID: uuid.New()},
	}
	livestock := newFakeLivestockRepo(herd)
	livestock.feeds = []models.FeedRecord{
		{ID: uuid.New(), LivestockID: herd.ID, ProductID: &productID},
		{ID: uuid.New(), LivestockID: herd.ID, ProductID: &productID},
	}
	alerts := newFakeAlertRepo()

	return &alertFixture{
		pets:      pets,
		livestock: livestock,
		alerts:    alerts,
		svc:       NewAlertService(alerts, pets, livestock, nil, zap.NewNop()),
		productID: productID,
	}
}

func (f *alertFixture) event() *models.RecallEvent {
	return &models.RecallEvent{
		EventType:    models.EventRecallIssued,
		RecallNumber: "R-2026-007",
		ProductID:    f.productID.String(),
		ProductName:  "Salmon Kibble",
		Severity:     "urgent",
		Title:        "Salmonella",
	}
}

func TestHandleRecallEvent_AlertsEachSubjectOnce(t *testing.T) {
	f := newAlertFixture()

	created, err := f.svc.HandleRecallEvent(context.Background(), f.event())
	require.NoError(t, err)
	assert.Equal(t, 2, created, "one pet and one herd reference the product")

	var owners []string
	for _, a := range f.alerts.alerts {
		owners = append(owners, a.OwnerUserID)
		assert.Contains(t, a.Message, "Salmon Kibble")
	}
	assert.ElementsMatch(t, []string{"user-1", "farmer-1"}, owners)
}

func TestHandleRecallEvent_Redelivery(t *testing.T) {
	f := newAlertFixture()
	ctx := context.Background()

	_, err := f.svc.HandleRecallEvent(ctx, f.event())
	require.NoError(t, err)
	created, err := f.svc.HandleRecallEvent(ctx, f.event())
	require.NoError(t, err)
	assert.Equal(t, 0, created)
	assert.Len(t, f.alerts.alerts, 2)
}

func TestHandleRecallEvent_IgnoresOtherEvents(t *testing.T) {
	f := newAlertFixture()
	ev := f.event()
	ev.EventType = models.EventRecallDeactivated

	created, err := f.svc.HandleRecallEvent(context.Background(), ev)
	require.NoError(t, err)
	assert.Zero(t, created)
	assert.Empty(t, f.alerts.alerts)
}

func TestHandleRecallEvent_Malformed(t *testing.T) {
	f := newAlertFixture()
	ev := f.event()
	ev.ProductID = "not-a-uuid"

	_, err := f.svc.HandleRecallEvent(context.Background(), ev)
	assert.ErrorIs(t, err, ErrMalformedEvent)
}

func TestHandleRecallEvent_LookupFailure(t *testing.T) {
	f := newAlertFixture()
	f.pets.findErr = errDBDown

	_, err := f.svc.HandleRecallEvent(context.Background(), f.event())
	assert.ErrorIs(t, err, errDBDown)
	assert.NotErrorIs(t, err, ErrMalformedEvent)
}

func TestHandleRecallEvent_CreateFailure(t *testing.T) {
	f := newAlertFixture()
	f.alerts.createErr = errDBDown

	_, err := f.svc.HandleRecallEvent(context.Background(), f.event())
	assert.ErrorIs(t, err, errDBDown)
}

func TestAlertListAndMarkRead(t *testing.T) {
	f := newAlertFixture()
	ctx := context.Background()
	_, err := f.svc.HandleRecallEvent(ctx, f.event())
	require.NoError(t, err)

	alerts, total, err := f.svc.List(ctx, models.AlertFilter{OwnerUserID: "user-1", Limit: 1000})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, 100, f.alerts.lastQuery.Limit)
	assert.Equal(t, 1, f.alerts.lastQuery.Page)

	require.NoError(t, f.svc.MarkRead(ctx, alerts[0].ID, "user-1"))
	err = f.svc.MarkRead(ctx, alerts[0].ID, "user-2")
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}
