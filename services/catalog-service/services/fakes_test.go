package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pawsitivecheck/backend/services/catalog-service/cache"
	"github.com/pawsitivecheck/backend/services/catalog-service/models"
	"github.com/pawsitivecheck/backend/services/catalog-service/providers"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ---- mock repositories ----

type mockProductRepo struct {
	mu           sync.Mutex
	products     map[uuid.UUID]*models.Product
	barcodeErrs  []error
	barcodeCalls int
	createErr    error
	updateErr    error
	updates      int
	staleMarked  []uuid.UUID
}

func newMockProductRepo(products ...*models.Product) *mockProductRepo {
	m := &mockProductRepo{products: map[uuid.UUID]*models.Product{}}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *mockProductRepo) Create(_ context.Context, p *models.Product) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	m.products[p.ID] = p
	return nil
}

func (m *mockProductRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (m *mockProductRepo) FindByBarcode(_ context.Context, barcode string) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.barcodeCalls++
	if len(m.barcodeErrs) > 0 {
		err := m.barcodeErrs[0]
		m.barcodeErrs = m.barcodeErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	for _, p := range m.products {
		if p.Barcode != nil && *p.Barcode == barcode {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProductRepo) FindAll(_ context.Context, _ models.ProductFilter) ([]models.Product, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (m *mockProductRepo) Update(_ context.Context, p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updates++
	m.products[p.ID] = p
	return nil
}

func (m *mockProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductRepo) MarkStale(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.staleMarked = append(m.staleMarked, id)
	if p, ok := m.products[id]; ok {
		p.LastAnalyzedAt = nil
	}
	return nil
}

type mockRecallRepo struct {
	recalls []models.ProductRecall
	findErr error
	created []*models.ProductRecall
}

func (m *mockRecallRepo) Create(_ context.Context, r *models.ProductRecall) error {
	r.ID = uuid.New()
	m.created = append(m.created, r)
	m.recalls = append(m.recalls, *r)
	return nil
}

func (m *mockRecallRepo) FindByID(_ context.Context, id uuid.UUID) (*models.ProductRecall, error) {
	for i := range m.recalls {
		if m.recalls[i].ID == id {
			r := m.recalls[i]
			return &r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRecallRepo) FindByProduct(_ context.Context, productID uuid.UUID, activeOnly bool) ([]models.ProductRecall, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	var out []models.ProductRecall
	for _, r := range m.recalls {
		if r.ProductID == productID && (!activeOnly || r.IsActive) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockRecallRepo) FindActive(_ context.Context, _, _ int) ([]models.ProductRecall, int64, error) {
	return m.recalls, int64(len(m.recalls)), nil
}

func (m *mockRecallRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	for i := range m.recalls {
		if m.recalls[i].ID == id {
			m.recalls[i].IsActive = false
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type mockReviewRepo struct {
	reviews []models.ProductReview
	listErr error
}

func (m *mockReviewRepo) Create(_ context.Context, r *models.ProductReview) error {
	r.ID = uuid.New()
	m.reviews = append(m.reviews, *r)
	return nil
}

func (m *mockReviewRepo) FindByID(_ context.Context, id uuid.UUID) (*models.ProductReview, error) {
	for i := range m.reviews {
		if m.reviews[i].ID == id {
			r := m.reviews[i]
			return &r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReviewRepo) FindByProduct(_ context.Context, productID uuid.UUID, _, _ int) ([]models.ProductReview, int64, error) {
	out, _ := m.ListForProduct(context.Background(), productID)
	return out, int64(len(out)), nil
}

func (m *mockReviewRepo) ListForProduct(_ context.Context, productID uuid.UUID) ([]models.ProductReview, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []models.ProductReview
	for _, r := range m.reviews {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockReviewRepo) Update(_ context.Context, r *models.ProductReview) error {
	for i := range m.reviews {
		if m.reviews[i].ID == r.ID {
			m.reviews[i] = *r
		}
	}
	return nil
}

func (m *mockReviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i := range m.reviews {
		if m.reviews[i].ID == id {
			m.reviews = append(m.reviews[:i], m.reviews[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type mockScanRepo struct {
	mu        sync.Mutex
	created   []models.ScanHistory
	createErr error
	ctxErrs   []error
}

func (m *mockScanRepo) Create(ctx context.Context, s *models.ScanHistory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ctxErrs = append(m.ctxErrs, ctx.Err())
	if m.createErr != nil {
		return m.createErr
	}
	s.ID = uuid.New()
	s.CreatedAt = time.Now()
	m.created = append(m.created, *s)
	return nil
}

func (m *mockScanRepo) FindByUser(_ context.Context, userID string, _, _ int) ([]models.ScanHistory, int64, error) {
	var out []models.ScanHistory
	for _, s := range m.created {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, int64(len(out)), nil
}

type mockBlacklistRepo struct {
	entries   []models.BlacklistEntry
	createErr error
}

func (m *mockBlacklistRepo) Create(_ context.Context, e *models.BlacklistEntry) error {
	if m.createErr != nil {
		return m.createErr
	}
	e.ID = uuid.New()
	m.entries = append(m.entries, *e)
	return nil
}

func (m *mockBlacklistRepo) FindByID(_ context.Context, id uuid.UUID) (*models.BlacklistEntry, error) {
	for i := range m.entries {
		if m.entries[i].ID == id {
			e := m.entries[i]
			return &e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBlacklistRepo) FindAll(_ context.Context, activeOnly bool) ([]models.BlacklistEntry, error) {
	var out []models.BlacklistEntry
	for _, e := range m.entries {
		if !activeOnly || e.IsActive {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockBlacklistRepo) Update(_ context.Context, e *models.BlacklistEntry) error {
	for i := range m.entries {
		if m.entries[i].ID == e.ID {
			m.entries[i] = *e
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ---- mock collaborators ----

type mockBlacklistSource struct {
	entries     []models.BlacklistEntry
	err         error
	invalidated int
}

func (m *mockBlacklistSource) Active(_ context.Context) ([]models.BlacklistEntry, error) {
	return m.entries, m.err
}

func (m *mockBlacklistSource) Invalidate() { m.invalidated++ }

type mockSearch struct {
	product *models.Product
	err     error
	calls   int
	queries []string
}

func (m *mockSearch) SearchByBarcode(_ context.Context, barcode string) (*models.Product, error) {
	m.calls++
	m.queries = append(m.queries, barcode)
	return m.product, m.err
}

func (m *mockSearch) SearchByName(_ context.Context, query string) (*models.Product, error) {
	m.calls++
	m.queries = append(m.queries, query)
	return m.product, m.err
}

type mockRecognizer struct {
	rec *providers.Recognition
	err error
}

func (m *mockRecognizer) Recognize(_ context.Context, _ string) (*providers.Recognition, error) {
	return m.rec, m.err
}

type mockSNSPublisher struct {
	mu       sync.Mutex
	messages [][]byte
}

func (m *mockSNSPublisher) Publish(_ context.Context, _ string, message []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, message)
	return nil
}

type mockPresigner struct {
	keys []string
	err  error
}

func (m *mockPresigner) PresignPut(_ context.Context, key, contentType string, _ time.Duration) (string, map[string]string, error) {
	if m.err != nil {
		return "", nil, m.err
	}
	m.keys = append(m.keys, key)
	return "https://bucket.s3.test/" + key + "?X-Amz-Signature=abc", map[string]string{"Content-Type": contentType}, nil
}

// ---- helpers ----

var errDBDown = errors.New("connection refused")

func strPtr(s string) *string { return &s }

func noCache() ProductCache { return cache.NewProductCache(nil, 0, zap.NewNop()) }

type testDeps struct {
	products  *mockProductRepo
	recalls   *mockRecallRepo
	reviews   *mockReviewRepo
	scans     *mockScanRepo
	blacklist *mockBlacklistSource
	search    *mockSearch
	sns       *mockSNSPublisher
	analysis  AnalysisService
}

func newTestDeps(products ...*models.Product) *testDeps {
	d := &testDeps{
		products:  newMockProductRepo(products...),
		recalls:   &mockRecallRepo{},
		reviews:   &mockReviewRepo{},
		scans:     &mockScanRepo{},
		blacklist: &mockBlacklistSource{entries: []models.BlacklistEntry{{IngredientName: "BHA", IsActive: true}}},
		search:    &mockSearch{},
		sns:       &mockSNSPublisher{},
	}
	events := NewEventPublisher(d.sns, "arn:aws:sns:us-east-1:000000000000:catalog-events", zap.NewNop())
	d.analysis = NewAnalysisService(d.products, d.recalls, d.reviews, d.blacklist, noCache(), events, nil, DefaultSafetyConfig(), zap.NewNop())
	return d
}

func (d *testDeps) scanService(recognizer providers.ImageRecognizer) *scanServiceImpl {
	svc := NewScanService(d.products, d.scans, noCache(), d.analysis, d.search, recognizer, nil, DefaultSafetyConfig(), zap.NewNop()).(*scanServiceImpl)
	svc.retryDelay = 0
	return svc
}
