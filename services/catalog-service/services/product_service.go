package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/pawsitivecheck/backend/services/catalog-service/models"
	"github.com/pawsitivecheck/backend/services/catalog-service/providers"
	"github.com/pawsitivecheck/backend/services/catalog-service/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProductService defines catalog product operations.
type ProductService interface {
	List(ctx context.Context, filter models.ProductFilter) ([]models.Product, int64, *ServiceError)
	Get(ctx context.Context, id uuid.UUID) (*models.Product, *ServiceError)
	GetByBarcode(ctx context.Context, barcode string) (*models.Product, *ServiceError)
	Create(ctx context.Context, req *models.CreateProductRequest, userID string) (*models.Product, *ServiceError)
	Update(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, *ServiceError)
	Delete(ctx context.Context, id uuid.UUID) *ServiceError
	Analyze(ctx context.Context, id uuid.UUID) (*models.AnalysisResult, *ServiceError)
	OverrideClarity(ctx context.Context, id uuid.UUID, clarity models.CosmicClarity) (*models.Product, *ServiceError)
	InternetSearch(ctx context.Context, req *models.InternetSearchRequest) (*models.InternetSearchResponse, *ServiceError)
	AcceptCandidate(ctx context.Context, req *models.AcceptCandidateRequest, userID string) (*models.Product, *ServiceError)
}

type productServiceImpl struct {
	repo       repository.ProductRepository
	cache      ProductCache
	analysis   AnalysisService
	search     providers.ProductSearchProvider
	recognizer providers.ImageRecognizer
	logger     *zap.Logger
}

func NewProductService(
	repo repository.ProductRepository,
	cache ProductCache,
	analysis AnalysisService,
	search providers.ProductSearchProvider,
	recognizer providers.ImageRecognizer,
	logger *zap.Logger,
) ProductService {
	if recognizer == nil {
		recognizer = providers.NoopImageRecognizer{}
	}
	return &productServiceImpl{
		repo:       repo,
		cache:      cache,
		analysis:   analysis,
		search:     search,
		recognizer: recognizer,
		logger:     logger,
	}
}

func (s *productServiceImpl) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, int64, *ServiceError) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)
	products, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		return nil, 0, internalError("Failed to fetch products")
	}
	return products, total, nil
}

func (s *productServiceImpl) Get(ctx context.Context, id uuid.UUID) (*models.Product, *ServiceError) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound(MsgProductNotFound)
		}
		s.logger.Error("Failed to fetch product", zap.String("product_id", id.String()), zap.Error(err))
		return nil, internalError("Failed to fetch product")
	}
	return product, nil
}

func (s *productServiceImpl) GetByBarcode(ctx context.Context, barcode string) (*models.Product, *ServiceError) {
	code, err := NormalizeBarcode(barcode)
	if err != nil {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "invalid barcode", Err: err}
	}
	if product, ok := s.cache.GetByBarcode(ctx, code); ok {
		return product, nil
	}

	product, err := s.repo.FindByBarcode(ctx, code)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound(MsgProductNotFound)
		}
		s.logger.Error("Failed to fetch product by barcode", zap.String("barcode", code), zap.Error(err))
		return nil, internalError("Failed to fetch product")
	}
	s.cache.SetAsync(product)
	return product, nil
}

func (s *productServiceImpl) Create(ctx context.Context, req *models.CreateProductRequest, userID string) (*models.Product, *ServiceError) {
	product := &models.Product{
		Name:                  strings.TrimSpace(req.Name),
		Brand:                 strings.TrimSpace(req.Brand),
		Category:              strings.TrimSpace(req.Category),
		Ingredients:           req.Ingredients,
		ImageURL:              req.ImageURL,
		SourceURL:             req.SourceURL,
		BaselineScore:         req.BaselineScore,
		DisposalInstructions:  req.DisposalInstructions,
		CosmicClarity:         models.ClarityUnknown,
		TransparencyLevel:     models.TransparencyPoor,
		SuspiciousIngredients: []string{},
		CreatedBy:             userID,
	}
	if code := strings.TrimSpace(req.Barcode); code != "" {
		product.Barcode = &code
	}
	return s.createAndAnalyze(ctx, product)
}

func (s *productServiceImpl) createAndAnalyze(ctx context.Context, product *models.Product) (*models.Product, *ServiceError) {
	if err := s.repo.Create(ctx, product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &ServiceError{StatusCode: http.StatusConflict, Message: "a product with this barcode already exists"}
		}
		s.logger.Error("Failed to create product", zap.Error(err))
		return nil, internalError("Failed to create product")
	}

	if _, err := s.analysis.Analyze(ctx, product); err != nil {
		// product exists; it stays stale and is analyzed on the next scan
		s.logger.Warn("Initial analysis failed", zap.String("product_id", product.ID.String()), zap.Error(err))
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("created_by", product.CreatedBy))
	return product, nil
}

func (s *productServiceImpl) Update(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, *ServiceError) {
	product, svcErr := s.Get(ctx, id)
	if svcErr != nil {
		return nil, svcErr
	}

	oldBarcode := ""
	if product.Barcode != nil {
		oldBarcode = *product.Barcode
	}
	reanalyze := false

	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Brand != nil {
		product.Brand = strings.TrimSpace(*req.Brand)
	}
	if req.Category != nil {
		product.Category = strings.TrimSpace(*req.Category)
	}
	if req.Ingredients != nil && *req.Ingredients != product.Ingredients {
		product.Ingredients = *req.Ingredients
		reanalyze = true
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	if req.SourceURL != nil {
		product.SourceURL = *req.SourceURL
	}
	if req.BaselineScore != nil {
		product.BaselineScore = req.BaselineScore
		reanalyze = true
	}
	if req.DisposalInstructions != nil {
		product.DisposalInstructions = *req.DisposalInstructions
	}
	if req.Barcode != nil {
		if code := strings.TrimSpace(*req.Barcode); code == "" {
			product.Barcode = nil
		} else {
			product.Barcode = &code
		}
	}

	if err := s.repo.Update(ctx, product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &ServiceError{StatusCode: http.StatusConflict, Message: "a product with this barcode already exists"}
		}
		s.logger.Error("Failed to update product", zap.String("product_id", id.String()), zap.Error(err))
		return nil, internalError("Failed to update product")
	}
	s.cache.InvalidateBarcode(ctx, oldBarcode)

	if reanalyze {
		if _, err := s.analysis.Analyze(ctx, product); err != nil {
			s.logger.Warn("Re-analysis after update failed", zap.String("product_id", id.String()), zap.Error(err))
		}
	} else {
		s.cache.SetAsync(product)
	}
	return product, nil
}

// Delete soft-deletes a product. Scan history keeps its weak reference.
func (s *productServiceImpl) Delete(ctx context.Context, id uuid.UUID) *ServiceError {
	product, svcErr := s.Get(ctx, id)
	if svcErr != nil {
		return svcErr
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return notFound(MsgProductNotFound)
		}
		s.logger.Error("Failed to delete product", zap.String("product_id", id.String()), zap.Error(err))
		return internalError("Failed to delete product")
	}
	if product.Barcode != nil {
		s.cache.InvalidateBarcode(ctx, *product.Barcode)
	}
	s.logger.Info("Product deleted", zap.String("product_id", id.String()))
	return nil
}

func (s *productServiceImpl) Analyze(ctx context.Context, id uuid.UUID) (*models.AnalysisResult, *ServiceError) {
	product, svcErr := s.Get(ctx, id)
	if svcErr != nil {
		return nil, svcErr
	}
	result, err := s.analysis.Analyze(ctx, product)
	if err != nil {
		s.logger.Error("Analysis failed", zap.String("product_id", id.String()), zap.Error(err))
		return nil, internalError("Failed to analyze product")
	}
	return result, nil
}

// OverrideClarity records an admin bless/curse. It holds until the next
// analysis recomputes clarity.
func (s *productServiceImpl) OverrideClarity(ctx context.Context, id uuid.UUID, clarity models.CosmicClarity) (*models.Product, *ServiceError) {
	switch clarity {
	case models.ClarityBlessed, models.ClarityQuestionable, models.ClarityCursed:
	default:
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "clarity must be blessed, questionable or cursed"}
	}

	product, svcErr := s.Get(ctx, id)
	if svcErr != nil {
		return nil, svcErr
	}
	product.CosmicClarity = clarity
	product.ClarityOverridden = true
	if err := s.repo.Update(ctx, product); err != nil {
		s.logger.Error("Failed to override clarity", zap.String("product_id", id.String()), zap.Error(err))
		return nil, internalError("Failed to update product")
	}
	s.cache.SetAsync(product)

	s.logger.Info("Clarity overridden",
		zap.String("product_id", id.String()),
		zap.String("clarity", string(clarity)))
	return product, nil
}

// InternetSearch asks the external collaborator for a candidate. Upstream
// failures degrade to an empty result.
func (s *productServiceImpl) InternetSearch(ctx context.Context, req *models.InternetSearchRequest) (*models.InternetSearchResponse, *ServiceError) {
	var (
		candidate *models.Product
		err       error
	)

	switch req.Type {
	case models.ScanKindBarcode:
		code, verr := NormalizeBarcode(req.Query)
		if verr != nil {
			return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: MsgInvalidPayload, Err: verr}
		}
		candidate, err = s.search.SearchByBarcode(ctx, code)
	case models.ScanKindImage:
		ref, verr := NormalizeImageRef(req.Query)
		if verr != nil {
			// free text from the image search box
			candidate, err = s.search.SearchByName(ctx, req.Query)
			break
		}
		candidate, err = s.searchByImage(ctx, ref)
	default:
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: MsgInvalidPayload, Err: ErrInvalidPayload}
	}

	if err != nil {
		s.logger.Warn("Internet search failed", zap.String("type", string(req.Type)), zap.Error(err))
		return &models.InternetSearchResponse{Product: nil}, nil
	}
	if candidate == nil {
		return &models.InternetSearchResponse{Product: nil}, nil
	}
	return &models.InternetSearchResponse{Source: models.SourceInternet, Product: candidate}, nil
}

func (s *productServiceImpl) searchByImage(ctx context.Context, ref string) (*models.Product, error) {
	rec, err := s.recognizer.Recognize(ctx, ref)
	if err != nil || rec == nil {
		return nil, err
	}
	if code, err := NormalizeBarcode(rec.Barcode); err == nil {
		return s.search.SearchByBarcode(ctx, code)
	}
	return s.search.SearchByName(ctx, strings.TrimSpace(rec.Brand+" "+rec.ProductName))
}

// AcceptCandidate saves an internet candidate the user confirmed. An existing
// product with the same barcode is returned instead of a duplicate.
func (s *productServiceImpl) AcceptCandidate(ctx context.Context, req *models.AcceptCandidateRequest, userID string) (*models.Product, *ServiceError) {
	code := strings.TrimSpace(req.Barcode)
	if code != "" {
		existing, err := s.repo.FindByBarcode(ctx, code)
		if err == nil {
			return existing, nil
		}
		if !isNotFound(err) {
			s.logger.Error("Failed to check existing product", zap.String("barcode", code), zap.Error(err))
			return nil, internalError("Failed to save product")
		}
	}

	product := &models.Product{
		Name:                  strings.TrimSpace(req.Name),
		Brand:                 strings.TrimSpace(req.Brand),
		Category:              strings.TrimSpace(req.Category),
		Ingredients:           req.Ingredients,
		ImageURL:              req.ImageURL,
		SourceURL:             req.SourceURL,
		CosmicClarity:         models.ClarityUnknown,
		TransparencyLevel:     models.TransparencyPoor,
		SuspiciousIngredients: []string{},
		CreatedBy:             userID,
	}
	if code != "" {
		product.Barcode = &code
	}
	return s.createAndAnalyze(ctx, product)
}
