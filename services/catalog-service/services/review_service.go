package services

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/pawsitivecheck/backend/services/catalog-service/models"
	"github.com/pawsitivecheck/backend/services/catalog-service/repository"
	"go.uber.org/zap"
)

// ReviewService defines community review operations.
type ReviewService interface {
	List(ctx context.Context, productID uuid.UUID, page, limit int) ([]models.ProductReview, int64, *ServiceError)
	Create(ctx context.Context, productID uuid.UUID, userID string, req *models.CreateReviewRequest) (*models.ProductReview, *ServiceError)
	Update(ctx context.Context, id uuid.UUID, userID string, isAdmin bool, req *models.UpdateReviewRequest) (*models.ProductReview, *ServiceError)
	Delete(ctx context.Context, id uuid.UUID, userID string, isAdmin bool) *ServiceError
}

type reviewServiceImpl struct {
	reviews  repository.ReviewRepository
	products repository.ProductRepository
	logger   *zap.Logger
}

func NewReviewService(reviews repository.ReviewRepository, products repository.ProductRepository, logger *zap.Logger) ReviewService {
	return &reviewServiceImpl{reviews: reviews, products: products, logger: logger}
}

func (s *reviewServiceImpl) List(ctx context.Context, productID uuid.UUID, page, limit int) ([]models.ProductReview, int64, *ServiceError) {
	page, limit = normalizePage(page, limit)
	reviews, total, err := s.reviews.FindByProduct(ctx, productID, page, limit)
	if err != nil {
		s.logger.Error("Failed to list reviews", zap.String("product_id", productID.String()), zap.Error(err))
		return nil, 0, internalError("Failed to fetch reviews")
	}
	return reviews, total, nil
}

func (s *reviewServiceImpl) Create(ctx context.Context, productID uuid.UUID, userID string, req *models.CreateReviewRequest) (*models.ProductReview, *ServiceError) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if isNotFound(err) {
			return nil, notFound(MsgProductNotFound)
		}
		s.logger.Error("Failed to fetch product for review", zap.String("product_id", productID.String()), zap.Error(err))
		return nil, internalError("Failed to create review")
	}

	review := &models.ProductReview{
		ProductID: productID,
		UserID:    userID,
		Rating:    req.Rating,
		Title:     strings.TrimSpace(req.Title),
		Content:   strings.TrimSpace(req.Content),
	}
	if review.Content == "" {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "content is required"}
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		s.logger.Error("Failed to create review", zap.Error(err))
		return nil, internalError("Failed to create review")
	}
	s.markStale(ctx, productID)
	return review, nil
}

func (s *reviewServiceImpl) Update(ctx context.Context, id uuid.UUID, userID string, isAdmin bool, req *models.UpdateReviewRequest) (*models.ProductReview, *ServiceError) {
	review, svcErr := s.authorized(ctx, id, userID, isAdmin)
	if svcErr != nil {
		return nil, svcErr
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Title != nil {
		review.Title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		content := strings.TrimSpace(*req.Content)
		if content == "" {
			return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "content is required"}
		}
		review.Content = content
	}

	if err := s.reviews.Update(ctx, review); err != nil {
		s.logger.Error("Failed to update review", zap.String("review_id", id.String()), zap.Error(err))
		return nil, internalError("Failed to update review")
	}
	s.markStale(ctx, review.ProductID)
	return review, nil
}

func (s *reviewServiceImpl) Delete(ctx context.Context, id uuid.UUID, userID string, isAdmin bool) *ServiceError {
	review, svcErr := s.authorized(ctx, id, userID, isAdmin)
	if svcErr != nil {
		return svcErr
	}
	if err := s.reviews.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete review", zap.String("review_id", id.String()), zap.Error(err))
		return internalError("Failed to delete review")
	}
	s.markStale(ctx, review.ProductID)
	return nil
}

// authorized loads a review the caller may modify: its author or an admin.
func (s *reviewServiceImpl) authorized(ctx context.Context, id uuid.UUID, userID string, isAdmin bool) (*models.ProductReview, *ServiceError) {
	review, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("review not found")
		}
		s.logger.Error("Failed to fetch review", zap.String("review_id", id.String()), zap.Error(err))
		return nil, internalError("Failed to fetch review")
	}
	if review.UserID != userID && !isAdmin {
		return nil, &ServiceError{StatusCode: http.StatusForbidden, Message: "you can only modify your own reviews"}
	}
	return review, nil
}

// markStale forces re-analysis since review sentiment feeds the score.
func (s *reviewServiceImpl) markStale(ctx context.Context, productID uuid.UUID) {
	if err := s.products.MarkStale(ctx, productID); err != nil {
		s.logger.Warn("Failed to mark product stale", zap.String("product_id", productID.String()), zap.Error(err))
	}
}
