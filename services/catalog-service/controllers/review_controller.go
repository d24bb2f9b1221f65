package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pawsitivecheck/backend/services/catalog-service/models"
	"github.com/pawsitivecheck/backend/services/catalog-service/services"
	"github.com/pawsitivecheck/backend/services/common/middleware"
)

type ReviewController struct {
	reviewService services.ReviewService
}

func NewReviewController(svc services.ReviewService) *ReviewController {
	return &ReviewController{reviewService: svc}
}

// GetReviews handles GET /products/:id/reviews
func (rc *ReviewController) GetReviews(ctx *gin.Context) {
	productID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	page, limit := parsePaginationParams(ctx)

	reviews, total, svcErr := rc.reviewService.List(ctx.Request.Context(), productID, page, limit)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"reviews": reviews, "total": total, "page": page, "limit": limit})
}

// CreateReview handles POST /products/:id/reviews
func (rc *ReviewController) CreateReview(ctx *gin.Context) {
	productID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req models.CreateReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	userID, _ := middleware.GetUserID(ctx)

	review, svcErr := rc.reviewService.Create(ctx.Request.Context(), productID, userID, &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusCreated, review)
}

// UpdateReview handles PUT /reviews/:id
func (rc *ReviewController) UpdateReview(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req models.UpdateReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	userID, _ := middleware.GetUserID(ctx)

	review, svcErr := rc.reviewService.Update(ctx.Request.Context(), id, userID, middleware.IsAdmin(ctx), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, review)
}

// DeleteReview handles DELETE /reviews/:id
func (rc *ReviewController) DeleteReview(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(ctx)

	if svcErr := rc.reviewService.Delete(ctx.Request.Context(), id, userID, middleware.IsAdmin(ctx)); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.Status(http.StatusNoContent)
}
