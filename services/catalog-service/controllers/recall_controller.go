package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pawsitivecheck/backend/services/catalog-service/models"
	"github.com/pawsitivecheck/backend/services/catalog-service/services"
)

type RecallController struct {
	recallService services.RecallService
}

func NewRecallController(svc services.RecallService) *RecallController {
	return &RecallController{recallService: svc}
}

// GetActiveRecalls handles GET /recalls
func (rc *RecallController) GetActiveRecalls(ctx *gin.Context) {
	page, limit := parsePaginationParams(ctx)
	recalls, total, svcErr := rc.recallService.ListActive(ctx.Request.Context(), page, limit)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"recalls": recalls, "total": total, "page": page, "limit": limit})
}

// GetProductRecalls handles GET /products/:id/recalls
func (rc *RecallController) GetProductRecalls(ctx *gin.Context) {
	productID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	recalls, svcErr := rc.recallService.ListForProduct(ctx.Request.Context(), productID)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"recalls": recalls})
}

// CreateRecall handles POST /recalls (admin)
func (rc *RecallController) CreateRecall(ctx *gin.Context) {
	var req models.CreateRecallRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	recall, svcErr := rc.recallService.Create(ctx.Request.Context(), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusCreated, recall)
}

// DeactivateRecall handles POST /recalls/:id/deactivate (admin)
func (rc *RecallController) DeactivateRecall(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	recall, svcErr := rc.recallService.Deactivate(ctx.Request.Context(), id)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, recall)
}
