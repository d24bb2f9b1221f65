package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pawsitivecheck/backend/services/catalog-service/models"
	"github.com/pawsitivecheck/backend/services/catalog-service/services"
)

type BlacklistController struct {
	blacklistService services.BlacklistService
}

func NewBlacklistController(svc services.BlacklistService) *BlacklistController {
	return &BlacklistController{blacklistService: svc}
}

// GetBlacklist handles GET /blacklist
func (bc *BlacklistController) GetBlacklist(ctx *gin.Context) {
	entries, svcErr := bc.blacklistService.ListActive(ctx.Request.Context())
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"entries": entries})
}

// CreateEntry handles POST /blacklist (admin)
func (bc *BlacklistController) CreateEntry(ctx *gin.Context) {
	var req models.CreateBlacklistRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	entry, svcErr := bc.blacklistService.Create(ctx.Request.Context(), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusCreated, entry)
}

// UpdateEntry handles PUT /blacklist/:id (admin)
func (bc *BlacklistController) UpdateEntry(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req models.UpdateBlacklistRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	entry, svcErr := bc.blacklistService.Update(ctx.Request.Context(), id, &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, entry)
}

// DeactivateEntry handles POST /blacklist/:id/deactivate (admin)
func (bc *BlacklistController) DeactivateEntry(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	entry, svcErr := bc.blacklistService.Deactivate(ctx.Request.Context(), id)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, entry)
}
