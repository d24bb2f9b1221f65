package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/pawsitivecheck/backend/services/common/errors"
	"github.com/pawsitivecheck/backend/services/pet-service/models"
	"github.com/pawsitivecheck/backend/services/pet-service/services"
)

type LivestockController struct {
	livestockService services.LivestockService
}

func NewLivestockController(svc services.LivestockService) *LivestockController {
	return &LivestockController{livestockService: svc}
}

// GetLivestock handles GET /livestock
func (lc *LivestockController) GetLivestock(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}
	herds, err := lc.livestockService.List(ctx.Request.Context(), owner)
	if err != nil {
		apperrors.Abort(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"livestock": herds})
}

// GetHerd handles GET /livestock/:id
func (lc *LivestockController) GetHerd(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}
	herd, err := lc.livestockService.Get(ctx.Request.Context(), id, owner)
	if err != nil {
		apperrors.Abort(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, herd)
}

// CreateHerd handles POST /livestock
func (lc *LivestockController) CreateHerd(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}
	var req models.CreateLivestockRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	herd, err := lc.livestockService.Create(ctx.Request.Context(), owner, &req)
	if err != nil {
		apperrors.Abort(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, herd)
}

// UpdateHerd handles PUT /livestock/:id
func (lc *LivestockController) UpdateHerd(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}
	var req models.UpdateLivestockRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	herd, err := lc.livestockService.Update(ctx.Request.Context(), id, owner, &req)
	if err != nil {
		apperrors.Abort(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, herd)
}

// DeleteHerd handles DELETE /livestock/:id
func (lc *LivestockController) DeleteHerd(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := lc.livestockService.Delete(ctx.Request.Context(), id, owner); err != nil {
		apperrors.Abort(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// GetFeeds handles GET /livestock/:id/feeds
func (lc *LivestockController) GetFeeds(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}
	page, limit := parsePaginationParams(ctx)
	feeds, total, err := lc.livestockService.ListFeeds(ctx.Request.Context(), id, owner, page, limit)
	if err != nil {
		apperrors.Abort(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"feeds": feeds, "total": total, "page": page, "limit": limit})
}

// AddFeed handles POST /livestock/:id/feeds
func (lc *LivestockController) AddFeed(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}
	var req models.CreateFeedRecordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	feed, err := lc.livestockService.AddFeed(ctx.Request.Context(), id, owner, &req)
	if err != nil {
		apperrors.Abort(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, feed)
}

// DeleteFeed handles DELETE /livestock/:id/feeds/:feedId
func (lc *LivestockController) DeleteFeed(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}
	feedID, ok := parseUUIDParam(ctx, "feedId")
	if !ok {
		return
	}
	if err := lc.livestockService.DeleteFeed(ctx.Request.Context(), id, feedID, owner); err != nil {
		apperrors.Abort(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
