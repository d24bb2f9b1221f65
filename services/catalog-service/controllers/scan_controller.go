package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pawsitivecheck/backend/services/catalog-service/models"
	"github.com/pawsitivecheck/backend/services/catalog-service/services"
	"github.com/pawsitivecheck/backend/services/common/middleware"
)

// ScanController handles scan intake and history endpoints.
type ScanController struct {
	scanService services.ScanService
}

func NewScanController(svc services.ScanService) *ScanController {
	return &ScanController{scanService: svc}
}

// Intake handles POST /scans/intake
func (sc *ScanController) Intake(ctx *gin.Context) {
	var payload models.ScanPayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": services.MsgInvalidPayload})
		return
	}
	userID, _ := middleware.GetUserID(ctx)

	result, svcErr := sc.scanService.Intake(ctx.Request.Context(), userID, payload)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// RecordScan handles POST /scans
func (sc *ScanController) RecordScan(ctx *gin.Context) {
	var req models.RecordScanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	userID, _ := middleware.GetUserID(ctx)

	entry, svcErr := sc.scanService.Record(ctx.Request.Context(), userID, &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusCreated, entry)
}

// GetHistory handles GET /scans
func (sc *ScanController) GetHistory(ctx *gin.Context) {
	page, limit := parsePaginationParams(ctx)
	userID, _ := middleware.GetUserID(ctx)

	scans, total, svcErr := sc.scanService.History(ctx.Request.Context(), userID, page, limit)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"scans": scans,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}
