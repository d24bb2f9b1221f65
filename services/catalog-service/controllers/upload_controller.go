package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pawsitivecheck/backend/services/catalog-service/models"
	"github.com/pawsitivecheck/backend/services/catalog-service/services"
	"github.com/pawsitivecheck/backend/services/common/middleware"
)

type UploadController struct {
	uploadService services.UploadService
}

func NewUploadController(svc services.UploadService) *UploadController {
	return &UploadController{uploadService: svc}
}

// Presign handles POST /uploads/presign
func (uc *UploadController) Presign(ctx *gin.Context) {
	var req models.PresignUploadRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	userID, _ := middleware.GetUserID(ctx)

	resp, svcErr := uc.uploadService.Presign(ctx.Request.Context(), userID, middleware.IsAdmin(ctx), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
