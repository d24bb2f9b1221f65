package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/pawsitivecheck/backend/services/common/errors"
	"github.com/pawsitivecheck/backend/services/pet-service/models"
	"github.com/pawsitivecheck/backend/services/pet-service/services"
)

type AlertController struct {
	alertService services.AlertService
}

func NewAlertController(svc services.AlertService) *AlertController {
	return &AlertController{alertService: svc}
}

// GetAlerts handles GET /alerts?unread=true
func (ac *AlertController) GetAlerts(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}
	page, limit := parsePaginationParams(ctx)
	alerts, total, err := ac.alertService.List(ctx.Request.Context(), models.AlertFilter{
		OwnerUserID: owner,
		UnreadOnly:  ctx.Query("unread") == "true",
		Page:        page,
		Limit:       limit,
	})
	if err != nil {
		apperrors.Abort(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"alerts": alerts, "total": total, "page": page, "limit": limit})
}

// MarkRead handles POST /alerts/:id/read
func (ac *AlertController) MarkRead(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := ac.alertService.MarkRead(ctx.Request.Context(), id, owner); err != nil {
		apperrors.Abort(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Alert marked as read"})
}
