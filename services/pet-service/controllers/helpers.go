package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apperrors "github.com/pawsitivecheck/backend/services/common/errors"
	"github.com/pawsitivecheck/backend/services/common/middleware"
)

// ownerID returns the gateway-authenticated user. Routes are mounted behind
// RequireUser, so a miss here aborts with 401.
func ownerID(ctx *gin.Context) (string, bool) {
	id, err := middleware.GetUserID(ctx)
	if err != nil {
		apperrors.Abort(ctx, apperrors.ErrUnauthorized)
		return "", false
	}
	return id, true
}

func parseUUIDParam(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		apperrors.Abort(ctx, apperrors.New(http.StatusBadRequest, "Invalid "+name, err))
		return uuid.Nil, false
	}
	return id, true
}

func parsePaginationParams(ctx *gin.Context) (int, int) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	return page, limit
}

func badRequest(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
}
