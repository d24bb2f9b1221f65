package controllers

import (
	"errors"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pawsitivecheck/backend/services/catalog-service/models"
	"github.com/pawsitivecheck/backend/services/catalog-service/services"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

var registerOnce sync.Once

// RegisterValidators adds the catalog's custom binding rules to gin's
// validator engine.
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("unexpected validator engine")
			return
		}
		if err = v.RegisterValidation("barcode", validateBarcode); err != nil {
			return
		}
		err = v.RegisterValidation("scankind", validateScanKind)
	})
	return err
}

func validateBarcode(fl validator.FieldLevel) bool {
	return services.IsValidBarcode(fl.Field().String())
}

func validateScanKind(fl validator.FieldLevel) bool {
	switch models.ScanKind(fl.Field().String()) {
	case models.ScanKindBarcode, models.ScanKindImage:
		return true
	}
	return false
}

// parsePaginationParams extracts page/limit query params.
func parsePaginationParams(ctx *gin.Context) (int, int) {
	page, limit := 1, defaultPageSize
	if p, err := strconv.Atoi(ctx.DefaultQuery("page", "1")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(ctx.Query("limit")); err == nil && l > 0 {
		limit = l
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

// parseIDParam reads a uuid path parameter, writing a 400 on failure.
func parseIDParam(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		ctx.JSON(400, gin.H{"error": "Invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}
