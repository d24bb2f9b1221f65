package services

import (
	"errors"
	"net/http"

	apperrors "github.com/pawsitivecheck/backend/services/common/errors"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

var (
	ErrPetNotFound       = apperrors.New(http.StatusNotFound, "pet not found", nil)
	ErrLivestockNotFound = apperrors.New(http.StatusNotFound, "livestock not found", nil)
	ErrSavedNotFound     = apperrors.New(http.StatusNotFound, "saved product not found", nil)
	ErrFeedNotFound      = apperrors.New(http.StatusNotFound, "feed record not found", nil)
	ErrAlertNotFound     = apperrors.New(http.StatusNotFound, "alert not found", nil)
	ErrAlreadySaved      = apperrors.New(http.StatusConflict, "product already saved for this pet", nil)
)

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// storeError maps a repository error to notFound when the row is missing and
// to a 500 otherwise.
func storeError(err error, notFound *apperrors.Error) *apperrors.Error {
	if isNotFound(err) {
		return notFound
	}
	return apperrors.ErrInternalServer.Wrap(err)
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}
