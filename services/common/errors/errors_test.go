package errors

import (
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestFrom_KeepsAppError(t *testing.T) {
	wrapped := ErrBadGateway.Wrap(stderrors.New("dial tcp: refused"))
	got := From(wrapped)

	assert.Equal(t, http.StatusBadGateway, got.Code)
	assert.Contains(t, got.Error(), "dial tcp")
	assert.Nil(t, ErrBadGateway.Err, "Wrap must not mutate the shared value")
}

func TestFrom_DefaultsToInternal(t *testing.T) {
	got := From(stderrors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, got.Code)
}

func TestErrorMiddleware_RendersLastError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorMiddleware())
	r.GET("/x", func(c *gin.Context) {
		_ = c.Error(ErrForbidden)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"Forbidden"}`, w.Body.String())
}
