package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/pawsitivecheck/backend/api-gateway/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("routes-test-secret")

type upstream struct {
	srv  *httptest.Server
	mu   sync.Mutex
	hits []string
}

func (u *upstream) calls() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.hits...)
}

func newUpstream(t *testing.T, name string) *upstream {
	u := &upstream{}
	u.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.mu.Lock()
		u.hits = append(u.hits, r.Method+" "+r.URL.Path)
		u.mu.Unlock()
		w.Header().Set("X-Service", name)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(u.srv.Close)
	return u
}

func token(t *testing.T, role string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1", "role": role, "typ": "access",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(secret)
	require.NoError(t, err)
	return "Bearer " + s
}

func setup(t *testing.T) (*gin.Engine, *upstream, *upstream) {
	gin.SetMode(gin.TestMode)
	catalog := newUpstream(t, "catalog")
	pets := newUpstream(t, "pets")
	r := gin.New()
	RegisterAllRoutes(r, Upstreams{
		Catalog: utils.NewForwarder(catalog.srv.URL, time.Second),
		Pets:    utils.NewForwarder(pets.srv.URL, time.Second),
	}, secret)
	return r, catalog, pets
}

func send(r *gin.Engine, method, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader("{}"))
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoutes_PublicCatalogReads(t *testing.T) {
	r, catalog, _ := setup(t)

	for _, path := range []string{"/products", "/products/barcode/0123456789012", "/recalls", "/blacklist"} {
		w := send(r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, "catalog", w.Header().Get("X-Service"), path)
	}
	assert.Len(t, catalog.calls(), 4)
}

func TestRoutes_ProtectedRequireToken(t *testing.T) {
	r, catalog, pets := setup(t)

	assert.Equal(t, http.StatusUnauthorized, send(r, http.MethodPost, "/scans/intake", "").Code)
	assert.Equal(t, http.StatusUnauthorized, send(r, http.MethodGet, "/pets", "").Code)
	assert.Empty(t, catalog.calls())
	assert.Empty(t, pets.calls())

	w := send(r, http.MethodPost, "/scans/intake", token(t, "user"))
	assert.Equal(t, http.StatusOK, w.Code)
	w = send(r, http.MethodDelete, "/pets/abc/saved-products/def", token(t, "user"))
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, []string{"POST /scans/intake"}, catalog.calls())
	assert.Equal(t, []string{"DELETE /pets/abc/saved-products/def"}, pets.calls())
}

func TestRoutes_AdminCatalogWrites(t *testing.T) {
	r, catalog, _ := setup(t)

	assert.Equal(t, http.StatusForbidden, send(r, http.MethodPost, "/recalls", token(t, "user")).Code)
	assert.Equal(t, http.StatusForbidden, send(r, http.MethodDelete, "/products/abc", token(t, "user")).Code)
	assert.Empty(t, catalog.calls())

	assert.Equal(t, http.StatusOK, send(r, http.MethodPost, "/recalls", token(t, "admin")).Code)
	assert.Equal(t, http.StatusOK, send(r, http.MethodPut, "/blacklist/abc", token(t, "admin")).Code)
	assert.Equal(t, []string{"POST /recalls", "PUT /blacklist/abc"}, catalog.calls())
}
