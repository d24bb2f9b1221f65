package providers_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/pawsitivecheck/backend/services/catalog-service/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://opff.test"

// setupHTTPMock activates httpmock for the default transport.
func setupHTTPMock(t *testing.T) {
	t.Helper()
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)
}

const productFound = `{
  "status": 1,
  "code": "3017620422003",
  "product": {
    "code": "3017620422003",
    "product_name": "Grain Free Salmon",
    "brands": "Acme Pets, Acme",
    "categories": "Dog food, Dry food",
    "ingredients_text": "Salmon, peas, potato, BHA",
    "image_url": "https://images.opff.test/1.jpg"
  }
}`

func TestSearchByBarcode_Found(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder("GET", testBaseURL+"/api/v2/product/3017620422003.json",
		httpmock.NewStringResponder(http.StatusOK, productFound))

	p := providers.NewOpenPetFoodFactsProvider(testBaseURL, 0)
	product, err := p.SearchByBarcode(context.Background(), "3017620422003")

	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, "Grain Free Salmon", product.Name)
	assert.Equal(t, "Acme Pets", product.Brand)
	assert.Equal(t, "Dog food", product.Category)
	require.NotNil(t, product.Barcode)
	assert.Equal(t, "3017620422003", *product.Barcode)
	assert.Equal(t, testBaseURL+"/product/3017620422003", product.SourceURL)
}

func TestSearchByBarcode_NotFoundIsCached(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder("GET", testBaseURL+"/api/v2/product/000.json",
		httpmock.NewStringResponder(http.StatusNotFound, `{"status":0,"status_verbose":"product not found"}`))

	p := providers.NewOpenPetFoodFactsProvider(testBaseURL, time.Minute)
	for i := 0; i < 3; i++ {
		product, err := p.SearchByBarcode(context.Background(), "000")
		require.NoError(t, err)
		assert.Nil(t, product)
	}
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestSearchByBarcode_UpstreamError(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder("GET", testBaseURL+"/api/v2/product/123.json",
		httpmock.NewStringResponder(http.StatusBadGateway, "bad gateway"))

	p := providers.NewOpenPetFoodFactsProvider(testBaseURL, time.Minute)
	product, err := p.SearchByBarcode(context.Background(), "123")

	assert.Error(t, err)
	assert.Nil(t, product)
}

func TestSearchByName_FirstNamedCandidate(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder("GET", `=~^https://opff\.test/cgi/search\.pl`,
		httpmock.NewStringResponder(http.StatusOK, `{
  "count": 2,
  "products": [
    {"code": "1", "product_name": ""},
    {"code": "2", "product_name": "Chicken Bites", "brands": "Barky"}
  ]
}`))

	p := providers.NewOpenPetFoodFactsProvider(testBaseURL, time.Minute)
	product, err := p.SearchByName(context.Background(), "chicken bites")

	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, "Chicken Bites", product.Name)
	assert.Equal(t, "2", *product.Barcode)

	// cached copies are independent
	product.Name = "changed"
	again, err := p.SearchByName(context.Background(), "Chicken Bites")
	require.NoError(t, err)
	assert.Equal(t, "Chicken Bites", again.Name)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestSearchByName_EmptyQuery(t *testing.T) {
	p := providers.NewOpenPetFoodFactsProvider(testBaseURL, 0)
	product, err := p.SearchByName(context.Background(), "   ")
	assert.NoError(t, err)
	assert.Nil(t, product)
}

func TestHTTPImageRecognizer(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder("POST", "https://vision.test/recognize",
		func(req *http.Request) (*http.Response, error) {
			if req.Header.Get("Authorization") != "Bearer k" {
				return httpmock.NewStringResponse(http.StatusUnauthorized, ""), nil
			}
			return httpmock.NewJsonResponse(http.StatusOK, map[string]interface{}{
				"barcode":    "3017620422003",
				"confidence": 0.93,
			})
		})

	r := providers.NewHTTPImageRecognizer("https://vision.test/recognize", "k")
	rec, err := r.Recognize(context.Background(), "scans/user-1/a.jpg")

	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "3017620422003", rec.Barcode)
	assert.InDelta(t, 0.93, rec.Confidence, 0.001)
}

func TestNoopImageRecognizer(t *testing.T) {
	rec, err := providers.NoopImageRecognizer{}.Recognize(context.Background(), "x")
	assert.NoError(t, err)
	assert.Nil(t, rec)
}
