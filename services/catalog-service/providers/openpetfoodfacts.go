package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/pawsitivecheck/backend/services/catalog-service/models"
)

const (
	DefaultOpenPetFoodFactsURL = "https://world.openpetfoodfacts.org"
	userAgent                  = "PawsitiveCheck/1.0 (+https://pawsitivecheck.app)"
)

// OpenPetFoodFactsProvider implements ProductSearchProvider against the
// Open Pet Food Facts API. Results, including misses, are cached in-process.
type OpenPetFoodFactsProvider struct {
	baseURL    string
	httpClient *http.Client
	results    *gocache.Cache
}

// NewOpenPetFoodFactsProvider creates a provider; cacheTTL of zero disables caching.
func NewOpenPetFoodFactsProvider(baseURL string, cacheTTL time.Duration) *OpenPetFoodFactsProvider {
	if baseURL == "" {
		baseURL = DefaultOpenPetFoodFactsURL
	}
	p := &OpenPetFoodFactsProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
	if cacheTTL > 0 {
		p.results = gocache.New(cacheTTL, cacheTTL*2)
	}
	return p
}

type offProduct struct {
	Code            string `json:"code"`
	ProductName     string `json:"product_name"`
	Brands          string `json:"brands"`
	Categories      string `json:"categories"`
	IngredientsText string `json:"ingredients_text"`
	ImageURL        string `json:"image_url"`
}

type offProductResponse struct {
	Status  int        `json:"status"`
	Product offProduct `json:"product"`
}

type offSearchResponse struct {
	Count    int          `json:"count"`
	Products []offProduct `json:"products"`
}

// SearchByBarcode fetches /api/v2/product/{barcode}.json.
func (p *OpenPetFoodFactsProvider) SearchByBarcode(ctx context.Context, barcode string) (*models.Product, error) {
	key := "barcode:" + barcode
	if product, found := p.cached(key); found {
		return product, nil
	}

	var out offProductResponse
	status, err := p.doRequest(ctx, "/api/v2/product/"+url.PathEscape(barcode)+".json", &out)
	if err != nil {
		return nil, err
	}

	var product *models.Product
	if status != http.StatusNotFound && out.Status == 1 {
		product = p.toProduct(out.Product, barcode)
	}
	p.store(key, product)
	return product, nil
}

// SearchByName runs a full-text search and keeps the first named hit.
func (p *OpenPetFoodFactsProvider) SearchByName(ctx context.Context, query string) (*models.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	key := "name:" + strings.ToLower(query)
	if product, found := p.cached(key); found {
		return product, nil
	}

	params := url.Values{}
	params.Set("search_terms", query)
	params.Set("search_simple", "1")
	params.Set("json", "1")
	params.Set("page_size", "5")

	var out offSearchResponse
	if _, err := p.doRequest(ctx, "/cgi/search.pl?"+params.Encode(), &out); err != nil {
		return nil, err
	}

	var product *models.Product
	for _, candidate := range out.Products {
		if strings.TrimSpace(candidate.ProductName) == "" {
			continue
		}
		product = p.toProduct(candidate, candidate.Code)
		break
	}
	p.store(key, product)
	return product, nil
}

func (p *OpenPetFoodFactsProvider) toProduct(src offProduct, barcode string) *models.Product {
	product := &models.Product{
		Name:        strings.TrimSpace(src.ProductName),
		Brand:       firstListItem(src.Brands),
		Category:    firstListItem(src.Categories),
		Ingredients: strings.TrimSpace(src.IngredientsText),
		ImageURL:    src.ImageURL,
	}
	if product.Name == "" {
		return nil
	}
	if barcode = strings.TrimSpace(barcode); barcode != "" {
		product.Barcode = &barcode
		product.SourceURL = p.baseURL + "/product/" + url.PathEscape(barcode)
	}
	return product
}

// cached returns a copy so callers can mutate the candidate freely.
func (p *OpenPetFoodFactsProvider) cached(key string) (*models.Product, bool) {
	if p.results == nil {
		return nil, false
	}
	v, found := p.results.Get(key)
	if !found {
		return nil, false
	}
	product, _ := v.(*models.Product)
	if product == nil {
		return nil, true
	}
	cp := *product
	return &cp, true
}

func (p *OpenPetFoodFactsProvider) store(key string, product *models.Product) {
	if p.results == nil {
		return
	}
	if product == nil {
		p.results.Set(key, (*models.Product)(nil), gocache.DefaultExpiration)
		return
	}
	cp := *product
	p.results.Set(key, &cp, gocache.DefaultExpiration)
}

func (p *OpenPetFoodFactsProvider) doRequest(ctx context.Context, path string, out interface{}) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read response: %w", err)
	}

	// The product endpoint answers 404 with a JSON body for unknown codes.
	if resp.StatusCode == http.StatusNotFound {
		return resp.StatusCode, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, fmt.Errorf("open pet food facts error (status %d): %s", resp.StatusCode, truncate(string(respBytes), 200))
	}

	if err := json.Unmarshal(respBytes, out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	return resp.StatusCode, nil
}

func firstListItem(list string) string {
	first, _, _ := strings.Cut(list, ",")
	return strings.TrimSpace(first)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
