package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pawsitivecheck/backend/services/catalog-service/models"
	"github.com/pawsitivecheck/backend/services/catalog-service/services"
	"github.com/pawsitivecheck/backend/services/common/middleware"
)

// ProductController handles catalog product endpoints.
type ProductController struct {
	productService services.ProductService
}

func NewProductController(svc services.ProductService) *ProductController {
	return &ProductController{productService: svc}
}

// GetProducts handles GET /products
func (pc *ProductController) GetProducts(ctx *gin.Context) {
	page, limit := parsePaginationParams(ctx)
	filter := models.ProductFilter{
		Category: strings.TrimSpace(ctx.Query("category")),
		Clarity:  models.CosmicClarity(strings.ToLower(strings.TrimSpace(ctx.Query("clarity")))),
		Search:   ctx.Query("search"),
		Page:     page,
		Limit:    limit,
	}
	switch filter.Clarity {
	case "", models.ClarityBlessed, models.ClarityQuestionable, models.ClarityCursed, models.ClarityUnknown:
	default:
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid clarity filter"})
		return
	}

	products, total, svcErr := pc.productService.List(ctx.Request.Context(), filter)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

// GetProduct handles GET /products/:id
func (pc *ProductController) GetProduct(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	product, svcErr := pc.productService.Get(ctx.Request.Context(), id)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, product)
}

// GetProductByBarcode handles GET /products/barcode/:code
func (pc *ProductController) GetProductByBarcode(ctx *gin.Context) {
	product, svcErr := pc.productService.GetByBarcode(ctx.Request.Context(), ctx.Param("code"))
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, product)
}

// CreateProduct handles POST /products (admin)
func (pc *ProductController) CreateProduct(ctx *gin.Context) {
	var req models.CreateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	userID, _ := middleware.GetUserID(ctx)

	product, svcErr := pc.productService.Create(ctx.Request.Context(), &req, userID)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusCreated, product)
}

// UpdateProduct handles PUT /products/:id (admin)
func (pc *ProductController) UpdateProduct(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req models.UpdateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	product, svcErr := pc.productService.Update(ctx.Request.Context(), id, &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /products/:id (admin)
func (pc *ProductController) DeleteProduct(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if svcErr := pc.productService.Delete(ctx.Request.Context(), id); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.Status(http.StatusNoContent)
}

// AnalyzeProduct handles POST /products/:id/analyze
func (pc *ProductController) AnalyzeProduct(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	analysis, svcErr := pc.productService.Analyze(ctx.Request.Context(), id)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"analysis": analysis})
}

// OverrideClarity handles POST /products/:id/clarity (admin)
func (pc *ProductController) OverrideClarity(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req models.ClarityOverrideRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	product, svcErr := pc.productService.OverrideClarity(ctx.Request.Context(), id, req.Clarity)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, product)
}

// InternetSearch handles POST /products/internet-search
func (pc *ProductController) InternetSearch(ctx *gin.Context) {
	var req models.InternetSearchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	resp, svcErr := pc.productService.InternetSearch(ctx.Request.Context(), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// AcceptCandidate handles POST /products/internet-search/accept
func (pc *ProductController) AcceptCandidate(ctx *gin.Context) {
	var req models.AcceptCandidateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	userID, _ := middleware.GetUserID(ctx)

	product, svcErr := pc.productService.AcceptCandidate(ctx.Request.Context(), &req, userID)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusCreated, product)
}
