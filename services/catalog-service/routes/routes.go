package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pawsitivecheck/backend/services/catalog-service/controllers"
	"github.com/pawsitivecheck/backend/services/common/middleware"
)

// Controllers bundles the catalog controllers for route registration.
type Controllers struct {
	Products  *controllers.ProductController
	Reviews   *controllers.ReviewController
	Recalls   *controllers.RecallController
	Blacklist *controllers.BlacklistController
	Scans     *controllers.ScanController
	Uploads   *controllers.UploadController
}

// RegisterCatalogRoutes sets up all catalog routes. Identity comes from
// headers set by the API gateway.
func RegisterCatalogRoutes(r *gin.Engine, c Controllers, scansPerMinute int) {
	r.Use(middleware.Identity())

	// Public reads
	products := r.Group("/products")
	products.GET("", c.Products.GetProducts)
	products.GET("/:id", c.Products.GetProduct)
	products.GET("/barcode/:code", c.Products.GetProductByBarcode)
	products.GET("/:id/reviews", c.Reviews.GetReviews)
	products.GET("/:id/recalls", c.Recalls.GetProductRecalls)
	r.GET("/recalls", c.Recalls.GetActiveRecalls)
	r.GET("/blacklist", c.Blacklist.GetBlacklist)

	// Authenticated users
	user := r.Group("")
	user.Use(middleware.RequireUser())
	user.POST("/products/:id/analyze", c.Products.AnalyzeProduct)
	user.POST("/products/:id/reviews", c.Reviews.CreateReview)
	user.PUT("/reviews/:id", c.Reviews.UpdateReview)
	user.DELETE("/reviews/:id", c.Reviews.DeleteReview)
	user.POST("/products/internet-search", c.Products.InternetSearch)
	user.POST("/products/internet-search/accept", c.Products.AcceptCandidate)
	user.POST("/uploads/presign", c.Uploads.Presign)

	scans := user.Group("/scans")
	scans.Use(middleware.RateLimitMiddleware(scansPerMinute, scansPerMinute))
	scans.POST("/intake", c.Scans.Intake)
	scans.POST("", c.Scans.RecordScan)
	scans.GET("", c.Scans.GetHistory)

	// Admin
	admin := r.Group("")
	admin.Use(middleware.RequireUser(), middleware.AdminOnly())
	admin.POST("/products", c.Products.CreateProduct)
	admin.PUT("/products/:id", c.Products.UpdateProduct)
	admin.DELETE("/products/:id", c.Products.DeleteProduct)
	admin.POST("/products/:id/clarity", c.Products.OverrideClarity)
	admin.POST("/recalls", c.Recalls.CreateRecall)
	admin.POST("/recalls/:id/deactivate", c.Recalls.DeactivateRecall)
	admin.POST("/blacklist", c.Blacklist.CreateEntry)
	admin.PUT("/blacklist/:id", c.Blacklist.UpdateEntry)
	admin.POST("/blacklist/:id/deactivate", c.Blacklist.DeactivateEntry)
}
