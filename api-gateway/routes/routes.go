package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pawsitivecheck/backend/api-gateway/middlewares"
	"github.com/pawsitivecheck/backend/api-gateway/utils"
)

// Upstreams are the downstream services the gateway fronts.
type Upstreams struct {
	Catalog *utils.Forwarder
	Pets    *utils.Forwarder
}

func RegisterAllRoutes(r *gin.Engine, up Upstreams, jwtSecret []byte) {
	catalog := up.Catalog.Handle
	pets := up.Pets.Handle

	// ===== PUBLIC ROUTES =====
	public := r.Group("/")
	public.GET("/products", catalog)
	public.GET("/products/*any", catalog)
	public.GET("/recalls", catalog)
	public.GET("/blacklist", catalog)

	// ===== PROTECTED ROUTES (JWT Required) =====
	protected := r.Group("/")
	protected.Use(middlewares.JWTMiddleware(jwtSecret))

	// analyze, reviews, internet search; admin-only subpaths are enforced downstream
	protected.POST("/products/*any", catalog)
	protected.PUT("/reviews/*any", catalog)
	protected.DELETE("/reviews/*any", catalog)
	protected.POST("/uploads/*any", catalog)

	protected.GET("/scans", catalog)
	protected.POST("/scans", catalog)
	protected.POST("/scans/*any", catalog)

	for _, prefix := range []string{"/pets", "/livestock", "/alerts"} {
		protected.GET(prefix, pets)
		protected.POST(prefix, pets)
		protected.GET(prefix+"/*any", pets)
		protected.POST(prefix+"/*any", pets)
		protected.PUT(prefix+"/*any", pets)
		protected.DELETE(prefix+"/*any", pets)
	}

	// ===== ADMIN ROUTES =====
	admin := r.Group("/")
	admin.Use(middlewares.JWTMiddleware(jwtSecret), middlewares.AdminRoleMiddleware())
	admin.POST("/products", catalog)
	admin.PUT("/products/*any", catalog)
	admin.DELETE("/products/*any", catalog)
	admin.POST("/recalls", catalog)
	admin.POST("/recalls/*any", catalog)
	admin.POST("/blacklist", catalog)
	admin.POST("/blacklist/*any", catalog)
	admin.PUT("/blacklist/*any", catalog)
}
