package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pawsitivecheck/backend/services/common/middleware"
	"github.com/pawsitivecheck/backend/services/pet-service/controllers"
)

// RegisterPetRoutes mounts pet, livestock and alert routes. All of them
// require a gateway-authenticated user.
func RegisterPetRoutes(r *gin.Engine, pc *controllers.PetController, lc *controllers.LivestockController, ac *controllers.AlertController) {
	api := r.Group("")
	api.Use(middleware.Identity(), middleware.RequireUser())

	pets := api.Group("/pets")
	pets.GET("", pc.GetPets)
	pets.POST("", pc.CreatePet)
	pets.GET("/:id", pc.GetPet)
	pets.PUT("/:id", pc.UpdatePet)
	pets.DELETE("/:id", pc.DeletePet)
	pets.GET("/:id/saved-products", pc.GetSavedProducts)
	pets.POST("/:id/saved-products", pc.SaveProduct)
	pets.DELETE("/:id/saved-products/:savedId", pc.RemoveSavedProduct)

	livestock := api.Group("/livestock")
	livestock.GET("", lc.GetLivestock)
	livestock.POST("", lc.CreateHerd)
	livestock.GET("/:id", lc.GetHerd)
	livestock.PUT("/:id", lc.UpdateHerd)
	livestock.DELETE("/:id", lc.DeleteHerd)
	livestock.GET("/:id/feeds", lc.GetFeeds)
	livestock.POST("/:id/feeds", lc.AddFeed)
	livestock.DELETE("/:id/feeds/:feedId", lc.DeleteFeed)

	alerts := api.Group("/alerts")
	alerts.GET("", ac.GetAlerts)
	alerts.POST("/:id/read", ac.MarkRead)
}
