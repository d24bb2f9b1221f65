package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/pawsitivecheck/backend/services/common/errors"
	"github.com/pawsitivecheck/backend/services/pet-service/models"
	"github.com/pawsitivecheck/backend/services/pet-service/services"
)

type PetController struct {
	petService services.PetService
}

func NewPetController(svc services.PetService) *PetController {
	return &PetController{petService: svc}
}

// GetPets handles GET /pets
func (pc *PetController) GetPets(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}
	pets, err := pc.petService.List(ctx.Request.Context(), owner)
	if err != nil {
		apperrors.Abort(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"pets": pets})
}

// GetPet handles GET /pets/:id
func (pc *PetController) GetPet(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}
	pet, err := pc.petService.Get(ctx.Request.Context(), id, owner)
	if err != nil {
		apperrors.Abort(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, pet)
}

// CreatePet handles POST /pets
func (pc *PetController) CreatePet(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}
	var req models.CreatePetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	pet, err := pc.petService.Create(ctx.Request.Context(), owner, &req)
	if err != nil {
		apperrors.Abort(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, pet)
}

// UpdatePet handles PUT /pets/:id
func (pc *PetController) UpdatePet(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}
	var req models.UpdatePetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	pet, err := pc.petService.Update(ctx.Request.Context(), id, owner, &req)
	if err != nil {
		apperrors.Abort(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, pet)
}

// DeletePet handles DELETE /pets/:id
func (pc *PetController) DeletePet(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := pc.petService.Delete(ctx.Request.Context(), id, owner); err != nil {
		apperrors.Abort(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// GetSavedProducts handles GET /pets/:id/saved-products
func (pc *PetController) GetSavedProducts(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}
	saved, err := pc.petService.ListSaved(ctx.Request.Context(), id, owner)
	if err != nil {
		apperrors.Abort(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"saved_products": saved})
}

// SaveProduct handles POST /pets/:id/saved-products
func (pc *PetController) SaveProduct(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}
	var req models.SaveProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	saved, err := pc.petService.SaveProduct(ctx.Request.Context(), id, owner, &req)
	if err != nil {
		apperrors.Abort(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, saved)
}

// RemoveSavedProduct handles DELETE /pets/:id/saved-products/:savedId
func (pc *PetController) RemoveSavedProduct(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}
	savedID, ok := parseUUIDParam(ctx, "savedId")
	if !ok {
		return
	}
	if err := pc.petService.RemoveSaved(ctx.Request.Context(), id, savedID, owner); err != nil {
		apperrors.Abort(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
