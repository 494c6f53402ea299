package controllers

import (
	"net/http"

	"backend/services"

	"github.com/gin-gonic/gin"
)

type MealLogController struct {
	Svc    *services.MealLogService
	Photos *services.PhotoService
}

func NewMealLogController(svc *services.MealLogService, photos *services.PhotoService) *MealLogController {
	return &MealLogController{Svc: svc, Photos: photos}
}

func (h *MealLogController) Create(c *gin.Context) {
	uid := c.GetUint("userID")
	childID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var in services.MealLogInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log, err := h.Svc.Create(uid, childID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, log)
}

func (h *MealLogController) ListByChild(c *gin.Context) {
	uid := c.GetUint("userID")
	childID, ok := pathID(c, "id")
	if !ok {
		return
	}

	logs, err := h.Svc.ListByChild(uid, childID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meal_logs": logs})
}

func (h *MealLogController) Get(c *gin.Context) {
	uid := c.GetUint("userID")
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	log, err := h.Svc.Get(uid, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, log)
}

func (h *MealLogController) Update(c *gin.Context) {
	uid := c.GetUint("userID")
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var in services.MealLogInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log, err := h.Svc.Update(uid, id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, log)
}

func (h *MealLogController) Delete(c *gin.Context) {
	uid := c.GetUint("userID")
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.Svc.Delete(uid, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SuggestFood runs Rekognition over a meal photo and returns label hints
// for the food name field.
func (h *MealLogController) SuggestFood(c *gin.Context) {
	var req struct {
		ImageBase64 string `json:"image_base64" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	if h.Photos == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "photo suggestions not available"})
		return
	}

	labels, err := h.Photos.SuggestFoodNames(req.ImageBase64)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": labels})
}
