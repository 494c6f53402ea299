// controllers/report_controller.go
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"backend/services"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	Svc *services.ReportService
}

func NewReportController(svc *services.ReportService) *ReportController {
	return &ReportController{Svc: svc}
}

type GenerateReportInput struct {
	ChildID    uint   `json:"child_id" binding:"required"`
	ReportType string `json:"report_type" binding:"required"`
	StartDate  string `json:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate    string `json:"end_date" binding:"required"`
}

func (h *ReportController) Generate(c *gin.Context) {
	uid, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var in GenerateReportInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	loc := time.Now().Location()
	start, err := time.ParseInLocation("2006-01-02", in.StartDate, loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date"})
		return
	}
	end, err := time.ParseInLocation("2006-01-02", in.EndDate, loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date"})
		return
	}
	// range is [start, end] inclusive of the whole end day
	end = time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), loc)

	report, err := h.Svc.Generate(uid, in.ChildID, in.ReportType, start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"report": report})
}

func (h *ReportController) List(c *gin.Context) {
	uid, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	childID, err := strconv.ParseUint(c.Query("childId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "childId query param required"})
		return
	}

	reports, err := h.Svc.List(uid, uint(childID), c.Query("type"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

func (h *ReportController) Get(c *gin.Context) {
	uid, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	report, err := h.Svc.Get(uid, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": report})
}

func (h *ReportController) Delete(c *gin.Context) {
	uid, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
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
