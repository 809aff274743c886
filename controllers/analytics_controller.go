// controllers/analytics_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"backend/analysis"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	Svc *services.AnalyticsService
}

func NewAnalyticsController(svc *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{Svc: svc}
}

func (h *AnalyticsController) GetIngredientProfiles(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	profiles, err := h.Svc.IngredientProfiles(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": profiles})
}

func (h *AnalyticsController) GetTopProblematic(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}

	top, err := h.Svc.TopProblematic(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": top})
}

func (h *AnalyticsController) GetPotentiallySafe(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	safe, err := h.Svc.PotentiallySafe(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": safe})
}

func (h *AnalyticsController) GetSymptomWindow(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	hours, err := strconv.Atoi(c.DefaultQuery("hours", "6"))
	if err != nil || hours <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "hours must be a positive integer"})
		return
	}

	results, err := h.Svc.SymptomWindow(c.Request.Context(), userID, c.Param("id"), hours)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// group into the four display buckets
	buckets := map[string]any{
		"potential_triggers": filterBucket(results, analysis.BucketTrigger),
		"safe":               filterBucket(results, analysis.BucketSafe),
		"insufficient_data":  filterBucket(results, analysis.BucketInsufficient),
		"new_ingredients":    filterBucket(results, analysis.BucketNew),
	}
	c.JSON(http.StatusOK, gin.H{"symptom_id": c.Param("id"), "hours": hours, "buckets": buckets})
}

// --- helpers ---

func filterBucket(results []analysis.WindowResult, bucket analysis.WindowBucket) []analysis.WindowResult {
	out := make([]analysis.WindowResult, 0)
	for _, r := range results {
		if r.Bucket == bucket {
			out = append(out, r)
		}
	}
	return out
}

func userIDFromCtx(c *gin.Context) (uint, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return 0, false
	}
	switch id := v.(type) {
	case uint:
		return id, true
	case int:
		return uint(id), true
	case int64:
		return uint(id), true
	default:
		return 0, false
	}
}
