package controllers

import (
	"errors"
	"net/http"
	"time"

	"backend/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type NoteController struct {
	Svc *services.NoteService
	RT  *services.RealtimeHub
}

func NewNoteController(svc *services.NoteService, rt *services.RealtimeHub) *NoteController {
	return &NoteController{Svc: svc, RT: rt}
}

type MealNoteInput struct {
	AteAt       time.Time `json:"ate_at" binding:"required"`
	Ingredients string    `json:"ingredients" binding:"required"`
}

type SymptomNoteInput struct {
	NoticedAt   time.Time `json:"noticed_at" binding:"required"`
	Description string    `json:"description" binding:"required"`
	Critical    bool      `json:"critical"`
}

func (h *NoteController) notifyChanged(c *gin.Context, scope string) {
	if h.RT != nil {
		h.RT.NotifyNotesChanged(c.GetUint("userID"), scope)
	}
}

// ---------- meals ----------

func (h *NoteController) LogMeal(c *gin.Context) {
	var input MealNoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note, err := h.Svc.AddMeal(c.GetUint("userID"), input.AteAt, input.Ingredients)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.notifyChanged(c, "meals")
	c.JSON(http.StatusCreated, note)
}

func (h *NoteController) ListMeals(c *gin.Context) {
	notes, err := h.Svc.ListMeals(c.GetUint("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, notes)
}

func (h *NoteController) GetMeal(c *gin.Context) {
	note, err := h.Svc.GetMeal(c.GetUint("userID"), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meal note not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, note)
}

func (h *NoteController) UpdateMeal(c *gin.Context) {
	var input MealNoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note, err := h.Svc.UpdateMeal(c.GetUint("userID"), c.Param("id"), input.AteAt, input.Ingredients)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meal note not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.notifyChanged(c, "meals")
	c.JSON(http.StatusOK, note)
}

func (h *NoteController) DeleteMeal(c *gin.Context) {
	if err := h.Svc.DeleteMeal(c.GetUint("userID"), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.notifyChanged(c, "meals")
	c.JSON(http.StatusOK, gin.H{"message": "meal note deleted"})
}

// ---------- symptoms ----------

func (h *NoteController) LogSymptom(c *gin.Context) {
	var input SymptomNoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note, err := h.Svc.AddSymptom(c.GetUint("userID"), input.NoticedAt, input.Description, input.Critical)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.notifyChanged(c, "symptoms")
	c.JSON(http.StatusCreated, note)
}

func (h *NoteController) ListSymptoms(c *gin.Context) {
	notes, err := h.Svc.ListSymptoms(c.GetUint("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, notes)
}

func (h *NoteController) GetSymptom(c *gin.Context) {
	note, err := h.Svc.GetSymptom(c.GetUint("userID"), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "symptom note not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, note)
}

func (h *NoteController) UpdateSymptom(c *gin.Context) {
	var input SymptomNoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note, err := h.Svc.UpdateSymptom(c.GetUint("userID"), c.Param("id"), input.NoticedAt, input.Description, input.Critical)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "symptom note not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.notifyChanged(c, "symptoms")
	c.JSON(http.StatusOK, note)
}

func (h *NoteController) DeleteSymptom(c *gin.Context) {
	if err := h.Svc.DeleteSymptom(c.GetUint("userID"), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.notifyChanged(c, "symptoms")
	c.JSON(http.StatusOK, gin.H{"message": "symptom note deleted"})
}
