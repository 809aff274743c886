// services/note_service.go
package services

import (
	"time"

	"backend/config"
	"backend/models"
)

type NoteService struct{}

func NewNoteService() *NoteService { return &NoteService{} }

// ---------- meal notes ----------

func (s *NoteService) AddMeal(userID uint, ateAt time.Time, ingredients string) (*models.MealNote, error) {
	note := &models.MealNote{UserID: userID, AteAt: ateAt, Ingredients: ingredients}
	if err := config.DB.Create(note).Error; err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) ListMeals(userID uint) ([]models.MealNote, error) {
	var notes []models.MealNote
	err := config.DB.
		Where("user_id = ?", userID).
		Order("ate_at DESC").
		Find(&notes).Error
	return notes, err
}

func (s *NoteService) GetMeal(userID uint, publicID string) (*models.MealNote, error) {
	var note models.MealNote
	err := config.DB.
		Where("public_id = ? AND user_id = ?", publicID, userID).
		First(&note).Error
	if err != nil {
		return nil, err // could be ErrRecordNotFound
	}
	return &note, nil
}

func (s *NoteService) UpdateMeal(userID uint, publicID string, ateAt time.Time, ingredients string) (*models.MealNote, error) {
	note, err := s.GetMeal(userID, publicID)
	if err != nil {
		return nil, err
	}
	note.AteAt = ateAt
	note.Ingredients = ingredients
	if err := config.DB.Save(note).Error; err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) DeleteMeal(userID uint, publicID string) error {
	return config.DB.
		Where("public_id = ? AND user_id = ?", publicID, userID).
		Delete(&models.MealNote{}).Error
}

// ---------- symptom notes ----------

func (s *NoteService) AddSymptom(userID uint, noticedAt time.Time, description string, critical bool) (*models.SymptomNote, error) {
	note := &models.SymptomNote{UserID: userID, NoticedAt: noticedAt, Description: description, Critical: critical}
	if err := config.DB.Create(note).Error; err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) ListSymptoms(userID uint) ([]models.SymptomNote, error) {
	var notes []models.SymptomNote
	err := config.DB.
		Where("user_id = ?", userID).
		Order("noticed_at DESC").
		Find(&notes).Error
	return notes, err
}

func (s *NoteService) GetSymptom(userID uint, publicID string) (*models.SymptomNote, error) {
	var note models.SymptomNote
	err := config.DB.
		Where("public_id = ? AND user_id = ?", publicID, userID).
		First(&note).Error
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (s *NoteService) UpdateSymptom(userID uint, publicID string, noticedAt time.Time, description string, critical bool) (*models.SymptomNote, error) {
	note, err := s.GetSymptom(userID, publicID)
	if err != nil {
		return nil, err
	}
	note.NoticedAt = noticedAt
	note.Description = description
	note.Critical = critical
	if err := config.DB.Save(note).Error; err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) DeleteSymptom(userID uint, publicID string) error {
	return config.DB.
		Where("public_id = ? AND user_id = ?", publicID, userID).
		Delete(&models.SymptomNote{}).Error
}
