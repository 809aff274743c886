package services

import (
	"context"
	"time"

	"backend/analysis"
	"backend/models"

	"gorm.io/gorm"
)

// AnalyticsService loads an immutable snapshot of a user's notes and
// runs the correlation engine over it. Scores are never stored; every
// call recomputes from the current data.
type AnalyticsService struct{ db *gorm.DB }

func NewAnalyticsService(db *gorm.DB) *AnalyticsService { return &AnalyticsService{db: db} }

func (s *AnalyticsService) snapshot(ctx context.Context, userID uint) ([]analysis.MealEvent, []analysis.SymptomEvent, error) {
	var mealNotes []models.MealNote
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("ate_at ASC, id ASC").
		Find(&mealNotes).Error; err != nil {
		return nil, nil, err
	}

	var symptomNotes []models.SymptomNote
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("noticed_at ASC, id ASC").
		Find(&symptomNotes).Error; err != nil {
		return nil, nil, err
	}

	meals := make([]analysis.MealEvent, 0, len(mealNotes))
	for _, n := range mealNotes {
		meals = append(meals, analysis.MealEvent{
			ID:          n.PublicID,
			At:          n.AteAt,
			Ingredients: analysis.Tokenize(n.Ingredients),
		})
	}
	symptoms := make([]analysis.SymptomEvent, 0, len(symptomNotes))
	for _, n := range symptomNotes {
		symptoms = append(symptoms, analysis.SymptomEvent{
			ID:          n.PublicID,
			At:          n.NoticedAt,
			Description: analysis.Tokenize(n.Description),
			Critical:    n.Critical,
		})
	}
	return meals, symptoms, nil
}

// IngredientProfiles returns the full historical rollup, ranked.
func (s *AnalyticsService) IngredientProfiles(ctx context.Context, userID uint) ([]analysis.IngredientProfile, error) {
	meals, symptoms, err := s.snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	return analysis.HistoricalProfiles(meals, symptoms), nil
}

// TopProblematic returns the n most suspicious ingredients.
func (s *AnalyticsService) TopProblematic(ctx context.Context, userID uint, n int) ([]analysis.IngredientProfile, error) {
	profiles, err := s.IngredientProfiles(ctx, userID)
	if err != nil {
		return nil, err
	}
	return analysis.TopProblematic(profiles, n), nil
}

// PotentiallySafe returns the ingredients never followed by symptoms.
func (s *AnalyticsService) PotentiallySafe(ctx context.Context, userID uint) ([]analysis.IngredientProfile, error) {
	profiles, err := s.IngredientProfiles(ctx, userID)
	if err != nil {
		return nil, err
	}
	return analysis.PotentiallySafe(profiles), nil
}

// SymptomWindow scores every ingredient eaten in the lookback window
// before one selected symptom. An unknown symptom id yields an empty
// result (the engine's "no data" semantics), not an error.
func (s *AnalyticsService) SymptomWindow(ctx context.Context, userID uint, symptomID string, hours int) ([]analysis.WindowResult, error) {
	meals, symptoms, err := s.snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	window := time.Duration(hours) * time.Hour
	return analysis.AnalyzeSymptomWindow(meals, symptoms, symptomID, window), nil
}
