package models

import (
    "time"

    "github.com/google/uuid"
    "gorm.io/gorm"
)

// MealNote is one logged meal. Ingredients stays raw free text
// ("cow milk, rye bread"); tokenization happens at analysis time.
type MealNote struct {
    gorm.Model
    PublicID    string    `gorm:"type:varchar(36);uniqueIndex;not null" json:"public_id"`
    UserID      uint      `json:"-"`
    AteAt       time.Time `json:"ate_at"`
    Ingredients string    `json:"ingredients"`
}

func (m *MealNote) BeforeCreate(tx *gorm.DB) error {
    if m.PublicID == "" {
        m.PublicID = uuid.NewString()
    }
    return nil
}

// SymptomNote is one logged discomfort event. Critical marks the
// major/minor severity flag.
type SymptomNote struct {
    gorm.Model
    PublicID    string    `gorm:"type:varchar(36);uniqueIndex;not null" json:"public_id"`
    UserID      uint      `json:"-"`
    NoticedAt   time.Time `json:"noticed_at"`
    Description string    `json:"description"`
    Critical    bool      `json:"critical"`
}

func (s *SymptomNote) BeforeCreate(tx *gorm.DB) error {
    if s.PublicID == "" {
        s.PublicID = uuid.NewString()
    }
    return nil
}
