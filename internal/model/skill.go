package model

import (
	"gorm.io/datatypes"
)

type DifficultyLevel string

const (
	DifficultyBeginner     DifficultyLevel = "Beginner"
	DifficultyIntermediate DifficultyLevel = "Intermediate"
	DifficultyAdvanced     DifficultyLevel = "Advanced"
)

// swagger:model Skill
type Skill struct {
	BaseModel
	Name              string                      `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Category          string                      `gorm:"size:100" json:"category"`
	DifficultyLevel   DifficultyLevel             `gorm:"size:20" json:"difficulty_level"`
	LearningResources datatypes.JSONSlice[string] `json:"learning_resources"`
}

func (Skill) TableName() string {
	return "skills"
}
