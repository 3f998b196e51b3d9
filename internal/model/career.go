package model

import (
	"gorm.io/datatypes"
)

type GrowthPotential string

const (
	GrowthLow      GrowthPotential = "Low"
	GrowthModerate GrowthPotential = "Moderate"
	GrowthHigh     GrowthPotential = "High"
	GrowthVeryHigh GrowthPotential = "Very High"
)

// CareerPath 目录中的职业，加载后只读。RequiredSkills 保持声明顺序
// swagger:model CareerPath
type CareerPath struct {
	BaseModel
	Title                 string                      `gorm:"size:255;uniqueIndex;not null" json:"title"`
	Description           string                      `gorm:"type:text" json:"description"`
	Industry              string                      `gorm:"size:255" json:"industry"`
	AverageSalaryMin      int                         `json:"average_salary_min"`
	AverageSalaryMax      int                         `json:"average_salary_max"`
	AverageSalaryRange    string                      `gorm:"size:100" json:"average_salary_range"`
	GrowthPotential       GrowthPotential             `gorm:"size:20" json:"growth_potential"`
	RequiredSkills        datatypes.JSONSlice[string] `json:"required_skills"`
	EducationRequirements string                      `gorm:"type:text" json:"education_requirements"`
	JobOutlook            string                      `gorm:"type:text" json:"job_outlook"`
}

func (CareerPath) TableName() string {
	return "career_paths"
}

func (g GrowthPotential) Valid() bool {
	switch g {
	case GrowthLow, GrowthModerate, GrowthHigh, GrowthVeryHigh:
		return true
	}
	return false
}
