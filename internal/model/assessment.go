package model

import (
	"gorm.io/datatypes"
)

const AssessmentTypeCareerMatch = "career_match"

// Assessment 一次测评的快照，只写不读（审计用）
// swagger:model Assessment
type Assessment struct {
	UUIDBase
	UserID          uint           `gorm:"index;not null" json:"user_id"`
	AssessmentType  string         `gorm:"size:50;not null" json:"assessment_type"`
	Results         datatypes.JSON `json:"results"`
	Recommendations datatypes.JSON `json:"recommendations"`
}

func (Assessment) TableName() string {
	return "assessments"
}

// Recommendation 测评排名前几的职业逐条记录
// swagger:model Recommendation
type Recommendation struct {
	BaseModel
	AssessmentID string                      `gorm:"index;type:varchar(36)" json:"assessment_id"`
	UserID       uint                        `gorm:"index;not null" json:"user_id"`
	CareerPathID uint                        `gorm:"index;not null" json:"career_path_id"`
	MatchScore   float64                     `json:"match_score"`
	Reasoning    string                      `gorm:"type:text" json:"reasoning"`
	SkillGaps    datatypes.JSONSlice[string] `json:"skill_gaps"`
}

func (Recommendation) TableName() string {
	return "recommendations"
}
