package model

import (
	"gorm.io/datatypes"
)

// User 学生档案：兴趣与当前技能均为名称集合，按 Skill.Name 精确匹配
// swagger:model User
type User struct {
	BaseModel
	Name           string                      `gorm:"size:100;not null" json:"name"`
	Email          string                      `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Age            *int                        `json:"age,omitempty"`
	EducationLevel string                      `gorm:"size:100" json:"education_level"`
	Interests      datatypes.JSONSlice[string] `json:"interests"`
	CurrentSkills  datatypes.JSONSlice[string] `json:"current_skills"`
}

func (User) TableName() string {
	return "users"
}
