package service

import (
	"career_advisor_backend/internal/config"
	"career_advisor_backend/internal/model"
	"career_advisor_backend/pkg/database"
	"strings"
	"testing"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.InitDB(&config.DatabaseConfig{
		Driver: "sqlite",
		Path:   "file:" + name + "?mode=memory&cache=shared",
	}, false)
	if err != nil {
		t.Fatalf("init db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func career(id uint, title string, required ...string) model.CareerPath {
	return model.CareerPath{
		BaseModel:       model.BaseModel{ID: id},
		Title:           title,
		Industry:        "Technology",
		GrowthPotential: model.GrowthHigh,
		RequiredSkills:  datatypes.NewJSONSlice(required),
	}
}

func profile(skills ...string) *model.User {
	return &model.User{
		BaseModel:      model.BaseModel{ID: 1},
		Name:           "Asha",
		Email:          "asha@example.com",
		EducationLevel: "Undergraduate",
		Interests:      datatypes.NewJSONSlice([]string{"Technology"}),
		CurrentSkills:  datatypes.NewJSONSlice(skills),
	}
}
