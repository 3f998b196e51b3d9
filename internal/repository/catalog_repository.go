package repository

import (
	"career_advisor_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogRepository 职业与技能目录的读取和种子写入
type CatalogRepository struct {
	DB *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

// ListCareers 按 id 升序返回全部职业，即目录声明顺序
func (r *CatalogRepository) ListCareers() ([]model.CareerPath, error) {
	var careers []model.CareerPath
	err := r.DB.Order("id asc").Find(&careers).Error
	return careers, err
}

func (r *CatalogRepository) FindCareerByID(id uint) (*model.CareerPath, error) {
	var career model.CareerPath
	err := r.DB.First(&career, id).Error
	return &career, err
}

func (r *CatalogRepository) ListSkills() ([]model.Skill, error) {
	var skills []model.Skill
	err := r.DB.Order("id asc").Find(&skills).Error
	return skills, err
}

func (r *CatalogRepository) FindSkillsByNames(names []string) ([]model.Skill, error) {
	var skills []model.Skill
	if len(names) == 0 {
		return skills, nil
	}
	err := r.DB.Where("name IN ?", names).Find(&skills).Error
	return skills, err
}

// UpsertCatalog 在一个事务中按 title / name 写入种子目录
func (r *CatalogRepository) UpsertCatalog(careers []model.CareerPath, skills []model.Skill) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for i := range skills {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "name"}},
				DoUpdates: clause.AssignmentColumns([]string{"category", "difficulty_level", "learning_resources", "updated_at"}),
			}).Create(&skills[i]).Error; err != nil {
				return err
			}
		}
		for i := range careers {
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "title"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"description", "industry", "average_salary_min", "average_salary_max",
					"average_salary_range", "growth_potential", "required_skills",
					"education_requirements", "job_outlook", "updated_at",
				}),
			}).Create(&careers[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
