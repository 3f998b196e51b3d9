package repository

import (
	"career_advisor_backend/internal/model"
	"context"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

// SaveResults 快照与推荐记录在同一事务内写入，避免只留下部分审计记录
func (r *AssessmentRepository) SaveResults(ctx context.Context, assessment *model.Assessment, recs []model.Recommendation) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(assessment).Error; err != nil {
			return err
		}
		if len(recs) == 0 {
			return nil
		}
		for i := range recs {
			recs[i].AssessmentID = assessment.ID
		}
		return tx.Create(&recs).Error
	})
}

func (r *AssessmentRepository) CountByUser(userID uint) (int64, error) {
	var total int64
	err := r.DB.Model(&model.Assessment{}).Where("user_id = ?", userID).Count(&total).Error
	return total, err
}

func (r *AssessmentRepository) ListRecommendationsByAssessment(assessmentID string) ([]model.Recommendation, error) {
	var recs []model.Recommendation
	err := r.DB.Where("assessment_id = ?", assessmentID).Order("match_score desc, career_path_id asc").Find(&recs).Error
	return recs, err
}
