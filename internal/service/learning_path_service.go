package service

import (
	"career_advisor_backend/internal/repository"
	"career_advisor_backend/internal/util"
	"career_advisor_backend/pkg/monitoring"
	"context"
	"errors"

	"gorm.io/gorm"
)

type LearningPathService struct {
	CatalogRepo *repository.CatalogRepository
	UserRepo    *repository.UserRepository
}

func NewLearningPathService(
	catalogRepo *repository.CatalogRepository,
	userRepo *repository.UserRepository,
) *LearningPathService {
	return &LearningPathService{
		CatalogRepo: catalogRepo,
		UserRepo:    userRepo,
	}
}

// Generate 为职业生成学习路径。userID 为 0 时按空技能集处理
func (s *LearningPathService) Generate(ctx context.Context, careerID, userID uint) (*LearningPath, error) {
	if careerID == 0 {
		return nil, util.ErrCareerIDRequired
	}

	career, err := s.CatalogRepo.FindCareerByID(careerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCareerNotFound
		}
		return nil, err
	}

	var current []string
	if userID != 0 {
		user, err := s.UserRepo.FindByID(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrUserNotFound
			}
			return nil, err
		}
		current = user.CurrentSkills
	}

	skills, err := s.CatalogRepo.FindSkillsByNames(career.RequiredSkills)
	if err != nil {
		return nil, err
	}

	path := BuildLearningPath(career, current, IndexSkills(skills))
	monitoring.LearningPathCounter.Inc()
	return &path, nil
}
