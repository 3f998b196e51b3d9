package service

import (
	"career_advisor_backend/internal/model"
	"career_advisor_backend/internal/repository"
	"career_advisor_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

// CatalogService 职业与技能目录的只读查询
type CatalogService struct {
	Repo *repository.CatalogRepository
}

func NewCatalogService(repo *repository.CatalogRepository) *CatalogService {
	return &CatalogService{Repo: repo}
}

func (s *CatalogService) ListCareers() ([]model.CareerPath, error) {
	return s.Repo.ListCareers()
}

func (s *CatalogService) GetCareer(id uint) (*model.CareerPath, error) {
	if id == 0 {
		return nil, util.ErrCareerIDRequired
	}
	career, err := s.Repo.FindCareerByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCareerNotFound
		}
		return nil, err
	}
	return career, nil
}

func (s *CatalogService) ListSkills() ([]model.Skill, error) {
	return s.Repo.ListSkills()
}
