package service

import (
	"career_advisor_backend/internal/model"
	"career_advisor_backend/internal/repository"
	"career_advisor_backend/internal/util"
	"errors"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RegisterRequest 注册学生档案
// swagger:model RegisterRequest
type RegisterRequest struct {
	Name           string   `json:"name" binding:"required"`
	Email          string   `json:"email" binding:"required,email"`
	Age            *int     `json:"age"`
	EducationLevel string   `json:"education_level"`
	Interests      []string `json:"interests"`
	CurrentSkills  []string `json:"current_skills"`
}

// UserService 学生档案的注册、查询与技能维护
type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{
		UserRepo: userRepo,
	}
}

// Register 创建档案，邮箱重复返回 ErrEmailRegistered
func (s *UserService) Register(req RegisterRequest) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)
	if name == "" || email == "" {
		return nil, util.ErrNameRequired
	}

	_, err := s.UserRepo.FindByEmail(email)
	if err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := &model.User{
		Name:           name,
		Email:          email,
		Age:            req.Age,
		EducationLevel: strings.TrimSpace(req.EducationLevel),
		Interests:      datatypes.NewJSONSlice(util.NormalizeNames(req.Interests)),
		CurrentSkills:  datatypes.NewJSONSlice(util.NormalizeNames(req.CurrentSkills)),
	}
	if err := s.UserRepo.Create(user); err != nil {
		// 并发注册时由唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrEmailRegistered
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetProfile(id uint) (*model.User, error) {
	if id == 0 {
		return nil, util.ErrUserIDRequired
	}
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// FindByEmail 未找到时返回 nil, nil
func (s *UserService) FindByEmail(email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, nil
	}
	user, err := s.UserRepo.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateSkills 整体替换当前技能集合
func (s *UserService) UpdateSkills(id uint, skills []string) (*model.User, error) {
	if id == 0 {
		return nil, util.ErrUserIDRequired
	}
	if err := s.UserRepo.UpdateSkills(id, util.NormalizeNames(skills)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return s.GetProfile(id)
}
