package repository

import (
	"career_advisor_backend/internal/model"
	"errors"

	"gorm.io/gorm"
)

type SocialIdentityRepository struct {
	DB *gorm.DB
}

func NewSocialIdentityRepository(db *gorm.DB) *SocialIdentityRepository {
	return &SocialIdentityRepository{DB: db}
}

func (r *SocialIdentityRepository) FindByID(id uint) (*model.SocialIdentity, error) {
	var identity model.SocialIdentity
	err := r.DB.First(&identity, id).Error
	return &identity, err
}

// Upsert 按 (provider, subject) 新建或刷新身份信息，返回是否为新用户
func (r *SocialIdentityRepository) Upsert(identity *model.SocialIdentity) (bool, error) {
	isNew := false
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var existing model.SocialIdentity
		err := tx.Where("provider = ? AND subject = ?", identity.Provider, identity.Subject).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			isNew = true
			return tx.Create(identity).Error
		}
		if err != nil {
			return err
		}

		existing.LastLogin = identity.LastLogin
		existing.Picture = identity.Picture
		if identity.Email != "" {
			existing.Email = identity.Email
		}
		if identity.Name != "" {
			existing.Name = identity.Name
		}
		if existing.UserID == nil {
			existing.UserID = identity.UserID
		}
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		*identity = existing
		return nil
	})
	return isNew, err
}
