package model

import (
	"time"
)

const (
	ProviderGoogle   = "google"
	ProviderLinkedIn = "linkedin"
)

// SocialIdentity 第三方登录身份，(provider, subject) 唯一
// swagger:model SocialIdentity
type SocialIdentity struct {
	BaseModel
	Provider  string    `gorm:"size:20;not null;uniqueIndex:idx_provider_subject" json:"provider"`
	Subject   string    `gorm:"size:255;not null;uniqueIndex:idx_provider_subject" json:"subject"`
	Email     string    `gorm:"size:100;index" json:"email"`
	Name      string    `gorm:"size:100" json:"name"`
	Picture   string    `gorm:"size:512" json:"picture"`
	UserID    *uint     `gorm:"index" json:"user_id,omitempty"`
	LastLogin time.Time `json:"last_login"`
}

func (SocialIdentity) TableName() string {
	return "social_identities"
}

// Key 返回 provider_subject 形式的唯一键，例如 google_1234
func (s *SocialIdentity) Key() string {
	return s.Provider + "_" + s.Subject
}
