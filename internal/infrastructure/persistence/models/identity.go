package models

import (
	"github.com/zona2/backend/internal/domain/identity"
)

// RunnerModel is the persistence model for the Runner domain entity.
type RunnerModel struct {
	BaseModel
	Phone          string  `gorm:"type:varchar(20);not null;uniqueIndex:idx_runners_phone"`
	Nickname       string  `gorm:"type:varchar(100);not null"`
	PasswordHash   string  `gorm:"type:varchar(200);not null"`
	ReferredBy     string  `gorm:"type:varchar(64);index:idx_runners_referred_by"`
	AvatarKey      *string `gorm:"type:varchar(500)"`
	LifetimePoints int64   `gorm:"not null;default:0"`
	MonthPoints    int64   `gorm:"not null;default:0"`
	Balance        int64   `gorm:"not null;default:0"`
	Active         bool    `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (RunnerModel) TableName() string {
	return "runners"
}

// ToDomain converts the persistence model to a domain Runner entity.
func (m *RunnerModel) ToDomain() *identity.Runner {
	return &identity.Runner{
		BaseEntity:     m.BaseModel.ToDomain(),
		Phone:          m.Phone,
		Nickname:       m.Nickname,
		PasswordHash:   m.PasswordHash,
		ReferredBy:     m.ReferredBy,
		AvatarKey:      m.AvatarKey,
		LifetimePoints: m.LifetimePoints,
		MonthPoints:    m.MonthPoints,
		Balance:        m.Balance,
		Active:         m.Active,
	}
}

// FromDomain populates the persistence model from a domain Runner entity.
func (m *RunnerModel) FromDomain(r *identity.Runner) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.Phone = r.Phone
	m.Nickname = r.Nickname
	m.PasswordHash = r.PasswordHash
	m.ReferredBy = r.ReferredBy
	m.AvatarKey = r.AvatarKey
	m.LifetimePoints = r.LifetimePoints
	m.MonthPoints = r.MonthPoints
	m.Balance = r.Balance
	m.Active = r.Active
}

// RunnerModelFromDomain creates a new persistence model from a domain Runner entity.
func RunnerModelFromDomain(r *identity.Runner) *RunnerModel {
	m := &RunnerModel{}
	m.FromDomain(r)
	return m
}
