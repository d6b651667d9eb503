package users

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
	RoleTourist  Role = "tourist"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusPending   Status = "pending"
	StatusSuspended Status = "suspended"
	StatusInactive  Status = "inactive"
)

type User struct {
	ID               uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	Name             string    `json:"name" gorm:"not null"`
	Email            string    `json:"email" gorm:"uniqueIndex;not null"`
	Password         string    `json:"-" gorm:"not null"` // hide in json
	Phone            string    `json:"phone" gorm:"size:20"`
	Role             Role      `json:"role" gorm:"type:varchar(20);not null;default:'tourist'"`
	Status           Status    `json:"status" gorm:"type:varchar(20);not null;default:'active'"`
	ProfileImage     string    `json:"profile_image,omitempty" gorm:"size:255"`
	Address          string    `json:"address,omitempty" gorm:"type:text"`
	EmergencyContact string    `json:"emergency_contact,omitempty" gorm:"size:255"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	// Operator-only profile fields; zero-valued for other roles.
	CompanyName        string     `json:"company_name,omitempty" gorm:"size:255"`
	CompanyLogo        string     `json:"company_logo,omitempty" gorm:"size:255"`
	CompanyDescription string     `json:"company_description,omitempty" gorm:"type:text"`
	Website            string     `json:"website,omitempty" gorm:"size:255"`
	VerifiedAt         *time.Time `json:"verified_at,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func IsValidRole(role string) bool {
	switch role {
	case string(RoleAdmin), string(RoleOperator), string(RoleTourist):
		return true
	default:
		return false
	}
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsOperator() bool {
	return u.Role == RoleOperator
}

// CanLogin reports whether the account may authenticate. Pending operators
// wait for admin approval; suspended and inactive accounts are locked out.
func (u *User) CanLogin() bool {
	return u.Status == StatusActive
}
