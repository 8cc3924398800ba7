package entity

import (
	"strings"
	"time"
)

type UserType string

const (
	UserTypeRecorder UserType = "RECORDER"
	UserTypeManager  UserType = "MANAGER"
	UserTypeDoctor   UserType = "DOCTOR"
)

func (t UserType) IsValid() bool {
	switch t {
	case UserTypeRecorder, UserTypeManager, UserTypeDoctor:
		return true
	}
	return false
}

// User is a staff member. Only doctors perform services.
type User struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName     string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName      string    `gorm:"type:varchar(100);not null" json:"last_name"`
	MiddleName    string    `gorm:"type:varchar(100)" json:"middle_name,omitempty"`
	Email         string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash  string    `gorm:"type:varchar(255);not null" json:"-"`
	UserType      UserType  `gorm:"type:varchar(20);not null;index" json:"user_type"`
	Qualification string    `gorm:"type:varchar(255)" json:"qualification,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Services []Service `gorm:"many2many:user_services;" json:"services,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsDoctor() bool {
	return u.UserType == UserTypeDoctor
}

func (u *User) FullName() string {
	return strings.TrimSpace(strings.Join([]string{u.LastName, u.FirstName, u.MiddleName}, " "))
}

// DisplayName is the doctor's name followed by the qualification, when there is one.
func (u *User) DisplayName() string {
	if u.Qualification == "" {
		return u.FullName()
	}
	return u.FullName() + " (" + u.Qualification + ")"
}
