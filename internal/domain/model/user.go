package model

import "time"

type Role string

const (
	RoleClient Role = "client"
	RoleAdmin  Role = "admin"
)

// User is the local mirror of an identity from the external auth provider.
type User struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	FirebaseUID string    `gorm:"column:firebase_uid;type:varchar(128);uniqueIndex;not null" json:"firebaseUid"`
	Email       string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Role        Role      `gorm:"type:varchar(20);not null;default:'client'" json:"role"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
