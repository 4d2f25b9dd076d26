package models

import "time"

type Group struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;size:64"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Student struct {
	ID        uint `gorm:"primaryKey"`
	FirstName string
	LastName  string
	GroupID   uint  `gorm:"index"`
	ChatID    int64 `gorm:"uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

const (
	RepRolePrimary = "primary"
	RepRoleDeputy  = "deputy"
)

// Representative delegates roster review for one group. A group has at most
// one primary and one deputy; a chat holds at most one group per role.
type Representative struct {
	ID        uint   `gorm:"primaryKey"`
	ChatID    int64  `gorm:"uniqueIndex:uq_rep_chat_role"`
	GroupID   uint   `gorm:"uniqueIndex:uq_rep_group_role"`
	Role      string `gorm:"uniqueIndex:uq_rep_chat_role;uniqueIndex:uq_rep_group_role;size:16"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func IsValidRepRole(role string) bool {
	return role == RepRolePrimary || role == RepRoleDeputy
}
