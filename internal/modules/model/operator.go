package model

import "time"

// Operator is an API caller of the guarded endpoints, identified by a bearer
// token. Only admins may manage projects, bugs and occasions.
type Operator struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name    string `gorm:"type:varchar(150);not null;uniqueIndex" json:"name"`
	IsAdmin bool   `gorm:"not null;default:false" json:"is_admin"`

	TokenHMAC    string `gorm:"type:char(64);not null;uniqueIndex" json:"-"`
	TokenHashPHC string `gorm:"type:text;not null" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null" json:"created_at"`
}

func (Operator) TableName() string { return "operators" }
