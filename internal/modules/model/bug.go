package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/vpvn/bugreports/internal/pkg/bugid"
)

// Bug is the deduplicated record of one exception text within a project.
type Bug struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectID string    `gorm:"type:varchar(20);not null;index" json:"project"`
	BugUUID   uuid.UUID `gorm:"column:bug_uuid;type:uuid;not null;uniqueIndex:ux_bugs_bug_uuid" json:"buguuid"`

	ExceptionText string `gorm:"type:text;not null" json:"exception_text"`
	Description   string `gorm:"type:text;not null;default:''" json:"description"`
	DiscussionURL string `gorm:"column:discussian_url;type:varchar(200);not null;default:''" json:"discussian_url"`

	CreatedAt time.Time `gorm:"column:ts_add;autoCreateTime;not null" json:"ts_add"`

	// Bug <-> Project
	Project *Project `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// Bug <-> Occasion
	Occasions []Occasion `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Bug) TableName() string { return "bugs" }

// NewBug builds an unsaved bug with its deduplication identifier already set.
func NewBug(projectID, exceptionText string) *Bug {
	return &Bug{
		ProjectID:     projectID,
		ExceptionText: exceptionText,
		BugUUID:       bugid.New(projectID, exceptionText),
	}
}

// Rehash recomputes BugUUID after ProjectID or ExceptionText changed.
func (b *Bug) Rehash() {
	b.BugUUID = bugid.New(b.ProjectID, b.ExceptionText)
}
