package model

import "time"

// OS values accepted on an occasion; nil means not specified.
const (
	OSAndroid = "android"
	OSWindows = "win"
	OSLinux   = "linux"
)

// OSChoices is the closed set of operating systems, in display order.
var OSChoices = []string{OSAndroid, OSWindows, OSLinux}

func ValidOS(os string) bool {
	for _, c := range OSChoices {
		if c == os {
			return true
		}
	}
	return false
}

// Occasion is one observed report of a bug.
type Occasion struct {
	ID    int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	BugID int64 `gorm:"not null;index" json:"bug"`

	CreatedAt time.Time `gorm:"column:ts_add;autoCreateTime;not null;index" json:"ts_add"`

	Email   *string `gorm:"type:varchar(254)" json:"email"`
	IP      *string `gorm:"type:varchar(45)" json:"ip"`
	OS      *string `gorm:"type:varchar(10)" json:"os"`
	Details *string `gorm:"type:text" json:"details"`

	// Occasion <-> Bug
	Bug *Bug `gorm:"foreignKey:BugID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Occasion) TableName() string { return "occasions" }
