package model

// Project groups the bugs of one client application. Its id is chosen by the
// administrator who registers it.
type Project struct {
	ID   string `gorm:"type:varchar(20);primaryKey" json:"id"`
	Name string `gorm:"type:varchar(150);not null" json:"name"`

	// Project <-> Bug
	Bugs []Bug `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Project) TableName() string { return "projects" }

const (
	ProjectIDMaxLen   = 20
	ProjectNameMaxLen = 150
)
