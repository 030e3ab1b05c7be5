package repo

import (
	"context"

	"gorm.io/gorm"
)

// ReportRow is one flattened project × bug × occasion row. Projects without
// bugs, and bugs without occasions, yield rows with the missing side nil.
type ReportRow struct {
	ProjectID     string  `json:"project_id"`
	ExceptionText *string `json:"exception_text"`
	Email         *string `json:"email"`
	IP            *string `json:"ip"`
	OS            *string `json:"os"`
	Details       *string `json:"details"`
}

type ReportRepo interface {
	List(ctx context.Context, limit, offset int) ([]ReportRow, error)
}

type reportRepo struct{ db *gorm.DB }

func NewReportRepo(db *gorm.DB) ReportRepo {
	return &reportRepo{db: db}
}

func (r *reportRepo) List(ctx context.Context, limit, offset int) ([]ReportRow, error) {
	q := conn(ctx, r.db).
		Table("projects").
		Select("projects.id AS project_id, bugs.exception_text, occasions.email, occasions.ip, occasions.os, occasions.details").
		Joins("LEFT JOIN bugs ON bugs.project_id = projects.id").
		Joins("LEFT JOIN occasions ON occasions.bug_id = bugs.id").
		Order("projects.id ASC, bugs.ts_add ASC, bugs.id ASC, occasions.ts_add DESC, occasions.id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}

	var rows []ReportRow
	return rows, q.Scan(&rows).Error
}
