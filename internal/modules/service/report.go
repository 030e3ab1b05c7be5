package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/vpvn/bugreports/internal/config"
	"github.com/vpvn/bugreports/internal/modules/model"
	"github.com/vpvn/bugreports/internal/modules/repo"
	"github.com/vpvn/bugreports/internal/telemetry"
	"go.uber.org/zap"
)

// MaxReportPageSize caps an explicit limit on the report listing.
const MaxReportPageSize = 1000

// EventPublisher is satisfied by *mq.Publisher.
type EventPublisher interface {
	PublishJSON(ctx context.Context, exchangeName string, routingKey string, body any) error
}

type ReportService interface {
	Submit(ctx context.Context, in SubmitReportInput) (*ReportOutput, error)
	List(ctx context.Context, limit, offset int) ([]repo.ReportRow, error)
}

type reportService struct {
	tx        repo.Transactor
	bugs      BugService
	occasions OccasionService
	reports   repo.ReportRepo
	publisher EventPublisher
	log       *zap.Logger
	cfg       *config.Config
}

// NewReportService wires report intake. publisher may be nil, in which case
// no events are emitted.
func NewReportService(
	tx repo.Transactor,
	bugs BugService,
	occasions OccasionService,
	reports repo.ReportRepo,
	publisher EventPublisher,
	log *zap.Logger,
	cfg *config.Config,
) ReportService {
	return &reportService{
		tx:        tx,
		bugs:      bugs,
		occasions: occasions,
		reports:   reports,
		publisher: publisher,
		log:       log,
		cfg:       cfg,
	}
}

// SubmitReportInput is a crash report as sent by a client. IP is filled in by
// the transport from the connection, never from the body.
type SubmitReportInput struct {
	ProjectID     string  `json:"project_id" validate:"required,notblank,max=20"`
	ExceptionText string  `json:"exception_text" validate:"required,notblank"`
	Email         *string `json:"email" validate:"omitempty,email,max=254"`
	IP            *string `json:"ip" validate:"omitempty,ip"`
	OS            *string `json:"os" validate:"omitempty,oneof=android win linux"`
	Details       *string `json:"details"`
}

// normalize trims the text fields before they are validated and hashed, so
// a trailing newline on a traceback does not open a new bug.
func (in *SubmitReportInput) normalize() {
	in.ProjectID = strings.TrimSpace(in.ProjectID)
	in.ExceptionText = strings.TrimSpace(in.ExceptionText)
	if in.Details != nil {
		d := strings.TrimSpace(*in.Details)
		in.Details = &d
	}
	in.Email = optional(in.Email)
	in.IP = optional(in.IP)
	in.OS = optional(in.OS)
	in.Details = optional(in.Details)
}

type ReportOutput struct {
	ProjectID     string  `json:"project_id"`
	ExceptionText string  `json:"exception_text"`
	Email         *string `json:"email"`
	IP            *string `json:"ip"`
	OS            *string `json:"os"`
	Details       *string `json:"details"`
}

// ReportRecordedEvent is published after every persisted report.
type ReportRecordedEvent struct {
	ProjectID  string    `json:"project_id"`
	BugID      int64     `json:"bug_id"`
	BugUUID    uuid.UUID `json:"bug_uuid"`
	OccasionID int64     `json:"occasion_id"`
	NewBug     bool      `json:"new_bug"`
}

// Submit records a crash report: it resolves (or creates) the bug for the
// project and exception text and always appends a new occasion. Both writes
// commit together or not at all.
func (s *reportService) Submit(ctx context.Context, in SubmitReportInput) (*ReportOutput, error) {
	if in.Email != nil && strings.TrimSpace(*in.Email) == "" {
		telemetry.RecordRejectedReport(ctx, "validation")
		return nil, &ValidationError{Field: "email", Msg: "this field may not be blank"}
	}
	in.normalize()
	if err := validateStruct(in); err != nil {
		telemetry.RecordRejectedReport(ctx, "validation")
		return nil, err
	}

	var (
		bug     *model.Bug
		created bool
		occ     *model.Occasion
	)
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		var err error
		bug, created, err = s.bugs.GetOrCreateBug(ctx, in.ProjectID, in.ExceptionText)
		if err != nil {
			return err
		}
		occ, err = s.occasions.RecordOccasion(ctx, RecordOccasionInput{
			BugID:   bug.ID,
			Email:   in.Email,
			IP:      in.IP,
			OS:      in.OS,
			Details: in.Details,
		})
		return err
	})
	if err != nil {
		var nf *NotFoundError
		var ve *ValidationError
		switch {
		case errors.As(err, &nf):
			telemetry.RecordRejectedReport(ctx, "unknown_project")
		case errors.As(err, &ve):
			telemetry.RecordRejectedReport(ctx, "validation")
		default:
			telemetry.RecordRejectedReport(ctx, "internal")
			err = fmt.Errorf("submit report: %w", err)
		}
		return nil, err
	}

	telemetry.RecordReport(ctx, in.ProjectID, created)
	if created {
		s.log.Info("new bug", zap.String("project", bug.ProjectID), zap.Int64("bug_id", bug.ID), zap.Stringer("bug_uuid", bug.BugUUID))
	}
	s.publish(ctx, ReportRecordedEvent{
		ProjectID:  bug.ProjectID,
		BugID:      bug.ID,
		BugUUID:    bug.BugUUID,
		OccasionID: occ.ID,
		NewBug:     created,
	})

	return &ReportOutput{
		ProjectID:     bug.ProjectID,
		ExceptionText: bug.ExceptionText,
		Email:         occ.Email,
		IP:            occ.IP,
		OS:            occ.OS,
		Details:       occ.Details,
	}, nil
}

// publish is best effort; the report is already committed.
func (s *reportService) publish(ctx context.Context, ev ReportRecordedEvent) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.PublishJSON(ctx, s.cfg.RabbitMQ.ExchangeName.Report, s.cfg.RabbitMQ.RoutingKey.ReportRecorded, ev)
	if err != nil {
		s.log.Warn("publish report event", zap.Int64("occasion_id", ev.OccasionID), zap.Error(err))
	}
}

// List returns the project × bug × occasion rows. Without a limit every row
// is returned.
func (s *reportService) List(ctx context.Context, limit, offset int) ([]repo.ReportRow, error) {
	if limit < 0 {
		limit = 0
	}
	if limit > MaxReportPageSize {
		limit = MaxReportPageSize
	}
	if offset < 0 {
		return nil, &ValidationError{Field: "offset", Msg: "must be zero or positive"}
	}
	return s.reports.List(ctx, limit, offset)
}
