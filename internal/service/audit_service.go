package service

import (
	"context"

	"go-vaccine-registration/internal/domain/entity"
	"go-vaccine-registration/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const auditEntityWizard = "registration_wizard"

type AuditService interface {
	LogSubmit(ctx context.Context, wizard *entity.RegistrationWizard) error
	LogCancel(ctx context.Context, wizard *entity.RegistrationWizard) error
}

type auditService struct {
	db        *gorm.DB
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(db *gorm.DB, log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		db:        db,
		log:       log,
		auditRepo: auditRepo,
	}
}

// LogSubmit records an accepted submit with the handed-off draft.
func (s *auditService) LogSubmit(ctx context.Context, wizard *entity.RegistrationWizard) error {
	metadata := entity.JSON{
		"entity":      auditEntityWizard,
		"entity_id":   wizard.ID.String(),
		"step":        wizard.ActiveStep,
		"submissions": wizard.Submissions,
		"new_value":   wizard.Handoff,
	}
	return s.create(ctx, wizard.ID, entity.AuditActionRegistrationSubmit, metadata)
}

// LogCancel records a discarded wizard with the draft it held.
func (s *auditService) LogCancel(ctx context.Context, wizard *entity.RegistrationWizard) error {
	metadata := entity.JSON{
		"entity":    auditEntityWizard,
		"entity_id": wizard.ID.String(),
		"step":      wizard.ActiveStep,
		"old_value": wizard.Draft,
	}
	return s.create(ctx, wizard.ID, entity.AuditActionRegistrationCancel, metadata)
}

func (s *auditService) create(ctx context.Context, wizardID uuid.UUID, action string, metadata entity.JSON) error {
	auditLog := &entity.AuditLog{
		WizardID: wizardID,
		Action:   action,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(s.db.WithContext(ctx), auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}

type noopAuditService struct{}

// NewNoopAuditService is used when the audit trail is disabled.
func NewNoopAuditService() AuditService {
	return noopAuditService{}
}

func (noopAuditService) LogSubmit(context.Context, *entity.RegistrationWizard) error { return nil }

func (noopAuditService) LogCancel(context.Context, *entity.RegistrationWizard) error { return nil }
