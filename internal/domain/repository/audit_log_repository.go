package repository

import (
	"go-vaccine-registration/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditLogRepository interface {
	Create(db *gorm.DB, log *entity.AuditLog) error
	FindByWizardID(db *gorm.DB, wizardID uuid.UUID) ([]entity.AuditLog, error)
}
