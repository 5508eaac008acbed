package repository

import (
	"go-vaccine-registration/internal/domain/entity"
	domainRepo "go-vaccine-registration/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type auditLogRepository struct{}

func NewAuditLogRepository() domainRepo.AuditLogRepository {
	return &auditLogRepository{}
}

func (r *auditLogRepository) Create(db *gorm.DB, log *entity.AuditLog) error {
	return db.Create(log).Error
}

func (r *auditLogRepository) FindByWizardID(db *gorm.DB, wizardID uuid.UUID) ([]entity.AuditLog, error) {
	var logs []entity.AuditLog
	err := db.Where("wizard_id = ?", wizardID).Order("id").Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
