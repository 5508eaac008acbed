package repository

import (
	"context"

	"go-vaccine-registration/internal/domain/entity"

	"github.com/google/uuid"
)

// WizardRepository stores in-flight registration wizards.  FindByID returns
// nil, nil when the wizard does not exist or has expired.
type WizardRepository interface {
	Create(ctx context.Context, wizard *entity.RegistrationWizard) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.RegistrationWizard, error)
	Save(ctx context.Context, wizard *entity.RegistrationWizard) error
	Delete(ctx context.Context, id uuid.UUID) error
}
