package usecase

import (
	"context"
	"errors"

	"go-vaccine-registration/internal/converter"
	"go-vaccine-registration/internal/delivery/dto"
	"go-vaccine-registration/internal/delivery/http/middleware"
	"go-vaccine-registration/internal/domain/entity"
	"go-vaccine-registration/internal/domain/repository"
	"go-vaccine-registration/internal/metrics"
	"go-vaccine-registration/internal/service"
	"go-vaccine-registration/pkg/clock"
	"go-vaccine-registration/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// CancelRedirect is where a cancelled registration sends the client.
const CancelRedirect = "/"

var (
	ErrWizardNotFound    = errors.New("registration wizard not found")
	ErrNoWizardInContext = errors.New("wizard not found in context")
)

type RegistrationWizardUsecase interface {
	StartWizard(ctx context.Context) (*dto.WizardStartResponse, error)
	GetWizard(ctx context.Context) (*dto.WizardResponse, error)
	SetField(ctx context.Context, req *dto.SetFieldRequest) (*dto.WizardResponse, error)
	Submit(ctx context.Context) (*dto.WizardResponse, error)
	Cancel(ctx context.Context) (*dto.WizardCancelResponse, error)
	GetOptions(ctx context.Context) *dto.OptionsResponse
}

type registrationWizardUsecase struct {
	log          *logrus.Logger
	clock        clock.Clock
	wizardRepo   repository.WizardRepository
	schema       *service.RegistrationSchema
	locker       *service.WizardLocker
	auditService service.AuditService
	jwtService   *jwt.JWTService
}

func NewRegistrationWizardUsecase(
	log *logrus.Logger,
	clk clock.Clock,
	wizardRepo repository.WizardRepository,
	schema *service.RegistrationSchema,
	locker *service.WizardLocker,
	auditService service.AuditService,
	jwtService *jwt.JWTService,
) RegistrationWizardUsecase {
	return &registrationWizardUsecase{
		log:          log,
		clock:        clk,
		wizardRepo:   wizardRepo,
		schema:       schema,
		locker:       locker,
		auditService: auditService,
		jwtService:   jwtService,
	}
}

// StartWizard creates a wizard on step 0 with a default draft and signs the
// token that identifies it on later calls.
func (u *registrationWizardUsecase) StartWizard(ctx context.Context) (*dto.WizardStartResponse, error) {
	wizard := entity.NewRegistrationWizard(uuid.New(), u.clock.Now())

	if err := u.wizardRepo.Create(ctx, wizard); err != nil {
		u.log.Warnf("Failed to create wizard %s: %+v", wizard.ID, err)
		return nil, err
	}

	token, expiresAt, err := u.jwtService.GenerateWizardToken(wizard.ID)
	if err != nil {
		u.log.Warnf("Failed to sign token for wizard %s: %+v", wizard.ID, err)
		return nil, err
	}

	metrics.WizardsStartedTotal.Inc()
	u.log.WithField("wizard_id", wizard.ID).Debug("Registration wizard started")

	form := u.openForm(wizard)
	return &dto.WizardStartResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Wizard:    converter.WizardToResponse(wizard, form.Errors()),
	}, nil
}

// GetWizard returns the current values, errors and validity of the step.
func (u *registrationWizardUsecase) GetWizard(ctx context.Context) (*dto.WizardResponse, error) {
	wizard, unlock, err := u.lockWizard(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	form := u.openForm(wizard)
	return converter.WizardToResponse(wizard, form.Errors()), nil
}

// SetField applies one field change and persists the re-validated draft.
func (u *registrationWizardUsecase) SetField(ctx context.Context, req *dto.SetFieldRequest) (*dto.WizardResponse, error) {
	wizard, unlock, err := u.lockWizard(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	form := u.openForm(wizard)
	if err := form.SetValue(req.Field, req.Value); err != nil {
		return nil, err
	}

	wizard.Draft = form.Values()
	wizard.FormState = form.State()
	wizard.UpdatedAt = u.clock.Now()

	if err := u.wizardRepo.Save(ctx, wizard); err != nil {
		u.log.Warnf("Failed to save wizard %s: %+v", wizard.ID, err)
		return nil, err
	}

	metrics.FieldUpdatesTotal.WithLabelValues(req.Field).Inc()

	return converter.WizardToResponse(wizard, form.Errors()), nil
}

// Submit hands the draft to the wizard and moves it one step forward.  An
// invalid draft yields a *service.ValidationError together with the
// unchanged wizard state.
func (u *registrationWizardUsecase) Submit(ctx context.Context) (*dto.WizardResponse, error) {
	wizard, unlock, err := u.lockWizard(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	form := u.openForm(wizard)
	if err := form.Submit(); err != nil {
		metrics.SubmissionsTotal.WithLabelValues(metrics.ResultRejected).Inc()
		return converter.WizardToResponse(wizard, form.Errors()), err
	}

	wizard.FormState = form.State()
	wizard.UpdatedAt = u.clock.Now()

	if err := u.wizardRepo.Save(ctx, wizard); err != nil {
		u.log.Warnf("Failed to save wizard %s: %+v", wizard.ID, err)
		return nil, err
	}

	u.log.WithFields(logrus.Fields{
		"wizard_id":   wizard.ID,
		"active_step": wizard.ActiveStep,
		"draft":       wizard.Handoff,
	}).Info("Registration draft handed off")

	if err := u.auditService.LogSubmit(ctx, wizard); err != nil {
		u.log.Warnf("Failed to audit submit of wizard %s: %+v", wizard.ID, err)
	}

	metrics.SubmissionsTotal.WithLabelValues(metrics.ResultAccepted).Inc()

	return converter.WizardToResponse(wizard, form.Errors()), nil
}

// Cancel discards the wizard and its draft.
func (u *registrationWizardUsecase) Cancel(ctx context.Context) (*dto.WizardCancelResponse, error) {
	wizard, unlock, err := u.lockWizard(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := u.wizardRepo.Delete(ctx, wizard.ID); err != nil {
		u.log.Warnf("Failed to delete wizard %s: %+v", wizard.ID, err)
		return nil, err
	}
	u.locker.Forget(wizard.ID)

	if err := u.auditService.LogCancel(ctx, wizard); err != nil {
		u.log.Warnf("Failed to audit cancel of wizard %s: %+v", wizard.ID, err)
	}

	metrics.WizardsCancelledTotal.Inc()

	return &dto.WizardCancelResponse{Redirect: CancelRedirect}, nil
}

func (u *registrationWizardUsecase) GetOptions(ctx context.Context) *dto.OptionsResponse {
	return converter.CatalogToResponse(u.schema.Options())
}

// lockWizard takes the per-wizard lock and loads the wizard named by the
// request context.  The returned unlock must be called on success.
func (u *registrationWizardUsecase) lockWizard(ctx context.Context) (*entity.RegistrationWizard, func(), error) {
	wizardID, ok := middleware.GetWizardIDFromContext(ctx)
	if !ok {
		return nil, nil, ErrNoWizardInContext
	}

	unlock := u.locker.Lock(wizardID)

	wizard, err := u.wizardRepo.FindByID(ctx, wizardID)
	if err != nil {
		unlock()
		u.log.Warnf("Failed to find wizard %s: %+v", wizardID, err)
		return nil, nil, err
	}
	if wizard == nil {
		unlock()
		return nil, nil, ErrWizardNotFound
	}

	return wizard, unlock, nil
}

func (u *registrationWizardUsecase) openForm(wizard *entity.RegistrationWizard) *service.RegistrationForm {
	return service.NewRegistrationForm(u.schema, wizard.Draft,
		service.WithState(wizard.FormState),
		service.WithSubmitHandler(wizard.Accept),
		service.WithStepSetter(wizard.Advance),
	)
}
