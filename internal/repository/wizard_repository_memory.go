package repository

import (
	"context"
	"sync"
	"time"

	"go-vaccine-registration/internal/domain/entity"
	domainRepo "go-vaccine-registration/internal/domain/repository"
	"go-vaccine-registration/pkg/clock"

	"github.com/google/uuid"
)

type memoryEntry struct {
	wizard    entity.RegistrationWizard
	expiresAt time.Time
}

type wizardMemoryRepository struct {
	mu      sync.RWMutex
	wizards map[uuid.UUID]memoryEntry
	ttl     time.Duration
	clock   clock.Clock
}

// NewWizardMemoryRepository keeps wizards in process memory.  Entries expire
// ttl after their last write.
func NewWizardMemoryRepository(ttl time.Duration, clk clock.Clock) domainRepo.WizardRepository {
	return &wizardMemoryRepository{
		wizards: make(map[uuid.UUID]memoryEntry),
		ttl:     ttl,
		clock:   clk,
	}
}

func (r *wizardMemoryRepository) Create(ctx context.Context, wizard *entity.RegistrationWizard) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.wizards[wizard.ID]; ok && r.clock.Now().Before(e.expiresAt) {
		return ErrWizardExists
	}
	r.put(wizard)
	return nil
}

func (r *wizardMemoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.RegistrationWizard, error) {
	r.mu.RLock()
	e, ok := r.wizards[id]
	r.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if !r.clock.Now().Before(e.expiresAt) {
		r.mu.Lock()
		// Re-check under the write lock, a Save may have refreshed it.
		if cur, ok := r.wizards[id]; ok && !r.clock.Now().Before(cur.expiresAt) {
			delete(r.wizards, id)
		}
		r.mu.Unlock()
		return nil, nil
	}

	return cloneWizard(&e.wizard), nil
}

func (r *wizardMemoryRepository) Save(ctx context.Context, wizard *entity.RegistrationWizard) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.put(wizard)
	return nil
}

func (r *wizardMemoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.wizards, id)
	return nil
}

func (r *wizardMemoryRepository) put(wizard *entity.RegistrationWizard) {
	r.wizards[wizard.ID] = memoryEntry{
		wizard:    *cloneWizard(wizard),
		expiresAt: r.clock.Now().Add(r.ttl),
	}
}

func cloneWizard(w *entity.RegistrationWizard) *entity.RegistrationWizard {
	c := *w
	if w.Handoff != nil {
		h := *w.Handoff
		c.Handoff = &h
	}
	return &c
}
