package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-vaccine-registration/internal/domain/entity"
	"go-vaccine-registration/pkg/clock"

	"github.com/google/uuid"
)

func TestWizardMemoryRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)
	clk := clock.Fixed(now)
	repo := NewWizardMemoryRepository(time.Hour, clk)

	w := entity.NewRegistrationWizard(uuid.New(), now)
	if err := repo.Create(ctx, w); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if err := repo.Create(ctx, w); !errors.Is(err, ErrWizardExists) {
		t.Fatalf("second Create() error = %v, want ErrWizardExists", err)
	}

	got, err := repo.FindByID(ctx, w.ID)
	if err != nil || got == nil {
		t.Fatalf("FindByID() = %v, %v", got, err)
	}

	got.Draft.Job = "nurse"
	if err := repo.Save(ctx, got); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	got.Draft.Job = "changed after save"

	again, _ := repo.FindByID(ctx, w.ID)
	if again.Draft.Job != "nurse" {
		t.Errorf("stored job = %q, want %q", again.Draft.Job, "nurse")
	}

	if err := repo.Delete(ctx, w.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if gone, err := repo.FindByID(ctx, w.ID); gone != nil || err != nil {
		t.Errorf("FindByID() after delete = %v, %v; want nil, nil", gone, err)
	}
}

func TestWizardMemoryRepository_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)
	clk := clock.Fixed(now)
	repo := NewWizardMemoryRepository(30*time.Minute, clk)

	w := entity.NewRegistrationWizard(uuid.New(), now)
	if err := repo.Create(ctx, w); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	clk.Set(now.Add(29 * time.Minute))
	if got, _ := repo.FindByID(ctx, w.ID); got == nil {
		t.Fatal("wizard expired too early")
	}

	clk.Set(now.Add(30 * time.Minute))
	if got, _ := repo.FindByID(ctx, w.ID); got != nil {
		t.Fatal("wizard should have expired")
	}

	// An expired id can be reused.
	if err := repo.Create(ctx, w); err != nil {
		t.Fatalf("Create() after expiry error: %v", err)
	}
}

func TestWizardMemoryRepository_HandoffIsCopied(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)
	repo := NewWizardMemoryRepository(time.Hour, clock.Fixed(now))

	w := entity.NewRegistrationWizard(uuid.New(), now)
	w.Accept(entity.RegistrationDraft{GroupPriority: "A"})
	_ = repo.Create(ctx, w)

	w.Handoff.GroupPriority = "mutated"

	got, _ := repo.FindByID(ctx, w.ID)
	if got.Handoff == nil || got.Handoff.GroupPriority != "A" {
		t.Errorf("Handoff = %+v, want GroupPriority A", got.Handoff)
	}
}
