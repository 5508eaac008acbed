package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-vaccine-registration/internal/domain/entity"
	domainRepo "go-vaccine-registration/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisWizardKeyPrefix namespaces wizard documents in redis.
const RedisWizardKeyPrefix = "registration:wizard:"

type wizardRedisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewWizardRedisRepository stores wizards as JSON documents that expire ttl
// after their last write.
func NewWizardRedisRepository(client *redis.Client, ttl time.Duration) domainRepo.WizardRepository {
	return &wizardRedisRepository{
		client: client,
		ttl:    ttl,
	}
}

func wizardKey(id uuid.UUID) string {
	return RedisWizardKeyPrefix + id.String()
}

func (r *wizardRedisRepository) Create(ctx context.Context, wizard *entity.RegistrationWizard) error {
	payload, err := json.Marshal(wizard)
	if err != nil {
		return fmt.Errorf("marshal wizard %s: %w", wizard.ID, err)
	}

	ok, err := r.client.SetNX(ctx, wizardKey(wizard.ID), payload, r.ttl).Result()
	if err != nil {
		return fmt.Errorf("create wizard %s: %w", wizard.ID, err)
	}
	if !ok {
		return ErrWizardExists
	}
	return nil
}

func (r *wizardRedisRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.RegistrationWizard, error) {
	payload, err := r.client.Get(ctx, wizardKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get wizard %s: %w", id, err)
	}

	var wizard entity.RegistrationWizard
	if err := json.Unmarshal(payload, &wizard); err != nil {
		return nil, fmt.Errorf("unmarshal wizard %s: %w", id, err)
	}
	return &wizard, nil
}

func (r *wizardRedisRepository) Save(ctx context.Context, wizard *entity.RegistrationWizard) error {
	payload, err := json.Marshal(wizard)
	if err != nil {
		return fmt.Errorf("marshal wizard %s: %w", wizard.ID, err)
	}

	if err := r.client.Set(ctx, wizardKey(wizard.ID), payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("save wizard %s: %w", wizard.ID, err)
	}
	return nil
}

func (r *wizardRedisRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, wizardKey(id)).Err(); err != nil {
		return fmt.Errorf("delete wizard %s: %w", id, err)
	}
	return nil
}
