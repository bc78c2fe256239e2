package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dcastano/puntoventa-api/internal/application/checkout"
)

const draftKeyPrefix = "draft:"

// DraftStore guarda los borradores de venta en Redis con TTL. El borrador
// se borra al consumirse; el TTL solo limpia los abandonados.
type DraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDraftStore(client *redis.Client, ttl time.Duration) *DraftStore {
	return &DraftStore{client: client, ttl: ttl}
}

func (s *DraftStore) Save(ctx context.Context, draft *checkout.SaleDraft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("serializar borrador: %w", err)
	}

	if err := s.client.Set(ctx, draftKeyPrefix+draft.ID, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("guardar borrador: %w", err)
	}

	return nil
}

func (s *DraftStore) Get(ctx context.Context, id string) (*checkout.SaleDraft, error) {
	payload, err := s.client.Get(ctx, draftKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer borrador: %w", err)
	}

	var draft checkout.SaleDraft
	if err := json.Unmarshal(payload, &draft); err != nil {
		return nil, fmt.Errorf("deserializar borrador: %w", err)
	}

	return &draft, nil
}

func (s *DraftStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, draftKeyPrefix+id).Err()
}
