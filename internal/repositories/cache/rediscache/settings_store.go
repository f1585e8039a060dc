// Package rediscache keeps planner settings in Redis.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/SscSPs/crew_planner/internal/apperrors"
	portsrepo "github.com/SscSPs/crew_planner/internal/core/ports/repositories"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "planner:settings:"

// SettingsStore stores per-organization planner settings as one JSON document per key.
type SettingsStore struct {
	client *redis.Client
}

// NewSettingsStore wraps an existing client.
func NewSettingsStore(client *redis.Client) *SettingsStore {
	return &SettingsStore{client: client}
}

var _ portsrepo.PlannerSettingsStore = (*SettingsStore)(nil)

type settingsDocument struct {
	VehicleTypes []string `json:"vehicleTypes"`
}

func settingsKey(organizationID string) string {
	return keyPrefix + organizationID
}

func (s *SettingsStore) GetVehicleTypes(ctx context.Context, organizationID string) ([]string, bool, error) {
	raw, err := s.client.Get(ctx, settingsKey(organizationID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, apperrors.NewAppError(503, "failed to read planner settings", err)
	}
	doc, err := decodeSettings(raw)
	if err != nil {
		return nil, false, err
	}
	return doc.VehicleTypes, doc.VehicleTypes != nil, nil
}

func (s *SettingsStore) SaveVehicleTypes(ctx context.Context, organizationID string, vehicleTypes []string) error {
	raw, err := json.Marshal(settingsDocument{VehicleTypes: vehicleTypes})
	if err != nil {
		return fmt.Errorf("failed to encode planner settings: %w", err)
	}
	if err := s.client.Set(ctx, settingsKey(organizationID), raw, 0).Err(); err != nil {
		return apperrors.NewAppError(503, "failed to save planner settings", err)
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (s *SettingsStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func decodeSettings(raw []byte) (settingsDocument, error) {
	var doc settingsDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return settingsDocument{}, fmt.Errorf("corrupt planner settings: %w", err)
	}
	return doc, nil
}
