package setting

import (
	"context"
)

// Repository defines the interface for platform setting persistence
type Repository interface {
	// GetByKey retrieves a setting by key
	GetByKey(ctx context.Context, key string) (*PlatformSetting, error)

	// GetByCategory retrieves all settings in a category
	GetByCategory(ctx context.Context, category string) ([]*PlatformSetting, error)

	// GetAll retrieves all platform settings
	GetAll(ctx context.Context) ([]*PlatformSetting, error)

	// Upsert creates or updates a setting keyed by its unique key
	Upsert(ctx context.Context, setting *PlatformSetting) error

	// Delete removes a setting by key
	Delete(ctx context.Context, key string) error
}
