package user

import "context"

// ListFilter narrows and paginates user listings.
type ListFilter struct {
	Page     int
	PageSize int
	Role     string
	IsActive *bool
	IsBanned *bool
	Search   string
}

// Repository defines persistence for user aggregates.
type Repository interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetBySID(ctx context.Context, sid string) (*User, error)

	// GetByTelegramID retrieves the account bound to the Telegram identity.
	GetByTelegramID(ctx context.Context, telegramID int64) (*User, error)

	List(ctx context.Context, filter ListFilter) ([]*User, int64, error)
	Count(ctx context.Context) (int64, error)
}
