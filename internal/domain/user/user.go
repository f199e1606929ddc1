package user

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/authorization"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/biztime"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/id"
)

// User is the account aggregate. Identity comes from Telegram: an account is
// created on the first successful login handshake and never deleted, only
// banned or deactivated. The primary role drives token TTLs and the default
// dashboard; the roles set drives authorization.
type User struct {
	id         uint
	sid        string
	telegramID int64

	username  string
	firstName string
	lastName  string

	role  authorization.UserRole
	roles []authorization.UserRole

	isActive  bool
	isBanned  bool
	banReason string

	locale      string
	lastLoginAt *time.Time

	events []interface{}
	mu     sync.Mutex

	version   int
	createdAt time.Time
	updatedAt time.Time
}

// NewUser provisions an account for a Telegram identity. New accounts start
// as advertisers; the bot-owner role is granted when the first bot registers.
func NewUser(telegramID int64, firstName, lastName, username, locale string) (*User, error) {
	if telegramID == 0 {
		return nil, fmt.Errorf("telegram ID is required")
	}
	if strings.TrimSpace(firstName) == "" {
		return nil, fmt.Errorf("first name is required")
	}

	now := biztime.NowUTC()
	u := &User{
		sid:        id.NewUserSID(),
		telegramID: telegramID,
		username:   strings.TrimPrefix(strings.TrimSpace(username), "@"),
		firstName:  strings.TrimSpace(firstName),
		lastName:   strings.TrimSpace(lastName),
		role:       authorization.RoleAdvertiser,
		roles:      []authorization.UserRole{authorization.RoleAdvertiser},
		isActive:   true,
		locale:     normalizeLocale(locale),
		events:     []interface{}{},
		createdAt:  now,
		updatedAt:  now,
	}

	u.recordEvent(NewUserCreatedEvent(u.id, u.sid, telegramID))
	return u, nil
}

func normalizeLocale(locale string) string {
	locale = strings.TrimSpace(strings.ToLower(locale))
	if i := strings.IndexByte(locale, '-'); i > 0 {
		locale = locale[:i]
	}
	if locale == "" {
		return "en"
	}
	return locale
}

// RecordLogin stamps a successful handshake and refreshes the Telegram
// profile fields, which the platform treats as authoritative.
func (u *User) RecordLogin(firstName, lastName, username string) {
	now := biztime.NowUTC()
	u.lastLoginAt = &now
	if strings.TrimSpace(firstName) != "" {
		u.firstName = strings.TrimSpace(firstName)
	}
	u.lastName = strings.TrimSpace(lastName)
	if username != "" {
		u.username = strings.TrimPrefix(strings.TrimSpace(username), "@")
	}
	u.touch()
}

// SetLocale changes the preferred interface language.
func (u *User) SetLocale(locale string) {
	u.locale = normalizeLocale(locale)
	u.touch()
}

// GrantRole adds a role to the set. Granting a role above the current primary
// promotes the primary as well, so staff tokens carry the right TTL.
func (u *User) GrantRole(role authorization.UserRole) error {
	if !role.IsValid() {
		return fmt.Errorf("invalid role: %s", role)
	}
	if u.HasRole(role) {
		return nil
	}

	u.roles = append(u.roles, role)
	if rolePrecedence(role) > rolePrecedence(u.role) {
		u.role = role
	}
	u.touch()
	return nil
}

// RevokeRole removes a role from the set. The last role cannot be revoked;
// revoking the primary demotes it to the highest remaining role.
func (u *User) RevokeRole(role authorization.UserRole) error {
	if !u.HasRole(role) {
		return nil
	}
	if len(u.roles) == 1 {
		return fmt.Errorf("cannot revoke the only role")
	}

	kept := make([]authorization.UserRole, 0, len(u.roles)-1)
	for _, r := range u.roles {
		if r != role {
			kept = append(kept, r)
		}
	}
	u.roles = kept

	if u.role == role {
		u.role = kept[0]
		for _, r := range kept[1:] {
			if rolePrecedence(r) > rolePrecedence(u.role) {
				u.role = r
			}
		}
	}
	u.touch()
	return nil
}

func rolePrecedence(role authorization.UserRole) int {
	switch role {
	case authorization.RoleSuperAdmin:
		return 5
	case authorization.RoleAdmin:
		return 4
	case authorization.RoleModerator:
		return 3
	case authorization.RoleBotOwner:
		return 2
	default:
		return 1
	}
}

// HasRole reports whether the role set contains the role.
func (u *User) HasRole(role authorization.UserRole) bool {
	for _, r := range u.roles {
		if r == role {
			return true
		}
	}
	return false
}

// Ban blocks the account. Banned users cannot log in, their bots stop
// receiving ads and their pending operations are frozen.
func (u *User) Ban(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return fmt.Errorf("ban reason is required")
	}
	if u.isBanned {
		return ErrAlreadyBanned
	}

	u.isBanned = true
	u.banReason = reason
	u.touch()
	u.recordEvent(NewUserBannedEvent(u.id, u.sid, reason))
	return nil
}

// Unban lifts a ban.
func (u *User) Unban() error {
	if !u.isBanned {
		return ErrNotBanned
	}
	u.isBanned = false
	u.banReason = ""
	u.touch()
	return nil
}

// Deactivate soft-disables the account without the stigma of a ban.
func (u *User) Deactivate() {
	if !u.isActive {
		return
	}
	u.isActive = false
	u.touch()
}

// Reactivate re-enables a deactivated account.
func (u *User) Reactivate() {
	if u.isActive {
		return
	}
	u.isActive = true
	u.touch()
}

// CanAuthenticate reports whether a login handshake may complete for the
// account.
func (u *User) CanAuthenticate() bool {
	return u.isActive && !u.isBanned
}

// DisplayName renders the name Telegram shows for the account.
func (u *User) DisplayName() string {
	if u.lastName != "" {
		return u.firstName + " " + u.lastName
	}
	return u.firstName
}

func (u *User) touch() {
	u.updatedAt = biztime.NowUTC()
	u.version++
}

func (u *User) recordEvent(event interface{}) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.events = append(u.events, event)
}

// GetEvents returns and clears recorded domain events
func (u *User) GetEvents() []interface{} {
	u.mu.Lock()
	defer u.mu.Unlock()
	events := u.events
	u.events = []interface{}{}
	return events
}

func (u *User) ID() uint {
	return u.id
}

func (u *User) SID() string {
	return u.sid
}

func (u *User) TelegramID() int64 {
	return u.telegramID
}

func (u *User) Username() string {
	return u.username
}

func (u *User) FirstName() string {
	return u.firstName
}

func (u *User) LastName() string {
	return u.lastName
}

func (u *User) Role() authorization.UserRole {
	return u.role
}

func (u *User) Roles() []authorization.UserRole {
	return append([]authorization.UserRole(nil), u.roles...)
}

func (u *User) RoleStrings() []string {
	out := make([]string, len(u.roles))
	for i, r := range u.roles {
		out[i] = r.String()
	}
	return out
}

func (u *User) IsActive() bool {
	return u.isActive
}

func (u *User) IsBanned() bool {
	return u.isBanned
}

func (u *User) BanReason() string {
	return u.banReason
}

func (u *User) Locale() string {
	return u.locale
}

func (u *User) LastLoginAt() *time.Time {
	return u.lastLoginAt
}

func (u *User) Version() int {
	return u.version
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

// SetID sets the user ID after persistence (used by repository after Create)
func (u *User) SetID(id uint) {
	u.id = id
}

// UserReconstructParams carries persisted state for rebuilding a User.
type UserReconstructParams struct {
	ID          uint
	SID         string
	TelegramID  int64
	Username    string
	FirstName   string
	LastName    string
	Role        authorization.UserRole
	Roles       []authorization.UserRole
	IsActive    bool
	IsBanned    bool
	BanReason   string
	Locale      string
	LastLoginAt *time.Time
	Version     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ReconstructUser rebuilds a User from persistence without validation.
func ReconstructUser(params UserReconstructParams) *User {
	roles := params.Roles
	if len(roles) == 0 {
		roles = []authorization.UserRole{params.Role}
	}
	return &User{
		id:          params.ID,
		sid:         params.SID,
		telegramID:  params.TelegramID,
		username:    params.Username,
		firstName:   params.FirstName,
		lastName:    params.LastName,
		role:        params.Role,
		roles:       roles,
		isActive:    params.IsActive,
		isBanned:    params.IsBanned,
		banReason:   params.BanReason,
		locale:      params.Locale,
		lastLoginAt: params.LastLoginAt,
		events:      []interface{}{},
		version:     params.Version,
		createdAt:   params.CreatedAt,
		updatedAt:   params.UpdatedAt,
	}
}
