package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/biztime"
)

const (
	loginSessionPrefix = "login:session:"
	// LoginSessionTTL bounds the whole handshake: initiate, bot-side verify,
	// web-side status poll.
	LoginSessionTTL = 5 * time.Minute
)

// ErrLoginSessionNotFound is returned when the token is unknown or expired.
var ErrLoginSessionNotFound = errors.New("login session not found or expired")

// ErrLoginSessionConsumed is returned when the session was already authorized.
var ErrLoginSessionConsumed = errors.New("login session already authorized")

// LoginSession is the short-lived state of one Telegram login handshake. It
// lives only in Redis and expires five minutes after initiate.
type LoginSession struct {
	Token        string    `json:"token"`
	CorrectCode  string    `json:"correct_code"`
	Codes        []string  `json:"codes"`
	IPAddress    string    `json:"ip_address,omitempty"`
	UserAgent    string    `json:"user_agent,omitempty"`
	TelegramID   int64     `json:"telegram_id,omitempty"`
	Authorized   bool      `json:"authorized"`
	UserSID      string    `json:"user_sid,omitempty"`
	AccessToken  string    `json:"access_token,omitempty"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// authorizeLoginSessionScript flips a pending session to authorized exactly
// once. Concurrent correct submissions race on the stored flag; only the
// first wins, the rest see 0.
var authorizeLoginSessionScript = redis.NewScript(`
	local existing = redis.call('GET', KEYS[1])
	if not existing then
		return -1
	end
	local data = cjson.decode(existing)
	if data.authorized then
		return 0
	end
	redis.call('SET', KEYS[1], ARGV[1], 'KEEPTTL')
	return 1
`)

// LoginSessionStore keeps login handshake sessions in Redis.
type LoginSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewLoginSessionStore creates a login session store with the default TTL.
func NewLoginSessionStore(client *redis.Client) *LoginSessionStore {
	return &LoginSessionStore{client: client, ttl: LoginSessionTTL}
}

// Create stores a fresh pending session under its token.
func (s *LoginSessionStore) Create(ctx context.Context, session *LoginSession) error {
	if session == nil || session.Token == "" {
		return errors.New("login session token cannot be empty")
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = biztime.NowUTC()
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal login session: %w", err)
	}

	if err := s.client.Set(ctx, s.buildKey(session.Token), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store login session: %w", err)
	}
	return nil
}

// Get returns the session without consuming it. The status poll uses this.
func (s *LoginSessionStore) Get(ctx context.Context, token string) (*LoginSession, error) {
	if token == "" {
		return nil, ErrLoginSessionNotFound
	}

	data, err := s.client.Get(ctx, s.buildKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrLoginSessionNotFound
		}
		return nil, fmt.Errorf("failed to get login session: %w", err)
	}

	var session LoginSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal login session: %w", err)
	}
	return &session, nil
}

// Authorize writes the authorized session back, guarded so a session
// authorizes at most once. ErrLoginSessionConsumed signals a second correct
// submission after a successful one. The remaining TTL is preserved so an
// authorized session still expires on the initiate clock.
func (s *LoginSessionStore) Authorize(ctx context.Context, session *LoginSession) error {
	if session == nil || session.Token == "" {
		return ErrLoginSessionNotFound
	}
	session.Authorized = true

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal login session: %w", err)
	}

	result, err := authorizeLoginSessionScript.Run(
		ctx, s.client, []string{s.buildKey(session.Token)}, string(data),
	).Int()
	if err != nil {
		return fmt.Errorf("failed to authorize login session: %w", err)
	}

	switch result {
	case -1:
		return ErrLoginSessionNotFound
	case 0:
		return ErrLoginSessionConsumed
	}
	return nil
}

// Delete drops the session, used after the status poll handed out tokens.
func (s *LoginSessionStore) Delete(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.client.Del(ctx, s.buildKey(token)).Err()
}

func (s *LoginSessionStore) buildKey(token string) string {
	return loginSessionPrefix + token
}
