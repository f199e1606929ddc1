// Package auth implements the Telegram login handshake and token lifecycle:
// the web client initiates a session and polls it, the login bot submits the
// tapped code, and refresh tokens rotate against a server-side pin.
package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/user"
	infraAuth "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/auth"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/cache"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/telegram"
	apperrors "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/errors"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
)

const loginCodeCount = 4

// LoginInitiation is what the web client needs to drive the handshake: the
// deep link opens the bot, the correct code is shown on the page, and the
// user taps the matching button in Telegram.
type LoginInitiation struct {
	Token     string
	DeepLink  string
	Code      string
	Codes     []string
	ExpiresAt time.Time
}

// LoginStatus is one poll of a pending session.
type LoginStatus struct {
	Authorized bool
	User       *user.User
	Tokens     *infraAuth.TokenPair
}

// Service implements the login handshake (it is the login bot's
// LoginService) plus refresh rotation and logout.
type Service struct {
	userRepo     user.Repository
	sessions     *cache.LoginSessionStore
	refreshStore *cache.RefreshTokenStore
	jwt          *infraAuth.JWTService
	botUsername  string
	logger       logger.Interface
}

func NewService(
	userRepo user.Repository,
	sessions *cache.LoginSessionStore,
	refreshStore *cache.RefreshTokenStore,
	jwt *infraAuth.JWTService,
	botUsername string,
	logger logger.Interface,
) *Service {
	return &Service{
		userRepo:     userRepo,
		sessions:     sessions,
		refreshStore: refreshStore,
		jwt:          jwt,
		botUsername:  botUsername,
		logger:       logger.With("component", "auth_service"),
	}
}

// InitiateLogin opens a five-minute session with four candidate codes, one
// of which is correct.
func (s *Service) InitiateLogin(ctx context.Context, ipAddress, userAgent string) (*LoginInitiation, error) {
	codes, err := generateLoginCodes(loginCodeCount)
	if err != nil {
		return nil, fmt.Errorf("failed to generate login codes: %w", err)
	}
	pick, err := rand.Int(rand.Reader, big.NewInt(loginCodeCount))
	if err != nil {
		return nil, fmt.Errorf("failed to pick login code: %w", err)
	}

	session := &cache.LoginSession{
		Token:       uuid.NewString(),
		CorrectCode: codes[pick.Int64()],
		Codes:       codes,
		IPAddress:   ipAddress,
		UserAgent:   userAgent,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Infow("login session initiated", "token", session.Token, "ip", ipAddress)
	return &LoginInitiation{
		Token:     session.Token,
		DeepLink:  telegram.DeepLink(s.botUsername, session.Token),
		Code:      session.CorrectCode,
		Codes:     codes,
		ExpiresAt: session.CreatedAt.Add(cache.LoginSessionTTL),
	}, nil
}

// SessionCodes returns the candidate codes the bot renders as buttons.
func (s *Service) SessionCodes(ctx context.Context, token string) ([]string, error) {
	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, cache.ErrLoginSessionNotFound) {
			return nil, telegram.ErrSessionNotFound
		}
		return nil, err
	}
	if session.Authorized {
		return nil, telegram.ErrSessionNotFound
	}
	return session.Codes, nil
}

// SubmitCode verifies the tapped code. The correct code authorizes the
// session exactly once and issues tokens for the poll to pick up; a wrong
// code is rejected but leaves the session open for another tap.
func (s *Service) SubmitCode(ctx context.Context, token string, account telegram.TelegramAccount, code string) (telegram.CodeResult, error) {
	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, cache.ErrLoginSessionNotFound) {
			return telegram.CodeResultNotFound, nil
		}
		return telegram.CodeResultNotFound, err
	}
	if session.Authorized {
		return telegram.CodeResultConsumed, nil
	}
	if code != session.CorrectCode {
		s.logger.Warnw("wrong login code submitted", "token", token, "telegram_id", account.TelegramID)
		return telegram.CodeResultWrongCode, nil
	}

	u, err := s.upsertUser(ctx, account)
	if err != nil {
		return telegram.CodeResultNotFound, err
	}
	if !u.CanAuthenticate() {
		s.logger.Warnw("banned or inactive account attempted login",
			"telegram_id", account.TelegramID, "user_sid", u.SID())
		return telegram.CodeResultBanned, nil
	}

	pair, err := s.jwt.Generate(u.SID(), u.TelegramID(), u.Role(), u.Roles())
	if err != nil {
		return telegram.CodeResultNotFound, fmt.Errorf("failed to issue tokens: %w", err)
	}
	if err := s.refreshStore.Save(ctx, u.ID(), pair.RefreshToken); err != nil {
		return telegram.CodeResultNotFound, err
	}

	session.TelegramID = account.TelegramID
	session.UserSID = u.SID()
	session.AccessToken = pair.AccessToken
	session.RefreshToken = pair.RefreshToken
	if err := s.sessions.Authorize(ctx, session); err != nil {
		if errors.Is(err, cache.ErrLoginSessionConsumed) {
			return telegram.CodeResultConsumed, nil
		}
		if errors.Is(err, cache.ErrLoginSessionNotFound) {
			return telegram.CodeResultNotFound, nil
		}
		return telegram.CodeResultNotFound, err
	}

	s.logger.Infow("login session authorized", "token", token, "user_sid", u.SID())
	return telegram.CodeResultAuthorized, nil
}

// Status reports one poll. An authorized session hands its tokens out once
// and is deleted; later polls read as expired.
func (s *Service) Status(ctx context.Context, token string) (*LoginStatus, error) {
	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, cache.ErrLoginSessionNotFound) {
			return nil, apperrors.NewLoginExpiredError()
		}
		return nil, err
	}
	if !session.Authorized {
		return &LoginStatus{}, nil
	}

	u, err := s.userRepo.GetBySID(ctx, session.UserSID)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		s.logger.Warnw("failed to drop handed-out login session", "error", err, "token", token)
	}

	return &LoginStatus{
		Authorized: true,
		User:       u,
		Tokens: &infraAuth.TokenPair{
			AccessToken:  session.AccessToken,
			RefreshToken: session.RefreshToken,
		},
	}, nil
}

// Refresh rotates the token pair. The presented token must match the
// server-side pin; a replay of a rotated-out token fails even though its
// signature still verifies.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*infraAuth.TokenPair, *user.User, error) {
	claims, err := s.jwt.Verify(refreshToken)
	if err != nil {
		return nil, nil, apperrors.NewTokenInvalidError("refresh")
	}
	if claims.TokenType != infraAuth.TokenTypeRefresh {
		return nil, nil, apperrors.NewTokenInvalidError("refresh")
	}

	u, err := s.userRepo.GetBySID(ctx, claims.UserSID)
	if err != nil {
		return nil, nil, apperrors.NewTokenInvalidError("refresh")
	}
	if !u.CanAuthenticate() {
		if u.IsBanned() {
			return nil, nil, apperrors.NewAccountBannedError(u.BanReason())
		}
		return nil, nil, apperrors.NewAccountInactiveError()
	}

	if err := s.refreshStore.Verify(ctx, u.ID(), refreshToken); err != nil {
		if errors.Is(err, cache.ErrRefreshTokenMismatch) {
			s.logger.Warnw("refresh token replay detected", "user_sid", u.SID())
			return nil, nil, apperrors.NewTokenInvalidError("refresh")
		}
		return nil, nil, err
	}

	pair, err := s.jwt.Generate(u.SID(), u.TelegramID(), u.Role(), u.Roles())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to issue tokens: %w", err)
	}
	if err := s.refreshStore.Save(ctx, u.ID(), pair.RefreshToken); err != nil {
		return nil, nil, err
	}
	return pair, u, nil
}

// Logout drops the server-side refresh pin, ending the session everywhere.
func (s *Service) Logout(ctx context.Context, userID uint) error {
	return s.refreshStore.Revoke(ctx, userID)
}

// upsertUser binds the Telegram identity to an account, creating one on
// first login and refreshing the profile on every later one.
func (s *Service) upsertUser(ctx context.Context, account telegram.TelegramAccount) (*user.User, error) {
	u, err := s.userRepo.GetByTelegramID(ctx, account.TelegramID)
	if err == nil {
		u.RecordLogin(account.FirstName, account.LastName, account.Username)
		if err := s.userRepo.Update(ctx, u); err != nil {
			return nil, err
		}
		return u, nil
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return nil, err
	}

	firstName := account.FirstName
	if firstName == "" {
		firstName = account.Username
	}
	if firstName == "" {
		firstName = "Telegram User"
	}
	nu, err := user.NewUser(account.TelegramID, firstName, account.LastName, account.Username, account.LanguageCode)
	if err != nil {
		return nil, err
	}
	nu.RecordLogin(firstName, account.LastName, account.Username)
	if err := s.userRepo.Create(ctx, nu); err != nil {
		return nil, err
	}
	s.logger.Infow("account created on first login",
		"telegram_id", account.TelegramID, "user_sid", nu.SID())
	return nu, nil
}

// generateLoginCodes returns n distinct 4-digit codes.
func generateLoginCodes(n int) ([]string, error) {
	codes := make([]string, 0, n)
	seen := make(map[string]struct{}, n)
	for len(codes) < n {
		v, err := rand.Int(rand.Reader, big.NewInt(9000))
		if err != nil {
			return nil, err
		}
		code := fmt.Sprintf("%04d", v.Int64()+1000)
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	return codes, nil
}
