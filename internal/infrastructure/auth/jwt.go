package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/authorization"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/biztime"
)

// TokenIssuer is stamped into every token the platform signs.
const TokenIssuer = "akhmads.net"

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Default token lifetimes. Admin-role accounts get a shorter access window.
const (
	DefaultAccessTTL      = 48 * time.Hour
	DefaultAdminAccessTTL = 24 * time.Hour
	DefaultRefreshTTL     = 7 * 24 * time.Hour
)

// Claims carries the signed identity of a logged-in user.
type Claims struct {
	UserSID    string                   `json:"userId"`
	TelegramID int64                    `json:"telegramId"`
	Role       authorization.UserRole   `json:"role"`
	Roles      []authorization.UserRole `json:"roles,omitempty"`
	TokenType  TokenType                `json:"token_type"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// JWTService signs and verifies user tokens.
type JWTService struct {
	secret         []byte
	accessTTL      time.Duration
	adminAccessTTL time.Duration
	refreshTTL     time.Duration
}

// NewJWTService creates a token service. Zero durations fall back to the
// defaults.
func NewJWTService(secret string, accessTTL, adminAccessTTL, refreshTTL time.Duration) *JWTService {
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTTL
	}
	if adminAccessTTL <= 0 {
		adminAccessTTL = DefaultAdminAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTTL
	}
	return &JWTService{
		secret:         []byte(secret),
		accessTTL:      accessTTL,
		adminAccessTTL: adminAccessTTL,
		refreshTTL:     refreshTTL,
	}
}

// Generate signs an access/refresh pair for the user.
func (s *JWTService) Generate(userSID string, telegramID int64, role authorization.UserRole, roles []authorization.UserRole) (*TokenPair, error) {
	now := biztime.NowUTC()
	accessTTL := s.accessTTLFor(role, roles)

	accessToken, err := s.sign(userSID, telegramID, role, roles, TokenTypeAccess, now, now.Add(accessTTL))
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshToken, err := s.sign(userSID, telegramID, role, roles, TokenTypeRefresh, now, now.Add(s.refreshTTL))
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(accessTTL.Seconds()),
	}, nil
}

// Verify parses the token, checking signature, expiry and issuer.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(TokenIssuer))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// VerifyAccess accepts only access tokens.
func (s *JWTService) VerifyAccess(tokenString string) (*Claims, error) {
	claims, err := s.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TokenTypeAccess {
		return nil, fmt.Errorf("token is not an access token")
	}
	return claims, nil
}

// Refresh issues a new pair from a refresh token. The caller is responsible
// for the server-side replay check and for storing the rotated token.
func (s *JWTService) Refresh(refreshTokenString string) (*TokenPair, error) {
	claims, err := s.Verify(refreshTokenString)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}
	if claims.TokenType != TokenTypeRefresh {
		return nil, fmt.Errorf("token is not a refresh token")
	}

	return s.Generate(claims.UserSID, claims.TelegramID, claims.Role, claims.Roles)
}

// RefreshTTL exposes the refresh lifetime for the replay store.
func (s *JWTService) RefreshTTL() time.Duration {
	return s.refreshTTL
}

func (s *JWTService) accessTTLFor(role authorization.UserRole, roles []authorization.UserRole) time.Duration {
	if role.IsAdmin() {
		return s.adminAccessTTL
	}
	for _, r := range roles {
		if r.IsAdmin() {
			return s.adminAccessTTL
		}
	}
	return s.accessTTL
}

func (s *JWTService) sign(userSID string, telegramID int64, role authorization.UserRole, roles []authorization.UserRole, tokenType TokenType, now, exp time.Time) (string, error) {
	claims := &Claims{
		UserSID:    userSID,
		TelegramID: telegramID,
		Role:       role,
		Roles:      roles,
		TokenType:  tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			// random jti keeps same-second tokens distinct, so rotation
			// always produces a new token string
			ID:        uuid.NewString(),
			Issuer:    TokenIssuer,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
