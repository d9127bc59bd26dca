package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/layer-3/marketauth/core"
	"github.com/layer-3/marketauth/ports"
	"go.uber.org/zap"
)

const bearerPrefix = "Bearer "

// AuthService handles wallet sign-in and session validation. It keeps no
// mutable state and is safe for concurrent use.
type AuthService struct {
	config    core.AuthConfig
	deriver   ports.AddressDeriver
	tokenizer ports.SessionTokenizer
	eventPub  ports.EventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

// Option configures optional collaborators of AuthService
type Option func(*AuthService)

// WithEventPublisher publishes a login event after every successful sign-in
func WithEventPublisher(pub ports.EventPublisher) Option {
	return func(s *AuthService) {
		s.eventPub = pub
	}
}

// WithLogger sets the logger; the default discards everything
func WithLogger(logger *zap.Logger) Option {
	return func(s *AuthService) {
		s.logger = logger
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *AuthService) {
		s.now = now
	}
}

// NewAuthService creates a new authentication service
func NewAuthService(
	config core.AuthConfig,
	deriver ports.AddressDeriver,
	tokenizer ports.SessionTokenizer,
	opts ...Option,
) *AuthService {
	s := &AuthService{
		config:    config,
		deriver:   deriver,
		tokenizer: tokenizer,
		logger:    zap.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TokenLifetime is how long issued session tokens stay valid
func (s *AuthService) TokenLifetime() time.Duration {
	return s.config.AccessTokenLifetime
}

// Authorize verifies that the request was signed by the wallet owning the
// claimed address and issues a session token for it. The first failing check
// ends the sign-in.
func (s *AuthService) Authorize(ctx context.Context, req core.LoginRequest) (string, error) {
	claimed, err := core.ParseAddress(req.Address)
	if err != nil {
		return "", s.reject(req, err)
	}

	publicKey, err := core.DecodePublicKey(req.PublicKey)
	if err != nil {
		return "", s.reject(req, err)
	}

	derived, err := s.deriver.DeriveAddress(publicKey, req.WalletType, claimed.Workchain)
	if err != nil {
		return "", s.reject(req, err)
	}
	if derived != claimed {
		return "", s.reject(req, fmt.Errorf("derived %s, claimed %s: %w", derived, claimed, core.ErrAddressMismatch))
	}

	signature, err := core.DecodeSignature(req.Signature)
	if err != nil {
		return "", s.reject(req, err)
	}
	challenge := core.BuildChallenge(s.config.OriginURL, req.Address, req.Timestamp)
	if !core.VerifySignature(publicKey, challenge, signature, req.SignatureID) {
		return "", s.reject(req, core.ErrInvalidSignature)
	}

	now := s.now()
	if err := core.CheckFreshness(req.Timestamp, now.Unix(), s.lifetimeSeconds()); err != nil {
		return "", s.reject(req, err)
	}

	// The subject is the address text the wallet signed, not its canonical form.
	token, claims, err := s.tokenizer.Issue(req.Address, now, s.config.AccessTokenLifetime)
	if err != nil {
		return "", fmt.Errorf("failed to create access token: %w", err)
	}

	s.publishLogin(ctx, req.WalletType, claims)

	return token, nil
}

// Authenticate resolves the wallet address of the session presented in the
// Authorization header.
func (s *AuthService) Authenticate(headers http.Header) (string, error) {
	values := headers.Values("Authorization")
	if len(values) == 0 {
		return "", core.ErrNoAuthHeader
	}

	auth := values[0]
	if !strings.HasPrefix(auth, bearerPrefix) {
		return "", core.ErrInvalidAuthHeader
	}

	claims, err := s.tokenizer.Validate(strings.TrimPrefix(auth, bearerPrefix), s.now())
	if err != nil {
		return "", err
	}

	return claims.Subject, nil
}

func (s *AuthService) lifetimeSeconds() uint32 {
	return uint32(s.config.AccessTokenLifetime / time.Second)
}

func (s *AuthService) reject(req core.LoginRequest, err error) error {
	s.logger.Debug("sign-in rejected",
		zap.String("address", req.Address),
		zap.Stringer("wallet_type", req.WalletType),
		zap.Uint64("timestamp", req.Timestamp),
		zap.Error(err))
	return err
}

// publishLogin runs after the token is issued. A failed publish is logged and
// does not undo the sign-in.
func (s *AuthService) publishLogin(ctx context.Context, walletType core.WalletType, claims *core.SessionClaims) {
	if s.eventPub == nil {
		return
	}

	event := core.LoginEvent{
		Address:    claims.Subject,
		WalletType: walletType.String(),
		IssuedAt:   claims.IssuedAt,
		ExpiresAt:  claims.ExpiresAt,
	}
	if err := s.eventPub.PublishLogin(ctx, event); err != nil {
		s.logger.Warn("failed to publish login event", zap.String("address", claims.Subject), zap.Error(err))
	}
}
