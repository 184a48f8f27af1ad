package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/degreedialog/advisor/internal/common"
	"github.com/degreedialog/advisor/internal/server/auth"
	"github.com/degreedialog/advisor/internal/server/config"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TokenPair bundles a short-lived access token and a long-lived refresh
// token. Both are stateless JWTs; issuing a new pair never revokes an older
// one.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Service handles registration, login, and per-request bearer authorization.
type Service struct {
	repo  Repository
	codec *auth.Codec
}

func NewService(repo Repository, cfg *config.Config) *Service {
	codec := auth.NewCodec(
		[]byte(cfg.SecretKey),
		cfg.AccessTokenValidityDuration,
		cfg.RefreshTokenValidityDuration,
	)
	return &Service{repo: repo, codec: codec}
}

// Register creates an account and issues its first token pair. Username is
// checked for conflicts before email, so when both collide the caller sees
// the username conflict. Store failures during the checks or the insert
// surface before any token is issued.
//
// Known limitation: the existence checks and the insert are not atomic. Two
// registrations for the same username racing each other can both pass the
// checks and both insert. The reference deployment runs without a unique
// index, so this is kept as-is rather than fixed at the store level.
func (s *Service) Register(ctx context.Context, userName, email, password string) (*User, *TokenPair, error) {
	if userName == "" || email == "" || password == "" {
		return nil, nil, common.ErrorValidation
	}

	if err := s.checkConflict(ctx, userName, email); err != nil {
		return nil, nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, common.ErrorInternal
	}

	user := &User{
		ID:           uuid.NewString(),
		UserName:     userName,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, nil, common.ErrorUsernameTaken
		}
		return nil, nil, fmt.Errorf("error creating user: %w", err)
	}

	pair, err := s.issueTokenPair(user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

func (s *Service) checkConflict(ctx context.Context, userName, email string) error {
	if _, err := s.repo.GetByUserName(ctx, userName); err == nil {
		return common.ErrorUsernameTaken
	} else if !errors.Is(err, common.ErrorNotFound) {
		return err
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return common.ErrorEmailTaken
	} else if !errors.Is(err, common.ErrorNotFound) {
		return err
	}

	return nil
}

// Login verifies the password against the stored hash and issues a fresh
// token pair. Unknown username and wrong password are folded into the same
// ErrorInvalidCredentials so the response does not reveal whether the account
// exists.
func (s *Service) Login(ctx context.Context, userName, password string) (*User, *TokenPair, error) {
	if userName == "" || password == "" {
		return nil, nil, common.ErrorValidation
	}

	user, err := s.repo.GetByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrorInvalidCredentials
		}
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return nil, nil, common.ErrorInvalidCredentials
	}

	pair, err := s.issueTokenPair(user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// Authorize resolves a bearer token to its user record. Only access tokens
// authorize requests. An unknown subject maps to ErrorUnauthorized, same as a
// missing credential, so a valid-looking token for a deleted account leaks
// nothing. Store failures pass through as their 503 sub-kinds. Pure read: no
// writes happen here.
func (s *Service) Authorize(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, common.ErrorUnauthorized
	}

	subject, kind, err := s.codec.Parse(token)
	if err != nil {
		return nil, err
	}
	if kind != auth.TokenKindAccess {
		return nil, common.ErrInvalidToken
	}

	user, err := s.repo.GetByID(ctx, subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, err
	}

	return user, nil
}

func (s *Service) issueTokenPair(userID string) (*TokenPair, error) {
	access, err := s.codec.Issue(userID, auth.TokenKindAccess)
	if err != nil {
		return nil, common.ErrorInternal
	}

	refresh, err := s.codec.Issue(userID, auth.TokenKindRefresh)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
