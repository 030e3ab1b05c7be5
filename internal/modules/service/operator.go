package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vpvn/bugreports/internal/config"
	"github.com/vpvn/bugreports/internal/infra/db"
	"github.com/vpvn/bugreports/internal/modules/model"
	"github.com/vpvn/bugreports/internal/modules/repo"
	"github.com/vpvn/bugreports/internal/pkg/utils/secrets"
	"github.com/vpvn/bugreports/internal/pkg/utils/tokens"
	"gorm.io/gorm"
)

type OperatorService interface {
	// Create registers an operator and returns its bearer token. The token is
	// not stored and cannot be recovered later.
	Create(ctx context.Context, name string, isAdmin bool) (*model.Operator, string, error)
	// Ensure creates the operator or aligns its token and admin flag.
	Ensure(ctx context.Context, name, rawToken string, isAdmin bool) (*model.Operator, bool, error)
	Authenticate(ctx context.Context, rawToken string) (*model.Operator, error)
	List(ctx context.Context) ([]*model.Operator, error)
}

type operatorService struct {
	r   repo.OperatorRepo
	cfg *config.Config
}

func NewOperatorService(r repo.OperatorRepo, cfg *config.Config) OperatorService {
	return &operatorService{r: r, cfg: cfg}
}

func (s *operatorService) Create(ctx context.Context, name string, isAdmin bool) (*model.Operator, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, "", &ValidationError{Field: "name", Msg: "this field may not be blank"}
	}
	raw, secret, err := tokens.Generate(s.cfg.Root.OperatorTokenPrefix)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}
	phc, err := secrets.HashSecret(secret, s.cfg.Root.SecretPepper)
	if err != nil {
		return nil, "", err
	}

	o := &model.Operator{
		Name:         name,
		IsAdmin:      isAdmin,
		TokenHMAC:    tokens.HMAC256Hex(s.cfg.Root.SecretPepper, secret),
		TokenHashPHC: phc,
	}
	if err := s.r.Create(ctx, o); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, "", fmt.Errorf("operator %q: %w", name, ErrConflict)
		}
		return nil, "", err
	}
	return o, raw, nil
}

func (s *operatorService) Ensure(ctx context.Context, name, rawToken string, isAdmin bool) (*model.Operator, bool, error) {
	secret, ok := tokens.ParseToken(rawToken, s.cfg.Root.OperatorTokenPrefix)
	if !ok {
		return nil, false, ErrInvalidToken
	}
	lookup := tokens.HMAC256Hex(s.cfg.Root.SecretPepper, secret)
	phc, err := secrets.HashSecret(secret, s.cfg.Root.SecretPepper)
	if err != nil {
		return nil, false, err
	}

	o, err := s.r.GetByName(ctx, name)
	switch {
	case err == nil:
		if err := s.r.UpdateToken(ctx, o.ID, lookup, phc, isAdmin); err != nil {
			return nil, false, err
		}
		o.TokenHMAC, o.TokenHashPHC, o.IsAdmin = lookup, phc, isAdmin
		return o, false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		o = &model.Operator{Name: name, IsAdmin: isAdmin, TokenHMAC: lookup, TokenHashPHC: phc}
		if err := s.r.Create(ctx, o); err != nil {
			return nil, false, err
		}
		return o, true, nil
	default:
		return nil, false, err
	}
}

// Authenticate resolves a bearer token to its operator. Every failure mode
// collapses into ErrInvalidToken except storage errors.
func (s *operatorService) Authenticate(ctx context.Context, rawToken string) (*model.Operator, error) {
	secret, ok := tokens.ParseToken(rawToken, s.cfg.Root.OperatorTokenPrefix)
	if !ok {
		return nil, ErrInvalidToken
	}

	o, err := s.r.GetByTokenHMAC(ctx, tokens.HMAC256Hex(s.cfg.Root.SecretPepper, secret))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	if s.cfg.Root.EnableArgon2Verification {
		match, err := secrets.VerifySecret(secret, s.cfg.Root.SecretPepper, o.TokenHashPHC)
		if err != nil || !match {
			return nil, ErrInvalidToken
		}
	}
	return o, nil
}

func (s *operatorService) List(ctx context.Context) ([]*model.Operator, error) {
	return s.r.List(ctx)
}
