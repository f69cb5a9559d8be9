package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	domainErrors "github.com/polkiloo/pharmadash/internal/domain/errors"
	"github.com/polkiloo/pharmadash/internal/domain/model"
	"github.com/polkiloo/pharmadash/internal/domain/repository"
	pkgAuth "github.com/polkiloo/pharmadash/internal/pkg/auth"
)

const (
	minLoginLength    = 3
	minPasswordLength = 6
)

// AuthUseCase handles user lifecycle, tokens and session resolution.
type AuthUseCase struct {
	users    repository.UserRepository
	hasher   pkgAuth.PasswordHasher
	tokens   pkgAuth.Strategy
	defaults Defaults
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy, defaults Defaults) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy, defaults: defaults}
}

// Register validates the form, creates a user and returns auth token.
func (u *AuthUseCase) Register(ctx context.Context, in model.Registration) (*model.User, string, error) {
	in.Login = strings.TrimSpace(in.Login)
	in.Email = strings.TrimSpace(in.Email)
	if err := validateRegistration(in); err != nil {
		return nil, "", err
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, pkgAuth.ErrPasswordTooLong) {
			return nil, "", fmt.Errorf("%w: %v", domainErrors.ErrInvalidRegistration, err)
		}
		return nil, "", err
	}

	usr, err := u.users.Create(ctx, model.User{
		Login:        in.Login,
		Email:        in.Email,
		PasswordHash: hash,
		WarehouseID:  in.WarehouseID,
		APIToken:     strings.TrimSpace(in.APIToken),
	})
	if err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(pkgAuth.Claims{UserID: usr.ID, Login: usr.Login})
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

func validateRegistration(in model.Registration) error {
	switch {
	case utf8.RuneCountInString(in.Login) < minLoginLength:
		return fmt.Errorf("%w: login must be at least %d characters", domainErrors.ErrInvalidRegistration, minLoginLength)
	case !validEmail(in.Email):
		return fmt.Errorf("%w: email is not valid", domainErrors.ErrInvalidRegistration)
	case utf8.RuneCountInString(in.Password) < minPasswordLength:
		return fmt.Errorf("%w: password must be at least %d characters", domainErrors.ErrInvalidRegistration, minPasswordLength)
	case in.Password != in.ConfirmPassword:
		return fmt.Errorf("%w: passwords do not match", domainErrors.ErrInvalidRegistration)
	case in.WarehouseID < 0:
		return fmt.Errorf("%w: warehouse id must not be negative", domainErrors.ErrInvalidRegistration)
	}
	return nil
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// Authenticate validates credentials and returns auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, login, password string) (*model.User, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(pkgAuth.Claims{UserID: usr.ID, Login: usr.Login})
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ParseToken extracts user ID from provided token.
func (u *AuthUseCase) ParseToken(token string) (int64, error) {
	if token == "" {
		return 0, pkgAuth.ErrInvalidToken
	}
	claims, err := u.tokens.ParseToken(token)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}
