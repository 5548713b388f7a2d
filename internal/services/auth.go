package services

import (
	"context"
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/dmitrijs2005/savelinks/internal/common"
	"github.com/dmitrijs2005/savelinks/internal/cryptox"
	"github.com/dmitrijs2005/savelinks/internal/logging"
	"github.com/dmitrijs2005/savelinks/internal/repositories/users"
)

// AuthService registers accounts and turns credentials into a session key.
type AuthService interface {
	Register(ctx context.Context, userName string, password []byte) error
	// Authenticate returns the user id and the derived session key. The caller
	// owns the key and should wipe it on logout.
	Authenticate(ctx context.Context, userName string, password []byte) (int64, []byte, error)
}

type authService struct {
	users users.Repository
	sec   SecurityCore
	log   logging.Logger
}

func NewAuthService(users users.Repository, sec SecurityCore, log logging.Logger) AuthService {
	return &authService{users: users, sec: sec, log: log.With("service", "auth")}
}

var (
	errRegistrationFailed = common.NewDomainError("registration failed, the username might be taken")
	errInvalidCredentials = common.NewValidationError("invalid username or password")
)

func validateCredentials(userName string, password []byte) error {
	err := validation.Errors{
		"username": validation.Validate(strings.TrimSpace(userName), validation.Required),
		"password": validation.Validate(password, validation.Required),
	}.Filter()
	if err != nil {
		return common.NewValidationError(err.Error())
	}
	return nil
}

// Register stores a fresh salt and the verifier of the derived key. Neither
// the password nor the key is persisted.
func (s *authService) Register(ctx context.Context, userName string, password []byte) error {
	if err := validateCredentials(userName, password); err != nil {
		return err
	}

	salt, err := s.sec.GenerateSalt()
	if err != nil {
		s.log.Error(ctx, "salt generation failed", "error", err)
		return common.NewSecurityError("could not generate salt")
	}

	key, err := s.sec.DeriveKey(password, salt)
	if err != nil {
		s.log.Error(ctx, "key derivation failed", "error", err)
		return common.NewSecurityError("key derivation failed")
	}
	defer common.WipeByteArray(key)

	id, err := s.users.Create(ctx, userName, salt, cryptox.HashKey(key))
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			s.log.Warn(ctx, "registration rejected, username exists", "username", userName)
		} else {
			s.log.Error(ctx, "failed to create user", "username", userName, "error", err)
		}
		return errRegistrationFailed
	}

	s.log.Info(ctx, "user registered", "username", userName, "user_id", id)
	return nil
}

func (s *authService) Authenticate(ctx context.Context, userName string, password []byte) (int64, []byte, error) {
	if err := validateCredentials(userName, password); err != nil {
		return 0, nil, err
	}

	u, err := s.users.GetByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.log.Info(ctx, "login failed, user not found", "username", userName)
			return 0, nil, errInvalidCredentials
		}
		s.log.Error(ctx, "failed to fetch user", "username", userName, "error", err)
		return 0, nil, common.NewDomainError("login failed")
	}

	key, err := s.sec.DeriveKey(password, u.Salt)
	if err != nil {
		s.log.Error(ctx, "key derivation failed", "username", userName, "error", err)
		return 0, nil, common.NewSecurityError("key derivation failed")
	}

	if !cryptox.VerifyKey(key, u.Verifier) {
		common.WipeByteArray(key)
		s.log.Warn(ctx, "login failed, wrong password", "username", userName)
		return 0, nil, errInvalidCredentials
	}

	s.log.Info(ctx, "user logged in", "username", userName, "user_id", u.ID)
	return u.ID, key, nil
}
