package auth

import (
	"context"
	"errors"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrDuplicateIdentity  = errors.New("username or email already exists")
	ErrPasswordMismatch   = errors.New("password and confirm password do not match")
)

type Service struct {
	Users *Users
}

type RegisterInput struct {
	Email           string
	Username        string
	Firstname       string
	Lastname        string
	Password        string
	ConfirmPassword string
}

// Register creates a user. It does not touch any session; the caller
// logs in separately.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	if in.Password != in.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	existing, err := s.Users.FindByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, ErrDuplicateIdentity
	}

	u := &User{
		Email:     in.Email,
		Username:  in.Username,
		Firstname: in.Firstname,
		Lastname:  in.Lastname,
		Password:  in.Password,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login returns the user whose username and password both match exactly.
func (s *Service) Login(ctx context.Context, username, password string) (*User, error) {
	u, err := s.Users.ByCredentials(ctx, username, password)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
