package auth

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

// Users is the query layer for the users table. Every method issues a
// single statement. Matches on username, email and password are
// re-checked in Go so that they stay case-sensitive under collations
// that fold case (MySQL's default does).
type Users struct {
	DB        *gorm.DB
	Passwords Passwords
}

func (s *Users) passwords() Passwords {
	if s.Passwords == nil {
		return PlainPasswords{}
	}
	return s.Passwords
}

// Create inserts u, encoding u.Password first. u.ID is set on success.
func (s *Users) Create(ctx context.Context, u *User) error {
	enc, err := s.passwords().Hash(u.Password)
	if err != nil {
		return fmt.Errorf("encode password: %w", err)
	}
	u.Password = enc
	if err := s.DB.WithContext(ctx).Create(u).Error; err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *Users) ByCredentials(ctx context.Context, username, password string) (*User, error) {
	rows, err := s.byUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if s.passwords().Match(rows[i].Password, password) {
			return &rows[i], nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *Users) ByUsername(ctx context.Context, username string) (*User, error) {
	rows, err := s.byUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrUserNotFound
	}
	return &rows[0], nil
}

func (s *Users) IDByUsername(ctx context.Context, username string) (uint64, error) {
	var rows []User
	if err := s.DB.WithContext(ctx).
		Select("id", "username").
		Where("username = ?", username).
		Find(&rows).Error; err != nil {
		return 0, fmt.Errorf("select user id: %w", err)
	}
	for _, u := range rows {
		if u.Username == username {
			return u.ID, nil
		}
	}
	return 0, ErrUserNotFound
}

// FindByUsernameOrEmail returns every user whose username or email equals
// the given value exactly.
func (s *Users) FindByUsernameOrEmail(ctx context.Context, username, email string) ([]User, error) {
	var rows []User
	if err := s.DB.WithContext(ctx).
		Where("username = ? OR email = ?", username, email).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	out := rows[:0]
	for _, u := range rows {
		if u.Username == username || u.Email == email {
			out = append(out, u)
		}
	}
	return out, nil
}

// Delete removes the user; the storage engine cascades to posts,
// comments, likes and notes.
func (s *Users) Delete(ctx context.Context, id uint64) error {
	if err := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&User{}).Error; err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (s *Users) byUsername(ctx context.Context, username string) ([]User, error) {
	var rows []User
	if err := s.DB.WithContext(ctx).Where("username = ?", username).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}
	out := rows[:0]
	for _, u := range rows {
		if u.Username == username {
			out = append(out, u)
		}
	}
	return out, nil
}
