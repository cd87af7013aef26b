package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// Passwords encodes a password for storage and checks a candidate
// against the stored value.
type Passwords interface {
	Hash(password string) (string, error)
	Match(stored, password string) bool
}

// PlainPasswords stores passwords as given and compares them exactly.
type PlainPasswords struct{}

func (PlainPasswords) Hash(password string) (string, error) { return password, nil }

func (PlainPasswords) Match(stored, password string) bool { return stored == password }

type BcryptPasswords struct {
	Cost int
}

func (b BcryptPasswords) Hash(password string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (BcryptPasswords) Match(stored, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

// PasswordsFor picks bcrypt when hashing is enabled, plaintext otherwise.
func PasswordsFor(hashing bool) Passwords {
	if hashing {
		return BcryptPasswords{}
	}
	return PlainPasswords{}
}
