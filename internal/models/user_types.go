package models

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// User mirrors the user_details table. Username, email and phone number
// are unique; the password hash never leaves the server (note the json:"-").
type User struct {
	ID           int64  `json:"id" db:"id"`
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"-" db:"password_hash"`
	Name         string `json:"name" db:"name"`
	Email        string `json:"email" db:"email"`
	PhoneNumber  string `json:"phoneNumber" db:"phone_number"`
}

// Password Helper (Standard)
type Password struct {
	Plaintext *string
	Hash      string
}

func (p *Password) Set(plaintextPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintextPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.Hash = string(hash)
	p.Plaintext = &plaintextPassword
	return nil
}

// Matches reports whether the plaintext password corresponds to the stored
// hash. bcrypt's comparison is constant time, so wrong passwords and
// unknown users cost the same.
func (p *Password) Matches(plaintextPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(p.Hash), []byte(plaintextPassword))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
