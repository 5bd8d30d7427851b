package mononomics

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrBadCredentials is returned when a login attempt fails.
var ErrBadCredentials = errors.New("authentication failed")

// Credentials guard access to the ledger. The password is only ever held as
// a bcrypt hash.
type Credentials struct {
	Username     string
	PasswordHash []byte
}

// Enabled reports whether a login is required.
func (c Credentials) Enabled() bool { return c.Username != "" }

// Check validates the stored hash.
func (c Credentials) Check() error {
	if !c.Enabled() {
		return nil
	}
	if _, err := bcrypt.Cost(c.PasswordHash); err != nil {
		return fmt.Errorf("invalid password hash for %q: %w", c.Username, err)
	}
	return nil
}

// Verify returns ErrBadCredentials unless username and password match.
func (c Credentials) Verify(username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.Username)) == 1
	// always run bcrypt so a wrong username costs as much as a wrong password
	passErr := bcrypt.CompareHashAndPassword(c.PasswordHash, []byte(password))
	if !userOK || passErr != nil {
		return ErrBadCredentials
	}
	return nil
}

// HashPassword returns the bcrypt hash to configure for password.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("could not hash password: %w", err)
	}
	return string(h), nil
}
