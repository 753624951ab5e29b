// Package credentials checks logins against the single app-wide account.
package credentials

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// ErrInvalid is returned for any username/password mismatch.
var ErrInvalid = errors.New("invalid username or password")

// params controls argon2id key derivation for the in-memory password digest.
type params struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
	saltLength  uint32
	keyLength   uint32
}

var defaultParams = params{
	memory:      64 * 1024,
	iterations:  2,
	parallelism: 1,
	saltLength:  16,
	keyLength:   32,
}

// Account is the configured login. The plain password is not kept; only an
// argon2id digest of it.
type Account struct {
	username string
	salt     []byte
	digest   []byte
	p        params
}

// NewAccount derives the digest of password. Both values are required.
func NewAccount(username, password string) (*Account, error) {
	if username == "" || password == "" {
		return nil, errors.New("credentials: username and password are required")
	}
	salt := make([]byte, defaultParams.saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("credentials: generate salt: %w", err)
	}
	a := &Account{username: username, salt: salt, p: defaultParams}
	a.digest = a.derive(password)
	return a, nil
}

// Username returns the configured login name.
func (a *Account) Username() string { return a.username }

// Verify succeeds only when both username and password match exactly.
func (a *Account) Verify(username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passOK := subtle.ConstantTimeCompare(a.derive(password), a.digest) == 1
	if !userOK || !passOK {
		return ErrInvalid
	}
	return nil
}

func (a *Account) derive(password string) []byte {
	return argon2.IDKey([]byte(password), a.salt, a.p.iterations, a.p.memory, a.p.parallelism, a.p.keyLength)
}

// String masks the username so an Account can be logged.
func (a *Account) String() string {
	return fmt.Sprintf("account(%s)", strings.Repeat("*", len(a.username)))
}
