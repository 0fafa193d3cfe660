package apitest

import (
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

var errBadCredentials = errors.New("invalid credentials")

// credentialsVerifier checks admin logins against bcrypt hashes, the way a
// real deployment stores them.
type credentialsVerifier struct {
	mu     sync.RWMutex
	hashes map[string][]byte
}

func newCredentialsVerifier() *credentialsVerifier {
	return &credentialsVerifier{hashes: make(map[string][]byte)}
}

func (cv *credentialsVerifier) AddUser(username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return errors.Wrap(err, "hash password")
	}
	cv.mu.Lock()
	cv.hashes[username] = hash
	cv.mu.Unlock()
	return nil
}

func (cv *credentialsVerifier) ValidateUser(username, password string) error {
	cv.mu.RLock()
	hash, ok := cv.hashes[username]
	cv.mu.RUnlock()
	if !ok {
		return errBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return errBadCredentials
	}
	return nil
}
