package authform

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	ghmmodels "gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.Models"
)

// ErrNoSession means storage holds no usable token
var ErrNoSession = errors.New("no session")

// Storage is the client-side key/value store the session lives in
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// ExpiringStorage is implemented by stores that can drop a value on their own
type ExpiringStorage interface {
	Storage
	SetWithExpiry(key, value string, expiresAt time.Time) error
}

// MemoryStorage is a map-backed Storage
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStorage returns an empty store
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

// Get returns the value stored under key
func (s *MemoryStorage) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key
func (s *MemoryStorage) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Delete removes key
func (s *MemoryStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// TokenExpiry reads the exp claim of a JWT without verifying it. The auth
// API owns the signing key; this is only used to size the session cookie.
func TokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// SaveSession writes the token and the JSON-serialized user. The token's own
// exp claim wins over fallbackTTL when the store supports expiry.
func SaveSession(storage Storage, session *ghmmodels.Session, fallbackTTL time.Duration, now time.Time) error {
	user, err := serializeUser(session.User)
	if err != nil {
		return err
	}

	if expiring, ok := storage.(ExpiringStorage); ok {
		expiresAt, ok := TokenExpiry(session.Token)
		if !ok {
			expiresAt = now.Add(fallbackTTL)
		}
		if err := expiring.SetWithExpiry(ghmmodels.StorageKeyToken, session.Token, expiresAt); err != nil {
			return fmt.Errorf("failed to store token: %w", err)
		}
		if err := expiring.SetWithExpiry(ghmmodels.StorageKeyUser, user, expiresAt); err != nil {
			return fmt.Errorf("failed to store user: %w", err)
		}
		return nil
	}

	if err := storage.Set(ghmmodels.StorageKeyToken, session.Token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	if err := storage.Set(ghmmodels.StorageKeyUser, user); err != nil {
		return fmt.Errorf("failed to store user: %w", err)
	}
	return nil
}

func serializeUser(user json.RawMessage) (string, error) {
	if len(bytes.TrimSpace(user)) == 0 {
		return "null", nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, user); err != nil {
		return "", fmt.Errorf("invalid user object: %w", err)
	}
	return buf.String(), nil
}

// LoadSession restores what SaveSession wrote
func LoadSession(storage Storage) (*ghmmodels.Session, error) {
	token, ok := storage.Get(ghmmodels.StorageKeyToken)
	if !ok || token == "" {
		return nil, ErrNoSession
	}
	session := &ghmmodels.Session{Token: token}
	if user, ok := storage.Get(ghmmodels.StorageKeyUser); ok && json.Valid([]byte(user)) {
		session.User = json.RawMessage(user)
	}
	return session, nil
}

// ClearSession removes both keys
func ClearSession(storage Storage) error {
	return errors.Join(
		storage.Delete(ghmmodels.StorageKeyToken),
		storage.Delete(ghmmodels.StorageKeyUser),
	)
}
