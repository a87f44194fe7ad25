package client

import (
	"errors"
	"sync"
)

// Persisted keys.
const (
	kvUsername  = "username"
	kvUserRole  = "userRole"
	kvSessionID = "sessionId"
)

// Identity is the signed-in user as the client knows it.
type Identity struct {
	Username  string
	Role      string
	SessionID string
}

// LoggedIn reports whether the identity carries a usable session.
func (id Identity) LoggedIn() bool { return id.SessionID != "" }

// SessionStore holds the current identity. It is initialized from the
// durable store at startup and mutated only by login and logout.
type SessionStore struct {
	kv *KV

	mu  sync.RWMutex
	cur Identity
}

// NewSessionStore loads any persisted identity from kv.
func NewSessionStore(kv *KV) (*SessionStore, error) {
	s := &SessionStore{kv: kv}
	id, err := loadIdentity(kv)
	if err != nil {
		return nil, err
	}
	s.cur = id
	return s, nil
}

// Current returns the identity as of now.
func (s *SessionStore) Current() Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// set persists and replaces the identity.
func (s *SessionStore) set(id Identity) error {
	if err := s.kv.Set(kvUsername, id.Username); err != nil {
		return err
	}
	if err := s.kv.Set(kvUserRole, id.Role); err != nil {
		return err
	}
	if err := s.kv.Set(kvSessionID, id.SessionID); err != nil {
		return err
	}
	s.mu.Lock()
	s.cur = id
	s.mu.Unlock()
	return nil
}

// clear wipes the persisted identity.
func (s *SessionStore) clear() error {
	for _, key := range []string{kvUsername, kvUserRole, kvSessionID} {
		if err := s.kv.Delete(key); err != nil {
			return err
		}
	}
	s.mu.Lock()
	s.cur = Identity{}
	s.mu.Unlock()
	return nil
}

func loadIdentity(kv *KV) (Identity, error) {
	var id Identity
	for key, dst := range map[string]*string{
		kvUsername:  &id.Username,
		kvUserRole:  &id.Role,
		kvSessionID: &id.SessionID,
	} {
		value, err := kv.Get(key)
		if errors.Is(err, ErrKeyNotFound) {
			continue
		}
		if err != nil {
			return Identity{}, err
		}
		*dst = value
	}
	return id, nil
}
