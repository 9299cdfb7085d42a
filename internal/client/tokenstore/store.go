// Package tokenstore persists the session credentials of the logged-in user.
//
// The whole session (both tokens and the cached profile) is kept as one JSON
// document under a single key of a metadata.Repository. A missing or
// unreadable record means "logged out"; reads never fail.
package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/bujo/internal/client/models"
	"github.com/dmitrijs2005/bujo/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/bujo/internal/logging"
)

// Key is the repository key holding the serialized credentials.
const Key = "auth"

// ErrNoSession is returned by SetUser when there is no record to update.
var ErrNoSession = errors.New("no stored session")

type Store struct {
	repo metadata.Repository
	log  logging.Logger

	// serializes read-modify-write cycles issued by this process
	mu sync.Mutex
}

func New(repo metadata.Repository, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{repo: repo, log: log.With("component", "tokenstore")}
}

// Write replaces the stored credentials with creds.
func (s *Store) Write(ctx context.Context, creds models.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(ctx, creds)
}

func (s *Store) write(ctx context.Context, creds models.Credentials) error {
	b, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}
	if err := s.repo.Set(ctx, Key, b); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	return nil
}

// Read returns the stored credentials or nil when there are none.
func (s *Store) Read(ctx context.Context) *models.Credentials {
	b, err := s.repo.Get(ctx, Key)
	if err != nil {
		s.log.Warn(ctx, "credentials read failed", "error", err)
		return nil
	}
	return s.decode(ctx, b)
}

func (s *Store) decode(ctx context.Context, b []byte) *models.Credentials {
	if len(b) == 0 {
		return nil
	}

	var c models.Credentials
	if err := json.Unmarshal(b, &c); err != nil {
		s.log.Warn(ctx, "stored credentials are malformed, treating as logged out", "error", err)
		return nil
	}
	return &c
}

// Clear removes the stored credentials. Clearing an empty store is not an error.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(ctx, Key); err != nil {
		s.log.Error(ctx, "credentials clear failed", "error", err)
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

func (s *Store) AccessToken(ctx context.Context) string {
	if c := s.Read(ctx); c != nil {
		return c.Access
	}
	return ""
}

func (s *Store) RefreshToken(ctx context.Context) string {
	if c := s.Read(ctx); c != nil {
		return c.Refresh
	}
	return ""
}

func (s *Store) User(ctx context.Context) *models.User {
	if c := s.Read(ctx); c != nil {
		return c.User
	}
	return nil
}

// SetAccessToken swaps the access token of the stored record, keeping the
// refresh token and the user. It does nothing when no record exists, so a
// refresh that finishes after logout cannot resurrect the session.
func (s *Store) SetAccessToken(ctx context.Context, access string) error {
	return s.modify(ctx, func(c *models.Credentials) (*models.Credentials, error) {
		if c == nil {
			return nil, nil
		}
		c.Access = access
		return c, nil
	})
}

// SetUser replaces the cached profile, keeping both tokens, as one
// read-modify-write with respect to SetAccessToken. It writes nothing and
// returns ErrNoSession when no record exists.
func (s *Store) SetUser(ctx context.Context, user *models.User) error {
	return s.modify(ctx, func(c *models.Credentials) (*models.Credentials, error) {
		if c == nil {
			return nil, ErrNoSession
		}
		c.User = user
		return c, nil
	})
}

// modify rewrites the stored record with fn, which gets nil when there is
// no session and returns nil to write nothing. Repositories implementing
// metadata.Updater run the read and the write in one transaction, so other
// processes sharing the database cannot interleave.
func (s *Store) modify(ctx context.Context, fn func(c *models.Credentials) (*models.Credentials, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.repo.(metadata.Updater)
	if !ok {
		next, err := fn(s.Read(ctx))
		if err != nil || next == nil {
			return err
		}
		return s.write(ctx, *next)
	}

	err := u.Update(ctx, Key, func(old []byte) ([]byte, error) {
		next, err := fn(s.decode(ctx, old))
		if err != nil || next == nil {
			return nil, err
		}
		b, err := json.Marshal(next)
		if err != nil {
			return nil, fmt.Errorf("marshal credentials: %w", err)
		}
		return b, nil
	})
	switch {
	case err == nil, errors.Is(err, ErrNoSession):
		return err
	default:
		return fmt.Errorf("save credentials: %w", err)
	}
}
