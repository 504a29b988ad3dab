// Package localstore keeps user records in memory and mirrors every change to
// a JSON document on disk. It is the single-process alternative to the SQL
// repository and satisfies the same domain.UserStore contract.
package localstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"userdirectory/internal/domain"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
)

var ErrClosed = errors.New("local store is closed")

type document struct {
	NextID int64         `json:"nextId"`
	Users  []domain.User `json:"users"`
}

var _ domain.UserStore = (*Store)(nil)

type Store struct {
	mu     sync.RWMutex
	path   string
	doc    document
	closed bool
	log    *zap.Logger
}

// Open loads the document at path. A missing file yields an empty store; the
// file is created on Initialize or on the first write.
func Open(path string, log *zap.Logger) (*Store, error) {
	s := &Store{
		path: path,
		doc:  document{NextID: 1, Users: []domain.User{}},
		log:  log.Named("localstore"),
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if doc.Users == nil {
		doc.Users = []domain.User{}
	}
	// nextId мог отстать, если файл правили руками
	for _, u := range doc.Users {
		if u.ID >= doc.NextID {
			doc.NextID = u.ID + 1
		}
	}
	if doc.NextID < 1 {
		doc.NextID = 1
	}
	s.doc = doc
	s.log.Debug("loaded users", zap.String("path", path), zap.Int("count", len(doc.Users)))
	return s, nil
}

func (s *Store) Initialize(ctx context.Context, seed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	next := s.cloneDoc()
	if seed {
		for _, sample := range domain.SampleUsers {
			if indexByEmail(next.Users, sample.Email) >= 0 {
				continue
			}
			sample.ID = next.NextID
			sample.CreatedAt = time.Now().UTC()
			next.NextID++
			next.Users = append(next.Users, sample)
		}
	}
	return s.commit(next)
}

func (s *Store) List(ctx context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}

	users := make([]domain.User, len(s.doc.Users))
	copy(users, s.doc.Users)
	sort.SliceStable(users, func(i, j int) bool {
		if !users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].CreatedAt.After(users[j].CreatedAt)
		}
		return users[i].ID > users[j].ID
	})
	return users, nil
}

func (s *Store) Create(ctx context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if indexByEmail(s.doc.Users, u.Email) >= 0 {
		return domain.ErrEmailTaken
	}

	next := s.cloneDoc()
	created := domain.User{
		ID:        next.NextID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		CreatedAt: time.Now().UTC(),
	}
	next.NextID++
	next.Users = append(next.Users, created)
	if err := s.commit(next); err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	*u = created
	return nil
}

func (s *Store) Update(ctx context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	idx := indexByID(s.doc.Users, u.ID)
	if idx < 0 {
		return domain.ErrUserNotFound
	}
	if other := indexByEmail(s.doc.Users, u.Email); other >= 0 && other != idx {
		return domain.ErrEmailTaken
	}

	next := s.cloneDoc()
	next.Users[idx].Name = u.Name
	next.Users[idx].Email = u.Email
	next.Users[idx].Phone = u.Phone
	if err := s.commit(next); err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	*u = next.Users[idx]
	return nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	idx := indexByID(s.doc.Users, id)
	if idx < 0 {
		return domain.ErrUserNotFound
	}

	next := s.cloneDoc()
	next.Users = append(next.Users[:idx], next.Users[idx+1:]...)
	if err := s.commit(next); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, ErrClosed
	}
	return int64(len(s.doc.Users)), nil
}

func (s *Store) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	_, err := os.Stat(filepath.Dir(s.path))
	return err
}

func (s *Store) Name() string {
	return "Local file"
}

// Close writes the current state one last time. Further calls are no-ops.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.persist(s.doc)
}

func (s *Store) cloneDoc() document {
	users := make([]domain.User, len(s.doc.Users))
	copy(users, s.doc.Users)
	return document{NextID: s.doc.NextID, Users: users}
}

// commit persists next and only then makes it the visible state.
func (s *Store) commit(next document) error {
	if err := s.persist(next); err != nil {
		return err
	}
	s.doc = next
	return nil
}

func (s *Store) persist(doc document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

func indexByID(users []domain.User, id int64) int {
	for i := range users {
		if users[i].ID == id {
			return i
		}
	}
	return -1
}

func indexByEmail(users []domain.User, email string) int {
	for i := range users {
		if users[i].Email == email {
			return i
		}
	}
	return -1
}
