// Package users is the user directory: a persisted collection of accounts
// keyed by id and unique by email.
package users

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"streamvault/internal/blob"
	"streamvault/internal/collection"
	"streamvault/models"
)

// BlobKey is the substrate key the directory persists under.
const BlobKey = "streaming_users"

var (
	ErrEmailRequired = errors.New("email is required")
	ErrNameRequired  = errors.New("name is required")
	ErrEmailTaken    = errors.New("user with this email already exists")
	ErrUserNotFound  = errors.New("user not found")
)

// Service manages persistence of streamvault accounts.
type Service struct {
	store *collection.Store[models.User]
}

// NewService creates a directory backed by the given substrate.
func NewService(store blob.Store) *Service {
	return &Service{
		store: collection.New(store, BlobKey, collection.Append, func(u models.User) string {
			return u.ID
		}),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func emailKey(u models.User) string {
	return normalizeEmail(u.Email)
}

// List returns all registered users in insertion order.
func (s *Service) List() []models.User {
	return s.store.LoadAll()
}

// Get returns the user with the given id if present.
func (s *Service) Get(id string) (models.User, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.User{}, false
	}

	for _, user := range s.store.LoadAll() {
		if user.ID == id {
			return user, true
		}
	}
	return models.User{}, false
}

// FindByEmail looks a user up by email, case-insensitively.
func (s *Service) FindByEmail(email string) (models.User, bool) {
	want := normalizeEmail(email)
	if want == "" {
		return models.User{}, false
	}

	for _, user := range s.store.LoadAll() {
		if emailKey(user) == want {
			return user, true
		}
	}
	return models.User{}, false
}

// Create registers a new account. Uniqueness is enforced on the normalized
// email; a collision returns ErrEmailTaken and leaves the directory
// untouched.
func (s *Service) Create(email, name, passwordHash string) (models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return models.User{}, ErrEmailRequired
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return models.User{}, ErrNameRequired
	}

	now := time.Now().UTC()
	user := models.User{
		ID:           uuid.NewString(),
		Email:        normalizeEmail(email),
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.InsertUnique(user, emailKey); err != nil {
		if errors.Is(err, collection.ErrDuplicateKey) {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, err
	}

	return user, nil
}

// ProfileUpdate carries the fields UpdateProfile may change. Nil fields are
// left alone; id and createdAt are not representable here and therefore
// immutable by construction.
type ProfileUpdate struct {
	Email  *string
	Name   *string
	Avatar *string
}

// UpdateProfile shallow-merges the update into the existing record and
// writes the directory back. Changing the email re-checks uniqueness.
func (s *Service) UpdateProfile(id string, update ProfileUpdate) (models.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.User{}, ErrUserNotFound
	}

	if update.Email != nil {
		want := normalizeEmail(*update.Email)
		if want == "" {
			return models.User{}, ErrEmailRequired
		}
		if existing, ok := s.FindByEmail(want); ok && existing.ID != id {
			return models.User{}, ErrEmailTaken
		}
	}
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return models.User{}, ErrNameRequired
	}

	user, found, err := s.store.Update(id, func(u models.User) models.User {
		if update.Email != nil {
			u.Email = normalizeEmail(*update.Email)
		}
		if update.Name != nil {
			u.Name = strings.TrimSpace(*update.Name)
		}
		if update.Avatar != nil {
			u.Avatar = strings.TrimSpace(*update.Avatar)
		}
		u.UpdatedAt = time.Now().UTC()
		return u
	})
	if err != nil {
		return models.User{}, err
	}
	if !found {
		return models.User{}, ErrUserNotFound
	}

	return user, nil
}

// SetPasswordHash replaces the stored credential for the account.
func (s *Service) SetPasswordHash(id, hash string) (models.User, error) {
	user, found, err := s.store.Update(id, func(u models.User) models.User {
		u.PasswordHash = hash
		u.UpdatedAt = time.Now().UTC()
		return u
	})
	if err != nil {
		return models.User{}, err
	}
	if !found {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

// Remove deletes an account by id, reporting whether one was removed.
func (s *Service) Remove(id string) (bool, error) {
	return s.store.RemoveByKey(strings.TrimSpace(id))
}

// Count returns the number of registered users from a fresh read.
func (s *Service) Count() int {
	return s.store.Count()
}

// Subscribe registers a change listener; see collection.Store.Subscribe.
func (s *Service) Subscribe(fn func()) func() {
	return s.store.Subscribe(fn)
}

// LoadAll implements binding.Source.
func (s *Service) LoadAll() []models.User {
	return s.store.LoadAll()
}
