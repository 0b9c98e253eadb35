// Package session is the session register: at most one current-user
// pointer layered over the user directory, with the sign-up, sign-in,
// sign-out and profile-update lifecycle on top.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"

	"streamvault/internal/blob"
	"streamvault/models"
	"streamvault/services/users"
	"streamvault/utils/validate"
)

// BlobKey is the substrate key the session pointer persists under.
const BlobKey = "streaming_auth"

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrInvalidCredentials deliberately covers both an unknown email and a
	// rejected password so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// AuthState is the snapshot the binding layer republishes after each
// lifecycle transition.
type AuthState struct {
	User          *models.User
	Authenticated bool
}

// Service manages the session pointer. Credential operations accept a
// context because they are the register's asynchronous boundary, even
// though the only real I/O is the substrate write.
type Service struct {
	mu        sync.Mutex
	blob      blob.Store
	directory *users.Service
	creds     CredentialPolicy

	subMu   sync.Mutex
	subs    map[int]func()
	nextSub int
}

// Option configures the service.
type Option func(*Service)

// WithCredentialPolicy swaps the password policy. Default is
// AcceptAnyCredentials, matching the reference behavior.
func WithCredentialPolicy(p CredentialPolicy) Option {
	return func(s *Service) { s.creds = p }
}

// NewService creates a session register over the given substrate and
// directory.
func NewService(store blob.Store, directory *users.Service, opts ...Option) *Service {
	s := &Service{
		blob:      store,
		directory: directory,
		creds:     AcceptAnyCredentials(),
		subs:      make(map[int]func()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SignUp validates the input, registers the account, and signs the new
// user in. A duplicate email returns users.ErrEmailTaken with no partial
// write: the pointer only moves after the directory insert succeeded.
func (s *Service) SignUp(ctx context.Context, email, password, name string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}

	if err := validate.Email(email); err != nil {
		return models.User{}, err
	}
	if err := validate.Password(password); err != nil {
		return models.User{}, err
	}
	if err := validate.Name(name); err != nil {
		return models.User{}, err
	}

	hash, err := s.creds.Hash(password)
	if err != nil {
		return models.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.directory.Create(email, name, hash)
	if err != nil {
		return models.User{}, err
	}

	if err := s.setPointerLocked(user.ID); err != nil {
		return models.User{}, err
	}

	s.notify()
	return user, nil
}

// SignIn resolves the email and checks the password through the credential
// policy. Both failure modes collapse into ErrInvalidCredentials.
func (s *Service) SignIn(ctx context.Context, email, password string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}

	user, ok := s.directory.FindByEmail(email)
	if !ok {
		return models.User{}, ErrInvalidCredentials
	}
	if err := s.creds.Verify(user.PasswordHash, password); err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.setPointerLocked(user.ID); err != nil {
		return models.User{}, err
	}

	s.notify()
	return user, nil
}

// SignOut clears the pointer only; the user record stays in the directory.
func (s *Service) SignOut(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.blob.Delete(BlobKey); err != nil {
		return err
	}

	s.notify()
	return nil
}

// CurrentUser resolves the pointer against the directory. A missing or
// corrupt pointer, or a pointer whose target no longer exists, reads as an
// absent session rather than an error.
func (s *Service) CurrentUser() (models.User, bool) {
	data, ok, err := s.blob.Get(BlobKey)
	if err != nil {
		log.Printf("[session] read %s: %v", BlobKey, err)
		return models.User{}, false
	}
	if !ok || len(data) == 0 {
		return models.User{}, false
	}

	var pointer models.SessionPointer
	if err := json.Unmarshal(data, &pointer); err != nil {
		log.Printf("[session] corrupt pointer, treating as signed out: %v", err)
		return models.User{}, false
	}
	if pointer.UserID == "" {
		return models.User{}, false
	}

	return s.directory.Get(pointer.UserID)
}

// Authenticated reports whether the pointer currently resolves.
func (s *Service) Authenticated() bool {
	_, ok := s.CurrentUser()
	return ok
}

// State returns the snapshot for the binding layer.
func (s *Service) State() AuthState {
	user, ok := s.CurrentUser()
	if !ok {
		return AuthState{}
	}
	return AuthState{User: &user, Authenticated: true}
}

// UpdateProfile merges the update into the signed-in user's record through
// the directory's write path.
func (s *Service) UpdateProfile(update users.ProfileUpdate) (models.User, error) {
	current, ok := s.CurrentUser()
	if !ok {
		return models.User{}, ErrNotAuthenticated
	}

	if update.Email != nil {
		if err := validate.Email(*update.Email); err != nil {
			return models.User{}, err
		}
	}
	if update.Name != nil {
		if err := validate.Name(*update.Name); err != nil {
			return models.User{}, err
		}
	}

	user, err := s.directory.UpdateProfile(current.ID, update)
	if err != nil {
		return models.User{}, err
	}

	s.notify()
	return user, nil
}

func (s *Service) setPointerLocked(userID string) error {
	data, err := json.Marshal(models.SessionPointer{UserID: userID})
	if err != nil {
		return err
	}
	return s.blob.Put(BlobKey, data)
}

// Subscribe registers fn to run after every lifecycle transition. It
// returns an unsubscribe function.
func (s *Service) Subscribe(fn func()) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Service) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
