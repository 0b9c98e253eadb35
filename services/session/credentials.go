package session

import "golang.org/x/crypto/bcrypt"

// CredentialPolicy is the extension point for password handling. The
// default policy reproduces the reference behavior of accepting any
// non-empty password; BcryptCredentials upgrades sign-in to a real hash
// comparison without touching the register's state machine.
type CredentialPolicy interface {
	// Hash derives the stored form of a password at sign-up.
	Hash(password string) (string, error)
	// Verify checks a presented password against the stored form.
	Verify(storedHash, password string) error
}

type acceptAny struct{}

// AcceptAnyCredentials accepts any non-empty password and stores nothing.
func AcceptAnyCredentials() CredentialPolicy {
	return acceptAny{}
}

func (acceptAny) Hash(string) (string, error) {
	return "", nil
}

func (acceptAny) Verify(_, password string) error {
	if password == "" {
		return ErrInvalidCredentials
	}
	return nil
}

type bcryptCredentials struct {
	cost int
}

// BcryptCredentials stores a bcrypt hash at sign-up and requires a matching
// password at sign-in.
func BcryptCredentials() CredentialPolicy {
	return bcryptCredentials{cost: bcrypt.DefaultCost}
}

func (c bcryptCredentials) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), c.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (c bcryptCredentials) Verify(storedHash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
