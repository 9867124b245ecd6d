package portal

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"golang.org/x/crypto/bcrypt"
)

// Role decides which actions a signed-in user may perform.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Account is a user allowed to sign in.
type Account struct {
	Email        string `toml:"email"`
	Role         Role   `toml:"role"`
	PasswordHash string `toml:"password_hash"`
}

// NewAccount hashes password with bcrypt.
func NewAccount(email string, role Role, password string) (Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, err
	}
	return Account{Email: email, Role: role, PasswordHash: string(hash)}, nil
}

// DefaultAccounts are used when no accounts file is configured. Each
// password equals the email.
func DefaultAccounts() ([]Account, error) {
	admin, err := NewAccount("admin@portal.cc", RoleAdmin, "admin@portal.cc")
	if err != nil {
		return nil, err
	}
	user, err := NewAccount("user@portal.cc", RoleUser, "user@portal.cc")
	if err != nil {
		return nil, err
	}
	return []Account{admin, user}, nil
}

type accountsFile struct {
	Accounts []Account `toml:"account"`
}

// LoadAccounts reads accounts from a TOML document of [[account]] tables.
func LoadAccounts(r io.Reader) ([]Account, error) {
	var f accountsFile
	if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse accounts: %w", err)
	}
	for i, a := range f.Accounts {
		if a.Email == "" || a.PasswordHash == "" {
			return nil, fmt.Errorf("account %d: email and password_hash are required: %w", i, ErrInvalidInput)
		}
		switch a.Role {
		case RoleAdmin, RoleUser:
		default:
			return nil, fmt.Errorf("account %s: unknown role %q: %w", a.Email, a.Role, ErrInvalidInput)
		}
	}
	return f.Accounts, nil
}

// Authenticator checks credentials against a fixed set of accounts.
type Authenticator struct {
	accounts map[string]Account
}

// NewAuthenticator indexes accounts by email.
func NewAuthenticator(accounts ...Account) *Authenticator {
	a := &Authenticator{accounts: make(map[string]Account, len(accounts))}
	for _, acc := range accounts {
		a.accounts[strings.ToLower(acc.Email)] = acc
	}
	return a
}

// Login returns a new session when the credentials match an account.
func (a *Authenticator) Login(email, password string, now time.Time) (*Session, error) {
	acc, ok := a.accounts[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &Session{Email: acc.Email, Role: acc.Role, Started: now}, nil
}

// Action is something a session may or may not be allowed to do.
type Action int

const (
	ActionRenewLicense Action = iota
	ActionDeleteLicense
)

func (a Action) String() string {
	switch a {
	case ActionRenewLicense:
		return "renew a license"
	case ActionDeleteLicense:
		return "delete a license"
	}
	return "do that"
}

// Session is the signed-in user. It exists from login until logout.
type Session struct {
	Email   string
	Role    Role
	Started time.Time
}

// IsAdmin reports whether the session has the admin role.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

// Authorize returns ErrPermissionDenied unless the session may perform action.
func (s *Session) Authorize(action Action) error {
	if s.IsAdmin() {
		return nil
	}
	return &PermissionError{Action: action}
}

// PermissionError is returned when a session lacks the role for an action.
type PermissionError struct {
	Action Action
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("You don't have permission to %s", e.Action)
}

func (e *PermissionError) Unwrap() error { return ErrPermissionDenied }
