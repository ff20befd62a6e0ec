// Package identity resolves bearer credentials against the static user table.
package identity

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnauthenticated is returned when a credential matches no configured user.
var ErrUnauthenticated = errors.New("unauthenticated")

// User is one configured uploader identity.
type User struct {
	Name         string   `yaml:"name"`
	ID           int      `yaml:"id"`
	Token        string   `yaml:"token"`
	ResponseURLs []string `yaml:"response_urls"`

	// StorageDir is the user's subtree under the storage root, set at load time.
	StorageDir string `yaml:"-"`
}

type usersFile struct {
	Users []User `yaml:"users"`
}

// Resolver performs read-only lookups over the user table loaded at startup.
type Resolver struct {
	byToken map[string]*User
	byID    map[int]*User
}

// LoadResolver reads and validates the YAML user table at path.
func LoadResolver(path string) (*Resolver, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read users file: %w", err)
	}

	var f usersFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse users file: %w", err)
	}

	return NewResolver(f.Users)
}

// NewResolver validates the user table and builds lookup indexes.
func NewResolver(users []User) (*Resolver, error) {
	if len(users) == 0 {
		return nil, errors.New("no users configured")
	}

	r := &Resolver{
		byToken: make(map[string]*User, len(users)),
		byID:    make(map[int]*User, len(users)),
	}

	for i := range users {
		u := users[i]
		switch {
		case u.Name == "":
			return nil, fmt.Errorf("user #%d: name is required", i)
		case u.Token == "":
			return nil, fmt.Errorf("user %q: token is required", u.Name)
		case len(u.ResponseURLs) == 0:
			return nil, fmt.Errorf("user %q: at least one response URL is required", u.Name)
		}
		if _, dup := r.byID[u.ID]; dup {
			return nil, fmt.Errorf("user %q: duplicate id %d", u.Name, u.ID)
		}
		if _, dup := r.byToken[u.Token]; dup {
			return nil, fmt.Errorf("user %q: token already assigned to another user", u.Name)
		}

		u.StorageDir = u.Name
		r.byID[u.ID] = &u
		r.byToken[u.Token] = &u
	}

	return r, nil
}

// ResolveToken maps a raw Authorization header value to a configured user.
// The header may or may not carry a "Bearer " prefix; tokens are compared
// verbatim against the configured secrets.
func (r *Resolver) ResolveToken(header string) (*User, error) {
	token := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(header), "Bearer "))
	if token == "" {
		return nil, ErrUnauthenticated
	}

	u, ok := r.byToken[token]
	if !ok {
		return nil, ErrUnauthenticated
	}
	return u.clone(), nil
}

// ByID returns the configured user with the given numeric id.
func (r *Resolver) ByID(id int) (*User, bool) {
	u, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	return u.clone(), true
}

// clone returns a copy detached from the resolver's internal state, so
// callers can never mutate the process-wide configuration.
func (u *User) clone() *User {
	c := *u
	c.ResponseURLs = append([]string(nil), u.ResponseURLs...)
	return &c
}
