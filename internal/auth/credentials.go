package auth

import (
	"fmt"

	"github.com/qlpapp/qlp-server/internal/domain"
)

// FixedCredential is a login that exists independently of the roster.
type FixedCredential struct {
	CPF      string
	Password string
	Name     string
	Profile  domain.Profile
}

// DefaultFixedCredentials are the built-in administrator and test accounts.
var DefaultFixedCredentials = []FixedCredential{
	{CPF: "11122233344", Password: "123456", Name: "Administrador Master", Profile: domain.ProfileAdmin},
	{CPF: "33344455566", Password: "123456", Name: "Colaborador de Teste", Profile: domain.ProfileUser},
}

type storedCredential struct {
	hash string
	user domain.User
}

// CredentialTable checks fixed logins. Passwords are kept only as argon2id hashes.
type CredentialTable struct {
	hasher  *Hasher
	entries map[string]storedCredential
}

// NewCredentialTable hashes each credential's password with hasher.
func NewCredentialTable(hasher *Hasher, creds []FixedCredential) (*CredentialTable, error) {
	table := &CredentialTable{hasher: hasher, entries: make(map[string]storedCredential, len(creds))}
	for _, c := range creds {
		hash, err := hasher.Hash(c.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", c.CPF, err)
		}
		table.entries[c.CPF] = storedCredential{
			hash: hash,
			user: domain.User{CPF: c.CPF, Name: c.Name, Profile: c.Profile},
		}
	}
	return table, nil
}

// Has reports whether cpf belongs to a fixed credential.
func (t *CredentialTable) Has(cpf string) bool {
	_, ok := t.entries[cpf]
	return ok
}

// Authenticate returns the user when cpf is in the table and password matches.
func (t *CredentialTable) Authenticate(cpf, password string) (*domain.User, bool) {
	entry, ok := t.entries[cpf]
	if !ok {
		return nil, false
	}
	if !t.hasher.Verify(entry.hash, password) {
		return nil, false
	}
	user := entry.user
	return &user, true
}
