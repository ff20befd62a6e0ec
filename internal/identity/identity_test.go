package identity

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUsers() []User {
	return []User{
		{Name: "alice", ID: 1, Token: "alice-secret", ResponseURLs: []string{"https://a.example.com"}},
		{Name: "bob", ID: 2, Token: "bob-secret", ResponseURLs: []string{"https://b.example.com", "https://b2.example.com"}},
	}
}

func TestResolveToken(t *testing.T) {
	r, err := NewResolver(testUsers())
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "bearer prefix", header: "Bearer alice-secret", want: "alice"},
		{name: "no prefix", header: "bob-secret", want: "bob"},
		{name: "surrounding whitespace", header: "  Bearer alice-secret  ", want: "alice"},
		{name: "missing header", header: "", wantErr: true},
		{name: "unknown token", header: "Bearer nobody", wantErr: true},
		{name: "prefix only", header: "Bearer ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := r.ResolveToken(tt.header)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnauthenticated)
				assert.Nil(t, u)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, u.Name)
		})
	}
}

func TestResolveTokenReturnsDetachedCopy(t *testing.T) {
	r, err := NewResolver(testUsers())
	require.NoError(t, err)

	first, err := r.ResolveToken("bob-secret")
	require.NoError(t, err)
	first.Name = "mallory"
	first.ResponseURLs[0] = "https://evil.example.com"

	second, err := r.ResolveToken("bob-secret")
	require.NoError(t, err)
	assert.Equal(t, "bob", second.Name)
	assert.Equal(t, "https://b.example.com", second.ResponseURLs[0])
}

func TestByID(t *testing.T) {
	r, err := NewResolver(testUsers())
	require.NoError(t, err)

	u, ok := r.ByID(2)
	require.True(t, ok)
	assert.Equal(t, "bob", u.Name)
	assert.Equal(t, "bob", u.StorageDir)

	_, ok = r.ByID(99)
	assert.False(t, ok)
}

func TestNewResolverValidation(t *testing.T) {
	tests := []struct {
		name  string
		users []User
	}{
		{name: "empty table", users: nil},
		{name: "missing name", users: []User{{ID: 1, Token: "t", ResponseURLs: []string{"u"}}}},
		{name: "missing token", users: []User{{Name: "a", ID: 1, ResponseURLs: []string{"u"}}}},
		{name: "no response urls", users: []User{{Name: "a", ID: 1, Token: "t"}}},
		{name: "duplicate id", users: []User{
			{Name: "a", ID: 1, Token: "t1", ResponseURLs: []string{"u"}},
			{Name: "b", ID: 1, Token: "t2", ResponseURLs: []string{"u"}},
		}},
		{name: "duplicate token", users: []User{
			{Name: "a", ID: 1, Token: "t", ResponseURLs: []string{"u"}},
			{Name: "b", ID: 2, Token: "t", ResponseURLs: []string{"u"}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewResolver(tt.users)
			assert.Error(t, err)
		})
	}
}

func TestLoadResolver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.yaml")
	content := `users:
  - name: alice
    id: 1
    token: alice-secret
    response_urls:
      - https://a.example.com
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	r, err := LoadResolver(path)
	require.NoError(t, err)

	u, err := r.ResolveToken("Bearer alice-secret")
	require.NoError(t, err)
	assert.Equal(t, 1, u.ID)
	assert.Equal(t, []string{"https://a.example.com"}, u.ResponseURLs)
}

func TestLoadResolverRejectsBadInput(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadResolver(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("users: {not valid"), 0o600))
	_, err = LoadResolver(bad)
	assert.Error(t, err)
}
