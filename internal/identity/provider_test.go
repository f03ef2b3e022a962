package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDevProvider_CreateUser(t *testing.T) {
	t.Parallel()

	p := NewDevProvider()

	id, err := p.CreateUser(context.Background(), "member@gym.kz", "Aruzhan", "Seitova")
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	user, ok := p.GetUser(id)
	require.True(t, ok)
	assert.Equal(t, "member@gym.kz", user.Email)
	assert.False(t, user.Banned)
}

func TestDevProvider_DuplicateEmail(t *testing.T) {
	t.Parallel()

	p := NewDevProvider()
	_, err := p.CreateUser(context.Background(), "member@gym.kz", "Aruzhan", "Seitova")
	require.NoError(t, err)

	_, err = p.CreateUser(context.Background(), "member@gym.kz", "Other", "Person")
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Equal(t, 1, p.Count())
}

func TestDevProvider_BanUnban(t *testing.T) {
	t.Parallel()

	p := NewDevProvider()
	id, err := p.CreateUser(context.Background(), "member@gym.kz", "Aruzhan", "Seitova")
	require.NoError(t, err)

	require.NoError(t, p.BanUser(context.Background(), id))
	user, _ := p.GetUser(id)
	assert.True(t, user.Banned)

	require.NoError(t, p.UnbanUser(context.Background(), id))
	user, _ = p.GetUser(id)
	assert.False(t, user.Banned)

	assert.ErrorIs(t, p.BanUser(context.Background(), "idn_missing"), ErrIdentityNotFound)
}

func TestDevProvider_DeleteFreesEmail(t *testing.T) {
	t.Parallel()

	p := NewDevProvider()
	id, err := p.CreateUser(context.Background(), "member@gym.kz", "Aruzhan", "Seitova")
	require.NoError(t, err)

	require.NoError(t, p.DeleteUser(context.Background(), id))
	assert.ErrorIs(t, p.DeleteUser(context.Background(), id), ErrIdentityNotFound)

	// The address can be registered again once the record is gone.
	_, err = p.CreateUser(context.Background(), "member@gym.kz", "Aruzhan", "Seitova")
	assert.NoError(t, err)
}

func TestHTTPProvider_CreateUser(t *testing.T) {
	t.Parallel()

	var gotAuth string
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/users", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "idn_remote"})
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, "sk_test_123")
	id, err := p.CreateUser(context.Background(), "member@gym.kz", "Aruzhan", "Seitova")
	require.NoError(t, err)

	assert.Equal(t, "idn_remote", id)
	assert.Equal(t, "Bearer sk_test_123", gotAuth)
	assert.Equal(t, []interface{}{"member@gym.kz"}, gotBody["email_address"])
	assert.NotEmpty(t, gotBody["password"], "placeholder credential is always sent")
}

func TestHTTPProvider_ErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		statusCode int
		message    string
		wantErr    error
	}{
		{"not found", http.StatusNotFound, "no such user", ErrIdentityNotFound},
		{"conflict", http.StatusConflict, "identifier in use", ErrEmailTaken},
		{"unprocessable duplicate", http.StatusUnprocessableEntity, "email address is taken", ErrEmailTaken},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.statusCode)
				_ = json.NewEncoder(w).Encode(map[string]string{"message": tc.message})
			}))
			defer srv.Close()

			p := NewHTTPProvider(srv.URL, "sk_test_123")
			_, err := p.CreateUser(context.Background(), "member@gym.kz", "A", "S")
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestHTTPProvider_UnprocessableValidationIsNotEmailTaken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "first_name is too long"})
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, "sk_test_123")
	_, err := p.CreateUser(context.Background(), "member@gym.kz", "A", "S")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmailTaken)
	assert.Contains(t, err.Error(), "first_name is too long")
}

func TestHTTPProvider_DeleteUser(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/v1/users/idn_remote", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "idn_remote"})
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, "sk_test_123")
	assert.NoError(t, p.DeleteUser(context.Background(), "idn_remote"))
}

func TestHTTPProvider_ContextCancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewHTTPProvider(srv.URL, "sk_test_123")
	err := p.BanUser(ctx, "idn_remote")
	assert.Error(t, err)
}
