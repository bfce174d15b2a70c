package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{
		URL:      srv.URL,
		Tenant:   "testlib",
		Username: "importer",
		Password: "secret",
	})
	require.NoError(t, err)
	return c, srv
}

func TestLogin(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var gotTenant string
		var gotBody loginRequest

		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/authn/login", r.URL.Path)
			gotTenant = r.Header.Get(headerTenant)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			w.Header().Set(headerToken, "tok-123")
			w.WriteHeader(http.StatusCreated)
		}))

		err := c.Login(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "testlib", gotTenant)
		assert.Equal(t, "importer", gotBody.Username)
		assert.Equal(t, "testlib", gotBody.Tenant)
	})

	t.Run("Missing token header", func(t *testing.T) {
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		}))

		err := c.Login(context.Background())
		assert.ErrorContains(t, err, "missing")
	})

	t.Run("Bad credentials", func(t *testing.T) {
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad credentials", http.StatusUnprocessableEntity)
		}))

		err := c.Login(context.Background())
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	})
}

func TestTokenStampedAfterLogin(t *testing.T) {
	var tokens []string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/authn/login":
			w.Header().Set(headerToken, "tok-456")
			w.WriteHeader(http.StatusCreated)
		case "/groups":
			tokens = append(tokens, r.Header.Get(headerToken))
			_ = json.NewEncoder(w).Encode(patronGroupListResponse{})
		}
	}))

	require.NoError(t, c.Login(context.Background()))
	_, err := c.PatronGroups(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"tok-456"}, tokens)
}

// Service mode shares one client across request goroutines, and every run
// logs in, so logins and authorized calls overlap.
func TestConcurrentLoginsShareClient(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/authn/login":
			w.Header().Set(headerToken, "tok-789")
			w.WriteHeader(http.StatusCreated)
		case "/groups":
			if r.Header.Get(headerToken) == "" {
				http.Error(w, "no token", http.StatusUnauthorized)
				return
			}
			_ = json.NewEncoder(w).Encode(patronGroupListResponse{})
		default:
			http.NotFound(w, r)
		}
	}))

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if !assert.NoError(t, c.Login(context.Background())) {
				return
			}
			_, err := c.PatronGroups(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

func TestReferenceTables(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/addresstypes":
			_, _ = w.Write([]byte(`{"addressTypes":[{"id":"at-1","addressType":"Home"},{"id":"at-2","addressType":"Work"}],"totalRecords":2}`))
		case "/groups":
			_, _ = w.Write([]byte(`{"usergroups":[{"id":"pg-1","group":"staff"}],"totalRecords":1}`))
		default:
			http.NotFound(w, r)
		}
	}))

	addr, err := c.AddressTypes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Home": "at-1", "Work": "at-2"}, addr)

	groups, err := c.PatronGroups(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"staff": "pg-1"}, groups)
}

func TestQueryUsers(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var gotQuery string
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/users", r.URL.Path)
			gotQuery = r.URL.Query().Get("query")
			_, _ = w.Write([]byte(`{"users":[{"id":"u-1","externalSystemId":"ext-1"}],"totalRecords":1}`))
		}))

		users, err := c.QueryUsers(context.Background(), `externalSystemId=="ext-1"`)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "u-1", users[0].ID)
		assert.Equal(t, `externalSystemId=="ext-1"`, gotQuery)
	})

	t.Run("Malformed response", func(t *testing.T) {
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"users": "nope"`))
		}))

		_, err := c.QueryUsers(context.Background(), "x")
		assert.ErrorContains(t, err, "parse response")
	})
}

func TestUserMutations(t *testing.T) {
	type call struct {
		method string
		path   string
	}
	var calls []call

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, call{r.Method, r.URL.Path})
		w.WriteHeader(http.StatusCreated)
	}))

	ctx := context.Background()
	user := User{ID: "u-9", Username: "jdoe", ExternalSystemID: "ext-9"}

	require.NoError(t, c.CreateUser(ctx, user))
	require.NoError(t, c.UpdateUser(ctx, user))
	require.NoError(t, c.CreateCredentials(ctx, user))
	require.NoError(t, c.AddPermissions(ctx, user))
	require.NoError(t, c.DeleteCredentials(ctx, "jdoe"))
	require.NoError(t, c.DeleteUser(ctx, "u-9"))

	assert.Equal(t, []call{
		{"POST", "/users"},
		{"PUT", "/users/u-9"},
		{"POST", "/authn/credentials"},
		{"POST", "/perms/users"},
		{"DELETE", "/authn/credentials/jdoe"},
		{"DELETE", "/users/u-9"},
	}, calls)
}

func TestUpdateUserRequiresID(t *testing.T) {
	c, _ := newTestClient(t, http.NotFoundHandler())
	err := c.UpdateUser(context.Background(), User{ExternalSystemID: "ext-1"})
	assert.ErrorContains(t, err, "no id")
}

func TestIsSuccess(t *testing.T) {
	assert.True(t, isSuccess(200))
	assert.True(t, isSuccess(201))
	assert.True(t, isSuccess(204))
	assert.False(t, isSuccess(301))
	assert.False(t, isSuccess(404))
	assert.False(t, isSuccess(422))
	assert.False(t, isSuccess(500))
}
