package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdesk-io/helpdesk-cli/internal/config"
	"github.com/helpdesk-io/helpdesk-cli/internal/session"
	"github.com/helpdesk-io/helpdesk-cli/internal/view"
)

// backend is a scriptable fake of the REST surface.
type backend struct {
	mux      *http.ServeMux
	requests []string
}

func newBackend() *backend {
	b := &backend{mux: http.NewServeMux()}
	return b
}

func (b *backend) handle(pattern string, handler http.HandlerFunc) {
	b.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		b.requests = append(b.requests, r.Method+" "+r.URL.Path)
		handler(w, r)
	})
}

func newTestApp(t *testing.T, b *backend) (*App, *session.Store) {
	t.Helper()

	server := httptest.NewServer(b.mux)
	t.Cleanup(server.Close)

	store := session.NewStore(filepath.Join(t.TempDir(), "session.yaml"))
	_, err := store.Load()
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.API.BaseURL = server.URL
	cfg.API.Timeout = 5 * time.Second

	return New(cfg, store), store
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	json.NewEncoder(w).Encode(v)
}

func TestLogin(t *testing.T) {
	t.Run("stores token, identity, and resolved role", func(t *testing.T) {
		b := newBackend()
		b.handle("/auth/login", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]string{"access_token": "fresh-token", "token_type": "bearer"})
		})
		b.handle("/auth/me", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer fresh-token", r.Header.Get("Authorization"))
			writeJSON(w, map[string]interface{}{
				"email": "dept@uni.edu",
				"role":  map[string]string{"name": "department"},
			})
		})
		a, store := newTestApp(t, b)

		sess, err := a.Login(context.Background(), "dept@uni.edu", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "fresh-token", sess.Token)
		assert.Equal(t, "dept@uni.edu", sess.Identity)
		assert.Equal(t, "department", sess.Role)

		// Persisted, not just in memory.
		reloaded, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, sess, reloaded)
	})

	t.Run("profile failure falls back to the token role claim", func(t *testing.T) {
		// Payload {"sub":"s@uni.edu","role":"support"} without signature
		// verification; the backend stays authoritative for access.
		token := "eyJhbGciOiJIUzI1NiJ9." +
			"eyJzdWIiOiJzQHVuaS5lZHUiLCJyb2xlIjoic3VwcG9ydCJ9." +
			"sig"

		b := newBackend()
		b.handle("/auth/login", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]string{"access_token": token})
		})
		b.handle("/auth/me", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"detail": "boom"}`, http.StatusInternalServerError)
		})
		a, _ := newTestApp(t, b)

		sess, err := a.Login(context.Background(), "s@uni.edu", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "support", sess.Role)
		assert.Equal(t, "s@uni.edu", sess.Identity)
	})

	t.Run("profile failure with no role claim defaults to student", func(t *testing.T) {
		// Payload {"sub":"n@uni.edu"}.
		token := "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiJuQHVuaS5lZHUifQ.sig"

		b := newBackend()
		b.handle("/auth/login", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]string{"access_token": token})
		})
		b.handle("/auth/me", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "no", http.StatusInternalServerError)
		})
		a, _ := newTestApp(t, b)

		sess, err := a.Login(context.Background(), "n@uni.edu", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "student", sess.Role)
	})

	t.Run("bad credentials return the backend error and store nothing", func(t *testing.T) {
		b := newBackend()
		b.handle("/auth/login", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			writeJSON(w, map[string]string{"detail": "Incorrect email or password"})
		})
		a, store := newTestApp(t, b)

		_, err := a.Login(context.Background(), "x@uni.edu", "wrong")
		require.Error(t, err)
		assert.False(t, store.Current().Active())
	})
}

func TestFetchView(t *testing.T) {
	emptyList := func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}

	t.Run("role picks the list endpoint", func(t *testing.T) {
		cases := []struct {
			role     string
			wantPath string
		}{
			{"student", "GET /tickets/my"},
			{"support", "GET /tickets/support"},
			{"department", "GET /tickets/department"},
			{"admin", "GET /tickets/"},
			{"mystery", "GET /tickets/my"},
		}

		for _, tc := range cases {
			t.Run(tc.role, func(t *testing.T) {
				b := newBackend()
				b.handle("/tickets/", emptyList)
				b.handle("/tickets/my", emptyList)
				b.handle("/tickets/support", emptyList)
				b.handle("/tickets/department", emptyList)
				b.handle("/tickets/support-list", emptyList)
				a, store := newTestApp(t, b)
				require.NoError(t, store.Save(session.Session{Token: "t", Identity: "u@uni.edu", Role: tc.role}))

				_, err := a.FetchView(context.Background(), view.Filters{})
				require.NoError(t, err)
				require.NotEmpty(t, b.requests)
				assert.Equal(t, tc.wantPath, b.requests[0])
			})
		}
	})

	t.Run("admin fetch refreshes the support staff cache", func(t *testing.T) {
		b := newBackend()
		b.handle("/tickets/", emptyList)
		b.handle("/tickets/support-list", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"id": 2, "email": "sup@uni.edu"}]`))
		})
		a, store := newTestApp(t, b)
		require.NoError(t, store.Save(session.Session{Token: "t", Identity: "a@uni.edu", Role: "admin"}))

		vm, err := a.FetchView(context.Background(), view.Filters{})
		require.NoError(t, err)
		require.Len(t, vm.Staff, 1)
		assert.Equal(t, "sup@uni.edu", vm.Staff[0].Email)
		assert.Contains(t, b.requests, "GET /tickets/support-list")
	})

	t.Run("student fetch skips the staff list", func(t *testing.T) {
		b := newBackend()
		b.handle("/tickets/my", emptyList)
		a, store := newTestApp(t, b)
		require.NoError(t, store.Save(session.Session{Token: "t", Identity: "s@uni.edu", Role: "student"}))

		vm, err := a.FetchView(context.Background(), view.Filters{})
		require.NoError(t, err)
		assert.Empty(t, vm.Staff)
		assert.NotContains(t, b.requests, "GET /tickets/support-list")
	})

	t.Run("staff fetch failure keeps the previous cache", func(t *testing.T) {
		staffCalls := 0
		b := newBackend()
		b.handle("/tickets/", emptyList)
		b.handle("/tickets/support-list", func(w http.ResponseWriter, r *http.Request) {
			staffCalls++
			if staffCalls > 1 {
				http.Error(w, `{"detail": "unavailable"}`, http.StatusInternalServerError)
				return
			}
			w.Write([]byte(`[{"id": 2, "email": "sup@uni.edu"}]`))
		})
		a, store := newTestApp(t, b)
		require.NoError(t, store.Save(session.Session{Token: "t", Identity: "a@uni.edu", Role: "admin"}))

		ctx := context.Background()
		_, err := a.FetchView(ctx, view.Filters{})
		require.NoError(t, err)

		vm, err := a.FetchView(ctx, view.Filters{})
		require.NoError(t, err)
		require.Len(t, vm.Staff, 1, "cache should survive a failed refresh")
	})

	t.Run("rejected token clears the session", func(t *testing.T) {
		b := newBackend()
		b.handle("/tickets/my", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			writeJSON(w, map[string]string{"detail": "Could not validate credentials"})
		})
		a, store := newTestApp(t, b)
		require.NoError(t, store.Save(session.Session{Token: "expired", Identity: "s@uni.edu", Role: "student"}))

		_, err := a.FetchView(context.Background(), view.Filters{})
		require.Error(t, err)
		assert.False(t, store.Current().Active())
	})

	t.Run("admin filters reach the backend", func(t *testing.T) {
		var query string
		b := newBackend()
		b.handle("/tickets/", func(w http.ResponseWriter, r *http.Request) {
			query = r.URL.RawQuery
			w.Write([]byte(`[]`))
		})
		b.handle("/tickets/support-list", emptyList)
		a, store := newTestApp(t, b)
		require.NoError(t, store.Save(session.Session{Token: "t", Identity: "a@uni.edu", Role: "admin"}))

		vm, err := a.FetchView(context.Background(), view.Filters{Department: "CS", Status: "Open"})
		require.NoError(t, err)
		assert.Contains(t, query, "department_filter=CS")
		assert.Contains(t, query, "status_filter=Open")
		assert.Equal(t, "No tickets match the current filters.", vm.EmptyMessage)
	})
}

func TestLogout(t *testing.T) {
	b := newBackend()
	a, store := newTestApp(t, b)
	require.NoError(t, store.Save(session.Session{Token: "t", Identity: "u@uni.edu", Role: "student"}))

	require.NoError(t, a.Logout())
	assert.False(t, store.Current().Active())
	// No revocation call goes out.
	assert.Empty(t, b.requests)
}

func TestRefresh(t *testing.T) {
	t.Run("inactive session is a no-op", func(t *testing.T) {
		b := newBackend()
		a, _ := newTestApp(t, b)

		sess, err := a.Refresh(context.Background())
		require.NoError(t, err)
		assert.False(t, sess.Active())
		assert.Empty(t, b.requests)
	})

	t.Run("updates identity and role from the profile", func(t *testing.T) {
		b := newBackend()
		b.handle("/auth/me", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]interface{}{
				"email": "promoted@uni.edu",
				"role":  map[string]string{"name": "admin"},
			})
		})
		a, store := newTestApp(t, b)
		require.NoError(t, store.Save(session.Session{Token: "t", Identity: "old@uni.edu", Role: "student"}))

		sess, err := a.Refresh(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "promoted@uni.edu", sess.Identity)
		assert.Equal(t, "admin", sess.Role)
	})

	t.Run("unreachable profile keeps the persisted role", func(t *testing.T) {
		b := newBackend()
		b.handle("/auth/me", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "down", http.StatusBadGateway)
		})
		a, store := newTestApp(t, b)
		require.NoError(t, store.Save(session.Session{Token: "opaque-token", Identity: "u@uni.edu", Role: "department"}))

		sess, err := a.Refresh(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "department", sess.Role)
		assert.Equal(t, "u@uni.edu", sess.Identity)
	})
}
