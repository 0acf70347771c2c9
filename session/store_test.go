package session

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirsalarabedini/LinguaTask/api"
)

// fakeAPI is a minimal stand-in for the LinguaTask server: one valid
// account, bearer-checked /users/me and /tasks/history.
type fakeAPI struct {
	mu       sync.Mutex
	token    string
	requests int
	lastAuth string
}

func (f *fakeAPI) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests++
		f.lastAuth = r.Header.Get("Authorization")
		token := f.token
		f.mu.Unlock()

		switch r.URL.Path {
		case "/token":
			_ = r.ParseForm()
			if r.PostFormValue("username") == "alice" && r.PostFormValue("password") == "secret" {
				fmt.Fprintf(w, `{"access_token":%q,"token_type":"bearer"}`, token)
				return
			}
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"detail":"Incorrect username or password"}`)

		case "/users/me":
			if r.Header.Get("Authorization") != "Bearer "+token {
				w.WriteHeader(http.StatusUnauthorized)
				fmt.Fprint(w, `{"detail":"Could not validate credentials"}`)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id": 1, "username": "alice", "email": "alice@example.com",
			})

		case "/register":
			w.WriteHeader(http.StatusCreated)

		case "/tasks/history":
			fmt.Fprint(w, `[]`)

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func (f *fakeAPI) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests
}

func (f *fakeAPI) lastAuthHeader() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastAuth
}

func newTestStore(t *testing.T, srvURL, tokenPath string) (*Store, *api.Client) {
	t.Helper()
	client := api.NewClient(srvURL, 2*time.Second)
	return NewStore(client, NewTokenFileAt(tokenPath)), client
}

func TestLoginPersistsTokenAndRoundTrips(t *testing.T) {
	fake := &fakeAPI{token: "tok-abc"}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	tokenPath := filepath.Join(t.TempDir(), "token")

	store, client := newTestStore(t, srv.URL, tokenPath)
	res := store.Login("alice", "secret")
	require.True(t, res.Success)
	require.Empty(t, res.Message)

	snap := store.Snapshot()
	assert.Equal(t, "tok-abc", snap.Token)
	require.NotNil(t, snap.User)
	assert.Equal(t, "alice", snap.User.Username)
	assert.False(t, snap.Loading)
	assert.Equal(t, "tok-abc", client.Token())

	// a fresh process picks the session back up from the token file
	store2, _ := newTestStore(t, srv.URL, tokenPath)
	assert.True(t, store2.Snapshot().Loading)
	store2.Initialize()
	snap2 := store2.Snapshot()
	assert.False(t, snap2.Loading)
	require.NotNil(t, snap2.User)
	assert.Equal(t, snap.User.Username, snap2.User.Username)
	assert.Equal(t, "tok-abc", snap2.Token)
}

func TestInitializeWithoutTokenResolvesLoggedOut(t *testing.T) {
	fake := &fakeAPI{token: "tok-abc"}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	store, _ := newTestStore(t, srv.URL, filepath.Join(t.TempDir(), "token"))
	store.Initialize()

	snap := store.Snapshot()
	assert.False(t, snap.Loading)
	assert.False(t, snap.LoggedIn())
	assert.Nil(t, snap.User)
	assert.Zero(t, fake.requestCount(), "no network call without a stored token")
}

func TestInitializeRejectedTokenForcesLogout(t *testing.T) {
	fake := &fakeAPI{token: "tok-current"}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	tokenPath := filepath.Join(t.TempDir(), "token")
	tokens := NewTokenFileAt(tokenPath)
	require.NoError(t, tokens.Write("tok-expired"))

	store, client := newTestStore(t, srv.URL, tokenPath)
	store.Initialize()

	snap := store.Snapshot()
	assert.False(t, snap.Loading)
	assert.False(t, snap.LoggedIn())
	assert.Nil(t, snap.User)
	assert.Empty(t, client.Token())

	stored, err := tokens.Read()
	require.NoError(t, err)
	assert.Empty(t, stored, "rejected token is removed from durable storage")
}

func TestLogoutIsIdempotent(t *testing.T) {
	fake := &fakeAPI{token: "tok-abc"}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	tokenPath := filepath.Join(t.TempDir(), "token")
	store, client := newTestStore(t, srv.URL, tokenPath)
	require.True(t, store.Login("alice", "secret").Success)

	store.Logout()
	once := store.Snapshot()

	store.Logout()
	twice := store.Snapshot()

	assert.Equal(t, once, twice)
	assert.False(t, twice.LoggedIn())
	assert.Nil(t, twice.User)
	assert.Empty(t, client.Token())

	stored, err := NewTokenFileAt(tokenPath).Read()
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestLoginFailureLeavesStateUntouched(t *testing.T) {
	fake := &fakeAPI{token: "tok-abc"}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	tokenPath := filepath.Join(t.TempDir(), "token")
	store, client := newTestStore(t, srv.URL, tokenPath)
	store.Initialize()
	before := store.Snapshot()

	res := store.Login("alice", "wrong")
	assert.False(t, res.Success)
	assert.Equal(t, "Incorrect username or password", res.Message)
	assert.Equal(t, before, store.Snapshot())
	assert.Empty(t, client.Token())

	stored, err := NewTokenFileAt(tokenPath).Read()
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestRegisterNeverAltersSession(t *testing.T) {
	fake := &fakeAPI{token: "tok-abc"}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	store, client := newTestStore(t, srv.URL, filepath.Join(t.TempDir(), "token"))
	store.Initialize()
	before := store.Snapshot()

	res := store.Register("bob@example.com", "bob", "hunter2")
	assert.True(t, res.Success)
	assert.Equal(t, before, store.Snapshot())
	assert.Empty(t, client.Token())
}

func TestLoginThenHistoryAttachesBearer(t *testing.T) {
	fake := &fakeAPI{token: "tok-abc"}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	store, client := newTestStore(t, srv.URL, filepath.Join(t.TempDir(), "token"))
	require.True(t, store.Login("alice", "secret").Success)

	_, err := client.History()
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-abc", fake.lastAuthHeader())
}
