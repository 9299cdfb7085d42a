package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/bujo/internal/client/client"
	"github.com/dmitrijs2005/bujo/internal/client/models"
	"github.com/dmitrijs2005/bujo/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/bujo/internal/client/router"
	"github.com/dmitrijs2005/bujo/internal/client/state"
	"github.com/dmitrijs2005/bujo/internal/client/tokens"
	"github.com/dmitrijs2005/bujo/internal/client/tokenstore"
)

// ---- fake client ----

type fakeClient struct {
	LoginRet *models.LoginResponse
	LoginErr error

	LogoutErr error

	RegisterRet json.RawMessage
	RegisterErr error

	ForgotErr error

	EditRet *models.User
	EditErr error
	// OnEdit runs inside EditUser, while the request is in flight
	OnEdit func()

	// captured arguments
	Calls         []string
	LastLogin     models.LoginData
	LastRefresh   string
	LastEditID    string
	LastEditField map[string]any
	LastForgot    models.ForgotPasswordData
	AuthHeader    string
}

func (f *fakeClient) Login(_ context.Context, data models.LoginData) (*models.LoginResponse, error) {
	f.Calls = append(f.Calls, "login")
	f.LastLogin = data
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Logout(_ context.Context, refresh string) error {
	f.Calls = append(f.Calls, "logout")
	f.LastRefresh = refresh
	return f.LogoutErr
}

func (f *fakeClient) Register(_ context.Context, _ models.RegisterData) (json.RawMessage, error) {
	f.Calls = append(f.Calls, "register")
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeClient) ForgotPassword(_ context.Context, data models.ForgotPasswordData) error {
	f.Calls = append(f.Calls, "forgot")
	f.LastForgot = data
	return f.ForgotErr
}

func (f *fakeClient) EditUser(_ context.Context, userID string, fields map[string]any) (*models.User, error) {
	f.Calls = append(f.Calls, "edit")
	f.LastEditID = userID
	f.LastEditField = fields
	if f.OnEdit != nil {
		f.OnEdit()
	}
	return f.EditRet, f.EditErr
}

func (f *fakeClient) SetAuthHeader(token string) { f.AuthHeader = token }

// ---- helpers ----

var now = time.Unix(1_700_000_000, 0)

type fixture struct {
	svc   AuthService
	fc    *fakeClient
	store *tokenstore.Store
	state *state.LoginState
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fc := &fakeClient{}
	store := tokenstore.New(metadata.NewMemoryRepository(), nil)
	st := state.New(nil)
	v := tokens.NewValidator(tokens.WithClock(func() time.Time { return now }))
	return &fixture{svc: NewAuthService(fc, store, v, st, nil), fc: fc, store: store, state: st}
}

func mint(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)
	return s
}

// ---- TESTS ----

func TestLogin_StoresTripleAndPublishesUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.fc.LoginRet = &models.LoginResponse{
		Access:  "a.b.c",
		Refresh: "r",
		User:    &models.User{ID: "1", Username: "u"},
	}

	var published *models.User
	f.state.Subscribe(func(u *models.User) { published = u })

	u, err := f.svc.Login(ctx, models.LoginData{Username: "u", Password: "p"})
	require.NoError(t, err)
	assert.Equal(t, "u", u.Username)
	assert.Equal(t, models.LoginData{Username: "u", Password: "p"}, f.fc.LastLogin)

	creds := f.store.Read(ctx)
	require.NotNil(t, creds)
	assert.Equal(t, models.Credentials{
		Access:  "a.b.c",
		Refresh: "r",
		User:    &models.User{ID: "1", Username: "u"},
	}, *creds)

	require.NotNil(t, published)
	assert.Equal(t, "u", published.Username)
	assert.Equal(t, "a.b.c", f.fc.AuthHeader)
	assert.True(t, f.svc.IsLoggedIn(ctx))
}

func TestLogin_FailureKeepsPreviousSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	prev := models.Credentials{Access: "old", Refresh: "r0", User: &models.User{ID: "9"}}
	require.NoError(t, f.store.Write(ctx, prev))
	f.fc.LoginErr = client.ErrUnauthorized

	_, err := f.svc.Login(ctx, models.LoginData{Username: "u", Password: "bad"})
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Equal(t, []string{"login"}, f.fc.Calls, "no retry")
	assert.Equal(t, prev, *f.store.Read(ctx))
}

func TestValidation_ShortCircuits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Login(ctx, models.LoginData{Password: "p"})
	assert.ErrorIs(t, err, client.ErrValidation)
	assert.ErrorIs(t, err, models.ErrMissingField)

	_, err = f.svc.Register(ctx, models.RegisterData{Username: "u", Password: "p"})
	assert.ErrorIs(t, err, client.ErrValidation)

	err = f.svc.ForgotPassword(ctx, models.ForgotPasswordData{})
	assert.ErrorIs(t, err, client.ErrValidation)

	_, err = f.svc.EditProfile(ctx, map[string]any{"name": "x"}, "")
	assert.ErrorIs(t, err, client.ErrValidation)

	_, err = f.svc.EditProfile(ctx, nil, "1")
	assert.ErrorIs(t, err, client.ErrValidation)

	assert.Empty(t, f.fc.Calls)
}

func TestLogout_ServerFailureStillClearsSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Write(ctx, models.Credentials{Access: "a", Refresh: "r", User: &models.User{ID: "1"}}))
	f.state.SetUser(&models.User{ID: "1"})
	f.fc.AuthHeader = "a"
	f.fc.LogoutErr = errors.New("network down")

	require.NoError(t, f.svc.Logout(ctx))

	assert.Equal(t, "r", f.fc.LastRefresh)
	assert.Nil(t, f.store.Read(ctx))
	assert.Empty(t, f.fc.AuthHeader)
	assert.Nil(t, f.state.User())
	assert.False(t, f.svc.IsLoggedIn(ctx))
}

func TestLogout_WithoutSessionSkipsServer(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.Logout(context.Background()))
	assert.Empty(t, f.fc.Calls)
}

func TestEditProfile_ReplacesUserKeepsTokens(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Write(ctx, models.Credentials{
		Access:  "a1",
		Refresh: "r1",
		User:    &models.User{ID: "1", Username: "u"},
	}))
	f.fc.EditRet = &models.User{ID: "1", Username: "u", Name: "New Name"}

	u, err := f.svc.EditProfile(ctx, map[string]any{"name": "New Name"}, "1")
	require.NoError(t, err)
	assert.Equal(t, "New Name", u.Name)
	assert.Equal(t, "1", f.fc.LastEditID)
	assert.Equal(t, map[string]any{"name": "New Name"}, f.fc.LastEditField)

	creds := f.store.Read(ctx)
	require.NotNil(t, creds)
	assert.Equal(t, "New Name", creds.User.Name)
	assert.Equal(t, "a1", creds.Access)
	assert.Equal(t, "r1", creds.Refresh)
	assert.Equal(t, "New Name", f.state.User().Name)
}

func TestEditProfile_FailureLeavesSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	before := models.Credentials{Access: "a1", Refresh: "r1", User: &models.User{ID: "1", Name: "Old"}}
	require.NoError(t, f.store.Write(ctx, before))
	f.fc.EditErr = client.ErrValidation

	_, err := f.svc.EditProfile(ctx, map[string]any{"name": ""}, "1")
	require.ErrorIs(t, err, client.ErrValidation)
	assert.Equal(t, before, *f.store.Read(ctx))
}

func TestEditProfile_NoSession(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.EditProfile(context.Background(), map[string]any{"name": "x"}, "1")
	assert.ErrorIs(t, err, client.ErrUnauthenticated)
	assert.Empty(t, f.fc.Calls)
}

func TestEditProfile_SessionClearedDuringRequest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Write(ctx, models.Credentials{Access: "a1", Refresh: "r1", User: &models.User{ID: "1"}}))
	f.state.SetUser(&models.User{ID: "1"})
	f.fc.EditRet = &models.User{ID: "1", Name: "New Name"}
	f.fc.OnEdit = func() { require.NoError(t, f.store.Clear(ctx)) }

	_, err := f.svc.EditProfile(ctx, map[string]any{"name": "New Name"}, "1")
	require.ErrorIs(t, err, client.ErrUnauthenticated)
	assert.Nil(t, f.store.Read(ctx))
	assert.Empty(t, f.state.User().Name)
}

// pausingRepo runs onGet once, on the first Get after it is armed.
type pausingRepo struct {
	metadata.Repository

	mu    sync.Mutex
	onGet func()
}

func (r *pausingRepo) arm(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onGet = fn
}

func (r *pausingRepo) Get(ctx context.Context, key string) ([]byte, error) {
	r.mu.Lock()
	fn := r.onGet
	r.onGet = nil
	r.mu.Unlock()
	if fn != nil {
		fn()
	}
	return r.Repository.Get(ctx, key)
}

func TestEditProfile_KeepsTokenRefreshedConcurrently(t *testing.T) {
	ctx := context.Background()
	repo := &pausingRepo{Repository: metadata.NewMemoryRepository()}
	store := tokenstore.New(repo, nil)
	fc := &fakeClient{EditRet: &models.User{ID: "1", Username: "u", Name: "New Name"}}
	svc := NewAuthService(fc, store, tokens.NewValidator(), state.New(nil), nil)

	require.NoError(t, store.Write(ctx, models.Credentials{Access: "a1", Refresh: "r1", User: &models.User{ID: "1", Username: "u"}}))

	refreshed := make(chan struct{})
	fc.OnEdit = func() {
		// the next Get is the profile swap; a refresh lands right then
		repo.arm(func() {
			go func() {
				defer close(refreshed)
				assert.NoError(t, store.SetAccessToken(ctx, "a2"))
			}()
			time.Sleep(50 * time.Millisecond)
		})
	}

	_, err := svc.EditProfile(ctx, map[string]any{"name": "New Name"}, "1")
	require.NoError(t, err)
	<-refreshed

	creds := store.Read(ctx)
	require.NotNil(t, creds)
	assert.Equal(t, "a2", creds.Access)
	assert.Equal(t, "r1", creds.Refresh)
	assert.Equal(t, "New Name", creds.User.Name)
}

func TestRegister_DoesNotLogIn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.fc.RegisterRet = json.RawMessage(`{"id":5,"username":"n"}`)

	out, err := f.svc.Register(ctx, models.RegisterData{Username: "n", Email: "n@x", Password: "p"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":5,"username":"n"}`, string(out))
	assert.Nil(t, f.store.Read(ctx))
	assert.False(t, f.svc.IsLoggedIn(ctx))
}

func TestForgotPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.ForgotPassword(ctx, models.ForgotPasswordData{Email: "a@b"}))
	assert.Equal(t, "a@b", f.fc.LastForgot.Email)

	f.fc.ForgotErr = client.ErrServer
	assert.ErrorIs(t, f.svc.ForgotPassword(ctx, models.ForgotPasswordData{Email: "a@b"}), client.ErrServer)
	assert.Nil(t, f.store.Read(ctx))
}

func TestSessionPolicies(t *testing.T) {
	ctx := context.Background()
	fresh := mint(t, jwt.MapClaims{"exp": now.Add(time.Minute).Unix(), "user_id": 3})
	expired := mint(t, jwt.MapClaims{"exp": now.Add(-time.Minute).Unix(), "user_id": 3})
	user := &models.User{ID: "3"}

	tests := []struct {
		name      string
		creds     *models.Credentials
		loggedIn  bool
		freshSess bool
	}{
		{"no record", nil, false, false},
		{"fresh token", &models.Credentials{Access: fresh, Refresh: "r", User: user}, true, true},
		{"expired token", &models.Credentials{Access: expired, Refresh: "r", User: user}, true, false},
		{"garbage token", &models.Credentials{Access: "garbage", Refresh: "r", User: user}, true, false},
		{"no user", &models.Credentials{Access: fresh, Refresh: "r"}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.creds != nil {
				require.NoError(t, f.store.Write(ctx, *tt.creds))
			}
			assert.Equal(t, tt.loggedIn, f.svc.IsLoggedIn(ctx))
			assert.Equal(t, tt.freshSess, f.svc.HasFreshSession(ctx))
		})
	}
}

func TestGuard_ExpiredTokenStillOpensProtectedScreens(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	expired := mint(t, jwt.MapClaims{"exp": now.Add(-time.Hour).Unix(), "user_id": "1"})
	require.NoError(t, f.store.Write(ctx, models.Credentials{Access: expired, Refresh: "r", User: &models.User{ID: "1"}}))

	g := router.NewGuard(f.svc, router.DefaultRoutes())

	assert.Equal(t, router.Decision{Action: router.Render, Target: router.Diary}, g.Resolve(ctx, router.Diary))
	assert.Equal(t, router.Decision{Action: router.Render, Target: router.Profile}, g.Resolve(ctx, router.Profile))
	assert.Equal(t, router.Decision{Action: router.Redirect, Target: router.Login}, g.Resolve(ctx, router.Root))
	assert.True(t, g.Allowed(ctx, router.PolicyLoggedIn))
	assert.False(t, g.Allowed(ctx, router.PolicyFreshSession))
}

func TestCurrentUserID(t *testing.T) {
	ctx := context.Background()

	f := newFixture(t)
	assert.Empty(t, f.svc.CurrentUserID(ctx))

	require.NoError(t, f.store.Write(ctx, models.Credentials{Access: "x", User: &models.User{ID: "12"}}))
	assert.Equal(t, "12", f.svc.CurrentUserID(ctx))

	tok := mint(t, jwt.MapClaims{"exp": now.Add(time.Hour).Unix(), "user_id": 77})
	require.NoError(t, f.store.Write(ctx, models.Credentials{Access: tok, User: &models.User{}}))
	assert.Equal(t, "77", f.svc.CurrentUserID(ctx))

	require.NoError(t, f.store.Write(ctx, models.Credentials{Access: "bad"}))
	assert.Empty(t, f.svc.CurrentUserID(ctx))
}
