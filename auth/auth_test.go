package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/movieapi-go/config"
	"github.com/user/movieapi-go/models"
	"github.com/user/movieapi-go/store"
)

const testSecret = "test-secret"

func newTokens() *TokenService {
	return NewTokenService(config.AuthConfig{JWTSecret: testSecret, TokenDuration: 7 * 24 * time.Hour})
}

func seedUser(t *testing.T, mem *store.Memory, username, password string) *models.User {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	u, err := mem.CreateUser(context.Background(), &models.User{Username: username, Password: hash, Email: username + "@example.com"})
	require.NoError(t, err)
	return u
}

func TestIssueAndParse(t *testing.T) {
	tokens := newTokens()
	user := &models.User{ID: "user-1", Username: "alice"}

	token, expiresAt, err := tokens.Issue(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), expiresAt, time.Minute)

	claims, err := tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, tokenIssuer, claims.Issuer)
}

func TestParseRejectsExpired(t *testing.T) {
	tokens := newTokens()
	tokens.now = func() time.Time { return time.Now().Add(-8 * 24 * time.Hour) }
	token, _, err := tokens.Issue(&models.User{ID: "user-1", Username: "alice"})
	require.NoError(t, err)

	tokens.now = time.Now
	_, err = tokens.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsWrongSecretAndAlgorithm(t *testing.T) {
	tokens := newTokens()
	claims := &Claims{Username: "alice", RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "user-1",
		Issuer:    tokenIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}

	otherSecret, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other"))
	require.NoError(t, err)
	_, err = tokens.Parse(otherSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = tokens.Parse(hs512)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = tokens.Parse(none)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tokens.Parse("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRequiresSubjectAndIssuer(t *testing.T) {
	tokens := newTokens()
	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))

	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{RegisteredClaims: jwt.RegisteredClaims{Issuer: tokenIssuer, ExpiresAt: exp}}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = tokens.Parse(noSub)
	assert.ErrorIs(t, err, ErrInvalidToken)

	wrongIss, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u", Issuer: "someone-else", ExpiresAt: exp}}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = tokens.Parse(wrongIss)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correcthorse")
	require.NoError(t, err)
	assert.NotEqual(t, "correcthorse", hash)
	assert.True(t, CheckPassword(hash, "correcthorse"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("not-a-hash", "correcthorse"))
}

func TestLocalStrategy(t *testing.T) {
	mem := store.NewMemory()
	alice := seedUser(t, mem, "alice", "correcthorse")
	local := NewLocalStrategy(mem)
	ctx := context.Background()

	got, err := local.VerifyCredentials(ctx, "alice", "correcthorse")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	for _, tc := range []struct{ name, username, password string }{
		{"wrong password", "alice", "nope"},
		{"unknown user", "bob", "correcthorse"},
		{"empty username", "", "correcthorse"},
		{"empty password", "alice", ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := local.VerifyCredentials(ctx, tc.username, tc.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestJWTStrategyResolvesSameIdentity(t *testing.T) {
	mem := store.NewMemory()
	alice := seedUser(t, mem, "alice", "correcthorse")
	tokens := newTokens()
	strategy := NewJWTStrategy(tokens, mem)

	token, _, err := tokens.Issue(alice)
	require.NoError(t, err)

	got, err := strategy.VerifyToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)
	assert.Equal(t, alice.Username, got.Username)

	require.NoError(t, mem.DeleteUser(context.Background(), alice.ID))
	_, err = strategy.VerifyToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func protected(verifier TokenVerifier) http.Handler {
	r := chi.NewRouter()
	r.Use(Bearer(verifier))
	r.Route("/users/{userID}", func(r chi.Router) {
		r.Use(RequireOwner("userID"))
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			u, _ := UserFromContext(r.Context())
			_, _ = w.Write([]byte(u.Username))
		})
	})
	return r
}

func TestBearerRejectsBadHeaders(t *testing.T) {
	mem := store.NewMemory()
	alice := seedUser(t, mem, "alice", "correcthorse")
	h := protected(NewJWTStrategy(newTokens(), mem))

	for _, header := range []string{"", "Token abc", "Bearer", "Bearer ", "Bearer garbage"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/users/"+alice.ID+"/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		assert.NotEmpty(t, rec.Header().Get("WWW-Authenticate"))
	}
}

func TestBearerAndRequireOwner(t *testing.T) {
	mem := store.NewMemory()
	alice := seedUser(t, mem, "alice", "correcthorse")
	bob := seedUser(t, mem, "bob", "correcthorse")
	tokens := newTokens()
	h := protected(NewJWTStrategy(tokens, mem))
	token, _, err := tokens.Issue(alice)
	require.NoError(t, err)

	call := func(id string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/users/"+id+"/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		h.ServeHTTP(rec, req)
		return rec
	}

	rec := call(alice.ID)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", rec.Body.String())

	rec = call(bob.ID)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Permission denied."}`, rec.Body.String())
}

func loginRouter(mem *store.Memory) http.Handler {
	r := chi.NewRouter()
	r.Post("/login", NewHandlers(NewLocalStrategy(mem), newTokens()).HandleLogin())
	return r
}

func TestHandleLogin(t *testing.T) {
	mem := store.NewMemory()
	alice := seedUser(t, mem, "alice", "correcthorse")
	h := loginRouter(mem)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"Username":"alice","Password":"correcthorse"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Password")

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, alice.ID, resp.UserID)
	assert.NotEmpty(t, resp.Token)

	got, err := NewJWTStrategy(newTokens(), mem).VerifyToken(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)
}

func TestHandleLoginQueryParams(t *testing.T) {
	mem := store.NewMemory()
	seedUser(t, mem, "alice", "correcthorse")
	rec := httptest.NewRecorder()
	loginRouter(mem).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login?Username=alice&Password=correcthorse", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleLoginFailure(t *testing.T) {
	mem := store.NewMemory()
	seedUser(t, mem, "alice", "correcthorse")
	h := loginRouter(mem)

	for _, body := range []string{
		`{"Username":"alice","Password":"wrong"}`,
		`{"Username":"nobody","Password":"correcthorse"}`,
		`{}`,
	} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Incorrect username or password."}`, rec.Body.String())
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
