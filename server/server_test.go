package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/movieapi-go/auth"
	"github.com/user/movieapi-go/config"
	"github.com/user/movieapi-go/models"
	"github.com/user/movieapi-go/store"
)

const testSecret = "server-test-secret"

type testAPI struct {
	t       *testing.T
	handler http.Handler
	store   *store.Memory
}

func newTestAPI(t *testing.T, opts ...func(*Deps)) *testAPI {
	t.Helper()
	mem := store.NewMemory()
	_, err := mem.InsertMovies(context.Background(), []models.Movie{
		{Title: "Alien", Genre: models.Genre{Name: "Horror", Description: "Scary"}, Director: models.Director{Name: "Ridley Scott", Bio: "English director"}},
	})
	require.NoError(t, err)

	deps := Deps{
		Store:  mem,
		Auth:   &config.AuthConfig{JWTSecret: testSecret, TokenDuration: 7 * 24 * time.Hour, LoginRateLimit: 100},
		Server: &config.ServerConfig{AllowedOrigins: []string{"*"}},
	}
	for _, o := range opts {
		o(&deps)
	}
	return &testAPI{t: t, handler: NewRouter(deps), store: mem}
}

func (a *testAPI) do(method, path, token, body string) *httptest.ResponseRecorder {
	a.t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

// signup registers username and logs in, returning the user and a token.
func (a *testAPI) signup(username string) (models.User, string) {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/users", "", `{"Username":"`+username+`","Password":"correcthorse","Email":"`+username+`@example.com","Birthday":"1990-05-01"}`)
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	var user models.User
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &user))

	rec = a.do(http.MethodPost, "/login", "", `{"Username":"`+username+`","Password":"correcthorse"}`)
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())
	var login auth.LoginResponse
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.NotEmpty(a.t, login.Token)
	return user, login.Token
}

func TestRootUsageMessage(t *testing.T) {
	api := newTestAPI(t)
	rec := api.do(http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, rec.Body.String(), "/documentation.html")
}

func TestLoginTokenResolvesToSameUser(t *testing.T) {
	api := newTestAPI(t)
	alice, token := api.signup("alice")

	rec := api.do(http.MethodGet, "/users/"+alice.ID, token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, alice.ID, got.ID)
	assert.Equal(t, "alice", got.Username)

	rec = api.do(http.MethodGet, "/movies", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var movies []models.Movie
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &movies))
	assert.Len(t, movies, 1)
}

func TestPasswordNeverInResponses(t *testing.T) {
	api := newTestAPI(t)
	alice, token := api.signup("alice")

	responses := []*httptest.ResponseRecorder{
		api.do(http.MethodPost, "/login", "", `{"Username":"alice","Password":"correcthorse"}`),
		api.do(http.MethodGet, "/users/"+alice.ID, token, ""),
		api.do(http.MethodPut, "/users/"+alice.ID, token, `{"Email":"new@example.com"}`),
		api.do(http.MethodPut, "/users/"+alice.ID+"/FavoriteMovies/m1", token, ""),
		api.do(http.MethodDelete, "/users/"+alice.ID+"/FavoriteMovies/m1", token, ""),
	}
	for _, rec := range responses {
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), `"Password"`)
		assert.NotContains(t, rec.Body.String(), "$2a$")
	}
}

func TestDuplicateUsernameIsRejectedWithoutInsert(t *testing.T) {
	api := newTestAPI(t)
	alice, _ := api.signup("alice")

	rec := api.do(http.MethodPost, "/users", "", `{"Username":"alice","Password":"differentpw","Email":"other@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"alice already exists"}`, rec.Body.String())

	stored, err := api.store.GetUserByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, stored.ID)
	assert.Equal(t, "alice@example.com", stored.Email)
	assert.True(t, auth.CheckPassword(stored.Password, "correcthorse"))
}

func TestRegistrationValidationReportsEveryViolation(t *testing.T) {
	api := newTestAPI(t)
	rec := api.do(http.MethodPost, "/users", "", `{"Username":"ab","Password":"short"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Errors []struct {
			Field string `json:"field"`
			Msg   string `json:"msg"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.GreaterOrEqual(t, len(body.Errors), 2)

	fields := map[string]bool{}
	for _, e := range body.Errors {
		fields[e.Field] = true
		assert.NotEmpty(t, e.Msg)
	}
	assert.True(t, fields["Username"])
	assert.True(t, fields["Password"])
	assert.NotContains(t, rec.Body.String(), "short")

	_, err := api.store.GetUserByUsername(context.Background(), "ab")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func signed(t *testing.T, claims jwt.Claims, method jwt.SigningMethod, key interface{}) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func TestProtectedRoutesRejectBadTokens(t *testing.T) {
	api := newTestAPI(t)
	alice, _ := api.signup("alice")

	expired := signed(t, &auth.Claims{Username: "alice", RegisteredClaims: jwt.RegisteredClaims{
		Subject:   alice.ID,
		Issuer:    "movieapi",
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-8 * 24 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-24 * time.Hour)),
	}}, jwt.SigningMethodHS256, []byte(testSecret))
	forged := signed(t, &auth.Claims{Username: "alice", RegisteredClaims: jwt.RegisteredClaims{
		Subject:   alice.ID,
		Issuer:    "movieapi",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}, jwt.SigningMethodHS256, []byte("not-the-secret"))

	routes := []struct{ method, path, body string }{
		{http.MethodGet, "/movies", ""},
		{http.MethodGet, "/movies/Alien", ""},
		{http.MethodGet, "/genres/Horror", ""},
		{http.MethodGet, "/directors/Ridley%20Scott", ""},
		{http.MethodGet, "/users/" + alice.ID, ""},
		{http.MethodPut, "/users/" + alice.ID, `{"Email":"x@example.com"}`},
		{http.MethodDelete, "/users/" + alice.ID, ""},
		{http.MethodPut, "/users/" + alice.ID + "/FavoriteMovies/m1", ""},
		{http.MethodDelete, "/users/" + alice.ID + "/FavoriteMovies/m1", ""},
	}
	for _, route := range routes {
		for name, token := range map[string]string{"missing": "", "malformed": "garbage", "expired": expired, "forged": forged} {
			rec := api.do(route.method, route.path, token, route.body)
			assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s with %s token", route.method, route.path, name)
		}
	}

	stored, err := api.store.GetUser(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", stored.Email)
	assert.Empty(t, stored.FavoriteMovies)
}

func TestCrossUserMutationIsDenied(t *testing.T) {
	api := newTestAPI(t)
	_, aliceToken := api.signup("alice")
	bob, _ := api.signup("bob")

	for _, rec := range []*httptest.ResponseRecorder{
		api.do(http.MethodGet, "/users/"+bob.ID, aliceToken, ""),
		api.do(http.MethodPut, "/users/"+bob.ID, aliceToken, `{"Email":"pwned@example.com"}`),
		api.do(http.MethodDelete, "/users/"+bob.ID, aliceToken, ""),
		api.do(http.MethodPut, "/users/"+bob.ID+"/FavoriteMovies/m1", aliceToken, ""),
	} {
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Permission denied."}`, rec.Body.String())
	}

	stored, err := api.store.GetUser(context.Background(), bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", stored.Email)
	assert.Empty(t, stored.FavoriteMovies)
}

func TestFavoritesRoundTrip(t *testing.T) {
	api := newTestAPI(t)
	alice, token := api.signup("alice")
	base := "/users/" + alice.ID + "/FavoriteMovies/"

	require.Equal(t, http.StatusOK, api.do(http.MethodPut, base+"m1", token, "").Code)
	require.Equal(t, http.StatusOK, api.do(http.MethodPut, base+"m2", token, "").Code)

	before, err := api.store.GetUser(context.Background(), alice.ID)
	require.NoError(t, err)

	rec := api.do(http.MethodPut, base+"m1", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var added models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &added))
	assert.Equal(t, []string{"m1", "m2", "m1"}, added.FavoriteMovies)

	rec = api.do(http.MethodDelete, base+"m1", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var removed models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &removed))
	assert.Equal(t, before.FavoriteMovies, removed.FavoriteMovies)
}

func TestPasswordChange(t *testing.T) {
	api := newTestAPI(t)
	alice, token := api.signup("alice")
	path := "/users/" + alice.ID

	rec := api.do(http.MethodPut, path, token, `{"Password":"newpassword1"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = api.do(http.MethodPut, path, token, `{"Password":"newpassword1","CurrentPassword":"wrongpassword"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(http.MethodPut, path, token, `{"Password":"newpassword1","CurrentPassword":"correcthorse"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(http.MethodPost, "/login", "", `{"Username":"alice","Password":"newpassword1"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteInvalidatesToken(t *testing.T) {
	api := newTestAPI(t)
	alice, token := api.signup("alice")

	rec := api.do(http.MethodDelete, "/users/"+alice.ID, token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"alice was deleted."}`, rec.Body.String())

	rec = api.do(http.MethodGet, "/movies", token, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginRateLimit(t *testing.T) {
	api := newTestAPI(t, func(d *Deps) { d.Auth.LoginRateLimit = 2 })
	body := `{"Username":"nobody","Password":"whatever1"}`

	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodPost, "/login", "", body).Code)
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodPost, "/login", "", body).Code)
	rec := api.do(http.MethodPost, "/login", "", body)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "Too many login attempts")
}

func TestHealthz(t *testing.T) {
	api := newTestAPI(t)
	rec := api.do(http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	api := newTestAPI(t)
	api.do(http.MethodGet, "/", "", "")
	rec := api.do(http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "movieapi_http_requests_total")
}

func TestStaticFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "documentation.html"), []byte("<h1>docs</h1>"), 0o644))
	api := newTestAPI(t, func(d *Deps) { d.Server.StaticDir = dir })

	rec := api.do(http.MethodGet, "/documentation.html", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "docs")

	rec = api.do(http.MethodGet, "/nothing-here.html", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAccessLogWritesLine(t *testing.T) {
	var buf strings.Builder
	api := newTestAPI(t, func(d *Deps) { d.AccessLog = &buf })
	api.do(http.MethodGet, "/healthz", "", "")
	assert.Contains(t, buf.String(), `"path":"/healthz"`)
	assert.Contains(t, buf.String(), `"status":200`)
}
