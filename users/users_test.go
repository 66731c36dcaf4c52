package users

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/movieapi-go/apperror"
	"github.com/user/movieapi-go/auth"
	"github.com/user/movieapi-go/models"
	"github.com/user/movieapi-go/store"
)

func ptr(s string) *string { return &s }

func register(t *testing.T, svc *Service, username, password string) *models.User {
	t.Helper()
	u, err := svc.Register(context.Background(), CreateUserRequest{
		Username: username,
		Password: password,
		Email:    username + "@example.com",
		Birthday: ptr("1990-05-01"),
	})
	require.NoError(t, err)
	return u
}

func TestRegisterHashesPassword(t *testing.T) {
	mem := store.NewMemory()
	svc := NewService(mem)

	u := register(t, svc, "alice", "correcthorse")
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, []string{}, u.FavoriteMovies)
	require.NotNil(t, u.Birthday)
	assert.Equal(t, 1990, u.Birthday.Year())

	stored, err := mem.GetUserByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "correcthorse", stored.Password)
	assert.True(t, auth.CheckPassword(stored.Password, "correcthorse"))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	mem := store.NewMemory()
	svc := NewService(mem)
	first := register(t, svc, "alice", "correcthorse")

	_, err := svc.Register(context.Background(), CreateUserRequest{Username: "alice", Password: "otherpassword", Email: "x@example.com"})
	require.Error(t, err)
	assert.True(t, apperror.IsConflictError(err))
	appErr, _ := apperror.FromError(err)
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode())
	assert.Equal(t, "alice already exists", appErr.Message)

	stored, err := mem.GetUserByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, first.ID, stored.ID)
	assert.Equal(t, "alice@example.com", stored.Email)
}

func TestRegisterBadBirthday(t *testing.T) {
	svc := NewService(store.NewMemory())
	_, err := svc.Register(context.Background(), CreateUserRequest{Username: "bob", Password: "correcthorse", Birthday: ptr("01/05/1990")})
	require.Error(t, err)
	appErr, ok := apperror.FromError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.BadRequestError, appErr.Type)
}

func TestUpdateMergesPresentFields(t *testing.T) {
	svc := NewService(store.NewMemory())
	u := register(t, svc, "alice", "correcthorse")

	updated, err := svc.Update(context.Background(), u.ID, UpdateUserRequest{Email: ptr("new@example.com")})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.Email)
	assert.Equal(t, "alice", updated.Username)
	assert.Equal(t, u.Birthday.Unix(), updated.Birthday.Unix())
}

func TestUpdateEmptyBodyIsNoop(t *testing.T) {
	svc := NewService(store.NewMemory())
	u := register(t, svc, "alice", "correcthorse")

	updated, err := svc.Update(context.Background(), u.ID, UpdateUserRequest{})
	require.NoError(t, err)
	assert.Equal(t, u.Email, updated.Email)
}

func TestUpdatePasswordNeedsCurrentPassword(t *testing.T) {
	mem := store.NewMemory()
	svc := NewService(mem)
	u := register(t, svc, "alice", "correcthorse")

	_, err := svc.Update(context.Background(), u.ID, UpdateUserRequest{Password: ptr("newpassword1")})
	assert.True(t, apperror.IsAuthError(err))

	_, err = svc.Update(context.Background(), u.ID, UpdateUserRequest{Password: ptr("newpassword1"), CurrentPassword: ptr("wrongpassword")})
	assert.True(t, apperror.IsAuthError(err))

	stored, _ := mem.GetUser(context.Background(), u.ID)
	assert.True(t, auth.CheckPassword(stored.Password, "correcthorse"))

	_, err = svc.Update(context.Background(), u.ID, UpdateUserRequest{Password: ptr("newpassword1"), CurrentPassword: ptr("correcthorse")})
	require.NoError(t, err)
	stored, _ = mem.GetUser(context.Background(), u.ID)
	assert.True(t, auth.CheckPassword(stored.Password, "newpassword1"))
}

func TestUpdateUsernameTaken(t *testing.T) {
	svc := NewService(store.NewMemory())
	register(t, svc, "alice", "correcthorse")
	bob := register(t, svc, "bob", "correcthorse")

	_, err := svc.Update(context.Background(), bob.ID, UpdateUserRequest{Username: ptr("alice")})
	assert.True(t, apperror.IsConflictError(err))

	same, err := svc.Update(context.Background(), bob.ID, UpdateUserRequest{Username: ptr("bob")})
	require.NoError(t, err)
	assert.Equal(t, "bob", same.Username)
}

func TestDelete(t *testing.T) {
	svc := NewService(store.NewMemory())
	u := register(t, svc, "alice", "correcthorse")

	name, err := svc.Delete(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", name)

	_, err = svc.Delete(context.Background(), u.ID)
	assert.True(t, apperror.IsNotFound(err))
	_, err = svc.Get(context.Background(), u.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestFavoritesRoundTrip(t *testing.T) {
	svc := NewService(store.NewMemory())
	u := register(t, svc, "alice", "correcthorse")
	ctx := context.Background()

	_, err := svc.AddFavorite(ctx, u.ID, "m1")
	require.NoError(t, err)
	before, err := svc.Get(ctx, u.ID)
	require.NoError(t, err)

	added, err := svc.AddFavorite(ctx, u.ID, "m1")
	require.NoError(t, err)
	assert.Equal(t, []string{"m1", "m1"}, added.FavoriteMovies)

	removed, err := svc.RemoveFavorite(ctx, u.ID, "m1")
	require.NoError(t, err)
	assert.Equal(t, before.FavoriteMovies, removed.FavoriteMovies)

	absent, err := svc.RemoveFavorite(ctx, u.ID, "nope")
	require.NoError(t, err)
	assert.Equal(t, []string{"m1"}, absent.FavoriteMovies)

	_, err = svc.AddFavorite(ctx, "missing", "m1")
	assert.True(t, apperror.IsNotFound(err))
}

func newRouter(svc *Service) http.Handler {
	h := NewHandlers(svc)
	r := chi.NewRouter()
	r.Post("/users", h.HandleRegister())
	r.Get("/users/{userID}", h.HandleGetUser())
	r.Put("/users/{userID}", h.HandleUpdateUser())
	r.Delete("/users/{userID}", h.HandleDeleteUser())
	r.Put("/users/{userID}/FavoriteMovies/{movieID}", h.HandleAddFavorite())
	r.Delete("/users/{userID}/FavoriteMovies/{movieID}", h.HandleRemoveFavorite())
	return r
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandlersNeverExposePassword(t *testing.T) {
	h := newRouter(NewService(store.NewMemory()))

	rec := do(h, http.MethodPost, "/users", `{"Username":"alice","Password":"correcthorse","Email":"a@example.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Password")
	assert.NotContains(t, rec.Body.String(), "correcthorse")

	var created models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	for _, r := range []*httptest.ResponseRecorder{
		do(h, http.MethodGet, "/users/"+created.ID, ""),
		do(h, http.MethodPut, "/users/"+created.ID, `{"Email":"b@example.com"}`),
		do(h, http.MethodPut, "/users/"+created.ID+"/FavoriteMovies/m1", ""),
		do(h, http.MethodDelete, "/users/"+created.ID+"/FavoriteMovies/m1", ""),
	} {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.NotContains(t, r.Body.String(), "Password")
		assert.NotContains(t, r.Body.String(), "$2a$")
	}

	rec = do(h, http.MethodDelete, "/users/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"alice was deleted."}`, rec.Body.String())
}

func TestHandleRegisterConflict(t *testing.T) {
	h := newRouter(NewService(store.NewMemory()))
	body := `{"Username":"alice","Password":"correcthorse","Email":"a@example.com"}`
	require.Equal(t, http.StatusCreated, do(h, http.MethodPost, "/users", body).Code)

	rec := do(h, http.MethodPost, "/users", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"alice already exists"}`, rec.Body.String())
}

func TestHandleUpdateMalformedBody(t *testing.T) {
	h := newRouter(NewService(store.NewMemory()))
	rec := do(h, http.MethodPut, "/users/whatever", `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
