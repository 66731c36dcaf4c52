package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/user/movieapi-go/apperror"
	"github.com/user/movieapi-go/auth"
	"github.com/user/movieapi-go/models"
	"github.com/user/movieapi-go/store"
	"github.com/user/movieapi-go/validation"
)

// Service provides user account operations on top of a UserStore.
type Service struct {
	store store.UserStore
}

// NewService creates a new user Service.
func NewService(s store.UserStore) *Service {
	return &Service{store: s}
}

func parseBirthday(v *string) (*time.Time, error) {
	if v == nil {
		return nil, nil
	}
	t, err := time.Parse(validation.DateLayout, *v)
	if err != nil {
		return nil, apperror.NewBadRequestError("Birthday must be a date in YYYY-MM-DD format.", err)
	}
	return &t, nil
}

func conflict(username string) *apperror.AppError {
	return apperror.NewConflictError(username+" already exists", nil)
}

// Register creates a user after checking the username is free. The password
// is hashed before insert, and the stored record is re-read so the response
// reflects what was persisted.
func (s *Service) Register(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	_, err := s.store.GetUserByUsername(ctx, req.Username)
	switch {
	case err == nil:
		return nil, conflict(req.Username)
	case !errors.Is(err, store.ErrNotFound):
		return nil, apperror.NewDatabaseError("failed to check username", err)
	}

	birthday, err := parseBirthday(req.Birthday)
	if err != nil {
		return nil, err
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperror.NewInternalError("failed to hash password", err)
	}

	favorites := req.FavoriteMovies
	if favorites == nil {
		favorites = []string{}
	}

	created, err := s.store.CreateUser(ctx, &models.User{
		Username:       req.Username,
		Password:       hashed,
		Email:          req.Email,
		Birthday:       birthday,
		FavoriteMovies: favorites,
	})
	if err != nil {
		// Lost a race with a concurrent registration of the same name.
		if errors.Is(err, store.ErrDuplicateUsername) {
			return nil, conflict(req.Username)
		}
		return nil, apperror.NewDatabaseError("failed to create user", err)
	}

	user, err := s.store.GetUser(ctx, created.ID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to read created user", err)
	}
	log.Ctx(ctx).Info().Str("user_id", user.ID).Msg("user registered")
	return user, nil
}

// Get returns the user with the given ID.
func (s *Service) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, id, "failed to get user")
	}
	return user, nil
}

func notFoundOr(err error, id, msg string) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperror.NewNotFoundError(fmt.Sprintf("User %s was not found.", id), nil)
	}
	return apperror.NewDatabaseError(msg, err)
}

// Update merges the fields present in req into the user. A new password is
// only accepted together with the correct current password.
func (s *Service) Update(ctx context.Context, id string, req UpdateUserRequest) (*models.User, error) {
	current, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, id, "failed to get user")
	}

	var update models.UserUpdate

	if req.Password != nil {
		if req.CurrentPassword == nil || !auth.CheckPassword(current.Password, *req.CurrentPassword) {
			return nil, apperror.NewAuthError("Current password is incorrect.", nil)
		}
		hashed, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, apperror.NewInternalError("failed to hash password", err)
		}
		update.Password = &hashed
	}

	if req.Username != nil && *req.Username != current.Username {
		_, err := s.store.GetUserByUsername(ctx, *req.Username)
		switch {
		case err == nil:
			return nil, conflict(*req.Username)
		case !errors.Is(err, store.ErrNotFound):
			return nil, apperror.NewDatabaseError("failed to check username", err)
		}
		update.Username = req.Username
	}

	if req.Email != nil {
		update.Email = req.Email
	}

	if req.Birthday != nil {
		birthday, err := parseBirthday(req.Birthday)
		if err != nil {
			return nil, err
		}
		update.Birthday = birthday
	}

	if update.IsEmpty() {
		return current, nil
	}

	updated, err := s.store.UpdateUser(ctx, id, update)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateUsername) {
			return nil, conflict(*req.Username)
		}
		return nil, notFoundOr(err, id, "failed to update user")
	}
	return updated, nil
}

// Delete removes the user and returns the username it had.
func (s *Service) Delete(ctx context.Context, id string) (string, error) {
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		return "", notFoundOr(err, id, "failed to get user")
	}
	if err := s.store.DeleteUser(ctx, id); err != nil {
		return "", notFoundOr(err, id, "failed to delete user")
	}
	log.Ctx(ctx).Info().Str("user_id", id).Msg("user deleted")
	return user.Username, nil
}

// AddFavorite appends movieID to the user's favorites. The movie is not
// checked for existence and duplicates are kept.
func (s *Service) AddFavorite(ctx context.Context, userID, movieID string) (*models.User, error) {
	user, err := s.store.AddFavorite(ctx, userID, movieID)
	if err != nil {
		return nil, notFoundOr(err, userID, "failed to add favorite")
	}
	return user, nil
}

// RemoveFavorite removes the last occurrence of movieID from the user's favorites.
func (s *Service) RemoveFavorite(ctx context.Context, userID, movieID string) (*models.User, error) {
	user, err := s.store.RemoveFavorite(ctx, userID, movieID)
	if err != nil {
		return nil, notFoundOr(err, userID, "failed to remove favorite")
	}
	return user, nil
}
