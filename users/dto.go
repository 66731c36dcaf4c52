// Package users encapsulates all functionality related to user accounts:
// self-registration, reading and updating one's own record, deleting it,
// and managing the favorite-movie list.
package users

// CreateUserRequest is the POST /users body. Field rules live in validation.CreateUserRules.
type CreateUserRequest struct {
	Username       string   `json:"Username" example:"alice"`
	Password       string   `json:"Password" example:"correcthorse"`
	Email          string   `json:"Email" example:"alice@example.com"`
	Birthday       *string  `json:"Birthday,omitempty" example:"1990-05-01"`
	FavoriteMovies []string `json:"FavoriteMovies,omitempty"`
}

// UpdateUserRequest is the PUT /users/{userID} body.
// Only fields present in the body are changed. Setting Password requires
// CurrentPassword to match the stored one.
type UpdateUserRequest struct {
	Username        *string `json:"Username,omitempty" example:"alice2"`
	Password        *string `json:"Password,omitempty" example:"newcorrecthorse"`
	CurrentPassword *string `json:"CurrentPassword,omitempty" example:"correcthorse"`
	Email           *string `json:"Email,omitempty" example:"alice@example.org"`
	Birthday        *string `json:"Birthday,omitempty" example:"1990-05-01"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message" example:"alice was deleted."`
}
