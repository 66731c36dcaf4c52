// Package models defines the entities the API serves: movies (read-only
// catalogue data) and users with their favorite-movie lists.
// The JSON field names are PascalCase and the identifier is `_id`; existing
// clients read exactly these keys.
package models

import "time"

// Genre is embedded in every Movie.
type Genre struct {
	Name        string `json:"Name"`
	Description string `json:"Description"`
}

// Director is embedded in every Movie.
type Director struct {
	Name  string     `json:"Name"`
	Bio   string     `json:"Bio"`
	Birth *time.Time `json:"Birth,omitempty"`
	Death *time.Time `json:"Death,omitempty"`
}

// Movie is a catalogue entry. Movies are seeded out of band and never mutated through the API.
type Movie struct {
	ID          string   `json:"_id"`
	Title       string   `json:"Title"`
	Description string   `json:"Description,omitempty"`
	Genre       Genre    `json:"Genre"`
	Director    Director `json:"Director"`
	ImagePath   string   `json:"ImagePath,omitempty"`
	Featured    bool     `json:"Featured"`
}

// User is an account. Password holds the bcrypt hash and is never serialized.
type User struct {
	ID             string     `json:"_id"`
	Username       string     `json:"Username"`
	Password       string     `json:"-"`
	Email          string     `json:"Email"`
	Birthday       *time.Time `json:"Birthday,omitempty"`
	FavoriteMovies []string   `json:"FavoriteMovies"`
}

// UserUpdate is a partial update. A nil field is left untouched.
// Password, when set, must already be hashed.
type UserUpdate struct {
	Username *string
	Password *string
	Email    *string
	Birthday *time.Time
}

// IsEmpty reports whether the update would change nothing.
func (u UserUpdate) IsEmpty() bool {
	return u.Username == nil && u.Password == nil && u.Email == nil && u.Birthday == nil
}

// Apply merges the non-nil fields of u into user.
func (u UserUpdate) Apply(user *User) {
	if u.Username != nil {
		user.Username = *u.Username
	}
	if u.Password != nil {
		user.Password = *u.Password
	}
	if u.Email != nil {
		user.Email = *u.Email
	}
	if u.Birthday != nil {
		b := *u.Birthday
		user.Birthday = &b
	}
}

// AppendFavorite returns favorites with movieID appended at the end.
func AppendFavorite(favorites []string, movieID string) []string {
	out := make([]string, 0, len(favorites)+1)
	out = append(out, favorites...)
	return append(out, movieID)
}

// RemoveFavorite returns favorites without the last occurrence of movieID.
// Removing the last occurrence makes add-then-remove an exact round trip even
// when the list already held duplicates. The input slice is not modified.
func RemoveFavorite(favorites []string, movieID string) []string {
	idx := -1
	for i := len(favorites) - 1; i >= 0; i-- {
		if favorites[i] == movieID {
			idx = i
			break
		}
	}
	out := make([]string, 0, len(favorites))
	out = append(out, favorites...)
	if idx < 0 {
		return out
	}
	return append(out[:idx], out[idx+1:]...)
}
