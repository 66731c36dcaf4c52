package mongostore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/user/movieapi-go/models"
	"github.com/user/movieapi-go/store"
)

func TestFromMovieKeepsHexID(t *testing.T) {
	oid := bson.NewObjectID()
	doc := fromMovie(models.Movie{ID: oid.Hex(), Title: "Alien"})
	assert.Equal(t, oid, doc.ID)
	assert.Equal(t, oid.Hex(), doc.model().ID)

	fresh := fromMovie(models.Movie{Title: "Heat"})
	assert.False(t, fresh.ID.IsZero())
}

func TestUserDocRoundTrip(t *testing.T) {
	b := time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)
	doc := fromUser(&models.User{Username: "alice", Password: "hash", Email: "a@example.com", Birthday: &b})
	assert.Equal(t, []string{}, doc.FavoriteMovies)

	raw, err := bson.Marshal(doc)
	require.NoError(t, err)
	var decoded userDoc
	require.NoError(t, bson.Unmarshal(raw, &decoded))

	u := decoded.model()
	assert.Equal(t, doc.ID.Hex(), u.ID)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "hash", u.Password)
	assert.True(t, b.Equal(*u.Birthday))
}

func TestUserDocNilFavorites(t *testing.T) {
	u := userDoc{ID: bson.NewObjectID()}.model()
	assert.NotNil(t, u.FavoriteMovies)
}

func TestUpdateDocOnlySetsPresentFields(t *testing.T) {
	email := "new@example.com"
	got := updateDoc(models.UserUpdate{Email: &email})
	require.Len(t, got, 1)
	assert.Equal(t, "$set", got[0].Key)
	assert.Equal(t, bson.D{{Key: "Email", Value: email}}, got[0].Value)
}

func TestParseIDMalformedIsNotFound(t *testing.T) {
	_, err := parseID("not-an-object-id")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
