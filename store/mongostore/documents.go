package mongostore

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/user/movieapi-go/models"
)

// Field names match the documents already stored in the movieAPI_DB collections.

type genreDoc struct {
	Name        string `bson:"Name"`
	Description string `bson:"Description"`
}

type directorDoc struct {
	Name  string     `bson:"Name"`
	Bio   string     `bson:"Bio"`
	Birth *time.Time `bson:"Birth,omitempty"`
	Death *time.Time `bson:"Death,omitempty"`
}

type movieDoc struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	Title       string        `bson:"Title"`
	Description string        `bson:"Description,omitempty"`
	Genre       genreDoc      `bson:"Genre"`
	Director    directorDoc   `bson:"Director"`
	ImagePath   string        `bson:"ImagePath,omitempty"`
	Featured    bool          `bson:"Featured"`
}

type userDoc struct {
	ID             bson.ObjectID `bson:"_id,omitempty"`
	Username       string        `bson:"Username"`
	Password       string        `bson:"Password"`
	Email          string        `bson:"Email"`
	Birthday       *time.Time    `bson:"Birthday,omitempty"`
	FavoriteMovies []string      `bson:"FavoriteMovies"`
}

func (g genreDoc) model() models.Genre {
	return models.Genre{Name: g.Name, Description: g.Description}
}

func (d directorDoc) model() models.Director {
	return models.Director{Name: d.Name, Bio: d.Bio, Birth: d.Birth, Death: d.Death}
}

func (m movieDoc) model() models.Movie {
	return models.Movie{
		ID:          m.ID.Hex(),
		Title:       m.Title,
		Description: m.Description,
		Genre:       m.Genre.model(),
		Director:    m.Director.model(),
		ImagePath:   m.ImagePath,
		Featured:    m.Featured,
	}
}

func fromMovie(m models.Movie) movieDoc {
	doc := movieDoc{
		Title:       m.Title,
		Description: m.Description,
		Genre:       genreDoc{Name: m.Genre.Name, Description: m.Genre.Description},
		Director: directorDoc{
			Name:  m.Director.Name,
			Bio:   m.Director.Bio,
			Birth: m.Director.Birth,
			Death: m.Director.Death,
		},
		ImagePath: m.ImagePath,
		Featured:  m.Featured,
	}
	if id, err := bson.ObjectIDFromHex(m.ID); err == nil {
		doc.ID = id
	} else {
		doc.ID = bson.NewObjectID()
	}
	return doc
}

func (u userDoc) model() *models.User {
	favorites := u.FavoriteMovies
	if favorites == nil {
		favorites = []string{}
	}
	return &models.User{
		ID:             u.ID.Hex(),
		Username:       u.Username,
		Password:       u.Password,
		Email:          u.Email,
		Birthday:       u.Birthday,
		FavoriteMovies: favorites,
	}
}

func fromUser(u *models.User) userDoc {
	favorites := u.FavoriteMovies
	if favorites == nil {
		favorites = []string{}
	}
	return userDoc{
		ID:             bson.NewObjectID(),
		Username:       u.Username,
		Password:       u.Password,
		Email:          u.Email,
		Birthday:       u.Birthday,
		FavoriteMovies: favorites,
	}
}

// updateDoc builds the $set document for a partial update.
func updateDoc(update models.UserUpdate) bson.D {
	set := bson.D{}
	if update.Username != nil {
		set = append(set, bson.E{Key: "Username", Value: *update.Username})
	}
	if update.Password != nil {
		set = append(set, bson.E{Key: "Password", Value: *update.Password})
	}
	if update.Email != nil {
		set = append(set, bson.E{Key: "Email", Value: *update.Email})
	}
	if update.Birthday != nil {
		set = append(set, bson.E{Key: "Birthday", Value: *update.Birthday})
	}
	return bson.D{{Key: "$set", Value: set}}
}
