package resources

import "github.com/dmitrijs2005/bujo/internal/client/models"

type (
	TextItems = Resource[models.TextItem, models.TextItemCreate, models.TextItemUpdate]
	Favorites = Resource[models.Favorite, models.FavoriteCreate, models.FavoriteUpdate]
	Abouts    = Resource[models.About, models.AboutFields, models.AboutFields]
)

// ProfileService groups the sections of the personal profile.
type ProfileService struct {
	Affirmations *TextItems
	Gratitudes   *TextItems
	Passions     *TextItems
	Favorites    *Favorites
	About        *Abouts
}

func NewProfileService(d Doer, users UserIDSource) *ProfileService {
	return &ProfileService{
		Affirmations: NewResource[models.TextItem, models.TextItemCreate, models.TextItemUpdate](d, "profile/affirmations/", users),
		Gratitudes:   NewResource[models.TextItem, models.TextItemCreate, models.TextItemUpdate](d, "profile/gratitudes/", users),
		Passions:     NewResource[models.TextItem, models.TextItemCreate, models.TextItemUpdate](d, "profile/passions/", users),
		Favorites:    NewResource[models.Favorite, models.FavoriteCreate, models.FavoriteUpdate](d, "profile/favorites/", users),
		About:        NewResource[models.About, models.AboutFields, models.AboutFields](d, "profile/about/", users),
	}
}
