package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/bujo/internal/client/client"
	"github.com/dmitrijs2005/bujo/internal/client/models"
)

type DiaryService struct {
	*Resource[models.DiaryEntry, models.DiaryEntryCreate, models.DiaryEntryUpdate]
}

func NewDiaryService(d Doer, users UserIDSource) *DiaryService {
	return &DiaryService{
		Resource: NewResource[models.DiaryEntry, models.DiaryEntryCreate, models.DiaryEntryUpdate](d, "diary/", users),
	}
}

// ListForCurrentUser lists the entries of the logged-in user. Without a
// known user id no request is made.
func (s *DiaryService) ListForCurrentUser(ctx context.Context) ([]models.DiaryEntry, error) {
	id := ""
	if s.users != nil {
		id = s.users.CurrentUserID(ctx)
	}
	if id == "" {
		return nil, client.ErrUnauthenticated
	}

	var raw json.RawMessage
	if err := s.doer.Do(ctx, http.MethodGet, "diary/"+url.PathEscape(id), nil, &raw); err != nil {
		return nil, fmt.Errorf("list diary of user %s: %w", id, err)
	}
	return models.DecodeList[models.DiaryEntry](raw)
}
