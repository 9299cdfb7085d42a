package resources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/bujo/internal/client/client"
	"github.com/dmitrijs2005/bujo/internal/client/models"
)

// DefaultHistoryDays is the window used when FieldHistory is asked for
// zero or fewer days.
const DefaultHistoryDays = 365

type BulletService struct {
	*Resource[models.Bullet, models.BulletCreate, models.BulletUpdate]
}

func NewBulletService(d Doer, users UserIDSource) *BulletService {
	return &BulletService{
		Resource: NewResource[models.Bullet, models.BulletCreate, models.BulletUpdate](d, "bullet/", users),
	}
}

func (s *BulletService) Averages(ctx context.Context) (*models.BulletAverages, error) {
	if err := s.guard(ctx); err != nil {
		return nil, err
	}
	var out models.BulletAverages
	if err := s.doer.Do(ctx, http.MethodGet, "bullet/averages/", nil, &out); err != nil {
		return nil, fmt.Errorf("bullet averages: %w", err)
	}
	return &out, nil
}

// FieldHistory returns the values of one rating field over the last days.
func (s *BulletService) FieldHistory(ctx context.Context, field string, days int) (*models.FieldHistory, error) {
	if !models.IsBulletField(field) {
		return nil, fmt.Errorf("%w: unknown bullet field %q", client.ErrValidation, field)
	}
	if days <= 0 {
		days = DefaultHistoryDays
	}
	if err := s.guard(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("field", field)
	q.Set("days", strconv.Itoa(days))

	var out models.FieldHistory
	if err := s.doer.Do(ctx, http.MethodGet, "bullet/field_history/?"+q.Encode(), nil, &out); err != nil {
		return nil, fmt.Errorf("bullet history of %s: %w", field, err)
	}
	if out.Data == nil {
		out.Data = []models.FieldHistoryData{}
	}
	return &out, nil
}
