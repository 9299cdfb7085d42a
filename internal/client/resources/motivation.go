package resources

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/dmitrijs2005/bujo/internal/client/models"
)

// MotivationService manages image boards. Boards and images are addressed
// by their public id.
type MotivationService struct {
	*Resource[models.ImageBoard, models.ImageBoardCreate, models.ImageBoardUpdate]
	images *Resource[models.ImageBoardItem, struct{}, models.ImageBoardItemUpdate]
}

func NewMotivationService(d Doer, users UserIDSource) *MotivationService {
	return &MotivationService{
		Resource: NewResource[models.ImageBoard, models.ImageBoardCreate, models.ImageBoardUpdate](d, "motivation/boards/", users),
		images:   NewResource[models.ImageBoardItem, struct{}, models.ImageBoardItemUpdate](d, "motivation/images/", users),
	}
}

// AddImage uploads one image to a board as multipart/form-data.
func (s *MotivationService) AddImage(ctx context.Context, boardID string, up models.ImageUpload) (*models.ImageBoardItem, error) {
	if err := validate(up); err != nil {
		return nil, err
	}
	if err := s.guard(ctx); err != nil {
		return nil, err
	}

	body, contentType, err := encodeUpload(up)
	if err != nil {
		return nil, err
	}

	var out models.ImageBoardItem
	if err := s.doer.Send(ctx, http.MethodPost, s.item(boardID)+"add_image/", contentType, body, &out); err != nil {
		return nil, fmt.Errorf("add image to board %s: %w", boardID, err)
	}
	return &out, nil
}

func encodeUpload(up models.ImageUpload) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fw, err := w.CreateFormFile("image", filepath.Base(up.FileName))
	if err != nil {
		return nil, "", fmt.Errorf("multipart: %w", err)
	}
	if _, err := fw.Write(up.Content); err != nil {
		return nil, "", fmt.Errorf("multipart: %w", err)
	}
	if up.Caption != "" {
		if err := w.WriteField("caption", up.Caption); err != nil {
			return nil, "", fmt.Errorf("multipart: %w", err)
		}
	}
	if up.Order != 0 {
		if err := w.WriteField("order", strconv.Itoa(up.Order)); err != nil {
			return nil, "", fmt.Errorf("multipart: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("multipart: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

func (s *MotivationService) ReorderImages(ctx context.Context, boardID string, req models.ReorderRequest) error {
	if err := validate(req); err != nil {
		return err
	}
	if err := s.guard(ctx); err != nil {
		return err
	}
	if err := s.doer.Do(ctx, http.MethodPost, s.item(boardID)+"reorder_images/", req, nil); err != nil {
		return fmt.Errorf("reorder images of board %s: %w", boardID, err)
	}
	return nil
}

func (s *MotivationService) BulkToggleImages(ctx context.Context, req models.BulkToggleRequest) error {
	if err := validate(req); err != nil {
		return err
	}
	if err := s.guard(ctx); err != nil {
		return err
	}
	if err := s.doer.Do(ctx, http.MethodPost, s.images.Path()+"bulk_toggle_active/", req, nil); err != nil {
		return fmt.Errorf("bulk toggle images: %w", err)
	}
	return nil
}

func (s *MotivationService) UpdateImage(ctx context.Context, imageID string, in models.ImageBoardItemUpdate) (*models.ImageBoardItem, error) {
	return s.images.Update(ctx, imageID, in)
}

func (s *MotivationService) DeleteImage(ctx context.Context, imageID string) error {
	return s.images.Delete(ctx, imageID)
}
