package models

import (
	"errors"
	"strings"
)

type ImageBoard struct {
	ID          ID               `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	IsActive    bool             `json:"is_active"`
	Order       int              `json:"order"`
	PublicID    string           `json:"public_id"`
	ImageCount  int              `json:"image_count"`
	CanAddImage bool             `json:"can_add_image"`
	Images      []ImageBoardItem `json:"images"`
	Created     string           `json:"created,omitempty"`
	Updated     string           `json:"updated,omitempty"`
}

type ImageBoardItem struct {
	ID       ID     `json:"id"`
	Image    string `json:"image"`
	ImageURL string `json:"image_url"`
	Caption  string `json:"caption,omitempty"`
	Order    int    `json:"order"`
	IsActive bool   `json:"is_active"`
	PublicID string `json:"public_id"`
	Created  string `json:"created,omitempty"`
	Updated  string `json:"updated,omitempty"`
}

type ImageBoardCreate struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Order       *int   `json:"order,omitempty"`
}

func (c ImageBoardCreate) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return missing("title")
	}
	return nil
}

type ImageBoardUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Order       *int    `json:"order,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// ImageUpload is sent as multipart/form-data to a board's add_image/ action.
type ImageUpload struct {
	FileName string
	Content  []byte
	Caption  string
	Order    int
}

func (u ImageUpload) Validate() error {
	if u.FileName == "" {
		return missing("image")
	}
	if len(u.Content) == 0 {
		return &FieldError{Field: "image", Err: errors.New("file is empty")}
	}
	return nil
}

type ImageBoardItemUpdate struct {
	Caption  *string `json:"caption,omitempty"`
	Order    *int    `json:"order,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

type ReorderItem struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}

type ReorderRequest struct {
	Items []ReorderItem `json:"items"`
}

func (r ReorderRequest) Validate() error {
	if len(r.Items) == 0 {
		return missing("items")
	}
	return nil
}

type BulkToggleRequest struct {
	PublicIDs []string `json:"public_ids"`
	IsActive  bool     `json:"is_active"`
}

func (r BulkToggleRequest) Validate() error {
	if len(r.PublicIDs) == 0 {
		return missing("public_ids")
	}
	return nil
}
