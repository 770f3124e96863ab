package api

import (
	"time"

	"github.com/google/uuid"
)

// Organization is a tenant scope returned by GET /organizations.
type Organization struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DisplayName returns the name, or the id when the service sent no name.
func (o Organization) DisplayName() string {
	if o.Name == "" {
		return o.ID
	}
	return o.Name
}

// Program is a deployed program as reported by GET /programs.
// Every field is optional because the service may omit any of them.
type Program struct {
	ID             *uuid.UUID `json:"id,omitempty"`
	Name           *string    `json:"name,omitempty"`
	Description    *string    `json:"description,omitempty"`
	Path           *string    `json:"path,omitempty"`
	Size           *int64     `json:"size,omitempty"`
	OrganizationID *string    `json:"organization_id,omitempty"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

// Page is the response envelope shared by list endpoints.
type Page[T any] struct {
	Data       T       `json:"data"`
	Message    *string `json:"message,omitempty"`
	Page       *int    `json:"page,omitempty"`
	PageSize   *int    `json:"page_size,omitempty"`
	TotalItems *int64  `json:"total_items,omitempty"`
	TotalPages *int    `json:"total_pages,omitempty"`
}

// SignInResponse is the body of POST /sign_in/api_key.
type SignInResponse struct {
	Token string `json:"token"`
}

// SelectOrganizationResponse is the body of POST /organizations/select.
type SelectOrganizationResponse struct {
	Token string `json:"token"`
}

// Upload is a program upload sent as multipart/form-data to POST /programs.
type Upload struct {
	Name           string
	Description    string
	OrganizationID string
	FileName       string
	ContentType    string
	Content        []byte
}

// UploadResult is the outcome of an accepted upload.
type UploadResult struct {
	Status int
	Body   string
}
