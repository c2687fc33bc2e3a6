package tag

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Tag is a named topic category. Names are globally unique; tags are managed
// by admins and never auto-created from free text.
type Tag struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// PopularTag is a tag with its question usage count.
type PopularTag struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Description   *string   `json:"description,omitempty" db:"description"`
	QuestionCount int       `json:"question_count" db:"question_count"`
}

// CreateTagRequest - POST /admin/tags
type CreateTagRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description,omitempty"`
}

func (r CreateTagRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 50).Error("name must be 1-50 characters"),
		),
		validation.Field(&r.Description,
			validation.Length(0, 500),
		),
	)
}

// UpdateTagRequest - PUT /admin/tags/:id
type UpdateTagRequest struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

func (r UpdateTagRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(1, 50)),
		validation.Field(&r.Description, validation.Length(0, 500)),
	)
}
