package ingredient

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("ingredient not found")
	ErrNameTaken = errors.New("ingredient with this name already exists")
)

type Ingredient struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	ImageURL    *string   `json:"imageUrl,omitempty" db:"image_url"`
	ImageKey    *string   `json:"-" db:"image_key"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

type Input struct {
	Name        string  `json:"name" validate:"required,min=2,max=80"`
	Description string  `json:"description" validate:"omitempty,max=1000"`
	ImageURL    *string `json:"imageUrl" validate:"omitempty,url"`
	ImageKey    *string `json:"imageKey" validate:"omitempty,max=255"`
}

func NewFromInput(in Input) Ingredient {
	now := time.Now().UTC()

	return Ingredient{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		ImageKey:    in.ImageKey,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
