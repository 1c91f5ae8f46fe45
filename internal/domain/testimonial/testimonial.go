package testimonial

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("testimonial not found")

type Testimonial struct {
	ID        string    `json:"id" db:"id"`
	Author    string    `json:"author" db:"author"`
	Quote     string    `json:"quote" db:"quote"`
	Rating    int       `json:"rating" db:"rating"`
	ImageURL  *string   `json:"imageUrl,omitempty" db:"image_url"`
	ImageKey  *string   `json:"-" db:"image_key"`
	Published bool      `json:"published" db:"published"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

type Input struct {
	Author    string  `json:"author" validate:"required,min=2,max=80"`
	Quote     string  `json:"quote" validate:"required,min=5,max=1000"`
	Rating    int     `json:"rating" validate:"required,min=1,max=5"`
	ImageURL  *string `json:"imageUrl" validate:"omitempty,url"`
	ImageKey  *string `json:"imageKey" validate:"omitempty,max=255"`
	Published bool    `json:"published"`
}

func NewFromInput(in Input) Testimonial {
	now := time.Now().UTC()

	return Testimonial{
		ID:        uuid.NewString(),
		Author:    in.Author,
		Quote:     in.Quote,
		Rating:    in.Rating,
		ImageURL:  in.ImageURL,
		ImageKey:  in.ImageKey,
		Published: in.Published,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
