package product

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound  = errors.New("product not found")
	ErrSlugTaken = errors.New("product with this slug already exists")
)

type Product struct {
	ID          string          `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Slug        string          `json:"slug" db:"slug"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	ImageURL    *string         `json:"imageUrl,omitempty" db:"image_url"`
	ImageKey    *string         `json:"-" db:"image_key"`
	Featured    bool            `json:"featured" db:"featured"`
	SortOrder   int             `json:"sortOrder" db:"sort_order"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`
}

// Input is shared by create and update; updates replace every field.
type Input struct {
	Name        string  `json:"name" validate:"required,min=2,max=120"`
	Slug        string  `json:"slug" validate:"omitempty,max=140"`
	Description string  `json:"description" validate:"omitempty,max=2000"`
	Price       string  `json:"price" validate:"required,numeric"`
	ImageURL    *string `json:"imageUrl" validate:"omitempty,url"`
	ImageKey    *string `json:"imageKey" validate:"omitempty,max=255"`
	Featured    bool    `json:"featured"`
	SortOrder   int     `json:"sortOrder" validate:"min=0"`
}

var ErrNegativePrice = errors.New("price must not be negative")

// ParsePrice reads the decimal price of an input.
func (in Input) ParsePrice() (decimal.Decimal, error) {
	p, err := decimal.NewFromString(in.Price)
	if err != nil {
		return decimal.Zero, err
	}
	if p.IsNegative() {
		return decimal.Zero, ErrNegativePrice
	}
	return p.Round(2), nil
}

// SlugFor uses the explicit slug when given, otherwise derives one from the name.
func SlugFor(in Input) string {
	if in.Slug != "" {
		return slug.Make(in.Slug)
	}
	return slug.Make(in.Name)
}

func NewFromInput(in Input, price decimal.Decimal) Product {
	now := time.Now().UTC()

	return Product{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Slug:        SlugFor(in),
		Description: in.Description,
		Price:       price,
		ImageURL:    in.ImageURL,
		ImageKey:    in.ImageKey,
		Featured:    in.Featured,
		SortOrder:   in.SortOrder,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
