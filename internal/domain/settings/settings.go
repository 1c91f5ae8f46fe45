package settings

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("setting not found")

// Setting is a single site-wide key/value pair (hero copy, contact email, ...).
type Setting struct {
	Key       string    `json:"key" db:"key"`
	Value     string    `json:"value" db:"value"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

type Input struct {
	Key   string `json:"key" validate:"required,min=2,max=64,printascii,excludesall= /?#"`
	Value string `json:"value" validate:"max=5000"`
}
