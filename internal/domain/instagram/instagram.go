package instagram

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("instagram post not found")
	ErrDuplicate  = errors.New("instagram post with this url already exists")
	ErrInvalidURL = errors.New("url must be an Instagram post URL")
)

type Post struct {
	ID        string    `json:"id" db:"id"`
	URL       string    `json:"url" db:"url"`
	Caption   string    `json:"caption" db:"caption"`
	SortOrder int       `json:"sortOrder" db:"sort_order"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

type Input struct {
	URL       string `json:"url" validate:"required,max=500"`
	Caption   string `json:"caption" validate:"omitempty,max=2200"`
	SortOrder int    `json:"sortOrder" validate:"min=0"`
}

var shortcodeRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// NormalizeURL reduces any post, reel or tv link to
// https://www.instagram.com/<kind>/<shortcode>/ so that the same post always
// stores under one URL. Query strings, fragments and a leading username
// segment are dropped.
func NormalizeURL(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", ErrInvalidURL
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", ErrInvalidURL
	}

	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	host = strings.TrimPrefix(host, "m.")
	if host != "instagram.com" && host != "instagr.am" {
		return "", ErrInvalidURL
	}

	parts := make([]string, 0, 4)
	for _, p := range strings.Split(u.Path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}

	for i := 0; i+1 < len(parts); i++ {
		kind := strings.ToLower(parts[i])
		if kind == "reels" {
			kind = "reel"
		}
		switch kind {
		case "p", "reel", "tv":
			code := parts[i+1]
			if !shortcodeRe.MatchString(code) {
				return "", ErrInvalidURL
			}
			return "https://www.instagram.com/" + kind + "/" + code + "/", nil
		}
	}

	return "", ErrInvalidURL
}

func NewFromInput(in Input, normalized string) Post {
	now := time.Now().UTC()

	return Post{
		ID:        uuid.NewString(),
		URL:       normalized,
		Caption:   in.Caption,
		SortOrder: in.SortOrder,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
