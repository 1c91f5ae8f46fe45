package handlers_test

import (
	"errors"

	"github.com/geocoder89/mocktail/internal/auth"
	"github.com/geocoder89/mocktail/internal/domain/role"
	"github.com/gin-gonic/gin"
)

// Make sure Gin does not spam the console during the test

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeVerifier treats the bearer token as the role name.
type fakeVerifier struct{}

func (fakeVerifier) VerifySession(token string) (auth.Session, error) {
	r, ok := role.Parse(token)
	if !ok {
		return auth.Session{}, errors.New("bad token")
	}
	return auth.Session{UserID: "u-" + token, Email: token + "@mocktail.test", Role: r}, nil
}
