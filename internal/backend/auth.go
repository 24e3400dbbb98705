package backend

import (
	"context"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// User is the signed-in staff member as reported by the backend.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// DisplayName is what gets written to the audit journal.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login signs in against the backend and returns the cookies it set.
func (c *Client) Login(ctx context.Context, email, password string) (Credentials, User, error) {
	raw, resp, err := c.do(ctx, Credentials{}, http.MethodPost, "/api/auth/login", loginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return Credentials{}, User{}, err
	}

	var pairs []string
	for _, ck := range resp.Cookies() {
		pairs = append(pairs, ck.Name+"="+ck.Value)
	}
	if len(pairs) == 0 {
		return Credentials{}, User{}, errors.New("backend login set no session cookie")
	}

	doc := gjson.ParseBytes(raw)
	if u := doc.Get("user"); u.IsObject() {
		doc = u
	}
	user := User{
		Name:  doc.Get("name").String(),
		Email: doc.Get("email").String(),
		Role:  doc.Get("role").String(),
	}
	if user.Email == "" {
		user.Email = email
	}

	return Credentials{Cookie: strings.Join(pairs, "; ")}, user, nil
}
