package api

import (
	"context"
	"net/http"

	"github.com/tablero-dev/tablero/internal/models"
	"github.com/tablero-dev/tablero/internal/session"
)

// RegisterRequest encapsulates the data needed to create an account
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest encapsulates the credentials for a login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

// Login exchanges credentials for a bearer token and returns a session
// ready to hand to New. The gateway used for login does not need a token
// itself, so a zero session with only ServerURL set is enough.
func (c *Client) Login(ctx context.Context, req LoginRequest) (session.Session, models.UserRef, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &resp, false); err != nil {
		return session.Session{}, models.UserRef{}, err
	}

	user := resp.User.toModel()
	sess := session.Session{
		ServerURL: c.baseURL,
		Token:     resp.Token,
		UserID:    user.ID,
		Username:  user.Username,
	}
	return sess, user, nil
}

// Register creates an account and returns a session like Login
func (c *Client) Register(ctx context.Context, req RegisterRequest) (session.Session, models.UserRef, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &resp, false); err != nil {
		return session.Session{}, models.UserRef{}, err
	}

	user := resp.User.toModel()
	sess := session.Session{
		ServerURL: c.baseURL,
		Token:     resp.Token,
		UserID:    user.ID,
		Username:  user.Username,
	}
	return sess, user, nil
}
