package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth"
	"github.com/go-chi/render"
	"golang.org/x/crypto/bcrypt"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

const tokenTTL = 24 * time.Hour

// ErrUnauthenticated indicates a request without a usable token subject
var ErrUnauthenticated = errors.New("unauthenticated")

// Auth issues and verifies admin tokens for a fixed set of users. Any
// authenticated user may use every admin route.
type Auth struct {
	tokens *jwtauth.JWTAuth
	users  map[string]simplecms.User
}

// NewAuth creates an HS256 token authority over users
func NewAuth(secret string, users ...simplecms.User) (*Auth, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	a := &Auth{
		tokens: jwtauth.New("HS256", []byte(secret), nil),
		users:  make(map[string]simplecms.User, len(users)),
	}
	for _, u := range users {
		if u.Username == "" || u.PasswordHash == "" {
			return nil, fmt.Errorf("user %q needs a username and password hash", u.ID)
		}
		a.users[u.Username] = u
	}
	return a, nil
}

// NewUser builds a user with a bcrypt hash of password
func NewUser(id, username, name, email string, role simplecms.Role, password string) (simplecms.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return simplecms.User{}, fmt.Errorf("failed to hash password: %w", err)
	}
	return simplecms.User{
		ID:           id,
		Username:     username,
		Name:         name,
		Email:        email,
		Role:         role,
		PasswordHash: string(hash),
	}, nil
}

// DefaultAdmin returns the seeded administrator with the given credentials.
// Its id matches the author of the seeded articles.
func DefaultAdmin(username, password string) (simplecms.User, error) {
	return NewUser("1", username, "Admin User", "admin@example.com", simplecms.RoleAdmin, password)
}

// Authenticate checks credentials and returns the matching user
func (a *Auth) Authenticate(username, password string) (simplecms.User, bool) {
	u, ok := a.users[username]
	if !ok {
		return simplecms.User{}, false
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return simplecms.User{}, false
	}
	return u, true
}

// IssueToken signs a token whose subject is the user id
func (a *Auth) IssueToken(u simplecms.User) (string, error) {
	claims := map[string]interface{}{
		"sub":      u.ID,
		"username": u.Username,
	}
	jwtauth.SetIssuedNow(claims)
	jwtauth.SetExpiryIn(claims, tokenTTL)

	_, token, err := a.tokens.Encode(claims)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

func (a *Auth) userByID(id string) (simplecms.User, bool) {
	for _, u := range a.users {
		if u.ID == id {
			return u, true
		}
	}
	return simplecms.User{}, false
}

// userID returns the subject of the verified token on the request
func userID(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", err
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", ErrUnauthenticated
	}
	return sub, nil
}

// LoginRequest is the request body for POST /auth/login
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the bearer token for the admin API
type LoginResponse struct {
	Token string         `json:"token"`
	User  simplecms.User `json:"user"`
}

// Login exchanges credentials for a token
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeValidationError(w, r, err)
		return
	}

	user, ok := h.auth.Authenticate(req.Username, req.Password)
	if !ok {
		slog.Info("Login failed", "username", req.Username)
		writeError(w, r, http.StatusUnauthorized, "invalid username or password")
		return
	}

	token, err := h.auth.IssueToken(user)
	if err != nil {
		slog.Error("Failed to issue token", "err", err)
		writeError(w, r, http.StatusInternalServerError, "failed to issue token")
		return
	}

	slog.Info("User logged in", "user_id", user.ID)
	render.JSON(w, r, LoginResponse{Token: token, User: user})
}

// Me returns the authenticated user
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		writeError(w, r, http.StatusUnauthorized, "unauthenticated")
		return
	}
	user, ok := h.auth.userByID(id)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "unknown user")
		return
	}
	render.JSON(w, r, user)
}
