package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "comptable/internal/errors"
	"comptable/internal/middleware"
	"comptable/internal/models"
	"comptable/internal/services"
	"comptable/internal/session"
)

// AuthHandler handles login and signup.
type AuthHandler struct {
	userService services.UserServicer
	sess        *session.Session
	tokens      *middleware.TokenIssuer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userService services.UserServicer, sess *session.Session, tokens *middleware.TokenIssuer) *AuthHandler {
	return &AuthHandler{userService: userService, sess: sess, tokens: tokens}
}

// LoginRequest represents the login form.
type LoginRequest struct {
	Login    string `json:"login" binding:"required,login"`
	Password string `json:"password" binding:"required,max=72"`
}

// RegisterRequest represents the signup form.
type RegisterRequest struct {
	LastName  string `json:"last_name" binding:"max=100"`
	FirstName string `json:"first_name" binding:"max=100"`
	Login     string `json:"login" binding:"required,login"`
	Password  string `json:"password" binding:"required,min=1,max=72"`
	Email     string `json:"email" binding:"omitempty,email,max=255"`
}

// AuthResponse is returned by login and signup.
type AuthResponse struct {
	Token   string        `json:"token"`
	User    *models.User  `json:"user"`
	Session session.State `json:"session"`
}

// Login authenticates a user and enters the home screen.
// @Summary     Log in
// @Description Authenticate with login and password; only allowed from the login screen
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "Credentials"
// @Success     200 {object} AuthResponse "Token, user and session"
// @Failure     401 {object} ErrorResponse "Invalid login or password"
// @Failure     409 {object} ErrorResponse "Not on the login screen"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	if err := h.requireLoginScreen(); err != nil {
		respondWithError(c, err)
		return
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.ErrInvalidCredentials)
		return
	}

	user, err := h.userService.Authenticate(req.Login, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if err := h.sess.Authenticated(user.ID); err != nil {
		respondWithError(c, err)
		return
	}

	h.respondWithToken(c, http.StatusOK, user)
}

// Register creates a user and enters the home screen.
// @Summary     Sign up
// @Description Create a user and log in; only allowed from the login screen
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body RegisterRequest true "New user"
// @Success     201 {object} AuthResponse "Token, user and session"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Login taken or not on the login screen"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	if err := h.requireLoginScreen(); err != nil {
		respondWithError(c, err)
		return
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	user, err := h.userService.CreateUser(services.NewUser{
		LastName:  req.LastName,
		FirstName: req.FirstName,
		Login:     req.Login,
		Password:  req.Password,
		Email:     req.Email,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	if err := h.sess.SignedUp(user.ID); err != nil {
		respondWithError(c, err)
		return
	}

	h.respondWithToken(c, http.StatusCreated, user)
}

func (h *AuthHandler) requireLoginScreen() error {
	if screen := h.sess.Snapshot().Screen; screen != session.ScreenLogin {
		return apperrors.WithMessage(apperrors.ErrInvalidTransition,
			"cannot log in from the "+screen.String()+" screen")
	}
	return nil
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, user *models.User) {
	token, err := h.tokens.GenerateToken(user, h.sess.ID())
	if err != nil {
		h.sess.Logout()
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(status, AuthResponse{
		Token:   token,
		User:    user,
		Session: h.sess.Snapshot(),
	})
}
