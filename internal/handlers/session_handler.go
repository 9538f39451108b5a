package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"comptable/internal/session"
)

// SessionHandler exposes the navigation state machine.
type SessionHandler struct {
	sess *session.Session
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sess *session.Session) *SessionHandler {
	return &SessionHandler{sess: sess}
}

// SessionResponse wraps the navigation state.
type SessionResponse struct {
	Session session.State `json:"session"`
}

func (h *SessionHandler) respond(c *gin.Context) {
	c.JSON(http.StatusOK, SessionResponse{Session: h.sess.Snapshot()})
}

// GetSession returns the current screen, user, account and last error.
// @Summary     Get session
// @Description Get the current screen, user, selected account and last error
// @Tags        session
// @Produce     json
// @Success     200 {object} SessionResponse "Session state"
// @Router      /session [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	h.respond(c)
}

// Logout returns to the login screen and revokes every issued token.
// @Summary     Log out
// @Description Return to the login screen; tokens issued before are rejected afterwards
// @Tags        session
// @Produce     json
// @Success     200 {object} SessionResponse "Session state"
// @Router      /session/logout [post]
func (h *SessionHandler) Logout(c *gin.Context) {
	h.sess.Logout()
	h.respond(c)
}

// Back leaves the account detail screen for the home screen.
// @Summary     Go back
// @Description Leave the account detail screen for the home screen
// @Tags        session
// @Produce     json
// @Success     200 {object} SessionResponse "Session state"
// @Failure     409 {object} ErrorResponse "Not on the account detail screen"
// @Router      /session/back [post]
func (h *SessionHandler) Back(c *gin.Context) {
	if err := h.sess.Back(); err != nil {
		respondWithError(c, err)
		return
	}
	h.respond(c)
}

// DismissError clears the error shown by the client.
// @Summary     Dismiss error
// @Tags        session
// @Produce     json
// @Success     200 {object} SessionResponse "Session state"
// @Router      /session/error [delete]
func (h *SessionHandler) DismissError(c *gin.Context) {
	h.sess.DismissError()
	h.respond(c)
}
