package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"comptable/internal/services"
	"comptable/internal/session"
)

// LabelHandler serves one name-only reference entity (establishments,
// account types or categories).
type LabelHandler[T any] struct {
	service  services.LabelServicer[T]
	sess     *session.Session
	singular string
	plural   string
}

// NewLabelHandler creates a LabelHandler whose responses use the given JSON
// keys.
func NewLabelHandler[T any](service services.LabelServicer[T], sess *session.Session, singular, plural string) *LabelHandler[T] {
	return &LabelHandler[T]{service: service, sess: sess, singular: singular, plural: plural}
}

// LabelRequest represents the create/rename form.
type LabelRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// List returns every label.
// @Summary     List labels
// @Description List establishments, account types or categories, sorted by name
// @Tags        labels
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Labels under their plural key"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /establishments [get]
// @Router      /account-types [get]
// @Router      /categories [get]
func (h *LabelHandler[T]) List(c *gin.Context) {
	items, err := h.service.List()
	if err != nil {
		respondWithError(c, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, gin.H{h.plural: items})
}

// Create adds a label.
// @Summary     Create label
// @Tags        labels
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body LabelRequest true "Label"
// @Success     201 {object} map[string]interface{} "Label under its singular key"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /establishments [post]
// @Router      /account-types [post]
// @Router      /categories [post]
func (h *LabelHandler[T]) Create(c *gin.Context) {
	var req LabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	item, err := h.service.Create(req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.sess.Touch()
	c.JSON(http.StatusCreated, gin.H{h.singular: item})
}

// Rename changes a label's name.
// @Summary     Rename label
// @Tags        labels
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int          true "Label ID"
// @Param       request body LabelRequest true "Label"
// @Success     200 {object} map[string]interface{} "Label under its singular key"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Label not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /establishments/{id} [put]
// @Router      /account-types/{id} [put]
// @Router      /categories/{id} [put]
func (h *LabelHandler[T]) Rename(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req LabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	item, err := h.service.Rename(id, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.sess.Touch()
	c.JSON(http.StatusOK, gin.H{h.singular: item})
}

// Delete removes a label that nothing references.
// @Summary     Delete label
// @Tags        labels
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Label ID"
// @Success     200 {object} MessageResponse "Deleted"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Label not found"
// @Failure     409 {object} ErrorResponse "Label still in use"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /establishments/{id} [delete]
// @Router      /account-types/{id} [delete]
// @Router      /categories/{id} [delete]
func (h *LabelHandler[T]) Delete(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.service.Delete(id); err != nil {
		respondWithError(c, err)
		return
	}

	h.sess.Touch()
	c.JSON(http.StatusOK, MessageResponse{Message: "Deleted"})
}
