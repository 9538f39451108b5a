package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"comptable/internal/format"
	"comptable/internal/ledger"
	"comptable/internal/models"
	"comptable/internal/services"
	"comptable/internal/session"
	"comptable/internal/views"
)

// OperationHandler handles operation-related requests.
type OperationHandler struct {
	operationService services.OperationServicer
	categoryService  services.LabelServicer[models.Category]
	sess             *session.Session
	formatter        *format.Formatter
}

// NewOperationHandler creates a new OperationHandler.
func NewOperationHandler(operationService services.OperationServicer, categoryService services.LabelServicer[models.Category], sess *session.Session, formatter *format.Formatter) *OperationHandler {
	return &OperationHandler{
		operationService: operationService,
		categoryService:  categoryService,
		sess:             sess,
		formatter:        formatter,
	}
}

// OperationRequest represents the operation form. Amount is an unsigned
// magnitude; IsCredit carries the direction.
type OperationRequest struct {
	AccountID  uint            `json:"account_id" binding:"required"`
	CategoryID uint            `json:"category_id" binding:"required"`
	Amount     decimal.Decimal `json:"amount"`
	IsCredit   bool            `json:"is_credit"`
	Date       time.Time       `json:"date" binding:"required"`
	Comment    string          `json:"comment" binding:"max=255"`
}

func (r OperationRequest) input() services.OperationInput {
	return services.OperationInput{
		AccountID:  r.AccountID,
		CategoryID: r.CategoryID,
		Amount:     r.Amount,
		IsCredit:   r.IsCredit,
		Date:       r.Date,
		Comment:    r.Comment,
	}
}

// OperationsResponse is a page of the account detail table with the
// totals of the selected period.
type OperationsResponse struct {
	Table            TableResponse   `json:"table"`
	Credits          decimal.Decimal `json:"credits"`
	Debits           decimal.Decimal `json:"debits"`
	Balance          decimal.Decimal `json:"balance"`
	BalanceFormatted string          `json:"balance_formatted"`
	Period           string          `json:"period"`
}

// OperationResponse wraps one operation.
type OperationResponse struct {
	Operation *models.Operation `json:"operation"`
}

// OperationsQuery holds the account detail table parameters.
type OperationsQuery struct {
	TableQuery
	PeriodQuery
	Column     string `form:"column" binding:"max=100"`
	CategoryID *uint  `form:"category_id"`
}

// ListOperations returns a page of one account's operations table together
// with the balance of the selected period.
// @Summary     List operations
// @Description Get the filtered, sorted and paginated operations table of an account
// @Tags        operations
// @Produce     json
// @Security    BearerAuth
// @Param       id          path  int    true  "Account ID"
// @Param       q           query string false "Search text"
// @Param       column      query string false "Column label to search in"
// @Param       category_id query int    false "Category ID"
// @Param       sort        query string false "Column label to sort by"
// @Param       order       query string false "Sort order (asc, desc, none)"
// @Param       month       query int    false "Month (1-12), with year"
// @Param       year        query int    false "Year, with month"
// @Param       page        query int    false "Page number"
// @Param       page_size   query int    false "Items per page"
// @Success     200 {object} OperationsResponse "Operations table"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /accounts/{id}/operations [get]
func (h *OperationHandler) ListOperations(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	accountID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	var q OperationsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	period, err := q.Period()
	if err != nil {
		respondWithError(c, err)
		return
	}

	ops, err := h.operationService.ListOperations(userID, accountID, services.OperationFilter{
		Period:     period,
		CategoryID: q.CategoryID,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	categories, err := h.categoryService.List()
	if err != nil {
		respondWithError(c, err)
		return
	}
	names := make(map[uint]string, len(categories))
	for _, cat := range categories {
		names[cat.ID] = cat.Name
	}

	t := views.OperationsTable(ops, names, h.formatter).Filter(q.Query, q.Column)
	t, err = sortTable(t, q.TableQuery)
	if err != nil {
		respondWithError(c, err)
		return
	}

	credits, debits := ledger.Totals(ops)
	balance := ledger.Balance(ops)
	c.JSON(http.StatusOK, OperationsResponse{
		Table:            newTableResponse(t, q.PageRequest),
		Credits:          credits,
		Debits:           debits,
		Balance:          balance,
		BalanceFormatted: h.formatter.Money(balance),
		Period:           periodString(period),
	})
}

// CreateOperation records an operation.
// @Summary     Create operation
// @Tags        operations
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body OperationRequest true "Operation"
// @Success     201 {object} OperationResponse "Created operation"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account or category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /operations [post]
func (h *OperationHandler) CreateOperation(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req OperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	op, err := h.operationService.CreateOperation(userID, req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.sess.Touch()
	c.JSON(http.StatusCreated, OperationResponse{Operation: op})
}

// UpdateOperation edits an operation.
// @Summary     Update operation
// @Tags        operations
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int              true "Operation ID"
// @Param       request body OperationRequest true "Operation"
// @Success     200 {object} OperationResponse "Updated operation"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Operation not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /operations/{id} [put]
func (h *OperationHandler) UpdateOperation(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	operationID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req OperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	op, err := h.operationService.UpdateOperation(userID, operationID, req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.sess.Touch()
	c.JSON(http.StatusOK, OperationResponse{Operation: op})
}

// DeleteOperation removes an operation.
// @Summary     Delete operation
// @Tags        operations
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Operation ID"
// @Success     200 {object} MessageResponse "Operation deleted"
// @Failure     400 {object} ErrorResponse "Invalid operation ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Operation not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /operations/{id} [delete]
func (h *OperationHandler) DeleteOperation(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	operationID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.operationService.DeleteOperation(userID, operationID); err != nil {
		respondWithError(c, err)
		return
	}

	h.sess.Touch()
	c.JSON(http.StatusOK, MessageResponse{Message: "Operation deleted"})
}
