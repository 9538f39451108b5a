package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "comptable/internal/errors"
	"comptable/internal/format"
	"comptable/internal/ledger"
	"comptable/internal/models"
	"comptable/internal/services"
	"comptable/internal/session"
	"comptable/internal/table"
	"comptable/internal/views"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AccountHandler handles account-related requests.
type AccountHandler struct {
	accountService services.AccountServicer
	reportService  services.ReportServicer
	sess           *session.Session
	formatter      *format.Formatter
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService services.AccountServicer, reportService services.ReportServicer, sess *session.Session, formatter *format.Formatter) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		reportService:  reportService,
		sess:           sess,
		formatter:      formatter,
	}
}

// AccountRequest represents the account form.
type AccountRequest struct {
	Number          string `json:"number" binding:"required,max=100"`
	EstablishmentID uint   `json:"establishment_id" binding:"required"`
	AccountTypeID   uint   `json:"account_type_id" binding:"required"`
}

// AccountsQuery holds the home screen table parameters.
type AccountsQuery struct {
	TableQuery
	PeriodQuery
	Filter string `form:"filter" binding:"omitempty,account_filter"`
}

// AccountsResponse is a page of the home screen table.
type AccountsResponse struct {
	Table   TableResponse `json:"table"`
	Filters []string      `json:"filters"`
}

// AccountResponse wraps one account.
type AccountResponse struct {
	Account *models.Account `json:"account"`
}

// AccountDetailResponse is the account detail screen header.
type AccountDetailResponse struct {
	Account          *models.Account `json:"account"`
	Balance          decimal.Decimal `json:"balance"`
	BalanceFormatted string          `json:"balance_formatted"`
	Sign             string          `json:"sign"`
	Session          session.State   `json:"session"`
}

// accountsTable builds the filtered and sorted accounts table.
func (h *AccountHandler) accountsTable(c *gin.Context) (table.Table[uint], AccountsQuery, error) {
	var q AccountsQuery
	userID, err := getUserID(c)
	if err != nil {
		return table.Table[uint]{}, q, err
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		return table.Table[uint]{}, q, bindError(err)
	}
	period, err := q.Period()
	if err != nil {
		return table.Table[uint]{}, q, err
	}

	summaries, err := h.reportService.AccountSummaries(userID, period)
	if err != nil {
		return table.Table[uint]{}, q, err
	}

	t := views.AccountsTable(summaries, h.formatter)
	t, err = views.FilterAccounts(t, views.Balances(summaries), q.Query, q.Filter)
	if err != nil {
		return table.Table[uint]{}, q, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	t, err = sortTable(t, q.TableQuery)
	return t, q, err
}

// ListAccounts returns a page of the accounts table.
// @Summary     List accounts
// @Description Get the filtered, sorted and paginated accounts table of the authenticated user
// @Tags        accounts
// @Produce     json
// @Security    BearerAuth
// @Param       q         query string false "Search text"
// @Param       filter    query string false "Filter (number, establishment, type, positive, negative)"
// @Param       sort      query string false "Column label to sort by"
// @Param       order     query string false "Sort order (asc, desc, none)"
// @Param       month     query int    false "Month (1-12), with year"
// @Param       year      query int    false "Year, with month"
// @Param       page      query int    false "Page number"
// @Param       page_size query int    false "Items per page"
// @Success     200 {object} AccountsResponse "Accounts table"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /accounts [get]
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	t, q, err := h.accountsTable(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, AccountsResponse{
		Table:   newTableResponse(t, q.PageRequest),
		Filters: views.AccountFilters,
	})
}

// ExportAccounts returns the filtered and sorted accounts table as XLSX.
// @Summary     Export accounts
// @Description Download the filtered and sorted accounts table as a spreadsheet
// @Tags        accounts
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security    BearerAuth
// @Param       q      query string false "Search text"
// @Param       filter query string false "Filter"
// @Param       sort   query string false "Column label to sort by"
// @Param       order  query string false "Sort order"
// @Success     200 {file} file "Workbook"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /accounts/export [get]
func (h *AccountHandler) ExportAccounts(c *gin.Context) {
	t, _, err := h.accountsTable(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := table.WriteXLSX(&buf, "Accounts", t); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="accounts.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// GetAccount returns one account and selects it in the session.
// @Summary     Get account by ID
// @Description Get an account with its balance and open its detail screen
// @Tags        accounts
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Account ID"
// @Success     200 {object} AccountDetailResponse "Account details"
// @Failure     400 {object} ErrorResponse "Invalid account ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     409 {object} ErrorResponse "Navigation not allowed"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /accounts/{id} [get]
func (h *AccountHandler) GetAccount(c *gin.Context) {
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

	account, err := h.accountService.GetAccount(userID, accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	balance, err := h.reportService.AccountBalance(userID, accountID, nil)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if err := h.selectAccount(accountID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, AccountDetailResponse{
		Account:          account,
		Balance:          balance,
		BalanceFormatted: h.formatter.Money(balance),
		Sign:             ledger.SignOf(balance).String(),
		Session:          h.sess.Snapshot(),
	})
}

// selectAccount moves the session to the detail screen of accountID,
// leaving another account's detail screen first.
func (h *AccountHandler) selectAccount(accountID uint) error {
	st := h.sess.Snapshot()
	if st.Screen == session.ScreenAccountDetail {
		if st.AccountID != nil && *st.AccountID == accountID {
			return nil
		}
		if err := h.sess.Back(); err != nil {
			return err
		}
	}
	return h.sess.SelectAccount(accountID)
}

// CreateAccount opens a new account.
// @Summary     Create account
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body AccountRequest true "Account"
// @Success     201 {object} AccountResponse "Created account"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Establishment or account type not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /accounts [post]
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	account, err := h.accountService.CreateAccount(userID, req.Number, req.EstablishmentID, req.AccountTypeID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.sess.Touch()
	c.JSON(http.StatusCreated, AccountResponse{Account: account})
}

// UpdateAccount edits an account.
// @Summary     Update account
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int            true "Account ID"
// @Param       request body AccountRequest true "Account"
// @Success     200 {object} AccountResponse "Updated account"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /accounts/{id} [put]
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
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

	var req AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	account, err := h.accountService.UpdateAccount(userID, accountID, req.Number, req.EstablishmentID, req.AccountTypeID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.sess.Touch()
	c.JSON(http.StatusOK, AccountResponse{Account: account})
}

// DeleteAccount removes an account and its operations. A session showing
// that account returns to the home screen.
// @Summary     Delete account
// @Description Delete an account together with its operations
// @Tags        accounts
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Account ID"
// @Success     200 {object} MessageResponse "Account deleted"
// @Failure     400 {object} ErrorResponse "Invalid account ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     500 {object} ErrorResponse "Transaction failed"
// @Router      /accounts/{id} [delete]
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
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

	if err := h.accountService.DeleteAccount(userID, accountID); err != nil {
		respondWithError(c, err)
		return
	}

	if st := h.sess.Snapshot(); st.AccountID != nil && *st.AccountID == accountID {
		_ = h.sess.Back()
	}
	h.sess.Touch()
	c.JSON(http.StatusOK, MessageResponse{Message: "Account deleted"})
}
