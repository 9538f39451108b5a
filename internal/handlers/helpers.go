package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "comptable/internal/errors"
	"comptable/internal/ledger"
	"comptable/internal/pagination"
	"comptable/internal/table"
)

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (uint, error) {
	userID, exists := c.Get("userID")
	if !exists {
		return 0, apperrors.ErrUnauthorized
	}
	return userID.(uint), nil
}

// parsePathID parses a uint path parameter.
// Returns ErrInvalidInput if the parameter is not a valid positive integer.
func parsePathID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return uint(id), nil
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// MessageResponse represents a simple message response
type MessageResponse struct {
	Message string `json:"message"`
}

// respondWithError hands err to the error middleware, which renders it and
// stops the chain.
func respondWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// bindError wraps a binding failure as ErrInvalidInput.
func bindError(err error) error {
	return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
}

// PeriodQuery selects a calendar month. Both fields are optional, but one
// without the other is rejected.
type PeriodQuery struct {
	Month int `form:"month" binding:"omitempty,min=1,max=12"`
	Year  int `form:"year" binding:"omitempty,min=1"`
}

// Period returns the selected period, or nil when none was given.
func (q PeriodQuery) Period() (*ledger.Period, error) {
	if q.Month == 0 && q.Year == 0 {
		return nil, nil
	}
	if q.Month == 0 || q.Year == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month and year must be given together")
	}
	p, err := ledger.NewPeriod(q.Year, time.Month(q.Month))
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	return &p, nil
}

// TableQuery holds the sort parameters shared by table endpoints.
type TableQuery struct {
	Query string `form:"q" binding:"max=255"`
	Sort  string `form:"sort" binding:"max=100"`
	Order string `form:"order" binding:"sort_order"`
	pagination.PageRequest
}

// RowResponse is one table row with the primary key of its entity.
type RowResponse struct {
	ID    uint      `json:"id"`
	Cells []*string `json:"cells"`
}

// TableResponse is a page of a rendered table.
type TableResponse struct {
	Columns []string                             `json:"columns"`
	Page    pagination.PageResponse[RowResponse] `json:"page"`
}

// sortTable applies the requested sort to t.
func sortTable(t table.Table[uint], q TableQuery) (table.Table[uint], error) {
	order, err := table.ParseSortOrder(q.Order)
	if err != nil {
		return t, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	return t.Sort(q.Sort, order), nil
}

func newTableResponse(t table.Table[uint], page pagination.PageRequest) TableResponse {
	rows := make([]RowResponse, len(t.Rows))
	for i, r := range t.Rows {
		cells := make([]*string, len(r.Cells))
		for j, cell := range r.Cells {
			if cell.Valid {
				v := cell.Value
				cells[j] = &v
			}
		}
		rows[i] = RowResponse{ID: r.Key, Cells: cells}
	}
	return TableResponse{Columns: t.Columns, Page: pagination.Apply(rows, page)}
}
