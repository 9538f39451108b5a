// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"
	"slices"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"comptable/internal/database"
	"comptable/internal/table"
	"comptable/internal/views"
)

var loginRegex = regexp.MustCompile(`^[^\s]{1,100}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("login", validateLogin)
		_ = v.RegisterValidation("sort_order", validateSortOrder)
		_ = v.RegisterValidation("account_filter", validateAccountFilter)
		_ = v.RegisterValidation("db_driver", validateDriver)
	}
}

func validateLogin(fl validator.FieldLevel) bool {
	return loginRegex.MatchString(fl.Field().String())
}

func validateSortOrder(fl validator.FieldLevel) bool {
	_, err := table.ParseSortOrder(fl.Field().String())
	return err == nil
}

func validateAccountFilter(fl validator.FieldLevel) bool {
	return slices.Contains(views.AccountFilters, fl.Field().String())
}

func validateDriver(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case database.DriverMySQL, database.DriverPostgres, database.DriverSQLite:
		return true
	}
	return false
}
