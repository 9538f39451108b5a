package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"comptable/internal/config"
	"comptable/internal/database"
	apperrors "comptable/internal/errors"
	"comptable/internal/logger"
)

// ConfigHandler backs the connection settings screen shown when the
// database cannot be reached.
type ConfigHandler struct {
	path string
	test func(*database.Config) error
}

// NewConfigHandler creates a ConfigHandler saving accepted settings to path.
func NewConfigHandler(path string) *ConfigHandler {
	return &ConfigHandler{path: path, test: database.TestConnection}
}

// TestConnectionRequest represents the database settings to try.
type TestConnectionRequest struct {
	Driver     string `json:"driver" binding:"required,db_driver"`
	Host       string `json:"host" binding:"max=255"`
	Port       string `json:"port" binding:"omitempty,numeric,max=5"`
	User       string `json:"user" binding:"max=100"`
	Password   string `json:"password" binding:"max=255"`
	Name       string `json:"name" binding:"max=100"`
	DisableTLS bool   `json:"disable_tls"`
	Timezone   string `json:"timezone" binding:"max=64"`
	SQLitePath string `json:"sqlite_path" binding:"max=1024"`
}

// ConnectionResponse reports a successful connection test.
type ConnectionResponse struct {
	Status          string `json:"status"`
	RestartRequired bool   `json:"restart_required"`
}

// TestConnection connects with the submitted settings and, when the
// connection succeeds, saves them for the next start.
// @Summary     Test database connection
// @Description Try the submitted database settings and save them when the connection succeeds
// @Tags        config
// @Accept      json
// @Produce     json
// @Param       request body TestConnectionRequest true "Database settings"
// @Success     200 {object} ConnectionResponse "Settings saved"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     503 {object} ErrorResponse "Connection failed"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /config/test [post]
func (h *ConfigHandler) TestConnection(c *gin.Context) {
	var req TestConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	cfg := database.Config{
		Driver:     req.Driver,
		Host:       req.Host,
		Port:       req.Port,
		User:       req.User,
		Password:   req.Password,
		Name:       req.Name,
		DisableTLS: req.DisableTLS,
		Timezone:   req.Timezone,
		SQLitePath: req.SQLitePath,
	}
	if err := h.test(&cfg); err != nil {
		respondWithError(c, err)
		return
	}
	if err := config.Save(h.path, cfg); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	logger.Named("config").Infow("database settings saved", "driver", cfg.Driver, "path", h.path)
	c.JSON(http.StatusOK, ConnectionResponse{Status: "connected", RestartRequired: true})
}
