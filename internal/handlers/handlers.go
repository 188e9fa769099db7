package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chrisstampar/fx-api/internal/config"
	"github.com/chrisstampar/fx-api/internal/models"
	"github.com/chrisstampar/fx-api/internal/services"
)

// Handler carries the service dependencies shared by every route
type Handler struct {
	service *services.GatewayService
	cfg     *config.Config
}

func New(service *services.GatewayService, cfg *config.Config) *Handler {
	return &Handler{service: service, cfg: cfg}
}

// bindJSON decodes a request body and writes the 422 envelope on schema
// violations
func bindJSON(c *gin.Context, out interface{}) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		models.HandleError(c, models.NewAppError(models.ErrValidation,
			"request body failed validation: "+err.Error(), err))
		return false
	}
	return true
}

// estimateFrom returns the address to estimate gas for, or empty when
// estimation was not requested
func estimateFrom(c *gin.Context) string {
	if c.Query("estimate_gas") != "true" {
		return ""
	}
	return c.Query("from_address")
}

// intQuery reads an integer query parameter with a default
func intQuery(c *gin.Context, name string, fallback int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return value, true
}
