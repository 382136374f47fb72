package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/garasiku/garasiku-server/internal/files"
	"github.com/garasiku/garasiku-server/internal/services"
	srvErrors "github.com/garasiku/garasiku-server/pkg/errors"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100

	// AuthCookieName carries a copy of the session token for browser
	// clients; the session set in AuthService stays the authority.
	AuthCookieName = "gk_auth"
)

type Handler struct {
	carSrv  *services.CarService
	saleSrv *services.SaleService
	authSrv *services.AuthService
	hub     *services.Hub
	images  *files.Store
}

func New(carSrv *services.CarService, saleSrv *services.SaleService, authSrv *services.AuthService, hub *services.Hub, images *files.Store) *Handler {
	return &Handler{
		carSrv:  carSrv,
		saleSrv: saleSrv,
		authSrv: authSrv,
		hub:     hub,
		images:  images,
	}
}

// respondError maps service errors onto HTTP statuses. Store errors keep
// their original message appended to a generic operation failure.
func respondError(c *gin.Context, log *zap.SugaredLogger, op string, err error) {
	switch {
	case srvErrors.IsValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case srvErrors.IsResourceNotFoundError(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case srvErrors.IsUserNotRegisteredError(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case srvErrors.IsUnauthorizedError(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		log.Errorw("operation failed", "op", op, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": op + " failed: " + err.Error()})
	}
}
