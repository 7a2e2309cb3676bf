// Package httpapi exposes the inventory engine over HTTP/JSON with echo.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/srvtrack/internal/logging"
	"github.com/dmitrijs2005/srvtrack/internal/server/services"
	"github.com/dmitrijs2005/srvtrack/internal/validation"
	"github.com/labstack/echo/v4"
)

type HTTPServer struct {
	address         string
	store           services.Storage
	logger          logging.Logger
	shutdownTimeout time.Duration
	e               *echo.Echo
}

func NewHTTPServer(address string, l logging.Logger, store services.Storage, v *validation.Validator, shutdownTimeout time.Duration) *HTTPServer {
	s := &HTTPServer{
		address:         address,
		store:           store,
		logger:          l.With("module", "http_server"),
		shutdownTimeout: shutdownTimeout,
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = v
	e.HTTPErrorHandler = s.errorHandler
	s.useMiddleware(e)
	s.registerRoutes(e)
	s.e = e

	return s
}

// Handler returns the router, mainly for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.e
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		if err := s.e.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func (s *HTTPServer) registerRoutes(e *echo.Echo) {
	e.GET("/healthz", s.health)

	api := e.Group("/api")

	api.GET("/servers", s.listServers)
	api.POST("/servers", s.createServer)
	api.POST("/servers/batch", s.createBatch)
	api.GET("/servers/stats", s.serverStats)
	api.GET("/servers/next-id", s.nextServerID)
	api.GET("/servers/by-serial/:serial", s.getServerBySerial)
	api.GET("/servers/:id", s.getServer)
	api.PUT("/servers/:id", s.updateServer)
	api.DELETE("/servers/:id", s.deleteServer)

	api.GET("/servers/:id/notes", s.listNotes)
	api.POST("/servers/:id/notes", s.addNote)
	api.GET("/servers/:id/notes/:noteId", s.getNote)
	api.PUT("/servers/:id/notes/:noteId", s.updateNote)
	api.DELETE("/servers/:id/notes/:noteId", s.deleteNote)

	api.GET("/servers/:id/details", s.listDetails)
	api.POST("/servers/:id/details", s.addDetail)
	api.PUT("/servers/:id/details/:detailId", s.updateDetail)
	api.DELETE("/servers/:id/details/:detailId", s.deleteDetail)

	api.GET("/servers/:id/transfers", s.listServerTransfers)
	api.GET("/servers/:id/activities", s.listServerActivities)

	api.GET("/transfers", s.listTransfers)
	api.POST("/transfers", s.createTransfer)
	api.GET("/activities", s.listActivities)

	api.GET("/locations", s.listLocations)
	api.GET("/locations/summary", s.locationSummaries)
	api.POST("/locations", s.createLocation)
	api.GET("/locations/:id", s.getLocation)
	api.PUT("/locations/:id", s.updateLocation)
	api.DELETE("/locations/:id", s.deleteLocation)
	api.GET("/locations/:id/servers", s.serversByLocation)

	api.GET("/models", s.listModels)
	api.POST("/models", s.createModel)
	api.GET("/models/:id", s.getModel)
	api.PUT("/models/:id", s.updateModel)
	api.DELETE("/models/:id", s.deleteModel)

	api.GET("/users", s.listUsers)
	api.POST("/users", s.createUser)
	api.GET("/users/:id", s.getUser)
	api.PUT("/users/:id", s.updateUser)
	api.PUT("/users/:id/password", s.changePassword)
	api.DELETE("/users/:id", s.deleteUser)
}
