package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/srvtrack/internal/server/services"
	"github.com/labstack/echo/v4"
)

func (s *HTTPServer) health(c echo.Context) error {
	if err := s.store.Ping(c.Request().Context()); err != nil {
		return err
	}
	return success(c, http.StatusOK, map[string]string{"storage": "ok"})
}

func (s *HTTPServer) listServers(c echo.Context) error {
	items, err := s.store.ListServers(c.Request().Context())
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, items)
}

func (s *HTTPServer) getServer(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	srv, err := s.store.GetServer(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, srv)
}

func (s *HTTPServer) getServerBySerial(c echo.Context) error {
	srv, err := s.store.GetServerBySerial(c.Request().Context(), c.Param("serial"))
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, srv)
}

func (s *HTTPServer) serversByLocation(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	items, err := s.store.GetServersByLocation(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, items)
}

func (s *HTTPServer) createServer(c echo.Context) error {
	var in services.CreateServerInput
	if err := bind(c, &in); err != nil {
		return err
	}
	srv, err := s.store.CreateServer(c.Request().Context(), in, actor(c))
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, srv)
}

func (s *HTTPServer) updateServer(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var in services.UpdateServerInput
	if err := bind(c, &in); err != nil {
		return err
	}
	srv, err := s.store.UpdateServer(c.Request().Context(), id, in, actor(c))
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, srv)
}

func (s *HTTPServer) deleteServer(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ok, err := s.store.DeleteServer(c.Request().Context(), id, actor(c))
	return deleted(c, ok, err)
}

func (s *HTTPServer) createBatch(c echo.Context) error {
	var in services.BatchInput
	if err := bind(c, &in); err != nil {
		return err
	}
	items, err := s.store.CreateBatchServers(c.Request().Context(), in, actor(c))
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, items)
}

func (s *HTTPServer) serverStats(c echo.Context) error {
	stats, err := s.store.GetServerStats(c.Request().Context())
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, stats)
}

func (s *HTTPServer) nextServerID(c echo.Context) error {
	id, err := s.store.GenerateServerID(c.Request().Context())
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, map[string]string{"serverId": id})
}

// deleted renders the boolean outcome of a delete. A missing entity is a 404
// so clients can tell it apart from a successful removal.
func deleted(c echo.Context, ok bool, err error) error {
	if err != nil {
		return err
	}
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	}
	return c.NoContent(http.StatusNoContent)
}
