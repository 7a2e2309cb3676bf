package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/srvtrack/internal/server/services"
	"github.com/labstack/echo/v4"
)

func (s *HTTPServer) listLocations(c echo.Context) error {
	items, err := s.store.ListLocations(c.Request().Context())
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, items)
}

func (s *HTTPServer) locationSummaries(c echo.Context) error {
	items, err := s.store.ListLocationSummaries(c.Request().Context())
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, items)
}

func (s *HTTPServer) getLocation(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	loc, err := s.store.GetLocation(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, loc)
}

func (s *HTTPServer) createLocation(c echo.Context) error {
	var in services.LocationInput
	if err := bind(c, &in); err != nil {
		return err
	}
	loc, err := s.store.CreateLocation(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, loc)
}

func (s *HTTPServer) updateLocation(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var in services.LocationInput
	if err := bind(c, &in); err != nil {
		return err
	}
	loc, err := s.store.UpdateLocation(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, loc)
}

func (s *HTTPServer) deleteLocation(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ok, err := s.store.DeleteLocation(c.Request().Context(), id)
	return deleted(c, ok, err)
}

func (s *HTTPServer) listModels(c echo.Context) error {
	items, err := s.store.ListServerModels(c.Request().Context())
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, items)
}

func (s *HTTPServer) getModel(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	m, err := s.store.GetServerModel(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, m)
}

func (s *HTTPServer) createModel(c echo.Context) error {
	var in services.ServerModelInput
	if err := bind(c, &in); err != nil {
		return err
	}
	m, err := s.store.CreateServerModel(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, m)
}

func (s *HTTPServer) updateModel(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var in services.ServerModelInput
	if err := bind(c, &in); err != nil {
		return err
	}
	m, err := s.store.UpdateServerModel(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, m)
}

func (s *HTTPServer) deleteModel(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ok, err := s.store.DeleteServerModel(c.Request().Context(), id)
	return deleted(c, ok, err)
}
