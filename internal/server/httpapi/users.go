package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/srvtrack/internal/common"
	"github.com/dmitrijs2005/srvtrack/internal/server/services"
	"github.com/labstack/echo/v4"
)

func (s *HTTPServer) listUsers(c echo.Context) error {
	items, err := s.store.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, items)
}

func (s *HTTPServer) getUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	u, err := s.store.GetUser(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, u)
}

func (s *HTTPServer) createUser(c echo.Context) error {
	var in services.CreateUserInput
	if err := bind(c, &in); err != nil {
		return err
	}
	u, err := s.store.CreateUser(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, u)
}

func (s *HTTPServer) updateUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var in services.UpdateUserInput
	if err := bind(c, &in); err != nil {
		return err
	}
	u, err := s.store.UpdateUser(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, u)
}

func (s *HTTPServer) changePassword(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var in services.ChangePasswordInput
	if err := bind(c, &in); err != nil {
		return err
	}
	if err := s.store.ChangePassword(c.Request().Context(), id, in); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// deleteUser needs an acting user so that nobody removes their own account.
func (s *HTTPServer) deleteUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	by := actor(c)
	if by == nil {
		return badRequest(common.UserIDHeaderName + " header is required")
	}
	ok, err := s.store.DeleteUser(c.Request().Context(), *by, id)
	return deleted(c, ok, err)
}
