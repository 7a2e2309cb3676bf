package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/srvtrack/internal/server/services"
	"github.com/labstack/echo/v4"
)

type activityQuery struct {
	Limit int `query:"limit" validate:"gte=0,lte=1000"`
}

func (s *HTTPServer) listNotes(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	items, err := s.store.GetServerNotes(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, items)
}

func (s *HTTPServer) getNote(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	noteID, err := pathID(c, "noteId")
	if err != nil {
		return err
	}
	note, err := s.store.GetServerNote(c.Request().Context(), id, noteID)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, note)
}

func (s *HTTPServer) addNote(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var in services.NoteInput
	if err := bind(c, &in); err != nil {
		return err
	}
	note, err := s.store.AddServerNote(c.Request().Context(), id, in, actor(c))
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, note)
}

func (s *HTTPServer) updateNote(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	noteID, err := pathID(c, "noteId")
	if err != nil {
		return err
	}
	var in services.NoteInput
	if err := bind(c, &in); err != nil {
		return err
	}
	note, err := s.store.UpdateServerNote(c.Request().Context(), id, noteID, in, actor(c))
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, note)
}

func (s *HTTPServer) deleteNote(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	noteID, err := pathID(c, "noteId")
	if err != nil {
		return err
	}
	ok, err := s.store.DeleteServerNote(c.Request().Context(), id, noteID, actor(c))
	return deleted(c, ok, err)
}

func (s *HTTPServer) listDetails(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	items, err := s.store.GetServerDetails(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, items)
}

func (s *HTTPServer) addDetail(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var in services.DetailInput
	if err := bind(c, &in); err != nil {
		return err
	}
	d, err := s.store.AddServerDetail(c.Request().Context(), id, in, actor(c))
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, d)
}

func (s *HTTPServer) updateDetail(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	detailID, err := pathID(c, "detailId")
	if err != nil {
		return err
	}
	var in services.UpdateDetailInput
	if err := bind(c, &in); err != nil {
		return err
	}
	d, err := s.store.UpdateServerDetail(c.Request().Context(), id, detailID, in, actor(c))
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, d)
}

func (s *HTTPServer) deleteDetail(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	detailID, err := pathID(c, "detailId")
	if err != nil {
		return err
	}
	ok, err := s.store.DeleteServerDetail(c.Request().Context(), id, detailID, actor(c))
	return deleted(c, ok, err)
}

func (s *HTTPServer) listServerTransfers(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	items, err := s.store.GetServerTransfers(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, items)
}

func (s *HTTPServer) listTransfers(c echo.Context) error {
	items, err := s.store.ListTransfers(c.Request().Context())
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, items)
}

func (s *HTTPServer) createTransfer(c echo.Context) error {
	var in services.TransferInput
	if err := bind(c, &in); err != nil {
		return err
	}
	t, err := s.store.CreateTransfer(c.Request().Context(), in, actor(c))
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, t)
}

func (s *HTTPServer) listServerActivities(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	items, err := s.store.GetServerActivities(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, items)
}

// listActivities serves the global feed. Without a limit the whole feed is
// returned.
func (s *HTTPServer) listActivities(c echo.Context) error {
	var q activityQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return badRequest("invalid limit")
	}
	if err := c.Validate(&q); err != nil {
		return err
	}
	items, err := s.store.GetAllActivities(c.Request().Context(), q.Limit)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, items)
}
