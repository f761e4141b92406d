package book

import (
	booksvc "librental/service/book"
	"librental/util/media"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc   booksvc.Service
	Media *media.Store
	V     *validator.Validate
	Log   *slog.Logger
}

// GET /genre/:genre
func (h *Controller) ByGenre(c echo.Context) error {
	genre := c.Param("genre")
	rows, err := h.Svc.ByGenre(c.Request().Context(), genre)
	if err != nil {
		switch booksvc.Code(err) {
		case booksvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "no books found"})
		case booksvc.ErrValidation:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		}
		h.Log.Error("genre listing error", "genre", genre, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"genre": genre, "books": rows})
}

// GET /book/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	row, err := h.Svc.Detail(c.Request().Context(), id)
	if err != nil {
		if booksvc.Code(err) == booksvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		}
		h.Log.Error("book detail error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, row)
}

// GET /search-authors?query=
// Returns a bare JSON array of {name} to keep the original contract.
func (h *Controller) SearchAuthors(c echo.Context) error {
	query := c.QueryParam("query")
	authors, err := h.Svc.SearchAuthors(c.Request().Context(), query)
	if err != nil {
		h.Log.Error("author search error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	results := make([]echo.Map, 0, len(authors))
	for _, a := range authors {
		results = append(results, echo.Map{"name": a.Name})
	}
	return c.JSON(http.StatusOK, results)
}

// GET /books-catalog  (admin)
func (h *Controller) Catalog(c echo.Context) error {
	rows, err := h.Svc.Catalog(c.Request().Context())
	if err != nil {
		h.Log.Error("catalog error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// POST /add-to-collections  (admin, multipart)
func (h *Controller) Add(c echo.Context) error {
	var req AddBookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid form"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	create := booksvc.CreateBook{
		BookCode:   req.BookCode,
		Name:       req.Name,
		AuthorID:   req.AuthorID,
		Genre:      req.Genre,
		RentPrice:  req.RentPrice,
		Copies:     req.Copies,
		RentalDays: req.RentalDays,
	}

	// Cover and PDF are optional uploads.
	if fh, err := c.FormFile("cover_image"); err == nil {
		path, err := h.Media.SaveCover(fh)
		if err != nil {
			h.Log.Error("cover save error", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not store cover image"})
		}
		create.CoverPath = &path
	}
	if fh, err := c.FormFile("pdf"); err == nil {
		path, err := h.Media.SavePDF(fh)
		if err != nil {
			h.Log.Error("pdf save error", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not store pdf"})
		}
		create.PDFPath = &path
	}

	id, err := h.Svc.Create(c.Request().Context(), create)
	if err != nil {
		if booksvc.Code(err) == booksvc.ErrValidation {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		}
		h.Log.Error("book create error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id, "message": "book added"})
}

// POST /edit/:id  (admin)
func (h *Controller) Edit(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req EditBookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "field and value are required"})
	}

	if err := h.Svc.Update(c.Request().Context(), id, req.Field, req.Value); err != nil {
		switch booksvc.Code(err) {
		case booksvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		case booksvc.ErrValidation:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		}
		h.Log.Error("book edit error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": req.Field + " updated"})
}

// POST /delete/:id  (admin)
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		if booksvc.Code(err) == booksvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		}
		h.Log.Error("book delete error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "book deleted"})
}

// GET /authors  (admin)
func (h *Controller) Authors(c echo.Context) error {
	rows, err := h.Svc.Authors(c.Request().Context())
	if err != nil {
		h.Log.Error("author list error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// POST /authors  (admin)
func (h *Controller) AddAuthor(c echo.Context) error {
	var req AddAuthorReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "name is required"})
	}
	id, err := h.Svc.AddAuthor(c.Request().Context(), req.Name)
	if err != nil {
		h.Log.Error("author create error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}
