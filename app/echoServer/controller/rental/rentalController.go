package rental

import (
	rs "librental/service/rental"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc rs.Service
	Log *slog.Logger
}

// GET /rent — rentable books, gated on active membership
func (h *Controller) Rentable(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	rows, err := h.Svc.RentableBooks(c.Request().Context(), uid)
	if err != nil {
		if rs.Code(err) == rs.ErrMembershipRequired {
			return c.JSON(http.StatusForbidden, echo.Map{
				"message": "you must have an active membership to rent a book",
			})
		}
		h.Log.Error("rentable list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"books": rows})
}

// POST /rent/:bookId
func (h *Controller) Rent(c echo.Context) error {
	bookID, err := strconv.ParseInt(c.Param("bookId"), 10, 64)
	if err != nil || bookID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid book id"})
	}
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.Rent(c.Request().Context(), uid, bookID)
	if err != nil {
		switch rs.Code(err) {
		case rs.ErrMembershipRequired:
			return c.JSON(http.StatusForbidden, echo.Map{
				"message": "you must have an active membership to rent a book",
			})
		case rs.ErrBookUnavailable:
			return c.JSON(http.StatusConflict, echo.Map{"message": "no copies available"})
		case rs.ErrBookNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		case rs.ErrUserNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
		default:
			h.Log.Error("rent", "err", err, "book_id", bookID)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}

	return c.JSON(http.StatusCreated, out)
}

// GET /overdue-books  (admin)
func (h *Controller) Overdue(c echo.Context) error {
	rows, err := h.Svc.OverdueBooks(c.Request().Context())
	if err != nil {
		h.Log.Error("overdue list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"overdue_books": rows})
}

// GET /borrowed_books  (admin)
func (h *Controller) Borrowed(c echo.Context) error {
	rows, err := h.Svc.Borrowed(c.Request().Context())
	if err != nil {
		h.Log.Error("borrowed list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"borrowed_books": rows})
}
