package membership

import (
	ms "librental/service/membership"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc ms.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /activate_plan/:planDuration
func (h *Controller) ActivatePlan(c echo.Context) error {
	plan := c.Param("planDuration")

	var req PaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	uid, _ := c.Get("user_id").(int64)
	out, err := h.Svc.ActivatePlan(c.Request().Context(), uid, plan, details(req))
	if err != nil {
		if ms.Code(err) == ms.ErrValidation {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		}
		h.Log.Error("activate plan", "err", err, "plan", plan)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "error saving payment"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":    "payment successful",
		"activation": out,
	})
}

// POST /payment — same flow with the plan in the body
func (h *Controller) Pay(c echo.Context) error {
	var req PayReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid plan selected"})
	}

	uid, _ := c.Get("user_id").(int64)
	out, err := h.Svc.ActivatePlan(c.Request().Context(), uid, req.Plan, details(req.PaymentReq))
	if err != nil {
		if ms.Code(err) == ms.ErrValidation {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		}
		h.Log.Error("payment", "err", err, "plan", req.Plan)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "error saving payment"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":    "payment successful, plan activated",
		"activation": out,
	})
}

// GET /users?status=all|subscribed|unsubscribed  (admin)
func (h *Controller) Users(c echo.Context) error {
	status := c.QueryParam("status")
	rows, err := h.Svc.Profiles(c.Request().Context(), status)
	if err != nil {
		if ms.Code(err) == ms.ErrValidation {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		}
		h.Log.Error("user list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"users": rows, "status": status})
}

func details(req PaymentReq) ms.PaymentDetails {
	return ms.PaymentDetails{
		Method:        req.PaymentMethod,
		UPIID:         req.UPIID,
		CardNumber:    req.CardNumber,
		ExpiryDate:    req.ExpiryDate,
		CVC:           req.CVC,
		AccountNumber: req.AccountNumber,
		IFSCCode:      req.IFSCCode,
	}
}
