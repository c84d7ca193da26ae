package handler

import (
	"net/http"
	"strconv"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type PlaceOrderRequest struct {
	TableID     int64  `json:"table_id"`
	PaymentMode string `json:"payment_mode"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/order/place", h.place)
	e.GET("/api/orders/:table_id", h.list)
}

func (h *OrderHandler) place(c echo.Context) error {
	var req PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.PlaceOrder(c.Request().Context(), usecase.PlaceOrderInput{
		TableID:     req.TableID,
		PaymentMode: req.PaymentMode,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) list(c echo.Context) error {
	tableID, err := strconv.ParseInt(c.Param("table_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid table_id"})
	}

	out, err := h.uc.ListOrders(c.Request().Context(), tableID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
