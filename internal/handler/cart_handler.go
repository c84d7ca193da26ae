package handler

import (
	"net/http"
	"strconv"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/cart のHTTP
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type AddCartRequest struct {
	TableID  int64 `json:"table_id"`
	MenuID   int64 `json:"menu_id"`
	Quantity int64 `json:"quantity"`
}

type UpdateCartRequest struct {
	TableID  int64 `json:"table_id"`
	MenuID   int64 `json:"menu_id"`
	Quantity int64 `json:"quantity"`
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/cart/add", h.addLine)
	e.GET("/api/cart/:table_id", h.getCart)
	e.PUT("/api/cart/update", h.updateQuantity)
	e.DELETE("/api/cart/remove/:table_id/:menu_id", h.removeLine)
}

func (h *CartHandler) addLine(c echo.Context) error {
	var req AddCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.AddLine(c.Request().Context(), usecase.AddCartInput{
		TableID:  req.TableID,
		MenuID:   req.MenuID,
		Quantity: req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) getCart(c echo.Context) error {
	tableID, err := strconv.ParseInt(c.Param("table_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid table_id"})
	}

	out, err := h.uc.GetCart(c.Request().Context(), tableID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) updateQuantity(c echo.Context) error {
	var req UpdateCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdateQuantity(c.Request().Context(), usecase.UpdateCartInput{
		TableID:  req.TableID,
		MenuID:   req.MenuID,
		Quantity: req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) removeLine(c echo.Context) error {
	tableID, err := strconv.ParseInt(c.Param("table_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid table_id"})
	}

	menuID, err := strconv.ParseInt(c.Param("menu_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid menu_id"})
	}

	out, err := h.uc.RemoveLine(c.Request().Context(), tableID, menuID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
