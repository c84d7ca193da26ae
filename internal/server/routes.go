package server

import (
	"app/internal/handler"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(
	e *echo.Echo,
	menuH *handler.MenuHandler,
	cartH *handler.CartHandler,
	orderH *handler.OrderHandler,
) {
	menuH.RegisterRoutes(e)
	cartH.RegisterRoutes(e)
	orderH.RegisterRoutes(e)
}
