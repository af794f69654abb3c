package http

import (
	"net/http"

	"fulfillment/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RegisterHandlers adds the order API routes to the router.
func RegisterHandlers(router *echo.Echo, s *Server) {
	api := router.Group("/api/order")
	api.GET("/list", s.ListOrders)
	api.GET("/detail/:id", s.GetOrderDetail)
	api.GET("/count", s.CountOrders)
	api.POST("/create", s.CreateOrder)
	api.PUT("/pay/:id", s.PayOrder)
	api.PUT("/deliver/:id", s.DispatchOrder)
	api.PUT("/to-receive/:id", s.MarkForReceipt)
	api.PUT("/receive/:id", s.ConfirmReceipt)
	api.PUT("/cancel/:id", s.CancelOrder)
}

// NewRouter builds the echo instance serving the API, the notification
// stream, metrics and the health check.
func NewRouter(s *Server, m *metrics.Metrics, notifications http.Handler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(observe(m))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(m.Handler()))
	e.GET("/ws/notifications", echo.WrapHandler(notifications))

	RegisterHandlers(e, s)
	return e
}

// observe counts every request by method, route template and envelope code.
// Responses written outside the envelope are counted by HTTP status.
func observe(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			code, isEnvelope := c.Get(envelopeCodeKey).(int)
			if !isEnvelope {
				code = c.Response().Status
			}
			m.ObserveRequest(c.Request().Method, route, code)
			return nil
		}
	}
}
