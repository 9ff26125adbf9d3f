package server

import (
	"perfume-shop-api/internal/handler"
	appmiddleware "perfume-shop-api/internal/middleware"
	"perfume-shop-api/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	echo            *echo.Echo
	checkoutHandler *handler.CheckoutHandler
	ordersHandler   *handler.OrdersHandler
	jwtSecret       string
}

func NewServer(checkoutService service.CheckoutService, orderService service.OrderQueryService, jwtSecret string) *Server {
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(appmiddleware.Prometheus())

	s := &Server{
		echo:            e,
		checkoutHandler: handler.NewCheckoutHandler(checkoutService),
		ordersHandler:   handler.NewOrdersHandler(orderService),
		jwtSecret:       jwtSecret,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	authed := api.Group("", appmiddleware.JWTAuth(s.jwtSecret))
	authed.POST("/cart/checkout", s.checkoutHandler.Checkout)
	authed.GET("/orders", s.ordersHandler.Orders)
	authed.GET("/orders/:id", s.ordersHandler.OrderDetail)
	authed.GET("/recent-orders", s.ordersHandler.RecentOrders)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
