// Package http exposes the order lifecycle over a REST API.
package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"clinicalorders/internal/core/application/usecases/commands"
	"clinicalorders/internal/core/application/usecases/queries"
	"clinicalorders/internal/core/ports"
	"clinicalorders/internal/observability/metrics"
	"clinicalorders/internal/pkg/errs"
)

// Server implements the HTTP endpoints over the command and query handlers.
type Server struct {
	// Command handlers
	placeOrderHandler       commands.PlaceOrderCommandHandler
	discontinueOrderHandler commands.DiscontinueOrderCommandHandler
	voidOrderHandler        commands.VoidOrderCommandHandler
	unvoidOrderHandler      commands.UnvoidOrderCommandHandler
	purgeOrderHandler       commands.PurgeOrderCommandHandler

	// Query handlers
	getOrderHandler        queries.GetOrderQueryHandler
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler
	getOrdersHandler       queries.GetOrdersQueryHandler
	getAllOrdersHandler    queries.GetAllOrdersByPatientQueryHandler
	getHistoryHandler      queries.GetOrderHistoryQueryHandler
	getConceptHistory      queries.GetOrderHistoryByConceptQueryHandler

	// Reference reads bypass the command side entirely
	referenceRepo ports.ReferenceRepository

	metrics *metrics.Metrics
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	discontinueOrderHandler commands.DiscontinueOrderCommandHandler,
	voidOrderHandler commands.VoidOrderCommandHandler,
	unvoidOrderHandler commands.UnvoidOrderCommandHandler,
	purgeOrderHandler commands.PurgeOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	getAllOrdersHandler queries.GetAllOrdersByPatientQueryHandler,
	getHistoryHandler queries.GetOrderHistoryQueryHandler,
	getConceptHistory queries.GetOrderHistoryByConceptQueryHandler,
	referenceRepo ports.ReferenceRepository,
	m *metrics.Metrics,
) *Server {
	return &Server{
		placeOrderHandler:       placeOrderHandler,
		discontinueOrderHandler: discontinueOrderHandler,
		voidOrderHandler:        voidOrderHandler,
		unvoidOrderHandler:      unvoidOrderHandler,
		purgeOrderHandler:       purgeOrderHandler,
		getOrderHandler:         getOrderHandler,
		getActiveOrdersHandler:  getActiveOrdersHandler,
		getOrdersHandler:        getOrdersHandler,
		getAllOrdersHandler:     getAllOrdersHandler,
		getHistoryHandler:       getHistoryHandler,
		getConceptHistory:       getConceptHistory,
		referenceRepo:           referenceRepo,
		metrics:                 m,
	}
}

// RegisterRoutes wires all endpoints onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.PlaceOrder)
	api.GET("/orders/:id", s.GetOrder)
	api.DELETE("/orders/:id", s.PurgeOrder)
	api.POST("/orders/:id/discontinue", s.DiscontinueOrder)
	api.POST("/orders/:id/void", s.VoidOrder)
	api.POST("/orders/:id/unvoid", s.UnvoidOrder)
	api.GET("/orders/number/:number", s.GetOrderByNumber)
	api.GET("/orders/number/:number/history", s.GetOrderHistory)

	api.GET("/patients/:patientId/orders", s.GetOrders)
	api.GET("/patients/:patientId/orders/active", s.GetActiveOrders)
	api.GET("/patients/:patientId/orders/all", s.GetAllOrders)
	api.GET("/patients/:patientId/orders/history", s.GetOrderHistoryByConcept)

	api.GET("/order-types", s.GetOrderTypes)
	api.GET("/care-settings", s.GetCareSettings)
	api.GET("/order-frequencies", s.GetOrderFrequencies)

	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
}

// Health reports process liveness.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// errorResponse is the uniform error body for all endpoints.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// respondError maps domain error kinds onto HTTP statuses.
func (s *Server) respondError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		s.metrics.TransitionConflicts.Inc()
		status = http.StatusConflict
	case errors.Is(err, errs.ErrDataIntegrity):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrIllegalTransition),
		errors.Is(err, errs.ErrUnresolvedDefault):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, errorResponse{
		Code:    status,
		Message: err.Error(),
	})
}
