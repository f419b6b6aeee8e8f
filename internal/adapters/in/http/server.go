// Package http exposes the dispatch service over a REST API. The server
// translates JSON requests into commands and queries, and maps the domain
// error taxonomy onto HTTP status codes.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/application/usecases/commands"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/application/usecases/queries"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/courier"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/kernel"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/order"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/payment"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler     commands.CreateOrderCommandHandler
	assignOrderHandler     commands.AssignOrderCommandHandler
	transitionOrderHandler commands.TransitionOrderCommandHandler
	registerCourierHandler commands.RegisterCourierCommandHandler
	updateLocationHandler  commands.UpdateCourierLocationCommandHandler
	initiatePaymentHandler commands.InitiatePaymentCommandHandler
	confirmPaymentHandler  commands.ConfirmPaymentCommandHandler

	getActiveOrdersHandler       queries.GetActiveOrdersQueryHandler
	getOrderHistoryHandler       queries.GetOrderHistoryQueryHandler
	getAvailableCouriersHandler  queries.GetAvailableCouriersQueryHandler
	getDispatchCandidatesHandler queries.GetDispatchCandidatesQueryHandler
}

// ServerParams bundles the handlers the server depends on.
type ServerParams struct {
	CreateOrder     commands.CreateOrderCommandHandler
	AssignOrder     commands.AssignOrderCommandHandler
	TransitionOrder commands.TransitionOrderCommandHandler
	RegisterCourier commands.RegisterCourierCommandHandler
	UpdateLocation  commands.UpdateCourierLocationCommandHandler
	InitiatePayment commands.InitiatePaymentCommandHandler
	ConfirmPayment  commands.ConfirmPaymentCommandHandler

	GetActiveOrders       queries.GetActiveOrdersQueryHandler
	GetOrderHistory       queries.GetOrderHistoryQueryHandler
	GetAvailableCouriers  queries.GetAvailableCouriersQueryHandler
	GetDispatchCandidates queries.GetDispatchCandidatesQueryHandler
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(params ServerParams) *Server {
	return &Server{
		createOrderHandler:           params.CreateOrder,
		assignOrderHandler:           params.AssignOrder,
		transitionOrderHandler:       params.TransitionOrder,
		registerCourierHandler:       params.RegisterCourier,
		updateLocationHandler:        params.UpdateLocation,
		initiatePaymentHandler:       params.InitiatePayment,
		confirmPaymentHandler:        params.ConfirmPayment,
		getActiveOrdersHandler:       params.GetActiveOrders,
		getOrderHistoryHandler:       params.GetOrderHistory,
		getAvailableCouriersHandler:  params.GetAvailableCouriers,
		getDispatchCandidatesHandler: params.GetDispatchCandidates,
	}
}

// RegisterRoutes mounts all API routes on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders/active", s.GetActiveOrders)
	v1.GET("/orders/:orderId/history", s.GetOrderHistory)
	v1.GET("/orders/:orderId/candidates", s.GetDispatchCandidates)
	v1.POST("/orders/:orderId/assign", s.AssignOrder)
	v1.POST("/orders/:orderId/transition", s.TransitionOrder)

	v1.POST("/couriers", s.RegisterCourier)
	v1.GET("/couriers/available", s.GetAvailableCouriers)
	v1.POST("/couriers/:courierId/location", s.UpdateCourierLocation)

	v1.POST("/payments", s.InitiatePayment)
	v1.POST("/payments/webhook", s.ConfirmPayment)
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// writeError maps the domain error taxonomy to HTTP status codes.
func writeError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrUnauthorized):
		code = http.StatusForbidden
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrOrderNotAssignable),
		errors.Is(err, errs.ErrCourierUnavailable),
		errors.Is(err, errs.ErrOrderNotPayable),
		errors.Is(err, errs.ErrAlreadyPaid):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, ErrorResponse{Code: code, Message: err.Error()})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// parseUUID wraps parse failures as invalid-value errors so writeError maps
// them to 400 rather than 500.
func parseUUID(param, value string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(value)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return id, nil
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	ClientID         string  `json:"client_id"`
	PickupLatitude   float64 `json:"pickup_latitude"`
	PickupLongitude  float64 `json:"pickup_longitude"`
	PickupAddress    string  `json:"pickup_address"`
	DropoffLatitude  float64 `json:"dropoff_latitude"`
	DropoffLongitude float64 `json:"dropoff_longitude"`
	DropoffAddress   string  `json:"dropoff_address"`
	OrderType        string  `json:"order_type"`
	WeightKg         float64 `json:"weight_kg"`
	IsLarge          bool    `json:"is_large"`
	IsFragile        bool    `json:"is_fragile"`
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	clientID, err := parseUUID("client_id", req.ClientID)
	if err != nil {
		return writeError(ctx, err)
	}

	pickup, err := kernel.NewGeoPoint(req.PickupLatitude, req.PickupLongitude)
	if err != nil {
		return writeError(ctx, err)
	}
	dropoff, err := kernel.NewGeoPoint(req.DropoffLatitude, req.DropoffLongitude)
	if err != nil {
		return writeError(ctx, err)
	}

	orderType, err := order.TypeFromString(req.OrderType)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), clientID,
		pickup, dropoff,
		req.PickupAddress, req.DropoffAddress,
		order.Attributes{
			OrderType: orderType,
			WeightKg:  req.WeightKg,
			IsLarge:   req.IsLarge,
			IsFragile: req.IsFragile,
		},
	)
	if err != nil {
		return writeError(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, created.ToSnapshot())
}

// AssignOrderRequest is the body of POST /api/v1/orders/:orderId/assign.
type AssignOrderRequest struct {
	CourierID string `json:"courier_id"`
}

// AssignOrder handles POST /api/v1/orders/:orderId/assign - a courier
// claiming a pending order.
func (s *Server) AssignOrder(ctx echo.Context) error {
	orderID, err := parseUUID("orderId", ctx.Param("orderId"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req AssignOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	courierID, err := parseUUID("courier_id", req.CourierID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAssignOrderCommand(orderID, courierID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.assignOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// TransitionOrderRequest is the body of POST /api/v1/orders/:orderId/transition.
type TransitionOrderRequest struct {
	Target           string   `json:"target"`
	ActorID          string   `json:"actor_id"`
	ActorRole        string   `json:"actor_role"`
	Note             string   `json:"note,omitempty"`
	ConfirmationCode string   `json:"confirmation_code,omitempty"`
	CancelReason     string   `json:"cancel_reason,omitempty"`
	Latitude         *float64 `json:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty"`
}

// TransitionOrder handles POST /api/v1/orders/:orderId/transition - pickup,
// in-transit, delivery and cancellation.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	orderID, err := parseUUID("orderId", ctx.Param("orderId"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req TransitionOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	target, err := order.StatusFromString(req.Target)
	if err != nil {
		return writeError(ctx, err)
	}

	actorID, err := parseUUID("actor_id", req.ActorID)
	if err != nil {
		return writeError(ctx, err)
	}
	role, err := order.RoleFromString(req.ActorRole)
	if err != nil {
		return writeError(ctx, err)
	}
	actor, err := order.NewActor(actorID, role)
	if err != nil {
		return writeError(ctx, err)
	}

	var at *kernel.GeoPoint
	if req.Latitude != nil && req.Longitude != nil {
		point, pointErr := kernel.NewGeoPoint(*req.Latitude, *req.Longitude)
		if pointErr != nil {
			return writeError(ctx, pointErr)
		}
		at = &point
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, target, actor, commands.TransitionOrderParams{
		Note:             req.Note,
		ConfirmationCode: req.ConfirmationCode,
		CancelReason:     req.CancelReason,
		At:               at,
	})
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetActiveOrders handles GET /api/v1/orders/active?client_id=... -
// retrieves the client's orders that are not yet in a terminal status.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	clientID, err := parseUUID("client_id", ctx.QueryParam("client_id"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetActiveOrdersQuery(clientID)
	if err != nil {
		return writeError(ctx, err)
	}

	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orders)
}

// GetOrderHistory handles GET /api/v1/orders/:orderId/history - the full
// transition trail of one order.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	orderID, err := parseUUID("orderId", ctx.Param("orderId"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetOrderHistoryQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	trail, err := s.getOrderHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, trail)
}

// GetDispatchCandidates handles GET /api/v1/orders/:orderId/candidates - a
// ranked preview of couriers for one order, without assigning anyone.
func (s *Server) GetDispatchCandidates(ctx echo.Context) error {
	orderID, err := parseUUID("orderId", ctx.Param("orderId"))
	if err != nil {
		return writeError(ctx, err)
	}

	limit := 5
	if raw := ctx.QueryParam("limit"); raw != "" {
		parsed, parseErr := strconv.Atoi(raw)
		if parseErr != nil {
			return badRequest(ctx, "limit must be an integer")
		}
		limit = parsed
	}

	query, err := queries.NewGetDispatchCandidatesQuery(orderID, limit)
	if err != nil {
		return writeError(ctx, err)
	}

	candidates, err := s.getDispatchCandidatesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, candidates)
}

// RegisterCourierRequest is the body of POST /api/v1/couriers.
type RegisterCourierRequest struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	VehicleType string `json:"vehicle_type"`
}

// RegisterCourierResponse returns the identifier of the new profile.
type RegisterCourierResponse struct {
	ID string `json:"id"`
}

// RegisterCourier handles POST /api/v1/couriers - onboards a new courier.
func (s *Server) RegisterCourier(ctx echo.Context) error {
	var req RegisterCourierRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	vehicle, err := courier.VehicleTypeFromString(req.VehicleType)
	if err != nil {
		return writeError(ctx, err)
	}

	courierID := kernel.NewUUID()
	cmd, err := commands.NewRegisterCourierCommand(courierID, req.Name, req.Phone, vehicle)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.registerCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, RegisterCourierResponse{ID: courierID.String()})
}

// UpdateCourierLocationRequest is the body of POST /api/v1/couriers/:courierId/location.
type UpdateCourierLocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	GoOnline  bool    `json:"go_online"`
}

// UpdateCourierLocation handles POST /api/v1/couriers/:courierId/location -
// one position report from a courier's device.
func (s *Server) UpdateCourierLocation(ctx echo.Context) error {
	courierID, err := parseUUID("courierId", ctx.Param("courierId"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req UpdateCourierLocationRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	position, err := kernel.NewGeoPoint(req.Latitude, req.Longitude)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateCourierLocationCommand(courierID, position, req.GoOnline)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.updateLocationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetAvailableCouriers handles GET /api/v1/couriers/available - the pool of
// dispatchable couriers.
func (s *Server) GetAvailableCouriers(ctx echo.Context) error {
	query := queries.NewGetAvailableCouriersQuery()

	couriers, err := s.getAvailableCouriersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, couriers)
}

// InitiatePaymentRequest is the body of POST /api/v1/payments.
type InitiatePaymentRequest struct {
	OrderID  string `json:"order_id"`
	ClientID string `json:"client_id"`
	Method   string `json:"method"`
	Phone    string `json:"phone,omitempty"`
}

// PaymentResponse is the serialized view of a payment attempt.
type PaymentResponse struct {
	ID           string `json:"id"`
	OrderID      string `json:"order_id"`
	Amount       string `json:"amount"`
	Method       string `json:"method"`
	Status       string `json:"status"`
	ProviderTxID string `json:"provider_tx_id,omitempty"`
}

// InitiatePayment handles POST /api/v1/payments - a client opening a payment
// attempt for their order.
func (s *Server) InitiatePayment(ctx echo.Context) error {
	var req InitiatePaymentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	orderID, err := parseUUID("order_id", req.OrderID)
	if err != nil {
		return writeError(ctx, err)
	}
	clientID, err := parseUUID("client_id", req.ClientID)
	if err != nil {
		return writeError(ctx, err)
	}
	method, err := payment.MethodFromString(req.Method)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewInitiatePaymentCommand(kernel.NewUUID(), orderID, clientID, method, req.Phone)
	if err != nil {
		return writeError(ctx, err)
	}

	attempt, err := s.initiatePaymentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, PaymentResponse{
		ID:           attempt.ID().String(),
		OrderID:      attempt.OrderID().String(),
		Amount:       attempt.Amount().String(),
		Method:       attempt.Method().String(),
		Status:       attempt.Status().String(),
		ProviderTxID: attempt.ProviderTxID(),
	})
}

// ConfirmPaymentRequest is the body of POST /api/v1/payments/webhook - the
// provider's settlement callback.
type ConfirmPaymentRequest struct {
	PaymentID    string `json:"payment_id"`
	Succeeded    bool   `json:"succeeded"`
	ProviderTxID string `json:"provider_tx_id,omitempty"`
	FailReason   string `json:"fail_reason,omitempty"`
}

// ConfirmPayment handles POST /api/v1/payments/webhook. Providers retry
// callbacks, so a replayed settlement answers 204 like the first one.
func (s *Server) ConfirmPayment(ctx echo.Context) error {
	var req ConfirmPaymentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	paymentID, err := parseUUID("payment_id", req.PaymentID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewConfirmPaymentCommand(paymentID, req.Succeeded, req.ProviderTxID, req.FailReason)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.confirmPaymentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
