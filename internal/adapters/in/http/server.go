// Package http exposes the dispatch core over a REST API.
// It coordinates between HTTP handlers and application use cases.
package http

import (
	"errors"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/carrier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server implements the HTTP handlers for the dispatch API.
type Server struct {
	// Command handlers
	createOrderHandler  commands.CreateOrderCommandHandler
	shipOrderHandler    commands.ShipOrderCommandHandler
	autoShipHandler     commands.AutoShipOrderCommandHandler
	syncTrackingHandler commands.SyncTrackingCommandHandler
	cancelHandler       commands.CancelShipmentCommandHandler
	labelHandler        commands.GetLabelCommandHandler

	// Query handlers
	timelineHandler        queries.GetTrackingTimelineQueryHandler
	activeShipmentsHandler queries.GetActiveShipmentsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	shipOrderHandler commands.ShipOrderCommandHandler,
	autoShipHandler commands.AutoShipOrderCommandHandler,
	syncTrackingHandler commands.SyncTrackingCommandHandler,
	cancelHandler commands.CancelShipmentCommandHandler,
	labelHandler commands.GetLabelCommandHandler,
	timelineHandler queries.GetTrackingTimelineQueryHandler,
	activeShipmentsHandler queries.GetActiveShipmentsQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:     createOrderHandler,
		shipOrderHandler:       shipOrderHandler,
		autoShipHandler:        autoShipHandler,
		syncTrackingHandler:    syncTrackingHandler,
		cancelHandler:          cancelHandler,
		labelHandler:           labelHandler,
		timelineHandler:        timelineHandler,
		activeShipmentsHandler: activeShipmentsHandler,
	}
}

// RegisterRoutes mounts the API on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:id/ship", s.ShipOrder)
	api.POST("/orders/:id/autoship", s.AutoShipOrder)
	api.POST("/orders/:id/sync", s.SyncTracking)
	api.POST("/orders/:id/cancel", s.CancelShipment)
	api.GET("/orders/:id/label", s.GetLabel)
	api.GET("/orders/:id/timeline", s.GetTrackingTimeline)
	api.GET("/merchants/:id/shipments/active", s.GetActiveShipments)
}

// Error is the JSON error envelope every failing endpoint returns.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrderRequest is the payload for order creation.
type NewOrderRequest struct {
	MerchantID      string  `json:"merchant_id"`
	RecipientName   string  `json:"recipient_name"`
	RecipientPhone  string  `json:"recipient_phone"`
	AddressLine     string  `json:"address_line"`
	OriginArea      string  `json:"origin_area"`
	DestinationArea string  `json:"destination_area"`
	WeightKg        float64 `json:"weight_kg"`
	Pieces          int     `json:"pieces"`
	CODAmount       float64 `json:"cod_amount"`
	Notes           string  `json:"notes,omitempty"`
}

// NewOrderResponse returns the identifier of the created order.
type NewOrderResponse struct {
	ID string `json:"id"`
}

// ShipOrderRequest names the carrier a merchant wants to ship with.
type ShipOrderRequest struct {
	Carrier string `json:"carrier"`
}

// AutoShipOrderRequest names the routing strategy. An empty strategy falls
// back to smart routing.
type AutoShipOrderRequest struct {
	Strategy string `json:"strategy,omitempty"`
}

// ShipmentResponse reports the outcome of a ship attempt.
type ShipmentResponse struct {
	Success            bool     `json:"success"`
	ExternalTrackingID string   `json:"external_tracking_id,omitempty"`
	LabelRef           string   `json:"label_ref,omitempty"`
	CostEstimate       *float64 `json:"cost_estimate,omitempty"`
	Error              string   `json:"error,omitempty"`
}

// SyncResponse reports the outcome of one tracking synchronization.
type SyncResponse struct {
	OrderID   string `json:"order_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
	Changed   bool   `json:"changed"`
	Error     string `json:"error,omitempty"`
}

// TimelineEntry is one step of an order's tracking history.
type TimelineEntry struct {
	Seq        int    `json:"seq"`
	Status     string `json:"status"`
	LabelEN    string `json:"label_en"`
	LabelFR    string `json:"label_fr"`
	RawStatus  string `json:"raw_status"`
	Carrier    string `json:"carrier"`
	Location   string `json:"location,omitempty"`
	OccurredAt string `json:"occurred_at"`
	Source     string `json:"source"`
}

// ActiveShipment is one in-flight shipment of a merchant.
type ActiveShipment struct {
	ID                 string  `json:"id"`
	RecipientName      string  `json:"recipient_name"`
	DestinationArea    string  `json:"destination_area"`
	CODAmount          float64 `json:"cod_amount"`
	Carrier            string  `json:"carrier"`
	ExternalTrackingID string  `json:"external_tracking_id"`
	Status             string  `json:"status"`
	BoundAt            string  `json:"bound_at"`
}

// CreateOrder handles POST /api/v1/orders - registers a new shipment.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req NewOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	merchantID, err := kernel.UUIDFromString(req.MerchantID)
	if err != nil {
		return badRequest(ctx, "Invalid merchant id: "+err.Error())
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, merchantID,
		req.RecipientName, req.RecipientPhone,
		req.AddressLine, req.OriginArea, req.DestinationArea,
		req.WeightKg, req.Pieces, req.CODAmount, req.Notes,
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, NewOrderResponse{ID: orderID.String()})
}

// ShipOrder handles POST /api/v1/orders/:id/ship - ships with an explicit carrier.
func (s *Server) ShipOrder(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req ShipOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	carrierType, err := carrier.TypeFromString(req.Carrier)
	if err != nil {
		return badRequest(ctx, "Unknown carrier: "+req.Carrier)
	}

	cmd, err := commands.NewShipOrderCommand(orderID, carrierType)
	if err != nil {
		return badRequest(ctx, "Invalid ship request: "+err.Error())
	}

	result, err := s.shipOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return writeShipmentResult(ctx, result)
}

// AutoShipOrder handles POST /api/v1/orders/:id/autoship - routes and ships
// by strategy.
func (s *Server) AutoShipOrder(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req AutoShipOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAutoShipOrderCommand(orderID, services.StrategyFromString(req.Strategy))
	if err != nil {
		return badRequest(ctx, "Invalid autoship request: "+err.Error())
	}

	result, err := s.autoShipHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return writeShipmentResult(ctx, result)
}

// SyncTracking handles POST /api/v1/orders/:id/sync - synchronizes one
// shipment with its carrier on demand.
func (s *Server) SyncTracking(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewSyncTrackingCommand(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid sync request: "+err.Error())
	}

	result, err := s.syncTrackingHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	response := SyncResponse{
		OrderID:   result.OrderID.String(),
		OldStatus: result.OldStatus.String(),
		NewStatus: result.NewStatus.String(),
		Changed:   result.Changed,
	}
	if result.Err != nil {
		response.Error = result.Err.Error()
		return ctx.JSON(statusForError(result.Err), response)
	}

	return ctx.JSON(http.StatusOK, response)
}

// CancelShipment handles POST /api/v1/orders/:id/cancel - cancels a shipment
// at the carrier.
func (s *Server) CancelShipment(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewCancelShipmentCommand(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid cancel request: "+err.Error())
	}

	if handleErr := s.cancelHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetLabel handles GET /api/v1/orders/:id/label - downloads the shipping
// label document from the bound carrier.
func (s *Server) GetLabel(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewGetLabelCommand(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid label request: "+err.Error())
	}

	label, err := s.labelHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.Blob(http.StatusOK, "application/pdf", label)
}

// GetTrackingTimeline handles GET /api/v1/orders/:id/timeline.
func (s *Server) GetTrackingTimeline(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetTrackingTimelineQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid timeline request: "+err.Error())
	}

	timeline, err := s.timelineHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]TimelineEntry, len(timeline))
	for i, entry := range timeline {
		response[i] = TimelineEntry{
			Seq:        entry.Seq,
			Status:     entry.Status.String(),
			LabelEN:    entry.LabelEN,
			LabelFR:    entry.LabelFR,
			RawStatus:  entry.RawStatus,
			Carrier:    entry.CarrierType.String(),
			Location:   entry.Location,
			OccurredAt: entry.OccurredAt.Format("2006-01-02T15:04:05Z07:00"),
			Source:     entry.Source,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetActiveShipments handles GET /api/v1/merchants/:id/shipments/active.
func (s *Server) GetActiveShipments(ctx echo.Context) error {
	merchantID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid merchant id")
	}

	query, err := queries.NewGetActiveShipmentsQuery(merchantID)
	if err != nil {
		return badRequest(ctx, "Invalid shipments request: "+err.Error())
	}

	shipments, err := s.activeShipmentsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]ActiveShipment, len(shipments))
	for i, shipment := range shipments {
		response[i] = ActiveShipment{
			ID:                 shipment.ID.String(),
			RecipientName:      shipment.RecipientName,
			DestinationArea:    shipment.DestinationArea,
			CODAmount:          shipment.CODAmount,
			Carrier:            shipment.CarrierType.String(),
			ExternalTrackingID: shipment.ExternalTrackingID,
			Status:             shipment.Status.String(),
			BoundAt:            shipment.BoundAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func pathOrderID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func writeError(ctx echo.Context, err error) error {
	code := statusForError(err)
	return ctx.JSON(code, Error{
		Code:    code,
		Message: err.Error(),
	})
}

func writeShipmentResult(ctx echo.Context, result ports.ShipmentResult) error {
	response := ShipmentResponse{
		Success:            result.Success,
		ExternalTrackingID: result.ExternalTrackingID,
		LabelRef:           result.LabelRef,
		CostEstimate:       result.CostEstimate,
	}
	if result.Err != nil {
		response.Error = result.Err.Error()
		return ctx.JSON(statusForError(result.Err), response)
	}

	return ctx.JSON(http.StatusOK, response)
}

// statusForError maps domain and vendor failures onto HTTP status codes.
// Vendor-side failures surface as 502 so callers can tell them apart from
// their own bad requests.
func statusForError(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrNotBound), errors.Is(err, order.ErrBindingIsFinal):
		return http.StatusConflict
	case errors.Is(err, errs.ErrConfiguration):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrVendorRejection), errors.Is(err, errs.ErrTransport):
		return http.StatusBadGateway
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
