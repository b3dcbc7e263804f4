package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"clinicalorders/internal/core/application/usecases/commands"
	"clinicalorders/internal/core/application/usecases/queries"
	"clinicalorders/internal/core/domain/model/kernel"
	"clinicalorders/internal/core/domain/model/order"
	"clinicalorders/internal/pkg/errs"
)

// placeOrderRequest is the body for POST /orders. The id is optional: the
// server generates one when omitted. Order type, care setting, and order
// number act as save-time overrides; absent ones are resolved by the engine.
type placeOrderRequest struct {
	ID                 string     `json:"id"`
	PatientID          string     `json:"patientId"`
	ConceptID          string     `json:"conceptId"`
	OrdererID          string     `json:"ordererId"`
	Action             string     `json:"action"`
	Kind               string     `json:"kind"`
	DrugID             *string    `json:"drugId"`
	PreviousOrderID    *string    `json:"previousOrderId"`
	EncounterID        *string    `json:"encounterId"`
	FrequencyID        *string    `json:"frequencyId"`
	OrderReasonCodedID *string    `json:"orderReasonCodedId"`
	OrderReason        string     `json:"orderReason"`
	StartDate          time.Time  `json:"startDate"`
	AutoExpireDate     *time.Time `json:"autoExpireDate"`
	OrderTypeID        *string    `json:"orderTypeId"`
	CareSettingID      *string    `json:"careSettingId"`
	OrderNumber        string     `json:"orderNumber"`
}

type discontinueOrderRequest struct {
	OrdererID       string    `json:"ordererId"`
	EncounterID     *string   `json:"encounterId"`
	ReasonCodedID   *string   `json:"reasonCodedId"`
	Reason          string    `json:"reason"`
	DiscontinueDate time.Time `json:"discontinueDate"`
}

type voidOrderRequest struct {
	Reason     string `json:"reason"`
	VoidedByID string `json:"voidedById"`
}

// orderResponse is the wire representation of a single order.
type orderResponse struct {
	ID              string     `json:"id"`
	OrderNumber     string     `json:"orderNumber"`
	PatientID       string     `json:"patientId"`
	ConceptID       string     `json:"conceptId"`
	Kind            string     `json:"kind"`
	DrugID          *string    `json:"drugId,omitempty"`
	OrderTypeID     *string    `json:"orderTypeId,omitempty"`
	CareSettingID   *string    `json:"careSettingId,omitempty"`
	FrequencyID     *string    `json:"frequencyId,omitempty"`
	Action          string     `json:"action"`
	PreviousOrderID *string    `json:"previousOrderId,omitempty"`
	OrdererID       string     `json:"ordererId"`
	OrderReason     string     `json:"orderReason,omitempty"`
	StartDate       time.Time  `json:"startDate"`
	DateStopped     *time.Time `json:"dateStopped,omitempty"`
	AutoExpireDate  *time.Time `json:"autoExpireDate,omitempty"`
	Voided          bool       `json:"voided"`
}

// PlaceOrder handles POST /api/v1/orders - saves a new order, revision, or
// discontinuation built by the caller.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var request placeOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	aggregate, err := buildOrderFromRequest(request)
	if err != nil {
		return s.respondError(ctx, err)
	}

	orderContext, err := buildOrderContext(request)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewPlaceOrderCommand(aggregate, orderContext)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err = s.placeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	s.metrics.OrdersPlaced.Inc()

	return ctx.JSON(http.StatusCreated, map[string]string{
		"id":          aggregate.ID().String(),
		"orderNumber": aggregate.OrderNumber(),
	})
}

// DiscontinueOrder handles POST /api/v1/orders/:id/discontinue - places a
// discontinuation targeting the order in the path.
func (s *Server) DiscontinueOrder(ctx echo.Context) error {
	previousOrderID, err := parseUUID(ctx.Param("id"), "id")
	if err != nil {
		return s.respondError(ctx, err)
	}

	var request discontinueOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	ordererID, err := parseUUID(request.OrdererID, "ordererId")
	if err != nil {
		return s.respondError(ctx, err)
	}

	encounterID, err := parseOptionalUUID(request.EncounterID, "encounterId")
	if err != nil {
		return s.respondError(ctx, err)
	}

	reasonCodedID, err := parseOptionalUUID(request.ReasonCodedID, "reasonCodedId")
	if err != nil {
		return s.respondError(ctx, err)
	}

	discontinuationID := kernel.NewUUID()
	cmd, err := commands.NewDiscontinueOrderCommand(
		discontinuationID, previousOrderID, ordererID,
		encounterID, reasonCodedID, request.Reason, request.DiscontinueDate,
	)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err = s.discontinueOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	s.metrics.OrdersPlaced.Inc()
	s.metrics.OrdersDiscontinued.Inc()

	return ctx.JSON(http.StatusCreated, map[string]string{
		"id": discontinuationID.String(),
	})
}

// VoidOrder handles POST /api/v1/orders/:id/void - hides an order from
// regular views, keeping the row for audit.
func (s *Server) VoidOrder(ctx echo.Context) error {
	orderID, err := parseUUID(ctx.Param("id"), "id")
	if err != nil {
		return s.respondError(ctx, err)
	}

	var request voidOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	voidedByID, err := parseUUID(request.VoidedByID, "voidedById")
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewVoidOrderCommand(orderID, request.Reason, voidedByID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err = s.voidOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	s.metrics.OrdersVoided.Inc()

	return ctx.NoContent(http.StatusNoContent)
}

// UnvoidOrder handles POST /api/v1/orders/:id/unvoid - restores a voided
// order's visibility.
func (s *Server) UnvoidOrder(ctx echo.Context) error {
	orderID, err := parseUUID(ctx.Param("id"), "id")
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewUnvoidOrderCommand(orderID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err = s.unvoidOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// PurgeOrder handles DELETE /api/v1/orders/:id - irreversibly removes an
// order. ?cascade=true removes dependent observations as well.
func (s *Server) PurgeOrder(ctx echo.Context) error {
	orderID, err := parseUUID(ctx.Param("id"), "id")
	if err != nil {
		return s.respondError(ctx, err)
	}

	cascade := ctx.QueryParam("cascade") == "true"

	cmd, err := commands.NewPurgeOrderCommand(orderID, cascade)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err = s.purgeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := parseUUID(ctx.Param("id"), "id")
	if err != nil {
		return s.respondError(ctx, err)
	}

	query, err := queries.NewGetOrderQueryByID(orderID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return s.respondOrder(ctx, query)
}

// GetOrderByNumber handles GET /api/v1/orders/number/:number.
func (s *Server) GetOrderByNumber(ctx echo.Context) error {
	query, err := queries.NewGetOrderQueryByNumber(ctx.Param("number"))
	if err != nil {
		return s.respondError(ctx, err)
	}

	return s.respondOrder(ctx, query)
}

func (s *Server) respondOrder(ctx echo.Context, query queries.GetOrderQuery) error {
	result, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if result == nil {
		return ctx.NoContent(http.StatusNotFound)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(*result))
}

// GetOrderHistory handles GET /api/v1/orders/number/:number/history -
// returns the full revision chain, newest first.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	query, err := queries.NewGetOrderHistoryQuery(ctx.Param("number"))
	if err != nil {
		return s.respondError(ctx, err)
	}

	history, err := s.getHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponses(history))
}

// GetActiveOrders handles GET /api/v1/patients/:patientId/orders/active -
// orders active at ?asOf (default now), optionally filtered by concept,
// care setting, and order type.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	patientID, err := parseUUID(ctx.Param("patientId"), "patientId")
	if err != nil {
		return s.respondError(ctx, err)
	}

	conceptID, err := parseOptionalUUIDParam(ctx.QueryParam("conceptId"), "conceptId")
	if err != nil {
		return s.respondError(ctx, err)
	}
	careSettingID, err := parseOptionalUUIDParam(ctx.QueryParam("careSettingId"), "careSettingId")
	if err != nil {
		return s.respondError(ctx, err)
	}
	orderTypeID, err := parseOptionalUUIDParam(ctx.QueryParam("orderTypeId"), "orderTypeId")
	if err != nil {
		return s.respondError(ctx, err)
	}

	var asOf time.Time
	if raw := ctx.QueryParam("asOf"); raw != "" {
		asOf, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, errorResponse{
				Code:    http.StatusBadRequest,
				Message: "asOf must be an RFC 3339 timestamp",
			})
		}
	}

	query, err := queries.NewGetActiveOrdersQuery(patientID, conceptID, careSettingID, orderTypeID, asOf)
	if err != nil {
		return s.respondError(ctx, err)
	}

	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponses(orders))
}

// GetOrders handles GET /api/v1/patients/:patientId/orders - the regular
// listing: discontinuations excluded, voided orders only on request.
func (s *Server) GetOrders(ctx echo.Context) error {
	patientID, err := parseUUID(ctx.Param("patientId"), "patientId")
	if err != nil {
		return s.respondError(ctx, err)
	}

	careSettingID, err := parseUUID(ctx.QueryParam("careSettingId"), "careSettingId")
	if err != nil {
		return s.respondError(ctx, err)
	}

	orderTypeID, err := parseOptionalUUIDParam(ctx.QueryParam("orderTypeId"), "orderTypeId")
	if err != nil {
		return s.respondError(ctx, err)
	}

	includeVoided := ctx.QueryParam("includeVoided") == "true"

	query, err := queries.NewGetOrdersQuery(patientID, careSettingID, orderTypeID, includeVoided)
	if err != nil {
		return s.respondError(ctx, err)
	}

	orders, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponses(orders))
}

// GetAllOrders handles GET /api/v1/patients/:patientId/orders/all - every
// order ever recorded for the patient, voided and discontinuations included.
func (s *Server) GetAllOrders(ctx echo.Context) error {
	patientID, err := parseUUID(ctx.Param("patientId"), "patientId")
	if err != nil {
		return s.respondError(ctx, err)
	}

	query, err := queries.NewGetAllOrdersByPatientQuery(patientID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	orders, err := s.getAllOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponses(orders))
}

// GetOrderHistoryByConcept handles GET /api/v1/patients/:patientId/orders/history?conceptId=...
func (s *Server) GetOrderHistoryByConcept(ctx echo.Context) error {
	patientID, err := parseUUID(ctx.Param("patientId"), "patientId")
	if err != nil {
		return s.respondError(ctx, err)
	}

	conceptID, err := parseUUID(ctx.QueryParam("conceptId"), "conceptId")
	if err != nil {
		return s.respondError(ctx, err)
	}

	query, err := queries.NewGetOrderHistoryByConceptQuery(patientID, conceptID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	orders, err := s.getConceptHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponses(orders))
}

// buildOrderFromRequest assembles the order aggregate for placement.
func buildOrderFromRequest(request placeOrderRequest) (*order.Order, error) {
	id := kernel.NewUUID()
	if request.ID != "" {
		parsed, err := parseUUID(request.ID, "id")
		if err != nil {
			return nil, err
		}
		id = parsed
	}

	patientID, err := parseUUID(request.PatientID, "patientId")
	if err != nil {
		return nil, err
	}
	conceptID, err := parseUUID(request.ConceptID, "conceptId")
	if err != nil {
		return nil, err
	}
	ordererID, err := parseUUID(request.OrdererID, "ordererId")
	if err != nil {
		return nil, err
	}

	action, err := order.ActionFromString(request.Action)
	if err != nil {
		return nil, err
	}
	kind, err := order.KindFromString(request.Kind)
	if err != nil {
		return nil, err
	}

	drugID, err := parseOptionalUUID(request.DrugID, "drugId")
	if err != nil {
		return nil, err
	}

	aggregate, err := order.NewOrder(id, patientID, conceptID, ordererID, action, kind, drugID, request.StartDate)
	if err != nil {
		return nil, err
	}

	if previousOrderID, parseErr := parseOptionalUUID(request.PreviousOrderID, "previousOrderId"); parseErr != nil {
		return nil, parseErr
	} else if previousOrderID != nil {
		if err = aggregate.SetPreviousOrder(*previousOrderID); err != nil {
			return nil, err
		}
	}

	if encounterID, parseErr := parseOptionalUUID(request.EncounterID, "encounterId"); parseErr != nil {
		return nil, parseErr
	} else if encounterID != nil {
		if err = aggregate.SetEncounter(*encounterID); err != nil {
			return nil, err
		}
	}

	if frequencyID, parseErr := parseOptionalUUID(request.FrequencyID, "frequencyId"); parseErr != nil {
		return nil, parseErr
	} else if frequencyID != nil {
		if err = aggregate.SetFrequency(*frequencyID); err != nil {
			return nil, err
		}
	}

	if request.OrderReason != "" || request.OrderReasonCodedID != nil {
		reasonCodedID, parseErr := parseOptionalUUID(request.OrderReasonCodedID, "orderReasonCodedId")
		if parseErr != nil {
			return nil, parseErr
		}
		aggregate.SetOrderReason(reasonCodedID, request.OrderReason)
	}

	if request.AutoExpireDate != nil {
		aggregate.SetAutoExpireDate(*request.AutoExpireDate)
	}

	return aggregate, nil
}

func buildOrderContext(request placeOrderRequest) (commands.OrderContext, error) {
	orderTypeID, err := parseOptionalUUID(request.OrderTypeID, "orderTypeId")
	if err != nil {
		return commands.OrderContext{}, err
	}
	careSettingID, err := parseOptionalUUID(request.CareSettingID, "careSettingId")
	if err != nil {
		return commands.OrderContext{}, err
	}

	return commands.OrderContext{
		OrderTypeID:   orderTypeID,
		CareSettingID: careSettingID,
		OrderNumber:   request.OrderNumber,
	}, nil
}

// parseUUID parses a caller-supplied identifier, tagging parse failures as
// invalid-value errors so they surface as 400s rather than 500s.
func parseUUID(raw, paramName string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(paramName, err)
	}
	return id, nil
}

func parseOptionalUUID(raw *string, paramName string) (*kernel.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := parseUUID(*raw, paramName)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseOptionalUUIDParam(raw, paramName string) (*kernel.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := parseUUID(raw, paramName)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func toOrderResponse(src queries.OrderResponse) orderResponse {
	return orderResponse{
		ID:              src.ID.String(),
		OrderNumber:     src.OrderNumber,
		PatientID:       src.PatientID.String(),
		ConceptID:       src.ConceptID.String(),
		Kind:            src.Kind.String(),
		DrugID:          optionalUUIDString(src.DrugID),
		OrderTypeID:     optionalUUIDString(src.OrderTypeID),
		CareSettingID:   optionalUUIDString(src.CareSettingID),
		FrequencyID:     optionalUUIDString(src.FrequencyID),
		Action:          src.Action.String(),
		PreviousOrderID: optionalUUIDString(src.PreviousOrderID),
		OrdererID:       src.OrdererID.String(),
		OrderReason:     src.OrderReason,
		StartDate:       src.StartDate,
		DateStopped:     src.DateStopped,
		AutoExpireDate:  src.AutoExpireDate,
		Voided:          src.Voided,
	}
}

func toOrderResponses(src []queries.OrderResponse) []orderResponse {
	responses := make([]orderResponse, 0, len(src))
	for _, item := range src {
		responses = append(responses, toOrderResponse(item))
	}
	return responses
}

func optionalUUIDString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
