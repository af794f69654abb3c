// Package http exposes the order operations over REST with echo.
package http

import (
	"log/slog"
	"strconv"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// Server handles HTTP requests by delegating to the command and query handlers.
type Server struct {
	// Command handlers
	createOrderHandler    commands.CreateOrderCommandHandler
	payOrderHandler       commands.PayOrderCommandHandler
	dispatchOrderHandler  commands.DispatchOrderCommandHandler
	markForReceiptHandler commands.MarkForReceiptCommandHandler
	confirmReceiptHandler commands.ConfirmReceiptCommandHandler
	cancelOrderHandler    commands.CancelOrderCommandHandler

	// Query handlers
	listOrdersHandler     queries.ListOrdersQueryHandler
	getOrderDetailHandler queries.GetOrderDetailQueryHandler
	countOrdersHandler    queries.CountOrdersQueryHandler

	logger *slog.Logger
}

func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	payOrderHandler commands.PayOrderCommandHandler,
	dispatchOrderHandler commands.DispatchOrderCommandHandler,
	markForReceiptHandler commands.MarkForReceiptCommandHandler,
	confirmReceiptHandler commands.ConfirmReceiptCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	getOrderDetailHandler queries.GetOrderDetailQueryHandler,
	countOrdersHandler queries.CountOrdersQueryHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		createOrderHandler:    createOrderHandler,
		payOrderHandler:       payOrderHandler,
		dispatchOrderHandler:  dispatchOrderHandler,
		markForReceiptHandler: markForReceiptHandler,
		confirmReceiptHandler: confirmReceiptHandler,
		cancelOrderHandler:    cancelOrderHandler,
		listOrdersHandler:     listOrdersHandler,
		getOrderDetailHandler: getOrderDetailHandler,
		countOrdersHandler:    countOrdersHandler,
		logger:                logger.With("component", "http_server"),
	}
}

// ListOrders handles GET /api/order/list?status=. A missing or unparseable
// status lists every order.
func (s *Server) ListOrders(ctx echo.Context) error {
	var status *int
	if raw := ctx.QueryParam("status"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			status = &v
		}
	}

	views, err := s.listOrdersHandler.Handle(ctx.Request().Context(), queries.NewListOrdersQuery(status))
	if err != nil {
		return s.failWith(ctx, err)
	}

	list := make([]OrderDTO, 0, len(views))
	for _, v := range views {
		list = append(list, toOrderDTO(v))
	}
	return ok(ctx, "success", OrderListDTO{List: list, Total: len(list)})
}

// GetOrderDetail handles GET /api/order/detail/:id.
func (s *Server) GetOrderDetail(ctx echo.Context) error {
	query, err := queries.NewGetOrderDetailQuery(ctx.Param("id"))
	if err != nil {
		return s.failWith(ctx, err)
	}

	view, err := s.getOrderDetailHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.failWith(ctx, err)
	}
	return ok(ctx, "success", toOrderDTO(view))
}

// CountOrders handles GET /api/order/count.
func (s *Server) CountOrders(ctx echo.Context) error {
	response, err := s.countOrdersHandler.Handle(ctx.Request().Context(), queries.NewCountOrdersQuery())
	if err != nil {
		return s.failWith(ctx, err)
	}
	return ok(ctx, "success", toCountDTO(response))
}

// CreateOrder handles POST /api/order/create.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return fail(ctx, CodeBadRequest, "invalid request body")
	}

	cmd, err := request.toCommand()
	if err != nil {
		return s.failWith(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.failWith(ctx, err)
	}
	return ok(ctx, "订单创建成功", toCreatedDTO(created))
}

// PayOrder handles PUT /api/order/pay/:id.
func (s *Server) PayOrder(ctx echo.Context) error {
	cmd, err := commands.NewPayOrderCommand(ctx.Param("id"))
	if err != nil {
		return s.failWith(ctx, err)
	}

	result, err := s.payOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.failWith(ctx, err)
	}
	return ok(ctx, "支付成功", toTransitionDTO(result, order.EventPay))
}

// DispatchOrder handles PUT /api/order/deliver/:id.
func (s *Server) DispatchOrder(ctx echo.Context) error {
	cmd, err := commands.NewDispatchOrderCommand(ctx.Param("id"))
	if err != nil {
		return s.failWith(ctx, err)
	}

	result, err := s.dispatchOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.failWith(ctx, err)
	}
	return ok(ctx, "发货成功", toTransitionDTO(result, order.EventDispatch))
}

// MarkForReceipt handles PUT /api/order/to-receive/:id.
func (s *Server) MarkForReceipt(ctx echo.Context) error {
	cmd, err := commands.NewMarkForReceiptCommand(ctx.Param("id"))
	if err != nil {
		return s.failWith(ctx, err)
	}

	result, err := s.markForReceiptHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.failWith(ctx, err)
	}
	return ok(ctx, "订单已转为待收货", toTransitionDTO(result, order.EventMarkForReceipt))
}

// ConfirmReceipt handles PUT /api/order/receive/:id.
func (s *Server) ConfirmReceipt(ctx echo.Context) error {
	cmd, err := commands.NewConfirmReceiptCommand(ctx.Param("id"))
	if err != nil {
		return s.failWith(ctx, err)
	}

	result, err := s.confirmReceiptHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.failWith(ctx, err)
	}
	return ok(ctx, "确认收货成功", toTransitionDTO(result, order.EventConfirmReceipt))
}

// CancelOrder handles PUT /api/order/cancel/:id.
func (s *Server) CancelOrder(ctx echo.Context) error {
	cmd, err := commands.NewCancelOrderCommand(ctx.Param("id"))
	if err != nil {
		return s.failWith(ctx, err)
	}

	result, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.failWith(ctx, err)
	}
	return ok(ctx, "订单已取消", CancelDTO{ID: result.OrderID, Provenance: string(result.Provenance)})
}
