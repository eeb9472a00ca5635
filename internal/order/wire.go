package order

import (
	"pizzabot/internal/config"
	"pizzabot/internal/order/allocator"
	"pizzabot/internal/order/controller"
	"pizzabot/internal/order/repository"
	"pizzabot/internal/order/service"
	"pizzabot/internal/order/usecase"
	"pizzabot/internal/store"

	"go.uber.org/zap"
)

// Module is the order side of the bot: the commit path used by the dialog,
// customer lookup, and the HTTP status endpoints.
type Module struct {
	Checkout   *service.CheckoutService
	Customers  *repository.CustomerRepository
	Controller *controller.OrderController
}

// NewModule builds the order module over one backing store. publisher may be
// nil.
func NewModule(st store.Store, counter store.CounterStore, publisher service.TicketPublisher, cfg config.OrderConfig, logger *zap.Logger) *Module {
	orderRepo := repository.NewOrderRepository(st, logger)
	customerRepo := repository.NewCustomerRepository(st)
	alloc := allocator.New(counter, logger)

	checkout := service.NewCheckoutService(alloc, orderRepo, customerRepo, publisher, logger)
	statusUC := usecase.NewOrderStatusUseCase(orderRepo, logger, cfg.MaxRetryAttempts)

	return &Module{
		Checkout:   checkout,
		Customers:  customerRepo,
		Controller: controller.NewOrderController(statusUC, logger),
	}
}
