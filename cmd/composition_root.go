package cmd

import (
	"log/slog"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/adapters/out/postgres"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/adapters/out/postgres/courierrepo"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/adapters/out/postgres/orderrepo"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/application/usecases/commands"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/application/usecases/queries"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/services"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/ports"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/lock"

	"gorm.io/gorm"
)

// CompositionRoot wires the application's object graph. All handlers built
// from one root share the same lock table, clock and event publisher.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	locks      *lock.KeyedMutex
	clock      ports.Clock
	publisher  ports.EventPublisher
	matcher    services.Matcher
	logger     *slog.Logger
}

// NewCompositionRoot creates the root. The publisher may be nil when Kafka
// is not configured; event publishing then degrades to a no-op.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		locks:      lock.NewKeyedMutex(),
		clock:      ports.SystemClock{},
		publisher:  publisher,
		matcher:    services.NewMatcher(services.NewScorer(services.DefaultScoringConfig())),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, commands.DefaultPricingConfig(), c.clock)
}

func (c *CompositionRoot) CreateAssignOrderCommandHandler() commands.AssignOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignOrderCommandHandler(f, c.locks, c.publisher, c.clock)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionOrderCommandHandler(f, c.locks, c.publisher, c.clock)
}

func (c *CompositionRoot) CreateRegisterCourierCommandHandler() commands.RegisterCourierCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterCourierCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateCourierLocationCommandHandler() commands.UpdateCourierLocationCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateCourierLocationCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateInitiatePaymentCommandHandler() commands.InitiatePaymentCommandHandler {
	var f commands.PaymentUoWFactory = FuncPaymentUoWFactory(func() commands.PaymentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewInitiatePaymentCommandHandler(f, c.locks, c.clock)
}

func (c *CompositionRoot) CreateConfirmPaymentCommandHandler() commands.ConfirmPaymentCommandHandler {
	var f commands.PaymentUoWFactory = FuncPaymentUoWFactory(func() commands.PaymentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmPaymentCommandHandler(f, c.locks, c.publisher, c.clock)
}

func (c *CompositionRoot) CreateDispatchPendingOrdersCommandHandler() commands.DispatchPendingOrdersCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchPendingOrdersCommandHandler(
		f,
		c.matcher,
		c.CreateAssignOrderCommandHandler(),
		c.config.DispatchRadiusKm,
		c.logger,
	)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAvailableCouriersQueryHandler() queries.GetAvailableCouriersQueryHandler {
	return queries.NewGetAvailableCouriersQueryHandler(c.gormDB)
}

// CreateGetDispatchCandidatesQueryHandler builds the candidate preview over
// repositories bound to the base connection: the preview reads committed
// state and opens no transaction.
func (c *CompositionRoot) CreateGetDispatchCandidatesQueryHandler() queries.GetDispatchCandidatesQueryHandler {
	return queries.NewGetDispatchCandidatesQueryHandler(
		orderrepo.NewGormOrderRepository(c.gormDB),
		courierrepo.NewGormCourierRepository(c.gormDB),
		c.matcher,
		c.config.DispatchRadiusKm,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncPaymentUoWFactory func() commands.PaymentUoW

func (f FuncPaymentUoWFactory) Create() commands.PaymentUoW {
	return f()
}
