package cmd

import (
	"log/slog"

	"gorm.io/gorm"

	httpadapter "clinicalorders/internal/adapters/in/http"
	"clinicalorders/internal/adapters/out/postgres"
	"clinicalorders/internal/adapters/out/postgres/referencerepo"
	"clinicalorders/internal/adapters/out/postgres/sequencerepo"
	"clinicalorders/internal/core/application/usecases/commands"
	"clinicalorders/internal/core/application/usecases/queries"
	"clinicalorders/internal/core/domain/services"
	"clinicalorders/internal/jobs"
	"clinicalorders/internal/observability/metrics"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	sequence   *sequencerepo.GormOrderNumberSequence
	metrics    *metrics.Metrics
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		sequence:   sequencerepo.NewGormOrderNumberSequence(gormDB),
		metrics:    metrics.New(),
	}
}

func (c *CompositionRoot) Metrics() *metrics.Metrics {
	return c.metrics
}

func (c *CompositionRoot) OrderNumberSequence() *sequencerepo.GormOrderNumberSequence {
	return c.sequence
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})

	return commands.NewPlaceOrderCommandHandler(
		f,
		services.NewBasicOrderValidator(),
		sequencerepo.NewSequentialOrderNumberGenerator(c.sequence),
	)
}

func (c *CompositionRoot) CreateDiscontinueOrderCommandHandler() commands.DiscontinueOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})

	return commands.NewDiscontinueOrderCommandHandler(f, c.CreatePlaceOrderCommandHandler())
}

func (c *CompositionRoot) CreateVoidOrderCommandHandler() commands.VoidOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})

	return commands.NewVoidOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateUnvoidOrderCommandHandler() commands.UnvoidOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})

	return commands.NewUnvoidOrderCommandHandler(f)
}

func (c *CompositionRoot) CreatePurgeOrderCommandHandler() commands.PurgeOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})

	return commands.NewPurgeOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllOrdersByPatientQueryHandler() queries.GetAllOrdersByPatientQueryHandler {
	return queries.NewGetAllOrdersByPatientQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() (queries.GetOrderHistoryQueryHandler, error) {
	// The chain resolver reads outside any transaction
	uow := c.uowFactory.Create()
	return queries.NewGetOrderHistoryQueryHandler(uow.OrderRepository())
}

func (c *CompositionRoot) CreateGetOrderHistoryByConceptQueryHandler() queries.GetOrderHistoryByConceptQueryHandler {
	return queries.NewGetOrderHistoryByConceptQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateCountExpiredOrdersQueryHandler() queries.CountExpiredOrdersQueryHandler {
	return queries.NewCountExpiredOrdersQueryHandler(c.gormDB)
}

// CreateHTTPServer assembles the REST adapter over all handlers.
func (c *CompositionRoot) CreateHTTPServer() (*httpadapter.Server, error) {
	historyHandler, err := c.CreateGetOrderHistoryQueryHandler()
	if err != nil {
		return nil, err
	}

	return httpadapter.NewServer(
		c.CreatePlaceOrderCommandHandler(),
		c.CreateDiscontinueOrderCommandHandler(),
		c.CreateVoidOrderCommandHandler(),
		c.CreateUnvoidOrderCommandHandler(),
		c.CreatePurgeOrderCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetActiveOrdersQueryHandler(),
		c.CreateGetOrdersQueryHandler(),
		c.CreateGetAllOrdersByPatientQueryHandler(),
		historyHandler,
		c.CreateGetOrderHistoryByConceptQueryHandler(),
		referencerepo.NewGormReferenceRepository(c.gormDB),
		c.metrics,
	), nil
}

// CreateJobManager assembles the background jobs.
func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(c.CreateCountExpiredOrdersQueryHandler(), c.metrics, logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
