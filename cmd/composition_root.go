package cmd

import (
	"barrieredi/internal/adapters/out/postgres"
	"barrieredi/internal/core/application/usecases/commands"
	"barrieredi/internal/core/application/usecases/queries"
	"barrieredi/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	clock      kernel.Clock
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		clock:      kernel.NewSystemClock(),
	}
}

func (c *CompositionRoot) CreateImportOrderCommandHandler() commands.ImportOrderCommandHandler {
	var f commands.ImportUoWFactory = FuncImportUoWFactory(func() commands.ImportUoW {
		return c.uowFactory.Create()
	})
	return commands.NewImportOrderCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateSyncOrdersCommandHandler() commands.SyncOrdersCommandHandler {
	importer := c.CreateImportOrderCommandHandler()
	return commands.NewSyncOrdersCommandHandler(&importer)
}

func (c *CompositionRoot) CreateCreatePartnerCommandHandler() commands.CreatePartnerCommandHandler {
	var f commands.PartnerUoWFactory = FuncPartnerUoWFactory(func() commands.PartnerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreatePartnerCommandHandler(f)
}

func (c *CompositionRoot) CreateRegeneratePartnerCodeCommandHandler() commands.RegeneratePartnerCodeCommandHandler {
	var f commands.PartnerUoWFactory = FuncPartnerUoWFactory(func() commands.PartnerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegeneratePartnerCodeCommandHandler(f)
}

func (c *CompositionRoot) CreateAuthenticatePartnerCommandHandler() commands.AuthenticatePartnerCommandHandler {
	var f commands.PartnerUoWFactory = FuncPartnerUoWFactory(func() commands.PartnerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAuthenticatePartnerCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateCreateDeliveryCommandHandler() commands.CreateDeliveryCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateDeliveryCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateValidateDeliveryCommandHandler() commands.ValidateDeliveryCommandHandler {
	var f commands.ValidationUoWFactory = FuncValidationUoWFactory(func() commands.ValidationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewValidateDeliveryCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRemainingQuantitiesQueryHandler() queries.GetRemainingQuantitiesQueryHandler {
	return queries.NewGetRemainingQuantitiesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderCompletionQueryHandler() queries.GetOrderCompletionQueryHandler {
	return queries.NewGetOrderCompletionQueryHandler(c.gormDB)
}

type FuncPartnerUoWFactory func() commands.PartnerUoW

func (f FuncPartnerUoWFactory) Create() commands.PartnerUoW {
	return f()
}

type FuncImportUoWFactory func() commands.ImportUoW

func (f FuncImportUoWFactory) Create() commands.ImportUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncValidationUoWFactory func() commands.ValidationUoW

func (f FuncValidationUoWFactory) Create() commands.ValidationUoW {
	return f()
}
