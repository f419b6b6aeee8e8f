package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/adapters/out/postgres"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/adapters/out/postgres/courierrepo"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/adapters/out/postgres/orderrepo"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/adapters/out/postgres/paymentrepo"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/courier"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/kernel"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies that the order/courier double
// write of an assignment commits atomically or not at all.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *pgcontainer.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{}, &orderrepo.TransitionDTO{},
		&courierrepo.CourierDTO{}, &courierrepo.AssignmentOutcomeDTO{},
		&paymentrepo.PaymentDTO{},
	))

	suite.factory = postgres.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, couriers, payments CASCADE").Error)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsBothSidesOfAnAssignment() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	aggregate, claimant := suite.seedPendingOrderAndCourier(ctx, now)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(claimant.BeginDelivery())
	suite.Require().NoError(aggregate.Assign(claimant.ID(), now))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, aggregate))
	suite.Require().NoError(uow.CourierRepository().Update(ctx, claimant))
	suite.Require().NoError(uow.Commit(ctx))

	// Rollback after commit must be a harmless no-op.
	suite.Require().NoError(uow.Rollback(ctx))

	reread := suite.factory.Create()
	persistedOrder, err := reread.OrderRepository().Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	persistedCourier, err := reread.CourierRepository().Get(ctx, claimant.ID())
	suite.Require().NoError(err)

	suite.Equal(order.Assigned, persistedOrder.Status())
	suite.Require().NotNil(persistedOrder.Courier())
	suite.Equal(claimant.ID(), *persistedOrder.Courier())
	suite.Equal(1, persistedCourier.ActiveOrderCount())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsBothSidesOfAnAssignment() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	aggregate, claimant := suite.seedPendingOrderAndCourier(ctx, now)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(claimant.BeginDelivery())
	suite.Require().NoError(aggregate.Assign(claimant.ID(), now))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, aggregate))
	suite.Require().NoError(uow.CourierRepository().Update(ctx, claimant))
	suite.Require().NoError(uow.Rollback(ctx))

	reread := suite.factory.Create()
	persistedOrder, err := reread.OrderRepository().Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	persistedCourier, err := reread.CourierRepository().Get(ctx, claimant.ID())
	suite.Require().NoError(err)

	suite.Equal(order.Pending, persistedOrder.Status())
	suite.Nil(persistedOrder.Courier())
	suite.Zero(persistedCourier.ActiveOrderCount())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WithoutBegin_Fails() {
	uow := suite.factory.Create()
	suite.Require().Error(uow.Commit(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) seedPendingOrderAndCourier(
	ctx context.Context, now time.Time,
) (*order.Order, *courier.Courier) {
	pickup, err := kernel.NewGeoPoint(12.3714, -1.5197)
	suite.Require().NoError(err)
	dropoff, err := kernel.NewGeoPoint(12.3580, -1.5350)
	suite.Require().NoError(err)

	pricing, err := order.NewPricing(
		decimal.NewFromInt(500), decimal.NewFromInt(750), decimal.NewFromFloat(0.2))
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(),
		pickup, dropoff,
		"Avenue Kwame Nkrumah", "Rue de la Chance",
		order.Attributes{OrderType: order.TypeParcel, WeightKg: 2},
		pricing,
		"4217",
		now,
	)
	suite.Require().NoError(err)

	claimant, err := courier.NewCourier(kernel.NewUUID(), "Issouf", "+22670010203", courier.VehicleMotorcycle)
	suite.Require().NoError(err)
	pos, err := kernel.NewGeoPoint(12.3720, -1.5200)
	suite.Require().NoError(err)
	suite.Require().NoError(claimant.UpdatePosition(pos, now))
	suite.Require().NoError(claimant.GoOnline())

	seed := suite.factory.Create()
	suite.Require().NoError(seed.Begin(ctx))
	suite.Require().NoError(seed.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(seed.CourierRepository().Add(ctx, claimant))
	suite.Require().NoError(seed.Commit(ctx))

	return aggregate, claimant
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
