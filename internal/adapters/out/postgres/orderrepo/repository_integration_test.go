package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/adapters/out/postgres/orderrepo"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/kernel"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/order"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OrderRepositoryIntegrationTestSuite verifies order persistence against a
// real PostgreSQL instance, including the history table round-trip.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
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

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.TransitionDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_Get_RoundTrip() {
	ctx := context.Background()

	original := suite.createPendingOrder()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), retrieved.ID())
	suite.Equal(original.ClientID(), retrieved.ClientID())
	suite.Equal(order.Pending, retrieved.Status())
	suite.Nil(retrieved.Courier())
	suite.Equal(original.PickupAddress(), retrieved.PickupAddress())
	suite.Equal(original.ConfirmationCode(), retrieved.ConfirmationCode())
	suite.InDelta(original.Pickup().Latitude(), retrieved.Pickup().Latitude(), 1e-9)
	suite.True(original.Pricing().TotalPrice().Equal(retrieved.Pricing().TotalPrice()))
	suite.True(original.Pricing().CourierEarnings().Equal(retrieved.Pricing().CourierEarnings()))
	suite.Equal(original.Attributes(), retrieved.Attributes())
	suite.Empty(retrieved.History())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsTransitionHistory() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	aggregate := suite.createPendingOrder()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	courierID := kernel.NewUUID()
	suite.Require().NoError(aggregate.Assign(courierID, now))
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	courierActor, err := order.NewActor(courierID, order.RoleCourier)
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.MarkPickedUp(courierActor, "at the restaurant", nil, now.Add(5*time.Minute)))
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	retrieved, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	suite.Equal(order.PickedUp, retrieved.Status())
	suite.Require().NotNil(retrieved.Courier())
	suite.Equal(courierID, *retrieved.Courier())

	suite.Require().Len(retrieved.History(), 2)
	suite.Equal(order.Pending, retrieved.History()[0].Previous())
	suite.Equal(order.Assigned, retrieved.History()[0].Next())
	suite.Equal(order.PickedUp, retrieved.History()[1].Next())
	suite.Equal("at the restaurant", retrieved.History()[1].Note())
	suite.Equal(order.RoleCourier, retrieved.History()[1].Actor().Role())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ReplayedHistoryRowsAreIgnored() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	aggregate := suite.createPendingOrder()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))
	suite.Require().NoError(aggregate.Assign(kernel.NewUUID(), now))

	// Two updates of the same aggregate state must not duplicate rows.
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.TransitionDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsError() {
	err := suite.repository.Update(context.Background(), suite.createPendingOrder())

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllPending_ReturnsBacklogOldestFirst() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	older := suite.createPendingOrderAt(now.Add(-time.Hour))
	newer := suite.createPendingOrderAt(now)
	claimed := suite.createPendingOrderAt(now.Add(-2 * time.Hour))

	suite.Require().NoError(suite.repository.Add(ctx, older))
	suite.Require().NoError(suite.repository.Add(ctx, newer))
	suite.Require().NoError(claimed.Assign(kernel.NewUUID(), now))
	suite.Require().NoError(suite.repository.Add(ctx, claimed))

	backlog, err := suite.repository.GetAllPending(ctx)
	suite.Require().NoError(err)

	suite.Require().Len(backlog, 2)
	suite.Equal(older.ID(), backlog[0].ID())
	suite.Equal(newer.ID(), backlog[1].ID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllActiveByClient_FiltersTerminalAndForeignOrders() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	clientID := kernel.NewUUID()

	mine := suite.createPendingOrderFor(clientID, now)
	suite.Require().NoError(suite.repository.Add(ctx, mine))

	cancelled := suite.createPendingOrderFor(clientID, now)
	actor, err := order.NewActor(clientID, order.RoleClient)
	suite.Require().NoError(err)
	suite.Require().NoError(cancelled.Cancel(actor, "changed my mind", now))
	suite.Require().NoError(suite.repository.Add(ctx, cancelled))

	foreign := suite.createPendingOrder()
	suite.Require().NoError(suite.repository.Add(ctx, foreign))

	active, err := suite.repository.GetAllActiveByClient(ctx, clientID)
	suite.Require().NoError(err)

	suite.Require().Len(active, 1)
	suite.Equal(mine.ID(), active[0].ID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestCountActiveByCourier() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	courierID := kernel.NewUUID()

	carrying := suite.createPendingOrder()
	suite.Require().NoError(carrying.Assign(courierID, now))
	suite.Require().NoError(suite.repository.Add(ctx, carrying))

	delivered := suite.createPendingOrder()
	suite.Require().NoError(delivered.Assign(courierID, now))
	courierActor, err := order.NewActor(courierID, order.RoleCourier)
	suite.Require().NoError(err)
	suite.Require().NoError(delivered.MarkPickedUp(courierActor, "", nil, now))
	suite.Require().NoError(delivered.Deliver(courierActor, delivered.ConfirmationCode(), "", nil, now))
	suite.Require().NoError(suite.repository.Add(ctx, delivered))

	count, err := suite.repository.CountActiveByCourier(ctx, courierID)
	suite.Require().NoError(err)
	suite.Equal(1, count)

	count, err = suite.repository.CountActiveByCourier(ctx, kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Zero(count)
}

func (suite *OrderRepositoryIntegrationTestSuite) createPendingOrder() *order.Order {
	return suite.createPendingOrderFor(kernel.NewUUID(), time.Now().UTC().Truncate(time.Second))
}

func (suite *OrderRepositoryIntegrationTestSuite) createPendingOrderAt(createdAt time.Time) *order.Order {
	return suite.createPendingOrderFor(kernel.NewUUID(), createdAt)
}

func (suite *OrderRepositoryIntegrationTestSuite) createPendingOrderFor(
	clientID kernel.UUID, createdAt time.Time,
) *order.Order {
	pickup, err := kernel.NewGeoPoint(12.3714, -1.5197)
	suite.Require().NoError(err)
	dropoff, err := kernel.NewGeoPoint(12.3580, -1.5350)
	suite.Require().NoError(err)

	pricing, err := order.NewPricing(
		decimal.NewFromInt(500), decimal.NewFromInt(750), decimal.NewFromFloat(0.2))
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), clientID,
		pickup, dropoff,
		"Avenue Kwame Nkrumah", "Rue de la Chance",
		order.Attributes{OrderType: order.TypeParcel, WeightKg: 2},
		pricing,
		"4217",
		createdAt,
	)
	suite.Require().NoError(err)
	return aggregate
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
