//go:build integration

package db_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/ammerola/warehouse/internal/adapters/db"
	"github.com/ammerola/warehouse/internal/core/domain"
	"github.com/ammerola/warehouse/internal/core/ports"
	"github.com/ammerola/warehouse/test/helpers"
)

type InventoryStoreIntegrationSuite struct {
	suite.Suite
	testDB *helpers.TestDB
	store  ports.InventoryStore
	ctx    context.Context
}

func (s *InventoryStoreIntegrationSuite) SetupSuite() {
	s.testDB = helpers.SetupTestDB(s.T())
	s.store = db.NewInventoryStore(s.testDB.Database, helpers.TestLogger())
	s.ctx = context.Background()
}

func (s *InventoryStoreIntegrationSuite) SetupTest() {
	s.Require().NoError(s.store.Save(s.ctx, domain.NewInventory()))
}

func (s *InventoryStoreIntegrationSuite) TestRoundTrip() {
	inv := helpers.CreateTestInventory()

	s.Require().NoError(s.store.Save(s.ctx, inv))

	loaded, err := s.store.Load(s.ctx)
	s.Require().NoError(err)
	helpers.AssertInventoryEqual(s.T(), inv, loaded)
}

func (s *InventoryStoreIntegrationSuite) TestPricePrecisionSurvives() {
	inv := domain.Inventory{
		"precise": {Quantity: 1, Price: decimal.RequireFromString("1234567.89")},
	}

	s.Require().NoError(s.store.Save(s.ctx, inv))

	loaded, err := s.store.Load(s.ctx)
	s.Require().NoError(err)
	rec, ok := loaded.Get("precise")
	s.Require().True(ok)
	s.True(decimal.RequireFromString("1234567.89").Equal(rec.Price), "got %s", rec.Price)
}

func (s *InventoryStoreIntegrationSuite) TestSaveReplacesContents() {
	s.Require().NoError(s.store.Save(s.ctx, helpers.CreateTestInventoryOfSize(600)))
	s.Require().NoError(s.store.Save(s.ctx, helpers.CreateTestInventoryOfSize(2)))

	loaded, err := s.store.Load(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, loaded.Len())
}

func (s *InventoryStoreIntegrationSuite) TestHealth() {
	health := s.testDB.Database.Health(s.ctx)
	s.Equal("healthy", health["status"])
}

func TestInventoryStoreIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(InventoryStoreIntegrationSuite))
}
