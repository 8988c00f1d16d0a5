// filepath: internal/repository/order_repo_test.go
package repository

import (
	"testing"

	"woodbank/internal/models"
	"woodbank/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHousehold(t *testing.T, repo *Repository) *models.Household {
	t.Helper()
	h, err := repo.CreateHousehold(&models.Household{Name: "Test Household", City: "Fairbanks"})
	require.NoError(t, err)
	return h
}

func TestWorkOrderLifecycle(t *testing.T) {
	repo := newMigratedRepo(t, "test_order_lifecycle.db")
	household := testHousehold(t, repo)

	created, err := repo.CreateWorkOrder(&models.WorkOrder{
		HouseholdID: household.ID,
		Cords:       1.5,
		Notes:       "back porch drop",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, models.OrderStatusOpen, created.Status, "orders default to open")

	got, err := repo.GetWorkOrder(created.ID)
	require.NoError(t, err)
	assert.Equal(t, household.ID, got.HouseholdID)
	assert.Equal(t, 1.5, got.Cords)
	assert.Empty(t, got.ScheduledOn)
	assert.Nil(t, got.DeliveredAt)

	require.NoError(t, repo.UpdateOrderStatus(created.ID, models.OrderStatusScheduled))
	require.NoError(t, repo.MarkDelivered(created.ID))

	delivered, err := repo.GetWorkOrder(created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, delivered.Status)
	require.NotNil(t, delivered.DeliveredAt)
	assert.False(t, delivered.DeliveredAt.IsZero())
}

func TestWorkOrderNotFound(t *testing.T) {
	repo := newMigratedRepo(t, "test_order_missing.db")

	_, err := repo.GetWorkOrder("no-such-order")
	assert.ErrorIs(t, err, shared.ErrOrderNotFound)
	assert.ErrorIs(t, repo.UpdateOrderStatus("no-such-order", models.OrderStatusCancelled), shared.ErrOrderNotFound)
	assert.ErrorIs(t, repo.MarkDelivered("no-such-order"), shared.ErrOrderNotFound)
}

func TestListWorkOrders(t *testing.T) {
	repo := newMigratedRepo(t, "test_order_list.db")
	household := testHousehold(t, repo)

	first, err := repo.CreateWorkOrder(&models.WorkOrder{HouseholdID: household.ID, Cords: 1})
	require.NoError(t, err)
	second, err := repo.CreateWorkOrder(&models.WorkOrder{
		HouseholdID: household.ID,
		Cords:       2,
		Status:      models.OrderStatusScheduled,
		ScheduledOn: "2024-02-10",
	})
	require.NoError(t, err)

	all, err := repo.ListWorkOrders("")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	scheduled, err := repo.ListWorkOrders(models.OrderStatusScheduled)
	require.NoError(t, err)
	require.Len(t, scheduled, 1)
	assert.Equal(t, second.ID, scheduled[0].ID)
	assert.Equal(t, "2024-02-10", scheduled[0].ScheduledOn)

	open, err := repo.ListWorkOrders(models.OrderStatusOpen)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, first.ID, open[0].ID)
}

func TestLogDelivery(t *testing.T) {
	repo := newMigratedRepo(t, "test_delivery_log.db")
	household := testHousehold(t, repo)

	order, err := repo.CreateWorkOrder(&models.WorkOrder{HouseholdID: household.ID, Cords: 1})
	require.NoError(t, err)

	logged, err := repo.LogDelivery(&models.Delivery{
		OrderID:       order.ID,
		Driver:        "Sam",
		DeliveredOn:   "2024-02-11",
		OdometerStart: 1200.5,
		OdometerEnd:   1234.0,
	})
	require.NoError(t, err)
	require.NotEmpty(t, logged.ID)
	assert.InDelta(t, 33.5, logged.Mileage, 0.001)

	t.Run("Rejects Reversed Odometer", func(t *testing.T) {
		_, err := repo.LogDelivery(&models.Delivery{
			OrderID:       order.ID,
			DeliveredOn:   "2024-02-11",
			OdometerStart: 100,
			OdometerEnd:   50,
		})
		assert.Error(t, err)
	})

	deliveries, err := repo.ListDeliveries()
	require.NoError(t, err)
	require.Len(t, deliveries, 1)
	assert.Equal(t, order.ID, deliveries[0].OrderID)
	assert.InDelta(t, 33.5, deliveries[0].Mileage, 0.001)
}
