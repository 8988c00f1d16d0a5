// filepath: internal/repository/order_repo.go
package repository

import (
	"database/sql"
	"time"

	"woodbank/internal/models"
	"woodbank/internal/shared"

	"github.com/oklog/ulid/v2"
)

// CreateWorkOrder inserts a new work order for a household, assigning it a
// ULID so order IDs sort by creation time.
func (s *Repository) CreateWorkOrder(o *models.WorkOrder) (*models.WorkOrder, error) {
	o.ID = ulid.Make().String()
	if o.Status == "" {
		o.Status = models.OrderStatusOpen
	}

	query := `
		INSERT INTO work_orders (id, household_id, status, cords, scheduled_on, notes)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	var scheduled interface{}
	if o.ScheduledOn != "" {
		scheduled = o.ScheduledOn
	}
	if _, err := s.DB.Exec(query, o.ID, o.HouseholdID, o.Status, o.Cords, scheduled, o.Notes); err != nil {
		return nil, err
	}
	return o, nil
}

// GetWorkOrder retrieves a single work order by id.
func (s *Repository) GetWorkOrder(id string) (*models.WorkOrder, error) {
	query := `
		SELECT id, household_id, status, cords, COALESCE(scheduled_on, ''), notes, created_at, delivered_at
		FROM work_orders WHERE id = ?
	`
	var o models.WorkOrder
	var deliveredAt sql.NullTime
	err := s.DB.QueryRow(query, id).Scan(
		&o.ID, &o.HouseholdID, &o.Status, &o.Cords, &o.ScheduledOn, &o.Notes, &o.CreatedAt, &deliveredAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, shared.ErrOrderNotFound
		}
		return nil, err
	}
	if deliveredAt.Valid {
		o.DeliveredAt = &deliveredAt.Time
	}
	return &o, nil
}

// ListWorkOrders returns work orders, optionally filtered by status.
func (s *Repository) ListWorkOrders(status string) ([]models.WorkOrder, error) {
	builder := s.Builder.
		Select("id", "household_id", "status", "cords", "COALESCE(scheduled_on, '')", "notes", "created_at", "delivered_at").
		From("work_orders").
		OrderBy("created_at")

	if status != "" {
		builder = builder.Where("status = ?", status)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]models.WorkOrder, 0)
	for rows.Next() {
		var o models.WorkOrder
		var deliveredAt sql.NullTime
		if err := rows.Scan(&o.ID, &o.HouseholdID, &o.Status, &o.Cords, &o.ScheduledOn, &o.Notes, &o.CreatedAt, &deliveredAt); err != nil {
			return nil, err
		}
		if deliveredAt.Valid {
			o.DeliveredAt = &deliveredAt.Time
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// UpdateOrderStatus moves a work order to a new status.
func (s *Repository) UpdateOrderStatus(id, status string) error {
	result, err := s.DB.Exec("UPDATE work_orders SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return shared.ErrOrderNotFound
	}
	return nil
}

// MarkDelivered records a completed delivery on the order itself.
func (s *Repository) MarkDelivered(id string) error {
	result, err := s.DB.Exec(
		"UPDATE work_orders SET status = ?, delivered_at = ? WHERE id = ?",
		models.OrderStatusDelivered, time.Now(), id,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return shared.ErrOrderNotFound
	}
	return nil
}
