// filepath: internal/repository/delivery_repo.go
package repository

import (
	"fmt"

	"woodbank/internal/models"

	"github.com/oklog/ulid/v2"
)

// LogDelivery records a completed delivery against a work order. The
// odometer pair must be ordered; mileage is derived when reading, never
// stored.
func (s *Repository) LogDelivery(d *models.Delivery) (*models.Delivery, error) {
	if d.OdometerEnd < d.OdometerStart {
		return nil, fmt.Errorf("odometer end %.1f precedes start %.1f", d.OdometerEnd, d.OdometerStart)
	}
	d.ID = ulid.Make().String()

	query := `
		INSERT INTO delivery_log (id, order_id, driver, delivered_on, odometer_start, odometer_end, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := s.DB.Exec(query, d.ID, d.OrderID, d.Driver, d.DeliveredOn, d.OdometerStart, d.OdometerEnd, d.Notes); err != nil {
		return nil, err
	}
	d.Mileage = d.OdometerEnd - d.OdometerStart
	return d, nil
}

// ListDeliveries returns the delivery log with mileage computed per entry.
func (s *Repository) ListDeliveries() ([]models.Delivery, error) {
	query := `
		SELECT id, order_id, driver, delivered_on, odometer_start, odometer_end,
			odometer_end - odometer_start AS mileage, notes
		FROM delivery_log
		ORDER BY delivered_on, id
	`
	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deliveries := make([]models.Delivery, 0)
	for rows.Next() {
		var d models.Delivery
		if err := rows.Scan(&d.ID, &d.OrderID, &d.Driver, &d.DeliveredOn,
			&d.OdometerStart, &d.OdometerEnd, &d.Mileage, &d.Notes); err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}
	return deliveries, rows.Err()
}
