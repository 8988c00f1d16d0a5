// filepath: internal/repository/inventory_repo.go
package repository

import (
	"database/sql"

	"woodbank/internal/models"
	"woodbank/internal/shared"
)

// GetInventoryCategories returns all inventory categories.
func (s *Repository) GetInventoryCategories() ([]models.InventoryCategory, error) {
	rows, err := s.DB.Query("SELECT id, name FROM inventory_categories ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]models.InventoryCategory, 0)
	for rows.Next() {
		var c models.InventoryCategory
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// GetItemsByCategory returns the items in a category, by category name.
func (s *Repository) GetItemsByCategory(category string) ([]models.InventoryItem, error) {
	query := `
		SELECT i.id, c.name, i.name, i.quantity
		FROM inventory_items i
		JOIN inventory_categories c ON c.id = i.category_id
		WHERE c.name = ?
		ORDER BY i.name
	`
	rows, err := s.DB.Query(query, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.InventoryItem, 0)
	for rows.Next() {
		var item models.InventoryItem
		if err := rows.Scan(&item.ID, &item.Category, &item.Name, &item.Quantity); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetInventoryItem retrieves a single item by id.
func (s *Repository) GetInventoryItem(id int64) (*models.InventoryItem, error) {
	query := `
		SELECT i.id, c.name, i.name, i.quantity
		FROM inventory_items i
		JOIN inventory_categories c ON c.id = i.category_id
		WHERE i.id = ?
	`
	var item models.InventoryItem
	err := s.DB.QueryRow(query, id).Scan(&item.ID, &item.Category, &item.Name, &item.Quantity)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, shared.ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

// AdjustItemQuantity adds delta (which may be negative) to an item's count.
// The count never drops below zero.
func (s *Repository) AdjustItemQuantity(id int64, delta int) error {
	result, err := s.DB.Exec(
		"UPDATE inventory_items SET quantity = MAX(0, quantity + ?) WHERE id = ?",
		delta, id,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return shared.ErrItemNotFound
	}
	return nil
}
