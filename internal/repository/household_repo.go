// filepath: internal/repository/household_repo.go
package repository

import (
	"database/sql"

	"woodbank/internal/models"
	"woodbank/internal/shared"
)

// CreateHousehold inserts a new household record.
func (s *Repository) CreateHousehold(h *models.Household) (*models.Household, error) {
	query := `
		INSERT INTO households (name, address, city, phone, secondary_phone, email, wood_size, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := s.DB.Exec(query, h.Name, h.Address, h.City, h.Phone, h.SecondaryPhone, h.Email, h.WoodSize, h.Notes)
	if err != nil {
		return nil, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	h.ID = id
	return h, nil
}

// GetHousehold retrieves a single household by id.
func (s *Repository) GetHousehold(id int64) (*models.Household, error) {
	query := `
		SELECT id, name, address, city, phone, secondary_phone, email, wood_size, notes, created_at
		FROM households WHERE id = ?
	`
	var h models.Household
	err := s.DB.QueryRow(query, id).Scan(
		&h.ID, &h.Name, &h.Address, &h.City, &h.Phone,
		&h.SecondaryPhone, &h.Email, &h.WoodSize, &h.Notes, &h.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, shared.ErrHouseholdNotFound
		}
		return nil, err
	}
	return &h, nil
}

// ListHouseholds returns households, optionally filtered by a search term
// matched against name and city.
func (s *Repository) ListHouseholds(search string) ([]models.Household, error) {
	builder := s.Builder.
		Select("id", "name", "address", "city", "phone", "secondary_phone", "email", "wood_size", "notes", "created_at").
		From("households").
		OrderBy("name")

	if search != "" {
		pattern := "%" + search + "%"
		builder = builder.Where("name LIKE ? OR city LIKE ?", pattern, pattern)
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

	households := make([]models.Household, 0)
	for rows.Next() {
		var h models.Household
		if err := rows.Scan(&h.ID, &h.Name, &h.Address, &h.City, &h.Phone,
			&h.SecondaryPhone, &h.Email, &h.WoodSize, &h.Notes, &h.CreatedAt); err != nil {
			return nil, err
		}
		households = append(households, h)
	}
	return households, rows.Err()
}

// UpdateHousehold updates a household's contact and delivery details.
func (s *Repository) UpdateHousehold(h *models.Household) error {
	query := `
		UPDATE households
		SET name = ?, address = ?, city = ?, phone = ?, secondary_phone = ?, email = ?, wood_size = ?, notes = ?
		WHERE id = ?
	`
	result, err := s.DB.Exec(query, h.Name, h.Address, h.City, h.Phone, h.SecondaryPhone, h.Email, h.WoodSize, h.Notes, h.ID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return shared.ErrHouseholdNotFound
	}
	return nil
}

// DeleteHousehold deletes a household by id.
func (s *Repository) DeleteHousehold(id int64) error {
	result, err := s.DB.Exec("DELETE FROM households WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return shared.ErrHouseholdNotFound
	}
	return nil
}
