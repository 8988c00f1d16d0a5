// filepath: internal/repository/seed.go
package repository

import (
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Seed data lives here as declarative records; the routines below only know
// how to insert a record if it is absent. Seeding runs once, in the
// migration step that introduces the feature.

// defaultAccount describes one fixed login account created on first run.
type defaultAccount struct {
	Username    string
	Password    string
	Role        string
	DisplayName string
	Email       string
}

var defaultAccounts = []defaultAccount{
	{"admin", "admin", "admin", "Administrator", "admin@woodbank.local"},
	{"lead", "lead", "lead", "Crew Lead", "lead@woodbank.local"},
	{"user", "user", "employee", "Office Employee", "office@woodbank.local"},
	{"volunteer", "volunteer", "volunteer", "Volunteer", "volunteer@woodbank.local"},
}

var defaultEquipment = []struct {
	Name                 string
	ServiceIntervalHours float64
}{
	{"Log splitter", 50},
	{"Chainsaw", 25},
	{"Delivery truck", 200},
}

var defaultCategories = []struct {
	Name  string
	Items []string
}{
	{"Safety Gear", []string{"Work gloves", "Safety glasses", "Ear protection"}},
	{"Saw Supplies", []string{"Bar oil", "2-cycle mix", "Replacement chains"}},
	{"Office", []string{"Delivery forms", "Receipt books"}},
}

var sampleScheduleSlots = []struct {
	Date        string
	Start, End  string
	Capacity    int
	Description string
}{
	{"2024-01-06", "09:00", "12:00", 6, "Saturday morning splitting"},
	{"2024-01-06", "13:00", "16:00", 4, "Saturday afternoon deliveries"},
	{"2024-01-13", "09:00", "12:00", 6, "Stacking and yard cleanup"},
}

// seedDefaultAccounts inserts the fixed role accounts, hashing each password
// with bcrypt. Existing usernames are skipped, never overwritten.
func seedDefaultAccounts(tx *sql.Tx) error {
	for _, account := range defaultAccounts {
		var exists bool
		err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)`, account.Username).Scan(&exists)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(account.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password for %q: %w", account.Username, err)
		}
		_, err = tx.Exec(`INSERT INTO users (username, password_hash, role, display_name, email) VALUES (?, ?, ?, ?, ?)`,
			account.Username, string(hash), account.Role, account.DisplayName, account.Email)
		if err != nil {
			return fmt.Errorf("failed to seed account %q: %w", account.Username, err)
		}
	}
	return nil
}

func seedDefaultEquipment(tx *sql.Tx) error {
	for _, eq := range defaultEquipment {
		var exists bool
		err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM equipment WHERE name = ?)`, eq.Name).Scan(&exists)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		_, err = tx.Exec(`INSERT INTO equipment (name, service_interval_hours) VALUES (?, ?)`,
			eq.Name, eq.ServiceIntervalHours)
		if err != nil {
			return fmt.Errorf("failed to seed equipment %q: %w", eq.Name, err)
		}
	}
	return nil
}

func seedDefaultCategories(tx *sql.Tx) error {
	for _, category := range defaultCategories {
		if _, err := tx.Exec(`INSERT OR IGNORE INTO inventory_categories (name) VALUES (?)`, category.Name); err != nil {
			return fmt.Errorf("failed to seed category %q: %w", category.Name, err)
		}
		var categoryID int64
		if err := tx.QueryRow(`SELECT id FROM inventory_categories WHERE name = ?`, category.Name).Scan(&categoryID); err != nil {
			return err
		}
		for _, item := range category.Items {
			var exists bool
			err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM inventory_items WHERE category_id = ? AND name = ?)`,
				categoryID, item).Scan(&exists)
			if err != nil {
				return err
			}
			if exists {
				continue
			}
			if _, err := tx.Exec(`INSERT INTO inventory_items (category_id, name, quantity) VALUES (?, ?, 0)`,
				categoryID, item); err != nil {
				return fmt.Errorf("failed to seed item %q: %w", item, err)
			}
		}
	}
	return nil
}

func seedSampleSchedule(tx *sql.Tx) error {
	for _, slot := range sampleScheduleSlots {
		var exists bool
		err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM work_schedule WHERE slot_date = ? AND start_time = ?)`,
			slot.Date, slot.Start).Scan(&exists)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		_, err = tx.Exec(`INSERT INTO work_schedule (slot_date, start_time, end_time, capacity, description) VALUES (?, ?, ?, ?, ?)`,
			slot.Date, slot.Start, slot.End, slot.Capacity, slot.Description)
		if err != nil {
			return fmt.Errorf("failed to seed schedule slot on %s: %w", slot.Date, err)
		}
	}
	return nil
}
