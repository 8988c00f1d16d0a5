// filepath: internal/repository/migrations.go
package repository

import (
	"database/sql"
	"fmt"
)

// failurePolicy controls how the migration runner reacts when an operation
// fails.
type failurePolicy int

const (
	// policyFatal aborts the whole run and rolls back everything.
	policyFatal failurePolicy = iota
	// policyTolerated logs and continues. Used for ALTER TABLE / CREATE INDEX
	// statements that legitimately fail when a prior partial run already
	// applied them.
	policyTolerated
	// policySeed logs and continues. Seed failures cost default content, not
	// schema integrity.
	policySeed
)

// operation is one statement or routine within a migration step.
type operation struct {
	desc   string
	policy failurePolicy
	run    func(tx *sql.Tx) error
}

// ddl wraps a schema statement whose failure is fatal.
func ddl(desc, stmt string) operation {
	return operation{desc: desc, policy: policyFatal, run: execStmt(stmt)}
}

// alter wraps a statement whose failure is tolerated, typically an
// ALTER TABLE ADD COLUMN re-applied after a partial run.
func alter(desc, stmt string) operation {
	return operation{desc: desc, policy: policyTolerated, run: execStmt(stmt)}
}

// seed wraps a default-data routine. Failures are logged as warnings.
func seed(desc string, fn func(tx *sql.Tx) error) operation {
	return operation{desc: desc, policy: policySeed, run: fn}
}

func execStmt(stmt string) func(tx *sql.Tx) error {
	return func(tx *sql.Tx) error {
		_, err := tx.Exec(stmt)
		return err
	}
}

// migrationStep is one ordinal unit of schema evolution.
type migrationStep struct {
	version int
	name    string
	ops     []operation
}

// steps is the fixed, ordered migration sequence. Later steps may read
// tables created by earlier ones (step 9 reads the legacy inventory table
// from step 2), so the order must never change.
var steps = []migrationStep{
	{
		version: 1,
		name:    "create_households",
		ops: []operation{
			ddl("create households table", `
				CREATE TABLE IF NOT EXISTS households (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					name TEXT NOT NULL CHECK(length(name) > 0),
					address TEXT NOT NULL DEFAULT '',
					city TEXT NOT NULL DEFAULT '',
					phone TEXT NOT NULL DEFAULT '',
					wood_size TEXT NOT NULL DEFAULT '',
					notes TEXT NOT NULL DEFAULT '',
					created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
				)`),
			ddl("index households by name",
				`CREATE INDEX IF NOT EXISTS idx_households_name ON households(name)`),
		},
	},
	{
		version: 2,
		name:    "create_inventory",
		ops: []operation{
			// The original flat inventory table. Step 9 normalizes it but
			// keeps it in place.
			ddl("create inventory table", `
				CREATE TABLE IF NOT EXISTS inventory (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					item TEXT NOT NULL,
					category TEXT NOT NULL DEFAULT 'General',
					quantity INTEGER NOT NULL DEFAULT 0
				)`),
		},
	},
	{
		version: 3,
		name:    "create_work_orders",
		ops: []operation{
			ddl("create work_orders table", `
				CREATE TABLE IF NOT EXISTS work_orders (
					id TEXT PRIMARY KEY,
					household_id INTEGER NOT NULL,
					status TEXT NOT NULL DEFAULT 'open'
						CHECK(status IN ('open', 'scheduled', 'delivered', 'cancelled')),
					cords REAL NOT NULL DEFAULT 0,
					scheduled_on DATE,
					notes TEXT NOT NULL DEFAULT '',
					created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (household_id) REFERENCES households(id)
				)`),
			ddl("index work_orders by status",
				`CREATE INDEX IF NOT EXISTS idx_work_orders_status ON work_orders(status)`),
		},
	},
	{
		version: 4,
		name:    "create_equipment",
		ops: []operation{
			ddl("create equipment table", `
				CREATE TABLE IF NOT EXISTS equipment (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					name TEXT UNIQUE NOT NULL,
					hours_used REAL NOT NULL DEFAULT 0,
					service_interval_hours REAL NOT NULL DEFAULT 0,
					hours_at_last_service REAL NOT NULL DEFAULT 0,
					notes TEXT NOT NULL DEFAULT ''
				)`),
			seed("seed default equipment", seedDefaultEquipment),
		},
	},
	{
		version: 5,
		name:    "create_volunteer_schedule",
		ops: []operation{
			ddl("create volunteer_hours table", `
				CREATE TABLE IF NOT EXISTS volunteer_hours (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					volunteer_name TEXT NOT NULL,
					worked_on DATE NOT NULL,
					hours REAL NOT NULL,
					activity TEXT NOT NULL DEFAULT ''
				)`),
			ddl("create work_schedule table", `
				CREATE TABLE IF NOT EXISTS work_schedule (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					slot_date DATE NOT NULL,
					start_time TEXT NOT NULL,
					end_time TEXT NOT NULL,
					capacity INTEGER NOT NULL DEFAULT 4,
					description TEXT NOT NULL DEFAULT ''
				)`),
			ddl("create schedule_signups table", `
				CREATE TABLE IF NOT EXISTS schedule_signups (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					slot_id INTEGER NOT NULL,
					volunteer_name TEXT NOT NULL,
					FOREIGN KEY (slot_id) REFERENCES work_schedule(id),
					UNIQUE(slot_id, volunteer_name)
				)`),
			seed("seed sample schedule slots", seedSampleSchedule),
		},
	},
	{
		version: 6,
		name:    "create_users_and_sessions",
		ops: []operation{
			ddl("create users table", `
				CREATE TABLE IF NOT EXISTS users (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					username TEXT UNIQUE NOT NULL CHECK(length(username) > 0),
					password_hash TEXT NOT NULL,
					role TEXT NOT NULL,
					display_name TEXT NOT NULL DEFAULT '',
					email TEXT NOT NULL DEFAULT ''
				)`),
			ddl("create sessions table", `
				CREATE TABLE IF NOT EXISTS sessions (
					token_hash TEXT PRIMARY KEY,
					user_id INTEGER NOT NULL,
					expires_at TIMESTAMP NOT NULL,
					FOREIGN KEY (user_id) REFERENCES users(id)
				)`),
			seed("seed default accounts", seedDefaultAccounts),
		},
	},
	{
		version: 7,
		name:    "create_profile_change_requests",
		ops: []operation{
			ddl("create profile_change_requests table", `
				CREATE TABLE IF NOT EXISTS profile_change_requests (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					user_id INTEGER NOT NULL,
					field TEXT NOT NULL,
					old_value TEXT NOT NULL DEFAULT '',
					new_value TEXT NOT NULL DEFAULT '',
					status TEXT NOT NULL DEFAULT 'pending'
						CHECK(status IN ('pending', 'approved', 'rejected')),
					requested_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (user_id) REFERENCES users(id)
				)`),
		},
	},
	{
		version: 8,
		name:    "household_contact_columns",
		ops: []operation{
			alter("add households.secondary_phone",
				`ALTER TABLE households ADD COLUMN secondary_phone TEXT NOT NULL DEFAULT ''`),
			alter("add households.email",
				`ALTER TABLE households ADD COLUMN email TEXT NOT NULL DEFAULT ''`),
			alter("index households by city",
				`CREATE INDEX idx_households_city ON households(city)`),
		},
	},
	{
		version: 9,
		name:    "normalize_inventory",
		ops: []operation{
			ddl("create inventory_categories table", `
				CREATE TABLE IF NOT EXISTS inventory_categories (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					name TEXT UNIQUE NOT NULL
				)`),
			ddl("create inventory_items table", `
				CREATE TABLE IF NOT EXISTS inventory_items (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					category_id INTEGER NOT NULL,
					name TEXT NOT NULL,
					quantity INTEGER NOT NULL DEFAULT 0,
					FOREIGN KEY (category_id) REFERENCES inventory_categories(id),
					UNIQUE(category_id, name)
				)`),
			seed("seed default categories and items", seedDefaultCategories),
			// Reads the flat inventory table created in step 2 and copies its
			// rows into the normalized tables. The old table stays in place.
			{
				desc:   "migrate legacy inventory rows",
				policy: policyFatal,
				run:    migrateLegacyInventory,
			},
		},
	},
	{
		version: 10,
		name:    "create_delivery_log",
		ops: []operation{
			ddl("create delivery_log table", `
				CREATE TABLE IF NOT EXISTS delivery_log (
					id TEXT PRIMARY KEY,
					order_id TEXT NOT NULL,
					driver TEXT NOT NULL DEFAULT '',
					delivered_on DATE NOT NULL,
					odometer_start REAL NOT NULL,
					odometer_end REAL NOT NULL,
					notes TEXT NOT NULL DEFAULT '',
					FOREIGN KEY (order_id) REFERENCES work_orders(id)
				)`),
			alter("add work_orders.delivered_at",
				`ALTER TABLE work_orders ADD COLUMN delivered_at TIMESTAMP`),
		},
	},
}

// LatestSchemaVersion is the version a fully migrated store reports.
var LatestSchemaVersion = steps[len(steps)-1].version

// ensureVersionRecord makes sure the single-row schema_info record exists,
// initializing it to 0 on a fresh store.
func (s *Repository) ensureVersionRecord() error {
	_, err := s.DB.Exec(`CREATE TABLE IF NOT EXISTS schema_info (version INTEGER NOT NULL)`)
	if err != nil {
		return fmt.Errorf("failed to create schema_info table: %w", err)
	}
	_, err = s.DB.Exec(`INSERT INTO schema_info (version) SELECT 0 WHERE NOT EXISTS (SELECT 1 FROM schema_info)`)
	if err != nil {
		return fmt.Errorf("failed to initialize schema version: %w", err)
	}
	return nil
}

// SchemaVersion returns the highest fully-committed migration version.
func (s *Repository) SchemaVersion() (int, error) {
	if err := s.ensureVersionRecord(); err != nil {
		return 0, err
	}
	var version int
	if err := s.DB.QueryRow(`SELECT version FROM schema_info`).Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// RunMigrations brings the store up to LatestSchemaVersion. All pending
// steps run inside one transaction: a fatal failure in any step discards the
// whole run, so the version record never advances past the last committed
// step. Re-running at the latest version is a no-op, and a run interrupted
// after commit resumes cleanly because completed steps are skipped and seeds
// are insert-if-absent.
func (s *Repository) RunMigrations() error {
	current, err := s.SchemaVersion()
	if err != nil {
		return err
	}
	if current >= LatestSchemaVersion {
		s.Logger.Debugf("Schema already at version %d, nothing to do", current)
		return nil
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin migration transaction: %w", err)
	}
	defer tx.Rollback() // Rollback on any error

	for _, step := range steps {
		if step.version <= current {
			continue
		}
		s.Logger.Infof("Applying migration %d: %s", step.version, step.name)

		for _, op := range step.ops {
			if err := op.run(tx); err != nil {
				switch op.policy {
				case policyTolerated:
					s.Logger.Warnf("Migration %d: tolerated failure on %q: %v", step.version, op.desc, err)
				case policySeed:
					s.Logger.Warnf("Migration %d: seed %q incomplete: %v", step.version, op.desc, err)
				default:
					return fmt.Errorf("migration %d (%s) failed on %q: %w", step.version, step.name, op.desc, err)
				}
			}
		}

		// Bump the version record inside the shared transaction so a later
		// fatal failure rolls it back along with the step's effects.
		if _, err := tx.Exec(`UPDATE schema_info SET version = ?`, step.version); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", step.version, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migrations: %w", err)
	}

	s.Logger.Infof("Database schema at version %d", LatestSchemaVersion)
	return nil
}

// migrateLegacyInventory copies rows from the flat inventory table (step 2)
// into the normalized category/item tables. Items already migrated are left
// alone so a resumed run never duplicates them.
func migrateLegacyInventory(tx *sql.Tx) error {
	type legacyRow struct {
		item     string
		category string
		quantity int
	}

	rows, err := tx.Query(`SELECT item, category, quantity FROM inventory`)
	if err != nil {
		return fmt.Errorf("failed to read legacy inventory: %w", err)
	}
	var legacy []legacyRow
	for rows.Next() {
		var r legacyRow
		if err := rows.Scan(&r.item, &r.category, &r.quantity); err != nil {
			rows.Close()
			return err
		}
		legacy = append(legacy, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	for _, r := range legacy {
		if _, err := tx.Exec(`INSERT OR IGNORE INTO inventory_categories (name) VALUES (?)`, r.category); err != nil {
			return fmt.Errorf("failed to create category %q: %w", r.category, err)
		}
		var categoryID int64
		if err := tx.QueryRow(`SELECT id FROM inventory_categories WHERE name = ?`, r.category).Scan(&categoryID); err != nil {
			return fmt.Errorf("failed to resolve category %q: %w", r.category, err)
		}
		var exists bool
		err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM inventory_items WHERE category_id = ? AND name = ?)`,
			categoryID, r.item).Scan(&exists)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if _, err := tx.Exec(`INSERT INTO inventory_items (category_id, name, quantity) VALUES (?, ?, ?)`,
			categoryID, r.item, r.quantity); err != nil {
			return fmt.Errorf("failed to migrate item %q: %w", r.item, err)
		}
	}
	return nil
}
