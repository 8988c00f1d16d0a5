// filepath: internal/models/models.go
package models

import "time"

// User is a login account. Role is stored as free text and interpreted
// through the auth package.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         string
	DisplayName  string
	Email        string
}

// Household is a client household receiving firewood.
type Household struct {
	ID             int64
	Name           string
	Address        string
	City           string
	Phone          string
	SecondaryPhone string
	Email          string
	WoodSize       string
	Notes          string
	CreatedAt      time.Time
}

// WorkOrder is a delivery request for a household.
type WorkOrder struct {
	ID          string
	HouseholdID int64
	Status      string
	Cords       float64
	ScheduledOn string
	Notes       string
	CreatedAt   time.Time
	DeliveredAt *time.Time
}

// Work order statuses.
const (
	OrderStatusOpen      = "open"
	OrderStatusScheduled = "scheduled"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// InventoryCategory groups inventory items.
type InventoryCategory struct {
	ID   int64
	Name string
}

// InventoryItem is one counted supply item within a category.
type InventoryItem struct {
	ID       int64
	Category string
	Name     string
	Quantity int
}

// Delivery is one delivery-log entry. Mileage is derived from the odometer
// pair when listing; it is never stored.
type Delivery struct {
	ID            string
	OrderID       string
	Driver        string
	DeliveredOn   string
	OdometerStart float64
	OdometerEnd   float64
	Notes         string
	Mileage       float64
}
