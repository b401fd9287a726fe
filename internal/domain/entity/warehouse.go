package entity

import "time"

// Warehouse representa una bodega; pertenece a exactamente una empresa.
type Warehouse struct {
	ID        int64
	CompanyID int64
	Name      string
	Address   string
	CreatedAt time.Time
}
