package models

import "time"

// Product is one row of the inventory table. Prices are integer cents to
// avoid floating-point drift across CSV round-trips.
type Product struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Quantity  int       `db:"quantity" json:"quantity"`
	Price     int64     `db:"price" json:"price"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
