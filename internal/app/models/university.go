package models

import "time"

// University defines a university based on the 'universities' table.
// Universities are seeded administratively and treated as immutable reference data.
type University struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
