package store

import "time"

type Store struct {
	ID          uint      `json:"id"`
	UUID        string    `json:"uuid"`
	OwnerID     uint      `json:"owner_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
