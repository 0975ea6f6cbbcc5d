package product

import "time"

const (
	StatusActive   = "active"
	StatusDraft    = "draft"
	StatusArchived = "archived"
)

type Product struct {
	ID          uint      `json:"id"`
	UUID        string    `json:"uuid"`
	StoreID     uint      `json:"store_id"`
	CategoryID  *uint     `json:"category_id,omitempty"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Status      string    `json:"status"`
	ImageURL    *string   `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Variant is a sellable variation of a product (size, grade, pack). A nil
// Price means the variant sells at the product price. StoreID is filled from
// the owning product on reads and is only used for ownership checks.
type Variant struct {
	ID                uint      `json:"id"`
	UUID              string    `json:"uuid"`
	ProductID         uint      `json:"product_id"`
	Title             string    `json:"title"`
	Option1           *string   `json:"option1,omitempty"`
	Option2           *string   `json:"option2,omitempty"`
	Option3           *string   `json:"option3,omitempty"`
	SKU               *string   `json:"sku,omitempty"`
	Price             *float64  `json:"price,omitempty"`
	InventoryQuantity int       `json:"inventory_quantity"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	StoreID uint `json:"-"`
}

type ListOptions struct {
	Search     *string
	Status     *string
	CategoryID *uint
	Limit      *int32
	Page       *int32
}
