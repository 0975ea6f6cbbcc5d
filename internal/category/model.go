package category

type Category struct {
	ID      uint   `json:"id"`
	StoreID uint   `json:"store_id"`
	Name    string `json:"name"`
	Slug    string `json:"slug"`
}
