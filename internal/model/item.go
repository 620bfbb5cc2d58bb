package model

// Item mirrors a row of the `items` table. Items are read-only for this
// service and are served through the paginated listing endpoint.
type Item struct {
	ID   uint64 `json:"id"`   // items.id
	Name string `json:"name"` // items.name
}

// Pagination describes the page window returned alongside a paginated
// listing. TotalPages is derived from TotalItems and Limit.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}
