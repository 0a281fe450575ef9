package models

// ListFilter narrows a list query to rows whose searchable field contains
// Search (case-insensitive) and slices the ordered result.
type ListFilter struct {
	Search string
	Limit  uint64
	Offset uint64
}

type Counts struct {
	Manufacturers int `json:"num_manufacturers"`
	Drivers       int `json:"num_drivers"`
	Cars          int `json:"num_cars"`
}
