package models

type Category struct {
	ID       string           `json:"id"`
	Slug     string           `json:"slug"`
	Title    string           `json:"title"`
	Metadata CategoryMetadata `json:"metadata"`
}

type CategoryMetadata struct {
	Icon        string `json:"icon,omitempty"`
	Order       int    `json:"order,omitempty"`
	Description string `json:"description,omitempty"`
}

// SortOrder is the display position, 0 when unset.
func (c Category) SortOrder() int {
	return c.Metadata.Order
}
