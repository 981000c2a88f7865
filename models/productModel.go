package models

import "time"

type Product struct {
	ID        string          `json:"id"`
	Slug      string          `json:"slug"`
	Title     string          `json:"title"`
	CreatedAt time.Time       `json:"created_at"`
	Metadata  ProductMetadata `json:"metadata"`
}

type ProductMetadata struct {
	Price       string    `json:"price,omitempty"`
	Category    *Category `json:"category,omitempty"`
	Description string    `json:"description,omitempty"`
	Image       *Image    `json:"image,omitempty"`
	Available   *bool     `json:"available,omitempty"`
}

type Image struct {
	URL      string `json:"url"`
	ImgixURL string `json:"imgix_url"`
}

// Price returns the parsed unit price. Missing or malformed price text is 0.
func (p Product) Price() float64 {
	return ParseAmount(p.Metadata.Price)
}

// IsAvailable defaults to true when the flag is absent.
func (p Product) IsAvailable() bool {
	return p.Metadata.Available == nil || *p.Metadata.Available
}

// CategoryID returns the id of the product's category, or "" when it has none.
func (p Product) CategoryID() string {
	if p.Metadata.Category == nil {
		return ""
	}
	return p.Metadata.Category.ID
}
