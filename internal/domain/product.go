package domain

import "github.com/google/uuid"

// Product is a shop item. Features is an ordered list of bullet points.
type Product struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Category     string    `json:"category,omitempty"`
	Price        string    `json:"price,omitempty"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	Features     []string  `json:"features,omitempty"`
	DisplayOrder int       `json:"displayOrder"`
}
