package dto

import "time"

// CheckoutRequest places an order for the authenticated customer.
type CheckoutRequest struct {
	Items []CartLine `json:"items" binding:"required,min=1,dive"`
}

// OrderItemResponse is a purchased line.
type OrderItemResponse struct {
	BeatID     string  `json:"beatId"`
	Title      string  `json:"title"`
	ArtworkURL string  `json:"artworkUrl,omitempty"`
	License    string  `json:"license"`
	Price      float64 `json:"price"`
}

// OrderResponse describes an order.
type OrderResponse struct {
	ID            string              `json:"id"`
	Number        string              `json:"number"`
	CustomerEmail string              `json:"customerEmail"`
	Items         []OrderItemResponse `json:"items"`
	Subtotal      float64             `json:"subtotal"`
	Tax           float64             `json:"tax"`
	Total         float64             `json:"total"`
	Status        string              `json:"status"`
	DownloadLinks map[string]string   `json:"downloadLinks,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

// StatusRequest moves an order or collaboration to another status.
type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}
