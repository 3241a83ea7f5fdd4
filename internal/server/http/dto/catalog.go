package dto

import "time"

// LicensesResponse lists which tiers a beat can be bought with.
type LicensesResponse struct {
	Basic     bool `json:"basic"`
	Premium   bool `json:"premium"`
	Exclusive bool `json:"exclusive"`
}

// BeatResponse is a catalog entry. Prices are in major currency units.
type BeatResponse struct {
	ID         string           `json:"id"`
	Title      string           `json:"title"`
	Artist     string           `json:"artist"`
	BPM        int              `json:"bpm"`
	Key        string           `json:"key"`
	Genre      string           `json:"genre"`
	Price      float64          `json:"price"`
	AudioURL   string           `json:"audioUrl"`
	ArtworkURL string           `json:"artworkUrl"`
	Tags       []string         `json:"tags"`
	Licenses   LicensesResponse `json:"licenses"`
	Featured   bool             `json:"featured"`
	CreatedAt  time.Time        `json:"createdAt"`
}

// CartLine references a beat and a license tier.
type CartLine struct {
	BeatID  string `json:"beatId" binding:"required"`
	License string `json:"license" binding:"required,oneof=basic premium exclusive"`
}

// QuoteRequest prices a client side cart.
type QuoteRequest struct {
	Items []CartLine `json:"items" binding:"required,min=1,dive"`
}

// QuoteItem is a priced cart line.
type QuoteItem struct {
	BeatID     string  `json:"beatId"`
	Title      string  `json:"title"`
	ArtworkURL string  `json:"artworkUrl"`
	License    string  `json:"license"`
	Price      float64 `json:"price"`
}

// QuoteResponse lists priced lines and their subtotal.
type QuoteResponse struct {
	Items    []QuoteItem `json:"items"`
	Subtotal float64     `json:"subtotal"`
	Count    int         `json:"count"`
}
