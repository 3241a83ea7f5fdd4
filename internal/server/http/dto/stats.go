package dto

import "time"

// OrderStatsResponse summarises orders.
type OrderStatsResponse struct {
	TotalRevenue      float64 `json:"totalRevenue"`
	TotalOrders       int     `json:"totalOrders"`
	PendingOrders     int     `json:"pendingOrders"`
	CompletedOrders   int     `json:"completedOrders"`
	AverageOrderValue float64 `json:"averageOrderValue"`
}

// CollaborationStatsResponse summarises collaborations.
type CollaborationStatsResponse struct {
	Total          int     `json:"total"`
	Active         int     `json:"active"`
	Completed      int     `json:"completed"`
	TotalRevenue   float64 `json:"totalRevenue"`
	PendingRevenue float64 `json:"pendingRevenue"`
}

// CatalogStatsResponse holds catalog counters.
type CatalogStatsResponse struct {
	TotalBeats    int `json:"totalBeats"`
	FeaturedBeats int `json:"featuredBeats"`
	Genres        int `json:"genres"`
}

// DashboardResponse is the admin dashboard payload.
type DashboardResponse struct {
	Orders         OrderStatsResponse         `json:"orders"`
	Collaborations CollaborationStatsResponse `json:"collaborations"`
	Catalog        CatalogStatsResponse       `json:"catalog"`
}

// CustomerSummaryResponse is shown on the customer dashboard.
type CustomerSummaryResponse struct {
	TotalOrders    int     `json:"totalOrders"`
	TotalSpent     float64 `json:"totalSpent"`
	TotalDownloads int     `json:"totalDownloads"`
}

// ArtistSummaryResponse is shown on the artist dashboard.
type ArtistSummaryResponse struct {
	ActiveCollaborations    int     `json:"activeCollaborations"`
	CompletedCollaborations int     `json:"completedCollaborations"`
	BeatsPurchased          int     `json:"beatsPurchased"`
	TotalSpent              float64 `json:"totalSpent"`
}

// SummaryResponse bundles the dashboards visible to the caller.
type SummaryResponse struct {
	Customer CustomerSummaryResponse `json:"customer"`
	Artist   *ArtistSummaryResponse  `json:"artist,omitempty"`
}

// NewsletterRequest subscribes an address.
type NewsletterRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// NewsletterResponse reports whether the address was new.
type NewsletterResponse struct {
	Subscribed bool `json:"subscribed"`
	Created    bool `json:"created"`
}

// SubscriberResponse is a newsletter subscriber.
type SubscriberResponse struct {
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}
