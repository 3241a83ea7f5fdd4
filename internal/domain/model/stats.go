package model

// OrderStats summarises the order ledger.
type OrderStats struct {
	TotalRevenue      Money
	TotalOrders       int
	PendingOrders     int
	CompletedOrders   int
	AverageOrderValue Money
}

// CollaborationStats summarises the collaboration ledger.
type CollaborationStats struct {
	Total          int
	Active         int
	Completed      int
	TotalRevenue   Money
	PendingRevenue Money
}

// CatalogStats holds catalog counters.
type CatalogStats struct {
	TotalBeats    int
	FeaturedBeats int
	Genres        int
}

// DashboardStats is the admin dashboard projection.
type DashboardStats struct {
	Orders         OrderStats
	Collaborations CollaborationStats
	Catalog        CatalogStats
}

// CustomerSummary is the customer dashboard projection.
type CustomerSummary struct {
	TotalOrders    int
	TotalSpent     Money
	TotalDownloads int
}

// ArtistSummary is the artist dashboard projection.
type ArtistSummary struct {
	ActiveCollaborations    int
	CompletedCollaborations int
	BeatsPurchased          int
	TotalSpent              Money
}

// ComputeOrderStats scans orders. Revenue counts completed orders only and the
// average divides it by all orders, yielding zero for an empty ledger.
func ComputeOrderStats(orders []Order) OrderStats {
	var stats OrderStats
	for _, o := range orders {
		stats.TotalOrders++
		switch o.Status {
		case OrderStatusPending:
			stats.PendingOrders++
		case OrderStatusCompleted:
			stats.CompletedOrders++
			stats.TotalRevenue += o.Total
		}
	}
	if stats.TotalOrders > 0 {
		stats.AverageOrderValue = stats.TotalRevenue / Money(stats.TotalOrders)
	}
	return stats
}

// ComputeCollaborationStats scans collaborations.
func ComputeCollaborationStats(collabs []Collaboration) CollaborationStats {
	var stats CollaborationStats
	for _, c := range collabs {
		stats.Total++
		if c.Status.Active() {
			stats.Active++
		}
		if c.Status == CollaborationStatusCompleted {
			stats.Completed++
			stats.TotalRevenue += c.PaidAmount
		}
		if !c.Status.Terminal() {
			stats.PendingRevenue += c.Budget - c.PaidAmount
		}
	}
	return stats
}

// ComputeCatalogStats counts beats, featured beats and distinct genres.
func ComputeCatalogStats(beats []Beat) CatalogStats {
	genres := make(map[string]struct{})
	stats := CatalogStats{TotalBeats: len(beats)}
	for _, b := range beats {
		if b.Featured {
			stats.FeaturedBeats++
		}
		genres[b.Genre] = struct{}{}
	}
	stats.Genres = len(genres)
	return stats
}

// SummarizeCustomer computes spend and downloads over completed orders.
func SummarizeCustomer(orders []Order) CustomerSummary {
	summary := CustomerSummary{TotalOrders: len(orders)}
	for _, o := range orders {
		if o.Status != OrderStatusCompleted {
			continue
		}
		summary.TotalSpent += o.Total
		summary.TotalDownloads += len(o.Items)
	}
	return summary
}

// SummarizeArtist combines the artist's collaborations with their purchases.
func SummarizeArtist(collabs []Collaboration, orders []Order) ArtistSummary {
	var summary ArtistSummary
	for _, c := range collabs {
		switch c.Status {
		case CollaborationStatusAgreed, CollaborationStatusSigned, CollaborationStatusInProgress:
			summary.ActiveCollaborations++
		case CollaborationStatusCompleted:
			summary.CompletedCollaborations++
		}
	}
	customer := SummarizeCustomer(orders)
	summary.BeatsPurchased = customer.TotalDownloads
	summary.TotalSpent = customer.TotalSpent
	return summary
}
