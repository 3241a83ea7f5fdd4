package dto

import "time"

// CollaborationRequest creates a collaboration.
type CollaborationRequest struct {
	Title       string     `json:"title" binding:"required"`
	Type        string     `json:"type" binding:"required"`
	Description string     `json:"description"`
	ClientName  string     `json:"clientName"`
	ClientEmail string     `json:"clientEmail" binding:"required,email"`
	AssignedTo  string     `json:"assignedTo"`
	Budget      float64    `json:"budget" binding:"gte=0"`
	Status      string     `json:"status"`
	Deadline    *time.Time `json:"deadline"`
	Notes       string     `json:"notes"`
}

// CollaborationPatchRequest edits a collaboration; absent fields are kept.
type CollaborationPatchRequest struct {
	Title       *string    `json:"title"`
	Type        *string    `json:"type"`
	Description *string    `json:"description"`
	ClientName  *string    `json:"clientName"`
	ClientEmail *string    `json:"clientEmail" binding:"omitempty,email"`
	AssignedTo  *string    `json:"assignedTo"`
	Budget      *float64   `json:"budget" binding:"omitempty,gte=0"`
	Status      *string    `json:"status"`
	Deadline    *time.Time `json:"deadline"`
	Notes       *string    `json:"notes"`
}

// PaymentRequest records the total amount paid so far.
type PaymentRequest struct {
	PaidAmount *float64 `json:"paidAmount" binding:"required,gte=0"`
}

// CollaborationResponse describes a collaboration.
type CollaborationResponse struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Type          string     `json:"type"`
	Description   string     `json:"description"`
	ClientName    string     `json:"clientName"`
	ClientEmail   string     `json:"clientEmail"`
	AssignedTo    string     `json:"assignedTo,omitempty"`
	Budget        float64    `json:"budget"`
	PaidAmount    float64    `json:"paidAmount"`
	Outstanding   float64    `json:"outstanding"`
	PaymentStatus string     `json:"paymentStatus"`
	Status        string     `json:"status"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	CreatedBy     string     `json:"createdBy"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	SignedAt      *time.Time `json:"signedAt,omitempty"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
}
