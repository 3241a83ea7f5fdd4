package model

import (
	"fmt"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/beatstore/internal/domain/errors"
)

// CollaborationStatus describes the deal lifecycle.
type CollaborationStatus string

const (
	CollaborationStatusInquiry      CollaborationStatus = "inquiry"
	CollaborationStatusNegotiating  CollaborationStatus = "negotiating"
	CollaborationStatusAgreed       CollaborationStatus = "agreed"
	CollaborationStatusContractSent CollaborationStatus = "contract_sent"
	CollaborationStatusSigned       CollaborationStatus = "signed"
	CollaborationStatusInProgress   CollaborationStatus = "in_progress"
	CollaborationStatusCompleted    CollaborationStatus = "completed"
	CollaborationStatusCancelled    CollaborationStatus = "cancelled"
)

// ActiveCollaborationStatuses are the statuses counted as running deals.
var ActiveCollaborationStatuses = []CollaborationStatus{
	CollaborationStatusAgreed,
	CollaborationStatusContractSent,
	CollaborationStatusSigned,
	CollaborationStatusInProgress,
}

// ParseCollaborationStatus validates raw status names.
func ParseCollaborationStatus(raw string) (CollaborationStatus, error) {
	s := CollaborationStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("%w: unknown collaboration status %q", domainErrors.ErrValidation, raw)
	}
	return s, nil
}

func (s CollaborationStatus) Valid() bool {
	switch s {
	case CollaborationStatusInquiry, CollaborationStatusNegotiating, CollaborationStatusAgreed,
		CollaborationStatusContractSent, CollaborationStatusSigned, CollaborationStatusInProgress,
		CollaborationStatusCompleted, CollaborationStatusCancelled:
		return true
	}
	return false
}

func (s CollaborationStatus) Terminal() bool {
	return s == CollaborationStatusCompleted || s == CollaborationStatusCancelled
}

func (s CollaborationStatus) Active() bool {
	for _, active := range ActiveCollaborationStatuses {
		if s == active {
			return true
		}
	}
	return false
}

// CollaborationType classifies the kind of work agreed.
type CollaborationType string

const (
	CollaborationTypeFeature     CollaborationType = "feature"
	CollaborationTypeProduction  CollaborationType = "production"
	CollaborationTypeRemix       CollaborationType = "remix"
	CollaborationTypeMixing      CollaborationType = "mixing"
	CollaborationTypeSongwriting CollaborationType = "songwriting"
	CollaborationTypeOther       CollaborationType = "other"
)

// ParseCollaborationType validates raw type names.
func ParseCollaborationType(raw string) (CollaborationType, error) {
	t := CollaborationType(raw)
	switch t {
	case CollaborationTypeFeature, CollaborationTypeProduction, CollaborationTypeRemix,
		CollaborationTypeMixing, CollaborationTypeSongwriting, CollaborationTypeOther:
		return t, nil
	}
	return "", fmt.Errorf("%w: unknown collaboration type %q", domainErrors.ErrValidation, raw)
}

// PaymentStatus summarises how much of the budget has been paid.
type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// ClassifyPayment derives the payment status from the paid amount and budget.
// Reaching the budget, or paying more, counts as paid.
func ClassifyPayment(paid, budget Money) PaymentStatus {
	switch {
	case paid >= budget:
		return PaymentStatusPaid
	case paid > 0:
		return PaymentStatusPartial
	default:
		return PaymentStatusUnpaid
	}
}

// Collaboration is a deal between the producer and an external party.
type Collaboration struct {
	ID            string
	Title         string
	Type          CollaborationType
	Description   string
	ClientName    string
	ClientEmail   string
	AssignedTo    string
	Budget        Money
	PaidAmount    Money
	PaymentStatus PaymentStatus
	Status        CollaborationStatus
	Deadline      *time.Time
	Notes         string
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	SignedAt      *time.Time
	CompletedAt   *time.Time
}

// CollaborationDraft carries the caller supplied fields of a new collaboration.
type CollaborationDraft struct {
	Title       string
	Type        CollaborationType
	Description string
	ClientName  string
	ClientEmail string
	AssignedTo  string
	Budget      Money
	Status      CollaborationStatus
	Deadline    *time.Time
	Notes       string
}

// NewCollaboration validates the draft and returns an unpaid collaboration.
func NewCollaboration(id string, draft CollaborationDraft, createdBy string, now time.Time) (*Collaboration, error) {
	draft.Title = strings.TrimSpace(draft.Title)
	draft.ClientEmail = strings.TrimSpace(draft.ClientEmail)
	switch {
	case draft.Title == "":
		return nil, fmt.Errorf("%w: title is required", domainErrors.ErrValidation)
	case draft.ClientEmail == "":
		return nil, fmt.Errorf("%w: client email is required", domainErrors.ErrValidation)
	case draft.Budget < 0:
		return nil, fmt.Errorf("%w: budget must not be negative", domainErrors.ErrValidation)
	}
	if _, err := ParseCollaborationType(string(draft.Type)); err != nil {
		return nil, err
	}
	if draft.Status == "" {
		draft.Status = CollaborationStatusInquiry
	}

	c := &Collaboration{
		ID:            id,
		Title:         draft.Title,
		Type:          draft.Type,
		Description:   draft.Description,
		ClientName:    draft.ClientName,
		ClientEmail:   draft.ClientEmail,
		AssignedTo:    draft.AssignedTo,
		Budget:        draft.Budget,
		PaidAmount:    0,
		PaymentStatus: ClassifyPayment(0, draft.Budget),
		Status:        CollaborationStatusInquiry,
		Deadline:      draft.Deadline,
		Notes:         draft.Notes,
		CreatedBy:     createdBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := c.SetStatus(draft.Status, now); err != nil {
		return nil, err
	}
	return c, nil
}

// SetStatus changes the status and stamps SignedAt/CompletedAt the first time
// those statuses are reached. A terminal collaboration only accepts its own status.
func (c *Collaboration) SetStatus(status CollaborationStatus, now time.Time) error {
	if err := c.checkStatus(status); err != nil {
		return err
	}

	c.Status = status
	if status == CollaborationStatusSigned && c.SignedAt == nil {
		stamp := now
		c.SignedAt = &stamp
	}
	if status == CollaborationStatusCompleted && c.CompletedAt == nil {
		stamp := now
		c.CompletedAt = &stamp
	}
	c.UpdatedAt = now
	return nil
}

func (c *Collaboration) checkStatus(status CollaborationStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown collaboration status %q", domainErrors.ErrValidation, status)
	}
	if c.Status.Terminal() && status != c.Status {
		return fmt.Errorf("%w: collaboration %s is %s", domainErrors.ErrInvalidTransition, c.ID, c.Status)
	}
	return nil
}

// RecordPayment replaces the paid amount and reclassifies the payment status.
func (c *Collaboration) RecordPayment(paid Money, now time.Time) error {
	if paid < 0 {
		return fmt.Errorf("%w: paid amount must not be negative", domainErrors.ErrValidation)
	}
	c.PaidAmount = paid
	c.PaymentStatus = ClassifyPayment(paid, c.Budget)
	c.UpdatedAt = now
	return nil
}

// CollaborationPatch lists editable fields; nil pointers are left untouched.
type CollaborationPatch struct {
	Title       *string
	Type        *CollaborationType
	Description *string
	ClientName  *string
	ClientEmail *string
	AssignedTo  *string
	Budget      *Money
	Status      *CollaborationStatus
	Deadline    *time.Time
	Notes       *string
}

// Apply updates the editable fields. ID, CreatedBy and CreatedAt never change.
func (c *Collaboration) Apply(p CollaborationPatch, now time.Time) error {
	if p.Status != nil {
		if err := c.checkStatus(*p.Status); err != nil {
			return err
		}
	}
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return fmt.Errorf("%w: title is required", domainErrors.ErrValidation)
		}
		c.Title = title
	}
	if p.Type != nil {
		if _, err := ParseCollaborationType(string(*p.Type)); err != nil {
			return err
		}
		c.Type = *p.Type
	}
	if p.ClientEmail != nil {
		email := strings.TrimSpace(*p.ClientEmail)
		if email == "" {
			return fmt.Errorf("%w: client email is required", domainErrors.ErrValidation)
		}
		c.ClientEmail = email
	}
	if p.Budget != nil {
		if *p.Budget < 0 {
			return fmt.Errorf("%w: budget must not be negative", domainErrors.ErrValidation)
		}
		c.Budget = *p.Budget
		c.PaymentStatus = ClassifyPayment(c.PaidAmount, c.Budget)
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.ClientName != nil {
		c.ClientName = *p.ClientName
	}
	if p.AssignedTo != nil {
		c.AssignedTo = *p.AssignedTo
	}
	if p.Deadline != nil {
		deadline := *p.Deadline
		c.Deadline = &deadline
	}
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
	if p.Status != nil {
		return c.SetStatus(*p.Status, now)
	}
	c.UpdatedAt = now
	return nil
}

// Outstanding is the part of the budget not yet paid; overpayment yields a negative value.
func (c Collaboration) Outstanding() Money {
	return c.Budget - c.PaidAmount
}

// InvolvesParticipant reports whether the user is the client or the assignee.
func (c Collaboration) InvolvesParticipant(userID, email string) bool {
	return (email != "" && strings.EqualFold(c.ClientEmail, email)) || (userID != "" && c.AssignedTo == userID)
}

// CollaborationFilter narrows collaboration listings.
type CollaborationFilter struct {
	Status   CollaborationStatus
	Statuses []CollaborationStatus
	Type     CollaborationType
	Limit    int
}

// Matches applies the status and type predicates; Limit is left to the caller.
func (f CollaborationFilter) Matches(c Collaboration) bool {
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.Type != "" && c.Type != f.Type {
		return false
	}
	if len(f.Statuses) > 0 {
		for _, s := range f.Statuses {
			if c.Status == s {
				return true
			}
		}
		return false
	}
	return true
}
