package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// ReportReason classifies an abuse report.
type ReportReason string

const (
	ReportReasonSpam          ReportReason = "SPAM"
	ReportReasonInappropriate ReportReason = "INAPPROPRIATE"
	ReportReasonFraud         ReportReason = "FRAUD"
	ReportReasonOther         ReportReason = "OTHER"
)

// Valid reports whether r is a known reason.
func (r ReportReason) Valid() bool {
	switch r {
	case ReportReasonSpam, ReportReasonInappropriate, ReportReasonFraud, ReportReasonOther:
		return true
	}
	return false
}

// ReportStatus is the moderation state of a report.
type ReportStatus string

const (
	ReportPending   ReportStatus = "PENDING"
	ReportReviewed  ReportStatus = "REVIEWED"
	ReportResolved  ReportStatus = "RESOLVED"
	ReportDismissed ReportStatus = "DISMISSED"
)

// CanTransitionTo reports whether s may move to next. Only PENDING reports
// move, and only to a terminal status.
func (s ReportStatus) CanTransitionTo(next ReportStatus) bool {
	if s != ReportPending {
		return false
	}
	switch next {
	case ReportReviewed, ReportResolved, ReportDismissed:
		return true
	}
	return false
}

// Report flags either a user or a property.
type Report struct {
	ID                 uuid.UUID    `json:"id"`
	ReporterID         uuid.UUID    `json:"reporterId"`
	ReportedUserID     *uuid.UUID   `json:"reportedUserId,omitempty"`
	ReportedPropertyID *uuid.UUID   `json:"reportedPropertyId,omitempty"`
	Reason             ReportReason `json:"reason"`
	Description        string       `json:"description"`
	Status             ReportStatus `json:"status"`
	AdminNotes         null.String  `json:"adminNotes"`
	ResolvedBy         *uuid.UUID   `json:"resolvedBy,omitempty"`
	CreatedAt          time.Time    `json:"createdAt"`
	UpdatedAt          time.Time    `json:"updatedAt"`
}

// CreateReportInput represents a new report. Exactly one target is required.
type CreateReportInput struct {
	ReportedUserID     *uuid.UUID   `json:"reportedUserId"`
	ReportedPropertyID *uuid.UUID   `json:"reportedPropertyId"`
	Reason             ReportReason `json:"reason" binding:"required"`
	Description        string       `json:"description" binding:"max=2000"`
}

// ReportActionInput carries the moderator's notes for a transition.
type ReportActionInput struct {
	AdminNotes string `json:"adminNotes" binding:"max=2000"`
}

// ReportFilter narrows report listings.
type ReportFilter struct {
	Status             ReportStatus
	ReportedUserID     *uuid.UUID
	ReportedPropertyID *uuid.UUID
}
