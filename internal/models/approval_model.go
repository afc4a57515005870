package models

import "time"

type Approval struct {
	ID          string         `db:"id" json:"id"`
	PostID      string         `db:"post_id" json:"post_id"`
	Status      ApprovalStatus `db:"status" json:"status"`
	RequestedBy string         `db:"requested_by" json:"requested_by,omitempty"`
	ApprovedBy  string         `db:"approved_by" json:"approved_by,omitempty"`
	Feedback    string         `db:"feedback" json:"feedback,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	ResolvedAt  *time.Time     `db:"resolved_at" json:"resolved_at,omitempty"`
}

func (a *Approval) Open() bool {
	return a.Status == ApprovalStatusPending
}

type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

func (s ApprovalStatus) Valid() bool {
	switch s {
	case ApprovalStatusPending, ApprovalStatusApproved, ApprovalStatusRejected:
		return true
	}
	return false
}

func ParseApprovalStatus(s string) (ApprovalStatus, error) {
	status := ApprovalStatus(s)
	if !status.Valid() {
		return "", &ValidationError{Field: "status", Message: "unknown approval status " + s}
	}
	return status, nil
}

// Decision is the outcome a reviewer applies to an open approval.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

func (d Decision) Valid() bool {
	switch d {
	case DecisionApprove, DecisionReject:
		return true
	}
	return false
}

func (d Decision) String() string {
	return string(d)
}

// ApprovalStatus is the terminal approval status the decision produces.
func (d Decision) ApprovalStatus() (ApprovalStatus, error) {
	switch d {
	case DecisionApprove:
		return ApprovalStatusApproved, nil
	case DecisionReject:
		return ApprovalStatusRejected, nil
	}
	return "", unknownDecision(d)
}

// PostStatus is the status the reviewed post moves to.
func (d Decision) PostStatus() (PostStatus, error) {
	switch d {
	case DecisionApprove:
		return PostStatusScheduled, nil
	case DecisionReject:
		return PostStatusDraft, nil
	}
	return "", unknownDecision(d)
}

func unknownDecision(d Decision) error {
	return &ValidationError{Field: "decision", Message: "unknown decision " + string(d)}
}
