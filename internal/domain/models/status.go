// internal/domain/models/status.go
package models

// ContentStatus is the moderation lifecycle state shared by Projects,
// Insights, and FundingOpportunities.
type ContentStatus string

const (
	StatusDraft    ContentStatus = "Draft"
	StatusPending  ContentStatus = "Pending"
	StatusShared   ContentStatus = "Shared"
	StatusRejected ContentStatus = "Rejected"
)

// IsValidContentStatus checks a status value against the known set.
func IsValidContentStatus(s ContentStatus) bool {
	switch s {
	case StatusDraft, StatusPending, StatusShared, StatusRejected:
		return true
	}
	return false
}

// IsCreatable reports whether a status is a legal initial state.
// Content is created either as a draft or submitted straight for review;
// the initial state is always caller-selected.
func (s ContentStatus) IsCreatable() bool {
	return s == StatusDraft || s == StatusPending
}

// CanTransition reports whether the moderation lifecycle permits moving
// from this status to another. The transition table is closed: there is
// no path out of Shared or Rejected.
func (s ContentStatus) CanTransition(to ContentStatus) bool {
	switch s {
	case StatusDraft:
		return to == StatusPending
	case StatusPending:
		return to == StatusShared || to == StatusRejected
	case StatusShared, StatusRejected:
		return false
	}
	return false
}

// ContentKind discriminates the three submittable content collections in
// mixed contexts such as the moderation queue.
type ContentKind string

const (
	KindProject ContentKind = "project"
	KindInsight ContentKind = "insight"
	KindFunding ContentKind = "funding"
)

// IsValidContentKind checks a kind value against the known set.
func IsValidContentKind(k ContentKind) bool {
	switch k {
	case KindProject, KindInsight, KindFunding:
		return true
	}
	return false
}
