// Package contentpolicy decides which content items a given viewer may
// see. The rules are the same for projects, insights, and funding:
//
//   - Shared items are visible to every signed-in user
//   - Draft, Pending, and Rejected items are visible only to their owner
//   - Admins see everything
//
// The public portfolio additionally requires Shared plus Public
// visibility; drafts and restricted projects never leak there.
package contentpolicy

import (
	"github.com/ponsectors/ponsectors/internal/domain/models"
)

// Viewer is the identity a visibility check runs against.
type Viewer struct {
	UserID string
	Role   models.UserRole
}

func (v Viewer) isAdmin() bool { return v.Role == models.RoleAdmin }

// CanView reports whether the viewer may see an item with the given
// owner and status.
func CanView(v Viewer, ownerID string, status models.ContentStatus) bool {
	if v.isAdmin() {
		return true
	}
	if status == models.StatusShared {
		return true
	}
	return v.UserID != "" && v.UserID == ownerID
}

// FilterProjects returns the projects the viewer may see, preserving
// input order.
func FilterProjects(v Viewer, in []models.Project) []models.Project {
	out := make([]models.Project, 0, len(in))
	for _, p := range in {
		if CanView(v, p.OwnerID, p.Status) {
			out = append(out, p)
		}
	}
	return out
}

// FilterInsights returns the insights the viewer may see.
func FilterInsights(v Viewer, in []models.Insight) []models.Insight {
	out := make([]models.Insight, 0, len(in))
	for _, item := range in {
		if CanView(v, item.AuthorID, item.Status) {
			out = append(out, item)
		}
	}
	return out
}

// FilterFunding returns the funding opportunities the viewer may see.
func FilterFunding(v Viewer, in []models.FundingOpportunity) []models.FundingOpportunity {
	out := make([]models.FundingOpportunity, 0, len(in))
	for _, f := range in {
		if CanView(v, f.OwnerID, f.Status) {
			out = append(out, f)
		}
	}
	return out
}

// InPortfolio reports whether a project belongs on the public portfolio
// page: approved by moderation and opted into public visibility.
func InPortfolio(p models.Project) bool {
	return p.Status == models.StatusShared && p.Visibility == models.VisibilityPublic
}

// PortfolioProjects filters to the public portfolio set.
func PortfolioProjects(in []models.Project) []models.Project {
	out := make([]models.Project, 0, len(in))
	for _, p := range in {
		if InPortfolio(p) {
			out = append(out, p)
		}
	}
	return out
}
