package contentpolicy_test

import (
	"testing"

	"github.com/ponsectors/ponsectors/internal/app/policy/contentpolicy"
	"github.com/ponsectors/ponsectors/internal/domain/models"
)

func TestCanView(t *testing.T) {
	owner := contentpolicy.Viewer{UserID: "u1", Role: models.RoleStandard}
	other := contentpolicy.Viewer{UserID: "u2", Role: models.RoleStandard}
	admin := contentpolicy.Viewer{UserID: "u3", Role: models.RoleAdmin}

	cases := []struct {
		name   string
		viewer contentpolicy.Viewer
		status models.ContentStatus
		want   bool
	}{
		{"owner sees own draft", owner, models.StatusDraft, true},
		{"owner sees own pending", owner, models.StatusPending, true},
		{"owner sees own rejected", owner, models.StatusRejected, true},
		{"other sees shared", other, models.StatusShared, true},
		{"other blocked from draft", other, models.StatusDraft, false},
		{"other blocked from pending", other, models.StatusPending, false},
		{"other blocked from rejected", other, models.StatusRejected, false},
		{"admin sees pending", admin, models.StatusPending, true},
		{"admin sees draft", admin, models.StatusDraft, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := contentpolicy.CanView(c.viewer, "u1", c.status); got != c.want {
				t.Errorf("CanView = %v, want %v", got, c.want)
			}
		})
	}
}

func TestFilterProjects(t *testing.T) {
	projects := []models.Project{
		{ID: "p1", OwnerID: "u1", Status: models.StatusShared},
		{ID: "p2", OwnerID: "u1", Status: models.StatusDraft},
		{ID: "p3", OwnerID: "u2", Status: models.StatusPending},
	}

	got := contentpolicy.FilterProjects(contentpolicy.Viewer{UserID: "u1", Role: models.RoleStandard}, projects)
	if len(got) != 2 || got[0].ID != "p1" || got[1].ID != "p2" {
		t.Errorf("owner filter wrong: %+v", got)
	}

	got = contentpolicy.FilterProjects(contentpolicy.Viewer{UserID: "u3", Role: models.RoleAdmin}, projects)
	if len(got) != 3 {
		t.Errorf("admin should see all 3, got %d", len(got))
	}
}

func TestInPortfolio(t *testing.T) {
	cases := []struct {
		status     models.ContentStatus
		visibility models.Visibility
		want       bool
	}{
		{models.StatusShared, models.VisibilityPublic, true},
		{models.StatusShared, models.VisibilityRestricted, false},
		{models.StatusPending, models.VisibilityPublic, false},
		{models.StatusDraft, models.VisibilityPublic, false},
	}
	for _, c := range cases {
		p := models.Project{Status: c.status, Visibility: c.visibility}
		if got := contentpolicy.InPortfolio(p); got != c.want {
			t.Errorf("InPortfolio(%s/%s) = %v, want %v", c.status, c.visibility, got, c.want)
		}
	}
}
