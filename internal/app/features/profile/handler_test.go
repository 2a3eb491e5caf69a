// internal/app/features/profile/handler_test.go
package profile

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/ponsectors/ponsectors/internal/app/store"
	"github.com/ponsectors/ponsectors/internal/app/store/memstore"
	"github.com/ponsectors/ponsectors/internal/app/system/auth"
	"github.com/ponsectors/ponsectors/internal/domain/models"
	"github.com/ponsectors/ponsectors/internal/testutil"
)

func newTestHandler(t *testing.T) (*Handler, store.Stores) {
	t.Helper()
	st := memstore.NewSeeded().Stores()
	return NewHandler(st.Users, st.Projects, zap.NewNop()), st
}

func sessionUser(id string, role models.UserRole) auth.SessionUser {
	return auth.SessionUser{ID: id, Name: "Test User", Email: id + "@example.com", Role: role}
}

func TestGetProfile_OmitsPrivateFields(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/api/users/u1", "", sessionUser("u3", models.RoleStandard))
	req = testutil.WithChiURLParam(req, "id", "u1")
	rec := testutil.NewRecorder()
	h.HandleGetProfile(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Amir Musema")
	body := rec.Body.String()
	if strings.Contains(body, "amir@example.com") {
		t.Errorf("public profile leaked the email address: %s", body)
	}
	if strings.Contains(body, "savedProjectIds") {
		t.Errorf("public profile leaked the bookmark set: %s", body)
	}
}

func TestGetProfile_Unknown(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/api/users/nope", "", sessionUser("u3", models.RoleStandard))
	req = testutil.WithChiURLParam(req, "id", "nope")
	rec := testutil.NewRecorder()
	h.HandleGetProfile(rec, req)

	rec.AssertStatus(t, http.StatusNotFound)
}

func TestUpdateMe_EditsProfile(t *testing.T) {
	h, st := newTestHandler(t)

	body := `{
		"name": "Amir M. Musema",
		"stakeholderType": "Individual",
		"subtype": "Professional",
		"country": "Ethiopia",
		"city": "Adama",
		"focusAreas": ["Technology and Innovation"],
		"about": "Updated bio."
	}`
	req := testutil.NewAuthenticatedRequest(http.MethodPut, "/api/me", body, sessionUser("u1", models.RoleStandard))
	rec := testutil.NewRecorder()
	h.HandleUpdateMe(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	u, err := st.Users.GetByID(context.Background(), "u1")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if u.Name != "Amir M. Musema" || u.City != "Adama" || u.About != "Updated bio." {
		t.Errorf("profile not updated: %+v", u)
	}
	if u.Role != models.RoleStandard {
		t.Errorf("profile edit changed the role to %q", u.Role)
	}
}

func TestUpdateMe_SanitizesAbout(t *testing.T) {
	h, st := newTestHandler(t)

	body := `{
		"name": "Amir Musema",
		"stakeholderType": "Individual",
		"country": "Ethiopia",
		"about": "<p>hi</p><script>alert(1)</script>"
	}`
	req := testutil.NewAuthenticatedRequest(http.MethodPut, "/api/me", body, sessionUser("u1", models.RoleStandard))
	rec := testutil.NewRecorder()
	h.HandleUpdateMe(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	u, _ := st.Users.GetByID(context.Background(), "u1")
	if strings.Contains(u.About, "script") {
		t.Errorf("about was not sanitized: %q", u.About)
	}
	if !strings.Contains(u.About, "<p>hi</p>") {
		t.Errorf("safe markup was stripped: %q", u.About)
	}
}

func TestUpdateMe_Validation(t *testing.T) {
	h, _ := newTestHandler(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing name", `{"stakeholderType":"Individual","country":"Ethiopia"}`},
		{"bad stakeholder type", `{"name":"A","stakeholderType":"Robot","country":"Ethiopia"}`},
		{"missing country", `{"name":"A","stakeholderType":"Individual"}`},
		{"unknown focus area", `{"name":"A","stakeholderType":"Individual","country":"Ethiopia","focusAreas":["Astrology"]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.NewAuthenticatedRequest(http.MethodPut, "/api/me", tc.body, sessionUser("u1", models.RoleStandard))
			rec := testutil.NewRecorder()
			h.HandleUpdateMe(rec, req)
			rec.AssertStatus(t, http.StatusBadRequest)
		})
	}
}

func TestUpdateMe_RequiresSession(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPut, "/api/me", strings.NewReader(`{}`))
	rec := testutil.NewRecorder()
	h.HandleUpdateMe(rec, req)

	rec.AssertStatus(t, http.StatusUnauthorized)
}

func TestSaved_ResolvesVisibleBookmarks(t *testing.T) {
	h, st := newTestHandler(t)
	ctx := context.Background()

	// u3 bookmarks the shared p1 and a pending project owned by u1.
	pending := models.Project{
		ID:      "pp1",
		Title:   "Pending bookmark target",
		OwnerID: "u1",
		Status:  models.StatusPending,
	}
	models.EnsureOwnerCollaborator(&pending)
	if _, err := st.Projects.Create(ctx, pending); err != nil {
		t.Fatalf("seed project: %v", err)
	}
	for _, pid := range []string{"p1", "pp1"} {
		if _, err := st.Users.ToggleSave(ctx, "u3", pid); err != nil {
			t.Fatalf("toggle save %s: %v", pid, err)
		}
	}

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/api/me/saved", "", sessionUser("u3", models.RoleStandard))
	rec := testutil.NewRecorder()
	h.HandleSaved(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	var projects []models.Project
	if err := json.Unmarshal(rec.Body.Bytes(), &projects); err != nil {
		t.Fatalf("decode saved: %v", err)
	}
	if len(projects) != 1 || projects[0].ID != "p1" {
		t.Errorf("saved = %+v, want only p1", projects)
	}
}

func TestSaved_SkipsDeletedProjects(t *testing.T) {
	h, st := newTestHandler(t)
	ctx := context.Background()

	if _, err := st.Users.ToggleSave(ctx, "u3", "p1"); err != nil {
		t.Fatalf("toggle save: %v", err)
	}
	if err := st.Projects.Delete(ctx, "p1"); err != nil {
		t.Fatalf("delete project: %v", err)
	}

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/api/me/saved", "", sessionUser("u3", models.RoleStandard))
	rec := testutil.NewRecorder()
	h.HandleSaved(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "[]")
}
