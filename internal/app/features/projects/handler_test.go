package projects_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"go.uber.org/zap"

	projectsfeature "github.com/ponsectors/ponsectors/internal/app/features/projects"
	"github.com/ponsectors/ponsectors/internal/app/store/memstore"
	"github.com/ponsectors/ponsectors/internal/app/system/auth"
	"github.com/ponsectors/ponsectors/internal/app/system/collab"
	"github.com/ponsectors/ponsectors/internal/domain/models"
	"github.com/ponsectors/ponsectors/internal/testutil"
)

func newHandler(t *testing.T) (*projectsfeature.Handler, *memstore.Store) {
	t.Helper()
	ms := memstore.NewSeeded()
	st := ms.Stores()
	return projectsfeature.NewHandler(st, collab.New(st, zap.NewNop()), zap.NewNop()), ms
}

func sessionUser(t *testing.T, ms *memstore.Store, id string) auth.SessionUser {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	u, err := ms.Stores().Users.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("fixture user %s: %v", id, err)
	}
	return testutil.SessionFor(u)
}

func TestList_VisibilityFilter(t *testing.T) {
	h, ms := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// u3 owns a pending project that only they and admins may see.
	pending, err := ms.Stores().Projects.Create(ctx, models.Project{
		Title: "Hidden Work", OwnerID: "u3", Status: models.StatusPending,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/api/projects", "", sessionUser(t, ms, "u1"))
	rec := testutil.NewRecorder()
	h.HandleList(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	var list []models.Project
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, p := range list {
		if p.ID == pending.ID {
			t.Error("pending project leaked to a non-owner")
		}
	}

	req = testutil.NewAuthenticatedRequest(http.MethodGet, "/api/projects", "", sessionUser(t, ms, "u3"))
	rec = testutil.NewRecorder()
	h.HandleList(rec.ResponseRecorder, req)
	rec.AssertContains(t, pending.ID)
}

func TestList_KeywordSearch(t *testing.T) {
	h, ms := newHandler(t)

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/api/projects?q=urban+farming", "", sessionUser(t, ms, "u1"))
	rec := testutil.NewRecorder()
	h.HandleList(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	var list []models.Project
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 1 || list[0].Title != "Urban Farming Initiative" {
		t.Errorf("q=urban farming returned %d projects, want the farming one", len(list))
	}
}

func TestList_Pagination(t *testing.T) {
	h, ms := newHandler(t)

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/api/projects?page=1&per_page=1", "", sessionUser(t, ms, "u1"))
	rec := testutil.NewRecorder()
	h.HandleList(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	var first []models.Project
	if err := json.Unmarshal(rec.Body.Bytes(), &first); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("page 1 has %d projects, want 1", len(first))
	}

	req = testutil.NewAuthenticatedRequest(http.MethodGet, "/api/projects?page=2&per_page=1", "", sessionUser(t, ms, "u1"))
	rec = testutil.NewRecorder()
	h.HandleList(rec.ResponseRecorder, req)

	var second []models.Project
	if err := json.Unmarshal(rec.Body.Bytes(), &second); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(second) != 1 || second[0].ID == first[0].ID {
		t.Error("page 2 should hold a different project than page 1")
	}

	// Far past the end is empty, not an error.
	req = testutil.NewAuthenticatedRequest(http.MethodGet, "/api/projects?page=50&per_page=1", "", sessionUser(t, ms, "u1"))
	rec = testutil.NewRecorder()
	h.HandleList(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)
	if body := rec.Body.String(); body != "[]\n" && body != "[]" {
		t.Errorf("past-the-end page = %q, want empty array", body)
	}
}

func TestGet_UnsharedHiddenAs404(t *testing.T) {
	h, ms := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	pending, _ := ms.Stores().Projects.Create(ctx, models.Project{
		Title: "Hidden Work", OwnerID: "u3", Status: models.StatusPending,
	})

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/api/projects/"+pending.ID, "", sessionUser(t, ms, "u1"))
	req = testutil.WithChiURLParam(req, "id", pending.ID)
	rec := testutil.NewRecorder()
	h.HandleGet(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestCreate_DraftAndPendingOnly(t *testing.T) {
	h, ms := newHandler(t)

	body := `{"title":"New Project","thematicArea":"Agriculture and Food Security","status":"Pending"}`
	req := testutil.NewAuthenticatedRequest(http.MethodPost, "/api/projects", body, sessionUser(t, ms, "u1"))
	rec := testutil.NewRecorder()
	h.HandleCreate(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusCreated)

	var p models.Project
	_ = json.Unmarshal(rec.Body.Bytes(), &p)
	if p.Status != models.StatusPending {
		t.Errorf("status = %q, want Pending", p.Status)
	}
	if !p.HasCollaborator("u1") {
		t.Error("creator not seeded as collaborator")
	}

	// Shared cannot be self-assigned.
	body = `{"title":"Sneaky","status":"Shared"}`
	req = testutil.NewAuthenticatedRequest(http.MethodPost, "/api/projects", body, sessionUser(t, ms, "u1"))
	rec = testutil.NewRecorder()
	h.HandleCreate(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestCreate_SanitizesDescription(t *testing.T) {
	h, ms := newHandler(t)

	body := `{"title":"Clean","description":"<p>ok</p><script>alert(1)</script>"}`
	req := testutil.NewAuthenticatedRequest(http.MethodPost, "/api/projects", body, sessionUser(t, ms, "u1"))
	rec := testutil.NewRecorder()
	h.HandleCreate(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusCreated)

	var p models.Project
	_ = json.Unmarshal(rec.Body.Bytes(), &p)
	if p.Description != "<p>ok</p>" {
		t.Errorf("description not sanitized: %q", p.Description)
	}
}

func TestUpdate_ResubmitDraft(t *testing.T) {
	h, ms := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	draft, _ := ms.Stores().Projects.Create(ctx, models.Project{
		Title: "Draft Work", OwnerID: "u1", Status: models.StatusDraft,
	})

	body := `{"title":"Draft Work","status":"Pending"}`
	req := testutil.NewAuthenticatedRequest(http.MethodPut, "/api/projects/"+draft.ID, body, sessionUser(t, ms, "u1"))
	req = testutil.WithChiURLParam(req, "id", draft.ID)
	rec := testutil.NewRecorder()
	h.HandleUpdate(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	got, _ := ms.Stores().Projects.GetByID(ctx, draft.ID)
	if got.Status != models.StatusPending {
		t.Errorf("status = %q, want Pending", got.Status)
	}
}

func TestUpdate_RejectedCannotResubmit(t *testing.T) {
	h, ms := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rejected, _ := ms.Stores().Projects.Create(ctx, models.Project{
		Title: "Turned Down", OwnerID: "u1", Status: models.StatusRejected,
	})

	body := `{"title":"Turned Down","status":"Pending"}`
	req := testutil.NewAuthenticatedRequest(http.MethodPut, "/api/projects/"+rejected.ID, body, sessionUser(t, ms, "u1"))
	req = testutil.WithChiURLParam(req, "id", rejected.ID)
	rec := testutil.NewRecorder()
	h.HandleUpdate(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestUpdate_ForbiddenForStranger(t *testing.T) {
	h, ms := newHandler(t)

	body := `{"title":"Hijack"}`
	req := testutil.NewAuthenticatedRequest(http.MethodPut, "/api/projects/p1", body, sessionUser(t, ms, "u3"))
	req = testutil.WithChiURLParam(req, "id", "p1")
	rec := testutil.NewRecorder()
	h.HandleUpdate(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusForbidden)
}

func TestJoinRequestThenInvite(t *testing.T) {
	h, ms := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// u3 asks to join u1's project.
	req := testutil.NewAuthenticatedRequest(http.MethodPost, "/api/projects/p1/join-request", "", sessionUser(t, ms, "u3"))
	req = testutil.WithChiURLParam(req, "id", "p1")
	rec := testutil.NewRecorder()
	h.HandleJoinRequest(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	p, _ := ms.Stores().Projects.GetByID(ctx, "p1")
	if !p.HasJoinRequest("u3") {
		t.Fatal("join request not recorded")
	}

	// Owner invites them by email.
	req = testutil.NewAuthenticatedRequest(http.MethodPost, "/api/projects/p1/invite", `{"email":"jane@example.com"}`, sessionUser(t, ms, "u1"))
	req = testutil.WithChiURLParam(req, "id", "p1")
	rec = testutil.NewRecorder()
	h.HandleInvite(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	p, _ = ms.Stores().Projects.GetByID(ctx, "p1")
	if !p.HasCollaborator("u3") {
		t.Fatal("invitee not a collaborator")
	}
	// The join-request entry stays; the invite is the only promotion path.
	if !p.HasJoinRequest("u3") {
		t.Error("join request entry should remain after invite")
	}

	// Now a collaborator, u3 can edit the project.
	body := `{"title":"Urban Farming Initiative v2"}`
	req = testutil.NewAuthenticatedRequest(http.MethodPut, "/api/projects/p1", body, sessionUser(t, ms, "u3"))
	req = testutil.WithChiURLParam(req, "id", "p1")
	rec = testutil.NewRecorder()
	h.HandleUpdate(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)
}

func TestInvite_OwnerOnly(t *testing.T) {
	h, ms := newHandler(t)

	req := testutil.NewAuthenticatedRequest(http.MethodPost, "/api/projects/p1/invite", `{"email":"jane@example.com"}`, sessionUser(t, ms, "u3"))
	req = testutil.WithChiURLParam(req, "id", "p1")
	rec := testutil.NewRecorder()
	h.HandleInvite(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusForbidden)
}

func TestSaveToggle(t *testing.T) {
	h, ms := newHandler(t)

	req := testutil.NewAuthenticatedRequest(http.MethodPost, "/api/projects/p1/save", "", sessionUser(t, ms, "u3"))
	req = testutil.WithChiURLParam(req, "id", "p1")
	rec := testutil.NewRecorder()
	h.HandleSave(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"saved":true`)

	req = testutil.NewAuthenticatedRequest(http.MethodPost, "/api/projects/p1/save", "", sessionUser(t, ms, "u3"))
	req = testutil.WithChiURLParam(req, "id", "p1")
	rec = testutil.NewRecorder()
	h.HandleSave(rec.ResponseRecorder, req)
	rec.AssertContains(t, `"saved":false`)
}

func TestComments_AddTreeDelete(t *testing.T) {
	h, ms := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	add := func(user, body string) string {
		req := testutil.NewAuthenticatedRequest(http.MethodPost, "/api/projects/p1/comments", body, sessionUser(t, ms, user))
		req = testutil.WithChiURLParam(req, "id", "p1")
		rec := testutil.NewRecorder()
		h.HandleAddComment(rec.ResponseRecorder, req)
		rec.AssertStatus(t, http.StatusCreated)
		var c models.Comment
		_ = json.Unmarshal(rec.Body.Bytes(), &c)
		return c.ID
	}

	rootID := add("u3", `{"text":"Great initiative!"}`)
	add("u1", `{"text":"Thanks!","replyToId":"`+rootID+`"}`)

	p, _ := ms.Stores().Projects.GetByID(ctx, "p1")
	if p.CommentCount != 2 {
		t.Errorf("comment count = %d, want 2", p.CommentCount)
	}

	// Owner got notified about the stranger's comment only.
	notes, _ := ms.Stores().Notifications.GetByUser(ctx, "u1")
	commentNotes := 0
	for _, n := range notes {
		if n.Kind == models.NotifyComment {
			commentNotes++
		}
	}
	if commentNotes != 1 {
		t.Errorf("owner comment notifications = %d, want 1", commentNotes)
	}

	// Replying to a comment that is not in this thread fails.
	req := testutil.NewAuthenticatedRequest(http.MethodPost, "/api/projects/p1/comments", `{"text":"??","replyToId":"bogus"}`, sessionUser(t, ms, "u3"))
	req = testutil.WithChiURLParam(req, "id", "p1")
	rec := testutil.NewRecorder()
	h.HandleAddComment(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusBadRequest)

	// Stranger cannot delete someone else's comment.
	req = testutil.NewAuthenticatedRequest(http.MethodDelete, "/api/projects/p1/comments/"+rootID, "", sessionUser(t, ms, "u2"))
	req = testutil.WithChiURLParams(req, map[string]string{"id": "p1", "commentID": rootID})
	rec = testutil.NewRecorder()
	h.HandleDeleteComment(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusForbidden)

	// The author can.
	req = testutil.NewAuthenticatedRequest(http.MethodDelete, "/api/projects/p1/comments/"+rootID, "", sessionUser(t, ms, "u3"))
	req = testutil.WithChiURLParams(req, map[string]string{"id": "p1", "commentID": rootID})
	rec = testutil.NewRecorder()
	h.HandleDeleteComment(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	p, _ = ms.Stores().Projects.GetByID(ctx, "p1")
	if p.CommentCount != 1 {
		t.Errorf("comment count after delete = %d, want 1", p.CommentCount)
	}

	// The orphaned reply is promoted to a root in the rebuilt tree.
	req = testutil.NewAuthenticatedRequest(http.MethodGet, "/api/projects/p1/comments", "", sessionUser(t, ms, "u1"))
	req = testutil.WithChiURLParam(req, "id", "p1")
	rec = testutil.NewRecorder()
	h.HandleListComments(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Thanks!")
}
