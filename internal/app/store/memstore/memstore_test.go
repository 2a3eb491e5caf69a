package memstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ponsectors/ponsectors/internal/app/store"
	"github.com/ponsectors/ponsectors/internal/app/store/memstore"
	"github.com/ponsectors/ponsectors/internal/domain/models"
)

func hashPassword(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(h)
}

func TestUsers_CreateAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	st := memstore.New().Stores()

	u, err := st.Users.Create(ctx, models.User{
		Email:        "  New@Example.COM ",
		Name:         "New User",
		PasswordHash: hashPassword(t, "secret-pw"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.ID == "" {
		t.Fatal("Create did not mint an id")
	}
	if u.EmailCI != "new@example.com" {
		t.Errorf("EmailCI = %q, want normalized", u.EmailCI)
	}

	if _, err := st.Users.Create(ctx, models.User{Email: "new@example.com", Name: "Dup"}); !errors.Is(err, store.ErrDuplicateEmail) {
		t.Errorf("duplicate email: got %v, want ErrDuplicateEmail", err)
	}

	got, err := st.Users.Authenticate(ctx, "NEW@example.com", "secret-pw")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("Authenticate returned user %q, want %q", got.ID, u.ID)
	}
	if _, err := st.Users.Authenticate(ctx, "new@example.com", "wrong"); !errors.Is(err, store.ErrInvalidCredentials) {
		t.Errorf("bad password: got %v, want ErrInvalidCredentials", err)
	}
	if _, err := st.Users.Authenticate(ctx, "nobody@example.com", "x"); !errors.Is(err, store.ErrInvalidCredentials) {
		t.Errorf("unknown email: got %v, want ErrInvalidCredentials", err)
	}
}

func TestUsers_ToggleSaveRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := memstore.NewSeeded().Stores()

	before, err := st.Users.GetByID(ctx, "u1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if before.HasSaved("p1") {
		t.Fatal("fixture user unexpectedly starts with p1 saved")
	}

	after, err := st.Users.ToggleSave(ctx, "u1", "p1")
	if err != nil {
		t.Fatalf("ToggleSave: %v", err)
	}
	if !after.HasSaved("p1") {
		t.Error("first toggle did not add the save")
	}

	after, err = st.Users.ToggleSave(ctx, "u1", "p1")
	if err != nil {
		t.Fatalf("ToggleSave: %v", err)
	}
	if after.HasSaved("p1") {
		t.Error("second toggle did not remove the save")
	}
	if len(after.SavedProjectIDs) != len(before.SavedProjectIDs) {
		t.Errorf("saved list length changed: %d -> %d", len(before.SavedProjectIDs), len(after.SavedProjectIDs))
	}
}

func TestProjects_AddJoinRequestIdempotent(t *testing.T) {
	ctx := context.Background()
	st := memstore.NewSeeded().Stores()

	for i := 0; i < 3; i++ {
		if err := st.Projects.AddJoinRequest(ctx, "p1", "u3"); err != nil {
			t.Fatalf("AddJoinRequest #%d: %v", i+1, err)
		}
	}
	p, err := st.Projects.GetByID(ctx, "p1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	n := 0
	for _, id := range p.JoinRequests {
		if id == "u3" {
			n++
		}
	}
	if n != 1 {
		t.Errorf("u3 appears %d times in join requests, want 1", n)
	}
}

func TestProjects_AddCollaboratorDuplicate(t *testing.T) {
	ctx := context.Background()
	st := memstore.NewSeeded().Stores()

	c := models.Collaborator{UserID: "u3", Role: models.CollaboratorMember, Status: models.CollaboratorActive}
	if err := st.Projects.AddCollaborator(ctx, "p1", c); err != nil {
		t.Fatalf("AddCollaborator: %v", err)
	}
	p, _ := st.Projects.GetByID(ctx, "p1")
	want := len(p.Collaborators)

	if err := st.Projects.AddCollaborator(ctx, "p1", c); !errors.Is(err, store.ErrAlreadyCollaborator) {
		t.Errorf("duplicate collaborator: got %v, want ErrAlreadyCollaborator", err)
	}
	p, _ = st.Projects.GetByID(ctx, "p1")
	if len(p.Collaborators) != want {
		t.Errorf("collaborator list grew on duplicate add: %d -> %d", want, len(p.Collaborators))
	}
}

func TestProjects_TransitionStatusCAS(t *testing.T) {
	ctx := context.Background()
	st := memstore.New().Stores()

	p, err := st.Projects.Create(ctx, models.Project{
		Title:   "Basin Survey",
		OwnerID: "u9",
		Status:  models.StatusPending,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	applied, err := st.Projects.TransitionStatus(ctx, p.ID, models.StatusPending, models.StatusShared)
	if err != nil || !applied {
		t.Fatalf("first transition: applied=%v err=%v", applied, err)
	}

	// A second approval must observe the moved state and leave it alone.
	applied, err = st.Projects.TransitionStatus(ctx, p.ID, models.StatusPending, models.StatusShared)
	if err != nil {
		t.Fatalf("second transition: %v", err)
	}
	if applied {
		t.Error("second transition applied, want no-op")
	}

	got, _ := st.Projects.GetByID(ctx, p.ID)
	if got.Status != models.StatusShared {
		t.Errorf("status = %q, want %q", got.Status, models.StatusShared)
	}
}

func TestProjects_OwnerCollaboratorInvariant(t *testing.T) {
	ctx := context.Background()
	st := memstore.New().Stores()

	p, err := st.Projects.Create(ctx, models.Project{
		Title:   "Seed Bank",
		OwnerID: "u9",
		Status:  models.StatusDraft,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !p.HasCollaborator("u9") {
		t.Fatal("owner missing from collaborators after Create")
	}

	p.Collaborators = nil
	if err := st.Projects.Update(ctx, p); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := st.Projects.GetByID(ctx, p.ID)
	if !got.HasCollaborator("u9") {
		t.Error("owner missing from collaborators after Update stripped them")
	}
}

func TestComments_OrderAndDelete(t *testing.T) {
	ctx := context.Background()
	st := memstore.New().Stores()

	now := time.Now()
	a, _ := st.Comments.Add(ctx, models.Comment{ParentID: "p1", AuthorID: "u1", Text: "first", CreatedAt: now})
	b, _ := st.Comments.Add(ctx, models.Comment{ParentID: "p1", AuthorID: "u2", Text: "second", CreatedAt: now})
	_, _ = st.Comments.Add(ctx, models.Comment{ParentID: "p2", AuthorID: "u1", Text: "other thread", CreatedAt: now})

	list, err := st.Comments.GetByParent(ctx, "p1")
	if err != nil {
		t.Fatalf("GetByParent: %v", err)
	}
	if len(list) != 2 || list[0].ID != a.ID || list[1].ID != b.ID {
		t.Fatalf("unexpected thread order: %+v", list)
	}

	if err := st.Comments.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	list, _ = st.Comments.GetByParent(ctx, "p1")
	if len(list) != 1 || list[0].ID != b.ID {
		t.Errorf("delete removed wrong node: %+v", list)
	}
}

func TestNotifications_NewestFirstAndMarkRead(t *testing.T) {
	ctx := context.Background()
	st := memstore.New().Stores()

	first, _ := st.Notifications.Add(ctx, models.Notification{UserID: "u1", Kind: models.NotifyJoinRequest, Message: "older"})
	second, _ := st.Notifications.Add(ctx, models.Notification{UserID: "u1", Kind: models.NotifyComment, Message: "newer"})

	list, err := st.Notifications.GetByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("GetByUser: %v", err)
	}
	if len(list) != 2 || list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatalf("want newest first, got %+v", list)
	}

	if err := st.Notifications.MarkAsRead(ctx, first.ID); err != nil {
		t.Fatalf("MarkAsRead: %v", err)
	}
	list, _ = st.Notifications.GetByUser(ctx, "u1")
	for _, n := range list {
		if n.ID == first.ID && !n.IsRead {
			t.Error("notification not marked read")
		}
	}
}
