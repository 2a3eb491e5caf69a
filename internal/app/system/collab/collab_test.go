package collab_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/ponsectors/ponsectors/internal/app/store"
	"github.com/ponsectors/ponsectors/internal/app/store/memstore"
	"github.com/ponsectors/ponsectors/internal/app/system/collab"
	"github.com/ponsectors/ponsectors/internal/domain/models"
)

func newService(t *testing.T) (*collab.Service, store.Stores) {
	t.Helper()
	st := memstore.NewSeeded().Stores()
	return collab.New(st, zap.NewNop()), st
}

func TestInviteByEmail(t *testing.T) {
	ctx := context.Background()
	svc, st := newService(t)

	p, err := st.Projects.GetByID(ctx, "p1")
	if err != nil {
		t.Fatalf("fixture project: %v", err)
	}

	invitee, err := svc.InviteByEmail(ctx, p, "Jane@Example.com")
	if err != nil {
		t.Fatalf("InviteByEmail: %v", err)
	}
	if invitee.ID != "u3" {
		t.Errorf("invitee = %q, want u3", invitee.ID)
	}

	got, _ := st.Projects.GetByID(ctx, "p1")
	if !got.HasCollaborator("u3") {
		t.Error("invitee not added to collaborators")
	}

	notes, _ := st.Notifications.GetByUser(ctx, "u3")
	if len(notes) != 1 || notes[0].Kind != models.NotifyInvite {
		t.Errorf("invitee notification missing: %+v", notes)
	}

	// Re-inviting the same user must fail without growing the list.
	if _, err := svc.InviteByEmail(ctx, got, "jane@example.com"); !errors.Is(err, store.ErrAlreadyCollaborator) {
		t.Errorf("second invite: got %v, want ErrAlreadyCollaborator", err)
	}
}

func TestInviteByEmail_UnknownUser(t *testing.T) {
	ctx := context.Background()
	svc, st := newService(t)

	p, _ := st.Projects.GetByID(ctx, "p1")
	if _, err := svc.InviteByEmail(ctx, p, "ghost@example.com"); !errors.Is(err, collab.ErrUserNotFound) {
		t.Errorf("got %v, want ErrUserNotFound", err)
	}
}

func TestRequestJoin_IdempotentNotification(t *testing.T) {
	ctx := context.Background()
	svc, st := newService(t)

	p, _ := st.Projects.GetByID(ctx, "p1")
	if err := svc.RequestJoin(ctx, p, "u3"); err != nil {
		t.Fatalf("RequestJoin: %v", err)
	}

	// Second request against the refreshed project is a no-op.
	p, _ = st.Projects.GetByID(ctx, "p1")
	if err := svc.RequestJoin(ctx, p, "u3"); err != nil {
		t.Fatalf("repeat RequestJoin: %v", err)
	}

	p, _ = st.Projects.GetByID(ctx, "p1")
	if !p.HasJoinRequest("u3") {
		t.Error("join request not recorded")
	}

	notes, _ := st.Notifications.GetByUser(ctx, p.OwnerID)
	joinNotes := 0
	for _, n := range notes {
		if n.Kind == models.NotifyJoinRequest && n.RelatedID == "p1" {
			joinNotes++
		}
	}
	if joinNotes != 1 {
		t.Errorf("owner got %d join notifications, want 1", joinNotes)
	}
}

func TestToggleSave_AdjustsCounter(t *testing.T) {
	ctx := context.Background()
	svc, st := newService(t)

	before, _ := st.Projects.GetByID(ctx, "p1")

	u, saved, err := svc.ToggleSave(ctx, "u1", "p1")
	if err != nil {
		t.Fatalf("ToggleSave: %v", err)
	}
	if !saved || !u.HasSaved("p1") {
		t.Error("first toggle should save")
	}
	mid, _ := st.Projects.GetByID(ctx, "p1")
	if mid.SaveCount != before.SaveCount+1 {
		t.Errorf("save count = %d, want %d", mid.SaveCount, before.SaveCount+1)
	}

	_, saved, err = svc.ToggleSave(ctx, "u1", "p1")
	if err != nil {
		t.Fatalf("ToggleSave: %v", err)
	}
	if saved {
		t.Error("second toggle should unsave")
	}
	after, _ := st.Projects.GetByID(ctx, "p1")
	if after.SaveCount != before.SaveCount {
		t.Errorf("save count = %d, want %d", after.SaveCount, before.SaveCount)
	}
}

func TestToggleSave_UnknownProject(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	if _, _, err := svc.ToggleSave(ctx, "u1", "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}
