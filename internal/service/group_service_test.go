package service

import (
	"errors"
	"testing"

	"rag-chat/internal/model"
	"rag-chat/internal/repository"
)

func newGroupService(t *testing.T) *GroupService {
	t.Helper()
	return NewGroupService(repository.NewGroupRepository(setupTestDB(t)))
}

func mustCreateGroup(t *testing.T, svc *GroupService, name, description string) *model.Group {
	t.Helper()
	group, err := svc.Create(CreateGroupRequest{Name: name, Description: description})
	if err != nil {
		t.Fatalf("Failed to create group %q: %v", name, err)
	}
	return group
}

func TestGroupService_Create(t *testing.T) {
	svc := newGroupService(t)

	group := mustCreateGroup(t, svc, "engineering", "builds things")
	if group.ID == 0 {
		t.Fatal("Create() did not assign an ID")
	}

	if _, err := svc.Create(CreateGroupRequest{Name: "engineering"}); !errors.Is(err, ErrGroupNameTaken) {
		t.Errorf("Create() duplicate name error = %v, want ErrGroupNameTaken", err)
	}
}

func TestGroupService_Update(t *testing.T) {
	svc := newGroupService(t)
	group := mustCreateGroup(t, svc, "engineering", "builds things")
	mustCreateGroup(t, svc, "design", "draws things")

	updated, err := svc.Update(group.ID, UpdateGroupRequest{Description: strPtr("ships things")})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Description != "ships things" || updated.Name != "engineering" {
		t.Errorf("Update() = %+v, want description changed and name kept", updated)
	}

	if _, err := svc.Update(group.ID, UpdateGroupRequest{Name: strPtr("design")}); !errors.Is(err, ErrGroupNameTaken) {
		t.Errorf("Update() to taken name error = %v, want ErrGroupNameTaken", err)
	}
	if _, err := svc.Update(9999, UpdateGroupRequest{Name: strPtr("ghost")}); !errors.Is(err, ErrGroupNotFound) {
		t.Errorf("Update() missing group error = %v, want ErrGroupNotFound", err)
	}
}

func TestGroupService_NameFreedAfterSoftDelete(t *testing.T) {
	svc := newGroupService(t)
	old := mustCreateGroup(t, svc, "engineering", "v1")

	if err := svc.SoftDelete(old.ID); err != nil {
		t.Fatalf("SoftDelete() error = %v", err)
	}
	fresh := mustCreateGroup(t, svc, "engineering", "v2")
	if fresh.ID == old.ID {
		t.Error("Expected the new group to get a fresh ID")
	}
}

func TestGroupService_Restore(t *testing.T) {
	svc := newGroupService(t)
	group := mustCreateGroup(t, svc, "engineering", "")

	if _, err := svc.Restore(group.ID); !errors.Is(err, ErrNotDeleted) {
		t.Errorf("Restore() of active group error = %v, want ErrNotDeleted", err)
	}

	if err := svc.SoftDelete(group.ID); err != nil {
		t.Fatalf("SoftDelete() error = %v", err)
	}
	restored, err := svc.Restore(group.ID)
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if !restored.IsActive() {
		t.Error("Expected restored group to be active")
	}
}

func TestGroupService_SoftDeleteAll(t *testing.T) {
	svc := newGroupService(t)
	mustCreateGroup(t, svc, "g1", "")
	mustCreateGroup(t, svc, "g2", "")

	count, err := svc.SoftDeleteAll()
	if err != nil {
		t.Fatalf("SoftDeleteAll() error = %v", err)
	}
	if count != 2 {
		t.Errorf("SoftDeleteAll() = %d, want 2", count)
	}

	groups, err := svc.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(groups) != 0 {
		t.Errorf("List() after SoftDeleteAll = %d groups, want 0", len(groups))
	}
}
