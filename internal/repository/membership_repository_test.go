package repository

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"rag-chat/internal/model"
)

func TestMembershipRepository_PairLifecycle(t *testing.T) {
	gdb := setupTestDB(t)
	userRepo := NewUserRepository(gdb)
	groupRepo := NewGroupRepository(gdb)
	repo := NewMembershipRepository(gdb)

	user := createTestUser(t, userRepo, "eve", "eve@example.com")
	group := createTestGroup(t, groupRepo, "research")

	first := &model.Membership{UserID: user.ID, GroupID: group.ID}
	if err := repo.Create(first); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	found, err := repo.FindActiveByPair(user.ID, group.ID)
	if err != nil {
		t.Fatalf("FindActiveByPair() error = %v", err)
	}
	if found == nil || found.ID != first.ID {
		t.Fatalf("FindActiveByPair() = %+v, want membership %d", found, first.ID)
	}

	// A second active membership for the same pair is rejected.
	dup := &model.Membership{UserID: user.ID, GroupID: group.ID}
	if err := repo.Create(dup); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("Create() duplicate active pair error = %v, want ErrDuplicatedKey", err)
	}

	if err := repo.SoftDelete(found); err != nil {
		t.Fatalf("SoftDelete() error = %v", err)
	}
	isMember, err := repo.IsMember(user.ID, group.ID)
	if err != nil {
		t.Fatalf("IsMember() error = %v", err)
	}
	if isMember {
		t.Error("IsMember() = true after removal, want false")
	}

	// Re-adding after removal creates a fresh row; history is preserved.
	second := &model.Membership{UserID: user.ID, GroupID: group.ID}
	if err := repo.Create(second); err != nil {
		t.Fatalf("Create() after removal error = %v", err)
	}
	if second.ID == first.ID {
		t.Error("Expected re-added membership to get a new ID")
	}

	var total int64
	if err := gdb.Unscoped().Model(&model.Membership{}).Where("user_id = ? AND group_id = ?", user.ID, group.ID).Count(&total).Error; err != nil {
		t.Fatalf("Failed to count membership rows: %v", err)
	}
	if total != 2 {
		t.Errorf("Expected 2 membership rows for the pair, found %d", total)
	}
}

func TestMembershipRepository_FindGroupMembers(t *testing.T) {
	gdb := setupTestDB(t)
	userRepo := NewUserRepository(gdb)
	groupRepo := NewGroupRepository(gdb)
	repo := NewMembershipRepository(gdb)

	group := createTestGroup(t, groupRepo, "platform")
	stayer := createTestUser(t, userRepo, "stayer", "stayer@example.com")
	leaver := createTestUser(t, userRepo, "leaver", "leaver@example.com")

	if err := repo.Create(&model.Membership{UserID: stayer.ID, GroupID: group.ID}); err != nil {
		t.Fatalf("Failed to add member: %v", err)
	}
	left := &model.Membership{UserID: leaver.ID, GroupID: group.ID}
	if err := repo.Create(left); err != nil {
		t.Fatalf("Failed to add member: %v", err)
	}
	if err := repo.SoftDelete(left); err != nil {
		t.Fatalf("SoftDelete() error = %v", err)
	}

	members, err := repo.FindGroupMembers(group.ID, false)
	if err != nil {
		t.Fatalf("FindGroupMembers() error = %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("FindGroupMembers(false) = %d rows, want 1", len(members))
	}
	if members[0].UserName != "stayer" || !members[0].IsActive {
		t.Errorf("FindGroupMembers(false)[0] = %+v, want active stayer", members[0])
	}

	members, err = repo.FindGroupMembers(group.ID, true)
	if err != nil {
		t.Fatalf("FindGroupMembers(includeDeleted) error = %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("FindGroupMembers(true) = %d rows, want 2", len(members))
	}
	for _, m := range members {
		switch m.UserName {
		case "stayer":
			if !m.IsActive {
				t.Error("Expected stayer membership to be active")
			}
		case "leaver":
			if m.IsActive {
				t.Error("Expected leaver membership to be inactive")
			}
		default:
			t.Errorf("Unexpected member %q", m.UserName)
		}
	}
}

func TestMembershipRepository_FindUserGroups(t *testing.T) {
	gdb := setupTestDB(t)
	userRepo := NewUserRepository(gdb)
	groupRepo := NewGroupRepository(gdb)
	repo := NewMembershipRepository(gdb)

	user := createTestUser(t, userRepo, "frank", "frank@example.com")
	current := createTestGroup(t, groupRepo, "current-team")
	former := createTestGroup(t, groupRepo, "former-team")

	if err := repo.Create(&model.Membership{UserID: user.ID, GroupID: current.ID}); err != nil {
		t.Fatalf("Failed to add membership: %v", err)
	}
	old := &model.Membership{UserID: user.ID, GroupID: former.ID}
	if err := repo.Create(old); err != nil {
		t.Fatalf("Failed to add membership: %v", err)
	}
	if err := repo.SoftDelete(old); err != nil {
		t.Fatalf("SoftDelete() error = %v", err)
	}

	groups, err := repo.FindUserGroups(user.ID, false)
	if err != nil {
		t.Fatalf("FindUserGroups() error = %v", err)
	}
	if len(groups) != 1 || groups[0].GroupName != "current-team" {
		t.Fatalf("FindUserGroups(false) = %+v, want only current-team", groups)
	}

	groups, err = repo.FindUserGroups(user.ID, true)
	if err != nil {
		t.Fatalf("FindUserGroups(includeDeleted) error = %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("FindUserGroups(true) = %d rows, want 2", len(groups))
	}
}
