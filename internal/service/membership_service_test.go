package service

import (
	"errors"
	"strings"
	"testing"

	"gorm.io/gorm"

	"rag-chat/internal/model"
	"rag-chat/internal/repository"
)

type membershipFixture struct {
	db          *gorm.DB
	memberships *MembershipService
	users       *UserService
	groups      *GroupService
}

func newMembershipFixture(t *testing.T) *membershipFixture {
	t.Helper()
	gdb := setupTestDB(t)
	return &membershipFixture{
		db:          gdb,
		memberships: NewMembershipService(gdb),
		users:       NewUserService(repository.NewUserRepository(gdb)),
		groups:      NewGroupService(repository.NewGroupRepository(gdb)),
	}
}

func (f *membershipFixture) user(t *testing.T, name string) *model.User {
	t.Helper()
	return mustCreateUser(t, f.users, name, name+"@example.com", "password123")
}

func (f *membershipFixture) group(t *testing.T, name string) *model.Group {
	t.Helper()
	return mustCreateGroup(t, f.groups, name, "")
}

func TestMembershipService_AddMember(t *testing.T) {
	f := newMembershipFixture(t)
	user := f.user(t, "alice")
	group := f.group(t, "team")

	membership, err := f.memberships.AddMember(group.ID, user.ID)
	if err != nil {
		t.Fatalf("AddMember() error = %v", err)
	}
	if membership.ID == 0 || membership.UserID != user.ID || membership.GroupID != group.ID {
		t.Errorf("AddMember() = %+v, want a linked membership", membership)
	}

	if _, err := f.memberships.AddMember(group.ID, user.ID); !errors.Is(err, ErrAlreadyMember) {
		t.Errorf("AddMember() twice error = %v, want ErrAlreadyMember", err)
	}
	if _, err := f.memberships.AddMember(9999, user.ID); !errors.Is(err, ErrGroupNotFound) {
		t.Errorf("AddMember() missing group error = %v, want ErrGroupNotFound", err)
	}
	if _, err := f.memberships.AddMember(group.ID, 9999); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("AddMember() missing user error = %v, want ErrUserNotFound", err)
	}
}

func TestMembershipService_SoftDeletedPartiesCannotJoin(t *testing.T) {
	f := newMembershipFixture(t)
	user := f.user(t, "alice")
	group := f.group(t, "team")

	if err := f.users.SoftDelete(user.ID); err != nil {
		t.Fatalf("SoftDelete() error = %v", err)
	}
	if _, err := f.memberships.AddMember(group.ID, user.ID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("AddMember() with soft-deleted user error = %v, want ErrUserNotFound", err)
	}

	other := f.user(t, "bob")
	if err := f.groups.SoftDelete(group.ID); err != nil {
		t.Fatalf("SoftDelete() error = %v", err)
	}
	if _, err := f.memberships.AddMember(group.ID, other.ID); !errors.Is(err, ErrGroupNotFound) {
		t.Errorf("AddMember() to soft-deleted group error = %v, want ErrGroupNotFound", err)
	}
}

func TestMembershipService_RemoveAndReAdd(t *testing.T) {
	f := newMembershipFixture(t)
	user := f.user(t, "alice")
	group := f.group(t, "team")

	first, err := f.memberships.AddMember(group.ID, user.ID)
	if err != nil {
		t.Fatalf("AddMember() error = %v", err)
	}
	if err := f.memberships.RemoveMember(group.ID, user.ID); err != nil {
		t.Fatalf("RemoveMember() error = %v", err)
	}
	if err := f.memberships.RemoveMember(group.ID, user.ID); !errors.Is(err, ErrMembershipNotFound) {
		t.Errorf("RemoveMember() twice error = %v, want ErrMembershipNotFound", err)
	}

	second, err := f.memberships.AddMember(group.ID, user.ID)
	if err != nil {
		t.Fatalf("AddMember() after removal error = %v", err)
	}
	if second.ID == first.ID {
		t.Error("Expected re-added membership to be a new row")
	}

	// Both rows remain in history.
	history, err := f.memberships.UserGroups(user.ID, true)
	if err != nil {
		t.Fatalf("UserGroups(includeDeleted) error = %v", err)
	}
	if len(history) != 2 {
		t.Errorf("UserGroups(includeDeleted) = %d rows, want 2", len(history))
	}
}

func TestMembershipService_BulkAdd(t *testing.T) {
	f := newMembershipFixture(t)
	group := f.group(t, "team")
	newcomer := f.user(t, "newcomer")
	veteran := f.user(t, "veteran")

	if _, err := f.memberships.AddMember(group.ID, veteran.ID); err != nil {
		t.Fatalf("AddMember() error = %v", err)
	}

	result, err := f.memberships.AddMembers(group.ID, []uint{newcomer.ID, veteran.ID, 9999})
	if err != nil {
		t.Fatalf("AddMembers() error = %v", err)
	}
	if result.AddedCount != 1 {
		t.Errorf("AddedCount = %d, want 1", result.AddedCount)
	}
	if result.AlreadyMemberCount != 1 {
		t.Errorf("AlreadyMemberCount = %d, want 1", result.AlreadyMemberCount)
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "not found") {
		t.Errorf("Errors = %v, want one not-found entry", result.Errors)
	}

	isMember, err := f.memberships.IsMember(newcomer.ID, group.ID)
	if err != nil {
		t.Fatalf("IsMember() error = %v", err)
	}
	if !isMember {
		t.Error("Expected newcomer to be a member after bulk add")
	}
}

func TestMembershipService_BulkAddMissingGroup(t *testing.T) {
	f := newMembershipFixture(t)
	user := f.user(t, "alice")

	if _, err := f.memberships.AddMembers(9999, []uint{user.ID}); !errors.Is(err, ErrGroupNotFound) {
		t.Errorf("AddMembers() with missing group error = %v, want ErrGroupNotFound", err)
	}
}

func TestMembershipService_BulkRemove(t *testing.T) {
	f := newMembershipFixture(t)
	group := f.group(t, "team")
	member := f.user(t, "member")
	outsider := f.user(t, "outsider")

	if _, err := f.memberships.AddMember(group.ID, member.ID); err != nil {
		t.Fatalf("AddMember() error = %v", err)
	}

	result, err := f.memberships.RemoveMembers(group.ID, []uint{member.ID, outsider.ID})
	if err != nil {
		t.Fatalf("RemoveMembers() error = %v", err)
	}
	if result.RemovedCount != 1 {
		t.Errorf("RemovedCount = %d, want 1", result.RemovedCount)
	}
	if result.NotMemberCount != 1 {
		t.Errorf("NotMemberCount = %d, want 1", result.NotMemberCount)
	}
	if len(result.Errors) != 0 {
		t.Errorf("Errors = %v, want none", result.Errors)
	}
}

func TestMembershipService_GroupMembers(t *testing.T) {
	f := newMembershipFixture(t)
	group := f.group(t, "team")
	stayer := f.user(t, "stayer")
	leaver := f.user(t, "leaver")

	for _, u := range []*model.User{stayer, leaver} {
		if _, err := f.memberships.AddMember(group.ID, u.ID); err != nil {
			t.Fatalf("AddMember() error = %v", err)
		}
	}
	if err := f.memberships.RemoveMember(group.ID, leaver.ID); err != nil {
		t.Fatalf("RemoveMember() error = %v", err)
	}

	members, err := f.memberships.GroupMembers(group.ID, false)
	if err != nil {
		t.Fatalf("GroupMembers() error = %v", err)
	}
	if len(members) != 1 || members[0].UserName != "stayer" {
		t.Errorf("GroupMembers(false) = %+v, want only stayer", members)
	}

	members, err = f.memberships.GroupMembers(group.ID, true)
	if err != nil {
		t.Fatalf("GroupMembers(includeDeleted) error = %v", err)
	}
	if len(members) != 2 {
		t.Errorf("GroupMembers(true) = %d rows, want 2", len(members))
	}
}
