package service

import (
	"fmt"

	"gorm.io/gorm"

	"rag-chat/internal/model"
	"rag-chat/internal/repository"
)

// MembershipService manages user-group links. It holds the database handle
// directly so the bulk operators can run their per-item loop inside a
// single transaction with one commit point.
type MembershipService struct {
	db          *gorm.DB
	memberships *repository.MembershipRepository
	users       *repository.UserRepository
	groups      *repository.GroupRepository
}

func NewMembershipService(db *gorm.DB) *MembershipService {
	return &MembershipService{
		db:          db,
		memberships: repository.NewMembershipRepository(db),
		users:       repository.NewUserRepository(db),
		groups:      repository.NewGroupRepository(db),
	}
}

type AddMemberRequest struct {
	UserID  uint `json:"user_id" binding:"required"`
	GroupID uint `json:"group_id" binding:"required"`
}

type BulkMembershipRequest struct {
	GroupID uint   `json:"group_id" binding:"required"`
	UserIDs []uint `json:"user_ids" binding:"required,min=1"`
}

// BulkAddResult classifies every requested user id. Partial failure is
// expected; errors never abort the remaining items.
type BulkAddResult struct {
	AddedCount         int      `json:"added_count"`
	AlreadyMemberCount int      `json:"already_member_count"`
	Errors             []string `json:"errors"`
}

type BulkRemoveResult struct {
	RemovedCount   int      `json:"removed_count"`
	NotMemberCount int      `json:"not_member_count"`
	Errors         []string `json:"errors"`
}

// AddMember links an active user to an active group. The pair may hold at
// most one active membership.
func (s *MembershipService) AddMember(groupID, userID uint) (*model.Membership, error) {
	group, err := s.groups.FindByID(groupID, false)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	user, err := s.users.FindByID(userID, false)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	existing, err := s.memberships.FindActiveByPair(userID, groupID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyMember
	}

	membership := &model.Membership{UserID: userID, GroupID: groupID}
	if err := s.memberships.Create(membership); err != nil {
		return nil, err
	}
	return membership, nil
}

func (s *MembershipService) RemoveMember(groupID, userID uint) error {
	membership, err := s.memberships.FindActiveByPair(userID, groupID)
	if err != nil {
		return err
	}
	if membership == nil {
		return ErrMembershipNotFound
	}
	return s.memberships.SoftDelete(membership)
}

func (s *MembershipService) GroupMembers(groupID uint, includeDeleted bool) ([]repository.MemberRow, error) {
	return s.memberships.FindGroupMembers(groupID, includeDeleted)
}

func (s *MembershipService) UserGroups(userID uint, includeDeleted bool) ([]repository.GroupRow, error) {
	return s.memberships.FindUserGroups(userID, includeDeleted)
}

func (s *MembershipService) IsMember(userID, groupID uint) (bool, error) {
	return s.memberships.IsMember(userID, groupID)
}

// AddMembers adds a batch of users to one group, classifying each id as
// added, already a member, or failed. The group must exist up front; after
// that, per-item failures are recorded and the loop continues. All items
// share the surrounding transaction's single commit.
func (s *MembershipService) AddMembers(groupID uint, userIDs []uint) (*BulkAddResult, error) {
	group, err := s.groups.FindByID(groupID, false)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	result := &BulkAddResult{Errors: make([]string, 0)}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		memberships := repository.NewMembershipRepository(tx)
		users := repository.NewUserRepository(tx)

		for _, userID := range userIDs {
			user, err := users.FindByID(userID, false)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("failed to add user %d: %v", userID, err))
				continue
			}
			if user == nil {
				result.Errors = append(result.Errors, fmt.Sprintf("user with id %d not found", userID))
				continue
			}

			existing, err := memberships.FindActiveByPair(userID, groupID)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("failed to add user %d: %v", userID, err))
				continue
			}
			if existing != nil {
				result.AlreadyMemberCount++
				continue
			}

			membership := &model.Membership{UserID: userID, GroupID: groupID}
			if err := memberships.Create(membership); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("failed to add user %d: %v", userID, err))
				continue
			}
			result.AddedCount++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RemoveMembers is the mirror of AddMembers: each id becomes removed or
// not-a-member, errors are collected, and the batch commits once.
func (s *MembershipService) RemoveMembers(groupID uint, userIDs []uint) (*BulkRemoveResult, error) {
	result := &BulkRemoveResult{Errors: make([]string, 0)}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		memberships := repository.NewMembershipRepository(tx)

		for _, userID := range userIDs {
			membership, err := memberships.FindActiveByPair(userID, groupID)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("failed to remove user %d: %v", userID, err))
				continue
			}
			if membership == nil {
				result.NotMemberCount++
				continue
			}

			if err := memberships.SoftDelete(membership); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("failed to remove user %d: %v", userID, err))
				continue
			}
			result.RemovedCount++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
