package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"rag-chat/internal/model"
)

// MemberRow is one group member joined with its user record.
type MemberRow struct {
	MembershipID uint      `json:"membership_id"`
	UserID       uint      `json:"user_id"`
	UserName     string    `json:"user_name"`
	UserEmail    string    `json:"user_email"`
	JoinedAt     time.Time `json:"joined_at"`
	IsActive     bool      `json:"is_active"`
}

// GroupRow is one of a user's memberships joined with its group record.
type GroupRow struct {
	MembershipID     uint      `json:"membership_id"`
	GroupID          uint      `json:"group_id"`
	GroupName        string    `json:"group_name"`
	GroupDescription string    `json:"group_description"`
	JoinedAt         time.Time `json:"joined_at"`
	IsActive         bool      `json:"is_active"`
}

type MembershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

func (r *MembershipRepository) Create(membership *model.Membership) error {
	return r.db.Create(membership).Error
}

// FindActiveByPair returns the active membership linking the pair, or nil.
func (r *MembershipRepository) FindActiveByPair(userID, groupID uint) (*model.Membership, error) {
	var membership model.Membership
	err := r.db.Where("user_id = ? AND group_id = ?", userID, groupID).First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &membership, nil
}

func (r *MembershipRepository) IsMember(userID, groupID uint) (bool, error) {
	membership, err := r.FindActiveByPair(userID, groupID)
	if err != nil {
		return false, err
	}
	return membership != nil, nil
}

func (r *MembershipRepository) SoftDelete(membership *model.Membership) error {
	return r.db.Delete(membership).Error
}

type memberRecord struct {
	MembershipID uint
	UserID       uint
	UserName     string
	UserEmail    string
	JoinedAt     time.Time
	DeletedAt    gorm.DeletedAt
}

type groupRecord struct {
	MembershipID     uint
	GroupID          uint
	GroupName        string
	GroupDescription string
	JoinedAt         time.Time
	DeletedAt        gorm.DeletedAt
}

// FindGroupMembers lists memberships of a group joined with user data. The
// join is explicit so no lazy relation loading is involved; with
// includeDeleted the soft-deleted memberships are reported too, flagged by
// is_active.
func (r *MembershipRepository) FindGroupMembers(groupID uint, includeDeleted bool) ([]MemberRow, error) {
	var records []memberRecord
	q := r.scope(includeDeleted).Model(&model.Membership{}).
		Select("memberships.id AS membership_id, memberships.user_id AS user_id, users.name AS user_name, users.email AS user_email, memberships.created_at AS joined_at, memberships.deleted_at AS deleted_at").
		Joins("JOIN users ON users.id = memberships.user_id").
		Where("memberships.group_id = ?", groupID).
		Order("memberships.id")
	if err := q.Scan(&records).Error; err != nil {
		return nil, err
	}

	rows := make([]MemberRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, MemberRow{
			MembershipID: rec.MembershipID,
			UserID:       rec.UserID,
			UserName:     rec.UserName,
			UserEmail:    rec.UserEmail,
			JoinedAt:     rec.JoinedAt,
			IsActive:     !rec.DeletedAt.Valid,
		})
	}
	return rows, nil
}

// FindUserGroups is the mirror of FindGroupMembers, joined with groups.
func (r *MembershipRepository) FindUserGroups(userID uint, includeDeleted bool) ([]GroupRow, error) {
	var records []groupRecord
	q := r.scope(includeDeleted).Model(&model.Membership{}).
		Select("memberships.id AS membership_id, memberships.group_id AS group_id, groups.name AS group_name, groups.description AS group_description, memberships.created_at AS joined_at, memberships.deleted_at AS deleted_at").
		Joins("JOIN groups ON groups.id = memberships.group_id").
		Where("memberships.user_id = ?", userID).
		Order("memberships.id")
	if err := q.Scan(&records).Error; err != nil {
		return nil, err
	}

	rows := make([]GroupRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, GroupRow{
			MembershipID:     rec.MembershipID,
			GroupID:          rec.GroupID,
			GroupName:        rec.GroupName,
			GroupDescription: rec.GroupDescription,
			JoinedAt:         rec.JoinedAt,
			IsActive:         !rec.DeletedAt.Valid,
		})
	}
	return rows, nil
}

func (r *MembershipRepository) scope(includeDeleted bool) *gorm.DB {
	if includeDeleted {
		return r.db.Unscoped()
	}
	return r.db
}
