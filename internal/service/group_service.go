package service

import (
	"errors"

	"gorm.io/gorm"

	"rag-chat/internal/model"
	"rag-chat/internal/repository"
)

type GroupService struct {
	groupRepo *repository.GroupRepository
}

func NewGroupService(groupRepo *repository.GroupRepository) *GroupService {
	return &GroupService{groupRepo: groupRepo}
}

type CreateGroupRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description"`
}

type UpdateGroupRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description"`
}

func (s *GroupService) Create(req CreateGroupRequest) (*model.Group, error) {
	taken, err := s.groupRepo.IsNameTaken(req.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrGroupNameTaken
	}

	group := &model.Group{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.groupRepo.Create(group); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrGroupNameTaken
		}
		return nil, err
	}
	return group, nil
}

func (s *GroupService) GetByID(id uint) (*model.Group, error) {
	group, err := s.groupRepo.FindByID(id, false)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}
	return group, nil
}

func (s *GroupService) List() ([]model.Group, error) {
	return s.groupRepo.FindAll(false)
}

func (s *GroupService) Update(id uint, req UpdateGroupRequest) (*model.Group, error) {
	group, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != group.Name {
		taken, err := s.groupRepo.IsNameTaken(*req.Name)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrGroupNameTaken
		}
		group.Name = *req.Name
	}

	if req.Description != nil {
		group.Description = *req.Description
	}

	if err := s.groupRepo.Save(group); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrGroupNameTaken
		}
		return nil, err
	}
	return group, nil
}

func (s *GroupService) SoftDelete(id uint) error {
	group, err := s.GetByID(id)
	if err != nil {
		return err
	}
	return s.groupRepo.SoftDelete(group)
}

func (s *GroupService) SoftDeleteAll() (int64, error) {
	return s.groupRepo.SoftDeleteAll()
}

func (s *GroupService) Restore(id uint) (*model.Group, error) {
	group, err := s.groupRepo.FindByID(id, true)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}
	if !group.IsDeleted() {
		return nil, ErrNotDeleted
	}
	if err := s.groupRepo.Restore(group); err != nil {
		return nil, err
	}
	return group, nil
}

func (s *GroupService) HardDelete(id uint) error {
	group, err := s.groupRepo.FindByID(id, true)
	if err != nil {
		return err
	}
	if group == nil {
		return ErrGroupNotFound
	}
	return s.groupRepo.HardDelete(group)
}
