package activities

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/gathrhq/gathr-backend/internal/common/utils"
)

var (
	ErrActivityNotFound   = errors.New("activity not found")
	ErrActivityFull       = errors.New("activity is full")
	ErrAlreadyJoined      = errors.New("already joined this activity")
	ErrNotParticipant     = errors.New("not a participant of this activity")
	ErrCreatorCannotLeave = errors.New("creator cannot leave their own activity")
	ErrNotCreator         = errors.New("only the creator can modify this activity")
	ErrDateInPast         = errors.New("activity date must be in the future")
)

type Service interface {
	CreateActivity(ctx context.Context, creatorID int64, dto *CreateActivityDTO) (*Activity, error)
	GetActivity(ctx context.Context, id int64) (*Activity, error)
	UpdateActivity(ctx context.Context, id, requesterID int64, dto *UpdateActivityDTO) (*Activity, error)
	DeleteActivity(ctx context.Context, id, requesterID int64) error
	ListByCreator(ctx context.Context, creatorID int64, filters *ListFilters) ([]*Activity, error)
	JoinActivity(ctx context.Context, activityID, userID int64) (*Activity, error)
	LeaveActivity(ctx context.Context, activityID, userID int64) (*Activity, error)
	GetCreatorStats(ctx context.Context, creatorID int64) (*Stats, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *service) CreateActivity(ctx context.Context, creatorID int64, dto *CreateActivityDTO) (*Activity, error) {
	if err := utils.ValidateStruct(dto); err != nil {
		return nil, err
	}

	if !dto.Date.After(s.now()) {
		return nil, ErrDateInPast
	}

	activity := &Activity{
		Title:           dto.Title,
		Description:     dto.Description,
		Category:        dto.Category,
		Interests:       pq.StringArray(dto.Interests),
		Date:            dto.Date,
		Latitude:        dto.Latitude,
		Longitude:       dto.Longitude,
		MaxParticipants: dto.MaxParticipants,
		CreatorID:       creatorID,
		Status:          StatusUpcoming,
	}
	if activity.Interests == nil {
		activity.Interests = pq.StringArray{}
	}
	if activity.MaxParticipants == 0 {
		activity.MaxParticipants = 20
	}

	if err := s.repo.CreateActivity(ctx, activity); err != nil {
		return nil, err
	}

	RecordActivityCreated(activity.Category)

	return activity, nil
}

func (s *service) GetActivity(ctx context.Context, id int64) (*Activity, error) {
	return s.repo.GetActivity(ctx, id)
}

func (s *service) UpdateActivity(ctx context.Context, id, requesterID int64, dto *UpdateActivityDTO) (*Activity, error) {
	if err := utils.ValidateStruct(dto); err != nil {
		return nil, err
	}

	activity, err := s.repo.GetActivity(ctx, id)
	if err != nil {
		return nil, err
	}

	if activity.CreatorID != requesterID {
		return nil, ErrNotCreator
	}

	if dto.Date != nil {
		if !dto.Date.After(s.now()) {
			return nil, ErrDateInPast
		}
		activity.Date = *dto.Date
	}
	if dto.MaxParticipants != nil {
		if *dto.MaxParticipants < len(activity.ParticipantIDs) {
			return nil, fmt.Errorf(
				"cannot reduce max participants below current count (%d)",
				len(activity.ParticipantIDs))
		}
		activity.MaxParticipants = *dto.MaxParticipants
	}
	if dto.Title != nil {
		activity.Title = *dto.Title
	}
	if dto.Description != nil {
		activity.Description = *dto.Description
	}
	if dto.Category != nil {
		activity.Category = *dto.Category
	}
	if dto.Interests != nil {
		activity.Interests = pq.StringArray(dto.Interests)
	}
	if dto.Latitude != nil {
		activity.Latitude = dto.Latitude
	}
	if dto.Longitude != nil {
		activity.Longitude = dto.Longitude
	}
	if dto.Status != nil {
		activity.Status = *dto.Status
	}

	if err := s.repo.UpdateActivity(ctx, activity); err != nil {
		return nil, err
	}

	return activity, nil
}

func (s *service) DeleteActivity(ctx context.Context, id, requesterID int64) error {
	activity, err := s.repo.GetActivity(ctx, id)
	if err != nil {
		return err
	}

	if activity.CreatorID != requesterID {
		return ErrNotCreator
	}

	return s.repo.DeleteActivity(ctx, id)
}

func (s *service) ListByCreator(ctx context.Context, creatorID int64, filters *ListFilters) ([]*Activity, error) {
	return s.repo.ListByCreator(ctx, creatorID, filters)
}

func (s *service) JoinActivity(ctx context.Context, activityID, userID int64) (*Activity, error) {
	if err := s.repo.JoinActivity(ctx, activityID, userID); err != nil {
		return nil, err
	}

	RecordJoin()

	return s.repo.GetActivity(ctx, activityID)
}

func (s *service) LeaveActivity(ctx context.Context, activityID, userID int64) (*Activity, error) {
	activity, err := s.repo.GetActivity(ctx, activityID)
	if err != nil {
		return nil, err
	}

	if activity.CreatorID == userID {
		return nil, ErrCreatorCannotLeave
	}

	if err := s.repo.LeaveActivity(ctx, activityID, userID); err != nil {
		return nil, err
	}

	RecordLeave()

	return s.repo.GetActivity(ctx, activityID)
}

func (s *service) GetCreatorStats(ctx context.Context, creatorID int64) (*Stats, error) {
	return s.repo.GetCreatorStats(ctx, creatorID)
}
