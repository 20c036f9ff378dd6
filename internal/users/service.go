package users

import (
	"context"
	"errors"

	"github.com/lib/pq"

	"github.com/gathrhq/gathr-backend/internal/common/utils"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("username or email already taken")
)

type Service interface {
	CreateUser(ctx context.Context, dto *CreateUserDTO) (*User, error)
	GetUser(ctx context.Context, id int64) (*User, error)
	UpdateProfile(ctx context.Context, userID int64, dto *UpdateProfileDTO) (*User, error)
	SubmitQuestionnaire(ctx context.Context, userID int64, dto *QuestionnaireDTO) (*User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateUser(ctx context.Context, dto *CreateUserDTO) (*User, error) {
	if err := utils.ValidateStruct(dto); err != nil {
		return nil, err
	}

	user := &User{
		Username:    dto.Username,
		Email:       dto.Email,
		DisplayName: dto.DisplayName,
		Interests:   pq.StringArray{},
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *service) GetUser(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *service) UpdateProfile(ctx context.Context, userID int64, dto *UpdateProfileDTO) (*User, error) {
	if err := utils.ValidateStruct(dto); err != nil {
		return nil, err
	}

	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if dto.DisplayName != nil {
		user.DisplayName = *dto.DisplayName
	}
	if dto.Bio != nil {
		user.Bio = dto.Bio
	}
	if dto.Interests != nil {
		user.Interests = pq.StringArray(dto.Interests)
	}
	if dto.Latitude != nil {
		user.Latitude = dto.Latitude
	}
	if dto.Longitude != nil {
		user.Longitude = dto.Longitude
	}

	if err := s.repo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *service) SubmitQuestionnaire(ctx context.Context, userID int64, dto *QuestionnaireDTO) (*User, error) {
	if err := utils.ValidateStruct(dto); err != nil {
		return nil, err
	}

	prefs := &Preferences{
		SocialStyle:        dto.SocialStyle,
		ActivityLevel:      dto.ActivityLevel,
		BudgetLevel:        dto.BudgetLevel,
		TimePreference:     dto.TimePreference,
		DayPreference:      dto.DayPreference,
		PreferredGroupSize: dto.PreferredGroupSize,
	}

	if err := s.repo.SaveQuestionnaire(ctx, userID, prefs); err != nil {
		return nil, err
	}

	return s.repo.GetUser(ctx, userID)
}
