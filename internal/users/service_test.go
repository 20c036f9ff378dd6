package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	nextID int64
	users  map[int64]*User
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{nextID: 1, users: map[int64]*User{}}
}

func (f *fakeRepository) CreateUser(_ context.Context, user *User) error {
	for _, existing := range f.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return ErrUserExists
		}
	}
	user.ID = f.nextID
	f.nextID++
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeRepository) GetUser(_ context.Context, id int64) (*User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeRepository) UpdateProfile(_ context.Context, user *User) error {
	if _, ok := f.users[user.ID]; !ok {
		return ErrUserNotFound
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeRepository) SaveQuestionnaire(_ context.Context, userID int64, prefs *Preferences) error {
	user, ok := f.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	user.Preferences = prefs
	user.QuestionnaireCompleted = true
	return nil
}

func (f *fakeRepository) ListMatchCandidates(_ context.Context, excludeUserID int64) ([]*User, error) {
	var out []*User
	for id, user := range f.users {
		if id != excludeUserID && user.QuestionnaireCompleted {
			copied := *user
			out = append(out, &copied)
		}
	}
	return out, nil
}

func TestCreateUser(t *testing.T) {
	svc := NewService(newFakeRepository())

	user, err := svc.CreateUser(context.Background(), &CreateUserDTO{
		Username:    "maya92",
		Email:       "maya@example.com",
		DisplayName: "Maya",
	})
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.False(t, user.QuestionnaireCompleted)
	assert.NotNil(t, user.Interests)
}

func TestCreateUserDuplicate(t *testing.T) {
	svc := NewService(newFakeRepository())

	dto := &CreateUserDTO{Username: "maya92", Email: "maya@example.com", DisplayName: "Maya"}
	_, err := svc.CreateUser(context.Background(), dto)
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), dto)
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestCreateUserRejectsInvalidPayload(t *testing.T) {
	svc := NewService(newFakeRepository())

	_, err := svc.CreateUser(context.Background(), &CreateUserDTO{
		Username:    "a!", // too short and not alphanumeric
		Email:       "not-an-email",
		DisplayName: "Maya",
	})
	assert.Error(t, err)
}

func TestUpdateProfileMergesFields(t *testing.T) {
	svc := NewService(newFakeRepository())

	user, err := svc.CreateUser(context.Background(), &CreateUserDTO{
		Username:    "maya92",
		Email:       "maya@example.com",
		DisplayName: "Maya",
	})
	require.NoError(t, err)

	bio := "Weekend hiker and coffee nerd"
	lat, lng := 1.3521, 103.8198
	updated, err := svc.UpdateProfile(context.Background(), user.ID, &UpdateProfileDTO{
		Bio:       &bio,
		Interests: []string{"hiking", "coffee"},
		Latitude:  &lat,
		Longitude: &lng,
	})
	require.NoError(t, err)

	assert.Equal(t, "Maya", updated.DisplayName) // untouched
	assert.Equal(t, bio, *updated.Bio)
	assert.Equal(t, []string{"hiking", "coffee"}, []string(updated.Interests))
	assert.Equal(t, lat, *updated.Latitude)

	// A second partial update leaves earlier fields alone
	name := "Maya L."
	updated, err = svc.UpdateProfile(context.Background(), user.ID, &UpdateProfileDTO{DisplayName: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.DisplayName)
	assert.Equal(t, bio, *updated.Bio)
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	svc := NewService(newFakeRepository())

	name := "Nobody"
	_, err := svc.UpdateProfile(context.Background(), 42, &UpdateProfileDTO{DisplayName: &name})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSubmitQuestionnaire(t *testing.T) {
	svc := NewService(newFakeRepository())

	user, err := svc.CreateUser(context.Background(), &CreateUserDTO{
		Username:    "maya92",
		Email:       "maya@example.com",
		DisplayName: "Maya",
	})
	require.NoError(t, err)

	updated, err := svc.SubmitQuestionnaire(context.Background(), user.ID, &QuestionnaireDTO{
		SocialStyle:   "ambivert",
		ActivityLevel: "moderately_active",
		BudgetLevel:   "medium",
	})
	require.NoError(t, err)

	assert.True(t, updated.QuestionnaireCompleted)
	require.NotNil(t, updated.Preferences)
	assert.Equal(t, "ambivert", updated.Preferences.SocialStyle)
}

func TestSubmitQuestionnaireRejectsUnknownLevel(t *testing.T) {
	svc := NewService(newFakeRepository())

	_, err := svc.SubmitQuestionnaire(context.Background(), 1, &QuestionnaireDTO{
		ActivityLevel: "couch_potato",
	})
	assert.Error(t, err)
}
