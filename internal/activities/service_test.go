package activities

import (
	"context"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	nextID     int64
	activities map[int64]*Activity
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{nextID: 1, activities: map[int64]*Activity{}}
}

func (f *fakeRepository) CreateActivity(_ context.Context, activity *Activity) error {
	activity.ID = f.nextID
	f.nextID++
	activity.ParticipantIDs = pq.Int64Array{activity.CreatorID}
	copied := *activity
	f.activities[activity.ID] = &copied
	return nil
}

func (f *fakeRepository) GetActivity(_ context.Context, id int64) (*Activity, error) {
	activity, ok := f.activities[id]
	if !ok {
		return nil, ErrActivityNotFound
	}
	copied := *activity
	return &copied, nil
}

func (f *fakeRepository) UpdateActivity(_ context.Context, activity *Activity) error {
	if _, ok := f.activities[activity.ID]; !ok {
		return ErrActivityNotFound
	}
	copied := *activity
	f.activities[activity.ID] = &copied
	return nil
}

func (f *fakeRepository) DeleteActivity(_ context.Context, id int64) error {
	if _, ok := f.activities[id]; !ok {
		return ErrActivityNotFound
	}
	delete(f.activities, id)
	return nil
}

func (f *fakeRepository) ListByCreator(_ context.Context, creatorID int64, _ *ListFilters) ([]*Activity, error) {
	var out []*Activity
	for _, a := range f.activities {
		if a.CreatorID == creatorID {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeRepository) ListOpen(_ context.Context) ([]*Activity, error) {
	var out []*Activity
	for _, a := range f.activities {
		if a.Status == StatusUpcoming {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeRepository) JoinActivity(_ context.Context, activityID, userID int64) error {
	activity, ok := f.activities[activityID]
	if !ok {
		return ErrActivityNotFound
	}
	for _, id := range activity.ParticipantIDs {
		if id == userID {
			return ErrAlreadyJoined
		}
	}
	if len(activity.ParticipantIDs) >= activity.MaxParticipants {
		return ErrActivityFull
	}
	activity.ParticipantIDs = append(activity.ParticipantIDs, userID)
	return nil
}

func (f *fakeRepository) LeaveActivity(_ context.Context, activityID, userID int64) error {
	activity, ok := f.activities[activityID]
	if !ok {
		return ErrActivityNotFound
	}
	for i, id := range activity.ParticipantIDs {
		if id == userID {
			activity.ParticipantIDs = append(activity.ParticipantIDs[:i], activity.ParticipantIDs[i+1:]...)
			return nil
		}
	}
	return ErrNotParticipant
}

func (f *fakeRepository) GetCreatorStats(_ context.Context, creatorID int64) (*Stats, error) {
	stats := &Stats{ByStatus: map[string]int{}}
	for _, a := range f.activities {
		if a.CreatorID != creatorID {
			continue
		}
		stats.Total++
		stats.ByStatus[a.Status]++
		if a.Status == StatusUpcoming {
			stats.Upcoming++
		}
	}
	return stats, nil
}

func newTestService(repo Repository, now time.Time) Service {
	svc := NewService(repo).(*service)
	svc.now = func() time.Time { return now }
	return svc
}

func validCreateDTO(date time.Time) *CreateActivityDTO {
	return &CreateActivityDTO{
		Title:           "Morning Trail Run",
		Description:     "Easy-paced 5k along the river trail",
		Category:        "Sports",
		Interests:       []string{"running", "fitness"},
		Date:            date,
		MaxParticipants: 10,
	}
}

func TestCreateActivity(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	repo := newFakeRepository()
	svc := newTestService(repo, now)

	activity, err := svc.CreateActivity(context.Background(), 7, validCreateDTO(now.AddDate(0, 0, 3)))
	require.NoError(t, err)

	assert.Equal(t, StatusUpcoming, activity.Status)
	assert.Equal(t, int64(7), activity.CreatorID)
	assert.Equal(t, []int64{7}, []int64(activity.ParticipantIDs))
}

func TestCreateActivityRejectsPastDate(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	svc := newTestService(newFakeRepository(), now)

	_, err := svc.CreateActivity(context.Background(), 7, validCreateDTO(now.AddDate(0, 0, -1)))
	assert.ErrorIs(t, err, ErrDateInPast)
}

func TestCreateActivityRejectsInvalidPayload(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	svc := newTestService(newFakeRepository(), now)

	dto := validCreateDTO(now.AddDate(0, 0, 3))
	dto.Title = "ab" // below the minimum length

	_, err := svc.CreateActivity(context.Background(), 7, dto)
	assert.Error(t, err)
}

func TestUpdateActivityCreatorOnly(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	repo := newFakeRepository()
	svc := newTestService(repo, now)

	activity, err := svc.CreateActivity(context.Background(), 7, validCreateDTO(now.AddDate(0, 0, 3)))
	require.NoError(t, err)

	title := "Evening Trail Run"
	_, err = svc.UpdateActivity(context.Background(), activity.ID, 99, &UpdateActivityDTO{Title: &title})
	assert.ErrorIs(t, err, ErrNotCreator)

	updated, err := svc.UpdateActivity(context.Background(), activity.ID, 7, &UpdateActivityDTO{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
}

func TestUpdateActivityCannotShrinkBelowParticipants(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	repo := newFakeRepository()
	svc := newTestService(repo, now)

	activity, err := svc.CreateActivity(context.Background(), 7, validCreateDTO(now.AddDate(0, 0, 3)))
	require.NoError(t, err)

	_, err = svc.JoinActivity(context.Background(), activity.ID, 8)
	require.NoError(t, err)
	_, err = svc.JoinActivity(context.Background(), activity.ID, 9)
	require.NoError(t, err)

	smaller := 2
	_, err = svc.UpdateActivity(context.Background(), activity.ID, 7, &UpdateActivityDTO{MaxParticipants: &smaller})
	assert.ErrorContains(t, err, "below current count")

	exact := 3
	updated, err := svc.UpdateActivity(context.Background(), activity.ID, 7, &UpdateActivityDTO{MaxParticipants: &exact})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.MaxParticipants)
}

func TestJoinActivityCapacityAndDuplicates(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	repo := newFakeRepository()
	svc := newTestService(repo, now)

	dto := validCreateDTO(now.AddDate(0, 0, 3))
	dto.MaxParticipants = 2
	activity, err := svc.CreateActivity(context.Background(), 7, dto)
	require.NoError(t, err)

	joined, err := svc.JoinActivity(context.Background(), activity.ID, 8)
	require.NoError(t, err)
	assert.Len(t, joined.ParticipantIDs, 2)

	_, err = svc.JoinActivity(context.Background(), activity.ID, 8)
	assert.ErrorIs(t, err, ErrAlreadyJoined)

	_, err = svc.JoinActivity(context.Background(), activity.ID, 9)
	assert.ErrorIs(t, err, ErrActivityFull)
}

func TestLeaveActivity(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	repo := newFakeRepository()
	svc := newTestService(repo, now)

	activity, err := svc.CreateActivity(context.Background(), 7, validCreateDTO(now.AddDate(0, 0, 3)))
	require.NoError(t, err)

	_, err = svc.LeaveActivity(context.Background(), activity.ID, 7)
	assert.ErrorIs(t, err, ErrCreatorCannotLeave)

	_, err = svc.LeaveActivity(context.Background(), activity.ID, 8)
	assert.ErrorIs(t, err, ErrNotParticipant)

	_, err = svc.JoinActivity(context.Background(), activity.ID, 8)
	require.NoError(t, err)

	left, err := svc.LeaveActivity(context.Background(), activity.ID, 8)
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, []int64(left.ParticipantIDs))
}

func TestDeleteActivityCreatorOnly(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	repo := newFakeRepository()
	svc := newTestService(repo, now)

	activity, err := svc.CreateActivity(context.Background(), 7, validCreateDTO(now.AddDate(0, 0, 3)))
	require.NoError(t, err)

	err = svc.DeleteActivity(context.Background(), activity.ID, 99)
	assert.ErrorIs(t, err, ErrNotCreator)

	err = svc.DeleteActivity(context.Background(), activity.ID, 7)
	require.NoError(t, err)

	_, err = svc.GetActivity(context.Background(), activity.ID)
	assert.ErrorIs(t, err, ErrActivityNotFound)
}

func TestGetCreatorStats(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	repo := newFakeRepository()
	svc := newTestService(repo, now)

	for i := 0; i < 3; i++ {
		_, err := svc.CreateActivity(context.Background(), 7, validCreateDTO(now.AddDate(0, 0, i+1)))
		require.NoError(t, err)
	}
	activity, err := svc.CreateActivity(context.Background(), 7, validCreateDTO(now.AddDate(0, 0, 5)))
	require.NoError(t, err)

	cancelled := StatusCancelled
	_, err = svc.UpdateActivity(context.Background(), activity.ID, 7, &UpdateActivityDTO{Status: &cancelled})
	require.NoError(t, err)

	stats, err := svc.GetCreatorStats(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 3, stats.Upcoming)
	assert.Equal(t, 1, stats.ByStatus[StatusCancelled])
}
