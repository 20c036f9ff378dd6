package recommend

import (
	"context"
	"time"

	"github.com/gathrhq/gathr-backend/internal/activities"
	"github.com/gathrhq/gathr-backend/internal/matching"
	"github.com/gathrhq/gathr-backend/internal/users"
)

// UserSource is the slice of the users repository the recommender
// needs. users.Repository satisfies it.
type UserSource interface {
	GetUser(ctx context.Context, id int64) (*users.User, error)
	ListMatchCandidates(ctx context.Context, excludeUserID int64) ([]*users.User, error)
}

// ActivitySource is the slice of the activities repository the
// recommender needs. activities.Repository satisfies it.
type ActivitySource interface {
	GetActivity(ctx context.Context, id int64) (*activities.Activity, error)
	ListOpen(ctx context.Context) ([]*activities.Activity, error)
}

type Service interface {
	RecommendActivities(ctx context.Context, userID int64, opts matching.RecommendOptions) ([]*matching.RankedActivity, error)
	RecommendUsers(ctx context.Context, userID int64, opts matching.MatchOptions) ([]*matching.UserMatch, error)
	ScoreActivity(ctx context.Context, userID, activityID int64) (*matching.ScoreBreakdown, error)
	ExplainMatch(ctx context.Context, userID, otherID int64) (*matching.MatchExplanation, error)
}

type service struct {
	userSource     UserSource
	activitySource ActivitySource
	now            func() time.Time
}

func NewService(userSource UserSource, activitySource ActivitySource) Service {
	return &service{
		userSource:     userSource,
		activitySource: activitySource,
		now:            time.Now,
	}
}

func (s *service) RecommendActivities(ctx context.Context, userID int64, opts matching.RecommendOptions) ([]*matching.RankedActivity, error) {
	start := s.now()

	user, err := s.userSource.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	open, err := s.activitySource.ListOpen(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]*matching.Activity, 0, len(open))
	for _, activity := range open {
		candidates = append(candidates, activity.ToMatching())
	}

	ranked, err := matching.RecommendActivities(user.ToMatching(), candidates, s.now(), opts)
	if err != nil {
		return nil, err
	}

	for _, r := range ranked {
		RecordActivityScore(float64(r.Breakdown.TotalScore))
	}
	RecordRecommendation("activities", s.now().Sub(start))

	return ranked, nil
}

func (s *service) RecommendUsers(ctx context.Context, userID int64, opts matching.MatchOptions) ([]*matching.UserMatch, error) {
	start := s.now()

	user, err := s.userSource.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	others, err := s.userSource.ListMatchCandidates(ctx, userID)
	if err != nil {
		return nil, err
	}

	candidates := make([]*matching.User, 0, len(others))
	for _, other := range others {
		candidates = append(candidates, other.ToMatching())
	}

	matches, err := matching.MatchUsers(user.ToMatching(), candidates, opts)
	if err != nil {
		return nil, err
	}

	RecordRecommendation("users", s.now().Sub(start))

	return matches, nil
}

func (s *service) ScoreActivity(ctx context.Context, userID, activityID int64) (*matching.ScoreBreakdown, error) {
	user, err := s.userSource.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	activity, err := s.activitySource.GetActivity(ctx, activityID)
	if err != nil {
		return nil, err
	}

	breakdown := matching.ScoreActivity(user.ToMatching(), activity.ToMatching(), s.now())
	RecordActivityScore(float64(breakdown.TotalScore))

	return breakdown, nil
}

func (s *service) ExplainMatch(ctx context.Context, userID, otherID int64) (*matching.MatchExplanation, error) {
	user, err := s.userSource.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	other, err := s.userSource.GetUser(ctx, otherID)
	if err != nil {
		return nil, err
	}

	return matching.ExplainMatch(user.ToMatching(), other.ToMatching()), nil
}
