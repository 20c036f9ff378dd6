package activities

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Repository interface {
	CreateActivity(ctx context.Context, activity *Activity) error
	GetActivity(ctx context.Context, id int64) (*Activity, error)
	UpdateActivity(ctx context.Context, activity *Activity) error
	DeleteActivity(ctx context.Context, id int64) error
	ListByCreator(ctx context.Context, creatorID int64, filters *ListFilters) ([]*Activity, error)
	ListOpen(ctx context.Context) ([]*Activity, error)
	JoinActivity(ctx context.Context, activityID, userID int64) error
	LeaveActivity(ctx context.Context, activityID, userID int64) error
	GetCreatorStats(ctx context.Context, creatorID int64) (*Stats, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

const selectActivity = `
    SELECT a.*,
           COALESCE(
               (SELECT ARRAY_AGG(ap.user_id ORDER BY ap.joined_at)
                FROM activity_participants ap
                WHERE ap.activity_id = a.id),
               '{}'
           ) AS participant_ids
    FROM activities a
`

func (r *postgresRepository) CreateActivity(ctx context.Context, activity *Activity) error {
	// The creator joins their own activity in the same transaction so
	// "creator is always a member" can never be observed as false
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        INSERT INTO activities (
            title, description, category, interests, date,
            latitude, longitude, max_participants, creator_id, status
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id, created_at, updated_at
    `

	err = tx.QueryRowxContext(
		ctx, query,
		activity.Title, activity.Description, activity.Category,
		pq.Array([]string(activity.Interests)), activity.Date,
		activity.Latitude, activity.Longitude,
		activity.MaxParticipants, activity.CreatorID, activity.Status,
	).Scan(&activity.ID, &activity.CreatedAt, &activity.UpdatedAt)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO activity_participants (activity_id, user_id) VALUES ($1, $2)`,
		activity.ID, activity.CreatorID,
	)
	if err != nil {
		return err
	}

	activity.ParticipantIDs = pq.Int64Array{activity.CreatorID}

	return tx.Commit()
}

func (r *postgresRepository) GetActivity(ctx context.Context, id int64) (*Activity, error) {
	var activity Activity

	err := r.db.GetContext(ctx, &activity, selectActivity+" WHERE a.id = $1", id)
	if err == sql.ErrNoRows {
		return nil, ErrActivityNotFound
	}
	if err != nil {
		return nil, err
	}

	return &activity, nil
}

func (r *postgresRepository) UpdateActivity(ctx context.Context, activity *Activity) error {
	query := `
        UPDATE activities
        SET title = $2, description = $3, category = $4, interests = $5,
            date = $6, latitude = $7, longitude = $8,
            max_participants = $9, status = $10, updated_at = CURRENT_TIMESTAMP
        WHERE id = $1
        RETURNING updated_at
    `

	err := r.db.QueryRowxContext(
		ctx, query,
		activity.ID, activity.Title, activity.Description, activity.Category,
		pq.Array([]string(activity.Interests)), activity.Date,
		activity.Latitude, activity.Longitude,
		activity.MaxParticipants, activity.Status,
	).Scan(&activity.UpdatedAt)

	if err == sql.ErrNoRows {
		return ErrActivityNotFound
	}

	return err
}

func (r *postgresRepository) DeleteActivity(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM activities WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrActivityNotFound
	}

	return nil
}

func (r *postgresRepository) ListByCreator(ctx context.Context, creatorID int64, filters *ListFilters) ([]*Activity, error) {
	query := selectActivity + " WHERE a.creator_id = $1"
	args := []interface{}{creatorID}

	if filters != nil && filters.Status != "" {
		query += " AND a.status = $2"
		args = append(args, filters.Status)
	}

	order := " ORDER BY a.created_at DESC"
	if filters != nil {
		switch filters.Sort {
		case "date":
			order = " ORDER BY a.date ASC"
		case "oldest":
			order = " ORDER BY a.created_at ASC"
		}
	}

	var list []*Activity
	err := r.db.SelectContext(ctx, &list, query+order, args...)
	return list, err
}

func (r *postgresRepository) ListOpen(ctx context.Context) ([]*Activity, error) {
	// Recommendation candidates: upcoming activities only. The
	// pipeline applies the finer-grained filters (past, own, joined,
	// full) itself.
	var list []*Activity
	query := selectActivity + ` WHERE a.status = $1 ORDER BY a.date ASC`

	err := r.db.SelectContext(ctx, &list, query, StatusUpcoming)
	return list, err
}

// JoinActivity adds a participant, atomically enforcing the capacity
// invariant. The activity row is locked for the duration of the check
// so concurrent joins on the same activity serialize and overbooking
// is impossible.
func (r *postgresRepository) JoinActivity(ctx context.Context, activityID, userID int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var maxParticipants int
	err = tx.GetContext(ctx, &maxParticipants,
		`SELECT max_participants FROM activities WHERE id = $1 FOR UPDATE`, activityID)
	if err == sql.ErrNoRows {
		return ErrActivityNotFound
	}
	if err != nil {
		return err
	}

	var count int
	err = tx.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM activity_participants WHERE activity_id = $1`, activityID)
	if err != nil {
		return err
	}

	if count >= maxParticipants {
		return ErrActivityFull
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO activity_participants (activity_id, user_id) VALUES ($1, $2)`,
		activityID, userID,
	)
	if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
		return ErrAlreadyJoined
	}
	if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23503" {
		return fmt.Errorf("join activity %d: %w", activityID, err)
	}
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *postgresRepository) LeaveActivity(ctx context.Context, activityID, userID int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM activity_participants WHERE activity_id = $1 AND user_id = $2`,
		activityID, userID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotParticipant
	}

	return nil
}

func (r *postgresRepository) GetCreatorStats(ctx context.Context, creatorID int64) (*Stats, error) {
	stats := &Stats{ByStatus: make(map[string]int)}

	rows, err := r.db.QueryxContext(ctx,
		`SELECT status, COUNT(*) FROM activities WHERE creator_id = $1 GROUP BY status`,
		creatorID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.ByStatus[status] = count
		stats.Total += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &stats.Upcoming,
		`SELECT COUNT(*) FROM activities
         WHERE creator_id = $1 AND status = $2 AND date >= NOW()`,
		creatorID, StatusUpcoming,
	)
	if err != nil {
		return nil, err
	}

	return stats, nil
}
