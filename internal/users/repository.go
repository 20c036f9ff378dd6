package users

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Repository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id int64) (*User, error)
	UpdateProfile(ctx context.Context, user *User) error
	SaveQuestionnaire(ctx context.Context, userID int64, prefs *Preferences) error
	ListMatchCandidates(ctx context.Context, excludeUserID int64) ([]*User, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateUser(ctx context.Context, user *User) error {
	query := `
        INSERT INTO users (username, email, display_name, interests)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at
    `

	err := r.db.QueryRowxContext(
		ctx, query,
		user.Username, user.Email, user.DisplayName, pq.Array([]string(user.Interests)),
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
		return ErrUserExists
	}

	return err
}

func (r *postgresRepository) GetUser(ctx context.Context, id int64) (*User, error) {
	var user User
	query := `SELECT * FROM users WHERE id = $1`

	err := r.db.GetContext(ctx, &user, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	// Joined activities live in the participants table
	joinedQuery := `
        SELECT activity_id FROM activity_participants
        WHERE user_id = $1
        ORDER BY activity_id
    `
	if err := r.db.SelectContext(ctx, &user.JoinedActivityIDs, joinedQuery, id); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *postgresRepository) UpdateProfile(ctx context.Context, user *User) error {
	query := `
        UPDATE users
        SET display_name = $2, bio = $3, interests = $4,
            latitude = $5, longitude = $6, updated_at = CURRENT_TIMESTAMP
        WHERE id = $1
        RETURNING updated_at
    `

	err := r.db.QueryRowxContext(
		ctx, query,
		user.ID, user.DisplayName, user.Bio, pq.Array([]string(user.Interests)),
		user.Latitude, user.Longitude,
	).Scan(&user.UpdatedAt)

	if err == sql.ErrNoRows {
		return ErrUserNotFound
	}

	return err
}

func (r *postgresRepository) SaveQuestionnaire(ctx context.Context, userID int64, prefs *Preferences) error {
	query := `
        UPDATE users
        SET preferences = $2, questionnaire_completed = TRUE,
            updated_at = CURRENT_TIMESTAMP
        WHERE id = $1
    `

	result, err := r.db.ExecContext(ctx, query, userID, prefs)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *postgresRepository) ListMatchCandidates(ctx context.Context, excludeUserID int64) ([]*User, error) {
	var candidates []*User

	// Only users who completed the questionnaire are matchable
	query := `
        SELECT * FROM users
        WHERE questionnaire_completed = TRUE AND id != $1
        ORDER BY id
    `

	err := r.db.SelectContext(ctx, &candidates, query, excludeUserID)
	return candidates, err
}
