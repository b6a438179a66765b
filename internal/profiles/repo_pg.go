package profiles

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// PGRepo implements Repo using Postgres. List fields are stored as JSONB.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Upsert(ctx context.Context, profile Profile) error {
	const query = `
INSERT INTO profiles (user_id, skills, experience, interests, created_at, updated_at)
VALUES ($1, $2, $3, $4, now(), now())
ON CONFLICT (user_id) DO UPDATE SET
  skills = EXCLUDED.skills,
  experience = EXCLUDED.experience,
  interests = EXCLUDED.interests,
  updated_at = now()`

	skills, err := marshalList(profile.Skills)
	if err != nil {
		return err
	}
	experience, err := marshalList(profile.Experience)
	if err != nil {
		return err
	}
	interests, err := marshalList(profile.Interests)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(ctx, query, profile.UserID, skills, experience, interests)
	return err
}

func (r *PGRepo) GetByUserID(ctx context.Context, userID string) (Profile, error) {
	const query = `
SELECT user_id, skills, experience, interests, created_at, updated_at
FROM profiles
WHERE user_id = $1
LIMIT 1`

	var profile Profile
	var skills, experience, interests []byte
	var updatedAt sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&profile.UserID,
		&skills,
		&experience,
		&interests,
		&profile.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	if profile.Skills, err = unmarshalList(skills); err != nil {
		return Profile{}, fmt.Errorf("decode skills: %w", err)
	}
	if profile.Experience, err = unmarshalList(experience); err != nil {
		return Profile{}, fmt.Errorf("decode experience: %w", err)
	}
	if profile.Interests, err = unmarshalList(interests); err != nil {
		return Profile{}, fmt.Errorf("decode interests: %w", err)
	}
	if updatedAt.Valid {
		profile.UpdatedAt = updatedAt.Time
	} else {
		profile.UpdatedAt = time.Now().UTC()
	}
	return profile, nil
}

func marshalList(values []string) ([]byte, error) {
	if values == nil {
		values = []string{}
	}
	return json.Marshal(values)
}

func unmarshalList(raw []byte) ([]string, error) {
	if len(raw) == 0 {
		return []string{}, nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
