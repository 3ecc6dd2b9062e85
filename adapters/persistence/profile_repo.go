package persistence

import (
	"context"
	"encoding/json"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khanhvu/devconnect/internal/domain/profile"
	"github.com/khanhvu/devconnect/pkg/apperror"
	"github.com/khanhvu/devconnect/pkg/logger"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// postgresProfileRepo stores each profile as a single row: scalar columns
// plus JSONB columns for the embedded lists, so the aggregate is read and
// written as one unit.
type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, log logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: log}
}

const profileColumns = "user_id, handle, company, website, location, bio, status, githubusername, skills, social, experience, education, updated_at"

func (r *postgresProfileRepo) scanProfile(row pgx.Row) (*profile.Profile, error) {
	p := &profile.Profile{}
	var skillsBytes, socialBytes, experienceBytes, educationBytes []byte

	err := row.Scan(
		&p.UserID,
		&p.Handle,
		&p.Company,
		&p.Website,
		&p.Location,
		&p.Bio,
		&p.Status,
		&p.GithubUsername,
		&skillsBytes,
		&socialBytes,
		&experienceBytes,
		&educationBytes,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(skillsBytes, &p.Skills); err != nil {
		r.logger.Warn("Failed to unmarshal profile skills", zap.String("user_id", p.UserID.String()), zap.Error(err))
		p.Skills = []string{}
	}
	if err := json.Unmarshal(socialBytes, &p.Social); err != nil {
		r.logger.Warn("Failed to unmarshal profile social links", zap.String("user_id", p.UserID.String()), zap.Error(err))
		p.Social = profile.SocialLinks{}
	}
	if err := json.Unmarshal(experienceBytes, &p.Experience); err != nil {
		r.logger.Warn("Failed to unmarshal profile experience", zap.String("user_id", p.UserID.String()), zap.Error(err))
		p.Experience = []profile.Experience{}
	}
	if err := json.Unmarshal(educationBytes, &p.Education); err != nil {
		r.logger.Warn("Failed to unmarshal profile education", zap.String("user_id", p.UserID.String()), zap.Error(err))
		p.Education = []profile.Education{}
	}

	return p, nil
}

func (r *postgresProfileRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`
	p, err := r.scanProfile(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("profile", userID.String())
		}
		return nil, mapStoreError("failed to query profile by user", err)
	}
	return p, nil
}

func (r *postgresProfileRepo) FindByHandle(ctx context.Context, handle string) (*profile.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE handle = $1`
	p, err := r.scanProfile(r.db.QueryRow(ctx, query, handle))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("profile", handle)
		}
		return nil, mapStoreError("failed to query profile by handle", err)
	}
	return p, nil
}

func (r *postgresProfileRepo) FindAll(ctx context.Context) ([]*profile.Profile, error) {
	builder := psql.Select(profileColumns).From("profiles")

	query, args, _ := builder.ToSql()
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapStoreError("failed to query profiles", err)
	}
	defer rows.Close()

	profiles := make([]*profile.Profile, 0)
	for rows.Next() {
		p, err := r.scanProfile(rows)
		if err != nil {
			return nil, mapStoreError("failed to scan profile row", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, mapStoreError("error iterating profile rows", err)
	}
	return profiles, nil
}

func (r *postgresProfileRepo) marshalEmbedded(p *profile.Profile) (skills, social, experience, education []byte, err error) {
	if skills, err = json.Marshal(p.Skills); err != nil {
		return nil, nil, nil, nil, apperror.NewInternal("failed to marshal profile skills", err)
	}
	if social, err = json.Marshal(p.Social); err != nil {
		return nil, nil, nil, nil, apperror.NewInternal("failed to marshal profile social links", err)
	}
	if experience, err = json.Marshal(p.Experience); err != nil {
		return nil, nil, nil, nil, apperror.NewInternal("failed to marshal profile experience", err)
	}
	if education, err = json.Marshal(p.Education); err != nil {
		return nil, nil, nil, nil, apperror.NewInternal("failed to marshal profile education", err)
	}
	return skills, social, experience, education, nil
}

func (r *postgresProfileRepo) Create(ctx context.Context, p *profile.Profile) error {
	skills, social, experience, education, err := r.marshalEmbedded(p)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err = r.db.Exec(ctx, query,
		p.UserID, p.Handle, p.Company, p.Website, p.Location, p.Bio, p.Status, p.GithubUsername,
		skills, social, experience, education, p.UpdatedAt,
	)
	if err != nil {
		// the unique index on handle closes the check-then-insert race
		if isUniqueViolation(err) {
			return apperror.NewConflict("profile", "handle", p.Handle)
		}
		return mapStoreError("failed to insert profile", err)
	}
	return nil
}

func (r *postgresProfileRepo) Update(ctx context.Context, p *profile.Profile) error {
	skills, social, experience, education, err := r.marshalEmbedded(p)
	if err != nil {
		return err
	}

	query := `
		UPDATE profiles SET
			handle = $2, company = $3, website = $4, location = $5, bio = $6,
			status = $7, githubusername = $8, skills = $9, social = $10,
			experience = $11, education = $12, updated_at = $13
		WHERE user_id = $1
	`
	cmdTag, err := r.db.Exec(ctx, query,
		p.UserID, p.Handle, p.Company, p.Website, p.Location, p.Bio, p.Status, p.GithubUsername,
		skills, social, experience, education, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.NewConflict("profile", "handle", p.Handle)
		}
		return mapStoreError("failed to update profile", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("profile", p.UserID.String())
	}
	return nil
}

func (r *postgresProfileRepo) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	// unconditional: deleting an absent profile is a success
	_, err := r.db.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID)
	if err != nil {
		return mapStoreError("failed to delete profile", err)
	}
	return nil
}
