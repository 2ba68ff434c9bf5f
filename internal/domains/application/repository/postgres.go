package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"megheza-backend/internal/domains/application/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

const (
	uniqueViolation    = "23505"
	emailUniqueIndex   = "idx_journalist_applications_email"
	selectApplications = `
		SELECT
			id, full_name, email, location, languages, pronouns,
			primary_role, other_role, media_affiliation, portfolio,
			domain_contribution_1, domain_contribution_additional, video_submission,
			profile_picture, press_card,
			recognition, subjects, motivation, reason,
			affiliation, affiliation_details,
			self_declaration, terms_agreement, verified,
			created_at, updated_at
		FROM journalist_applications
	`
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresRepository) Create(ctx context.Context, app *model.Application) error {
	query := `
		INSERT INTO journalist_applications (
			id, full_name, email, location, languages, pronouns,
			primary_role, other_role, media_affiliation, portfolio,
			domain_contribution_1, domain_contribution_additional, video_submission,
			profile_picture, press_card,
			recognition, subjects, motivation, reason,
			affiliation, affiliation_details,
			self_declaration, terms_agreement, verified,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26
		)
	`

	_, err := r.pool.Exec(ctx, query,
		app.ID,
		app.FullName,
		strings.ToLower(app.Email),
		app.Location,
		pq.Array(app.Languages),
		app.Pronouns,
		string(app.PrimaryRole),
		app.OtherRole,
		app.MediaAffiliation,
		app.Portfolio,
		app.DomainContribution1,
		app.DomainContributionAdditional,
		app.VideoSubmission,
		app.ProfilePicture,
		app.PressCard,
		app.Recognition,
		app.Subjects,
		app.Motivation,
		app.Reason,
		string(app.Affiliation),
		app.AffiliationDetails,
		app.SelfDeclaration,
		app.TermsAgreement,
		app.Verified,
		app.CreatedAt,
		app.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == emailUniqueIndex {
			return model.ErrDuplicateEmail
		}
		return fmt.Errorf("%w: create application: %v", model.ErrStoreUnavailable, err)
	}

	return nil
}

// =====================================================
// READ
// =====================================================

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Application, error) {
	row := r.pool.QueryRow(ctx, selectApplications+` WHERE id = $1`, id)

	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("%w: get application: %v", model.ErrStoreUnavailable, err)
	}
	return app, nil
}

func (r *postgresRepository) List(ctx context.Context, filter model.ListFilter) ([]*model.Application, error) {
	query := selectApplications
	args := []interface{}{}
	if filter.Verified != nil {
		query += ` WHERE verified = $1`
		args = append(args, *filter.Verified)
	}
	query += ` ORDER BY created_at DESC`

	return r.query(ctx, "list applications", query, args...)
}

func (r *postgresRepository) ListRedactable(ctx context.Context, cutoff time.Time) ([]*model.Application, error) {
	query := selectApplications + `
		WHERE verified = TRUE AND created_at < $1 AND press_card IS NOT NULL
		ORDER BY created_at
	`
	return r.query(ctx, "list redactable applications", query, cutoff)
}

func (r *postgresRepository) query(ctx context.Context, op, query string, args ...interface{}) ([]*model.Application, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", model.ErrStoreUnavailable, op, err)
	}
	defer rows.Close()

	apps := make([]*model.Application, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: scan: %v", model.ErrStoreUnavailable, op, err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", model.ErrStoreUnavailable, op, err)
	}
	return apps, nil
}

func scanApplication(row pgx.Row) (*model.Application, error) {
	app := &model.Application{}
	var (
		languages   []string
		role        string
		affiliation string
	)

	err := row.Scan(
		&app.ID,
		&app.FullName,
		&app.Email,
		&app.Location,
		&languages,
		&app.Pronouns,
		&role,
		&app.OtherRole,
		&app.MediaAffiliation,
		&app.Portfolio,
		&app.DomainContribution1,
		&app.DomainContributionAdditional,
		&app.VideoSubmission,
		&app.ProfilePicture,
		&app.PressCard,
		&app.Recognition,
		&app.Subjects,
		&app.Motivation,
		&app.Reason,
		&affiliation,
		&app.AffiliationDetails,
		&app.SelfDeclaration,
		&app.TermsAgreement,
		&app.Verified,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	app.Languages = languages
	app.PrimaryRole = model.Role(role)
	app.Affiliation = model.Affiliation(affiliation)
	return app, nil
}

// =====================================================
// UPDATE
// =====================================================

func (r *postgresRepository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) (bool, error) {
	// The old value is read from the row locked by the UPDATE itself.
	query := `
		UPDATE journalist_applications AS a
		SET verified = $2, updated_at = NOW()
		FROM (SELECT id, verified FROM journalist_applications WHERE id = $1 FOR UPDATE) AS prev
		WHERE a.id = prev.id
		RETURNING prev.verified
	`

	var previous bool
	err := r.pool.QueryRow(ctx, query, id, verified).Scan(&previous)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, model.ErrApplicationNotFound
		}
		return false, fmt.Errorf("%w: set verified: %v", model.ErrStoreUnavailable, err)
	}
	return previous, nil
}

func (r *postgresRepository) SetDocument(ctx context.Context, id uuid.UUID, field string, value *string) error {
	var column string
	switch field {
	case model.FieldProfilePicture:
		column = "profile_picture"
	case model.FieldPressCard:
		column = "press_card"
	default:
		return model.ErrUnknownDocument
	}

	query := fmt.Sprintf(`UPDATE journalist_applications SET %s = $2, updated_at = NOW() WHERE id = $1`, column)
	return r.execOne(ctx, "set document", query, id, value)
}

func (r *postgresRepository) ClearPressCard(ctx context.Context, id uuid.UUID) error {
	return r.SetDocument(ctx, id, model.FieldPressCard, nil)
}

// =====================================================
// DELETE
// =====================================================

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.execOne(ctx, "delete application", `DELETE FROM journalist_applications WHERE id = $1`, id)
}

func (r *postgresRepository) execOne(ctx context.Context, op, query string, args ...interface{}) error {
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", model.ErrStoreUnavailable, op, err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrApplicationNotFound
	}
	return nil
}
