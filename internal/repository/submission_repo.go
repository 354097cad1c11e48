package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"founder-assessment/internal/domain"
)

// SubmissionRepository guarda los reportes enviados como registro de leads.
type SubmissionRepository interface {
	Create(ctx context.Context, submission domain.Submission) error
	ListRecent(ctx context.Context, limit int) ([]domain.Submission, error)
}

// DBTX es el subconjunto de *pgxpool.Pool que usa el repositorio.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type PgSubmissionRepository struct {
	pool DBTX
}

func NewPgSubmissionRepository(pool DBTX) *PgSubmissionRepository {
	return &PgSubmissionRepository{pool: pool}
}

func (r *PgSubmissionRepository) Create(ctx context.Context, s domain.Submission) error {
	answers, err := json.Marshal(s.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}
	const query = `
		INSERT INTO assessment_submissions (
			id, first_name, last_name, company_name, email, language,
			answers, total_score, tier, catalog_version, delivered, client_key, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err = r.pool.Exec(ctx, query,
		s.ID,
		s.Contact.FirstName,
		s.Contact.LastName,
		s.Contact.CompanyName,
		s.Contact.Email,
		string(s.Language),
		answers,
		s.TotalScore,
		string(s.Tier),
		s.CatalogVersion,
		s.Delivered,
		s.ClientKey,
		s.CreatedAt,
	)
	return err
}

func (r *PgSubmissionRepository) ListRecent(ctx context.Context, limit int) ([]domain.Submission, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `
		SELECT id, first_name, last_name, company_name, email, language,
			answers, total_score, tier, catalog_version, delivered, created_at
		FROM assessment_submissions
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Submission, error) {
		var (
			s        domain.Submission
			language string
			tier     string
			answers  []byte
		)
		if err := row.Scan(
			&s.ID,
			&s.Contact.FirstName,
			&s.Contact.LastName,
			&s.Contact.CompanyName,
			&s.Contact.Email,
			&language,
			&answers,
			&s.TotalScore,
			&tier,
			&s.CatalogVersion,
			&s.Delivered,
			&s.CreatedAt,
		); err != nil {
			return domain.Submission{}, err
		}
		s.Language = domain.Language(language)
		s.Tier = domain.Tier(tier)
		if len(answers) > 0 {
			if err := json.Unmarshal(answers, &s.Answers); err != nil {
				return domain.Submission{}, fmt.Errorf("unmarshal answers: %w", err)
			}
		}
		return s, nil
	})
}
