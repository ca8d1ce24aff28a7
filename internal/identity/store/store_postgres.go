package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"rankbridge/internal/identity/models"
	id "rankbridge/pkg/domain"
	"rankbridge/pkg/platform/sentinel"
	txcontext "rankbridge/pkg/platform/tx"
	"rankbridge/pkg/requestcontext"
)

const pqUniqueViolation = "23505"

// PostgresStore persists identities in the identities table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed identity store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) Register(ctx context.Context, identity *models.Identity) error {
	if identity == nil {
		return fmt.Errorf("identity is required")
	}
	query := `
		INSERT INTO identities (global_id, voice_identity, active, created_at, activated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		int64(identity.GlobalID),
		identity.VoiceIdentity.String(),
		identity.Active,
		identity.CreatedAt,
		nullTime(identity),
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return fmt.Errorf("register identity %s (%s): %w", identity.GlobalID, pqErr.Constraint, sentinel.ErrConflict)
		}
		return fmt.Errorf("register identity: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByGlobalID(ctx context.Context, globalID id.GlobalID) (*models.Identity, error) {
	query := `
		SELECT global_id, voice_identity, active, created_at, activated_at
		FROM identities
		WHERE global_id = $1
	`
	var (
		rawID       int64
		voice       string
		identity    models.Identity
		activatedAt sql.NullTime
	)
	err := s.execer(ctx).QueryRowContext(ctx, query, int64(globalID)).
		Scan(&rawID, &voice, &identity.Active, &identity.CreatedAt, &activatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find identity: %w", err)
	}
	identity.GlobalID = id.GlobalID(rawID)
	identity.VoiceIdentity = id.VoiceIdentity(voice)
	if activatedAt.Valid {
		identity.ActivatedAt = &activatedAt.Time
	}
	return &identity, nil
}

func (s *PostgresStore) Registration(ctx context.Context, globalID id.GlobalID) (id.Registration, error) {
	var active bool
	err := s.execer(ctx).QueryRowContext(ctx,
		`SELECT active FROM identities WHERE global_id = $1`, int64(globalID)).Scan(&active)
	if errors.Is(err, sql.ErrNoRows) {
		return id.Registration{}, nil
	}
	if err != nil {
		return id.Registration{}, fmt.Errorf("read registration: %w", err)
	}
	return id.Registration{Registered: true, Active: active}, nil
}

func (s *PostgresStore) IsRegistered(ctx context.Context, globalID id.GlobalID) (bool, error) {
	reg, err := s.Registration(ctx, globalID)
	if err != nil {
		return false, err
	}
	return reg.Registered, nil
}

func (s *PostgresStore) MarkActive(ctx context.Context, globalID id.GlobalID) error {
	query := `
		UPDATE identities
		SET active = TRUE, activated_at = COALESCE(activated_at, $2)
		WHERE global_id = $1
	`
	res, err := s.execer(ctx).ExecContext(ctx, query, int64(globalID), requestcontext.Now(ctx))
	if err != nil {
		return fmt.Errorf("activate identity: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) DeleteIdentity(ctx context.Context, globalID id.GlobalID) error {
	res, err := s.execer(ctx).ExecContext(ctx, `DELETE FROM identities WHERE global_id = $1`, int64(globalID))
	if err != nil {
		return fmt.Errorf("delete identity: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) VoiceIdentityOf(ctx context.Context, globalID id.GlobalID) (id.VoiceIdentity, error) {
	var voice string
	err := s.execer(ctx).QueryRowContext(ctx,
		`SELECT voice_identity FROM identities WHERE global_id = $1`, int64(globalID)).Scan(&voice)
	if errors.Is(err, sql.ErrNoRows) {
		return "", sentinel.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("find voice identity: %w", err)
	}
	return id.VoiceIdentity(voice), nil
}

func (s *PostgresStore) GlobalIDOf(ctx context.Context, voice id.VoiceIdentity) (id.GlobalID, error) {
	var rawID int64
	err := s.execer(ctx).QueryRowContext(ctx,
		`SELECT global_id FROM identities WHERE voice_identity = $1`, voice.String()).Scan(&rawID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, sentinel.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("find global id: %w", err)
	}
	return id.GlobalID(rawID), nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func nullTime(identity *models.Identity) sql.NullTime {
	if identity.ActivatedAt == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *identity.ActivatedAt, Valid: true}
}
