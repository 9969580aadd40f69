package postgres

import (
	"context"
	"database/sql"

	"invite-warden/internal/domain"
	"invite-warden/internal/logger"
	"invite-warden/internal/repository"
)

type attributionRepository struct {
	db *sql.DB
}

func NewAttributionRepository(db *sql.DB) repository.AttributionRepository {
	return &attributionRepository{db: db}
}

func (r *attributionRepository) Upsert(ctx context.Context, rec *domain.Attribution) error {
	query := `INSERT INTO invited_members ("user", inviter, invite, guild, used_at)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT ("user", guild) DO UPDATE
	          SET inviter = EXCLUDED.inviter,
	              invite = EXCLUDED.invite,
	              used_at = EXCLUDED.used_at`
	logger.DatabaseCall("UpsertAttribution", query, "user", rec.UserID, "guild", rec.GuildID)
	res, err := r.db.ExecContext(ctx, query, rec.UserID, rec.InviterID, rec.InviteCode, rec.GuildID, rec.UsedAt)
	var affected int64
	if res != nil {
		affected, _ = res.RowsAffected()
	}
	logger.DatabaseResult("UpsertAttribution", affected, err)
	return err
}

func (r *attributionRepository) GetByMember(ctx context.Context, guildID, userID string) (*domain.Attribution, error) {
	rec := &domain.Attribution{}
	query := `SELECT "user", inviter, invite, guild, used_at FROM invited_members WHERE guild = $1 AND "user" = $2`
	err := r.db.QueryRowContext(ctx, query, guildID, userID).
		Scan(&rec.UserID, &rec.InviterID, &rec.InviteCode, &rec.GuildID, &rec.UsedAt)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *attributionRepository) ListCodesByInviter(ctx context.Context, inviterID string) ([]string, error) {
	query := `SELECT DISTINCT invite FROM invited_members WHERE inviter = $1`
	rows, err := r.db.QueryContext(ctx, query, inviterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

func (r *attributionRepository) ListMembersByInvite(ctx context.Context, guildID, code string) ([]string, error) {
	query := `SELECT "user" FROM invited_members WHERE guild = $1 AND invite = $2`
	rows, err := r.db.QueryContext(ctx, query, guildID, code)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var user string
		if err := rows.Scan(&user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
