package auth_repo

import (
	"context"
	"errors"
	"fmt"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"tower_backend/internal/model"
	"tower_backend/internal/repository"
)

const (
	table          = "sessions"
	colSessionID   = "session_id"
	colUserID      = "user_id"
	colRefreshHash = "refresh_hash"
	colExpiredTime = "expired_time"
)

type repo struct {
	db repository.QuerierGetter
}

func NewAuthRepository(db repository.QuerierGetter) repository.AuthRepository {
	return &repo{
		db: db,
	}
}

// CreateSession - создает сессию в БД
// Принимает model.Session - (ID, UserID, RefreshToken, ExpiresAt)
func (r *repo) CreateSession(ctx context.Context, session *model.Session) error {
	// Формируем запрос
	query := sq.Insert(table).
		Columns(colSessionID, colUserID, colRefreshHash, colExpiredTime).
		Values(session.ID, session.UserID, session.RefreshToken, session.ExpiresAt).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	if _, err = r.db(ctx).Exec(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	return nil
}

// GetSession - возвращает сессию по ее ID.
// Если сессии нет - UnauthorizedError
func (r *repo) GetSession(ctx context.Context, sessionID string) (*model.Session, error) {
	query := sq.Select(colSessionID, colUserID, colRefreshHash, colExpiredTime).
		From(table).
		Where(sq.Eq{colSessionID: sessionID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var s model.Session
	err = r.db(ctx).QueryRow(ctx, sqlStr, args...).Scan(&s.ID, &s.UserID, &s.RefreshToken, &s.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &model.UnauthorizedError{Msg: "session not found"}
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return &s, nil
}

// DeleteSession - удаляет сессию из БД.
// Принимает sessionID которую надо удалить, отсутствие сессии не ошибка
func (r *repo) DeleteSession(ctx context.Context, sessionID string) error {
	query := sq.Delete(table).
		Where(sq.Eq{colSessionID: sessionID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	if _, err = r.db(ctx).Exec(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}
