package user_repo

import (
	"context"
	"errors"
	"fmt"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"tower_backend/internal/model"
	"tower_backend/internal/repository"
)

const (
	table           = "users"
	colID           = "id"
	colName         = "name"
	colLogin        = "login"
	colPasswordHash = "password_hash"
	colBalance      = "balance"

	uniqueViolation = "23505"
)

type repo struct {
	db repository.QuerierGetter
}

func NewUserRepository(db repository.QuerierGetter) repository.UserRepository {
	return &repo{
		db: db,
	}
}

// CreateUser - создает нового пользователя в БД.
// Возвращает ID созданного пользователя, при занятом логине - UserExistsError
func (r *repo) CreateUser(ctx context.Context, user *model.User) (int, error) {
	// Формируем запрос
	query := sq.Insert(table).
		Columns(colName, colLogin, colPasswordHash, colBalance).
		Values(user.Name, user.Login, user.Password, user.Balance).
		Suffix("RETURNING " + colID).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var id int
	err = r.db(ctx).QueryRow(ctx, sqlStr, args...).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, &model.UserExistsError{Msg: fmt.Sprintf("user %s already exists", user.Login)}
		}
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}

	return id, nil
}

// GetUserByLogin - возвращает модель пользователя (ID, Name, Login, Password, Balance) по его логину
func (r *repo) GetUserByLogin(ctx context.Context, login string) (*model.User, error) {
	return r.getUser(ctx, sq.Eq{colLogin: login}, login)
}

// GetUserByID - возвращает модель пользователя по ID
func (r *repo) GetUserByID(ctx context.Context, id int) (*model.User, error) {
	return r.getUser(ctx, sq.Eq{colID: id}, id)
}

func (r *repo) getUser(ctx context.Context, where sq.Eq, key any) (*model.User, error) {
	query := sq.Select(colID, colName, colLogin, colPasswordHash, colBalance).
		From(table).
		Where(where).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var user model.User
	err = r.db(ctx).QueryRow(ctx, sqlStr, args...).Scan(&user.ID, &user.Name, &user.Login, &user.Password, &user.Balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &model.UserNotFoundError{Msg: fmt.Sprintf("user %v not found", key)}
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// GetBalance - получение баланса пользователя по его ID
func (r *repo) GetBalance(ctx context.Context, id int) (decimal.Decimal, error) {
	query := sq.Select(colBalance).
		From(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	return r.scanBalance(ctx, query, id)
}

// LockBalance - получение баланса с блокировкой строки (SELECT ... FOR UPDATE).
// Все операции над балансом и раундом одного пользователя выстраиваются в очередь на этой блокировке
func (r *repo) LockBalance(ctx context.Context, id int) (decimal.Decimal, error) {
	query := sq.Select(colBalance).
		From(table).
		Where(sq.Eq{colID: id}).
		Suffix("FOR UPDATE").
		PlaceholderFormat(sq.Dollar)

	return r.scanBalance(ctx, query, id)
}

func (r *repo) scanBalance(ctx context.Context, query sq.SelectBuilder, id int) (decimal.Decimal, error) {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return decimal.Zero, err
	}

	var balance decimal.Decimal
	err = r.db(ctx).QueryRow(ctx, sqlStr, args...).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, &model.UserNotFoundError{Msg: fmt.Sprintf("user with id %d not found", id)}
		}
		return decimal.Zero, fmt.Errorf("failed to get balance: %w", err)
	}

	return balance, nil
}

// UpdateBalance - обновляет баланс пользователя.
// Принимает ID пользователя и новую сумму баланса
func (r *repo) UpdateBalance(ctx context.Context, id int, balance decimal.Decimal) error {
	query := sq.Update(table).
		Set(colBalance, balance).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &model.UserNotFoundError{Msg: fmt.Sprintf("user with id %d not found", id)}
	}

	return nil
}
