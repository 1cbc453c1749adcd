// Package storage реализует хранилище учётных записей на основе PostgreSQL.
// Уникальность email и одноразовость токена подтверждения обеспечиваются
// ограничениями и условными обновлениями на стороне базы.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/magabrotheeeer/user-identity/internal/models"
)

const emailConstraint = "accounts_email_key"

const accountColumns = `uid, email, password_hash, subscription, session_token,
			      verification_token, verified, avatar_url, created_at`

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с учётными записями.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// Close закрывает пул соединений.
func (s *Storage) Close() error {
	return s.DB.Close()
}

// Insert сохраняет новую учётную запись в состоянии "не подтверждена".
// Если email занят, возвращает models.ErrConflict.
func (s *Storage) Insert(ctx context.Context, draft models.AccountDraft) (*models.Account, error) {
	const op = "storage.Insert"

	query := `INSERT INTO accounts (email, password_hash, subscription, verification_token, avatar_url)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING ` + accountColumns
	row := s.DB.QueryRowContext(ctx, query,
		draft.Email, draft.PasswordHash, string(draft.Subscription), draft.VerificationToken, draft.AvatarURL)
	acc, err := scanAccount(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation && pgErr.ConstraintName == emailConstraint {
			return nil, fmt.Errorf("%s: %w", op, models.ErrConflict)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return acc, nil
}

// FindByEmail возвращает учётную запись по точному совпадению email.
func (s *Storage) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	const op = "storage.FindByEmail"
	return s.findOne(ctx, op, `WHERE email = $1`, email)
}

// FindByUUID возвращает учётную запись по её идентификатору.
func (s *Storage) FindByUUID(ctx context.Context, uid string) (*models.Account, error) {
	const op = "storage.FindByUUID"
	return s.findOne(ctx, op, `WHERE uid = $1`, uid)
}

// FindByVerificationToken возвращает неподтверждённую учётную запись по токену подтверждения.
func (s *Storage) FindByVerificationToken(ctx context.Context, token string) (*models.Account, error) {
	const op = "storage.FindByVerificationToken"
	return s.findOne(ctx, op, `WHERE verification_token = $1`, token)
}

// ListAll возвращает все учётные записи в порядке создания.
func (s *Storage) ListAll(ctx context.Context) ([]*models.Account, error) {
	const op = "storage.ListAll"

	rows, err := s.DB.QueryContext(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY created_at, uid`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, acc)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// Update применяет частичное обновление и возвращает учётную запись после изменения.
// Пустой patch просто перечитывает запись.
func (s *Storage) Update(ctx context.Context, uid string, patch models.AccountPatch) (*models.Account, error) {
	const op = "storage.Update"

	var sets []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, column+" = $"+strconv.Itoa(len(args)))
	}
	addNullable := func(column string, value *string) {
		if *value == "" {
			sets = append(sets, column+" = NULL")
			return
		}
		add(column, *value)
	}

	if patch.SessionToken != nil {
		addNullable("session_token", patch.SessionToken)
	}
	if patch.VerificationToken != nil {
		addNullable("verification_token", patch.VerificationToken)
	}
	if patch.Verified != nil {
		add("verified", *patch.Verified)
	}
	if patch.AvatarURL != nil {
		add("avatar_url", *patch.AvatarURL)
	}
	if patch.Subscription != nil {
		add("subscription", string(*patch.Subscription))
	}
	if len(sets) == 0 {
		return s.FindByUUID(ctx, uid)
	}

	args = append(args, uid)
	query := `UPDATE accounts SET ` + strings.Join(sets, ", ") +
		` WHERE uid = $` + strconv.Itoa(len(args)) +
		` RETURNING ` + accountColumns
	acc, err := scanAccount(s.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapNotFound(err))
	}
	return acc, nil
}

// MarkVerified переводит учётную запись в состояние "подтверждена", только если
// её текущий токен подтверждения равен token. Повторный вызов с тем же токеном
// возвращает models.ErrNotFound.
func (s *Storage) MarkVerified(ctx context.Context, uid, token string) (*models.Account, error) {
	const op = "storage.MarkVerified"

	query := `UPDATE accounts
			  SET verified = TRUE, verification_token = NULL
			  WHERE uid = $1 AND verification_token = $2
			  RETURNING ` + accountColumns
	acc, err := scanAccount(s.DB.QueryRowContext(ctx, query, uid, token))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapNotFound(err))
	}
	return acc, nil
}

func (s *Storage) findOne(ctx context.Context, op, where string, arg any) (*models.Account, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts `+where, arg)
	acc, err := scanAccount(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapNotFound(err))
	}
	return acc, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(row scanner) (*models.Account, error) {
	var (
		acc                        models.Account
		sessionToken, verification sql.NullString
	)
	if err := row.Scan(&acc.UUID, &acc.Email, &acc.PasswordHash, &acc.Subscription,
		&sessionToken, &verification, &acc.Verified, &acc.AvatarURL, &acc.CreatedAt); err != nil {
		return nil, err
	}
	if sessionToken.Valid {
		acc.SessionToken = &sessionToken.String
	}
	if verification.Valid {
		acc.VerificationToken = &verification.String
	}
	return &acc, nil
}

// mapNotFound сводит отсутствие строки и некорректный uuid к models.ErrNotFound:
// идентификатор приходит из токена, и для вызывающего это одна и та же ситуация.
func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.InvalidTextRepresentation {
		return models.ErrNotFound
	}
	return err
}
