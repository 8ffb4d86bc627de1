package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/masomo-admin/core/user"
)

type accountRow struct {
	ID           string      `db:"id"`
	Username     string      `db:"username"`
	Nome         string      `db:"nome"`
	Tipo         string      `db:"tipo"`
	Status       bool        `db:"status"`
	Email        null.String `db:"email"`
	Telefone     null.String `db:"telefone"`
	PasswordHash null.Bytes  `db:"password_hash"`
	CreatedAt    time.Time   `db:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at"`
}

func newAccountRow(acc user.Account) accountRow {
	return accountRow{
		ID:           acc.ID,
		Username:     acc.Username,
		Nome:         acc.Nome,
		Tipo:         acc.Tipo,
		Status:       bool(acc.Status),
		Email:        null.NewString(acc.Email, acc.Email != ""),
		Telefone:     null.NewString(acc.Telefone, acc.Telefone != ""),
		PasswordHash: null.NewBytes(acc.PasswordHash, len(acc.PasswordHash) > 0),
		CreatedAt:    acc.CreatedAt,
		UpdatedAt:    acc.UpdatedAt,
	}
}

func (r accountRow) account() user.Account {
	return user.Account{
		User: user.User{
			ID:       r.ID,
			Username: r.Username,
			Nome:     r.Nome,
			Tipo:     r.Tipo,
			Status:   user.Status(r.Status),
		},
		Email:        r.Email.String,
		Telefone:     r.Telefone.String,
		PasswordHash: r.PasswordHash.Bytes,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

const accountColumns = "id, username, nome, tipo, status, email, telefone, password_hash, created_at, updated_at"

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *sqlx.DB) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) Query(ctx context.Context, qf user.QueryFilter) ([]user.Account, error) {
	var w where
	w.ilike("username", qf.Username)
	w.ilike("nome", qf.Nome)
	if qf.Status != "" {
		st, err := user.ParseStatus(qf.Status)
		if err != nil {
			return []user.Account{}, nil
		}
		w.eq("status", bool(st), true)
	}

	var rows []accountRow
	if err := selectRows(ctx, repo.db, &rows, "SELECT "+accountColumns+" FROM account", &w, "created_at, id"); err != nil {
		return nil, errors.Wrap(err, "querying accounts")
	}
	accs := make([]user.Account, 0, len(rows))
	for _, row := range rows {
		accs = append(accs, row.account())
	}
	return accs, nil
}

func (repo *userRepository) GetByID(ctx context.Context, id string) (user.Account, error) {
	var row accountRow
	if err := getRow(ctx, repo.db, &row, "SELECT "+accountColumns+" FROM account WHERE id = $1", id); err != nil {
		return user.Account{}, err
	}
	return row.account(), nil
}

func (repo *userRepository) GetByUsername(ctx context.Context, username string) (user.Account, error) {
	var row accountRow
	if err := getRow(ctx, repo.db, &row, "SELECT "+accountColumns+" FROM account WHERE username = $1", username); err != nil {
		return user.Account{}, err
	}
	return row.account(), nil
}

func (repo *userRepository) Create(ctx context.Context, acc user.Account) (user.Account, error) {
	now := time.Now().UTC()
	acc.ID = newID()
	acc.CreatedAt, acc.UpdatedAt = now, now

	q := "INSERT INTO account (" + accountColumns + ") VALUES " +
		"(:id, :username, :nome, :tipo, :status, :email, :telefone, :password_hash, :created_at, :updated_at)"
	if _, err := repo.db.NamedExecContext(ctx, q, newAccountRow(acc)); err != nil {
		if isUniqueViolation(err) {
			return user.Account{}, user.ErrUsernameExists
		}
		return user.Account{}, errors.Wrap(err, "inserting account")
	}
	return acc, nil
}

// Update saves acc. An empty PasswordHash keeps the stored one.
func (repo *userRepository) Update(ctx context.Context, acc user.Account) (user.Account, error) {
	acc.UpdatedAt = time.Now().UTC()

	var row accountRow
	q := `UPDATE account SET
		username = $2, nome = $3, tipo = $4, status = $5, email = $6, telefone = $7,
		password_hash = COALESCE($8, password_hash), updated_at = $9
		WHERE id = $1 RETURNING ` + accountColumns
	r := newAccountRow(acc)
	err := getRow(ctx, repo.db, &row, q, r.ID, r.Username, r.Nome, r.Tipo, r.Status, r.Email, r.Telefone, r.PasswordHash, r.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return user.Account{}, user.ErrUsernameExists
		}
		return user.Account{}, err
	}
	return row.account(), nil
}

func (repo *userRepository) Delete(ctx context.Context, id string) (user.Account, error) {
	var row accountRow
	if err := getRow(ctx, repo.db, &row, "DELETE FROM account WHERE id = $1 RETURNING "+accountColumns, id); err != nil {
		return user.Account{}, err
	}
	return row.account(), nil
}
