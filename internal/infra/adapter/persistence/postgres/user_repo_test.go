package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"vnnews/internal/domain/entity"
	"vnnews/internal/infra/adapter/persistence/postgres"
)

var userCols = []string{
	"id", "username", "email", "password_hash", "full_name", "phone",
	"role", "active", "created_at", "updated_at",
}

func sampleUser() *entity.User {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	return &entity.User{
		ID:           7,
		Username:     "nguyenvana",
		Email:        "a@example.com",
		PasswordHash: "$2a$10$hash",
		FullName:     "Nguyễn Văn A",
		Phone:        "0912345678",
		Role:         entity.RoleEditor,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func userRow(u *entity.User) *sqlmock.Rows {
	return sqlmock.NewRows(userCols).AddRow(
		u.ID, u.Username, u.Email, u.PasswordHash, u.FullName, u.Phone,
		string(u.Role), u.Active, u.CreatedAt, u.UpdatedAt,
	)
}

func TestUserRepo_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	u := sampleUser()
	u.ID = 0
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs(u.Username, u.Email, u.PasswordHash, u.FullName, u.Phone,
			string(u.Role), u.Active, u.CreatedAt, u.UpdatedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	repo := postgres.NewUserRepo(db)
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if u.ID != 7 {
		t.Errorf("ID=%d, want 7", u.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestUserRepo_GetByUsername(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	want := sampleUser()
	mock.ExpectQuery(`FROM users WHERE username = \$1`).
		WithArgs("nguyenvana").
		WillReturnRows(userRow(want))

	repo := postgres.NewUserRepo(db)
	got, err := repo.GetByUsername(context.Background(), "nguyenvana")
	if err != nil {
		t.Fatalf("GetByUsername err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestUserRepo_GetByEmail_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`FROM users WHERE email = \$1`).
		WithArgs("missing@example.com").
		WillReturnRows(sqlmock.NewRows(userCols))

	repo := postgres.NewUserRepo(db)
	got, err := repo.GetByEmail(context.Background(), "missing@example.com")
	if err != nil {
		t.Fatalf("GetByEmail err=%v", err)
	}
	if got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestUserRepo_SetActive(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET active = $1, updated_at = now() WHERE id = $2`)).
		WithArgs(false, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := postgres.NewUserRepo(db)
	if err := repo.SetActive(context.Background(), 7, false); err != nil {
		t.Fatalf("SetActive err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestUserRepo_UpdatePasswordHash_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(`UPDATE users SET password_hash`).
		WithArgs("$2a$10$new", int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := postgres.NewUserRepo(db)
	err := repo.UpdatePasswordHash(context.Background(), 99, "$2a$10$new")
	if !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
}
