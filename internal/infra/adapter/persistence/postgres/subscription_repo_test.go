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

func TestSubscriptionRepo_Upsert_KeepsOriginalTokenOnResubscribe(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	sub := &entity.Subscription{
		Email:            "reader@example.com",
		UnsubscribeToken: "fresh-token",
		CreatedAt:        now,
	}

	// The row already existed: RETURNING hands back the stored token.
	mock.ExpectQuery(regexp.QuoteMeta(`ON CONFLICT (email) DO UPDATE SET active = TRUE`)).
		WithArgs("reader@example.com", "fresh-token", now).
		WillReturnRows(sqlmock.NewRows([]string{"id", "unsubscribe_token"}).
			AddRow(int64(5), "original-token"))

	repo := postgres.NewSubscriptionRepo(db)
	if err := repo.Upsert(context.Background(), sub); err != nil {
		t.Fatalf("Upsert err=%v", err)
	}
	if sub.ID != 5 || sub.UnsubscribeToken != "original-token" || !sub.Active {
		t.Fatalf("got %+v, want id 5, stored token, active", sub)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSubscriptionRepo_GetByEmail(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	want := &entity.Subscription{
		ID:               5,
		Email:            "reader@example.com",
		Active:           true,
		UnsubscribeToken: "original-token",
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	mock.ExpectQuery(`FROM newsletter_subscriptions WHERE email = \$1`).
		WithArgs("reader@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "active", "unsubscribe_token", "created_at", "updated_at"}).
			AddRow(want.ID, want.Email, want.Active, want.UnsubscribeToken, want.CreatedAt, want.UpdatedAt))

	repo := postgres.NewSubscriptionRepo(db)
	got, err := repo.GetByEmail(context.Background(), "reader@example.com")
	if err != nil {
		t.Fatalf("GetByEmail err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSubscriptionRepo_Unsubscribe_UnknownToken(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(`SET active = FALSE`).
		WithArgs("no-such-token").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := postgres.NewSubscriptionRepo(db)
	err := repo.Unsubscribe(context.Background(), "no-such-token")
	if !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
}

func TestSubscriptionRepo_ListActive(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	mock.ExpectQuery(`WHERE active = TRUE ORDER BY id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "active", "unsubscribe_token", "created_at", "updated_at"}).
			AddRow(int64(1), "a@example.com", true, "t1", now, now).
			AddRow(int64(2), "b@example.com", true, "t2", now, now))

	repo := postgres.NewSubscriptionRepo(db)
	got, err := repo.ListActive(context.Background())
	if err != nil {
		t.Fatalf("ListActive err=%v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len=%d, want 2", len(got))
	}
}

func TestSettingsRepo_GetCategory(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT key, value FROM settings WHERE category = $1`)).
		WithArgs("smtp").
		WillReturnRows(sqlmock.NewRows([]string{"key", "value"}).
			AddRow("smtp_server", "mail.example.com").
			AddRow("smtp_port", "465"))

	repo := postgres.NewSettingsRepo(db)
	got, err := repo.GetCategory(context.Background(), "smtp")
	if err != nil {
		t.Fatalf("GetCategory err=%v", err)
	}
	want := map[string]string{"smtp_server": "mail.example.com", "smtp_port": "465"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSettingsRepo_Upsert(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta(`ON CONFLICT (category, key) DO UPDATE SET value = EXCLUDED.value`)).
		WithArgs("smtp", "smtp_server", "mail.example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := postgres.NewSettingsRepo(db)
	err := repo.Upsert(context.Background(), &entity.Setting{
		Category: "smtp", Key: "smtp_server", Value: "mail.example.com",
	})
	if err != nil {
		t.Fatalf("Upsert err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
