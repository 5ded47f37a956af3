package account_test

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"vnnews/internal/domain/entity"
	accUC "vnnews/internal/usecase/account"
)

/* ───────── stubs ───────── */

type stubUsers struct {
	byUsername map[string]*entity.User
	byEmail    map[string]*entity.User
	byID       map[int64]*entity.User
	nextID     int64
	err        error
}

func newStubUsers() *stubUsers {
	return &stubUsers{
		byUsername: map[string]*entity.User{},
		byEmail:    map[string]*entity.User{},
		byID:       map[int64]*entity.User{},
		nextID:     1,
	}
}

func (s *stubUsers) Create(_ context.Context, u *entity.User) error {
	if s.err != nil {
		return s.err
	}
	if s.byUsername[u.Username] != nil || s.byEmail[u.Email] != nil {
		return entity.ErrDuplicate
	}
	u.ID = s.nextID
	s.nextID++
	s.byUsername[u.Username] = u
	s.byEmail[u.Email] = u
	s.byID[u.ID] = u
	return nil
}

func (s *stubUsers) Get(_ context.Context, id int64) (*entity.User, error) {
	return s.byID[id], s.err
}

func (s *stubUsers) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	return s.byUsername[username], s.err
}

func (s *stubUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return s.byEmail[email], s.err
}

func (s *stubUsers) SetActive(_ context.Context, id int64, active bool) error {
	if s.err != nil {
		return s.err
	}
	u := s.byID[id]
	if u == nil {
		return entity.ErrNotFound
	}
	u.Active = active
	return nil
}

func (s *stubUsers) UpdatePasswordHash(_ context.Context, id int64, hash string) error {
	if s.err != nil {
		return s.err
	}
	u := s.byID[id]
	if u == nil {
		return entity.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

func seedUser(t *testing.T, users *stubUsers, username, email, password string, active bool) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	u := &entity.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         entity.RoleUser,
		Active:       active,
	}
	if err := users.Create(context.Background(), u); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return u
}

func validInput() accUC.RegisterInput {
	return accUC.RegisterInput{
		Site:     entity.SiteVN,
		Username: "nguyenvana",
		Email:    "a@example.com",
		Password: "matkhau123",
		FullName: "Nguyễn Văn A",
		Phone:    "0912 345 678",
	}
}

/* ───────── tests ───────── */

func TestService_Register_HashesPasswordAndNormalizesPhone(t *testing.T) {
	users := newStubUsers()
	svc := &accUC.Service{Users: users}

	got, err := svc.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Register err=%v", err)
	}
	if got.PasswordHash == "matkhau123" || got.PasswordHash == "" {
		t.Error("password stored without hashing")
	}
	if bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte("matkhau123")) != nil {
		t.Error("hash does not verify against the original password")
	}
	if got.Phone != "0912345678" {
		t.Errorf("Phone=%q, want separators stripped", got.Phone)
	}
	if got.Role != entity.RoleUser {
		t.Errorf("Role=%q, want user", got.Role)
	}
}

func TestService_Register_CollectsAllFailures(t *testing.T) {
	users := newStubUsers()
	seedUser(t, users, "nguyenvana", "a@example.com", "x", true)
	svc := &accUC.Service{Users: users}

	in := validInput()  // username and email both taken
	in.Password = "abc" // and too short
	_, err := svc.Register(context.Background(), in)

	var errs accUC.RegistrationErrors
	if !errors.As(err, &errs) {
		t.Fatalf("err=%v, want RegistrationErrors", err)
	}
	fields := map[string]bool{}
	for _, v := range errs {
		fields[v.Field] = true
	}
	for _, want := range []string{"password", "username", "email"} {
		if !fields[want] {
			t.Errorf("missing failure for %q in %v", want, errs)
		}
	}
}

func TestService_Register_LocalizedMessages(t *testing.T) {
	svc := &accUC.Service{Users: newStubUsers()}

	in := validInput()
	in.Site = entity.SiteEN
	in.Password = ""
	_, err := svc.Register(context.Background(), in)

	var errs accUC.RegistrationErrors
	if !errors.As(err, &errs) {
		t.Fatalf("err=%v, want RegistrationErrors", err)
	}
	if len(errs) != 1 || errs[0].Message != "Password must not be empty" {
		t.Errorf("errs=%v, want English copy for the en site", errs)
	}
}

func TestService_Authenticate(t *testing.T) {
	users := newStubUsers()
	seedUser(t, users, "nguyenvana", "a@example.com", "matkhau123", true)
	seedUser(t, users, "locked", "locked@example.com", "matkhau123", false)
	svc := &accUC.Service{Users: users}

	cases := []struct {
		name       string
		identifier string
		password   string
		wantErr    bool
	}{
		{"by username", "nguyenvana", "matkhau123", false},
		{"by email", "a@example.com", "matkhau123", false},
		{"wrong password", "nguyenvana", "sai-roi", true},
		{"unknown identifier", "nobody", "matkhau123", true},
		{"locked account", "locked", "matkhau123", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.Authenticate(context.Background(), tc.identifier, tc.password)
			if tc.wantErr {
				if !errors.Is(err, accUC.ErrInvalidCredentials) {
					t.Fatalf("err=%v, want ErrInvalidCredentials", err)
				}
				return
			}
			if err != nil || got == nil {
				t.Fatalf("err=%v got=%v", err, got)
			}
		})
	}
}

func TestService_LockThenAuthenticateFails(t *testing.T) {
	users := newStubUsers()
	u := seedUser(t, users, "nguyenvana", "a@example.com", "matkhau123", true)
	svc := &accUC.Service{Users: users}

	if err := svc.SetActive(context.Background(), u.ID, false); err != nil {
		t.Fatalf("SetActive err=%v", err)
	}
	locked, err := svc.IsLocked(context.Background(), "nguyenvana")
	if err != nil || !locked {
		t.Fatalf("IsLocked=%v err=%v, want locked", locked, err)
	}
	if _, err := svc.Authenticate(context.Background(), "nguyenvana", "matkhau123"); !errors.Is(err, accUC.ErrInvalidCredentials) {
		t.Fatalf("err=%v, want ErrInvalidCredentials after lock", err)
	}
}

func TestService_IsLocked_UnknownIdentifier(t *testing.T) {
	svc := &accUC.Service{Users: newStubUsers()}

	locked, err := svc.IsLocked(context.Background(), "khongtontai")
	if err != nil {
		t.Fatalf("IsLocked err=%v", err)
	}
	if locked {
		t.Fatal("unknown identifier reported as locked")
	}
}

func TestService_SetActive_UnknownUser(t *testing.T) {
	svc := &accUC.Service{Users: newStubUsers()}

	if err := svc.SetActive(context.Background(), 99, false); !errors.Is(err, accUC.ErrUserNotFound) {
		t.Fatalf("err=%v, want ErrUserNotFound", err)
	}
}
