package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/degreedialog/advisor/internal/common"
	"github.com/degreedialog/advisor/internal/server/auth"
	"github.com/degreedialog/advisor/internal/server/config"
)

// --- helpers ---

type fakeRepo struct {
	users []*User

	createErr        error
	getByUserNameErr error
	getByEmailErr    error
	getByIDErr       error

	calls []string
}

func (f *fakeRepo) Create(ctx context.Context, u *User) (*User, error) {
	f.calls = append(f.calls, "Create")
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.users = append(f.users, u)
	return u, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*User, error) {
	f.calls = append(f.calls, "GetByID")
	if f.getByIDErr != nil {
		return nil, f.getByIDErr
	}
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeRepo) GetByUserName(ctx context.Context, userName string) (*User, error) {
	f.calls = append(f.calls, "GetByUserName")
	if f.getByUserNameErr != nil {
		return nil, f.getByUserNameErr
	}
	for _, u := range f.users {
		if u.UserName == userName {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	f.calls = append(f.calls, "GetByEmail")
	if f.getByEmailErr != nil {
		return nil, f.getByEmailErr
	}
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
	}
}

func newTestService(repo Repository) *Service {
	return NewService(repo, testConfig())
}

// --- registration ---

func TestRegister_Success(t *testing.T) {
	repo := &fakeRepo{}
	s := newTestService(repo)

	user, pair, err := s.Register(context.Background(), "alice", "a@x.com", "pw123456")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if user.ID == "" || user.UserName != "alice" || user.Email != "a@x.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if string(user.PasswordHash) == "pw123456" {
		t.Fatalf("plaintext password must never be stored")
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected non-empty token pair")
	}

	// The access token must resolve back to the new account.
	codec := auth.NewCodec([]byte("k"), time.Hour, 2*time.Hour)
	subject, kind, err := codec.Parse(pair.AccessToken)
	if err != nil {
		t.Fatalf("access token does not verify: %v", err)
	}
	if subject != user.ID || kind != auth.TokenKindAccess {
		t.Fatalf("unexpected claims: subject=%q kind=%q", subject, kind)
	}

	if len(repo.users) != 1 {
		t.Fatalf("expected one stored user, got %d", len(repo.users))
	}
}

func TestRegister_Validation(t *testing.T) {
	s := newTestService(&fakeRepo{})

	for _, tc := range []struct{ username, email, password string }{
		{"", "a@x.com", "pw"},
		{"alice", "", "pw"},
		{"alice", "a@x.com", ""},
	} {
		_, _, err := s.Register(context.Background(), tc.username, tc.email, tc.password)
		if !errors.Is(err, common.ErrorValidation) {
			t.Fatalf("expected validation error for %+v, got %v", tc, err)
		}
	}
}

func TestRegister_UsernameConflict(t *testing.T) {
	repo := &fakeRepo{users: []*User{{ID: "u1", UserName: "alice", Email: "old@x.com"}}}
	s := newTestService(repo)

	_, _, err := s.Register(context.Background(), "alice", "new@x.com", "pw")
	if !errors.Is(err, common.ErrorUsernameTaken) {
		t.Fatalf("expected username conflict, got %v", err)
	}
}

func TestRegister_EmailConflict(t *testing.T) {
	repo := &fakeRepo{users: []*User{{ID: "u1", UserName: "bob", Email: "a@x.com"}}}
	s := newTestService(repo)

	_, _, err := s.Register(context.Background(), "alice", "a@x.com", "pw")
	if !errors.Is(err, common.ErrorEmailTaken) {
		t.Fatalf("expected email conflict, got %v", err)
	}
}

func TestRegister_UsernameConflictWinsOverEmail(t *testing.T) {
	repo := &fakeRepo{users: []*User{{ID: "u1", UserName: "alice", Email: "a@x.com"}}}
	s := newTestService(repo)

	_, _, err := s.Register(context.Background(), "alice", "a@x.com", "pw")
	if !errors.Is(err, common.ErrorUsernameTaken) {
		t.Fatalf("expected username conflict to win, got %v", err)
	}
}

func TestRegister_StoreFailureBeforeTokens(t *testing.T) {
	repo := &fakeRepo{getByUserNameErr: common.ErrStoreUnavailable}
	s := newTestService(repo)

	_, pair, err := s.Register(context.Background(), "alice", "a@x.com", "pw")
	if !errors.Is(err, common.ErrStoreUnavailable) {
		t.Fatalf("expected store unavailable, got %v", err)
	}
	if pair != nil {
		t.Fatalf("no tokens may be issued when the store fails")
	}
	if len(repo.users) != 0 {
		t.Fatalf("nothing may be inserted when the existence check fails")
	}
}

// The existence checks run before the insert with nothing making the sequence
// atomic, so two racing registrations for the same username can both succeed.
// This mirrors the reference behavior; the test pins the call ordering down
// so the gap stays visible.
func TestRegister_CheckThenInsertOrdering(t *testing.T) {
	repo := &fakeRepo{}
	s := newTestService(repo)

	if _, _, err := s.Register(context.Background(), "alice", "a@x.com", "pw"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	want := []string{"GetByUserName", "GetByEmail", "Create"}
	if len(repo.calls) != len(want) {
		t.Fatalf("unexpected calls: %v", repo.calls)
	}
	for i := range want {
		if repo.calls[i] != want[i] {
			t.Fatalf("call %d: got %s want %s", i, repo.calls[i], want[i])
		}
	}
}

// --- login ---

func TestLogin_Success(t *testing.T) {
	repo := &fakeRepo{}
	s := newTestService(repo)

	if _, _, err := s.Register(context.Background(), "alice", "a@x.com", "pw123456"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	user, pair, err := s.Login(context.Background(), "alice", "pw123456")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if user.UserName != "alice" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected non-empty token pair")
	}
}

func TestLogin_Validation(t *testing.T) {
	s := newTestService(&fakeRepo{})

	for _, tc := range []struct{ username, password string }{
		{"", "pw"},
		{"alice", ""},
	} {
		_, _, err := s.Login(context.Background(), tc.username, tc.password)
		if !errors.Is(err, common.ErrorValidation) {
			t.Fatalf("expected validation error for %+v, got %v", tc, err)
		}
	}
}

// Wrong password and unknown username must be indistinguishable to the
// caller.
func TestLogin_WrongPasswordAndUnknownUserAreIdentical(t *testing.T) {
	repo := &fakeRepo{}
	s := newTestService(repo)

	if _, _, err := s.Register(context.Background(), "alice", "a@x.com", "pw123456"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	_, _, errWrongPassword := s.Login(context.Background(), "alice", "nope")
	_, _, errUnknownUser := s.Login(context.Background(), "mallory", "nope")

	if !errors.Is(errWrongPassword, common.ErrorInvalidCredentials) {
		t.Fatalf("wrong password: got %v", errWrongPassword)
	}
	if !errors.Is(errUnknownUser, common.ErrorInvalidCredentials) {
		t.Fatalf("unknown user: got %v", errUnknownUser)
	}
	if errWrongPassword.Error() != errUnknownUser.Error() {
		t.Fatalf("failures must be identical: %q vs %q", errWrongPassword, errUnknownUser)
	}
}

func TestLogin_StoreUnavailable(t *testing.T) {
	repo := &fakeRepo{getByUserNameErr: common.ErrStoreUnavailable}
	s := newTestService(repo)

	_, _, err := s.Login(context.Background(), "alice", "pw")
	if !errors.Is(err, common.ErrStoreUnavailable) {
		t.Fatalf("expected store unavailable, got %v", err)
	}
}

// --- authorization ---

func TestAuthorize_Success(t *testing.T) {
	repo := &fakeRepo{}
	s := newTestService(repo)

	registered, pair, err := s.Register(context.Background(), "alice", "a@x.com", "pw123456")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	user, err := s.Authorize(context.Background(), pair.AccessToken)
	if err != nil {
		t.Fatalf("Authorize error: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("resolved wrong user: %q vs %q", user.ID, registered.ID)
	}
}

func TestAuthorize_MissingToken(t *testing.T) {
	s := newTestService(&fakeRepo{})

	_, err := s.Authorize(context.Background(), "")
	if !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestAuthorize_MalformedToken(t *testing.T) {
	s := newTestService(&fakeRepo{})

	_, err := s.Authorize(context.Background(), "not.a.jwt")
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}

func TestAuthorize_ExpiredToken(t *testing.T) {
	repo := &fakeRepo{users: []*User{{ID: "u1", UserName: "alice"}}}
	s := newTestService(repo)

	expired, err := auth.NewCodec([]byte("k"), -1*time.Second, time.Hour).Issue("u1", auth.TokenKindAccess)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = s.Authorize(context.Background(), expired)
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected token expired, got %v", err)
	}
}

// A refresh token never authorizes a request, even with a valid signature.
func TestAuthorize_RefreshTokenRejected(t *testing.T) {
	repo := &fakeRepo{}
	s := newTestService(repo)

	_, pair, err := s.Register(context.Background(), "alice", "a@x.com", "pw123456")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	_, err = s.Authorize(context.Background(), pair.RefreshToken)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected invalid token for refresh kind, got %v", err)
	}
}

// A valid token for a vanished account must look exactly like a missing
// credential.
func TestAuthorize_UnknownSubject(t *testing.T) {
	s := newTestService(&fakeRepo{})

	tok, err := auth.NewCodec([]byte("k"), time.Hour, time.Hour).Issue("ghost", auth.TokenKindAccess)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = s.Authorize(context.Background(), tok)
	if !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestAuthorize_StoreFailuresPassThrough(t *testing.T) {
	for _, tc := range []struct {
		name string
		err  error
	}{
		{"unavailable", common.ErrStoreUnavailable},
		{"auth failed", common.ErrStoreAuthFailed},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestService(&fakeRepo{getByIDErr: tc.err})

			tok, err := auth.NewCodec([]byte("k"), time.Hour, time.Hour).Issue("u1", auth.TokenKindAccess)
			if err != nil {
				t.Fatalf("Issue error: %v", err)
			}

			_, err = s.Authorize(context.Background(), tok)
			if !errors.Is(err, tc.err) {
				t.Fatalf("expected %v, got %v", tc.err, err)
			}
		})
	}
}
