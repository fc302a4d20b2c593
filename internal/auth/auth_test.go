package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/NoorJehan20/CareerCompass-FYP/internal/config"
	"github.com/NoorJehan20/CareerCompass-FYP/internal/database"
	"github.com/NoorJehan20/CareerCompass-FYP/internal/repository"

	"go.uber.org/zap"
)

func newTestProvider(t *testing.T) (*Provider, *repository.UserRepository) {
	t.Helper()
	db, err := database.Open(t.TempDir(), config.DatabaseConfig{Driver: "sqlite", Path: "auth.db"}, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	users := repository.NewUserRepository(db)
	return NewProvider(users, "demo-app", zap.NewNop()), users
}

func TestCreateAccountWritesProfile(t *testing.T) {
	p, users := newTestProvider(t)
	var events []Event
	p.OnAuthStateChanged(func(e Event) { events = append(events, e) })

	user, err := p.CreateAccount(context.Background(), "browser-1", Account{
		Email: "ada@example.com", Password: "pw", FirstName: "Ada", LastName: "Lovelace",
	})
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	profile, err := users.GetProfile(context.Background(), ProfilePath("demo-app", user.ID))
	if err != nil {
		t.Fatalf("profile metadata: %v", err)
	}
	if profile.Path != "artifacts/demo-app/users/"+user.ID+"/profile/metadata" || profile.FirstName != "Ada" || profile.CreatedAt.IsZero() {
		t.Errorf("profile = %+v", profile)
	}
	if len(events) != 1 || events[0].Session != "browser-1" || events[0].User.ID != user.ID {
		t.Errorf("events = %+v", events)
	}
}

func TestCreateAccountPresenceChecks(t *testing.T) {
	p, _ := newTestProvider(t)
	_, err := p.CreateAccount(context.Background(), "b", Account{Email: "x@y.z", Password: "pw", FirstName: " "})
	var mf *MissingFieldsError
	if !errors.As(err, &mf) {
		t.Fatalf("err = %v, want *MissingFieldsError", err)
	}
	if len(mf.Fields) != 2 || mf.Fields[0] != "firstName" || mf.Fields[1] != "lastName" {
		t.Errorf("missing = %v", mf.Fields)
	}
}

func TestCreateAccountDuplicate(t *testing.T) {
	p, _ := newTestProvider(t)
	acct := Account{Email: "ada@example.com", Password: "pw", FirstName: "Ada", LastName: "L"}
	if _, err := p.CreateAccount(context.Background(), "b", acct); err != nil {
		t.Fatal(err)
	}
	if _, err := p.CreateAccount(context.Background(), "b", acct); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
}

func TestSignInAndOut(t *testing.T) {
	p, _ := newTestProvider(t)
	ctx := context.Background()
	if _, err := p.CreateAccount(ctx, "b", Account{Email: "ada@example.com", Password: "pw", FirstName: "Ada", LastName: "L"}); err != nil {
		t.Fatal(err)
	}

	var events []Event
	unsubscribe := p.OnAuthStateChanged(func(e Event) { events = append(events, e) })

	if _, err := p.SignIn(ctx, "b", "ada@example.com", "nope"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password = %v", err)
	}
	if _, err := p.SignIn(ctx, "b", "who@example.com", "pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email = %v", err)
	}
	user, err := p.SignIn(ctx, "b", "ada@example.com", "pw")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	p.SignOut("b")

	if len(events) != 2 || events[0].User.ID != user.ID || events[1].User != nil {
		t.Errorf("events = %+v", events)
	}

	unsubscribe()
	unsubscribe()
	p.SignOut("b")
	if len(events) != 2 {
		t.Errorf("listener still called after unsubscribe")
	}
}
