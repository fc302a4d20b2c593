// Package auth provides account creation, sign-in and sign-out, and notifies
// listeners when a browser's signed-in user changes.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/NoorJehan20/CareerCompass-FYP/internal/models"
	"github.com/NoorJehan20/CareerCompass-FYP/internal/repository"
	"github.com/NoorJehan20/CareerCompass-FYP/internal/utils"

	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = repository.ErrEmailTaken
)

// MissingFieldsError lists the required fields that were left blank.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// UserStore is the account storage the provider needs.
type UserStore interface {
	CreateUser(ctx context.Context, email, password, firstName, lastName string, profile func(*models.User) *models.ProfileMetadata) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Event is delivered to listeners. User is nil after a sign-out.
type Event struct {
	Session string
	User    *models.User
}

type Listener func(Event)

// Provider authenticates users against a UserStore.
type Provider struct {
	users UserStore
	appID string
	log   *zap.Logger
	now   func() time.Time

	mu        sync.Mutex
	listeners map[uint64]Listener
	nextID    uint64
}

func NewProvider(users UserStore, appID string, log *zap.Logger) *Provider {
	return &Provider{
		users:     users,
		appID:     appID,
		log:       log.Named("auth"),
		now:       time.Now,
		listeners: map[uint64]Listener{},
	}
}

// ProfilePath is where an account's profile metadata lives.
func ProfilePath(appID, userID string) string {
	return fmt.Sprintf("artifacts/%s/users/%s/profile/metadata", appID, userID)
}

// Account holds the fields of the create-account form.
type Account struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// CreateAccount registers a user, writes the profile metadata and signs the
// new user in on session.
func (p *Provider) CreateAccount(ctx context.Context, session string, a Account) (*models.User, error) {
	if missing := utils.MissingFields("email", a.Email, "password", a.Password, "firstName", a.FirstName, "lastName", a.LastName); missing != nil {
		return nil, &MissingFieldsError{Fields: missing}
	}
	firstName, lastName := strings.TrimSpace(a.FirstName), strings.TrimSpace(a.LastName)
	user, err := p.users.CreateUser(ctx, a.Email, a.Password, firstName, lastName, func(u *models.User) *models.ProfileMetadata {
		return &models.ProfileMetadata{
			Path:      ProfilePath(p.appID, u.ID),
			AppID:     p.appID,
			UserID:    u.ID,
			Email:     u.Email,
			FirstName: firstName,
			LastName:  lastName,
			CreatedAt: p.now().UTC(),
		}
	})
	if err != nil {
		return nil, err
	}
	p.log.Info("Account created", zap.String("userID", user.ID))
	p.notify(Event{Session: session, User: user})
	return user, nil
}

// SignIn checks the credentials and signs the user in on session.
func (p *Provider) SignIn(ctx context.Context, session, email, password string) (*models.User, error) {
	if missing := utils.MissingFields("email", email, "password", password); missing != nil {
		return nil, &MissingFieldsError{Fields: missing}
	}
	user, err := p.users.GetUserByEmail(ctx, email)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	p.notify(Event{Session: session, User: user})
	return user, nil
}

// SignOut signs whoever is on session out.
func (p *Provider) SignOut(session string) {
	p.notify(Event{Session: session})
}

// OnAuthStateChanged registers l and returns a function that removes it.
func (p *Provider) OnAuthStateChanged(l Listener) (unsubscribe func()) {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = l
	p.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.listeners, id)
			p.mu.Unlock()
		})
	}
}

func (p *Provider) notify(e Event) {
	p.mu.Lock()
	listeners := make([]Listener, 0, len(p.listeners))
	for _, l := range p.listeners {
		listeners = append(listeners, l)
	}
	p.mu.Unlock()

	for _, l := range listeners {
		l(e)
	}
}
