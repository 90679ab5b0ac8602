package services

import (
	"log/slog"
	"sync"
	"time"

	"messenger-lab/auth"
	"messenger-lab/domain"
	"messenger-lab/domain/event"
	"messenger-lab/errors"
	"messenger-lab/presence"
	"messenger-lab/projection"
	"messenger-lab/repositories"
	"messenger-lab/runtime"
	"messenger-lab/search"
)

type IAuthService interface {
	Register(username, displayName, password string) (Session, error)
	Login(username, password string) (Session, error)
	Logout()
	Restore() (domain.User, bool)
	Current() (domain.User, bool)
	UpdateProfile(update ProfileUpdate) (domain.User, error)
}

// Session is the result of a successful login or registration.
type Session struct {
	User  domain.User
	Token string
}

// ProfileUpdate carries the only mutable user fields. An empty display
// name keeps the current one; avatar and banner are set as given.
type ProfileUpdate struct {
	DisplayName string
	AvatarURL   string
	BannerURL   string
}

// AuthService is one tab's identity manager. The logged-in user is held
// in memory per tab; the session repository only records the most recent
// login on the shared store, so two tabs can be signed in as different
// users at once.
type AuthService struct {
	log           *slog.Logger
	users         repositories.IUserRepository
	session       repositories.ISessionRepository
	presence      *presence.Aggregator
	directory     *projection.Directory
	index         *search.Index
	bus           *runtime.Bus
	tab           *runtime.Tab
	tokenSecret   []byte
	tokenDuration time.Duration

	mu      sync.RWMutex
	current *domain.User
}

func NewAuthService(
	log *slog.Logger,
	users repositories.IUserRepository,
	session repositories.ISessionRepository,
	agg *presence.Aggregator,
	directory *projection.Directory,
	index *search.Index,
	bus *runtime.Bus,
	tab *runtime.Tab,
	tokenSecret []byte,
	tokenDuration time.Duration,
) *AuthService {
	return &AuthService{
		log:           log,
		users:         users,
		session:       session,
		presence:      agg,
		directory:     directory,
		index:         index,
		bus:           bus,
		tab:           tab,
		tokenSecret:   tokenSecret,
		tokenDuration: tokenDuration,
	}
}

// Register validates the form, enforces case-insensitive username
// uniqueness, persists the new user and signs the tab in.
func (s *AuthService) Register(username, displayName, password string) (Session, error) {
	req := auth.RegisterRequest{Username: username, DisplayName: displayName, Password: password}
	if err := auth.ValidateRegister(req); err != nil {
		return Session{}, err
	}
	if _, taken := s.users.FindByUsername(username); taken {
		return Session{}, errors.ErrUsernameTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return Session{}, err
	}

	user := domain.User{
		ID:           domain.NewID(),
		Username:     username,
		DisplayName:  displayName,
		PasswordHash: hash,
		CreatedAt:    domain.NowMillis(),
	}
	s.users.Upsert(user)
	s.indexUser(user)
	s.directory.ReloadUsers()

	return s.signIn(user)
}

// Login verifies credentials against the stored hash and signs the tab
// in. Lookup and hash failures collapse into one error to avoid leaking
// which usernames exist.
func (s *AuthService) Login(username, password string) (Session, error) {
	user, found := s.users.FindByUsername(username)
	if !found {
		return Session{}, errors.ErrInvalidCredentials
	}
	match, err := auth.ComparePassword(password, user.PasswordHash)
	if err != nil || !match {
		return Session{}, errors.ErrInvalidCredentials
	}
	return s.signIn(user)
}

// signIn issues the session token, records the session, marks the user
// online locally, then announces it. The local state change always lands
// before the publish; the tab never relies on its own broadcast.
func (s *AuthService) signIn(user domain.User) (Session, error) {
	token, err := auth.GenerateToken(s.tokenSecret, user.ID, s.tokenDuration)
	if err != nil {
		return Session{}, errors.ErrTokenGeneration
	}

	s.session.Set(user)
	s.mu.Lock()
	s.current = &user
	s.mu.Unlock()

	s.presence.SetOnline(user.ID)
	s.bus.Publish(s.tab, event.Envelope{Kind: event.UserOnlineKind, Payload: event.UserOnline{UserID: user.ID}})
	s.log.Info("Signed in", "tab", s.tab.Name(), "user", user.Username)
	return Session{User: user, Token: token}, nil
}

// Logout announces the offline transition and drops the tab's identity.
// Without a session this is a no-op.
func (s *AuthService) Logout() {
	s.mu.Lock()
	user := s.current
	s.current = nil
	s.mu.Unlock()
	if user == nil {
		return
	}

	s.bus.Publish(s.tab, event.Envelope{Kind: event.UserOfflineKind, Payload: event.UserOffline{UserID: user.ID}})
	s.presence.SetOffline(user.ID)
	s.session.Clear()
	s.log.Info("Signed out", "tab", s.tab.Name(), "user", user.Username)
}

// Restore adopts the persisted session user, as a freshly opened tab
// does on load. It does not publish USER_ONLINE: the original tab
// already announced that identity.
func (s *AuthService) Restore() (domain.User, bool) {
	user, found := s.session.Get()
	if !found {
		return domain.User{}, false
	}
	s.mu.Lock()
	s.current = &user
	s.mu.Unlock()
	s.presence.SetOnline(user.ID)
	return user, true
}

func (s *AuthService) Current() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return domain.User{}, false
	}
	return *s.current, true
}

// UpdateProfile mutates the current user's display fields, persists,
// and broadcasts USER_UPDATED as a re-read signal for other tabs.
func (s *AuthService) UpdateProfile(update ProfileUpdate) (domain.User, error) {
	user, ok := s.Current()
	if !ok {
		return domain.User{}, errors.ErrNotLoggedIn
	}

	if update.DisplayName != "" {
		user.DisplayName = update.DisplayName
	}
	user.AvatarURL = update.AvatarURL
	user.BannerURL = update.BannerURL

	s.users.Upsert(user)
	s.session.Set(user)
	s.indexUser(user)
	s.mu.Lock()
	s.current = &user
	s.mu.Unlock()
	s.directory.ReloadUsers()

	s.bus.Publish(s.tab, event.Envelope{Kind: event.UserUpdatedKind, Payload: event.UserUpdated{User: user}})
	return user, nil
}

func (s *AuthService) indexUser(user domain.User) {
	if s.index == nil {
		return
	}
	if err := s.index.IndexUser(user); err != nil {
		s.log.Error("Failed to index user", "user", user.Username, "error", err)
	}
}
