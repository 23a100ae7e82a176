package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/hafidzirham/localspot-cli/internal/api"
	"github.com/hafidzirham/localspot-cli/internal/logging"
	"github.com/hafidzirham/localspot-cli/internal/models"
	"github.com/hafidzirham/localspot-cli/internal/storage"
)

var (
	// ErrNotAuthenticated is returned synchronously, before any network
	// call, when an operation requires a credential and none is present.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrOperationInFlight is returned when the same kind of session
	// mutation is already running (e.g. a double-submitted login).
	ErrOperationInFlight = errors.New("operation already in progress")
)

// State classifies a Snapshot.
type State string

const (
	StateBootstrapping   State = "bootstrapping"
	StateUnauthenticated State = "unauthenticated"
	StateGuest           State = "guest"
	StateAuthenticated   State = "authenticated"
)

// Snapshot is a point-in-time copy of the session. The User pointer is a
// clone; mutating it does not affect the Manager.
type Snapshot struct {
	User          *models.User
	Credential    string
	Bootstrapping bool
}

// State derives the session state from the snapshot fields.
func (s Snapshot) State() State {
	switch {
	case s.Bootstrapping:
		return StateBootstrapping
	case s.User == nil:
		return StateUnauthenticated
	case s.User.IsGuest:
		return StateGuest
	default:
		return StateAuthenticated
	}
}

type opKind int

const (
	opLogin opKind = iota
	opUpdateProfile
	opUploadPhoto
)

// Manager is the single authority for the current actor and the bearer
// credential, mirrored into durable storage so it survives restarts.
//
// Invariant: a non-empty credential implies a present, non-guest user.
// Guest mode never carries a credential.
//
// One Manager exists per process; it is handed to the UI layer explicitly
// rather than exposed as a package global. Session-mutating operations of
// the same kind are single-flight: a second call while one is running is
// rejected with ErrOperationInFlight.
type Manager struct {
	client api.Client
	db     *sql.DB
	store  storage.Repository
	log    logging.Logger

	mu            sync.Mutex
	user          *models.User
	credential    string
	bootstrapping bool
	inFlight      map[opKind]bool
}

// NewManager returns a Manager in the bootstrapping state. Call Bootstrap
// once at startup to resolve it.
func NewManager(client api.Client, db *sql.DB, log logging.Logger) *Manager {
	return &Manager{
		client:        client,
		db:            db,
		store:         storage.NewSQLiteRepository(db),
		log:           log,
		bootstrapping: true,
		inFlight:      make(map[opKind]bool),
	}
}

// Snapshot returns a copy of the current session state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		User:          m.user.Clone(),
		Credential:    m.credential,
		Bootstrapping: m.bootstrapping,
	}
}

func (m *Manager) begin(op opKind) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inFlight[op] {
		return ErrOperationInFlight
	}
	m.inFlight[op] = true
	return nil
}

func (m *Manager) end(op opKind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.inFlight, op)
}

func (m *Manager) token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.credential
}

// Bootstrap restores a persisted session. With no stored credential it
// resolves to the unauthenticated state immediately. With one, it validates
// the credential against the profile endpoint; any failure (rejected
// credential, network error) falls back to the logout path so the session
// ends up cleanly unauthenticated. Bootstrapping is always false when this
// returns, whatever the outcome.
func (m *Manager) Bootstrap(ctx context.Context) {
	defer func() {
		m.mu.Lock()
		m.bootstrapping = false
		m.mu.Unlock()
	}()

	stored, err := m.store.Get(ctx, storage.KeyCredential)
	if err != nil {
		m.log.Warn(ctx, "failed to read stored credential", "error", err)
		return
	}
	if len(stored) == 0 {
		return
	}

	token := string(stored)
	m.mu.Lock()
	m.credential = token
	m.mu.Unlock()

	user, err := m.client.Profile(ctx, token)
	if err != nil {
		m.log.Warn(ctx, "stored credential not accepted, clearing session", "error", err)
		m.Logout(ctx)
		return
	}

	m.mu.Lock()
	m.user = user
	m.mu.Unlock()
	m.log.Info(ctx, "session restored", "user", user.Username)
}

// Login authenticates with the API. On success the credential and user are
// persisted in one transaction and then applied to the in-memory session;
// on any failure the session is left exactly as it was. Format validation
// of the identifier is the caller's concern.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	if err := m.begin(opLogin); err != nil {
		return err
	}
	defer m.end(opLogin)

	res, err := m.client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(res.User)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}

	err = storage.WithTx(ctx, m.db, func(ctx context.Context, tx storage.DBTX) error {
		repo := storage.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, storage.KeyCredential, []byte(res.Token)); err != nil {
			return err
		}
		return repo.Set(ctx, storage.KeyUser, raw)
	})
	if err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	m.mu.Lock()
	m.user = res.User
	m.credential = res.Token
	m.mu.Unlock()
	return nil
}

// Logout ends the session for both real users and guests. When a credential
// is present a best-effort remote invalidation is attempted; its failure is
// logged and swallowed, because the local state must clear regardless.
// Logout never fails outwardly and is idempotent — it is also the fallback
// path for credential rejection during Bootstrap.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	token := m.credential
	m.bootstrapping = true
	m.mu.Unlock()

	if token != "" {
		if err := m.client.Logout(ctx, token); err != nil {
			m.log.Warn(ctx, "remote logout failed, clearing local session anyway", "error", err)
		}
	}

	if err := m.store.Delete(ctx, storage.KeyCredential, storage.KeyUser); err != nil {
		m.log.Error(ctx, "failed to clear persisted session", "error", err)
	}

	m.mu.Lock()
	m.user = nil
	m.credential = ""
	m.bootstrapping = false
	m.mu.Unlock()
}

// ContinueAsGuest switches the session to the guest marker. Synchronous:
// no network call, no persistence, and never a credential.
func (m *Manager) ContinueAsGuest() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = models.Guest()
	m.credential = ""
}

// UpdateProfile sends the changed fields and replaces the session user with
// the server's returned representation — the server is authoritative, this
// is not a local merge. Requires a credential.
func (m *Manager) UpdateProfile(ctx context.Context, upd *api.ProfileUpdate) (*models.User, error) {
	if err := m.begin(opUpdateProfile); err != nil {
		return nil, err
	}
	defer m.end(opUpdateProfile)

	token := m.token()
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	user, err := m.client.UpdateProfile(ctx, token, upd)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.user = user
	m.mu.Unlock()
	m.persistUser(ctx, user)
	return user.Clone(), nil
}

// UploadProfilePhoto uploads a new profile image and merges only the photo
// URL into the current user, unlike UpdateProfile which replaces the record
// wholesale. Requires a credential.
func (m *Manager) UploadProfilePhoto(ctx context.Context, photo *api.Photo) (*models.User, error) {
	if err := m.begin(opUploadPhoto); err != nil {
		return nil, err
	}
	defer m.end(opUploadPhoto)

	token := m.token()
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	url, err := m.client.UploadProfilePhoto(ctx, token, photo)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	merged := m.user.Clone()
	if merged == nil {
		merged = &models.User{}
	}
	merged.ProfilePictureURL = url
	m.user = merged
	m.mu.Unlock()
	m.persistUser(ctx, merged)
	return merged.Clone(), nil
}

// persistUser mirrors the user record into storage. A write failure leaves
// the in-memory state ahead of the disk copy; the next Bootstrap reconciles
// from the server, so the failure is logged rather than surfaced.
func (m *Manager) persistUser(ctx context.Context, user *models.User) {
	raw, err := json.Marshal(user)
	if err != nil {
		m.log.Error(ctx, "failed to encode user for persistence", "error", err)
		return
	}
	if err := m.store.Set(ctx, storage.KeyUser, raw); err != nil {
		m.log.Error(ctx, "failed to persist user", "error", err)
	}
}

// Register creates a new account. The session is not mutated; the user is
// expected to log in afterwards.
func (m *Manager) Register(ctx context.Context, req *api.RegisterRequest) error {
	return m.client.Register(ctx, req)
}

// ForgotPassword requests a reset OTP for the given email.
func (m *Manager) ForgotPassword(ctx context.Context, email string) error {
	return m.client.ForgotPassword(ctx, email)
}

// ResetPassword completes a password reset with the emailed OTP.
func (m *Manager) ResetPassword(ctx context.Context, req *api.PasswordReset) error {
	return m.client.ResetPassword(ctx, req)
}
