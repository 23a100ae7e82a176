package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hafidzirham/localspot-cli/internal/api"
	"github.com/hafidzirham/localspot-cli/internal/config"
	"github.com/hafidzirham/localspot-cli/internal/logging"
	"github.com/hafidzirham/localspot-cli/internal/models"
	"github.com/hafidzirham/localspot-cli/internal/services"
	"github.com/hafidzirham/localspot-cli/internal/session"
	"github.com/hafidzirham/localspot-cli/internal/storage"
)

// Mode reflects the last observed reachability of the API.
type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

// sessionOps is the session manager surface the CLI uses; the real
// *session.Manager satisfies it, tests substitute a stub.
type sessionOps interface {
	Snapshot() session.Snapshot
	Bootstrap(ctx context.Context)
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context)
	ContinueAsGuest()
	UpdateProfile(ctx context.Context, upd *api.ProfileUpdate) (*models.User, error)
	UploadProfilePhoto(ctx context.Context, photo *api.Photo) (*models.User, error)
	Register(ctx context.Context, req *api.RegisterRequest) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req *api.PasswordReset) error
}

type placeOps interface {
	Search(ctx context.Context, q *api.PlaceQuery) ([]models.Place, error)
	Detail(ctx context.Context, id int64) (*models.Place, error)
	Categories(ctx context.Context) ([]models.Category, error)
	Mine(ctx context.Context) ([]models.Place, error)
	Create(ctx context.Context, in *api.PlaceInput) (*models.Place, error)
	Update(ctx context.Context, id int64, in *api.PlaceInput) (*models.Place, error)
	Delete(ctx context.Context, id int64) error
}

type favoriteOps interface {
	List(ctx context.Context) ([]models.Place, error)
	Toggle(ctx context.Context, placeID int64) (bool, error)
	Observe(place *models.Place)
	IsFavorited(placeID int64) bool
}

type reviewOps interface {
	ForPlace(ctx context.Context, placeID int64) ([]models.Review, error)
	Mine(ctx context.Context) ([]models.Review, error)
	Submit(ctx context.Context, in *api.ReviewInput) (*models.Review, error)
	Update(ctx context.Context, id int64, in *api.ReviewInput) (*models.Review, error)
	Delete(ctx context.Context, id int64) error
}

// App wires configuration, the session manager, catalog services and an
// interactive REPL.
type App struct {
	config    *config.Config
	log       logging.Logger
	client    api.Client
	session   sessionOps
	places    placeOps
	favorites favoriteOps
	reviews   reviewOps
	db        *sql.DB
	reader    *bufio.Reader
	out       io.Writer

	modeMu sync.Mutex
	mode   Mode
}

// NewApp builds the application graph: local database, REST client, session
// manager and services.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := storage.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize local database: %w", err)
	}

	client := api.NewRESTClient(cfg.APIBaseURL, cfg.RequestTimeout)
	mgr := session.NewManager(client, db, log)

	return &App{
		config:    cfg,
		log:       log,
		client:    client,
		session:   mgr,
		places:    services.NewPlaceService(client, mgr),
		favorites: services.NewFavoriteService(client, mgr, log),
		reviews:   services.NewReviewService(client, mgr),
		db:        db,
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
		mode:      ModeOnline,
	}, nil
}

// Run restores the session, starts the connectivity watcher and blocks in
// the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.session.Bootstrap(ctx)

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartOnlineStatusWatcher(watchCtx, a.config.OnlineCheckInterval)

	snap := a.session.Snapshot()
	if snap.State() == session.StateAuthenticated {
		fmt.Fprintf(a.out, "Welcome back, %s!\n", snap.User.Username)
	} else {
		fmt.Fprintln(a.out, "Welcome to LocalSpot (type 'help' for commands)")
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner, a.out)
}

// Close releases the local database.
func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

// status renders the prompt suffix: the current actor plus connectivity.
func (a *App) status() string {
	var who string
	switch snap := a.session.Snapshot(); snap.State() {
	case session.StateGuest:
		who = "guest"
	case session.StateAuthenticated:
		who = snap.User.Username
	case session.StateBootstrapping:
		who = "..."
	default:
		who = "-"
	}
	return fmt.Sprintf("%s %s", who, a.getMode())
}

func (a *App) getMode() Mode {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()
	if changed {
		a.log.Info(ctx, "connectivity changed", "mode", string(mode))
	}
}

// StartOnlineStatusWatcher probes the API every interval and flips the mode
// indicator shown in the prompt. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := a.client.Ping(ctx); err != nil {
				a.setMode(ctx, ModeOffline)
			} else {
				a.setMode(ctx, ModeOnline)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().State() == session.StateAuthenticated
}

func (a *App) isGuest() bool {
	return a.session.Snapshot().State() == session.StateGuest
}
