package web420

import (
	"context"
	"sync"
	"time"

	"github.com/evergreen-ci/utility"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
	"github.com/web420/web420/db"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	connectRetryMinDelay = 500 * time.Millisecond
	connectRetryMaxDelay = 10 * time.Second
)

// Environment provides application-level services (the database
// client and configuration). It is constructed once at process start
// and passed explicitly to everything that needs it; there is no
// package-level instance.
type Environment interface {
	// Returns the settings object. The settings object is not
	// necessarily safe for concurrent access.
	Settings() *Settings

	Client() *mongo.Client
	DB() *mongo.Database
	// Store wraps DB with the configured per-operation timeout.
	Store() *db.Store

	// RegisterCloser adds a function object to an internal
	// tracker to be called by the Close method before process
	// termination. The ID is used in reporting, but must be
	// unique or a new closer could overwrite an existing closer
	// in some implementations.
	RegisterCloser(string, func(context.Context) error)
	// Close calls all registered closers in the environment.
	Close(context.Context) error
}

// NewEnvironment constructs an Environment instance, establishing a
// new connection to the database.
//
// Settings are read from confPath when it is non-empty, and from the
// defaults plus environment overrides otherwise. A non-nil db replaces
// the database section of the settings.
//
// When NewEnvironment returns without an error, you should assume
// that the database answered a ping.
func NewEnvironment(ctx context.Context, confPath string, dbSettings *DBSettings) (Environment, error) {
	var (
		settings *Settings
		err      error
	)

	if confPath != "" {
		settings, err = NewSettings(confPath)
		if err != nil {
			return nil, errors.Wrap(err, "getting settings from file")
		}
	} else {
		settings = DefaultSettings()
		if err = settings.ApplyEnvOverrides(); err != nil {
			return nil, errors.WithStack(err)
		}
	}
	if dbSettings != nil {
		settings.Database = *dbSettings
		settings.ApplyDefaults()
	}

	return NewEnvironmentWithSettings(ctx, settings)
}

// NewEnvironmentWithSettings connects using already-built settings.
func NewEnvironmentWithSettings(ctx context.Context, settings *Settings) (Environment, error) {
	if settings == nil {
		return nil, errors.New("settings must not be nil")
	}
	if err := settings.Validate(); err != nil {
		return nil, errors.Wrap(err, "validating settings")
	}

	e := &envState{
		settings: settings,
		closers:  map[string]func(context.Context) error{},
	}

	if err := e.initDB(ctx); err != nil {
		return nil, errors.Wrap(err, "configuring db")
	}

	return e, nil
}

type envState struct {
	settings *Settings
	client   *mongo.Client
	store    *db.Store
	mu       sync.RWMutex
	closers  map[string]func(context.Context) error
}

func (e *envState) initDB(ctx context.Context) error {
	conf := e.settings.Database

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(conf.Url).
		SetConnectTimeout(conf.QueryTimeout()).
		SetServerSelectionTimeout(conf.QueryTimeout()))
	if err != nil {
		return errors.Wrap(err, "constructing database client")
	}

	attempt := 0
	err = utility.Retry(ctx, func() (bool, error) {
		attempt++
		pingErr := client.Ping(ctx, readpref.Primary())
		grip.WarningWhen(pingErr != nil, message.WrapError(pingErr, message.Fields{
			"message":  "database not reachable yet",
			"attempt":  attempt,
			"attempts": conf.ConnectAttempts,
			"database": conf.DB,
		}))
		return true, pingErr
	}, utility.RetryOptions{
		MaxAttempts: conf.ConnectAttempts,
		MinDelay:    connectRetryMinDelay,
		MaxDelay:    connectRetryMaxDelay,
	})
	if err != nil {
		catcher := grip.NewBasicCatcher()
		catcher.Wrap(err, "connecting to the database")
		catcher.Wrap(client.Disconnect(ctx), "disconnecting unusable client")
		return catcher.Resolve()
	}

	e.client = client
	e.store = db.NewStore(client.Database(conf.DB), conf.QueryTimeout())
	e.closers["database"] = func(ctx context.Context) error {
		return errors.Wrap(client.Disconnect(ctx), "disconnecting from the database")
	}

	grip.Info(message.Fields{
		"message":  "connected to database",
		"database": conf.DB,
		"attempts": attempt,
	})

	return nil
}

func (e *envState) Settings() *Settings {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.settings
}

func (e *envState) Client() *mongo.Client {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.client
}

func (e *envState) DB() *mongo.Database {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.client.Database(e.settings.Database.DB)
}

func (e *envState) Store() *db.Store {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.store
}

func (e *envState) RegisterCloser(name string, closer func(context.Context) error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.closers[name]; ok {
		grip.Critical(message.Fields{
			"closer":  name,
			"message": "duplicate closer registered",
			"cause":   "programmer error",
		})
	}
	e.closers[name] = closer
}

func (e *envState) Close(ctx context.Context) error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	deadline, _ := ctx.Deadline()
	catcher := grip.NewBasicCatcher()
	wg := &sync.WaitGroup{}
	for n, closer := range e.closers {
		if closer == nil {
			continue
		}

		wg.Add(1)
		go func(name string, close func(context.Context) error) {
			defer wg.Done()
			grip.Info(message.Fields{
				"message":      "calling closer",
				"closer":       name,
				"timeout_secs": time.Until(deadline),
				"deadline":     deadline,
			})
			catcher.Add(close(ctx))
		}(n, closer)
	}

	wg.Wait()
	return catcher.Resolve()
}
