package app

import (
	"context"
	"database/sql"

	"go.uber.org/dig"

	"github.com/evgeny-myasishchev/finance-tracker/config"
	"github.com/evgeny-myasishchev/finance-tracker/pkg/dal"
	"github.com/evgeny-myasishchev/finance-tracker/pkg/events"
	"github.com/evgeny-myasishchev/finance-tracker/pkg/ledger"
	"github.com/evgeny-myasishchev/finance-tracker/pkg/lib-core-golang/diag"
)

var logger = diag.CreateLogger()

// StorageDriverMemory keeps the ledger in memory only
const StorageDriverMemory = "memory"

// Injector is a function that will inject desired services
// to a target function
type Injector func(function interface{}) error

// Resources collects release functions of services that hold connections
type Resources struct {
	closers []func() error
}

func (r *Resources) add(closeFn func() error) {
	r.closers = append(r.closers, closeFn)
}

// Close releases resources in reverse order
func (r *Resources) Close(ctx context.Context) {
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil {
			logger.WithError(err).Warn(ctx, "Failed to release resource")
		}
	}
}

// SetupLogging applies log settings of the config to the logging system
func SetupLogging(appCfg *config.AppConfig) {
	diag.SetupLoggingSystem(func(setup diag.LoggingSystemSetup) {
		setup.SetLogMode(appCfg.Log.Mode.Value())
		setup.SetLogLevel(appCfg.Log.Level.Value())
	})
}

func newObserver(ctx context.Context, appCfg *config.AppConfig, resources *Resources) (ledger.Observer, error) {
	observers := []ledger.Observer{events.NewLogObserver()}
	if amqpURL := appCfg.Events.AMQPURL.Value(); amqpURL != "" {
		publisher, err := events.DialAMQPPublisher(ctx, amqpURL, appCfg.Events.AMQPExchange.Value())
		if err != nil {
			return nil, err
		}
		resources.add(publisher.Close)
		observers = append(observers, publisher)
	}
	return events.Broadcast(observers...), nil
}

// BootstrapServices setup di container with all app services
func BootstrapServices(ctx context.Context, appCfg *config.AppConfig) Injector {
	c := dig.New()
	resources := &Resources{}

	provide := func(constructor interface{}) {
		if err := c.Provide(constructor); err != nil {
			panic(err)
		}
	}

	provide(func() *Resources { return resources })

	var db *sql.DB
	openDB := func() (*sql.DB, error) {
		if db != nil {
			return db, nil
		}
		opened, err := sql.Open(appCfg.Storage.Driver.Value(), appCfg.Storage.DSN.Value())
		if err != nil {
			return nil, err
		}
		resources.add(opened.Close)
		db = opened
		return db, nil
	}

	provide(openDB)

	provide(func() (dal.Storage, error) {
		driver := appCfg.Storage.Driver.Value()
		if driver == StorageDriverMemory {
			return dal.NewMemoryStorage(), nil
		}
		sqlDB, err := openDB()
		if err != nil {
			return nil, err
		}
		return dal.NewSQLStorage(
			dal.WithSQLDb(sqlDB),
			dal.WithDataSource(driver, appCfg.Storage.DSN.Value()),
		)
	})

	provide(func() (ledger.Observer, error) {
		return newObserver(ctx, appCfg, resources)
	})

	provide(func(storage dal.Storage, observer ledger.Observer) (*ledger.Manager, error) {
		manager := ledger.NewManager(
			ledger.WithStorage(storage),
			ledger.WithObserver(observer),
		)
		if err := storage.Setup(ctx); err != nil {
			return nil, err
		}
		if err := manager.Init(ctx); err != nil {
			return nil, err
		}
		return manager, nil
	})

	return func(function interface{}) error {
		return c.Invoke(function)
	}
}
