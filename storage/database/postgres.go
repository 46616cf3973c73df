package database

import (
	"fmt"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"

	"github.com/trezcool/studentlogs/core"
	appfs "github.com/trezcool/studentlogs/fs"
)

const migrationsDir = "migrations"

func openPostgres(dbName string, admin bool, conf core.PostgresConfig) (*sqlx.DB, error) {
	user := url.UserPassword(conf.User, conf.Password)
	if admin && conf.AdminUser != "" {
		user = url.UserPassword(conf.AdminUser, conf.AdminPassword)
	}

	sslMode := "require"
	if conf.DisableTLS {
		sslMode = "disable"
	}
	q := make(url.Values)
	q.Set("sslmode", sslMode)
	q.Set("timezone", "utc")

	u := url.URL{
		Scheme:   conf.Engine,
		User:     user,
		Host:     conf.Address(),
		Path:     dbName,
		RawQuery: q.Encode(),
	}
	return sqlx.Open(conf.Engine, u.String())
}

// OpenPostgres opens the application database. It does not create nor migrate it.
func OpenPostgres(conf core.PostgresConfig) (*sqlx.DB, error) {
	db, err := openPostgres(conf.Name, false, conf)
	if err != nil {
		return nil, err
	}
	if err = ping(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(db *sqlx.DB) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
	}

	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}

func createAppUser(db *sqlx.DB, conf core.PostgresConfig) error {
	if conf.User == "" {
		return nil
	}

	// check if app user exists
	var exists bool
	if err := db.Get(&exists, "SELECT EXISTS (SELECT 1 FROM pg_roles WHERE rolname = $1)", conf.User); err != nil {
		return errors.Wrap(err, "checking app user")
	}

	// create app user if not exist
	if !exists {
		q := fmt.Sprintf("CREATE USER %s CREATEDB ENCRYPTED PASSWORD '%s'", conf.User, conf.Password)
		if _, err := db.Exec(q); err != nil {
			return errors.Wrap(err, "creating app user")
		}
	}
	return nil
}

func createDB(db *sqlx.DB, conf core.PostgresConfig) error {
	// check if DB exists
	var exists bool
	if err := db.Get(&exists, "SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", conf.Name); err != nil {
		return errors.Wrap(err, "checking DB")
	}

	// create DB if not exist
	if !exists {
		if _, err := db.Exec(fmt.Sprintf("CREATE DATABASE %s", conf.Name)); err != nil {
			return errors.Wrap(err, "creating database")
		}
	}
	return nil
}

// CreateIfNotExist creates the app user (as admin) then the app database (as the app user).
func CreateIfNotExist(conf core.PostgresConfig) error {
	// connect as admin
	db, err := openPostgres("postgres", true, conf)
	if err != nil {
		return errors.Wrap(err, "opening database")
	}
	defer func() { _ = db.Close() }()

	if err = ping(db); err != nil {
		return errors.Wrap(err, "pinging database")
	}
	if err = createAppUser(db, conf); err != nil {
		return errors.Wrap(err, "creating app user")
	}

	// create DB as app user
	appDB, err := openPostgres("postgres", false, conf)
	if err != nil {
		return errors.Wrap(err, "opening database")
	}
	defer func() { _ = appDB.Close() }()

	if err = createDB(appDB, conf); err != nil {
		return errors.Wrap(err, "creating database")
	}
	return nil
}

func init() {
	goose.SetBaseFS(appfs.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		panic(err)
	}
}

// Migrate applies every pending migration embedded in the binary.
func Migrate(db *sqlx.DB) error {
	if err := goose.Up(db.DB, migrationsDir); err != nil {
		return errors.Wrap(err, "migrating database")
	}
	return nil
}

// RunMigration runs any goose command (up, down, status, ...) against the embedded migrations.
func RunMigration(db *sqlx.DB, command string, args ...string) error {
	return goose.Run(command, db.DB, migrationsDir, args...)
}
