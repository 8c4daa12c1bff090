package storage

import (
	"context"
	"database/sql"
	"errors"

	raven "github.com/getsentry/raven-go"
	"github.com/kpango/glg"
	_ "github.com/lib/pq" // Only want to import the interface here
)

const (
	// UnknownPlatformTable is the name of the table that will hold the unknown platform values
	// passed by the voice assistants
	UnknownPlatformTable = "unknown_platforms"
	// UnknownGamertagTable holds gamertags that could not be resolved to a Destiny account
	UnknownGamertagTable = "unknown_gamertags"
)

var unknownTables = map[string]bool{
	UnknownPlatformTable: true,
	UnknownGamertagTable: true,
}

// LookupDB is a wrapper around the database connection pool that stores the commonly used queries
// as prepared statements. The tables are loaded from the Destiny manifest.
type LookupDB struct {
	Database             *sql.DB
	ItemNameStmt         *sql.Stmt
	ActivityNameStmt     *sql.Stmt
	ActivityTypeNameStmt *sql.Stmt
}

// NewLookupDB opens the manifest database with the given driver ("postgres" in production)
// and prepares the lookup statements.
func NewLookupDB(driver, dsn string) (*LookupDB, error) {

	db, err := sql.Open(driver, dsn)
	if err != nil {
		raven.CaptureError(err, nil)
		glg.Errorf("DB errror: %s", err.Error())
		return nil, err
	}

	itemNameStmt, err := db.Prepare("SELECT item_name FROM items WHERE item_hash = $1 LIMIT 1")
	if err != nil {
		raven.CaptureError(err, nil)
		glg.Errorf("DB prepare error: %s", err.Error())
		db.Close()
		return nil, err
	}

	activityNameStmt, err := db.Prepare("SELECT activity_name FROM activities WHERE activity_hash = $1 LIMIT 1")
	if err != nil {
		raven.CaptureError(err, nil)
		glg.Errorf("DB prepare error: %s", err.Error())
		db.Close()
		return nil, err
	}

	activityTypeNameStmt, err := db.Prepare("SELECT activity_type_name FROM activity_types WHERE activity_type_hash = $1 LIMIT 1")
	if err != nil {
		raven.CaptureError(err, nil)
		glg.Errorf("Error preparing the activity type statement: %s", err.Error())
		db.Close()
		return nil, err
	}

	return &LookupDB{
		Database:             db,
		ItemNameStmt:         itemNameStmt,
		ActivityNameStmt:     activityNameStmt,
		ActivityTypeNameStmt: activityTypeNameStmt,
	}, nil
}

// Close releases the prepared statements and the connection pool.
func (db *LookupDB) Close() error {
	for _, stmt := range []*sql.Stmt{db.ItemNameStmt, db.ActivityNameStmt, db.ActivityTypeNameStmt} {
		stmt.Close()
	}

	return db.Database.Close()
}

func lookupName(ctx context.Context, stmt *sql.Stmt, hash uint) (string, error) {

	var name string
	err := stmt.QueryRowContext(ctx, int64(hash)).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	} else if err != nil {
		raven.CaptureError(err, nil)
		glg.Errorf("Manifest lookup for %d failed: %s", hash, err.Error())
		return "", err
	}

	return name, nil
}

// ItemName is the display name of the item definition with the given hash.
func (db *LookupDB) ItemName(ctx context.Context, hash uint) (string, error) {
	return lookupName(ctx, db.ItemNameStmt, hash)
}

// ActivityName is the display name of the activity definition with the given hash.
func (db *LookupDB) ActivityName(ctx context.Context, hash uint) (string, error) {
	return lookupName(ctx, db.ActivityNameStmt, hash)
}

// ActivityTypeName is the display name of an activity type, used for activities whose hash
// was overridden with a type re-skin.
func (db *LookupDB) ActivityTypeName(ctx context.Context, hash uint) (string, error) {
	return lookupName(ctx, db.ActivityTypeNameStmt, hash)
}

// InsertUnknownValue is a helper method for inserting a value into one of the unknown value
// tables. This is used when a value for a slot type is not usable, for example a platform
// name that is not Xbox or Playstation.
func (db *LookupDB) InsertUnknownValue(ctx context.Context, value, tableName string) error {
	if !unknownTables[tableName] {
		return errors.New("storage: unsupported unknown value table " + tableName)
	}

	_, err := db.Database.ExecContext(ctx, "INSERT INTO "+tableName+" (value) VALUES ($1)", value)
	if err != nil {
		raven.CaptureError(err, nil)
		glg.Warnf("Failed to record unknown value in %s: %s", tableName, err.Error())
	}

	return err
}
