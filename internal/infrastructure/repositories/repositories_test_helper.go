package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		email_status TEXT NOT NULL DEFAULT 'PENDING',
		id_status TEXT NOT NULL DEFAULT 'NOT_SUBMITTED',
		approval_status TEXT NOT NULL DEFAULT 'PENDING',
		government_id TEXT,
		id_document_path TEXT,
		phone TEXT,
		bio TEXT,
		average_rating REAL NOT NULL DEFAULT 0,
		review_count INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createMessageTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE messages (
		id TEXT PRIMARY KEY,
		sender_id TEXT NOT NULL,
		recipient_id TEXT NOT NULL,
		property_id TEXT,
		content TEXT NOT NULL,
		is_read BOOLEAN NOT NULL DEFAULT 0,
		is_blocked BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE blocks (
		id TEXT PRIMARY KEY,
		blocker_id TEXT NOT NULL,
		blocked_id TEXT NOT NULL,
		created_at DATETIME,
		UNIQUE (blocker_id, blocked_id)
	);`)
}

func createReviewTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE reviews (
		id TEXT PRIMARY KEY,
		reviewer_id TEXT NOT NULL,
		target_user_id TEXT NOT NULL,
		rating INTEGER NOT NULL,
		comment TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		UNIQUE (reviewer_id, target_user_id)
	);`)
}

func createPropertyTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE properties (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		title TEXT NOT NULL,
		location TEXT NOT NULL,
		description TEXT,
		price REAL NOT NULL,
		rooms INTEGER NOT NULL DEFAULT 0,
		floor INTEGER,
		area REAL,
		distance_to_metro REAL,
		distance_to_university REAL,
		latitude REAL,
		longitude REAL,
		photos TEXT,
		videos TEXT,
		is_verified BOOLEAN NOT NULL DEFAULT 0,
		is_archived BOOLEAN NOT NULL DEFAULT 0,
		rating_average REAL NOT NULL DEFAULT 0,
		rating_count INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createReportTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE reports (
		id TEXT PRIMARY KEY,
		reporter_id TEXT NOT NULL,
		reported_user_id TEXT,
		reported_property_id TEXT,
		reason TEXT NOT NULL,
		description TEXT,
		status TEXT NOT NULL DEFAULT 'PENDING',
		admin_notes TEXT,
		resolved_by TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}
