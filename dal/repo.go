package dal

import (
	"database/sql"
	"embed"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"
	"ssb_courier/shared"
)

const schemaVer = 1

//go:embed scripts/*
var scripts embed.FS

//go:generate mockgen --build_flags=--mod=mod -destination ../test/mocks/mock_repo.go -package mocks ssb_courier/dal IRepo

type IRepo interface {
	InitUpdateDb()
	AddEntryIfNew(entry *Entry) (isNew bool, err error)
	GetPendingEntries(limit int) ([]*Entry, error)
	MarkPosting(ids []int64) error
	MarkPosted(ids []int64) error
	MarkPending(ids []int64) error
	ResetPostingToPending() (int64, error)
	DeleteEntry(id int64) error
	DeleteOldPosted(sbotName, feedUrl string, cutoff time.Time) (int64, error)
	GetStatusCounts() (*StatusCounts, error)
	Close() error
}

type Repo struct {
	cfg    *shared.Config
	logger shared.ILogger
	db     *sql.DB
	muDb   sync.RWMutex
}

func NewRepo(cfg *shared.Config, logger shared.ILogger) IRepo {

	var err error
	var db *sql.DB

	// https://phiresky.github.io/blog/2020/sqlite-performance-tuning/
	// _synchronous=1 is "normal"
	cstr := "file:%s?cache=shared&mode=rwc&_journal_mode=WAL&_synchronous=1&_busy_timeout=5000"
	db, err = sql.Open("sqlite3", fmt.Sprintf(cstr, cfg.DbFile))
	if err != nil {
		logger.Errorf("Failed to open/create DB file: %s: %v", cfg.DbFile, err)
		panic(err)
	}

	repo := Repo{
		cfg:    cfg,
		logger: logger,
		db:     db,
	}

	return &repo
}

func (repo *Repo) InitUpdateDb() {

	dbVer := 0
	sysParamsExists := false
	var err error
	var rows *sql.Rows

	rows, err = repo.db.Query("SELECT name FROM sqlite_master WHERE type='table' AND name='sys_params'")
	if err != nil {
		repo.logger.Errorf("Failed to check if 'sys_params' table exists: %v", err)
		panic(err)
	}
	for rows.Next() {
		sysParamsExists = true
	}
	_ = rows.Close()
	if !sysParamsExists {
		repo.logger.Printf("Database appears to be empty; current schema version is %d", schemaVer)
	} else {
		row := repo.db.QueryRow("SELECT val FROM sys_params WHERE name='schema_ver'")
		if err = row.Scan(&dbVer); err != nil {
			repo.logger.Errorf("Failed to query schema version: %v", err)
			panic(err)
		}
		repo.logger.Printf("Database is at version %d; current schema version is %d", dbVer, schemaVer)
	}
	for i := dbVer; i < schemaVer; i += 1 {
		nextVer := i + 1
		fn := fmt.Sprintf("scripts/create-%02d.sql", nextVer)
		repo.logger.Printf("Running %s", fn)
		var sqlBytes []byte
		if sqlBytes, err = scripts.ReadFile(fn); err != nil {
			repo.logger.Errorf("Failed to read init script %s: %v", fn, err)
			panic(err)
		}
		sqlStr := string(sqlBytes)
		if _, err = repo.db.Exec(sqlStr); err != nil {
			repo.logger.Errorf("Failed to execute init script %s: %v", fn, err)
			panic(err)
		}
		_, err = repo.db.Exec("UPDATE sys_params SET val=? WHERE name='schema_ver'", nextVer)
		if err != nil {
			repo.logger.Errorf("Failed to update schema_ver to %d: %v", nextVer, err)
			panic(err)
		}
	}
}

// AddEntryIfNew inserts the entry as Pending; a duplicate identity
// (sbot_name, feed_url, guid_hash) is a silent no-op.
func (repo *Repo) AddEntryIfNew(entry *Entry) (isNew bool, err error) {

	repo.muDb.Lock()
	defer repo.muDb.Unlock()

	isNew = true
	_, err = repo.db.Exec(`INSERT INTO entries
		(sbot_name, feed_url, guid, guid_hash, title, published_at, item_json, inserted_at, status)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.SbotName, entry.FeedUrl, entry.Guid, entry.GuidHash, entry.Title,
		entry.PublishedAt, entry.ItemJson, entry.InsertedAt, StatusPending)
	if err == nil {
		return
	}
	if sqliteErr, ok := err.(sqlite3.Error); ok {
		// Duplicate key: entry with this identity already exists
		if sqliteErr.Code == 19 && sqliteErr.ExtendedCode == 2067 {
			isNew = false
			err = nil
			return
		}
	}
	return
}

// GetPendingEntries returns up to limit Pending entries, oldest content
// first, so no feed can starve the others.
func (repo *Repo) GetPendingEntries(limit int) ([]*Entry, error) {

	repo.muDb.RLock()
	defer repo.muDb.RUnlock()

	rows, err := repo.db.Query(`SELECT id, sbot_name, feed_url, guid, guid_hash, title,
			published_at, item_json, inserted_at, status
		FROM entries WHERE status=? ORDER BY published_at ASC LIMIT ?`, StatusPending, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := make([]*Entry, 0, limit)
	for rows.Next() {
		e := Entry{}
		err = rows.Scan(&e.Id, &e.SbotName, &e.FeedUrl, &e.Guid, &e.GuidHash, &e.Title,
			&e.PublishedAt, &e.ItemJson, &e.InsertedAt, &e.Status)
		if err != nil {
			return nil, err
		}
		res = append(res, &e)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

func (repo *Repo) MarkPosting(ids []int64) error {
	return repo.setStatus(ids, StatusPosting)
}

func (repo *Repo) MarkPosted(ids []int64) error {
	return repo.setStatus(ids, StatusPosted)
}

func (repo *Repo) MarkPending(ids []int64) error {
	return repo.setStatus(ids, StatusPending)
}

func (repo *Repo) setStatus(ids []int64, status EntryStatus) error {

	if len(ids) == 0 {
		return nil
	}

	repo.muDb.Lock()
	defer repo.muDb.Unlock()

	query := fmt.Sprintf("UPDATE entries SET status=? WHERE id IN (%s)", placeholders(len(ids)))
	args := make([]interface{}, 0, len(ids)+1)
	args = append(args, status)
	for _, id := range ids {
		args = append(args, id)
	}
	_, err := repo.db.Exec(query, args...)
	return err
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

// ResetPostingToPending recovers entries stranded mid-post by a crash or
// shutdown; called once at startup and once during shutdown.
func (repo *Repo) ResetPostingToPending() (int64, error) {

	repo.muDb.Lock()
	defer repo.muDb.Unlock()

	res, err := repo.db.Exec("UPDATE entries SET status=? WHERE status=?", StatusPending, StatusPosting)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (repo *Repo) DeleteEntry(id int64) error {

	repo.muDb.Lock()
	defer repo.muDb.Unlock()

	_, err := repo.db.Exec("DELETE FROM entries WHERE id=?", id)
	return err
}

// DeleteOldPosted deletes Posted entries of one feed whose content is older
// than the cutoff. Pending and Posting entries are never touched.
func (repo *Repo) DeleteOldPosted(sbotName, feedUrl string, cutoff time.Time) (int64, error) {

	repo.muDb.Lock()
	defer repo.muDb.Unlock()

	res, err := repo.db.Exec(`DELETE FROM entries
		WHERE status=? AND sbot_name=? AND feed_url=? AND published_at<?`,
		StatusPosted, sbotName, feedUrl, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (repo *Repo) GetStatusCounts() (*StatusCounts, error) {

	repo.muDb.RLock()
	defer repo.muDb.RUnlock()

	rows, err := repo.db.Query("SELECT status, COUNT(*) FROM entries GROUP BY status")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res StatusCounts
	for rows.Next() {
		var status EntryStatus
		var count int
		if err = rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		switch status {
		case StatusPending:
			res.Pending = count
		case StatusPosting:
			res.Posting = count
		case StatusPosted:
			res.Posted = count
		}
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return &res, nil
}

func (repo *Repo) Close() error {
	repo.muDb.Lock()
	defer repo.muDb.Unlock()
	return repo.db.Close()
}
