package tests

import (
	"fmt"
	"net/http"
	"path/filepath"
	"testing"

	"agency_platform/agency/backup"
	"agency_platform/agency/querycache"
	"agency_platform/agency/registry"
	"agency_platform/agency/schema"
	"agency_platform/agency/services"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const superuserPassword = "admin_password123"

type testEnv struct {
	api       http.Handler
	db        *gorm.DB
	runner    *RunnerStub
	cache     *querycache.Cache
	backupDir string
	csvDir    string
}

func setupTestEnv(t *testing.T) *testEnv {
	// Each test gets its own named in-memory database, shared cache keeps
	// it visible across pooled connections, _fk enables cascade enforcement.
	dsn := fmt.Sprintf("file:%v?mode=memory&cache=shared&_fk=1", uuid.New())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}

	err = db.AutoMigrate(schema.AllModels()...)
	if err != nil {
		t.Fatal(err)
	}

	tables := registry.Tables()
	if err := tables.Validate(); err != nil {
		t.Fatal(err)
	}

	tmpDir := t.TempDir()
	backupDir := filepath.Join(tmpDir, "backups")
	csvDir := filepath.Join(tmpDir, "exports")

	runner := &RunnerStub{}
	cache := querycache.New(16)

	api := services.NewAgencyApi(db, tables, cache, services.Config{
		SuperuserPassword: superuserPassword,
		BackupDir:         backupDir,
		CsvDir:            csvDir,
		Conn: backup.ConnInfo{
			Host: "localhost", Port: "5432", User: "postgres",
			Password: "secret", DbName: "agency",
		},
		Runner: runner,
	})

	root := chi.NewRouter()
	root.Mount("/api", api.Routes())

	return &testEnv{
		api:       root,
		db:        db,
		runner:    runner,
		cache:     cache,
		backupDir: backupDir,
		csvDir:    csvDir,
	}
}

func (t *testEnv) newClient() *client {
	return &client{api: t.api}
}
