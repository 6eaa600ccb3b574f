package services

import (
	"log"
	"net/http"
	"os"

	"agency_platform/agency/backup"
	"agency_platform/agency/querycache"
	"agency_platform/agency/registry"
	"agency_platform/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"gorm.io/gorm"
)

type Config struct {
	SuperuserPassword string
	BackupDir         string
	CsvDir            string

	Conn   backup.ConnInfo
	Runner backup.CommandRunner
}

type AgencyApi struct {
	records   RecordService
	relations RelationService
	database  DatabaseService
	recovery  RecoveryService

	db *gorm.DB
}

func NewAgencyApi(db *gorm.DB, tables registry.Registry, cache *querycache.Cache, config Config) AgencyApi {
	runner := config.Runner
	if runner == nil {
		runner = backup.ExecRunner{}
	}

	return AgencyApi{
		records:   RecordService{db: db, tables: tables, cache: cache},
		relations: RelationService{db: db, tables: tables},
		database:  DatabaseService{db: db, cache: cache, csvDir: config.CsvDir},
		recovery: RecoveryService{
			superuserPassword: config.SuperuserPassword,
			backupDir:         config.BackupDir,
			tools:             backup.Tools{Runner: runner, Conn: config.Conn},
		},
		db: db,
	}
}

func (m *AgencyApi) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger: log.New(os.Stderr, "", log.LstdFlags), NoColor: false,
	}))

	r.Route("/db", func(r chi.Router) {
		r.Post("/query", m.database.ExecuteQuery)
		r.Post("/csv", m.database.ExportCsv)
		r.Get("/filter/{table}", m.records.Filter)
		r.Post("/backup", m.recovery.Backup)
		r.Post("/restore", m.recovery.Restore)
		r.Get("/backups", m.recovery.ListBackups)
	})

	m.records.RegisterCrudRoutes(r)
	m.relations.RegisterRoutes(r)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteSuccess(w)
	})

	return r
}
