package main

import (
	"log"
	"os"

	"github.com/classreconnect/backend/core"
	"github.com/classreconnect/backend/core/resource"
	"github.com/classreconnect/backend/core/user"
	emailsvc "github.com/classreconnect/backend/services/email"
	logsvc "github.com/classreconnect/backend/services/logger"
	"github.com/classreconnect/backend/storage/database"
	sqlxrepos "github.com/classreconnect/backend/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	appLogger := logsvc.NewRollbarLogger(logger, core.Conf)
	appLogger.Enable(false)

	// set up DB
	db, err := database.Open(core.Conf)
	errAndDie(err)
	defer db.Close()
	errAndDie(database.Ping(db))

	usrRepo := sqlxrepos.NewUserRepository(db)
	resRepo := sqlxrepos.NewResourceRepository(db)
	tombRepo := sqlxrepos.NewTombstoneRepository(db)
	usrSvc := user.NewService(usrRepo, sqlxrepos.NewActivityRepository(db), emailsvc.NewConsoleService(), appLogger)

	// start CLI
	cli := commandLine{
		db:       db,
		usrSvc:   usrSvc,
		tombRepo: tombRepo,
		seeder:   resource.NewSeeder(resource.DefaultCatalog, resRepo, tombRepo, usrSvc, appLogger),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
