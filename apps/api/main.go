package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/classreconnect/backend/apps/api/echo"
	"github.com/classreconnect/backend/core"
	"github.com/classreconnect/backend/core/assist"
	"github.com/classreconnect/backend/core/conversation"
	"github.com/classreconnect/backend/core/quiz"
	"github.com/classreconnect/backend/core/resource"
	"github.com/classreconnect/backend/core/user"
	answersvc "github.com/classreconnect/backend/services/answers"
	emailsvc "github.com/classreconnect/backend/services/email"
	logsvc "github.com/classreconnect/backend/services/logger"
	"github.com/classreconnect/backend/storage/database"
	sqlxrepos "github.com/classreconnect/backend/storage/database/sqlx"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		core.Conf,
	)
	logger.Enable(!core.Conf.Debug)

	// set up DB
	db, err := database.Open(core.Conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			logger.Error("closing database", err)
		}
	}()
	if err = database.Ping(db); err != nil {
		logger.Fatal(fmt.Sprintf("pinging database: %v", err), err)
	}
	if err = database.Migrate(db, core.Conf); err != nil {
		logger.Fatal(fmt.Sprintf("migrating database: %v", err), err)
	}

	// set up services
	var mailSvc core.EmailService
	if core.Conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}

	usrRepo := sqlxrepos.NewUserRepository(db)
	resRepo := sqlxrepos.NewResourceRepository(db)
	tombRepo := sqlxrepos.NewTombstoneRepository(db)

	usrSvc := user.NewService(usrRepo, sqlxrepos.NewActivityRepository(db), mailSvc, logger)
	resSvc := resource.NewService(resRepo, tombRepo, sqlxrepos.NewAuditRepository(db), logger)
	quizSvc := quiz.NewService(sqlxrepos.NewQuizRepository(db))
	convSvc := conversation.NewService(sqlxrepos.NewConversationRepository(db))
	assistSvc := assist.NewService(answersvc.NewGrokClient(logger), resRepo, resource.DefaultCatalog, logger)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", core.Conf.Build))
	defer logger.Info("Application stopped")

	// pre-populate default resources once the DB is reachable
	seeder := resource.NewSeeder(resource.DefaultCatalog, resRepo, tombRepo, usrSvc, logger)
	go func() {
		if _, err := seeder.Run(context.Background()); err != nil {
			logger.Error(fmt.Sprintf("seeding default resources: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Logger:          logger,
			UserSvc:         usrSvc,
			ResourceSvc:     resSvc,
			QuizSvc:         quizSvc,
			ConversationSvc: convSvc,
			AssistSvc:       assistSvc,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), core.Conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}
