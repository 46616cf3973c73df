package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/go-playground/validator/v10"

	echoapi "github.com/trezcool/studentlogs/apps/api/echo"
	"github.com/trezcool/studentlogs/core"
	"github.com/trezcool/studentlogs/core/course"
	"github.com/trezcool/studentlogs/core/studentlog"
	logsvc "github.com/trezcool/studentlogs/services/logger"
	"github.com/trezcool/studentlogs/storage/database"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	dbLogger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	dbLogger.Enable(!conf.Debug)

	// set up DB
	stores, err := database.Open(context.Background(), conf, dbLogger)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up %s database: %v", conf.Database.Engine, err), err)
	}
	defer func() {
		if err = stores.Close(); err != nil {
			dbLogger.Error("Failed to close", err)
		}
	}()

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	studentlog.InitValidators(validate, translator)

	// set up services
	courseSvc := course.NewService(stores.Courses, validate)
	logSvc := studentlog.NewService(stores.Logs, validate, conf)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)
	expvar.NewString("storage").Set(stores.Engine)

	if conf.Server.DebugHost != "" {
		go func() {
			if dErr := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); dErr != nil {
				logger.Error(fmt.Sprintf("debug server closed: %v", dErr), dErr)
			}
		}()
	}

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:       conf,
			Logger:     logger,
			CourseSvc:  courseSvc,
			LogSvc:     logSvc,
			Translator: translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Error(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Error(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}
