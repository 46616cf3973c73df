package main

import (
	"log"
	"os"

	"github.com/trezcool/studentlogs/core"
	logsvc "github.com/trezcool/studentlogs/services/logger"
)

func main() {
	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	cli := &commandLine{conf: conf, logger: logger}
	err := cli.run(cli.rootCmd(os.Stdout), os.Args[1:])

	if cErr := cli.close(); cErr != nil {
		logger.Error("closing database", cErr)
	}
	if err != nil {
		logger.Error("error: "+err.Error(), err)
		os.Exit(1)
	}
}
