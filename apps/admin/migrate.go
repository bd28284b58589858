package main

import (
	"github.com/pressly/goose/v3"

	"github.com/classreconnect/backend/core"
	appfs "github.com/classreconnect/backend/fs"
)

var gooseRunFunc = goose.Run // mockable

func (cli *commandLine) migrate(args []string) error {
	command := "up"
	arguments := make([]string, 0)
	if len(args) > 0 {
		command = args[0]
		arguments = append(arguments, args[1:]...)
	}

	goose.SetBaseFS(appfs.FS)
	if err := goose.SetDialect(core.Conf.Database.Engine); err != nil {
		return err
	}
	return gooseRunFunc(command, cli.db.DB, "migrations", arguments...)
}
