package main

import (
	"fmt"
	"os"

	"catalogadmin/cmd/catalogadmin/cli"
)

var (
	version = "0.0.1-dev"
	commit  = "main"
)

func main() {
	root := cli.NewRootCommand(cli.VersionInfo{
		Version: version,
		Commit:  commit,
	})

	root.AddCommand(cli.NewVersionCommand())
	root.AddCommand(cli.NewServeCommand())
	root.AddCommand(cli.NewMigrateCommand())
	root.AddCommand(cli.NewUserCommand())
	root.AddCommand(cli.NewConfigCommand())

	if err := root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
