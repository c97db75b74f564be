package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"user-management-service/cmd/usermgmt/app"
	"user-management-service/cmd/usermgmt/server"
)

const flagConfig = "config"

func main() {
	cliApp := &cli.App{
		Name:  "usermgmt",
		Usage: "manage users from a console menu or serve the read-only HTTP listing",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				EnvVars: []string{"CONFIG_PATH"},
				Value:   ".",
				Usage:   "directory containing app.env",
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			consoleCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "application exited with error: %v\n", err)
		os.Exit(1)
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve GET /api/users and GET /api/users/:id",
		Action: func(c *cli.Context) error {
			a, err := app.New(c.Context, c.String(flagConfig))
			if err != nil {
				return err
			}

			ctx, stop := server.WithSignal(c.Context, a.Logger)
			defer stop()

			return a.RunServer(ctx)
		},
	}
}

func consoleCommand() *cli.Command {
	return &cli.Command{
		Name:  "console",
		Usage: "run the interactive user management menu",
		Action: func(c *cli.Context) error {
			a, err := app.New(c.Context, c.String(flagConfig), app.WithInteractiveOutput())
			if err != nil {
				return err
			}

			ctx, stop := server.WithSignal(c.Context, a.Logger)
			defer stop()

			return a.RunConsole(ctx, os.Stdin, os.Stdout)
		},
	}
}
