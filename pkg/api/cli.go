package api

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/trains/pkg/config"
	"github.com/travigo/trains/pkg/planner"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the trains web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Usage: "listen target for the web server, overrides http.listen",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.Load(c.String("config"))
					if err != nil {
						return err
					}

					journeyPlanner, directory, err := planner.NewFromConfig(cfg)
					if err != nil {
						return err
					}

					listen := cfg.HTTP.Listen
					if c.IsSet("listen") {
						listen = c.String("listen")
					}

					log.Info().Str("listen", listen).Msg("Starting web API")

					return SetupServer(listen, journeyPlanner, directory)
				},
			},
		},
	}
}
