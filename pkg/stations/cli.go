package stations

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/travigo/trains/pkg/config"
	"github.com/urfave/cli/v2"
)

type listedStation struct {
	Code string
	Name string
}

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "stations",
		Usage: "Inspect the station code table",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "print every station as JSON, sorted by code",
				Action: func(c *cli.Context) error {
					directory, err := openConfigured(c)
					if err != nil {
						return err
					}

					listing := make([]listedStation, 0, directory.Len())
					for _, code := range directory.Codes() {
						name, _ := directory.Lookup(code)
						listing = append(listing, listedStation{Code: code, Name: name})
					}

					encoder := json.NewEncoder(os.Stdout)
					encoder.SetIndent("", "  ")

					return encoder.Encode(listing)
				},
			},
			{
				Name:      "lookup",
				Usage:     "print the name of one station",
				ArgsUsage: "<code>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return cli.Exit("expected a single station code", 1)
					}

					directory, err := openConfigured(c)
					if err != nil {
						return err
					}

					code := strings.ToUpper(strings.TrimSpace(c.Args().First()))
					if err := directory.Validate(code); err != nil {
						return err
					}

					name, err := directory.Lookup(code)
					if err != nil {
						return err
					}

					fmt.Println(name)

					return nil
				},
			},
		},
	}
}

func openConfigured(c *cli.Context) (*Directory, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	return Open(cfg.Stations.File)
}
