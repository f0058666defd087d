package grpcapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/travigo/trains/pkg/config"
	"github.com/travigo/trains/pkg/planner"
	"github.com/urfave/cli/v2"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/encoding/protojson"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "grpc",
		Usage: "Provides the trains gRPC service",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run gRPC server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Usage: "listen target for the gRPC server, overrides grpc.listen",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.Load(c.String("config"))
					if err != nil {
						return err
					}

					journeyPlanner, _, err := planner.NewFromConfig(cfg)
					if err != nil {
						return err
					}

					listen := cfg.GRPC.Listen
					if c.IsSet("listen") {
						listen = c.String("listen")
					}

					listener, err := net.Listen("tcp", listen)
					if err != nil {
						return err
					}

					server := grpc.NewServer(grpc.UnaryInterceptor(LoggingInterceptor))
					RegisterTrainServiceServer(server, &Server{Planner: journeyPlanner})

					signals := make(chan os.Signal, 1)
					signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
					defer signal.Stop(signals)

					go func() {
						<-signals
						log.Info().Msg("Stopping gRPC server")
						server.GracefulStop()
					}()

					log.Info().Str("listen", listener.Addr().String()).Msg("Starting gRPC server")

					if err := server.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
						return err
					}

					return nil
				},
			},
			{
				Name:      "query",
				Usage:     "ask a running gRPC server for the trains between two stations",
				ArgsUsage: "<from> <to>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "address",
						Usage: "address of the gRPC server, overrides grpc.address",
					},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() != 2 {
						return cli.Exit("expected <from> and <to> station codes", 1)
					}

					cfg, err := config.Load(c.String("config"))
					if err != nil {
						return err
					}

					address := cfg.GRPC.Address
					if c.IsSet("address") {
						address = c.String("address")
					}

					conn, err := Dial(address)
					if err != nil {
						return err
					}
					defer conn.Close()

					ctx, cancel := context.WithTimeout(c.Context, cfg.PipelineTimeout())
					defer cancel()

					journey, err := NewClient(conn).GetTrains(ctx, c.Args().Get(0), c.Args().Get(1))
					if err != nil {
						return err
					}

					output, err := protojson.MarshalOptions{Multiline: true}.Marshal(journey)
					if err != nil {
						return err
					}

					fmt.Println(string(output))

					return nil
				},
			},
		},
	}
}
