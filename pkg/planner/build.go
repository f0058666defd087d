package planner

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/trains/pkg/config"
	"github.com/travigo/trains/pkg/credentials"
	"github.com/travigo/trains/pkg/enricher"
	"github.com/travigo/trains/pkg/stations"
	"github.com/travigo/trains/pkg/transportapi"
)

// NewFromConfig resolves the credentials, loads the station table and wires a Planner against the Transport API.
// Missing credentials fail here so nothing can be planned without them.
func NewFromConfig(cfg *config.Config) (*Planner, *stations.Directory, error) {
	directory, err := stations.Open(cfg.Stations.File)
	if err != nil {
		return nil, nil, err
	}

	creds, err := credentials.Resolve(cfg.CredentialSources())
	if err != nil {
		return nil, nil, err
	}

	client := transportapi.NewClient(cfg.TransportAPI.BaseURL, creds, cfg.UpstreamTimeout(), cfg.TransportAPI.UserAgent)

	log.Debug().
		Str("baseurl", cfg.TransportAPI.BaseURL).
		Int("stations", directory.Len()).
		Int("maxconcurrency", cfg.Enrichment.MaxConcurrency).
		Bool("failfast", cfg.Enrichment.FailFast).
		Msg("Planner configured")

	return &Planner{
		Stations:   directory,
		Departures: client,
		Enricher: &enricher.Enricher{
			Timetables:     client,
			MaxConcurrency: cfg.Enrichment.MaxConcurrency,
			FailFast:       cfg.Enrichment.FailFast,
		},
		Timeout: cfg.PipelineTimeout(),
	}, directory, nil
}
