package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/travigo/trains/pkg/ctdf"
	"github.com/travigo/trains/pkg/enricher"
	"github.com/travigo/trains/pkg/itinerary"
	"github.com/travigo/trains/pkg/stations"
)

type StationDirectory interface {
	Lookup(code string) (string, error)
	Validate(code string) error
}

type DepartureFetcher interface {
	FetchDepartures(ctx context.Context, originCode string, destinationCode string) (*ctdf.Journey, error)
}

type StopEnricher interface {
	EnrichAll(ctx context.Context, journey *ctdf.Journey) error
}

// Planner runs the whole flow for one origin and destination pair
type Planner struct {
	Stations   StationDirectory
	Departures DepartureFetcher
	Enricher   StopEnricher

	// Zero means no deadline beyond the caller's context
	Timeout time.Duration
}

// Report is the outcome of one planned journey
type Report struct {
	RunID   string
	Journey *ctdf.Journey
	Text    string

	// Set when some trains were left without stops
	PartialFailure *enricher.PartialFailureError
}

// PlanJourney validates both codes, fetches the departures, enriches them with stops and formats the report.
// Nothing touches the network until both codes are known to be valid.
func (p *Planner) PlanJourney(ctx context.Context, originCode string, destinationCode string) (*Report, error) {
	runID := uuid.NewString()
	logger := log.With().
		Str("run", runID).
		Str("origin", originCode).
		Str("destination", destinationCode).
		Logger()
	ctx = logger.WithContext(ctx)

	startTime := time.Now()

	originCode = strings.ToUpper(strings.TrimSpace(originCode))
	destinationCode = strings.ToUpper(strings.TrimSpace(destinationCode))

	originName, destinationName, err := p.validate(originCode, destinationCode)
	if err != nil {
		return nil, err
	}

	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	journey, err := p.Departures.FetchDepartures(ctx, originCode, destinationCode)
	if err != nil {
		return nil, fmt.Errorf("fetching departures from %s to %s: %w", originCode, destinationCode, err)
	}

	if journey.OriginName == "" {
		journey.OriginName = originName
	}
	journey.DestinationName = destinationName

	report := &Report{
		RunID:   runID,
		Journey: journey,
	}

	if err := p.Enricher.EnrichAll(ctx, journey); err != nil {
		var partialFailure *enricher.PartialFailureError
		if !errors.As(err, &partialFailure) || partialFailure.AllFailed() || partialFailure.Aborted {
			return nil, fmt.Errorf("fetching stops from %s to %s: %w", originCode, destinationCode, err)
		}

		logger.Warn().
			Int("failed", len(partialFailure.Failures)).
			Int("departures", partialFailure.Total).
			Msg("Some trains are missing their stops")
		report.PartialFailure = partialFailure
	}

	report.Text, err = itinerary.Format(journey)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int("departures", len(journey.Departures)).
		Str("length", time.Since(startTime).String()).
		Msg("Planned journey")

	return report, nil
}

func (p *Planner) validate(originCode string, destinationCode string) (string, string, error) {
	if err := p.Stations.Validate(originCode); err != nil {
		return "", "", fmt.Errorf("origin: %w", err)
	}
	if err := p.Stations.Validate(destinationCode); err != nil {
		return "", "", fmt.Errorf("destination: %w", err)
	}

	originName, err := p.Stations.Lookup(originCode)
	if err != nil {
		return "", "", err
	}
	destinationName, err := p.Stations.Lookup(destinationCode)
	if err != nil {
		return "", "", err
	}

	return originName, destinationName, nil
}

// IsValidationError reports whether err came from checking the station codes
func IsValidationError(err error) bool {
	return errors.Is(err, stations.ErrInvalidFormat) || errors.Is(err, stations.ErrNotFound)
}
