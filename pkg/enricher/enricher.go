package enricher

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/trains/pkg/ctdf"
)

var ErrPartialFailure = errors.New("stops could not be fetched for some trains")

type TimetableFetcher interface {
	FetchTimetable(ctx context.Context, timetableRef string) ([]*ctdf.Stop, error)
}

// Enricher attaches the full stop list to every departure of a journey
type Enricher struct {
	Timetables TimetableFetcher

	// 0 runs every fetch at once
	MaxConcurrency int

	// FailFast cancels the outstanding fetches as soon as one train fails
	FailFast bool
}

// TrainFailure is one train whose timetable could not be fetched
type TrainFailure struct {
	TrainUID string
	Err      error
}

// PartialFailureError lists the trains that were left without stops
type PartialFailureError struct {
	Failures []TrainFailure
	Total    int

	// Aborted is set when the first failure cancelled the remaining fetches
	Aborted bool
}

func (e *PartialFailureError) Error() string {
	var reasons []string
	for _, failure := range e.Failures {
		reasons = append(reasons, failure.TrainUID+": "+failure.Err.Error())
	}

	return fmt.Sprintf("%s (%d of %d): %s", ErrPartialFailure, len(e.Failures), e.Total, strings.Join(reasons, "; "))
}

func (e *PartialFailureError) Unwrap() []error {
	errs := []error{ErrPartialFailure}
	for _, failure := range e.Failures {
		errs = append(errs, failure.Err)
	}

	return errs
}

// AllFailed is true when not a single train could be enriched
func (e *PartialFailureError) AllFailed() bool {
	return len(e.Failures) == e.Total
}

// EnrichAll fetches every departure's timetable concurrently and waits for all of them to settle.
// A train that fails is marked StopsUnavailable and the others carry on; the failures are returned
// as a *PartialFailureError alongside the enriched journey.
func (e *Enricher) EnrichAll(ctx context.Context, journey *ctdf.Journey) error {
	logger := zerolog.Ctx(ctx)

	p := pool.New().WithErrors().WithContext(ctx)
	if e.MaxConcurrency > 0 {
		p = p.WithMaxGoroutines(e.MaxConcurrency)
	}
	if e.FailFast {
		p = p.WithCancelOnError().WithFirstError()
	}

	failures := make([]error, len(journey.Departures))

	for i, departure := range journey.Departures {
		p.Go(func(ctx context.Context) error {
			err := e.enrich(ctx, journey, departure)
			if err != nil {
				departure.StopsUnavailable = true
				departure.StopsError = err.Error()
				failures[i] = err

				logger.Warn().Err(err).Str("train", departure.TrainUID).Msg("Failed to fetch train timetable")
			}

			return err
		})
	}

	// Failures are collected per train
	_ = p.Wait()

	partialFailure := &PartialFailureError{
		Total:   len(journey.Departures),
		Aborted: e.FailFast,
	}
	for i, err := range failures {
		if err != nil {
			partialFailure.Failures = append(partialFailure.Failures, TrainFailure{
				TrainUID: journey.Departures[i].TrainUID,
				Err:      err,
			})
		}
	}

	logger.Debug().
		Int("departures", partialFailure.Total).
		Int("failed", len(partialFailure.Failures)).
		Msg("Enriched departures")

	if len(partialFailure.Failures) > 0 {
		return partialFailure
	}

	return nil
}

func (e *Enricher) enrich(ctx context.Context, journey *ctdf.Journey, departure *ctdf.Departure) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	stops, err := e.Timetables.FetchTimetable(ctx, departure.TimetableRef)
	if err != nil {
		return err
	}

	ctdf.ClassifyRoute(stops, journey.OriginCode, journey.DestinationCode)
	departure.Stops = stops

	return nil
}
