package itinerary

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/travigo/trains/pkg/ctdf"
	"golang.org/x/exp/slices"
)

var ErrMissingBoundaryStop = errors.New("train stop list is missing the origin or destination")

const unknown = "?"

// SortDepartures returns the departures ordered by effective departure time.
// Times are compared as HH:MM strings and equal times keep their original order.
func SortDepartures(departures []*ctdf.Departure) []*ctdf.Departure {
	sorted := slices.Clone(departures)

	slices.SortStableFunc(sorted, func(a, b *ctdf.Departure) int {
		return strings.Compare(a.EffectiveDepartureTime(), b.EffectiveDepartureTime())
	})

	return sorted
}

// Format renders the journey as a text report. The journey itself is not modified.
func Format(journey *ctdf.Journey) (string, error) {
	var report strings.Builder

	header := journey.Header()
	rule := strings.Repeat("=", utf8.RuneCountInString(header))

	report.WriteString(rule + "\n")
	report.WriteString(header + "\n")
	report.WriteString(rule + "\n")

	if len(journey.Departures) == 0 {
		report.WriteString(fmt.Sprintf("No trains from %s calling at %s\n", journey.OriginCode, journey.DestinationCode))
		return report.String(), nil
	}

	for _, departure := range SortDepartures(journey.Departures) {
		block, err := formatDeparture(journey, departure)
		if err != nil {
			return "", err
		}

		report.WriteString(block)
	}

	return report.String(), nil
}

func formatDeparture(journey *ctdf.Journey, departure *ctdf.Departure) (string, error) {
	if departure.StopsUnavailable {
		summary := summaryLine(journey, departure, unknown, unknown, unknown, "stops unavailable")
		return summary + "\n\tStops unavailable\n", nil
	}

	source := departure.FindStop(journey.OriginCode)
	destination := departure.FindStop(journey.DestinationCode)

	if source == nil || destination == nil {
		return "", fmt.Errorf("%w: train %s", ErrMissingBoundaryStop, departure.TrainUID)
	}

	route := departure.OnRouteStops()

	var stopNames []string
	for _, stop := range route {
		stopNames = append(stopNames, stop.StationName)
	}

	summary := summaryLine(journey, departure,
		orUnknown(destination.ExpectedArrivalTime),
		orUnknown(source.Platform),
		orUnknown(destination.Platform),
		fmt.Sprintf("%d stops:", len(route)),
	)

	return summary + "\n\t" + strings.Join(stopNames, ",") + "\n", nil
}

func summaryLine(journey *ctdf.Journey, departure *ctdf.Departure, arrivalTime string, sourcePlatform string, destinationPlatform string, stopsSummary string) string {
	return fmt.Sprintf(
		"%s %s -> %s %s => %s. Train %s (%s) from %s arriving at %s on platform %s going to %s platform %s. %s",
		journey.OriginCode,
		orUnknown(departure.EffectiveDepartureTime()),
		journey.DestinationCode,
		arrivalTime,
		departure.Status,
		departure.TrainUID,
		departure.Operator,
		departure.OriginName,
		journey.OriginName,
		sourcePlatform,
		journey.DestinationName,
		destinationPlatform,
		stopsSummary,
	)
}

func orUnknown(value string) string {
	if value == "" {
		return unknown
	}

	return value
}
