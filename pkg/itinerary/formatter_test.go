package itinerary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/trains/pkg/ctdf"
)

func readingToPaddington() *ctdf.Journey {
	return &ctdf.Journey{
		OriginCode:      "RDG",
		OriginName:      "Reading",
		DestinationCode: "PAD",
		DestinationName: "London Paddington",
		Date:            "2019-07-15",
		TimeOfDay:       "08:00",
	}
}

func enrichedDeparture(uid string, expected string, aimed string) *ctdf.Departure {
	return &ctdf.Departure{
		TrainUID:              uid,
		Operator:              "GW",
		OriginName:            "Reading",
		Status:                "ON TIME",
		ExpectedDepartureTime: expected,
		AimedDepartureTime:    aimed,
		Stops: []*ctdf.Stop{
			{StationCode: "RDG", StationName: "Reading", Platform: "7", OnRoute: true},
			{StationCode: "TWY", StationName: "Twyford", ExpectedArrivalTime: "08:20", Platform: "2", OnRoute: true},
			{StationCode: "PAD", StationName: "London Paddington", ExpectedArrivalTime: "08:40", Platform: "1", OnRoute: true},
		},
	}
}

func TestFormat(t *testing.T) {
	journey := readingToPaddington()
	journey.Departures = []*ctdf.Departure{enrichedDeparture("C23362", "08:05", "08:05")}

	report, err := Format(journey)
	require.NoError(t, err)

	header := "==== Trains from Reading (RDG) to London Paddington (PAD) 08:00 2019-07-15 ===="
	rule := strings.Repeat("=", len(header))

	expected := rule + "\n" +
		header + "\n" +
		rule + "\n" +
		"RDG 08:05 -> PAD 08:40 => ON TIME. Train C23362 (GW) from Reading arriving at Reading on platform 7 going to London Paddington platform 1. 3 stops:\n" +
		"\tReading,Twyford,London Paddington\n"

	assert.Equal(t, expected, report)
}

func TestFormatRuleMatchesHeaderCharacters(t *testing.T) {
	journey := readingToPaddington()
	journey.DestinationName = "Gare Saint-Lazare Écluse"

	report, err := Format(journey)
	require.NoError(t, err)

	lines := strings.Split(report, "\n")
	assert.Equal(t, len([]rune(lines[1])), len(lines[0]))
	assert.Equal(t, lines[0], lines[2])
}

func TestFormatSortsByEffectiveTime(t *testing.T) {
	journey := readingToPaddington()
	journey.Departures = []*ctdf.Departure{
		enrichedDeparture("LATER", "08:15", "08:10"),
		enrichedDeparture("EARLIER", "", "08:05"),
	}

	report, err := Format(journey)
	require.NoError(t, err)

	assert.Less(t, strings.Index(report, "RDG 08:05"), strings.Index(report, "RDG 08:15"))
	assert.Less(t, strings.Index(report, "Train EARLIER"), strings.Index(report, "Train LATER"))

	// The journey keeps the upstream order
	assert.Equal(t, "LATER", journey.Departures[0].TrainUID)
}

func TestSortDeparturesIsStable(t *testing.T) {
	departures := []*ctdf.Departure{
		{TrainUID: "A", ExpectedDepartureTime: "09:00"},
		{TrainUID: "B", AimedDepartureTime: "08:30"},
		{TrainUID: "C", ExpectedDepartureTime: "08:30"},
		{TrainUID: "D", ExpectedDepartureTime: "08:00"},
		{TrainUID: "E", AimedDepartureTime: "08:30"},
	}

	sorted := SortDepartures(departures)

	var order []string
	for _, departure := range sorted {
		order = append(order, departure.TrainUID)
	}
	assert.Equal(t, []string{"D", "B", "C", "E", "A"}, order)

	for i := 1; i < len(sorted); i++ {
		assert.LessOrEqual(t, sorted[i-1].EffectiveDepartureTime(), sorted[i].EffectiveDepartureTime())
	}
}

func TestFormatOnlyListsOnRouteStops(t *testing.T) {
	journey := readingToPaddington()
	departure := enrichedDeparture("C23294", "08:15", "")
	departure.Stops = append([]*ctdf.Stop{{StationCode: "DID", StationName: "Didcot Parkway"}}, departure.Stops...)
	departure.Stops = append(departure.Stops, &ctdf.Stop{StationCode: "XXX", StationName: "Depot"})
	journey.Departures = []*ctdf.Departure{departure}

	report, err := Format(journey)
	require.NoError(t, err)

	assert.Contains(t, report, "3 stops:\n\tReading,Twyford,London Paddington\n")
	assert.NotContains(t, report, "Didcot Parkway,")
	assert.NotContains(t, report, "Depot")
}

func TestFormatMissingBoundaryStop(t *testing.T) {
	journey := readingToPaddington()
	departure := enrichedDeparture("C23362", "08:05", "")
	departure.Stops = departure.Stops[:2]
	journey.Departures = []*ctdf.Departure{departure}

	_, err := Format(journey)
	assert.ErrorIs(t, err, ErrMissingBoundaryStop)
	assert.Contains(t, err.Error(), "C23362")
}

func TestFormatStopsUnavailable(t *testing.T) {
	journey := readingToPaddington()
	journey.Departures = []*ctdf.Departure{
		{
			TrainUID:           "C99999",
			Operator:           "GW",
			OriginName:         "Oxford",
			Status:             "LATE",
			AimedDepartureTime: "08:20",
			StopsUnavailable:   true,
			StopsError:         "timetable broke",
		},
		enrichedDeparture("C23362", "08:05", ""),
	}

	report, err := Format(journey)
	require.NoError(t, err)

	assert.Contains(t, report, "RDG 08:20 -> PAD ? => LATE. Train C99999 (GW) from Oxford arriving at Reading on platform ? going to London Paddington platform ?. stops unavailable\n\tStops unavailable\n")
	assert.Less(t, strings.Index(report, "C23362"), strings.Index(report, "C99999"))
}

func TestFormatNoDepartures(t *testing.T) {
	report, err := Format(readingToPaddington())
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(report, "No trains from RDG calling at PAD\n"))
}
