package transportapi

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog"
	"github.com/travigo/trains/pkg/ctdf"
)

// FetchDepartures asks for the live departures from the origin that call at the destination.
// The returned Journey keeps the upstream order and has no stops attached yet.
func (c *Client) FetchDepartures(ctx context.Context, originCode string, destinationCode string) (*ctdf.Journey, error) {
	liveURL := fmt.Sprintf("%s/station/%s/live.json", strings.TrimSuffix(c.BaseURL, "/"), url.PathEscape(originCode))

	requestURL, err := c.withCredentials(liveURL, map[string]string{
		"station_code": originCode,
		"calling_at":   destinationCode,
		"type":         "departure",
	})
	if err != nil {
		return nil, err
	}

	var response liveResponse
	if err := c.getJSON(ctx, requestURL, &response); err != nil {
		return nil, err
	}

	if response.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrUpstream, response.Error)
	}
	if response.Departures == nil {
		return nil, fmt.Errorf("%w: response for %s has no departures", ErrUpstream, originCode)
	}

	journey := &ctdf.Journey{
		OriginCode:      originCode,
		OriginName:      response.StationName,
		DestinationCode: destinationCode,
		Date:            response.Date,
		TimeOfDay:       response.TimeOfDay,
	}

	for _, liveDeparture := range response.Departures.All {
		if liveDeparture == nil {
			continue
		}

		departure := &ctdf.Departure{}
		if err := copier.Copy(departure, liveDeparture); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
		}
		departure.TimetableRef = liveDeparture.ServiceTimetable.ID

		journey.Departures = append(journey.Departures, departure)
	}

	zerolog.Ctx(ctx).Debug().
		Str("origin", originCode).
		Str("destination", destinationCode).
		Int("departures", len(journey.Departures)).
		Msg("Fetched live departures")

	return journey, nil
}
