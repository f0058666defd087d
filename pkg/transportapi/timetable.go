package transportapi

import (
	"context"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/travigo/trains/pkg/ctdf"
)

// FetchTimetable retrieves every stop for one train in calling order. Route membership is left unset.
func (c *Client) FetchTimetable(ctx context.Context, timetableRef string) ([]*ctdf.Stop, error) {
	if timetableRef == "" {
		return nil, fmt.Errorf("%w: departure has no timetable reference", ErrUpstream)
	}

	requestURL, err := c.withCredentials(timetableRef, nil)
	if err != nil {
		return nil, err
	}

	var response timetableResponse
	if err := c.getJSON(ctx, requestURL, &response); err != nil {
		return nil, err
	}

	if response.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrUpstream, response.Error)
	}
	if response.Stops == nil {
		return nil, fmt.Errorf("%w: timetable has no stops", ErrUpstream)
	}

	rawStops := make([]*timetableStop, 0, len(response.Stops))
	for _, stop := range response.Stops {
		if stop != nil {
			rawStops = append(rawStops, stop)
		}
	}

	var stops []*ctdf.Stop
	if err := copier.Copy(&stops, &rawStops); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	return stops, nil
}
