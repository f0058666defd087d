package ctdf

// Journey is a single origin to destination query and the trains returned for it.
type Journey struct {
	OriginCode      string `groups:"basic"`
	OriginName      string `groups:"basic"`
	DestinationCode string `groups:"basic"`
	DestinationName string `groups:"basic"`

	Date      string `groups:"basic"`
	TimeOfDay string `groups:"basic"`

	Departures []*Departure `groups:"basic"`
}

// Header is the title line of the itinerary report for this journey
func (j *Journey) Header() string {
	return "==== Trains from " + j.OriginName + " (" + j.OriginCode + ") to " + j.DestinationName +
		" (" + j.DestinationCode + ") " + j.TimeOfDay + " " + j.Date + " ===="
}

// AvailableDepartures counts the departures that have a stop list attached
func (j *Journey) AvailableDepartures() int {
	count := 0

	for _, departure := range j.Departures {
		if !departure.StopsUnavailable {
			count++
		}
	}

	return count
}
