package ctdf

type Departure struct {
	TrainUID   string `groups:"basic"`
	Operator   string `groups:"basic"`
	OriginName string `groups:"basic"`
	Status     string `groups:"basic"`

	ExpectedDepartureTime string `groups:"basic" json:",omitempty"`
	AimedDepartureTime    string `groups:"basic" json:",omitempty"`

	TimetableRef string `groups:"internal"`

	Stops []*Stop `groups:"stops"`

	// Set when the timetable for this train could not be retrieved
	StopsUnavailable bool   `groups:"basic"`
	StopsError       string `groups:"basic" json:",omitempty"`
}

// EffectiveDepartureTime is the expected departure time if the upstream knows it, otherwise the aimed time
func (d *Departure) EffectiveDepartureTime() string {
	if d.ExpectedDepartureTime != "" {
		return d.ExpectedDepartureTime
	}

	return d.AimedDepartureTime
}

// FindStop returns the first stop calling at the given station code
func (d *Departure) FindStop(stationCode string) *Stop {
	for _, stop := range d.Stops {
		if stop.StationCode == stationCode {
			return stop
		}
	}

	return nil
}

// OnRouteStops returns the on route stops in timetable order
func (d *Departure) OnRouteStops() []*Stop {
	var onRoute []*Stop

	for _, stop := range d.Stops {
		if stop.OnRoute {
			onRoute = append(onRoute, stop)
		}
	}

	return onRoute
}
