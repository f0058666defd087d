package transportapi

type liveResponse struct {
	Date        string `json:"date"`
	TimeOfDay   string `json:"time_of_day"`
	RequestTime string `json:"request_time"`
	StationName string `json:"station_name"`
	StationCode string `json:"station_code"`

	// departures is an object with a single "all" list
	Departures *liveDepartures `json:"departures"`

	Error string `json:"error"`
}

type liveDepartures struct {
	All []*liveDeparture `json:"all"`
}

type liveDeparture struct {
	Mode         string `json:"mode"`
	Service      string `json:"service"`
	TrainUID     string `json:"train_uid"`
	Platform     string `json:"platform"`
	Operator     string `json:"operator"`
	OperatorName string `json:"operator_name"`

	AimedDepartureTime    string `json:"aimed_departure_time"`
	AimedArrivalTime      string `json:"aimed_arrival_time"`
	ExpectedDepartureTime string `json:"expected_departure_time"`
	ExpectedArrivalTime   string `json:"expected_arrival_time"`

	OriginName      string `json:"origin_name"`
	DestinationName string `json:"destination_name"`
	Source          string `json:"source"`
	Category        string `json:"category"`
	Status          string `json:"status"`

	ServiceTimetable struct {
		ID string `json:"id"`
	} `json:"service_timetable"`
}

type timetableResponse struct {
	Service      string           `json:"service"`
	TrainUID     string           `json:"train_uid"`
	OperatorName string           `json:"operator_name"`
	Stops        []*timetableStop `json:"stops"`

	Error string `json:"error"`
}

type timetableStop struct {
	StationCode string `json:"station_code"`
	TiplocCode  string `json:"tiploc_code"`
	StationName string `json:"station_name"`
	StopType    string `json:"stop_type"`
	Platform    string `json:"platform"`

	AimedArrivalTime      string `json:"aimed_arrival_time"`
	AimedDepartureTime    string `json:"aimed_departure_time"`
	ExpectedArrivalTime   string `json:"expected_arrival_time"`
	ExpectedDepartureTime string `json:"expected_departure_time"`

	Status string `json:"status"`
}
