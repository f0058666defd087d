package ctdf

type Stop struct {
	StationCode string `groups:"stops"`
	StationName string `groups:"stops"`

	ExpectedArrivalTime string `groups:"stops"`
	Platform            string `groups:"stops"`

	OnRoute bool `groups:"stops"`
}
