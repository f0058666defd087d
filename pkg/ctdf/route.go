package ctdf

// ClassifyRoute marks which stops lie between the origin and destination, boundaries inclusive.
//
// Stops are walked once in calling order. The first boundary station reached opens the span and the
// other boundary closes it, so a train running towards the origin gets the same contiguous span as
// one running towards the destination.
func ClassifyRoute(stops []*Stop, originCode string, destinationCode string) {
	openedBy := ""

	for _, stop := range stops {
		code := stop.StationCode

		if code != originCode && code != destinationCode {
			stop.OnRoute = openedBy != ""
			continue
		}

		stop.OnRoute = true

		switch {
		case originCode == destinationCode:
			// Single station span
		case openedBy == "":
			openedBy = code
		case openedBy != code:
			openedBy = ""
		}
	}
}
