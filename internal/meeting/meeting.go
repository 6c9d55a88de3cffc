package meeting

// Event is something already on attendees' calendars.
type Event struct {
	Title     string    `json:"title"`
	When      TimeRange `json:"when"`
	Attendees []string  `json:"attendees"`
}

// Request asks for a slot of Duration minutes.
type Request struct {
	Attendees         []string `json:"attendees"`
	OptionalAttendees []string `json:"optionalAttendees"`
	Duration          int      `json:"duration"`
}

// Query returns the free ranges of at least req.Duration minutes.
//
// Optional attendees are honoured when that still leaves a slot; otherwise
// only mandatory attendees are considered. Ranges are returned in order.
func Query(events []Event, req Request) []TimeRange {
	if req.Duration > MinutesPerDay {
		return []TimeRange{}
	}

	withOptional := query(events, req, true)
	if len(withOptional) == 0 && len(req.Attendees) > 0 {
		return query(events, req, false)
	}
	return withOptional
}

func query(events []Event, req Request, includeOptional bool) []TimeRange {
	attendees := make(map[string]struct{}, len(req.Attendees)+len(req.OptionalAttendees))
	for _, a := range req.Attendees {
		attendees[a] = struct{}{}
	}
	if includeOptional {
		for _, a := range req.OptionalAttendees {
			attendees[a] = struct{}{}
		}
	}
	if len(attendees) == 0 {
		return []TimeRange{WholeDay}
	}

	var busy []TimeRange
	for _, e := range events {
		if attendsAny(e.Attendees, attendees) {
			busy = append(busy, e.When)
		}
	}

	free := make([]TimeRange, 0)
	for _, r := range gaps(merge(busy)) {
		if r.Duration() >= req.Duration {
			free = append(free, r)
		}
	}
	return free
}

func attendsAny(eventAttendees []string, wanted map[string]struct{}) bool {
	for _, a := range eventAttendees {
		if _, ok := wanted[a]; ok {
			return true
		}
	}
	return false
}
