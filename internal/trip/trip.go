// Package trip defines the crew pairing record extracted from a trip
// document.
package trip

// Trip is one crew pairing: the header, crew list, duty periods and the
// footer totals of a single document.
type Trip struct {
	ID       string `json:"id,omitempty" msgpack:"id,omitempty"`
	Seq      string `json:"seq" msgpack:"seq"`
	ABSeq    string `json:"ab_seq,omitempty" msgpack:"ab_seq,omitempty"`
	Base     string `json:"base,omitempty" msgpack:"base,omitempty"`
	Sel      string `json:"sel,omitempty" msgpack:"sel,omitempty"`
	Fleet    string `json:"fleet,omitempty" msgpack:"fleet,omitempty"`
	Division string `json:"division,omitempty" msgpack:"division,omitempty"`

	Original bool `json:"original" msgpack:"original"` // ORG SCH
	ETB      bool `json:"etb" msgpack:"etb"`
	TTS      bool `json:"tts" msgpack:"tts"`
	RedFlag  bool `json:"red_flag" msgpack:"red_flag"`
	IPD      bool `json:"ipd" msgpack:"ipd"`

	// AdditionalInfo holds header text the parser did not recognise.
	AdditionalInfo []string `json:"additional_info,omitempty" msgpack:"additional_info,omitempty"`

	Crew        []Crew       `json:"crew" msgpack:"crew"`
	DutyPeriods []DutyPeriod `json:"duty_periods" msgpack:"duty_periods"`

	FlightTime     string `json:"flight_time" msgpack:"flight_time"`
	FlightTimeType string `json:"flight_time_type" msgpack:"flight_time_type"`
	PCTime         string `json:"pc_time" msgpack:"pc_time"`
	TLTime         string `json:"tl_time" msgpack:"tl_time"`
	PTLTime        string `json:"ptl_time,omitempty" msgpack:"ptl_time,omitempty"`
	TAFBTime       string `json:"tafb_time" msgpack:"tafb_time"`
}

// New returns an empty trip for a sequence number.
func New(seq string) *Trip {
	return &Trip{Seq: seq}
}

// Crew is one line of the crew block.
type Crew struct {
	Position string   `json:"position" msgpack:"position"` // CAPT, F/O, FA1, ...
	Name     string   `json:"name" msgpack:"name"`
	EmpNbr   string   `json:"emp_nbr,omitempty" msgpack:"emp_nbr,omitempty"`
	Comments string   `json:"comments,omitempty" msgpack:"comments,omitempty"`
	Info     []string `json:"info,omitempty" msgpack:"info,omitempty"`
}

// OpenPosition is the name recorded for an unfilled crew slot.
const OpenPosition = "OPEN"

// IsOpen reports whether the crew slot is unfilled.
func (c Crew) IsOpen() bool {
	return c.Name == OpenPosition && c.EmpNbr == ""
}

// AddCrew appends a crew member.
func (t *Trip) AddCrew(c Crew) {
	t.Crew = append(t.Crew, c)
}

// AddDutyPeriod appends a completed duty period.
func (t *Trip) AddDutyPeriod(dp DutyPeriod) {
	t.DutyPeriods = append(t.DutyPeriods, dp)
}

// FirstFlight returns the first flight row of the trip.
func (t *Trip) FirstFlight() (Flight, bool) {
	for _, dp := range t.DutyPeriods {
		for _, leg := range dp.Flights {
			if len(leg) > 0 {
				return leg[0], true
			}
		}
	}
	return Flight{}, false
}

// BuildID sets the trip identifier from the document date (yymmdd), the
// day of month of the first flight and the sequence number, e.g.
// "240315" + "15" + "-" + "12345". An empty date leaves the ID empty.
func (t *Trip) BuildID(date string) string {
	if date == "" {
		t.ID = ""
		return ""
	}
	f, _ := t.FirstFlight()
	t.ID = date + f.Day + "-" + t.Seq
	return t.ID
}
