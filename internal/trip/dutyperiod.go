package trip

// DutyPeriod is a D/P block: its flight legs, the header totals, half day
// counts, on-duty lines and the optional FDPT footer.
type DutyPeriod struct {
	Category string `json:"category" msgpack:"category"` // EST, GTR or SKD
	DPTime   string `json:"dp_time" msgpack:"dp_time"`
	PCTime   string `json:"pc_time" msgpack:"pc_time"`
	TLTime   string `json:"tl_time" msgpack:"tl_time"`

	// Flights holds the legs of the period. Each leg is the scheduled row
	// followed by any actual rows for the same segment.
	Flights [][]Flight `json:"flights" msgpack:"flights"`

	HalfDay  bool     `json:"half_day" msgpack:"half_day"`
	HDPorts  []string `json:"hd_ports,omitempty" msgpack:"hd_ports,omitempty"`
	HDCounts []string `json:"hd_counts,omitempty" msgpack:"hd_counts,omitempty"`

	OnDuty []OnDutyLine `json:"on_duty,omitempty" msgpack:"on_duty,omitempty"`

	FDPT      string `json:"fdpt,omitempty" msgpack:"fdpt,omitempty"`
	StartTime string `json:"start_time,omitempty" msgpack:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty" msgpack:"end_time,omitempty"`
	AccSta    string `json:"acc_sta,omitempty" msgpack:"acc_sta,omitempty"`
	RsvBegan  string `json:"rsv_began,omitempty" msgpack:"rsv_began,omitempty"`
	RsvEnds   string `json:"rsv_ends,omitempty" msgpack:"rsv_ends,omitempty"`
}

// AddHalfDay records one airport/count pair from a HALF DAY COUNT line.
func (dp *DutyPeriod) AddHalfDay(port, count string) {
	dp.HalfDay = true
	dp.HDPorts = append(dp.HDPorts, port)
	dp.HDCounts = append(dp.HDCounts, count)
}

// OnDutyLine is one ONDUTY (or U/S) line of a duty period. Only Category
// and OnDutyTime are normally present.
type OnDutyLine struct {
	Category   string `json:"category" msgpack:"category"`
	OnDutyTime string `json:"on_duty_time" msgpack:"on_duty_time"`
	ODLTime    string `json:"odl_time,omitempty" msgpack:"odl_time,omitempty"`
	ExpTime    string `json:"exp_time,omitempty" msgpack:"exp_time,omitempty"`
	ExpType    string `json:"exp_type,omitempty" msgpack:"exp_type,omitempty"`
	SIData     string `json:"si_data,omitempty" msgpack:"si_data,omitempty"`
	RLSData    string `json:"rls_data,omitempty" msgpack:"rls_data,omitempty"`
	RangeType  string `json:"range_type,omitempty" msgpack:"range_type,omitempty"`
}
