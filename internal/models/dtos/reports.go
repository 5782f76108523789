package dtos

// Report response shapes. Field names and display formats are consumed by
// the ops dashboard and by at least one spreadsheet importer; renames and
// format changes here are breaking.

type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type RankEntry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type ContractorPrice struct {
	Contractor   string  `json:"contractor"`
	AveragePrice float64 `json:"average_price"`
	Sampled      int     `json:"sampled"`
}

type PositiveWorkStats struct {
	Considered            int `json:"considered"`
	PositiveTimeCompleted int `json:"positive_time_completed"`
	PositiveArrivalTime   int `json:"positive_arrival_time"`
}

type SummaryReport struct {
	Range              DateRange         `json:"range"`
	Total              int               `json:"total"`
	Complete           int               `json:"complete"`
	Failed             int               `json:"failed"`
	TopDrivers         []RankEntry       `json:"top_drivers"`
	TopPostcodes       []RankEntry       `json:"top_postcodes"`
	TopAuctions        []RankEntry       `json:"top_auctions"`
	TopContractors     []RankEntry       `json:"top_contractors"`
	ContractorAvgPrice []ContractorPrice `json:"contractor_avg_price"`
	PositiveWork       PositiveWorkStats `json:"positive_work"`
}

type PeriodStats struct {
	Range    DateRange `json:"range"`
	Total    int       `json:"total"`
	Complete int       `json:"complete"`
	Failed   int       `json:"failed"`
}

type RegionStats struct {
	Region   string `json:"region"`
	Total    int    `json:"total"`
	Complete int    `json:"complete"`
}

type DateCount struct {
	Key      string `json:"key"`
	Total    int    `json:"total"`
	Complete int    `json:"complete"`
	Failed   int    `json:"failed"`
}

type FullReport struct {
	Period1 PeriodStats   `json:"period1"`
	Period2 PeriodStats   `json:"period2"`
	Regions []RegionStats `json:"regions"`
	Daily   []DateCount   `json:"daily"`
	Monthly []DateCount   `json:"monthly"`
}

type RouteTrip struct {
	OrderNumber string `json:"order_number"`
	Status      string `json:"status"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Postcode    string `json:"postcode"`
	Notes       string `json:"notes,omitempty"`
	Sequence    int    `json:"sequence"`
}

type DriverRoute struct {
	Driver     string      `json:"driver"`
	Contractor string      `json:"contractor"`
	Van        string      `json:"van"`
	Date       string      `json:"date"`
	Trips      []RouteTrip `json:"trips"`
}

// VanStartTime is one row of the depot start-times report. FirstMention and
// LastMention fall back to "N/A" and Duration to "00:00" when no trip-history
// row matched the depot.
type VanStartTime struct {
	Van            string `json:"van"`
	Driver         string `json:"driver"`
	FirstMention   string `json:"first_mention"`
	LastMention    string `json:"last_mention"`
	Duration       string `json:"duration"`
	ScheduledStart string `json:"scheduled_start,omitempty"`
	LoadTime       string `json:"load_time,omitempty"`
}

type OrderArrival struct {
	OrderNumber  string  `json:"order_number"`
	Driver       string  `json:"driver"`
	Van          string  `json:"van"`
	Date         string  `json:"date"`
	Completion   string  `json:"completion"`
	MatchedEnd   string  `json:"matched_end"`
	DeltaMinutes float64 `json:"delta_minutes"`
	Pass         int     `json:"pass"`
}

// DriverWorkingTime carries the adjusted hours in the legacy HH.MM dot
// format; downstream consumers split on the dot, so it must stay.
type DriverWorkingTime struct {
	Driver      string  `json:"driver"`
	Contractor  string  `json:"contractor"`
	Date        string  `json:"date"`
	Start       string  `json:"start"`
	End         string  `json:"end"`
	Punctuality float64 `json:"punctuality"`
	Hours       string  `json:"hours"`
	TwoDayRoute bool    `json:"two_day_route"`
}

type ContractorHours struct {
	Contractor   string `json:"contractor"`
	Drivers      int    `json:"drivers"`
	TotalMinutes int    `json:"total_minutes"`
	Hours        string `json:"hours"`
}

type WorkingTimesReport struct {
	Range       DateRange           `json:"range"`
	Drivers     []DriverWorkingTime `json:"drivers"`
	Contractors []ContractorHours   `json:"contractors"`
}

type VanCheckEntry struct {
	Van     string   `json:"van"`
	Driver  string   `json:"driver"`
	Date    string   `json:"date"`
	Mileage string   `json:"mileage,omitempty"`
	Fuel    string   `json:"fuel,omitempty"`
	Oil     string   `json:"oil,omitempty"`
	Missing []string `json:"missing,omitempty"`
}

// RosterAdvisory flags a suspected first/last name reversal between two
// roster entries. Advisory only: merging is always an operator decision.
type RosterAdvisory struct {
	NameA      string `json:"name_a"`
	NameB      string `json:"name_b"`
	Contractor string `json:"contractor"`
}
