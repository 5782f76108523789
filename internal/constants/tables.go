package constants

// Logical blob-store tables. Every table shares the same physical layout
// (id, payload, created_at); these names are the only coupling between the
// ingestion side and the report side.
const (
	TableTomorrowTrips = "copy_of_tomorrow_trips"
	TableScheduleTrips = "schedule_trips"
	TableDriversReport = "drivers_report"
	TableEventStream   = "event_stream"
	TableCsvTrips      = "csv_trips"
	TableVanChecks     = "van_checks"
)

// KnownTables is the allowlist for the raw record admin endpoints. Anything
// else is rejected before a scan is attempted.
var KnownTables = map[string]struct{}{
	TableTomorrowTrips: {},
	TableScheduleTrips: {},
	TableDriversReport: {},
	TableEventStream:   {},
	TableCsvTrips:      {},
	TableVanChecks:     {},
}

// Field alias lists. Upstream exports spell the same logical field at least
// four different ways; resolution order within each list is significant and
// must not be reordered casually.
var (
	AliasDriver     = []string{"Driver", "Driver_Name", "Driver Name", "Assigned_Driver"}
	AliasVan        = []string{"Vans", "Van"}
	AliasAsset      = []string{"Asset", "Asset_Code", "Registration"}
	AliasDate       = []string{"Date", "Trip_Date", "Trip.Date", "Scheduled_Date"}
	AliasStartTime  = []string{"Start_Time", "Trip.Start_Time", "Predicted_Time"}
	AliasEndTime    = []string{"End_Time", "Trip.End_Time", "Finish_Time"}
	AliasArrival    = []string{"Arrival_Time", "Arrived_At", "Actual_Arrival"}
	AliasCompletion = []string{"Time_Completed", "Completed_At", "Completion_Time"}
	AliasStatus     = []string{"Status", "Trip_Status", "Task_Status"}
	AliasOrderNo    = []string{"Order_Number", "Order No", "OrderNo", "Order"}
	AliasPostcode   = []string{"Postcode", "Post_Code", "Delivery_Postcode"}
	AliasAuction    = []string{"Auction", "Account", "Auction_Name"}
	AliasPrice      = []string{"Price", "Value", "Vehicle_Price"}
	AliasNotes      = []string{"Notes", "Comments", "Special_Instructions"}
	AliasFullName   = []string{"Full_Name", "Full Name", "Name"}
	AliasContractor = []string{"Contractor", "Company", "Contractor_Name"}
	AliasLat        = []string{"Lat", "Latitude", "Dest_Lat"}
	AliasLon        = []string{"Lon", "Lng", "Longitude", "Dest_Lon"}
	AliasWorkHours  = []string{"Working_Hours", "Working Hours", "Opening_Hours"}
	AliasSequence   = []string{"Sequence", "Task_Sequence", "Order_In_Route"}
	AliasRoute      = []string{"Route", "Route_Name", "Calendar_Name"}

	// Trip-history CSV columns keep their verbatim headers.
	AliasTripStartLoc  = []string{"Trip Start Location", "Start Location"}
	AliasTripEndLoc    = []string{"Trip End Location", "End Location"}
	AliasTripStartTime = []string{"Trip Start Time", "Start Time"}
	AliasTripEndTime   = []string{"Trip End Time", "End Time"}
)

// Correlation and report policy knobs. These reproduce operational behavior
// the reporting consumers depend on; treat changes as breaking.
const (
	// Depot address used for visit reconciliation when DEPOT_ADDRESS is unset.
	DefaultDepotAddress = "Arkfleet Central Depot, Foundry Lane, Birmingham"

	// Morning warehouse activity window [start, end) in hours.
	MorningWindowStartHour = 4
	MorningWindowEndHour   = 11

	// Loading-dock lead time subtracted from the scheduled start.
	LoadTimeLeadMinutes = 90

	// Order-arrival matching tolerances, first pass then widened fallback.
	ArrivalMatchToleranceMin = 20
	ArrivalMatchFallbackMin  = 60

	// Report snapshot cache.
	ReportCacheTTLSeconds = 300
	ReportCacheCapacity   = 64

	// Transient storage-busy retry policy, applied per statement.
	StorageBusyRetries   = 3
	StorageBusyDelayMsec = 250
)

// TwoDayRoutes lists route-name substrings whose drivers stay out overnight.
// For these, the working-time end is taken from the driver's last completed
// task of the day instead of the scheduled end.
var TwoDayRoutes = []string{"Glasgow", "Edinburgh", "LA+CA"}

// RegionBox is a lat/lon bounding box for regional rollups.
type RegionBox struct {
	Name   string
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// RegionBoxes are checked in this fixed order; a point outside all four is
// excluded from regional stats entirely.
var RegionBoxes = []RegionBox{
	{Name: "NW", MinLat: 54, MaxLat: 59, MinLon: -8, MaxLon: -2},
	{Name: "NE", MinLat: 54, MaxLat: 59, MinLon: -2, MaxLon: 2},
	{Name: "SW", MinLat: 49, MaxLat: 54, MinLon: -8, MaxLon: -2},
	{Name: "SE", MinLat: 49, MaxLat: 54, MinLon: -2, MaxLon: 2},
}

type (
	APIStatus   string
	CachePrefix string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixVanAssignments CachePrefix = "VAN_ASSIGN_"
	CachePrefixReport         CachePrefix = "REPORT_"
)
