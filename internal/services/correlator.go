package services

import (
	"context"
	"math"
	"time"

	"arkfleet/opsboard/internal/common"
	"arkfleet/opsboard/internal/constants"
	"arkfleet/opsboard/internal/db/repositories"
	"arkfleet/opsboard/internal/etl"
	"arkfleet/opsboard/internal/models/entities"
)

// CorrelatorService reconstructs the relationships the source systems never
// store: which van a driver drove, when a van was at the depot, and which
// movement log row corresponds to a trip completion. Everything here is
// heuristic matching over normalized fields; a failed match is a normal
// outcome, not an error.
type CorrelatorService struct {
	repo  *repositories.BlobRepository
	cache common.CacheInterface
}

func NewCorrelatorService(repo *repositories.BlobRepository, cache common.CacheInterface) *CorrelatorService {
	return &CorrelatorService{repo: repo, cache: cache}
}

// VanAssignments scans the event stream and maps van id to driver name for
// the given date (empty date means all events), memoized for five minutes.
func (s *CorrelatorService) VanAssignments(ctx context.Context, date string) (map[string]string, error) {
	cacheKey := string(constants.CachePrefixVanAssignments) + date
	if cached, found := s.cache.Get(cacheKey); found {
		if assignments, ok := assignmentsFromCache(cached); ok {
			return assignments, nil
		}
	}

	rows, err := s.repo.ScanTable(ctx, constants.TableEventStream)
	if err != nil {
		return nil, err
	}

	assignments := FoldAssignments(rows, date)
	s.cache.Set(cacheKey, assignments, 5*time.Minute)
	return assignments, nil
}

// FoldAssignments folds the event stream into a van id to driver name map,
// optionally filtered to one canonical date. Events arrive chronological by
// insertion, so the last event naming a driver for a van wins; an event
// without a driver only ever fills a gap, never overwrites a real name.
func FoldAssignments(rows []entities.Row, date string) map[string]string {
	assignments := make(map[string]string)
	for i := range rows {
		rec, err := rows[i].Decode()
		if err != nil {
			continue
		}

		if date != "" {
			raw, _ := etl.ResolveString(rec, constants.AliasDate...)
			if normalized, ok := etl.NormalizeDate(raw); !ok || normalized != date {
				continue
			}
		}

		vanRaw, ok := etl.ResolveString(rec, constants.AliasVan...)
		if !ok || vanRaw == "" {
			continue
		}
		vanID := etl.ExtractVanID(vanRaw)

		driver, _ := etl.ResolveString(rec, constants.AliasDriver...)
		if driver == "" {
			if _, exists := assignments[vanID]; !exists {
				assignments[vanID] = "Unknown"
			}
			continue
		}
		assignments[vanID] = driver
	}
	return assignments
}

// assignmentsFromCache recovers the assignment map from either cache
// backend: the in-memory cache hands the map back as stored, while the
// Redis backend round-trips through JSON and yields map[string]interface{}.
func assignmentsFromCache(cached interface{}) (map[string]string, bool) {
	switch typed := cached.(type) {
	case map[string]string:
		return typed, true
	case map[string]interface{}:
		assignments := make(map[string]string, len(typed))
		for van, driver := range typed {
			name, ok := driver.(string)
			if !ok {
				return nil, false
			}
			assignments[van] = name
		}
		return assignments, true
	}
	return nil, false
}

// VansByDriver inverts an assignment map, keyed by collapsed driver name.
// A driver can rotate through several vans in a day.
func VansByDriver(assignments map[string]string) map[string][]string {
	byDriver := make(map[string][]string)
	for van, driver := range assignments {
		key := common.CollapseName(driver)
		byDriver[key] = append(byDriver[key], van)
	}
	return byDriver
}

// HistoryRow is one normalized trip-history (movement log) row.
type HistoryRow struct {
	Van           string
	StartLocation string
	EndLocation   string
	StartRaw      string
	EndRaw        string
	Date          string
	StartMinutes  float64
	EndMinutes    float64
	HasStart      bool
	HasEnd        bool
}

// HistoryFromRows normalizes scanned csv_trips rows, optionally filtered to
// one canonical date (matched against the row's start timestamp).
func HistoryFromRows(rows []entities.Row, date string) []HistoryRow {
	var out []HistoryRow
	for i := range rows {
		rec, err := rows[i].Decode()
		if err != nil {
			continue
		}

		var h HistoryRow
		vanRaw, _ := etl.ResolveString(rec, append(constants.AliasVan, constants.AliasAsset...)...)
		h.Van = etl.ExtractVanID(vanRaw)
		h.StartLocation, _ = etl.ResolveString(rec, constants.AliasTripStartLoc...)
		h.EndLocation, _ = etl.ResolveString(rec, constants.AliasTripEndLoc...)
		h.StartRaw, _ = etl.ResolveString(rec, constants.AliasTripStartTime...)
		h.EndRaw, _ = etl.ResolveString(rec, constants.AliasTripEndTime...)
		h.StartMinutes, h.HasStart = etl.TimeToMinutes(h.StartRaw)
		h.EndMinutes, h.HasEnd = etl.TimeToMinutes(h.EndRaw)
		h.Date, _ = etl.NormalizeDate(h.StartRaw)

		if date != "" && h.Date != date {
			continue
		}
		out = append(out, h)
	}
	return out
}

// DepotVisit is the reconciled presence of one van at the depot.
type DepotVisit struct {
	FirstMinutes    float64
	LastMinutes     float64
	DurationMinutes int
	Found           bool
}

// First renders the earliest depot mention, "N/A" when nothing matched.
func (v DepotVisit) First() string {
	if !v.Found {
		return "N/A"
	}
	return etl.FormatMinutesOfDay(v.FirstMinutes)
}

// Last renders the latest depot mention, "N/A" when nothing matched.
func (v DepotVisit) Last() string {
	if !v.Found {
		return "N/A"
	}
	return etl.FormatMinutesOfDay(v.LastMinutes)
}

// Duration renders last-first as HH:MM. The value is signed: reordered logs
// can legitimately put the last mention before the first, and consumers want
// to see that rather than have it papered over.
func (v DepotVisit) Duration() string {
	if !v.Found {
		return "00:00"
	}
	return etl.FormatClockDuration(v.DurationMinutes)
}

// inMorningWindow keeps only rows whose start and end hours both fall inside
// the configured warehouse-activity band, filtering out the same van's
// unrelated daytime movements.
func inMorningWindow(h HistoryRow) bool {
	if !h.HasStart || !h.HasEnd {
		return false
	}
	startHour := int(h.StartMinutes) / 60
	endHour := int(h.EndMinutes) / 60
	return startHour >= constants.MorningWindowStartHour && startHour < constants.MorningWindowEndHour &&
		endHour >= constants.MorningWindowStartHour && endHour < constants.MorningWindowEndHour
}

// DepotVisits reconciles, per van, the earliest and latest mention of the
// depot across the movement log. Rows mentioning the depot as their start
// location contribute start timestamps; rows mentioning it as their end
// location contribute end timestamps; first/last are taken across both.
func DepotVisits(history []HistoryRow, depot string) map[string]DepotVisit {
	visits := make(map[string]DepotVisit)

	for _, h := range history {
		if !inMorningWindow(h) {
			continue
		}

		var mentions []float64
		if h.StartLocation == depot && h.HasStart {
			mentions = append(mentions, h.StartMinutes)
		}
		if h.EndLocation == depot && h.HasEnd {
			mentions = append(mentions, h.EndMinutes)
		}
		if len(mentions) == 0 {
			continue
		}

		visit, exists := visits[h.Van]
		for _, m := range mentions {
			if !exists && !visit.Found {
				visit.FirstMinutes = m
				visit.LastMinutes = m
				visit.Found = true
				continue
			}
			if m < visit.FirstMinutes {
				visit.FirstMinutes = m
			}
			if m > visit.LastMinutes {
				visit.LastMinutes = m
			}
		}
		visit.DurationMinutes = int(math.Round(visit.LastMinutes - visit.FirstMinutes))
		visits[h.Van] = visit
	}

	return visits
}

// ArrivalMatch is the movement-log row matched to a trip completion.
type ArrivalMatch struct {
	Row   HistoryRow
	Delta float64
	Pass  int
}

// MatchArrival finds the movement-log row whose end time sits closest to the
// completion time. First pass honors the driver hint (the row's van must be
// one the hinted driver drove) within the tight tolerance; only when that
// yields nothing does the second pass drop the driver constraint and widen
// the window. No match after both passes means no match — never guess.
func MatchArrival(history []HistoryRow, completionMinutes float64, driverHint string, assignments map[string]string) *ArrivalMatch {
	byDriver := VansByDriver(assignments)
	hintKey := common.CollapseName(driverHint)

	hintVans := make(map[string]struct{})
	for _, van := range byDriver[hintKey] {
		hintVans[van] = struct{}{}
	}

	if driverHint != "" {
		if match := closestWithin(history, completionMinutes, constants.ArrivalMatchToleranceMin, func(h HistoryRow) bool {
			_, ok := hintVans[h.Van]
			return ok
		}); match != nil {
			match.Pass = 1
			return match
		}
	}

	if match := closestWithin(history, completionMinutes, constants.ArrivalMatchFallbackMin, func(HistoryRow) bool { return true }); match != nil {
		match.Pass = 2
		return match
	}

	return nil
}

func closestWithin(history []HistoryRow, target float64, tolerance float64, accept func(HistoryRow) bool) *ArrivalMatch {
	var best *ArrivalMatch
	for _, h := range history {
		if !h.HasEnd || !accept(h) {
			continue
		}
		delta := math.Abs(h.EndMinutes - target)
		if delta > tolerance {
			continue
		}
		if best == nil || delta < best.Delta {
			best = &ArrivalMatch{Row: h, Delta: delta}
		}
	}
	return best
}
