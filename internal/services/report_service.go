package services

import (
	"context"
	"sort"
	"time"

	"arkfleet/opsboard/internal/constants"
	"arkfleet/opsboard/internal/db/repositories"
	"arkfleet/opsboard/internal/etl"
	"arkfleet/opsboard/internal/metrics"
	"arkfleet/opsboard/internal/models/dtos"

	"golang.org/x/sync/errgroup"
)

// ReportService owns the summary and comparison aggregations. Every method
// rebuilds the driver directory first, then scans the trip tables, so the
// attribution a report sees is never staler than the request itself.
type ReportService struct {
	repo       *repositories.BlobRepository
	correlator *CorrelatorService
	metricsReg *metrics.MetricsRegistry
}

func NewReportService(repo *repositories.BlobRepository, correlator *CorrelatorService, metricsReg *metrics.MetricsRegistry) *ReportService {
	return &ReportService{repo: repo, correlator: correlator, metricsReg: metricsReg}
}

// rankCounter counts by name while remembering first-seen order, so that
// Top-N ties resolve by insertion order instead of flapping between runs.
type rankCounter struct {
	names  []string
	counts map[string]int
}

func newRankCounter() *rankCounter {
	return &rankCounter{counts: make(map[string]int)}
}

func (c *rankCounter) add(name string) {
	if name == "" {
		return
	}
	if _, seen := c.counts[name]; !seen {
		c.names = append(c.names, name)
	}
	c.counts[name]++
}

func (c *rankCounter) top(n int) []dtos.RankEntry {
	ordered := make([]string, len(c.names))
	copy(ordered, c.names)
	sort.SliceStable(ordered, func(i, j int) bool {
		return c.counts[ordered[i]] > c.counts[ordered[j]]
	})

	if len(ordered) > n {
		ordered = ordered[:n]
	}
	entries := make([]dtos.RankEntry, 0, len(ordered))
	for _, name := range ordered {
		entries = append(entries, dtos.RankEntry{Name: name, Count: c.counts[name]})
	}
	return entries
}

func (s *ReportService) loadTrips(ctx context.Context, table string) ([]Trip, error) {
	started := time.Now()
	rows, err := s.repo.ScanTable(ctx, table)
	if err != nil {
		return nil, &ReportError{Code: constants.ErrCodeStorageFailure, Message: constants.GetErrorMessage(constants.ErrCodeStorageFailure), Err: err}
	}
	trips, skipped := TripsFromRows(rows)

	if s.metricsReg != nil {
		s.metricsReg.TableScanDuration.WithLabelValues(table).Observe(time.Since(started).Seconds())
		s.metricsReg.RowsSkippedTotal.WithLabelValues(table).Add(float64(skipped))
	}
	return trips, nil
}

// GetSummary computes the headline completion report for a date range,
// optionally narrowed to one contractor.
func (s *ReportService) GetSummary(ctx context.Context, start, end, contractor string) (*dtos.SummaryReport, error) {
	directory, err := FetchDirectory(ctx, s.repo)
	if err != nil {
		return nil, &ReportError{Code: constants.ErrCodeStorageFailure, Message: constants.GetErrorMessage(constants.ErrCodeStorageFailure), Err: err}
	}

	trips, err := s.loadTrips(ctx, constants.TableTomorrowTrips)
	if err != nil {
		return nil, err
	}

	report := &dtos.SummaryReport{Range: dtos.DateRange{Start: start, End: end}}

	drivers := newRankCounter()
	postcodes := newRankCounter()
	auctions := newRankCounter()
	contractors := newRankCounter()

	priceSums := make(map[string]float64)
	priceCounts := make(map[string]int)
	var priceOrder []string

	for _, t := range trips {
		if !t.InDateRange(start, end) {
			continue
		}

		tripContractor := directory[t.Driver]
		if tripContractor == "" {
			tripContractor = "Unknown"
		}
		if contractor != "" && tripContractor != contractor {
			continue
		}

		report.Total++
		switch {
		case t.IsComplete():
			report.Complete++
		case t.IsFailed():
			report.Failed++
		}

		drivers.add(t.Driver)
		postcodes.add(t.Postcode)
		auctions.add(t.Auction)
		contractors.add(tripContractor)

		// Unparsed prices are excluded from numerator and denominator
		// alike; a bad price must not drag the average toward zero.
		if t.Price != nil {
			if _, seen := priceCounts[tripContractor]; !seen {
				priceOrder = append(priceOrder, tripContractor)
			}
			priceSums[tripContractor] += *t.Price
			priceCounts[tripContractor]++
		}

		countPositiveWork(&report.PositiveWork, t)
	}

	report.TopDrivers = drivers.top(10)
	report.TopPostcodes = postcodes.top(10)
	report.TopAuctions = auctions.top(10)
	report.TopContractors = contractors.top(10)

	for _, name := range priceOrder {
		report.ContractorAvgPrice = append(report.ContractorAvgPrice, dtos.ContractorPrice{
			Contractor:   name,
			AveragePrice: priceSums[name] / float64(priceCounts[name]),
			Sampled:      priceCounts[name],
		})
	}

	return report, nil
}

// countPositiveWork applies the end-of-window rule: the second clock token
// of the destination's working-hours string is the day boundary, and an
// arrival/completion at or after it counts as positive. Trips missing any
// input are excluded from the metric entirely.
func countPositiveWork(stats *dtos.PositiveWorkStats, t Trip) {
	window := etl.ClockFragments(t.WorkingHours)
	if len(window) < 2 {
		return
	}
	boundary := window[1]

	completion, okC := etl.TimeToMinutes(t.Completion)
	arrival, okA := etl.TimeToMinutes(t.Arrival)
	if !okC || !okA {
		return
	}

	stats.Considered++
	if completion >= boundary {
		stats.PositiveTimeCompleted++
	}
	if arrival >= boundary {
		stats.PositiveArrivalTime++
	}
}

// GetFullReport compares two date ranges in a single pass and adds regional
// and calendar groupings for the first range. Ranges may overlap; a trip in
// both contributes to both.
func (s *ReportService) GetFullReport(ctx context.Context, r1, r2 dtos.DateRange) (*dtos.FullReport, error) {
	// The directory scan completes before the dependent scans start, so
	// attribution is consistent within the request. The trip tables are
	// independent of each other and load concurrently.
	if _, err := FetchDirectory(ctx, s.repo); err != nil {
		return nil, &ReportError{Code: constants.ErrCodeStorageFailure, Message: constants.GetErrorMessage(constants.ErrCodeStorageFailure), Err: err}
	}

	var trips, scheduled []Trip
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		trips, err = s.loadTrips(gctx, constants.TableTomorrowTrips)
		return err
	})
	g.Go(func() error {
		var err error
		scheduled, err = s.loadTrips(gctx, constants.TableScheduleTrips)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &dtos.FullReport{
		Period1: dtos.PeriodStats{Range: r1},
		Period2: dtos.PeriodStats{Range: r2},
	}

	regionIdx := make(map[string]int, len(constants.RegionBoxes))
	for i, box := range constants.RegionBoxes {
		report.Regions = append(report.Regions, dtos.RegionStats{Region: box.Name})
		regionIdx[box.Name] = i
	}

	daily := make(map[string]*dtos.DateCount)
	monthly := make(map[string]*dtos.DateCount)
	var dailyOrder, monthlyOrder []string

	tally := func(t Trip, p *dtos.PeriodStats) {
		p.Total++
		switch {
		case t.IsComplete():
			p.Complete++
		case t.IsFailed():
			p.Failed++
		}
	}

	for _, t := range append(append([]Trip{}, trips...), scheduled...) {
		if t.InDateRange(r1.Start, r1.End) {
			tally(t, &report.Period1)

			if region, ok := assignRegion(t); ok {
				entry := &report.Regions[regionIdx[region]]
				entry.Total++
				if t.IsComplete() {
					entry.Complete++
				}
			}

			// Unparseable dates drop out of the calendar groupings
			// silently; there is no "unknown" bucket.
			if t.Date != "" {
				bumpDateCount(daily, &dailyOrder, t.Date, t)
				bumpDateCount(monthly, &monthlyOrder, t.Date[:7], t)
			}
		}
		if t.InDateRange(r2.Start, r2.End) {
			tally(t, &report.Period2)
		}
	}

	sort.Strings(dailyOrder)
	sort.Strings(monthlyOrder)
	for _, key := range dailyOrder {
		report.Daily = append(report.Daily, *daily[key])
	}
	for _, key := range monthlyOrder {
		report.Monthly = append(report.Monthly, *monthly[key])
	}

	return report, nil
}

func bumpDateCount(buckets map[string]*dtos.DateCount, order *[]string, key string, t Trip) {
	entry, ok := buckets[key]
	if !ok {
		entry = &dtos.DateCount{Key: key}
		buckets[key] = entry
		*order = append(*order, key)
	}
	entry.Total++
	switch {
	case t.IsComplete():
		entry.Complete++
	case t.IsFailed():
		entry.Failed++
	}
}

// assignRegion places a trip in the first bounding box containing its
// coordinates, in the fixed NW/NE/SW/SE check order. Points outside every
// box are excluded from regional stats, not lumped into a catch-all.
func assignRegion(t Trip) (string, bool) {
	if t.Lat == nil || t.Lon == nil {
		return "", false
	}
	for _, box := range constants.RegionBoxes {
		if *t.Lat >= box.MinLat && *t.Lat <= box.MaxLat && *t.Lon >= box.MinLon && *t.Lon <= box.MaxLon {
			return box.Name, true
		}
	}
	return "", false
}

// GetRosterAdvisories surfaces suspected name reversals in the roster.
func (s *ReportService) GetRosterAdvisories(ctx context.Context) ([]dtos.RosterAdvisory, error) {
	directory, err := FetchDirectory(ctx, s.repo)
	if err != nil {
		return nil, &ReportError{Code: constants.ErrCodeStorageFailure, Message: constants.GetErrorMessage(constants.ErrCodeStorageFailure), Err: err}
	}
	return RosterAdvisories(directory), nil
}
