package services

import (
	"context"
	"os"
	"sort"
	"strings"

	"arkfleet/opsboard/internal/common"
	"arkfleet/opsboard/internal/constants"
	"arkfleet/opsboard/internal/db/repositories"
	"arkfleet/opsboard/internal/etl"
	"arkfleet/opsboard/internal/metrics"
	"arkfleet/opsboard/internal/models/dtos"

	"golang.org/x/sync/errgroup"
)

// RoutesService builds the per-driver route sheets, the depot start-times
// report and the order-arrival lookup. All three lean on the correlator for
// van attribution.
type RoutesService struct {
	repo       *repositories.BlobRepository
	correlator *CorrelatorService
	metricsReg *metrics.MetricsRegistry
}

func NewRoutesService(repo *repositories.BlobRepository, correlator *CorrelatorService, metricsReg *metrics.MetricsRegistry) *RoutesService {
	return &RoutesService{repo: repo, correlator: correlator, metricsReg: metricsReg}
}

func depotAddress() string {
	if addr := os.Getenv("DEPOT_ADDRESS"); addr != "" {
		return addr
	}
	return constants.DefaultDepotAddress
}

func (s *RoutesService) loadTrips(ctx context.Context, table string) ([]Trip, error) {
	rows, err := s.repo.ScanTable(ctx, table)
	if err != nil {
		return nil, &ReportError{Code: constants.ErrCodeStorageFailure, Message: constants.GetErrorMessage(constants.ErrCodeStorageFailure), Err: err}
	}
	trips, skipped := TripsFromRows(rows)
	if s.metricsReg != nil {
		s.metricsReg.RowsSkippedTotal.WithLabelValues(table).Add(float64(skipped))
	}
	return trips, nil
}

// GetDriverRoutes groups the day's trips into one route sheet per driver,
// trips ordered by task sequence, with van and contractor attribution. The
// driver filter is a case-insensitive substring match.
func (s *RoutesService) GetDriverRoutes(ctx context.Context, date, driver string) ([]dtos.DriverRoute, error) {
	directory, err := FetchDirectory(ctx, s.repo)
	if err != nil {
		return nil, &ReportError{Code: constants.ErrCodeStorageFailure, Message: constants.GetErrorMessage(constants.ErrCodeStorageFailure), Err: err}
	}

	var trips []Trip
	var assignments map[string]string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		trips, err = s.loadTrips(gctx, constants.TableTomorrowTrips)
		return err
	})
	g.Go(func() error {
		var err error
		assignments, err = s.correlator.VanAssignments(gctx, date)
		if err != nil {
			return &ReportError{Code: constants.ErrCodeStorageFailure, Message: constants.GetErrorMessage(constants.ErrCodeStorageFailure), Err: err}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	vanByDriver := make(map[string]string)
	for van, driver := range assignments {
		vanByDriver[common.CollapseName(driver)] = van
	}

	byDriver := make(map[string]*dtos.DriverRoute)
	var order []string
	driverFilter := strings.ToLower(strings.TrimSpace(driver))
	for _, t := range trips {
		if t.Driver == "" || (date != "" && t.Date != date) {
			continue
		}
		if driverFilter != "" && !strings.Contains(strings.ToLower(t.Driver), driverFilter) {
			continue
		}

		route, ok := byDriver[t.Driver]
		if !ok {
			contractor := directory[t.Driver]
			if contractor == "" {
				contractor = "Unknown"
			}
			route = &dtos.DriverRoute{
				Driver:     t.Driver,
				Contractor: contractor,
				Van:        vanByDriver[common.CollapseName(t.Driver)],
				Date:       t.Date,
			}
			byDriver[t.Driver] = route
			order = append(order, t.Driver)
		}

		route.Trips = append(route.Trips, dtos.RouteTrip{
			OrderNumber: t.OrderNumber,
			Status:      t.Status,
			StartTime:   t.StartTime,
			EndTime:     t.EndTime,
			Postcode:    t.Postcode,
			Notes:       t.Notes,
			Sequence:    t.Sequence,
		})
	}

	sort.Strings(order)
	routes := make([]dtos.DriverRoute, 0, len(order))
	for _, driver := range order {
		route := byDriver[driver]
		sort.SliceStable(route.Trips, func(i, j int) bool {
			return route.Trips[i].Sequence < route.Trips[j].Sequence
		})
		routes = append(routes, *route)
	}
	return routes, nil
}

// GetStartTimes reconciles depot presence per van for a date and pairs it
// with the scheduled start and the loading-dock time, which leads the
// scheduled start by a fixed margin.
func (s *RoutesService) GetStartTimes(ctx context.Context, date string) ([]dtos.VanStartTime, error) {
	var scheduled []Trip
	var assignments map[string]string
	var history []HistoryRow

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		scheduled, err = s.loadTrips(gctx, constants.TableScheduleTrips)
		return err
	})
	g.Go(func() error {
		var err error
		assignments, err = s.correlator.VanAssignments(gctx, date)
		if err != nil {
			return &ReportError{Code: constants.ErrCodeStorageFailure, Message: constants.GetErrorMessage(constants.ErrCodeStorageFailure), Err: err}
		}
		return nil
	})
	g.Go(func() error {
		rows, err := s.repo.ScanTable(gctx, constants.TableCsvTrips)
		if err != nil {
			return &ReportError{Code: constants.ErrCodeStorageFailure, Message: constants.GetErrorMessage(constants.ErrCodeStorageFailure), Err: err}
		}
		history = HistoryFromRows(rows, date)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	visits := DepotVisits(history, depotAddress())

	scheduledStart := make(map[string]string)
	for _, t := range scheduled {
		if date != "" && t.Date != date {
			continue
		}
		key := common.CollapseName(t.Driver)
		if existing, ok := scheduledStart[key]; !ok || t.StartTime < existing {
			scheduledStart[key] = t.StartTime
		}
	}

	vans := make([]string, 0, len(assignments))
	for van := range assignments {
		vans = append(vans, van)
	}
	sort.Strings(vans)

	out := make([]dtos.VanStartTime, 0, len(vans))
	for _, van := range vans {
		driver := assignments[van]
		visit := visits[van]

		entry := dtos.VanStartTime{
			Van:          van,
			Driver:       driver,
			FirstMention: visit.First(),
			LastMention:  visit.Last(),
			Duration:     visit.Duration(),
		}

		if start, ok := scheduledStart[common.CollapseName(driver)]; ok && start != "" {
			entry.ScheduledStart = start
			if minutes, ok := etl.TimeToMinutes(start); ok {
				entry.LoadTime = etl.FormatMinutesOfDay(minutes - constants.LoadTimeLeadMinutes)
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

// GetOrderArrival locates the movement-log row matching one order's
// completion. Returns a not-found report error when the order is missing its
// completion time or when both matching passes come up empty.
func (s *RoutesService) GetOrderArrival(ctx context.Context, orderNumber, date string) (*dtos.OrderArrival, error) {
	trips, err := s.loadTrips(ctx, constants.TableTomorrowTrips)
	if err != nil {
		return nil, err
	}

	var trip *Trip
	for i := range trips {
		if trips[i].OrderNumber == orderNumber && (date == "" || trips[i].Date == date) {
			trip = &trips[i]
			break
		}
	}
	if trip == nil || trip.Completion == "" {
		return nil, &ReportError{Code: constants.ErrCodeNoMatch, Message: constants.GetErrorMessage(constants.ErrCodeNoMatch)}
	}
	completion, ok := etl.TimeToMinutes(trip.Completion)
	if !ok {
		return nil, &ReportError{Code: constants.ErrCodeNoMatch, Message: constants.GetErrorMessage(constants.ErrCodeNoMatch)}
	}

	assignments, err := s.correlator.VanAssignments(ctx, trip.Date)
	if err != nil {
		return nil, &ReportError{Code: constants.ErrCodeStorageFailure, Message: constants.GetErrorMessage(constants.ErrCodeStorageFailure), Err: err}
	}
	rows, err := s.repo.ScanTable(ctx, constants.TableCsvTrips)
	if err != nil {
		return nil, &ReportError{Code: constants.ErrCodeStorageFailure, Message: constants.GetErrorMessage(constants.ErrCodeStorageFailure), Err: err}
	}
	history := HistoryFromRows(rows, trip.Date)

	match := MatchArrival(history, completion, trip.Driver, assignments)
	if match == nil {
		return nil, &ReportError{Code: constants.ErrCodeNoMatch, Message: constants.GetErrorMessage(constants.ErrCodeNoMatch)}
	}

	return &dtos.OrderArrival{
		OrderNumber:  trip.OrderNumber,
		Driver:       trip.Driver,
		Van:          match.Row.Van,
		Date:         trip.Date,
		Completion:   trip.Completion,
		MatchedEnd:   etl.FormatMinutesOfDay(match.Row.EndMinutes),
		DeltaMinutes: match.Delta,
		Pass:         match.Pass,
	}, nil
}
