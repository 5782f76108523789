package services

import (
	"context"
	"sort"

	"arkfleet/opsboard/internal/constants"
	"arkfleet/opsboard/internal/db/repositories"
	"arkfleet/opsboard/internal/metrics"
	"arkfleet/opsboard/internal/models/dtos"

	"golang.org/x/sync/errgroup"
)

// WorkingTimesService computes adjusted driver hours for payroll export.
type WorkingTimesService struct {
	repo       *repositories.BlobRepository
	metricsReg *metrics.MetricsRegistry
}

func NewWorkingTimesService(repo *repositories.BlobRepository, metricsReg *metrics.MetricsRegistry) *WorkingTimesService {
	return &WorkingTimesService{repo: repo, metricsReg: metricsReg}
}

func (s *WorkingTimesService) loadTrips(ctx context.Context, table string) ([]Trip, error) {
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

// GetWorkingTimes builds one row per driver per day in the range, with the
// punctuality-adjusted shift length in the legacy dot format, plus contractor
// rollups. For an overnight route the scheduled end is replaced by the
// driver's last completed task of the day when one exists.
func (s *WorkingTimesService) GetWorkingTimes(ctx context.Context, start, end string) (*dtos.WorkingTimesReport, error) {
	directory, err := FetchDirectory(ctx, s.repo)
	if err != nil {
		return nil, &ReportError{Code: constants.ErrCodeStorageFailure, Message: constants.GetErrorMessage(constants.ErrCodeStorageFailure), Err: err}
	}

	var scheduled, actual []Trip
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		scheduled, err = s.loadTrips(gctx, constants.TableScheduleTrips)
		return err
	})
	g.Go(func() error {
		var err error
		actual, err = s.loadTrips(gctx, constants.TableTomorrowTrips)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &dtos.WorkingTimesReport{Range: dtos.DateRange{Start: start, End: end}}

	seen := make(map[string]struct{})
	contractorMinutes := make(map[string]float64)
	contractorDrivers := make(map[string]map[string]struct{})
	var contractorOrder []string

	for _, t := range scheduled {
		if t.Driver == "" || !t.InDateRange(start, end) {
			continue
		}
		dayKey := t.Driver + "|" + t.Date
		if _, dup := seen[dayKey]; dup {
			continue
		}
		seen[dayKey] = struct{}{}

		shiftEnd := t.EndTime
		twoDay := t.IsTwoDayRoute()
		if twoDay {
			if override, ok := LastCompletedTaskEnd(actual, t.Driver, t.Date); ok {
				shiftEnd = override
			}
		}

		var punctuality float64
		if t.Arrival != "" {
			if p, ok := Punctuality(t.StartTime, t.Arrival); ok {
				punctuality = p
			}
		}

		minutes, ok := WorkingMinutes(t.StartTime, shiftEnd, punctuality)
		if !ok {
			continue
		}

		contractor := directory[t.Driver]
		if contractor == "" {
			contractor = "Unknown"
		}

		report.Drivers = append(report.Drivers, dtos.DriverWorkingTime{
			Driver:      t.Driver,
			Contractor:  contractor,
			Date:        t.Date,
			Start:       t.StartTime,
			End:         shiftEnd,
			Punctuality: punctuality,
			Hours:       FormatDotHours(minutes),
			TwoDayRoute: twoDay,
		})

		if _, ok := contractorDrivers[contractor]; !ok {
			contractorDrivers[contractor] = make(map[string]struct{})
			contractorOrder = append(contractorOrder, contractor)
		}
		contractorDrivers[contractor][t.Driver] = struct{}{}
		contractorMinutes[contractor] += minutes
	}

	sort.SliceStable(report.Drivers, func(i, j int) bool {
		if report.Drivers[i].Date != report.Drivers[j].Date {
			return report.Drivers[i].Date < report.Drivers[j].Date
		}
		return report.Drivers[i].Driver < report.Drivers[j].Driver
	})

	sort.Strings(contractorOrder)
	for _, contractor := range contractorOrder {
		total := int(contractorMinutes[contractor])
		report.Contractors = append(report.Contractors, dtos.ContractorHours{
			Contractor:   contractor,
			Drivers:      len(contractorDrivers[contractor]),
			TotalMinutes: total,
			Hours:        FormatDotHours(float64(total)),
		})
	}

	return report, nil
}
