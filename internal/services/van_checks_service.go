package services

import (
	"context"
	"sort"

	"arkfleet/opsboard/internal/constants"
	"arkfleet/opsboard/internal/db/repositories"
	"arkfleet/opsboard/internal/etl"
	"arkfleet/opsboard/internal/models/dtos"
)

// Van-check form fields the morning checklist is expected to contain.
var (
	aliasMileage = []string{"Mileage", "Odometer", "Current_Mileage"}
	aliasFuel    = []string{"Fuel", "Fuel_Level", "Fuel Level"}
	aliasOil     = []string{"Oil", "Oil_Level", "Oil Level"}
)

// VanChecksService reads the morning checklist submissions and flags the
// fields a driver skipped.
type VanChecksService struct {
	repo       *repositories.BlobRepository
	correlator *CorrelatorService
}

func NewVanChecksService(repo *repositories.BlobRepository, correlator *CorrelatorService) *VanChecksService {
	return &VanChecksService{repo: repo, correlator: correlator}
}

// GetVanChecks lists the day's checklist submissions, one entry per record,
// with missing fields called out. A check without a driver name is attributed
// through the day's van assignments when possible.
func (s *VanChecksService) GetVanChecks(ctx context.Context, date string) ([]dtos.VanCheckEntry, error) {
	rows, err := s.repo.ScanTable(ctx, constants.TableVanChecks)
	if err != nil {
		return nil, &ReportError{Code: constants.ErrCodeStorageFailure, Message: constants.GetErrorMessage(constants.ErrCodeStorageFailure), Err: err}
	}

	assignments, err := s.correlator.VanAssignments(ctx, date)
	if err != nil {
		return nil, &ReportError{Code: constants.ErrCodeStorageFailure, Message: constants.GetErrorMessage(constants.ErrCodeStorageFailure), Err: err}
	}

	var checks []dtos.VanCheckEntry
	for i := range rows {
		rec, err := rows[i].Decode()
		if err != nil {
			continue
		}

		var entry dtos.VanCheckEntry
		if raw, ok := etl.ResolveString(rec, constants.AliasDate...); ok {
			entry.Date, _ = etl.NormalizeDate(raw)
		}
		if date != "" && entry.Date != date {
			continue
		}

		vanRaw, _ := etl.ResolveString(rec, append(constants.AliasVan, constants.AliasAsset...)...)
		entry.Van = etl.ExtractVanID(vanRaw)
		entry.Driver, _ = etl.ResolveString(rec, constants.AliasDriver...)
		if entry.Driver == "" && entry.Van != "" {
			entry.Driver = assignments[entry.Van]
		}

		var ok bool
		if entry.Mileage, ok = etl.ResolveString(rec, aliasMileage...); !ok || entry.Mileage == "" {
			entry.Missing = append(entry.Missing, "mileage")
		}
		if entry.Fuel, ok = etl.ResolveString(rec, aliasFuel...); !ok || entry.Fuel == "" {
			entry.Missing = append(entry.Missing, "fuel")
		}
		if entry.Oil, ok = etl.ResolveString(rec, aliasOil...); !ok || entry.Oil == "" {
			entry.Missing = append(entry.Missing, "oil")
		}

		checks = append(checks, entry)
	}

	sort.SliceStable(checks, func(i, j int) bool {
		return checks[i].Van < checks[j].Van
	})
	return checks, nil
}
