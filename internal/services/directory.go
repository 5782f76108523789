package services

import (
	"context"
	"strings"

	"arkfleet/opsboard/internal/common"
	"arkfleet/opsboard/internal/constants"
	"arkfleet/opsboard/internal/db/repositories"
	"arkfleet/opsboard/internal/etl"
	"arkfleet/opsboard/internal/models/dtos"
	"arkfleet/opsboard/internal/models/entities"
)

// BuildDirectory maps trimmed driver full names to contractor names from the
// roster rows. Later rows overwrite earlier ones for the same trimmed name;
// a missing contractor attributes the driver to "Unknown". Rows without a
// usable name are skipped.
func BuildDirectory(rows []entities.Row) map[string]string {
	directory := make(map[string]string)

	for i := range rows {
		rec, err := rows[i].Decode()
		if err != nil {
			continue
		}

		name, _ := etl.ResolveString(rec, constants.AliasFullName...)
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		contractor, ok := etl.ResolveString(rec, constants.AliasContractor...)
		if !ok || contractor == "" {
			contractor = "Unknown"
		}
		directory[name] = contractor
	}

	return directory
}

// FetchDirectory scans the roster table and builds the directory. Rebuilt on
// every request on purpose: the roster is editable at any time and is small
// next to trip volume, so the scan is cheap and always current.
func FetchDirectory(ctx context.Context, repo *repositories.BlobRepository) (map[string]string, error) {
	rows, err := repo.ScanTable(ctx, constants.TableDriversReport)
	if err != nil {
		return nil, err
	}
	return BuildDirectory(rows), nil
}

// RosterAdvisories flags pairs of roster names that look like first/last
// reversals of each other ("Amy Poole" / "Poole Amy"). The pairs are
// surfaced as suggestions for an operator to confirm; two distinct people
// can legitimately share reversed tokens, so nothing is merged here.
func RosterAdvisories(directory map[string]string) []dtos.RosterAdvisory {
	collapsed := make(map[string]string, len(directory))
	for name := range directory {
		collapsed[common.CollapseName(name)] = name
	}

	var advisories []dtos.RosterAdvisory
	seen := make(map[string]struct{})

	for name, contractor := range directory {
		reversed := common.CollapseName(common.ReverseNameTokens(name))
		if reversed == common.CollapseName(name) {
			continue
		}
		other, ok := collapsed[reversed]
		if !ok || other == name {
			continue
		}

		pairKey := common.CollapseName(name) + "|" + reversed
		reverseKey := reversed + "|" + common.CollapseName(name)
		if _, dup := seen[pairKey]; dup {
			continue
		}
		if _, dup := seen[reverseKey]; dup {
			continue
		}
		seen[pairKey] = struct{}{}

		advisories = append(advisories, dtos.RosterAdvisory{
			NameA:      name,
			NameB:      other,
			Contractor: contractor,
		})
	}

	return advisories
}
