package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"

	"arkfleet/opsboard/internal/constants"
	"arkfleet/opsboard/internal/db/repositories"
	"arkfleet/opsboard/internal/etl"
	"arkfleet/opsboard/internal/logging"
	"arkfleet/opsboard/internal/metrics"
	"arkfleet/opsboard/internal/models/dtos"
	gormModels "arkfleet/opsboard/internal/models/gorm"

	"github.com/google/uuid"
)

// UploadFormat identifies which normalizer handles an uploaded file.
type UploadFormat string

const (
	FormatRoster      UploadFormat = "roster"
	FormatSchedule    UploadFormat = "schedule"
	FormatTripHistory UploadFormat = "trip_history"
	FormatEventStream UploadFormat = "event_stream"
	FormatTodayLive   UploadFormat = "today_live"
	FormatVanChecks   UploadFormat = "van_checks"
)

// formatRules map filename substrings to formats. Checked in order; the
// upstream systems name their exports consistently enough that substring
// matching has never misfired, but the order still matters ("trip history"
// must be tried before the generic "trip").
var formatRules = []struct {
	substr string
	format UploadFormat
}{
	{"roster", FormatRoster},
	{"driver", FormatRoster},
	{"history", FormatTripHistory},
	{"csv_trips", FormatTripHistory},
	{"schedule", FormatSchedule},
	{"event", FormatEventStream},
	{"check", FormatVanChecks},
	{"today", FormatTodayLive},
	{"live", FormatTodayLive},
	{"tomorrow", FormatTodayLive},
}

// formatTables binds each format to its target blob table.
var formatTables = map[UploadFormat]string{
	FormatRoster:      constants.TableDriversReport,
	FormatSchedule:    constants.TableScheduleTrips,
	FormatTripHistory: constants.TableCsvTrips,
	FormatEventStream: constants.TableEventStream,
	FormatTodayLive:   constants.TableTomorrowTrips,
	FormatVanChecks:   constants.TableVanChecks,
}

// naturalKeys lists, per format, the alias list whose resolved value makes a
// stable row id. Re-uploading the same export then upserts instead of
// duplicating. Formats without a reliable key fall back to a fresh UUID.
var naturalKeys = map[UploadFormat][]string{
	FormatRoster:    constants.AliasFullName,
	FormatSchedule:  constants.AliasOrderNo,
	FormatTodayLive: constants.AliasOrderNo,
}

// DetectFormat infers the upload format from the filename.
func DetectFormat(filename string) (UploadFormat, bool) {
	lower := strings.ToLower(filename)
	for _, rule := range formatRules {
		if strings.Contains(lower, rule.substr) {
			return rule.format, true
		}
	}
	return "", false
}

// IngestService turns uploaded export files into blob rows and keeps the
// audit trail of every run.
type IngestService struct {
	repo       *repositories.BlobRepository
	uploads    *repositories.UploadRepository
	metricsReg *metrics.MetricsRegistry
}

func NewIngestService(repo *repositories.BlobRepository, uploads *repositories.UploadRepository, metricsReg *metrics.MetricsRegistry) *IngestService {
	return &IngestService{repo: repo, uploads: uploads, metricsReg: metricsReg}
}

// Ingest detects the format from the filename, parses the body (CSV for trip
// history, JSON otherwise), and writes each record to the format's table.
// Rows that fail to parse are counted and skipped, never fatal for the run.
func (s *IngestService) Ingest(ctx context.Context, filename string, body []byte) (*dtos.IngestResult, error) {
	format, ok := DetectFormat(filename)
	if !ok {
		return nil, &ReportError{Code: constants.ErrCodeUnknownFormat, Message: constants.GetErrorMessage(constants.ErrCodeUnknownFormat)}
	}
	table := formatTables[format]

	var records []etl.Record
	var skipped int
	var err error
	if format == FormatTripHistory {
		records, skipped, err = parseCSV(body)
	} else {
		records, skipped, err = parseJSON(body)
	}
	if err != nil {
		return nil, &ReportError{Code: constants.ErrCodeMalformedUpload, Message: constants.GetErrorMessage(constants.ErrCodeMalformedUpload), Err: err}
	}

	result := &dtos.IngestResult{
		Filename:    filename,
		Format:      string(format),
		TargetTable: table,
		RowsSkipped: skipped,
	}

	for _, rec := range records {
		if format == FormatSchedule {
			stampCanonicalDate(rec)
		}
		id := rowID(format, rec)
		payload, err := json.Marshal(rec)
		if err != nil {
			result.RowsSkipped++
			continue
		}
		if err := s.repo.Insert(ctx, table, id, payload); err != nil {
			logging.Error("ingest insert failed", "table", table, "error", err)
			result.RowsSkipped++
			continue
		}
		result.RowsWritten++
	}

	if s.metricsReg != nil {
		s.metricsReg.IngestRowsTotal.WithLabelValues(table).Add(float64(result.RowsWritten))
		s.metricsReg.RowsSkippedTotal.WithLabelValues(table).Add(float64(result.RowsSkipped))
	}

	if s.uploads != nil {
		audit := &gormModels.Upload{
			Filename:    filename,
			Format:      string(format),
			TargetTable: table,
			RowsWritten: result.RowsWritten,
			RowsSkipped: result.RowsSkipped,
		}
		if err := s.uploads.Record(ctx, audit); err != nil {
			// Audit is best effort; the data is already committed.
			logging.Error("ingest audit write failed", "error", err)
		}
	}

	return result, nil
}

// RecentUploads lists the latest audit entries.
func (s *IngestService) RecentUploads(ctx context.Context, limit int) ([]gormModels.Upload, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	uploads, err := s.uploads.Recent(ctx, limit)
	if err != nil {
		return nil, &ReportError{Code: constants.ErrCodeStorageFailure, Message: constants.GetErrorMessage(constants.ErrCodeStorageFailure), Err: err}
	}
	return uploads, nil
}

// ReplaceSchedule swaps out every schedule row for one date in a single run:
// delete by canonical date, then insert the replacement records.
func (s *IngestService) ReplaceSchedule(ctx context.Context, date string, body []byte) (*dtos.IngestResult, error) {
	records, skipped, err := parseJSON(body)
	if err != nil {
		return nil, &ReportError{Code: constants.ErrCodeMalformedUpload, Message: constants.GetErrorMessage(constants.ErrCodeMalformedUpload), Err: err}
	}

	if err := s.repo.DeleteByDate(ctx, constants.TableScheduleTrips, date); err != nil {
		return nil, &ReportError{Code: constants.ErrCodeStorageFailure, Message: constants.GetErrorMessage(constants.ErrCodeStorageFailure), Err: err}
	}

	result := &dtos.IngestResult{
		Format:      string(FormatSchedule),
		TargetTable: constants.TableScheduleTrips,
		RowsSkipped: skipped,
	}
	for _, rec := range records {
		rec["Date"] = date
		id := rowID(FormatSchedule, rec)
		payload, err := json.Marshal(rec)
		if err != nil {
			result.RowsSkipped++
			continue
		}
		if err := s.repo.Insert(ctx, constants.TableScheduleTrips, id, payload); err != nil {
			logging.Error("schedule replace insert failed", "error", err)
			result.RowsSkipped++
			continue
		}
		result.RowsWritten++
	}
	return result, nil
}

// stampCanonicalDate writes the record's resolved, normalized date back
// under the canonical "Date" key. Schedule rows are later deleted by that
// key (replace-for-date), so the stored spelling must not depend on which
// export produced the upload.
func stampCanonicalDate(rec etl.Record) {
	raw, _ := etl.ResolveString(rec, constants.AliasDate...)
	if date, ok := etl.NormalizeDate(raw); ok {
		rec["Date"] = date
	}
}

// rowID picks the natural key for the record, or a UUID when the format has
// none or the record is missing it.
func rowID(format UploadFormat, rec etl.Record) string {
	if aliases, ok := naturalKeys[format]; ok {
		if key, ok := etl.ResolveString(rec, aliases...); ok && key != "" {
			return key
		}
	}
	return uuid.NewString()
}

// parseJSON accepts either a top-level array of objects or a single object.
// Array elements that are not objects count as skipped.
func parseJSON(body []byte) ([]etl.Record, int, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, 0, nil
	}

	if trimmed[0] == '[' {
		var raw []json.RawMessage
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, 0, err
		}
		var records []etl.Record
		skipped := 0
		for _, item := range raw {
			var rec etl.Record
			if err := json.Unmarshal(item, &rec); err != nil {
				skipped++
				continue
			}
			records = append(records, rec)
		}
		return records, skipped, nil
	}

	var rec etl.Record
	if err := json.Unmarshal(trimmed, &rec); err != nil {
		return nil, 0, err
	}
	return []etl.Record{rec}, 0, nil
}

// parseCSV turns a headered CSV export into records keyed by the verbatim
// header names. Short rows are padded with empty strings rather than skipped;
// rows the reader cannot parse at all are skipped.
func parseCSV(body []byte) ([]etl.Record, int, error) {
	reader := csv.NewReader(bytes.NewReader(body))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, 0, err
	}
	if len(rows) == 0 {
		return nil, 0, nil
	}

	header := rows[0]
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var records []etl.Record
	skipped := 0
	for _, row := range rows[1:] {
		if len(row) == 0 {
			skipped++
			continue
		}
		rec := make(etl.Record, len(header))
		for i, col := range header {
			if col == "" {
				continue
			}
			if i < len(row) {
				rec[col] = row[i]
			} else {
				rec[col] = ""
			}
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}
