package constants

// Blob-store statements. The table name is interpolated by the repository
// after validation against KnownTables; row values are always bound.

const (
	ScanTableQuery = `
	SELECT id, payload, created_at FROM %s ORDER BY created_at ASC
	`

	GetRecordByIDQuery = `
	SELECT id, payload, created_at FROM %s WHERE id = $1
	`

	InsertRecordQuery = `
	INSERT INTO %s (id, payload, created_at) VALUES ($1, $2, NOW())
	ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload
	`

	UpdateRecordQuery = `
	UPDATE %s SET payload = $2 WHERE id = $1
	`

	DeleteRecordQuery = `
	DELETE FROM %s WHERE id = $1
	`

	// Only valid for tables whose rows carry the canonical Date key;
	// schedule ingestion stamps it on every row for exactly this reason.
	DeleteByDateQuery = `
	DELETE FROM %s WHERE payload ->> 'Date' = $1
	`

	GetAPIKeyStatus = `
	SELECT key, role, is_active FROM api_keys WHERE key = $1
	`

	InsertAPIKey = `
	INSERT INTO api_keys (key, label, role, is_active) VALUES ($1, $2, $3, true)
	`
)
