package entities

import (
	"encoding/json"
	"time"
)

// Row is one stored blob-store record: an opaque JSON payload keyed by id and
// creation time. The payload schema is owned by whichever export produced it,
// never by the store.
type Row struct {
	ID        string    `db:"id" json:"id"`
	Payload   []byte    `db:"payload" json:"payload"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Decode parses the payload. A malformed payload returns an error; callers
// skip the row and continue rather than failing the scan.
func (r *Row) Decode() (map[string]interface{}, error) {
	var rec map[string]interface{}
	if err := json.Unmarshal(r.Payload, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}
