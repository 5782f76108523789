package entities

type ApiKey struct {
	Key      string `db:"key"`
	Role     string `db:"role"`
	IsActive bool   `db:"is_active"`
}
