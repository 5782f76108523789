package db

import (
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

var DB *sqlx.DB

// InitPostgres connects the sqlx handle used by the blob-store repositories.
// Startup races the database container, so the connect is retried briefly.
func InitPostgres() error {

	host := os.Getenv("PG_HOST")
	port := os.Getenv("PG_PORT")
	user := os.Getenv("PG_USER")
	dbname := os.Getenv("PG_DB")
	password := os.Getenv("PG_PASSWORD")
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbname)

	var err error

	for i := 0; i < 10; i++ {
		DB, err = sqlx.Connect("postgres", dsn)
		if err == nil {
			// Full-table scans hold connections for a while; keep the pool modest.
			DB.SetMaxOpenConns(20)
			DB.SetMaxIdleConns(5)
			return nil
		}
		time.Sleep(500 * time.Millisecond)
	}
	return err

}
