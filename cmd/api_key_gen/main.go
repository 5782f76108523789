package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"arkfleet/opsboard/internal/db"
	"arkfleet/opsboard/internal/db/repositories"

	"github.com/google/uuid"
)

func main() {
	label := flag.String("label", "", "who the key is for")
	role := flag.String("role", "VIEWER", "VIEWER, UPLOADER or ADMIN")
	flag.Parse()

	if err := db.InitPostgres(); err != nil {
		log.Fatalf("connect: %v", err)
	}

	key := uuid.NewString()
	repo := repositories.NewApiKeysRepo(db.DB)
	if err := repo.Insert(context.Background(), key, *label, *role); err != nil {
		log.Fatalf("insert api key: %v", err)
	}

	fmt.Println("New API Key:", key)
}
