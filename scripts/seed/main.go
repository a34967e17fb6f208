package main

import (
	"context"
	"fmt"
	"os"

	"github.com/linesmerrill/prosecution-case-api/api/handlers"
	"github.com/linesmerrill/prosecution-case-api/config"
)

// Quick utility to load the demo data into the configured store
// Usage: STORE_DRIVER=sqlite SQLITE_PATH=prosecution.db go run ./scripts/seed
func main() {
	ctx := context.Background()
	a := handlers.App{}
	a.Config = *config.New()

	if err := a.Initialize(ctx); err != nil {
		fmt.Printf("Error opening store: %v\n", err)
		os.Exit(1)
	}
	defer a.Close(ctx)

	if err := a.Service.Seed(ctx); err != nil {
		fmt.Printf("Error seeding store: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Seeded the %s store\n", a.Config.StoreDriver)
}
