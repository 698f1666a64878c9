package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
)

func main() {
	var databaseURI, migrationsPath, migrationsTable string
	var down bool

	_ = godotenv.Load()

	flag.StringVar(&databaseURI, "database-uri", os.Getenv("DATABASE_URI"), "postgres connection uri")
	flag.StringVar(&migrationsPath, "migrations-path", "./migrations", "path to migrations")
	flag.StringVar(&migrationsTable, "migrations-table", "schema_migrations", "name of migrations table")
	flag.BoolVar(&down, "down", false, "roll back every migration")
	flag.Parse()

	if databaseURI == "" {
		panic("database-uri is required")
	}

	m, err := migrate.New(
		"file://"+migrationsPath,
		withMigrationsTable(databaseURI, migrationsTable),
	)
	if err != nil {
		panic(err)
	}
	defer m.Close()

	if down {
		err = m.Down()
	} else {
		err = m.Up()
	}
	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			fmt.Println("no migrations to apply")

			return
		}

		panic(err)
	}

	fmt.Println("migrations applied")
}

func withMigrationsTable(uri, table string) string {
	sep := "?"
	if strings.Contains(uri, "?") {
		sep = "&"
	}

	return fmt.Sprintf("%s%sx-migrations-table=%s", uri, sep, table)
}
