package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// SeedFixtures populates the database with a small demo class.
// Sequences are advanced to match so freshly minted codes continue after the fixtures.
func SeedFixtures(database *sql.DB) error {
	now := time.Now().Format(time.RFC3339)

	students := []struct{ code, name, email, course, abbrev string }{
		{"GES1", "Ana Souza", "ana.souza@example.com", "Engenharia de Software - GES", "GES"},
		{"CIE1", "Bruno Lima", "bruno.lima@example.com", "Ciência da Computação", "CIE"},
		{"ADS1", "Carla Dias", "carla.dias@example.com", "ADS", "ADS"},
		{"GES2", "Diego Rocha", "diego.rocha@example.com", "Engenharia de Software - GES", "GES"},
	}

	tx, err := database.Begin()
	if err != nil {
		return fmt.Errorf("seed students: %w", err)
	}
	defer tx.Rollback()

	for _, s := range students {
		if _, err := tx.Exec(
			"INSERT INTO students (code, name, email, email_key, course, abbreviation, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			s.code, s.name, s.email, strings.ToLower(s.email), s.course, s.abbrev, now, now,
		); err != nil {
			return fmt.Errorf("seed students: %w", err)
		}
	}

	sequences := map[string]int{"GES": 2, "CIE": 1, "ADS": 1}
	for abbrev, last := range sequences {
		if _, err := tx.Exec(
			`INSERT INTO sequences (abbreviation, last_issued) VALUES (?, ?)
			 ON CONFLICT(abbreviation) DO UPDATE SET last_issued = MAX(last_issued, excluded.last_issued)`,
			abbrev, last,
		); err != nil {
			return fmt.Errorf("seed sequences: %w", err)
		}
	}

	return tx.Commit()
}
