// README: DB-backed store tests (skipped unless DT_TEST_DSN is set).
package metrics

import (
	"bufio"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Hasanakramprog/Drivertaxi-sub000/internal/types"
)

func TestPostgresInsertGetRoundtrip(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	snap := NewSnapshot("d_pg_roundtrip", now)
	snap.TripsRequested = 7
	snap.TripsAccepted = 5
	snap.Last24h.Accepted = 5
	snap.AcceptanceRate = 71.4

	if err := store.Insert(ctx, snap); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := store.Get(ctx, "d_pg_roundtrip")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.TripsRequested != 7 || got.TripsAccepted != 5 || got.Last24h.Accepted != 5 {
		t.Errorf("counters did not roundtrip: %+v", got)
	}
	if got.Tier != TierSilver || !got.InGracePeriod {
		t.Errorf("initial tier state did not roundtrip: %+v", got)
	}
	if got.Version != 0 {
		t.Errorf("fresh row version = %d, want 0", got.Version)
	}
	if !got.Last24h.WindowStart.Equal(now) {
		t.Errorf("window start = %v, want %v", got.Last24h.WindowStart, now)
	}
}

func TestPostgresGetMissing(t *testing.T) {
	store := setupTestStore(t)
	if _, err := store.Get(context.Background(), "d_pg_missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestPostgresDuplicateInsertConflicts(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if err := store.Insert(ctx, NewSnapshot("d_pg_dup", now)); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if err := store.Insert(ctx, NewSnapshot("d_pg_dup", now)); !errors.Is(err, ErrConflict) {
		t.Errorf("second insert: got %v, want ErrConflict", err)
	}
}

func TestPostgresUpdateCAS(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	id := types.ID("d_pg_cas")

	if err := store.Insert(ctx, NewSnapshot(id, now)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	snap, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	snap.TripsAccepted = 1
	snap.Tier = TierGold
	if err := store.UpdateCAS(ctx, snap, snap.Version); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if got.Version != 1 {
		t.Errorf("version = %d, want 1", got.Version)
	}
	if got.TripsAccepted != 1 || got.Tier != TierGold {
		t.Errorf("update not applied: %+v", got)
	}

	// A writer still holding version 0 must lose.
	snap.TripsAccepted = 99
	if err := store.UpdateCAS(ctx, snap, 0); !errors.Is(err, ErrConflict) {
		t.Errorf("stale update: got %v, want ErrConflict", err)
	}
	if got, _ = store.Get(ctx, id); got.TripsAccepted != 1 {
		t.Errorf("stale update leaked through: %+v", got)
	}
}

func setupTestStore(t *testing.T) *PostgresStore {
	t.Helper()

	dsn := os.Getenv("DT_TEST_DSN")
	if dsn == "" {
		t.Skip("DT_TEST_DSN not set; skipping DB-backed store tests")
	}

	ctx := context.Background()
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := applyMigration(ctx, db); err != nil {
		t.Fatalf("apply migration: %v", err)
	}

	if _, err := db.Exec(ctx, "TRUNCATE TABLE driver_metrics, drivers"); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}

	return NewPostgresStore(db)
}

func applyMigration(ctx context.Context, db *pgxpool.Pool) error {
	root, err := repoRoot()
	if err != nil {
		return err
	}
	content, err := os.ReadFile(filepath.Join(root, "migrations", "0001_init.sql"))
	if err != nil {
		return err
	}
	cleaned := stripSQLComments(string(content))
	for _, stmt := range splitSQL(cleaned) {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func repoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for i := 0; i < 6; i++ {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

func stripSQLComments(input string) string {
	var b strings.Builder
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		b.WriteString(scanner.Text())
		b.WriteString("\n")
	}
	return b.String()
}

func splitSQL(input string) []string {
	parts := strings.Split(input, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		stmt := strings.TrimSpace(p)
		if stmt == "" {
			continue
		}
		out = append(out, stmt)
	}
	return out
}
