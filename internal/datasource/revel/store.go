package revel

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/inodb/vibe-acmg/internal/variant"
)

// Store is a DuckDB index of the REVEL CSV.
type Store struct {
	db *sql.DB
}

// Open opens or creates a DuckDB database at path. An empty path opens an
// in-memory database.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

func (s *Store) ensureSchema() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS revel (
		chrom VARCHAR,
		pos BIGINT,
		ref VARCHAR,
		alt VARCHAR,
		score DOUBLE,
		transcripts VARCHAR
	)`); err != nil {
		return err
	}
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS revel_source (
		path VARCHAR,
		size BIGINT,
		mod_time BIGINT
	)`); err != nil {
		return err
	}
	// Index for fast point lookups
	if _, err := s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_revel_lookup ON revel (chrom, pos, ref, alt)`); err != nil {
		return fmt.Errorf("create revel index: %w", err)
	}
	return nil
}

// Count returns the number of indexed REVEL rows.
func (s *Store) Count() (int64, error) {
	var count int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM revel").Scan(&count); err != nil {
		return 0, fmt.Errorf("count revel rows: %w", err)
	}
	return count, nil
}

// Loaded returns true if the REVEL table has data.
func (s *Store) Loaded() bool {
	n, err := s.Count()
	return err == nil && n > 0
}

// Current reports whether the index was built from csvPath as it is on disk now.
func (s *Store) Current(csvPath string) bool {
	fp, err := statFile(csvPath)
	if err != nil {
		return false
	}
	var size, modTime int64
	err = s.db.QueryRow("SELECT size, mod_time FROM revel_source WHERE path = ?", fp.Path).Scan(&size, &modTime)
	return err == nil && size == fp.Size && modTime == fp.ModTime
}

// Load bulk-loads the REVEL CSV (plain or gzipped) using DuckDB's read_csv,
// replacing any earlier contents.
//
//	chr,hg19_pos,grch38_pos,ref,alt,aaref,aaalt,REVEL,Ensembl_transcriptid
func (s *Store) Load(csvPath string) error {
	fp, err := statFile(csvPath)
	if err != nil {
		return fmt.Errorf("stat revel csv: %w", err)
	}

	// Clear any existing data first (idempotent reload)
	if _, err := s.db.Exec(`DELETE FROM revel`); err != nil {
		return fmt.Errorf("clear revel: %w", err)
	}
	if _, err := s.db.Exec(`DELETE FROM revel_source`); err != nil {
		return fmt.Errorf("clear revel source: %w", err)
	}

	query := fmt.Sprintf(`INSERT INTO revel
		SELECT "chr", TRY_CAST("hg19_pos" AS BIGINT), "ref", "alt",
			TRY_CAST("REVEL" AS DOUBLE), "Ensembl_transcriptid"
		FROM read_csv('%s', delim=',', header=true, all_varchar=true)
		WHERE "hg19_pos" <> '.' AND TRY_CAST("REVEL" AS DOUBLE) IS NOT NULL`, strings.ReplaceAll(csvPath, "'", "''"))

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("loading REVEL data: %w", err)
	}
	if _, err := s.db.Exec(`INSERT INTO revel_source VALUES (?, ?, ?)`, fp.Path, fp.Size, fp.ModTime); err != nil {
		return fmt.Errorf("record revel source: %w", err)
	}
	return nil
}

// Patch scores every record in store from the index using a temporary
// table join. It returns the number of records scored.
func (s *Store) Patch(store *variant.Store) (int, error) {
	ids := store.VariantIDs()
	if len(ids) == 0 {
		return 0, nil
	}

	// Temporary tables are connection-scoped, so pin one connection.
	ctx := context.Background()
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return 0, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, `CREATE TEMPORARY TABLE IF NOT EXISTS batch_keys (
		chrom VARCHAR, pos BIGINT, ref VARCHAR, alt VARCHAR
	)`); err != nil {
		return 0, fmt.Errorf("create temp table: %w", err)
	}
	defer conn.ExecContext(ctx, `DROP TABLE IF EXISTS batch_keys`)
	if _, err := conn.ExecContext(ctx, `DELETE FROM batch_keys`); err != nil {
		return 0, fmt.Errorf("clear batch keys: %w", err)
	}

	// Insert in chunks to avoid huge SQL statements.
	const chunkSize = 1000
	for i := 0; i < len(ids); i += chunkSize {
		end := min(i+chunkSize, len(ids))

		var sb strings.Builder
		var args []any
		sb.WriteString("INSERT INTO batch_keys VALUES ")
		for _, raw := range ids[i:end] {
			id, err := variant.ParseID(raw)
			if err != nil {
				continue
			}
			if len(args) > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString("(?,?,?,?)")
			args = append(args, id.Chrom, id.Pos, id.Ref, id.Alt)
		}
		if len(args) == 0 {
			continue
		}
		if _, err := conn.ExecContext(ctx, sb.String(), args...); err != nil {
			return 0, fmt.Errorf("insert batch keys: %w", err)
		}
	}

	rows, err := conn.QueryContext(ctx, `
		SELECT b.chrom, b.pos, b.ref, b.alt, r.score, r.transcripts
		FROM batch_keys b
		JOIN revel r ON r.chrom=b.chrom AND r.pos=b.pos AND r.ref=b.ref AND r.alt=b.alt
	`)
	if err != nil {
		return 0, fmt.Errorf("batch lookup query: %w", err)
	}
	defer rows.Close()

	scored := 0
	for rows.Next() {
		var id variant.ID
		var score float64
		var transcripts string
		if err := rows.Scan(&id.Chrom, &id.Pos, &id.Ref, &id.Alt, &score, &transcripts); err != nil {
			return scored, fmt.Errorf("scan batch result: %w", err)
		}
		scored += Assign(store.Transcripts(id.String()), transcripts, score)
	}
	if err := rows.Err(); err != nil {
		return scored, fmt.Errorf("batch lookup rows: %w", err)
	}
	return scored, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// fingerprint holds stat-based identity for a source file.
type fingerprint struct {
	Path    string
	Size    int64
	ModTime int64
}

func statFile(path string) (fingerprint, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fingerprint{}, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fingerprint{}, err
	}
	return fingerprint{Path: abs, Size: info.Size(), ModTime: info.ModTime().UnixNano()}, nil
}
