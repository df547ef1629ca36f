// Package revel assigns REVEL missense pathogenicity scores to variant
// records, either by streaming the REVEL CSV or from a DuckDB index of it.
package revel

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/inodb/vibe-acmg/internal/fileio"
	"github.com/inodb/vibe-acmg/internal/variant"
)

// REVEL CSV column names. Positions are GRCh37.
const (
	ColChrom       = "chr"
	ColHg19Pos     = "hg19_pos"
	ColRef         = "ref"
	ColAlt         = "alt"
	ColScore       = "REVEL"
	ColTranscripts = "Ensembl_transcriptid"
)

// Patch streams the REVEL CSV at path and sets REVEL on records whose
// transcript is listed for the matching variant. It returns the number of
// records scored.
func Patch(path string, store *variant.Store) (int, error) {
	r, err := fileio.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open revel: %w", err)
	}
	defer r.Close()
	return PatchFrom(r, store)
}

// PatchFrom is Patch over an open reader.
func PatchFrom(r *fileio.Reader, store *variant.Store) (int, error) {
	line, err := r.ReadLine()
	if err == io.EOF {
		return 0, r.Errorf("no header line found")
	}
	if err != nil {
		return 0, err
	}
	cols := fileio.NewColumns(strings.Split(line, ","))
	if err := cols.Require(ColChrom, ColHg19Pos, ColRef, ColAlt, ColScore, ColTranscripts); err != nil {
		return 0, r.Errorf("%v", err)
	}

	scored := 0
	for {
		line, err := r.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return scored, fmt.Errorf("reading revel: %w", err)
		}
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		pos := cols.Field(fields, ColHg19Pos)
		if pos == "." || pos == "" {
			continue // no GRCh37 coordinate
		}
		id := cols.Field(fields, ColChrom) + "-" + pos + "-" + cols.Field(fields, ColRef) + "-" + cols.Field(fields, ColAlt)
		records := store.Transcripts(id)
		if len(records) == 0 {
			continue
		}
		score, err := strconv.ParseFloat(cols.Field(fields, ColScore), 64)
		if err != nil {
			return scored, r.Errorf("invalid REVEL score %q", cols.Field(fields, ColScore))
		}
		scored += Assign(records, cols.Field(fields, ColTranscripts), score)
	}
	return scored, nil
}

// Assign sets score on each record whose transcript id appears in the
// ";"-joined transcripts list. Version suffixes on record ids are ignored.
func Assign(records []*variant.Record, transcripts string, score float64) int {
	n := 0
	for _, rec := range records {
		tx := rec.TranscriptID
		if i := strings.IndexByte(tx, '.'); i > 0 {
			tx = tx[:i]
		}
		if tx == "" || tx == "-" || !strings.Contains(transcripts, tx) {
			continue
		}
		s := score
		rec.REVEL = &s
		n++
	}
	return n
}
