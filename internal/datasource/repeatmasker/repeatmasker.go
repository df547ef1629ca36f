// Package repeatmasker indexes RepeatMasker repeat intervals per chromosome.
package repeatmasker

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/inodb/vibe-acmg/internal/fileio"
	"github.com/inodb/vibe-acmg/internal/variant"
)

// headerLines is the fixed RepeatMasker .out preamble.
const headerLines = 3

// Interval is a closed [Start, End] repeat region.
type Interval struct {
	Start int64
	End   int64
}

// Index answers floor queries over per-chromosome intervals sorted by start.
// Intervals are loaded once and never modified after build.
type Index struct {
	chroms map[string][]Interval
}

// NewIndex builds an index from unsorted intervals.
func NewIndex(intervals map[string][]Interval) *Index {
	x := &Index{chroms: make(map[string][]Interval, len(intervals))}
	for chrom, ivs := range intervals {
		sorted := append([]Interval(nil), ivs...)
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].Start < sorted[j].Start
		})
		x.chroms[chrom] = sorted
	}
	return x
}

// Floor returns the interval with the greatest start <= pos.
func (x *Index) Floor(chrom string, pos int64) (Interval, bool) {
	ivs := x.chroms[chrom]
	if len(ivs) == 0 {
		return Interval{}, false
	}
	// hi is the first index with start > pos.
	hi := sort.Search(len(ivs), func(i int) bool {
		return ivs[i].Start > pos
	})
	if hi == 0 {
		return Interval{}, false
	}
	return ivs[hi-1], true
}

// Contains reports whether pos lies inside the floor interval of pos.
func (x *Index) Contains(chrom string, pos int64) bool {
	iv, ok := x.Floor(chrom, pos)
	return ok && pos <= iv.End
}

// Len returns the number of intervals.
func (x *Index) Len() int {
	n := 0
	for _, ivs := range x.chroms {
		n += len(ivs)
	}
	return n
}

// Load reads a RepeatMasker .out file.
func Load(path string) (*Index, error) {
	r, err := fileio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open repeatmasker: %w", err)
	}
	defer r.Close()
	return Read(r)
}

// Read parses whitespace-delimited .out rows. The first three lines are
// header; the query sequence, begin and end are columns 5-7.
func Read(r *fileio.Reader) (*Index, error) {
	intervals := make(map[string][]Interval)
	for {
		line, err := r.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading repeatmasker: %w", err)
		}
		if r.Line() <= headerLines {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 7 {
			return nil, r.Errorf("expected at least 7 columns, found %d", len(fields))
		}
		start, err := strconv.ParseInt(fields[5], 10, 64)
		if err != nil {
			return nil, r.Errorf("invalid begin: %s", fields[5])
		}
		end, err := strconv.ParseInt(fields[6], 10, 64)
		if err != nil {
			return nil, r.Errorf("invalid end: %s", fields[6])
		}
		chrom := variant.NormalizeChrom(fields[4])
		intervals[chrom] = append(intervals[chrom], Interval{Start: start, End: end})
	}
	return NewIndex(intervals), nil
}
