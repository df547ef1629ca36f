package variant

// Key addresses a record by variant and transcript.
type Key struct {
	VariantID    string
	TranscriptID string
}

// Store holds records in ingestion order with a composite-key index.
// Records are never removed.
type Store struct {
	records   []*Record
	index     map[Key]int
	byVariant map[string][]int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		index:     make(map[Key]int),
		byVariant: make(map[string][]int),
	}
}

// Add inserts r. A record with the same key replaces the earlier one in place.
func (s *Store) Add(r *Record) {
	k := Key{VariantID: r.VariantID, TranscriptID: r.TranscriptID}
	if i, ok := s.index[k]; ok {
		s.records[i] = r
		return
	}
	s.index[k] = len(s.records)
	s.byVariant[r.VariantID] = append(s.byVariant[r.VariantID], len(s.records))
	s.records = append(s.records, r)
}

// Get returns the record for a variant/transcript pair.
func (s *Store) Get(variantID, transcriptID string) (*Record, bool) {
	i, ok := s.index[Key{VariantID: variantID, TranscriptID: transcriptID}]
	if !ok {
		return nil, false
	}
	return s.records[i], true
}

// Transcripts returns all records of a variant in ingestion order.
func (s *Store) Transcripts(variantID string) []*Record {
	idx := s.byVariant[variantID]
	if len(idx) == 0 {
		return nil
	}
	out := make([]*Record, len(idx))
	for i, j := range idx {
		out[i] = s.records[j]
	}
	return out
}

// HasVariant reports whether any transcript of variantID is stored.
func (s *Store) HasVariant(variantID string) bool {
	_, ok := s.byVariant[variantID]
	return ok
}

// VariantIDs returns the distinct variant ids in ingestion order.
func (s *Store) VariantIDs() []string {
	ids := make([]string, 0, len(s.byVariant))
	seen := make(map[string]bool, len(s.byVariant))
	for _, r := range s.records {
		if !seen[r.VariantID] {
			seen[r.VariantID] = true
			ids = append(ids, r.VariantID)
		}
	}
	return ids
}

// Records returns all records in ingestion order. The slice is shared.
func (s *Store) Records() []*Record {
	return s.records
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}
