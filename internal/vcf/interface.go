package vcf

// SiteReader is implemented by readers that stream VCF sites.
type SiteReader interface {
	// Next reads the next site.
	// Returns nil, nil when there are no more sites.
	Next() (*Variant, error)

	// Close closes the reader and releases resources.
	Close() error
}

var _ SiteReader = (*Parser)(nil)
