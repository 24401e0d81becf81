package interfaces

// ListAssessmentOption is a functional option for filtering assessments in List
type ListAssessmentOption func(*listAssessmentConfig)

type listAssessmentConfig struct {
	catalogName *string
	limit       int
}

// WithCatalogName filters assessments by the catalog they were scored against
func WithCatalogName(name string) ListAssessmentOption {
	return func(c *listAssessmentConfig) {
		c.catalogName = &name
	}
}

// WithLimit caps the number of returned assessments. Zero or less means no limit.
func WithLimit(n int) ListAssessmentOption {
	return func(c *listAssessmentConfig) {
		c.limit = n
	}
}

// BuildListAssessmentConfig builds a listAssessmentConfig from options
func BuildListAssessmentConfig(opts ...ListAssessmentOption) *listAssessmentConfig {
	cfg := &listAssessmentConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// CatalogName returns the catalog filter value, or nil if not set
func (c *listAssessmentConfig) CatalogName() *string {
	return c.catalogName
}

// Limit returns the limit, zero when unlimited
func (c *listAssessmentConfig) Limit() int {
	return c.limit
}
