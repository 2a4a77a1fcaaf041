package domain

// WithProjection specifies which fields to include or exclude from query
// results.
func WithProjection(p any) FindOption {
	return func(fo *FindOptions) {
		fo.Projection = p
	}
}

// WithSkip sets the number of documents to skip in query results. An explicit
// skip is never replaced by the page of the option bag.
func WithSkip(s int64) FindOption {
	return func(fo *FindOptions) {
		fo.Skip = &s
	}
}

// WithLimit sets the maximum number of documents to return. An explicit limit
// is never replaced by the limit of the option bag.
func WithLimit(l int64) FindOption {
	return func(fo *FindOptions) {
		fo.Limit = &l
	}
}

// WithSort specifies the sort order for query results. Entries given here
// take precedence over the order of the option bag.
func WithSort(s Sort) FindOption {
	return func(fo *FindOptions) {
		fo.Sort = s
	}
}

// FindOption configures query behavior through the functional options pattern.
type FindOption func(*FindOptions)

// FindOptions contains parameters for customizing query execution. Nil
// pointers mean the value was not given.
type FindOptions struct {
	// Projection specifies which fields to include or exclude from results.
	Projection any
	// Skip specifies the number of documents to skip.
	Skip *int64
	// Limit specifies the maximum number of documents to return.
	Limit *int64
	// Sort specifies the sort order for results.
	Sort Sort
}

// NewFindOptions applies every option to a zero [FindOptions].
func NewFindOptions(opts ...FindOption) FindOptions {
	var fo FindOptions
	for _, opt := range opts {
		opt(&fo)
	}
	return fo
}
