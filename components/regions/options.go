package regions

import "net/http"

type EmptySearchMode string

const (
	EmptySearchNone EmptySearchMode = "none"
	EmptySearchTop  EmptySearchMode = "top"
)

type GuardFunc func(r *http.Request) error

// Options configures the regions handler.
type Options struct {
	RoutePath       string
	SearchParam     string
	LimitParam      string
	SetParam        string
	CodeParam       string
	DefaultSet      Set
	DefaultLimit    int
	MaxLimit        int
	EmptySearchMode EmptySearchMode
	Guard           GuardFunc

	// Regions overrides the embedded lists per set.
	Regions map[Set][]Region
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:       "/api/regions",
		SearchParam:     "q",
		LimitParam:      "limit",
		SetParam:        "set",
		CodeParam:       "codes",
		DefaultSet:      Countries,
		DefaultLimit:    50,
		MaxLimit:        300,
		EmptySearchMode: EmptySearchTop,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	defaults := DefaultOptions()
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = defaults.DefaultLimit
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = defaults.MaxLimit
	}
	if opts.EmptySearchMode == "" {
		opts.EmptySearchMode = defaults.EmptySearchMode
	}
	if opts.RoutePath == "" {
		opts.RoutePath = defaults.RoutePath
	}
	if opts.SearchParam == "" {
		opts.SearchParam = defaults.SearchParam
	}
	if opts.LimitParam == "" {
		opts.LimitParam = defaults.LimitParam
	}
	if opts.SetParam == "" {
		opts.SetParam = defaults.SetParam
	}
	if opts.CodeParam == "" {
		opts.CodeParam = defaults.CodeParam
	}
	if opts.DefaultSet == "" {
		opts.DefaultSet = defaults.DefaultSet
	}
	if opts.Regions != nil {
		copied := make(map[Set][]Region, len(opts.Regions))
		for set, regions := range opts.Regions {
			copied[set] = append([]Region{}, regions...)
		}
		opts.Regions = copied
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithSearchParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SearchParam = name
	}
}

func WithLimitParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.LimitParam = name
	}
}

func WithSetParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SetParam = name
	}
}

func WithDefaultSet(set Set) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DefaultSet = set
	}
}

func WithDefaultLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DefaultLimit = limit
	}
}

func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxLimit = limit
	}
}

func WithEmptySearchMode(mode EmptySearchMode) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.EmptySearchMode = mode
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

// WithRegions replaces the list served for set.
func WithRegions(set Set, regions []Region) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		if o.Regions == nil {
			o.Regions = map[Set][]Region{}
		}
		o.Regions[set] = append([]Region{}, regions...)
	}
}

func (o Options) regions(set Set) ([]Region, error) {
	if regions, ok := o.Regions[set]; ok {
		return regions, nil
	}
	return Default(set)
}

func clampLimit(limit int, opts Options) int {
	if limit < 0 {
		return 0
	}
	if limit == 0 {
		limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		return opts.MaxLimit
	}
	return limit
}
