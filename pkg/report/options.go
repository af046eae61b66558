package report

import "time"

const (
	defaultPageSize  = 10
	defaultSheetName = "FIRs"
	defaultXLSXFile  = "firs.xlsx"
	defaultPDFFile   = "firs_report.pdf"
	defaultPDFTitle  = "FIR Reports"
	defaultTimezone  = "Asia/Kolkata"
)

// Options configures listing and export.
type Options struct {
	PageSize  int
	SheetName string
	XLSXFile  string
	PDFFile   string
	PDFTitle  string
	// Location is used for timestamps in exports and the table.
	Location *time.Location
	// Now stamps the PDF "Generated on" line.
	Now func() time.Time
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		PageSize:  defaultPageSize,
		SheetName: defaultSheetName,
		XLSXFile:  defaultXLSXFile,
		PDFFile:   defaultPDFFile,
		PDFTitle:  defaultPDFTitle,
		Location:  loadLocation(defaultTimezone),
		Now:       time.Now,
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
	if opts.PageSize <= 0 {
		opts.PageSize = defaultPageSize
	}
	if opts.SheetName == "" {
		opts.SheetName = defaultSheetName
	}
	if opts.XLSXFile == "" {
		opts.XLSXFile = defaultXLSXFile
	}
	if opts.PDFFile == "" {
		opts.PDFFile = defaultPDFFile
	}
	if opts.PDFTitle == "" {
		opts.PDFTitle = defaultPDFTitle
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return opts
}

func WithPageSize(size int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.PageSize = size
	}
}

func WithLocation(loc *time.Location) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Location = loc
	}
}

func WithClock(now func() time.Time) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Now = now
	}
}

func WithFileNames(xlsx, pdf string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.XLSXFile = xlsx
		o.PDFFile = pdf
	}
}

// loadLocation falls back to a fixed IST offset when tzdata is unavailable.
func loadLocation(name string) *time.Location {
	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	return time.FixedZone("IST", 5*60*60+30*60)
}

// resolved fills unset fields with defaults.
func (o Options) resolved() Options {
	given := o
	return NewOptions(func(d *Options) { *d = mergeOptions(*d, given) })
}

// mergeOptions keeps caller-provided values over defaults.
func mergeOptions(defaults, given Options) Options {
	if given.PageSize > 0 {
		defaults.PageSize = given.PageSize
	}
	if given.SheetName != "" {
		defaults.SheetName = given.SheetName
	}
	if given.XLSXFile != "" {
		defaults.XLSXFile = given.XLSXFile
	}
	if given.PDFFile != "" {
		defaults.PDFFile = given.PDFFile
	}
	if given.PDFTitle != "" {
		defaults.PDFTitle = given.PDFTitle
	}
	if given.Location != nil {
		defaults.Location = given.Location
	}
	if given.Now != nil {
		defaults.Now = given.Now
	}
	return defaults
}
