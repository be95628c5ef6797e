package feed

import (
	"time"

	"go.uber.org/zap"
)

// Builder renders one feed descriptor as Atom and RSS. It validates on every
// render call, so items added between calls are picked up.
type Builder struct {
	feed      *Feed
	validator *Validator
	atom      *AtomGenerator
	rss       *RSSGenerator
	logger    *zap.Logger
}

type Option func(*builderOptions)

type builderOptions struct {
	now           func() time.Time
	location      *time.Location
	canonicalizer Canonicalizer
	logger        *zap.Logger
}

// WithClock replaces the clock used to resolve Now() and "now".
func WithClock(now func() time.Time) Option {
	return func(o *builderOptions) { o.now = now }
}

// WithLocation sets the zone dates are parsed and rendered in. Default UTC.
func WithLocation(loc *time.Location) Option {
	return func(o *builderOptions) { o.location = loc }
}

func WithCanonicalizer(c Canonicalizer) Option {
	return func(o *builderOptions) { o.canonicalizer = c }
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *builderOptions) { o.logger = logger }
}

// NewBuilder wraps f. A nil f starts from DefaultFeed().
func NewBuilder(f *Feed, opts ...Option) *Builder {
	o := builderOptions{
		now:      time.Now,
		location: time.UTC,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.canonicalizer == nil {
		o.canonicalizer = NewURLCanonicalizer("")
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if f == nil {
		f = DefaultFeed()
	}

	normalizer := &Normalizer{Now: o.now, Location: o.location}

	return &Builder{
		feed:      f,
		validator: NewValidator(normalizer),
		atom:      NewAtomGenerator(o.canonicalizer),
		rss:       NewRSSGenerator(o.canonicalizer),
		logger:    o.logger,
	}
}

// Feed exposes the descriptor for direct field updates.
func (b *Builder) Feed() *Feed {
	return b.feed
}

func (b *Builder) AddItem(item *Item) *Builder {
	b.feed.AddItem(item)
	return b
}

func (b *Builder) Validate() (*Validated, error) {
	return b.validator.Validate(b.feed)
}

func (b *Builder) IsValid() bool {
	return b.validator.IsValid(b.feed)
}

// Atom renders the feed as Atom 1.0. With strict set, validation errors are
// returned; otherwise an invalid feed yields an empty string and a nil error.
func (b *Builder) Atom(strict bool) (string, error) {
	return b.render("atom", strict, b.atom.Run)
}

// RSS renders the feed as RSS 2.0 with the same strict semantics as Atom.
func (b *Builder) RSS(strict bool) (string, error) {
	return b.render("rss", strict, b.rss.Run)
}

func (b *Builder) render(format string, strict bool, run func(*Validated) (string, error)) (string, error) {
	v, err := b.validator.Validate(b.feed)
	if err != nil {
		if strict {
			return "", err
		}
		b.logger.Debug("Skipping feed render",
			zap.String("format", format),
			zap.String("title", b.feed.Title),
			zap.Error(err))
		return "", nil
	}

	doc, err := run(v)
	if err != nil {
		return "", err
	}

	b.logger.Debug("Feed rendered",
		zap.String("format", format),
		zap.String("title", b.feed.Title),
		zap.Int("items", len(v.Items)),
		zap.Int("bytes", len(doc)))

	return doc, nil
}
