package feed

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/ncruces/go-strftime"
	"gopkg.in/yaml.v3"
)

type dateKind int

const (
	dateAbsent dateKind = iota
	dateNow
	dateInstant
	dateUnix
	dateRaw
	datePattern
	dateMalformed
)

// DateInput describes a point in time the way callers happen to have it.
// The zero value is an absent date and never resolves.
type DateInput struct {
	kind    dateKind
	instant time.Time
	unix    int64
	value   string
	pattern string
}

// Now resolves to the clock reading taken at normalization time.
func Now() DateInput {
	return DateInput{kind: dateNow}
}

// At wraps an instant that is already known.
func At(t time.Time) DateInput {
	return DateInput{kind: dateInstant, instant: t}
}

// Unix wraps epoch seconds.
func Unix(sec int64) DateInput {
	return DateInput{kind: dateUnix, unix: sec}
}

// Raw wraps a literal such as "now", "1700000000" or "2024-01-02 15:04:05".
func Raw(value string) DateInput {
	return DateInput{kind: dateRaw, value: value}
}

// Pattern wraps a date string together with the pattern it is written in.
// Patterns containing '%' are strftime patterns, anything else is a Go
// reference layout.
func Pattern(value, pattern string) DateInput {
	return DateInput{kind: datePattern, value: value, pattern: pattern}
}

func (d DateInput) IsZero() bool {
	return d.kind == dateAbsent
}

func (d DateInput) String() string {
	switch d.kind {
	case dateNow:
		return "now"
	case dateInstant:
		return d.instant.Format(time.RFC3339)
	case dateUnix:
		return strconv.FormatInt(d.unix, 10)
	case dateRaw:
		return d.value
	case datePattern:
		return fmt.Sprintf("%s (%s)", d.value, d.pattern)
	case dateMalformed:
		return "<malformed>"
	default:
		return ""
	}
}

// UnmarshalYAML accepts a scalar (literal or epoch), a two element sequence
// [value, pattern] or a {value, pattern} mapping. Any other shape decodes to
// an input that never resolves, so the problem surfaces during validation.
func (d *DateInput) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*d = DateInput{}
			return nil
		}
		*d = Raw(node.Value)
		return nil
	case yaml.SequenceNode:
		if len(node.Content) == 2 && node.Content[0].Kind == yaml.ScalarNode && node.Content[1].Kind == yaml.ScalarNode {
			*d = Pattern(node.Content[0].Value, node.Content[1].Value)
			return nil
		}
	case yaml.MappingNode:
		var pair struct {
			Value   string `yaml:"value"`
			Pattern string `yaml:"pattern"`
		}
		if err := node.Decode(&pair); err == nil && pair.Value != "" && pair.Pattern != "" {
			*d = Pattern(pair.Value, pair.Pattern)
			return nil
		}
	}

	*d = DateInput{kind: dateMalformed}
	return nil
}

// Normalizer resolves DateInput values into epoch seconds.
type Normalizer struct {
	Now      func() time.Time
	Location *time.Location // Zone used for inputs that carry no offset
}

func NewNormalizer() *Normalizer {
	return &Normalizer{
		Now:      time.Now,
		Location: time.UTC,
	}
}

// Normalize returns the epoch seconds for in. ok is false when the input is
// absent or cannot be parsed; it never returns an error.
func (n *Normalizer) Normalize(in DateInput) (sec int64, ok bool) {
	switch in.kind {
	case dateNow:
		return n.now().Unix(), true

	case dateInstant:
		if in.instant.IsZero() {
			return 0, false
		}
		return in.instant.Unix(), true

	case dateUnix:
		if in.unix == 0 {
			return 0, false
		}
		return in.unix, true

	case datePattern:
		if in.value == "" || in.pattern == "" {
			return 0, false
		}
		t, err := n.parsePattern(in.value, in.pattern)
		if err != nil {
			return 0, false
		}
		return t.Unix(), true

	case dateRaw:
		return n.normalizeRaw(in.value)
	}

	return 0, false
}

func (n *Normalizer) normalizeRaw(value string) (int64, bool) {
	value = strings.TrimSpace(value)
	if value == "" || value == "0" {
		return 0, false
	}

	if strings.EqualFold(value, "now") {
		return n.now().Unix(), true
	}

	if sec, err := strconv.ParseInt(value, 10, 64); err == nil {
		return sec, true
	}

	t, err := dateparse.ParseIn(value, n.location())
	if err != nil {
		return 0, false
	}
	return t.Unix(), true
}

func (n *Normalizer) parsePattern(value, pattern string) (time.Time, error) {
	layout := pattern
	if strings.Contains(pattern, "%") {
		var err error
		layout, err = strftime.Layout(pattern)
		if err != nil {
			return time.Time{}, fmt.Errorf("unsupported date pattern %q: %w", pattern, err)
		}
	}

	return time.ParseInLocation(layout, value, n.location())
}

func (n *Normalizer) now() time.Time {
	if n.Now == nil {
		return time.Now()
	}
	return n.Now()
}

func (n *Normalizer) location() *time.Location {
	if n.Location == nil {
		return time.UTC
	}
	return n.Location
}
