package feed

import (
	"slices"
	"time"

	"golang.org/x/text/language"
)

type Validator struct {
	normalizer *Normalizer
}

func NewValidator(normalizer *Normalizer) *Validator {
	if normalizer == nil {
		normalizer = NewNormalizer()
	}
	return &Validator{normalizer: normalizer}
}

// Validate resolves every date in f, checks the required fields and returns
// a snapshot with items ordered newest first. Items sharing an instant keep
// the order they were added in. f itself is left untouched.
//
// The returned error, when non-nil, is always a ValidationErrors.
func (v *Validator) Validate(f *Feed) (*Validated, error) {
	if f == nil {
		return nil, ValidationErrors{feedError(InvalidShape, "feed")}
	}

	var errs ValidationErrors

	if f.Title == "" {
		errs = append(errs, feedError(MissingField, "title"))
	}
	if f.SiteURL == "" {
		errs = append(errs, feedError(MissingField, "siteUrl"))
	}

	updatedAt, ok := v.normalizer.Normalize(f.UpdatedAt)
	if !ok {
		errs = append(errs, feedError(InvalidDate, "updatedAt"))
	}

	var lang string
	if f.Language != "" {
		tag, err := language.Parse(f.Language)
		if err != nil {
			errs = append(errs, feedError(InvalidValue, "language"))
		} else {
			lang = tag.String()
		}
	}

	items := make([]ValidatedItem, 0, len(f.Items))
	for i, item := range f.Items {
		if item == nil {
			errs = append(errs, itemError(InvalidShape, "items", i))
			continue
		}

		if item.URL == "" {
			errs = append(errs, itemError(MissingField, "url", i))
		}
		if item.Title == "" {
			errs = append(errs, itemError(MissingField, "title", i))
		}

		sec, ok := v.normalizer.Normalize(item.UpdatedAt)
		if !ok {
			errs = append(errs, itemError(InvalidDate, "updatedAt", i))
		}

		items = append(items, ValidatedItem{Item: item, UpdatedAt: v.instant(sec)})
	}

	if len(errs) > 0 {
		return nil, errs
	}

	slices.SortStableFunc(items, func(a, b ValidatedItem) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})

	return &Validated{
		Feed:      f,
		UpdatedAt: v.instant(updatedAt),
		Language:  lang,
		Items:     items,
	}, nil
}

// IsValid reports whether Validate would succeed.
func (v *Validator) IsValid(f *Feed) bool {
	_, err := v.Validate(f)
	return err == nil
}

func (v *Validator) instant(sec int64) time.Time {
	return time.Unix(sec, 0).In(v.normalizer.location())
}
