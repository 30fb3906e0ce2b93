package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/custodia-labs/sercha-hub/internal/core/domain"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

type validatorSvc struct {
	validate   *validator.Validate
	translator ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *validatorSvc
)

// getValidator returns the shared validator with English messages and json
// field names.
func getValidator() *validatorSvc {
	vOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("json")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		vSvc = &validatorSvc{validate: v, translator: trans}
	})
	return vSvc
}

// decodeJSON reads and validates a request body. Every failure is a
// validation SearchError.
func decodeJSON[T any](r *http.Request) (T, error) {
	var dst T
	defer r.Body.Close()

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&dst); err != nil {
		if errors.Is(err, io.EOF) {
			return dst, invalid(errors.New("empty body"))
		}
		return dst, invalid(fmt.Errorf("invalid JSON: %w", err))
	}
	if dec.More() {
		return dst, invalid(errors.New("unexpected trailing data"))
	}

	svc := getValidator()
	if err := svc.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return dst, invalid(errors.New(verrs[0].Translate(svc.translator)))
		}
		return dst, invalid(err)
	}
	return dst, nil
}

func invalid(err error) error {
	return domain.NewSearchError("decode request", domain.ErrInvalidInput, err)
}

// stringList accepts a JSON array of strings or a comma-separated string.
// Entries are trimmed and empties dropped.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = domain.SplitList(s)
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("expected a string or a list of strings")
	}
	*l = domain.CleanList(items)
	return nil
}

// bounds is a lenient [min, max] pair. Any shape other than a two-element
// array of integers, numeric strings or nulls is unconstrained.
type bounds struct {
	values []any
}

func (b *bounds) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	b.values, _ = v.([]any)
	return nil
}

func (b bounds) toRange() domain.Range {
	return domain.RangeFromValues(b.values)
}
