// Package validate runs declared validation rules against coerced
// field values.
package validate

import (
	"fmt"
	"strings"

	"github.com/gnames/gnmodel/pkg/schema"
)

// Run executes the field's validators in declaration order against the
// coerced value. The doc argument exposes the full candidate document,
// enabling cross-field rules. The first failing validator wins; the
// result carries its message template rendered with {VALUE} and {PATH}
// substituted.
func Run(fd schema.FieldDefinition, value any, doc schema.Values) error {
	for _, v := range fd.Validators {
		if v.Valid == nil {
			continue
		}
		if !v.Valid(value, doc) {
			return &FailureError{
				Path:    fd.Name,
				Value:   value,
				Message: render(v.Message, fd.Name, value),
			}
		}
	}
	return nil
}

func render(tmpl, path string, value any) string {
	res := strings.ReplaceAll(tmpl, "{VALUE}", fmt.Sprint(value))
	res = strings.ReplaceAll(res, "{PATH}", path)
	return res
}
