// Package sqlparams rewrites SQL placeholder conventions into the single
// named-parameter form (:name) the execution layer binds against.
//
// The rewrite is plain text substitution. It does not understand string
// literals, comments or quoting, so a literal ? or @foo inside a quoted SQL
// string will be rewritten too.
package sqlparams

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var ErrInsufficientParams = errors.New("not enough positional parameters")

var atPattern = regexp.MustCompile(`@(\w+)`)

// Normalize rewrites @ident placeholders to :ident and positional ?
// markers to minted :param_0, :param_1, ... names bound left to right from
// positional. It returns the rewritten query and the combined bindings.
// Fewer positional values than ? markers is an error.
func Normalize(query string, named map[string]any, positional []any) (string, map[string]any, error) {
	params := make(map[string]any, len(named))
	for k, v := range named {
		params[k] = v
	}

	normalized := atPattern.ReplaceAllString(query, ":$1")

	marks := strings.Count(normalized, "?")
	if marks > 0 {
		if len(positional) < marks {
			return "", nil, fmt.Errorf("%w: expected %d, got %d", ErrInsufficientParams, marks, len(positional))
		}

		for i := 0; i < marks; i++ {
			name := fmt.Sprintf("param_%d", i)
			normalized = strings.Replace(normalized, "?", ":"+name, 1)
			params[name] = positional[i]
		}
	}

	return normalized, params, nil
}
