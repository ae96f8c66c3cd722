package backend

import (
	"fmt"
	"net/url"
	"strings"
)

// Param is a single query-string parameter. Values are stringified on the
// wire; nil and empty-string values are dropped entirely.
type Param struct {
	Key   string
	Value any
}

// buildQuery renders an ordered parameter list as "?k=v&k2=v2", preserving
// insertion order. Parameters whose value is nil or "" are omitted. When
// nothing remains the result is the empty string, not a bare "?".
func buildQuery(params []Param) string {
	var b strings.Builder
	for _, p := range params {
		if p.Value == nil {
			continue
		}
		v := fmt.Sprintf("%v", p.Value)
		if v == "" {
			continue
		}
		if b.Len() == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(v))
	}
	return b.String()
}
