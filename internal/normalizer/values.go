package normalizer

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultNullValues are the cell values read as missing. The list matches the
// tokens common spreadsheet and dataframe exports write for empty cells.
var DefaultNullValues = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
}

var errNotANumber = errors.New("not a real number")

// NullSet tests cell values against a configured list of null tokens.
type NullSet map[string]struct{}

// NewNullSet builds a NullSet. Tokens are compared after trimming whitespace.
func NewNullSet(tokens []string) NullSet {
	set := make(NullSet, len(tokens)+1)
	set[""] = struct{}{}
	for _, tok := range tokens {
		set[strings.TrimSpace(tok)] = struct{}{}
	}
	return set
}

// IsNull reports whether value is one of the null tokens.
func (s NullSet) IsNull(value string) bool {
	_, ok := s[strings.TrimSpace(value)]
	return ok
}

// ParseAmount parses a signed real number. Surrounding whitespace, a leading
// '+' and comma thousands separators are accepted; anything else fails.
func ParseAmount(value string) (decimal.Decimal, error) {
	s := strings.TrimSpace(value)
	if rest, ok := strings.CutPrefix(s, "+"); ok {
		if strings.HasPrefix(rest, "+") || strings.HasPrefix(rest, "-") {
			return decimal.Zero, errNotANumber
		}
		s = rest
	}
	if strings.Contains(s, ",") {
		if !validThousands(s) {
			return decimal.Zero, errNotANumber
		}
		s = strings.ReplaceAll(s, ",", "")
	}
	if s == "" {
		return decimal.Zero, errNotANumber
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errNotANumber
	}
	return d, nil
}

// validThousands checks that commas group the integer part by three digits.
func validThousands(s string) bool {
	s = strings.TrimPrefix(s, "-")
	intPart := s
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart = s[:i]
		if strings.Contains(s[i:], ",") {
			return false
		}
	}
	groups := strings.Split(intPart, ",")
	if len(groups[0]) == 0 || len(groups[0]) > 3 {
		return false
	}
	for _, g := range groups[1:] {
		if len(g) != 3 {
			return false
		}
	}
	return true
}
