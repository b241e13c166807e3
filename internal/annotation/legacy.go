package annotation

import (
	"fmt"
	"strings"
)

// DecodeLegacy reads the older text form of the dot list, a literal list
// of tuples such as "[(12, 40), (7, 9, 31.5, 270.0)]". Tuples become JSON
// arrays before decoding, so the same record rules apply as for Unmarshal.
func DecodeLegacy(text string) ([]Dot, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil, nil
	}
	r := strings.NewReplacer("(", "[", ")", "]", "L", "")
	s = r.Replace(s)
	s = strings.ReplaceAll(s, ",]", "]")
	s = strings.ReplaceAll(s, ", ]", "]")
	dots, err := Unmarshal([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("legacy list: %w", err)
	}
	return dots, nil
}
