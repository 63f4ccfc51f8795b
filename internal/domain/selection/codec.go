package selection

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseList parses a comma-joined id list such as "1,9,3" into its ids,
// preserving order and duplicates. A nil pointer or empty string yields an
// empty list. Returns an error if any element is not a positive integer.
func ParseList(s *string) ([]int64, error) {
	if s == nil || *s == "" {
		return nil, nil
	}

	parts := strings.Split(*s, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q in list: %w", part, err)
		}
		if id < 1 {
			return nil, fmt.Errorf("invalid id %d in list: ids must be positive", id)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// JoinList encodes ids as a comma-joined string, preserving order.
func JoinList(ids []int64) string {
	if len(ids) == 0 {
		return ""
	}

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
