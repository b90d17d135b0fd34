package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseSize parses a count such as "4096", "64k", "32M" or "1g". Suffixes are case
// insensitive and 1024-based.
func ParseSize(s string) (int64, error) {
	str := strings.TrimSpace(s)
	if str == "" {
		return 0, fmt.Errorf("invalid size %q", s)
	}

	scale := int64(1)
	switch str[len(str)-1] {
	case 'k', 'K':
		scale = 1 << 10
	case 'm', 'M':
		scale = 1 << 20
	case 'g', 'G':
		scale = 1 << 30
	}
	if scale != 1 {
		str = str[:len(str)-1]
	}

	n, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("invalid size %q: negative", s)
	}
	if n > (1<<63-1)/scale {
		return 0, fmt.Errorf("invalid size %q: overflows", s)
	}
	return n * scale, nil
}
