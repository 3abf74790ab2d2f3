package repotree

import (
	"fmt"
	"strconv"
	"strings"
)

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB", "PB"}

// FormatSize renders a byte count with two decimals in the largest binary
// unit whose scaled value is at least 1.
func FormatSize(b int64) string {
	if b == 0 {
		return "0 B"
	}
	if b < 0 {
		return fmt.Sprintf("%d B", b)
	}
	value := float64(b)
	unit := 0
	for value >= 1024 && unit < len(sizeUnits)-1 {
		value /= 1024
		unit++
	}
	return fmt.Sprintf("%.2f %s", value, sizeUnits[unit])
}

// ParseSize parses size strings such as "512", "500KB" or "1.5MB".
func ParseSize(size string) (int64, error) {
	s := strings.ToUpper(strings.TrimSpace(size))
	if s == "" {
		return 0, nil
	}

	multiplier := float64(1)
	for i := len(sizeUnits) - 1; i >= 0; i-- {
		if strings.HasSuffix(s, sizeUnits[i]) {
			s = strings.TrimSpace(strings.TrimSuffix(s, sizeUnits[i]))
			for j := 0; j < i; j++ {
				multiplier *= 1024
			}
			break
		}
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("invalid size %q", size)
	}
	return int64(value * multiplier), nil
}
