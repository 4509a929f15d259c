package propvalue

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseColor accepts a named color resolved through names, "#RGB",
// "#RRGGBB", "RGB(r,g,b)" with 0-255 or percentage components, or a
// decimal integer. Non-named colors are returned as upper-case "#RRGGBB".
func ParseColor(s string, names Lookup) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("invalid color: empty")
	}
	if names != nil {
		if canonical, ok := names(s); ok {
			return canonical, nil
		}
	}
	if strings.HasPrefix(s, "#") {
		return parseHexColor(s)
	}
	if len(s) > 4 && strings.EqualFold(s[:4], "rgb(") && strings.HasSuffix(s, ")") {
		return parseRGBColor(s)
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < 0 || n > 0xFFFFFF {
			return "", fmt.Errorf("invalid color %q: out of range", s)
		}
		return fmt.Sprintf("#%06X", n), nil
	}
	return "", fmt.Errorf("invalid color %q", s)
}

func parseHexColor(s string) (string, error) {
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return "", fmt.Errorf("invalid color %q: expected 3 or 6 hex digits", s)
	}
	if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
		return "", fmt.Errorf("invalid color %q: %w", s, err)
	}
	return "#" + strings.ToUpper(hex), nil
}

func parseRGBColor(s string) (string, error) {
	parts := strings.Split(s[4:len(s)-1], ",")
	if len(parts) != 3 {
		return "", fmt.Errorf("invalid color %q: expected three components", s)
	}
	var rgb [3]int64
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if pct, ok := strings.CutSuffix(p, "%"); ok {
			f, err := strconv.ParseFloat(pct, 64)
			if err != nil || f < 0 || f > 100 {
				return "", fmt.Errorf("invalid color %q: bad component %q", s, p)
			}
			rgb[i] = int64(f*255/100 + 0.5)
			continue
		}
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil || n < 0 || n > 255 {
			return "", fmt.Errorf("invalid color %q: bad component %q", s, p)
		}
		rgb[i] = n
	}
	return fmt.Sprintf("#%02X%02X%02X", rgb[0], rgb[1], rgb[2]), nil
}
