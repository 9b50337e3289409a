package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Round rounds half away from negative infinity, so 2.5 becomes 3 and -2.5 becomes -2.
func Round(x float64) int {
	return int(math.Floor(x + 0.5))
}

// Percent is part/whole*100 rounded half-up; zero when whole is zero.
func Percent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return Round(float64(part) / float64(whole) * 100)
}

// FlexInt decodes a whole JSON number, a numeric string, an empty string or
// null. Fractional numbers are rejected.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("invalid number %q", s)
		}
		*f = FlexInt(n)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if n != math.Trunc(n) {
		return fmt.Errorf("invalid number %s: must be a whole number", data)
	}
	*f = FlexInt(int(n))
	return nil
}

func (f FlexInt) Int() int {
	return int(f)
}
