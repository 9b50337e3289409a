package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// FlexTime decodes RFC 3339 timestamps as well as the zone-less values HTML
// datetime-local inputs produce, which are read in the server's local zone.
// Null and empty strings leave it unset.
type FlexTime struct {
	Time  time.Time
	Valid bool
}

func (f *FlexTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*f = FlexTime{}
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			f.Time, f.Valid = t, true
			return nil
		}
	}
	return fmt.Errorf("invalid time %q", s)
}

// Ptr returns nil when unset.
func (f FlexTime) Ptr() *time.Time {
	if !f.Valid {
		return nil
	}
	t := f.Time
	return &t
}
