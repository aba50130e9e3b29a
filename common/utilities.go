/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package common

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/alecthomas/units"
	"github.com/samber/lo"
)

// Determines if an address is an IPv4 address
func IsIPv4(address string) bool {
	x := net.ParseIP(address)
	if x != nil {
		if x.To4() != nil {
			return true
		}
	}
	return false
}

// Determines if an address is an IPv6 address
func IsIPv6(address string) bool {
	x := net.ParseIP(address)
	if x != nil {
		// The net package does not have a good way to determine if an address
		// is definitely an IPv6 address.  The best it can do at the moment is
		// tell if it cleanly converts to an IPv4 value so we are going to
		// assume that if it parsed as an address and wasn't an IPv4 address
		// then it must be an IPv6 address.
		if x.To4() == nil {
			return true
		}
	}
	return false
}

// ListDelta is a utility function which calculates the difference between two
// lists.  If elements in 'b' are not present in 'a' then they will appear in
// the 'added' list.  If elements in a are not present in b then they will
// appear in the 'removed' list.
func ListDelta(a, b []string) (added []string, removed []string, same []string) {
	added = make([]string, 0)
	removed = make([]string, 0)
	same = make([]string, 0)
	present := make(map[string]bool)

	for _, s := range a {
		found := false
		for _, x := range b {
			if s == x {
				present[x] = true
				found = true
				break
			}
		}

		if !found {
			removed = append(removed, s)
		}
	}

	for _, x := range b {
		if !present[x] {
			added = append(added, x)
		} else {
			same = append(same, x)
		}
	}

	return added, removed, same
}

// ListChanged is a utility function which determines if a list of names
// provided in a spec is equivalent to the list of names returned by the array
// API.  Since the spec accepts nil as a list that wasn't specified we consider
// the nil case as an empty list when comparing against the array API.
func ListChanged(a, b []string) bool {
	if len(a) != len(b) {
		return true
	}

	added, removed, _ := ListDelta(a, b)

	return len(added) > 0 || len(removed) > 0
}

// ListIntersect is a utility function which determines if there is any
// commonality between two lists of strings.
func ListIntersect(a []string, b []string) ([]string, bool) {
	result := lo.Intersect(a, b)
	return result, len(result) > 0
}

// ContainsString is a utility function that determines whether a string is
// included in the list of elements of a slice.
func ContainsString(slice []string, s string) bool {
	return lo.Contains(slice, s)
}

// RemoveString is a utility function that removes a string from the list of
// elements of a slice.
func RemoveString(slice []string, s string) (result []string) {
	for _, item := range slice {
		if item == s {
			continue
		}
		result = append(result, item)
	}
	return
}

// DedupeSlice is a utility function that removes duplicated elements from a
// slice while preserving order.
func DedupeSlice[T comparable](sliceList []T) []T {
	return lo.Uniq(sliceList)
}

// ParseSize converts a human readable base-2 size string (e.g. "50M", "1T")
// into a byte count.  A bare number is taken as bytes.
func ParseSize(value string) (int64, error) {
	text := value
	if !strings.HasSuffix(strings.ToUpper(text), "B") {
		text += "B"
	}

	size, err := units.ParseBase2Bytes(text)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %s", value, err)
	}

	return int64(size), nil
}

// FormatSize converts a byte count back into the human readable base-2 form
// accepted by ParseSize.  Exact multiples render without a unit suffix
// remainder, e.g. 52428800 renders as "50M".
func FormatSize(bytes int64) string {
	if bytes == 0 {
		return "0"
	}

	text := units.Base2Bytes(bytes).String()
	text = strings.TrimSuffix(text, "iB")
	return strings.TrimSuffix(text, "B")
}

// FormatIOPS converts an operation count back into the human readable metric
// form accepted by ParseIOPS.
func FormatIOPS(count int64) string {
	if count == 0 {
		return "0"
	}

	text := units.MetricBytes(count).String()
	return strings.TrimSuffix(text, "B")
}

// ParseIOPS converts a human readable metric count string (e.g. "100K") into
// an operation count.  Unlike sizes, IOPS values scale by powers of ten.
func ParseIOPS(value string) (int64, error) {
	text := value
	if !strings.HasSuffix(strings.ToUpper(text), "B") {
		text += "B"
	}

	count, err := units.ParseMetricBytes(text)
	if err != nil {
		return 0, fmt.Errorf("invalid IOPS value %q: %s", value, err)
	}

	return int64(count), nil
}

// timeOfDayLayouts are the accepted clock time formats, tried in order.
var timeOfDayLayouts = []string{"3PM", "3pm", "15:04", "15:04:05"}

// ParseTimeOfDay converts a clock time string (e.g. "3PM", "15:00") into
// milliseconds since midnight, which is the representation the array API
// uses for schedule at-times and blackout windows.
func ParseTimeOfDay(value string) (int64, error) {
	for _, layout := range timeOfDayLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			midnight := time.Date(0, time.January, 1, 0, 0, 0, 0, time.UTC)
			return t.Sub(midnight).Milliseconds(), nil
		}
	}

	return 0, fmt.Errorf("invalid clock time %q; use e.g. \"3PM\" or \"15:00\"", value)
}

// FormatTimeOfDay converts milliseconds since midnight back into a clock time
// string.  On-the-hour values render in the "3PM" style; everything else uses
// the 24 hour form.
func FormatTimeOfDay(ms int64) string {
	t := time.Date(0, time.January, 1, 0, 0, 0, 0, time.UTC).
		Add(time.Duration(ms) * time.Millisecond)

	if t.Minute() == 0 && t.Second() == 0 {
		return t.Format("3PM")
	}

	return t.Format("15:04")
}

// ParseFrequency converts a duration string (e.g. "1h", "24h") into
// milliseconds, which is the representation the array API uses for schedule
// frequencies.
func ParseFrequency(value string) (int64, error) {
	interval, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid frequency %q: %s", value, err)
	}
	if interval <= 0 {
		return 0, fmt.Errorf("frequency %q must be positive", value)
	}

	return interval.Milliseconds(), nil
}

// FormatFrequency converts a millisecond interval back into a duration
// string.
func FormatFrequency(ms int64) string {
	text := (time.Duration(ms) * time.Millisecond).String()
	if strings.HasSuffix(text, "m0s") {
		text = text[:len(text)-2]
	}
	if strings.HasSuffix(text, "h0m") {
		text = text[:len(text)-2]
	}
	return text
}
