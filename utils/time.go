package utils

import "time"

// ToJST converts a time to Japan Standard Time for user-facing formatting
func ToJST(t time.Time) time.Time {
	jst, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		return t // Fallback to UTC if JST is not available
	}
	return t.In(jst)
}
