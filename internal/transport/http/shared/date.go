package shared

import "time"

const dateLayout = "2006-01-02"

// ParseDate accepts YYYY-MM-DD only; report dates are plain calendar days.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}

func ValidDate(value string) bool {
	_, err := ParseDate(value)
	return err == nil
}

func Today() string {
	return time.Now().Format(dateLayout)
}
