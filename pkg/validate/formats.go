package validate

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/goliatone/go-profileforms/pkg/schema"
)

// DateLayout is the wire format for date-valued fields.
const DateLayout = "2006-01-02"

var (
	personNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z .'-]*$`)
	emailPattern      = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern      = regexp.MustCompile(`^\+?[0-9]{10,20}$`)
	passportPattern   = regexp.MustCompile(`^[A-Za-z0-9]{6,15}$`)
	currencyPattern   = regexp.MustCompile(`^[A-Z]{3}$`)
	whitespace        = regexp.MustCompile(`\s+`)
)

func formatCheck(decl schema.Field, label, text string) string {
	switch decl.Format {
	case schema.FormatPersonName:
		if !personNamePattern.MatchString(text) {
			return fmt.Sprintf("%s may only contain letters, spaces, hyphens, apostrophes and periods", label)
		}
	case schema.FormatEmail:
		if !emailPattern.MatchString(text) {
			return fmt.Sprintf("%s must be a valid email address", label)
		}
	case schema.FormatPhone:
		compact := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(text)
		if !phonePattern.MatchString(compact) {
			return fmt.Sprintf("%s must be 10 to 20 digits, with an optional leading +", label)
		}
	case schema.FormatPassport:
		compact := whitespace.ReplaceAllString(text, "")
		if !passportPattern.MatchString(compact) {
			return fmt.Sprintf("%s must be 6 to 15 letters and digits", label)
		}
	case schema.FormatCurrencyCode:
		if !currencyPattern.MatchString(text) {
			return fmt.Sprintf("%s must be a 3-letter uppercase currency code", label)
		}
	case schema.FormatDate:
		if _, err := time.Parse(DateLayout, text); err != nil {
			return fmt.Sprintf("%s must be a date in YYYY-MM-DD form", label)
		}
	case schema.FormatDateOfBirth:
		return dateOfBirthCheck(label, text, time.Now())
	case schema.FormatURL:
		parsed, err := url.Parse(text)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			return fmt.Sprintf("%s must be an http(s) URL", label)
		}
	}
	return ""
}

func dateOfBirthCheck(label, text string, now time.Time) string {
	dob, err := time.Parse(DateLayout, text)
	if err != nil {
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD form", label)
	}
	if dob.After(now) {
		return fmt.Sprintf("%s cannot be in the future", label)
	}
	age := impliedAge(dob, now)
	if age < 16 || age > 100 {
		return fmt.Sprintf("%s implies an age outside the 16-100 range", label)
	}
	return ""
}

func impliedAge(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

// graduationYearCheck enforces the whole [1980, currentYear+1] range so the
// format tag carries both bounds on its own; schemas need not repeat the
// floor as a separate minimum.
func graduationYearCheck(label string, year float64) string {
	minYear := float64(1980)
	maxYear := float64(time.Now().Year() + 1)
	if year < minYear || year > maxYear {
		return fmt.Sprintf("%s must be between %v and %v", label, minYear, maxYear)
	}
	return ""
}
