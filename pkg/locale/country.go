package locale

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const (
	DefaultTimezone = "UTC"
)

type Country struct {
	Code            string // ISO 3166-1 alpha-2
	Name            string
	DefaultTimezone string // IANA
}

var Countries = map[string]Country{
	"FI": {Code: "FI", Name: "Finland", DefaultTimezone: "Europe/Helsinki"},
	"AX": {Code: "AX", Name: "Åland Islands", DefaultTimezone: "Europe/Mariehamn"},
	"SE": {Code: "SE", Name: "Sweden", DefaultTimezone: "Europe/Stockholm"},
	"NO": {Code: "NO", Name: "Norway", DefaultTimezone: "Europe/Oslo"},
	"DK": {Code: "DK", Name: "Denmark", DefaultTimezone: "Europe/Copenhagen"},
	"EE": {Code: "EE", Name: "Estonia", DefaultTimezone: "Europe/Tallinn"},
	"DE": {Code: "DE", Name: "Germany", DefaultTimezone: "Europe/Berlin"},
	"GB": {Code: "GB", Name: "United Kingdom", DefaultTimezone: "Europe/London"},
	"US": {Code: "US", Name: "United States", DefaultTimezone: "America/New_York"},
}

// InferCountryFromPhone returns the country a phone number is registered in,
// or nil when the number cannot be parsed or the country is not known. A
// number without a leading plus is read as international.
func InferCountryFromPhone(phone string) *Country {
	normalized := strings.TrimSpace(phone)
	if normalized == "" {
		return nil
	}
	if !strings.HasPrefix(normalized, "+") {
		normalized = "+" + normalized
	}

	num, err := phonenumbers.Parse(normalized, "")
	if err != nil {
		return nil
	}

	country, ok := Countries[phonenumbers.GetRegionCodeForNumber(num)]
	if !ok {
		return nil
	}
	return &country
}

func InferTimezoneFromPhone(phone string) string {
	if country := InferCountryFromPhone(phone); country != nil {
		return country.DefaultTimezone
	}
	return DefaultTimezone
}
