package sanitizer

import (
	"strings"
	"unicode"

	"github.com/nyaruka/phonenumbers"
)

// DefaultPhoneRegion is used for numbers written in national format.
const DefaultPhoneRegion = "FI"

// NormalizePhone returns phone in E.164 form, or "" when it is not a valid
// number. Numbers without a leading plus are tried as national numbers first
// and then as international ones.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ""
	}
	if strings.IndexFunc(phone, unicode.IsLetter) >= 0 {
		return ""
	}

	if e164, ok := parseValid(phone, DefaultPhoneRegion); ok {
		return e164
	}
	if !strings.HasPrefix(phone, "+") {
		if e164, ok := parseValid("+"+phone, ""); ok {
			return e164
		}
	}
	return ""
}

func parseValid(phone, region string) (string, bool) {
	num, err := phonenumbers.Parse(phone, region)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return "", false
	}
	return phonenumbers.Format(num, phonenumbers.E164), true
}
