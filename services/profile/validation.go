package profile

import (
	"regexp"
	"strings"

	"doitto/models"
)

var (
	phonePattern = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`)
	zipPattern   = regexp.MustCompile(`^\d{5}$`)
)

var usStates = map[string]bool{
	"AL": true, "AK": true, "AZ": true, "AR": true, "CA": true, "CO": true, "CT": true,
	"DE": true, "DC": true, "FL": true, "GA": true, "HI": true, "ID": true, "IL": true,
	"IN": true, "IA": true, "KS": true, "KY": true, "LA": true, "ME": true, "MD": true,
	"MA": true, "MI": true, "MN": true, "MS": true, "MO": true, "MT": true, "NE": true,
	"NV": true, "NH": true, "NJ": true, "NM": true, "NY": true, "NC": true, "ND": true,
	"OH": true, "OK": true, "OR": true, "PA": true, "RI": true, "SC": true, "SD": true,
	"TN": true, "TX": true, "UT": true, "VT": true, "VA": true, "WA": true, "WV": true,
	"WI": true, "WY": true,
}

// ValidPhone reports whether phone has the ###-###-#### shape.
func ValidPhone(phone string) bool { return phonePattern.MatchString(phone) }

// ValidZip reports whether zip is five digits.
func ValidZip(zip string) bool { return zipPattern.MatchString(zip) }

// ValidState reports whether state is a US state abbreviation, in any case.
func ValidState(state string) bool { return usStates[strings.ToUpper(strings.TrimSpace(state))] }

// Validate checks the fields of p that are filled in. Empty fields are left
// alone since saves are partial.
func Validate(p models.UserProfile) error {
	errs := FieldErrors{}
	if p.PhoneNumber != "" && !ValidPhone(p.PhoneNumber) {
		errs["phoneNumber"] = "phone number must look like 555-123-4567"
	}
	if p.Address.Zip != "" && !ValidZip(p.Address.Zip) {
		errs["address.zip"] = "zip code must be 5 digits"
	}
	if p.Address.State != "" && !ValidState(p.Address.State) {
		errs["address.state"] = "state must be a US state abbreviation"
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
