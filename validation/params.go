package validation

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gbur-rwanda/gbur-backend/errs"
	"github.com/gbur-rwanda/gbur-backend/models"
)

var numericPattern = regexp.MustCompile(`^\d+$`)

// IsNumeric is the single predicate deciding whether a path or query value is an id.
func IsNumeric(s string) bool {
	return numericPattern.MatchString(s)
}

// ParseNumeric converts a ^\d+$ string to an int. Anything else, including
// values that overflow, is reported as absent.
func ParseNumeric(s string) (int, bool) {
	if !IsNumeric(s) {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseOptionalID is ParseNumeric for foreign-key filters such as categoryId.
// Zero is treated as absent.
func ParseOptionalID(s string) *uint {
	n, ok := ParseNumeric(s)
	if !ok || n == 0 {
		return nil
	}
	id := uint(n)
	return &id
}

// ParseID validates a numeric path parameter. Non-numeric input never reaches storage.
func ParseID(param, raw string) (uint, error) {
	n, ok := ParseNumeric(raw)
	if !ok || n == 0 {
		return 0, errs.NewInvalidIDError(param)
	}
	return uint(n), nil
}

// ParsePostStatus returns the status filter, or "" when s is not a known status.
func ParsePostStatus(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, status := range models.PostStatuses {
		if s == status {
			return s
		}
	}
	return ""
}

// ParseSmallGroupType returns the type filter, or "" for anything outside
// {student, graduate}. Invalid types disable the filter instead of failing.
func ParseSmallGroupType(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, t := range models.SmallGroupTypes {
		if s == t {
			return s
		}
	}
	return ""
}

// contactSubjectAliases maps public form labels onto the stored subject set.
var contactSubjectAliases = map[string]string{
	"ministry": models.SubjectInquiry,
	"donation": models.SubjectGeneral,
	"campus":   models.SubjectInquiry,
}

// MapContactSubject remaps a form subject into the closed backend enum.
// Known backend values pass through; unknown labels become "other".
func MapContactSubject(subject string) string {
	s := strings.ToLower(strings.TrimSpace(subject))
	if mapped, ok := contactSubjectAliases[s]; ok {
		return mapped
	}
	for _, known := range models.ContactSubjects {
		if s == known {
			return s
		}
	}
	return models.SubjectOther
}
