package services

import (
	"regexp"
	"strings"

	"github.com/temply-mn/temply-api/internal/apperr"
)

var BannedWords = []string{
	"fuck", "fucking", "shit", "bullshit", "bitch", "cunt", "asshole",
	"nigger", "faggot", "retard",
	"porn", "porno", "nude", "nudes",
	"scam", "scammer", "phishing", "malware",
	"пизда", "бляд", "хуй",
}

// ContentFilter screens template text shown to buyers. Templates are sold on
// the marketplace only, so contact details and outside links are rejected
// along with banned words.
type ContentFilter struct {
	bannedWordRegexps []*regexp.Regexp
	urlPattern        *regexp.Regexp
	emailPattern      *regexp.Regexp
	phonePattern      *regexp.Regexp
}

func NewContentFilter() *ContentFilter {
	f := &ContentFilter{
		bannedWordRegexps: make([]*regexp.Regexp, 0, len(BannedWords)),
		urlPattern:        regexp.MustCompile(`(?i)(https?://\S+|www\.\S+\.\S+)`),
		emailPattern:      regexp.MustCompile(`(?i)[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}`),
		// Mongolian numbers are eight digits. Without the +976 prefix only an
		// unbroken run counts, so sizes like "1080 1920" pass.
		phonePattern: regexp.MustCompile(`\+976[-\s]?\d{4}[-\s]?\d{4}|(^|\D)\d{8}($|\D)`),
	}
	for _, word := range BannedWords {
		// \b is ASCII-only in RE2, so word boundaries are spelled out.
		re, err := regexp.Compile(`(?i)(^|[^\p{L}])` + regexp.QuoteMeta(word) + `($|[^\p{L}])`)
		if err == nil {
			f.bannedWordRegexps = append(f.bannedWordRegexps, re)
		}
	}
	return f
}

// Check returns a Validation error for the first text that fails screening.
func (f *ContentFilter) Check(texts ...string) error {
	for _, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		for _, re := range f.bannedWordRegexps {
			if re.MatchString(text) {
				return apperr.Validation(apperr.MsgContentRejected)
			}
		}
		if f.urlPattern.MatchString(text) || f.emailPattern.MatchString(text) || f.phonePattern.MatchString(text) {
			return apperr.Validation(apperr.MsgContactNotAllowed)
		}
	}
	return nil
}
