package filter

import (
	"strings"

	"github.com/amishk599/jobhunter/internal/model"
)

// seniorityBlock is the authoritative list of title substrings that reject a
// record regardless of which adapter sent it. Every record entering dedup
// passes through IsSenior; this is the only place the list lives.
var seniorityBlock = []string{
	"senior", " sr ", "sr.", "staff ", "principal", "director", "manager",
	"lead ", "tech lead", "head of", "vp ", "v.p.", "vice president",
	"distinguished", "fellow", "cto", "cpo", "coo", "cfo", "chief",
	"architect", "5+ yr", "7+ yr", "8+ yr", "10+ yr",
}

// alwaysMatch tokens pass the role filter regardless of user preferences.
var alwaysMatch = []string{
	// Engineering
	"software engineer", "swe", "sde", "developer", "backend engineer",
	"full stack", "fullstack", "ai engineer", "ml engineer",
	"machine learning", "data engineer", "cloud engineer", "devops",
	"new grad", "entry level", "early career", "junior", "associate engineer",
	"infrastructure engineer", "platform engineer", "systems engineer",
	"embedded engineer", "firmware engineer", "software development",
	// Analytics / Data
	"data analyst", "business analyst", "business intelligence",
	"bi analyst", "bi developer", "analytics engineer",
	"product analyst", "operations analyst", "data scientist",
	"quantitative analyst", "research analyst", "market analyst",
	"financial analyst", "applied scientist",
}

// nonUSRemote disqualifies a "remote" location from counting as US.
var nonUSRemote = []string{"emea", "apac", "uk", "europe", "germany", "india", "canada", "latam"}

var usIndicators = []string{
	"united states", "usa", "us", "america",
	" ca", " ny", " wa", " tx", " fl", " il", " ma", " co", " ga", " va",
	"california", "new york", "washington", "texas", "seattle", "san francisco",
	"san jose", "los angeles", "boston", "chicago", "austin", "denver", "atlanta",
	"remote us", "us-remote", "remote (us",
}

var sponsorshipNo = []string{
	"no h1b", "no visa", "does not sponsor", "not sponsor",
	"unable to sponsor", "cannot sponsor", "citizen only",
	"us citizen", "clearance required",
}

var sponsorshipLikely = []string{
	"h1b sponsor", "visa sponsor", "sponsorship available",
	"will sponsor", "open to sponsor", "sponsors h1b",
}

// IsSenior reports whether the title contains any seniority block token.
func IsSenior(title string) bool {
	tl := strings.ToLower(title)
	for _, blk := range seniorityBlock {
		if strings.Contains(tl, blk) {
			return true
		}
	}
	return false
}

// EntryLevelFilter accepts titles matching the hardcoded always-match set or
// any user-configured role token, and rejects anything on the seniority
// block list. User roles can only extend the accepted set, never restrict it.
type EntryLevelFilter struct {
	userRoles []string
}

// NewEntryLevelFilter lowercases the user's role tokens once up front.
func NewEntryLevelFilter(userRoles []string) *EntryLevelFilter {
	roles := make([]string, 0, len(userRoles))
	for _, r := range userRoles {
		r = strings.ToLower(strings.TrimSpace(r))
		if r != "" {
			roles = append(roles, r)
		}
	}
	return &EntryLevelFilter{userRoles: roles}
}

// MatchTitle returns true if the title passes the seniority gate and matches
// either an always-match token or a user role token.
func (f *EntryLevelFilter) MatchTitle(title string) bool {
	tl := strings.ToLower(title)
	if IsSenior(title) {
		return false
	}
	for _, tok := range alwaysMatch {
		if strings.Contains(tl, tok) {
			return true
		}
	}
	for _, role := range f.userRoles {
		if strings.Contains(tl, role) {
			return true
		}
	}
	return false
}

// IsUSLocation accepts empty locations (unknown defaults to US), remote
// locations not pinned to a non-US region, and anything containing a US
// indicator token.
func IsUSLocation(loc string) bool {
	if strings.TrimSpace(loc) == "" {
		return true
	}
	ll := strings.ToLower(loc)
	if strings.Contains(ll, "remote") {
		foreign := false
		for _, x := range nonUSRemote {
			if strings.Contains(ll, x) {
				foreign = true
				break
			}
		}
		if !foreign {
			return true
		}
	}
	for _, ind := range usIndicators {
		if strings.Contains(ll, ind) {
			return true
		}
	}
	return false
}

// ExtractSponsorship parses an H1B sponsorship signal out of free text.
// Negative signals win over positive ones.
func ExtractSponsorship(text string) string {
	t := strings.ToLower(text)
	for _, x := range sponsorshipNo {
		if strings.Contains(t, x) {
			return model.SponsorshipNo
		}
	}
	for _, x := range sponsorshipLikely {
		if strings.Contains(t, x) {
			return model.SponsorshipLikely
		}
	}
	return ""
}
