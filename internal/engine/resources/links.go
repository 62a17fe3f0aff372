package resources

import (
	"regexp"
	"strings"
)

const (
	videoWatchPrefix = "https://www.youtube.com/watch?v="
	repoPrefix       = "https://github.com/"
)

var (
	videoLinkRe = regexp.MustCompile(`(?i)(?:youtube\.com/(?:watch\?(?:[^\s"'<>]*&)?v=|shorts/|embed/|live/)|youtu\.be/)([a-zA-Z0-9_-]{11})`)
	// The host must be github.com itself; gist.github.com and api.github.com never match.
	repoLinkRe = regexp.MustCompile(`(?i)(?:^|[^\w.-])(?:www\.)?github\.com/([A-Za-z0-9][A-Za-z0-9-]*)/([A-Za-z0-9._-]+)((?:/[^\s"'<>)\]]*)?)`)
)

// Owners and top-level paths on github.com that are not user or org names.
var reservedRepoOwners = map[string]bool{
	"topics": true, "explore": true, "trending": true, "search": true, "settings": true,
	"notifications": true, "orgs": true, "marketplace": true, "sponsors": true,
	"features": true, "collections": true, "login": true, "about": true,
	"repos": true, "users": true, "apps": true,
}

// Deep links into a repository that do not identify the repository itself.
var repoDeepPaths = []string{"/blob/", "/issues", "/wiki", "/releases", "/pull/", "/pulls", "/commit/"}

// CanonicalVideo returns the canonical watch URL for any YouTube link form,
// and whether the link was a short-form (/shorts/) URL.
func CanonicalVideo(raw string) (link string, short bool, ok bool) {
	m := videoLinkRe.FindStringSubmatch(raw)
	if m == nil {
		return "", false, false
	}
	short = strings.Contains(strings.ToLower(m[0]), "/shorts/")
	return videoWatchPrefix + m[1], short, true
}

// CanonicalRepo returns https://github.com/owner/repo for a repository root link.
// Reserved owners and deep links (files, issues, releases) are rejected.
func CanonicalRepo(raw string) (string, bool) {
	m := repoLinkRe.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	owner, repo, rest := m[1], m[2], strings.ToLower(m[3])
	if reservedRepoOwners[strings.ToLower(owner)] {
		return "", false
	}
	for _, deep := range repoDeepPaths {
		if strings.HasPrefix(rest, deep) {
			return "", false
		}
	}
	repo = strings.TrimSuffix(repo, ".git")
	repo = strings.TrimRight(repo, ".")
	if repo == "" {
		return "", false
	}
	return repoPrefix + owner + "/" + repo, true
}

// Canonical normalises raw into the kind's canonical link.
func Canonical(kind Kind, raw string) (link string, short bool, ok bool) {
	if kind == KindRepository {
		link, ok = CanonicalRepo(raw)
		return link, false, ok
	}
	return CanonicalVideo(raw)
}

// foundLink is a canonical link discovered in free text.
type foundLink struct {
	URL   string
	Short bool
}

// findLinks returns every canonical link of kind in text, in order of appearance, without duplicates.
// A link seen in /shorts/ form anywhere in text is marked short.
func findLinks(kind Kind, text string) []foundLink {
	re := videoLinkRe
	if kind == KindRepository {
		re = repoLinkRe
	}
	index := make(map[string]int)
	var out []foundLink
	for _, m := range re.FindAllString(text, -1) {
		link, short, ok := Canonical(kind, m)
		if !ok {
			continue
		}
		if i, seen := index[link]; seen {
			out[i].Short = out[i].Short || short
			continue
		}
		index[link] = len(out)
		out = append(out, foundLink{URL: link, Short: short})
	}
	return out
}

// hasCanonicalLink reports whether text contains at least one canonical link of kind.
func hasCanonicalLink(kind Kind, text string) bool {
	re := videoLinkRe
	if kind == KindRepository {
		re = repoLinkRe
	}
	for _, m := range re.FindAllString(text, -1) {
		if _, _, ok := Canonical(kind, m); ok {
			return true
		}
	}
	return false
}

// repoOwner returns the owner segment of a canonical repository link.
func repoOwner(link string) string {
	rest := strings.TrimPrefix(link, repoPrefix)
	if i := strings.IndexByte(rest, '/'); i > 0 {
		return rest[:i]
	}
	return ""
}
