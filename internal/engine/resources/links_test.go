package resources

import "testing"

func TestCanonicalVideo(t *testing.T) {
	const want = "https://www.youtube.com/watch?v=abcdefghij1"
	tests := []struct {
		name      string
		raw       string
		wantOK    bool
		wantShort bool
	}{
		{"watch", "https://www.youtube.com/watch?v=abcdefghij1", true, false},
		{"tracking params", "https://youtube.com/watch?feature=share&v=abcdefghij1&t=42s", true, false},
		{"short link", "https://youtu.be/abcdefghij1?si=xyz", true, false},
		{"shorts", "https://www.youtube.com/shorts/abcdefghij1", true, true},
		{"embed", "https://www.youtube.com/embed/abcdefghij1", true, false},
		{"channel page", "https://www.youtube.com/@freecodecamp", false, false},
		{"other site", "https://vimeo.com/12345", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link, short, ok := CanonicalVideo(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if link != want {
				t.Errorf("link = %q, want %q", link, want)
			}
			if short != tt.wantShort {
				t.Errorf("short = %v, want %v", short, tt.wantShort)
			}
		})
	}
}

func TestCanonicalRepo(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"https://github.com/user/irrigation", "https://github.com/user/irrigation"},
		{"https://github.com/user/irrigation.git", "https://github.com/user/irrigation"},
		{"https://github.com/user/irrigation?tab=readme#install", "https://github.com/user/irrigation"},
		{"https://github.com/user/irrigation/", "https://github.com/user/irrigation"},
		{"https://github.com/user/irrigation/tree/main", "https://github.com/user/irrigation"},
		{"https://github.com/user/irrigation/blob/main/README.md", ""},
		{"https://github.com/user/irrigation/issues/3", ""},
		{"https://github.com/user/irrigation/releases", ""},
		{"https://github.com/topics/iot", ""},
		{"https://github.com/orgs/acme", ""},
		{"https://gitlab.com/user/irrigation", ""},
		{"https://gist.github.com/alice/0123abcd", ""},
		{"https://api.github.com/repos/alice/irrigation", ""},
		{"https://mygithub.com/alice/irrigation", ""},
		{"https://github.com/repos/alice", ""},
		{"https://www.github.com/alice/irrigation", "https://github.com/alice/irrigation"},
		{"github.com/alice/irrigation", "https://github.com/alice/irrigation"},
		{"(see https://github.com/alice/irrigation)", "https://github.com/alice/irrigation"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := CanonicalRepo(tt.raw)
			if tt.want == "" {
				if ok {
					t.Errorf("CanonicalRepo(%q) = %q, want rejection", tt.raw, got)
				}
				return
			}
			if !ok || got != tt.want {
				t.Errorf("CanonicalRepo(%q) = %q, %v; want %q", tt.raw, got, ok, tt.want)
			}
		})
	}
}

func TestFindRepoLinksIgnoresOtherGitHubHosts(t *testing.T) {
	text := "gist https://gist.github.com/alice/0123abcd, api https://api.github.com/repos/alice/irrigation " +
		"and the repo https://github.com/alice/irrigation"
	links := findLinks(KindRepository, text)
	if len(links) != 1 || links[0].URL != "https://github.com/alice/irrigation" {
		t.Errorf("findLinks = %+v, want only the github.com repository", links)
	}
}

func TestFindLinksDedupesAndMarksShorts(t *testing.T) {
	text := "see https://youtu.be/abcdefghij1 and https://www.youtube.com/shorts/abcdefghij1 " +
		"then https://www.youtube.com/watch?v=abcdefghij2"
	links := findLinks(KindVideo, text)
	if len(links) != 2 {
		t.Fatalf("got %d links, want 2", len(links))
	}
	if !links[0].Short {
		t.Error("link seen in /shorts/ form should be marked short")
	}
	if links[1].URL != "https://www.youtube.com/watch?v=abcdefghij2" {
		t.Errorf("second link = %q", links[1].URL)
	}
}
