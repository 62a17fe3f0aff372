package resources

import (
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_guide/internal/engine"
)

// FormatVideos renders ranked videos as labelled text blocks, one link line per block.
// The layout is the one Parser reads back from prose.
func FormatVideos(cands []Candidate) string {
	var sb strings.Builder
	for i, c := range cands {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "Title: %s\n", c.Title)
		if c.Channel != "" {
			fmt.Fprintf(&sb, "Channel: %s\n", c.Channel)
		}
		if c.DurationSeconds > 0 {
			fmt.Fprintf(&sb, "Duration: %s\n", FormatDuration(c.DurationSeconds))
		}
		if c.Popularity > 0 {
			fmt.Fprintf(&sb, "Views: %s\n", FormatCount(c.Popularity))
		}
		if c.Description != "" {
			fmt.Fprintf(&sb, "Description: %s\n", engine.TruncateAtWord(engine.NormalizeSpace(c.Description), 180))
		}
		fmt.Fprintf(&sb, "%s\n", c.SourceID)
	}
	return sb.String()
}

// FormatRepos renders ranked repositories in the same labelled layout.
func FormatRepos(cands []Candidate) string {
	var sb strings.Builder
	for i, c := range cands {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "Name: %s\n", c.Title)
		if c.Channel != "" {
			fmt.Fprintf(&sb, "Owner: %s\n", c.Channel)
		}
		fmt.Fprintf(&sb, "Stars: %d\n", c.Popularity)
		if c.Description != "" {
			fmt.Fprintf(&sb, "Description: %s\n", engine.TruncateAtWord(engine.NormalizeSpace(c.Description), 180))
		}
		fmt.Fprintf(&sb, "%s\n", c.SourceID)
	}
	return sb.String()
}
