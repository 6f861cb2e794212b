package result

import (
	"sort"

	"github.com/rs/zerolog/log"
)

// SlidingWindowSections groups matches into runs separated by gaps of more
// than sep characters. Matches are sorted by (start, end) ascending and
// scanned left to right; a new group opens when the next match starts more
// than sep past the furthest end seen so far. A gap of exactly sep stays
// merged.
//
// When max > 0, a group whose span (group start to the incoming match's
// end) would exceed max is force-closed even though the gap test did not
// trigger. A single match that by itself is longer than max cannot be
// split; it gets its own group and a warning.
func SlidingWindowSections(matches []*MatchResult, sep, max int) [][]*MatchResult {
	if len(matches) == 0 {
		return nil
	}
	sorted := make([]*MatchResult, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	var groups [][]*MatchResult
	var current []*MatchResult
	last := -1     // furthest end seen so far
	groupStart := 0 // start offset of the current group

	for _, m := range sorted {
		if len(current) > 0 && last+sep < m.Start {
			groups = append(groups, current)
			current = nil
		}
		if max > 0 && len(current) > 0 && m.End-groupStart > max {
			log.Warn().Str("doc", m.Doc.Name).
				Int("start", groupStart).Int("cap", max).
				Msg("section reached maximum length, forcing split")
			groups = append(groups, current)
			current = nil
		}
		if len(current) == 0 {
			groupStart = m.Start
		}
		if max > 0 && m.End-m.Start > max {
			log.Warn().Str("doc", m.Doc.Name).
				Int("start", m.Start).Int("end", m.End).Int("cap", max).
				Msg("single match longer than maximum section length")
		}
		current = append(current, m)
		if m.End > last {
			last = m.End
		}
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups
}
