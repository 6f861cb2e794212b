package result

import "sort"

// SweepPoint classifies the matches at one offset: those starting exactly
// here, those ending exactly here (end is exclusive, one past the last
// matched character), and those spanning across without starting or
// ending here.
type SweepPoint struct {
	Index      int
	Starting   []*MatchResult
	Ending     []*MatchResult
	Continuing []*MatchResult
}

// SweepSpans computes the sweep-line classification for a set of possibly
// overlapping spans, visiting every offset where at least one match starts
// or ends, in ascending order. Renderers consume this to open and close
// nested highlight spans without interval-tree machinery. Handles proper
// nesting, partial overlap, and identical spans.
func SweepSpans(matches []*MatchResult) []SweepPoint {
	if len(matches) == 0 {
		return nil
	}
	byIndex := make(map[int]*SweepPoint)
	point := func(i int) *SweepPoint {
		p, ok := byIndex[i]
		if !ok {
			p = &SweepPoint{Index: i}
			byIndex[i] = p
		}
		return p
	}
	for _, m := range matches {
		p := point(m.Start)
		p.Starting = append(p.Starting, m)
		p = point(m.End)
		p.Ending = append(p.Ending, m)
	}

	indexes := make([]int, 0, len(byIndex))
	for i := range byIndex {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)

	var active []*MatchResult
	out := make([]SweepPoint, 0, len(indexes))
	for _, i := range indexes {
		p := byIndex[i]
		if len(p.Ending) > 0 {
			active = without(active, p.Ending)
		}
		if len(active) > 0 {
			p.Continuing = append([]*MatchResult(nil), active...)
		}
		active = append(active, p.Starting...)
		out = append(out, *p)
	}
	return out
}

// without filters drop (by identity) out of active, preserving order.
func without(active, drop []*MatchResult) []*MatchResult {
	out := active[:0]
	for _, m := range active {
		dropped := false
		for _, d := range drop {
			if m == d {
				dropped = true
				break
			}
		}
		if !dropped {
			out = append(out, m)
		}
	}
	return out
}
