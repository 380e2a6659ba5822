package cues

import "sort"

// Between returns the cues of an onset-ordered schedule whose onset lies in
// [from, to).
func Between(schedule []Cue, from, to int) []Cue {
	if to <= from {
		return nil
	}
	lo := sort.Search(len(schedule), func(i int) bool { return schedule[i].Onset >= from })
	hi := sort.Search(len(schedule), func(i int) bool { return schedule[i].Onset >= to })
	if lo == hi {
		return nil
	}
	out := make([]Cue, hi-lo)
	copy(out, schedule[lo:hi])
	return out
}

// Active returns the cues relevant at frame: one-shots starting there and
// sustained cues still sounding. Order follows the schedule.
func Active(schedule []Cue, frame int) []Cue {
	var out []Cue
	for _, c := range schedule {
		if c.Onset > frame {
			break
		}
		if c.Onset == frame || c.Sounding(frame) {
			out = append(out, c)
		}
	}
	return out
}

// Assets returns the distinct asset references of the schedule in first-use
// order.
func Assets(schedule []Cue) []string {
	seen := make(map[string]bool, len(schedule))
	var out []string
	for _, c := range schedule {
		if c.Asset == "" || seen[c.Asset] {
			continue
		}
		seen[c.Asset] = true
		out = append(out, c.Asset)
	}
	return out
}
