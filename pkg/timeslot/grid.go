package timeslot

import "iter"

// Grid enumerates fixed-width candidate slots across the given operating
// hours, starting at hours.Start and stepping by width minutes. A trailing
// slot that would run past hours.End is discarded, not truncated. The
// returned sequence is finite and can be ranged over more than once.
func Grid(hours Interval, width int) iter.Seq[Interval] {
	return func(yield func(Interval) bool) {
		if width <= 0 {
			return
		}
		for start := hours.Start; start.Add(width) <= hours.End; start = start.Add(width) {
			if !yield(Interval{Start: start, End: start.Add(width)}) {
				return
			}
		}
	}
}
