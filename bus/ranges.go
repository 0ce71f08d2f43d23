// Copyright © 2019 mg
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package bus

import "sort"

// addressRange is an inclusive [Base, End] span of the 16-bit address
// space.
type addressRange struct {
	Base uint16
	End  uint16
}

func (r addressRange) contains(addr uint16) bool { return addr >= r.Base && addr <= r.End }

// overlapsOrAdjoins reports whether r and o share at least one address, or are
// adjacent (End of one is Base-1 of the other) — adjacency matters
// because adjacent ranges get merged into one.
func (r addressRange) overlapsOrAdjoins(o addressRange) bool {
	rEnd, oEnd := int(r.End)+1, int(o.End)+1
	return int(r.Base) <= oEnd && int(o.Base) <= rEnd
}

// addressRangeList keeps a set of address ranges as a sorted slice of
// disjoint, non-adjacent spans, merging or splitting entries as ranges
// are added and removed. It backs the bus's write-protected regions.
type addressRangeList struct {
	ranges []addressRange
}

// add merges [base, end] into the set, coalescing with any existing
// ranges it overlaps or touches.
func (l *addressRangeList) add(base, end uint16) {
	if base > end {
		base, end = end, base
	}
	merged := addressRange{Base: base, End: end}
	kept := l.ranges[:0]
	for _, r := range l.ranges {
		if merged.overlapsOrAdjoins(r) {
			if r.Base < merged.Base {
				merged.Base = r.Base
			}
			if r.End > merged.End {
				merged.End = r.End
			}
			continue
		}
		kept = append(kept, r)
	}
	kept = append(kept, merged)
	sort.Slice(kept, func(i, j int) bool { return kept[i].Base < kept[j].Base })
	l.ranges = kept
}

// remove excises [base, end] from the set, splitting any range that
// straddles one of the endpoints into the portion(s) that survive.
func (l *addressRangeList) remove(base, end uint16) {
	if base > end {
		base, end = end, base
	}
	var result []addressRange
	for _, r := range l.ranges {
		if end < r.Base || base > r.End {
			result = append(result, r)
			continue
		}
		if base > r.Base {
			result = append(result, addressRange{Base: r.Base, End: base - 1})
		}
		if end < r.End {
			result = append(result, addressRange{Base: end + 1, End: r.End})
		}
	}
	l.ranges = result
}

// contains reports whether addr falls in any range currently held.
func (l *addressRangeList) contains(addr uint16) bool {
	for _, r := range l.ranges {
		if r.contains(addr) {
			return true
		}
	}
	return false
}
