// Package timeline orders the cropped receipt images chronologically and
// partitions them into week-of-month buckets, one report page per bucket.
package timeline

import (
	"sort"
	"time"
)

// Entry pairs a working-directory image filename with the timestamp read from
// it.
type Entry struct {
	File  string
	Taken time.Time
}

// Bucket is a contiguous run of the sorted timeline sharing one week index.
type Bucket struct {
	Week    int
	Entries []Entry
}

// WeekIndex derives the week-of-month grouping key from a timestamp. This is
// day-of-month arithmetic, not a calendar week number: the 1st through 7th map
// to 1, the 8th through 14th to 2, and so on. Entries from different months
// that share an index land in the same bucket.
func WeekIndex(t time.Time) int {
	return (t.Day()-1)/7 + 1
}

// SortChronological returns a new slice with entries in ascending timestamp
// order. The sort is stable: entries with equal timestamps keep their input
// order.
func SortChronological(entries []Entry) []Entry {
	sorted := append([]Entry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Taken.Before(sorted[j].Taken)
	})
	return sorted
}

// BucketByWeek groups a chronologically sorted timeline into buckets, one per
// distinct week index, in increasing index order. Membership of a bucket is
// the inclusive slice between the first and last sorted position whose index
// matches; any entry strictly between them is absorbed even if its own index
// differs.
func BucketByWeek(sorted []Entry) []Bucket {
	seen := make(map[int]bool)
	var weeks []int
	for _, e := range sorted {
		if w := WeekIndex(e.Taken); !seen[w] {
			seen[w] = true
			weeks = append(weeks, w)
		}
	}
	sort.Ints(weeks)

	buckets := make([]Bucket, 0, len(weeks))
	for _, w := range weeks {
		first, last := -1, -1
		for i, e := range sorted {
			if WeekIndex(e.Taken) != w {
				continue
			}
			if first < 0 {
				first = i
			}
			last = i
		}
		buckets = append(buckets, Bucket{Week: w, Entries: sorted[first : last+1]})
	}
	return buckets
}
