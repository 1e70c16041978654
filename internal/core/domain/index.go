package domain

import (
	"cmp"
	"iter"
	"slices"
	"sort"
)

// IntervalIndex is an immutable set of records organized for overlap queries.
// It is safe for concurrent use by multiple goroutines.
type IntervalIndex struct {
	contigs map[string]*contigRecords
	names   []string
	size    int
}

// contigRecords holds the records of one contig sorted by (start, end).
// maxEnd[i] is the largest End among records[:i+1], so it never decreases.
type contigRecords struct {
	records []Record
	maxEnd  []int64
}

// NewIntervalIndex builds an index over records. The input may be in any order
// and is copied deeply, alt alleles included; later changes to records do not
// affect the index. Records returned by Query and All share the index's
// alt slices and must not be modified.
func NewIntervalIndex(records []Record) *IntervalIndex {
	alts := 0
	for _, r := range records {
		alts += len(r.Variant.Alt)
	}
	altPool := make([]string, 0, alts)

	byContig := make(map[string][]Record)
	for _, r := range records {
		if r.Variant.Alt != nil {
			from := len(altPool)
			altPool = append(altPool, r.Variant.Alt...)
			r.Variant.Alt = altPool[from:len(altPool):len(altPool)]
		}
		byContig[r.Contig] = append(byContig[r.Contig], r)
	}

	idx := &IntervalIndex{
		contigs: make(map[string]*contigRecords, len(byContig)),
		names:   make([]string, 0, len(byContig)),
		size:    len(records),
	}

	for contig, recs := range byContig {
		slices.SortStableFunc(recs, func(a, b Record) int {
			if c := cmp.Compare(a.Start, b.Start); c != 0 {
				return c
			}
			return cmp.Compare(a.End, b.End)
		})

		maxEnd := make([]int64, len(recs))
		running := int64(0)
		for i, r := range recs {
			running = max(running, r.End)
			maxEnd[i] = running
		}

		idx.contigs[contig] = &contigRecords{records: recs, maxEnd: maxEnd}
		idx.names = append(idx.names, contig)
	}
	slices.Sort(idx.names)

	return idx
}

// Len returns the total number of records in the index.
func (x *IntervalIndex) Len() int {
	return x.size
}

// Contigs returns the contig names present in the index, sorted.
func (x *IntervalIndex) Contigs() []string {
	return slices.Clone(x.names)
}

// ContigLen returns the number of records on contig.
func (x *IntervalIndex) ContigLen(contig string) int {
	c, ok := x.contigs[contig]
	if !ok {
		return 0
	}
	return len(c.records)
}

// Query returns every record overlapping iv, ordered by (start, end).
// An interval with inverted coordinates matches nothing.
func (x *IntervalIndex) Query(iv Interval) []Record {
	c, ok := x.contigs[iv.Contig]
	if !ok || iv.End < iv.Start {
		return nil
	}

	// Records at or past hi start after the query ends.
	hi := sort.Search(len(c.records), func(i int) bool {
		return c.records[i].Start > iv.End
	})
	// Records before lo all end before the query starts.
	lo := sort.Search(hi, func(i int) bool {
		return c.maxEnd[i] >= iv.Start
	})

	var out []Record
	for _, r := range c.records[lo:hi] {
		if r.End >= iv.Start {
			out = append(out, r)
		}
	}
	return out
}

// Overlaps reports whether any record overlaps iv.
func (x *IntervalIndex) Overlaps(iv Interval) bool {
	c, ok := x.contigs[iv.Contig]
	if !ok || iv.End < iv.Start {
		return false
	}
	hi := sort.Search(len(c.records), func(i int) bool {
		return c.records[i].Start > iv.End
	})
	return hi > 0 && c.maxEnd[hi-1] >= iv.Start
}

// All yields every record, contig by contig in sorted contig order.
func (x *IntervalIndex) All() iter.Seq[Record] {
	return func(yield func(Record) bool) {
		for _, name := range x.names {
			for _, r := range x.contigs[name].records {
				if !yield(r) {
					return
				}
			}
		}
	}
}
