package domain

import "unique"

// InternContig returns a canonical copy of a contig name.
// Sources repeat the same handful of contig names millions of times; interning
// lets every record on a contig share one backing string.
func InternContig(name string) string {
	return unique.Make(name).Value()
}
