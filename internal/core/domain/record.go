package domain

// Variant is the payload carried by a known-sites record.
type Variant struct {
	ID  string
	Ref string
	Alt []string
}

// IsSNP reports whether the variant replaces a single base with single bases only.
func (v Variant) IsSNP() bool {
	if len(v.Ref) != 1 || len(v.Alt) == 0 {
		return false
	}
	for _, alt := range v.Alt {
		if len(alt) != 1 {
			return false
		}
	}
	return true
}

// Record is a known site: a genomic interval and its variant.
// Records are values and must not be mutated once loaded.
type Record struct {
	Interval
	Variant Variant
}
