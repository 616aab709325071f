package bdat

// Fuzz feeds data through Parse for coverage-guided fuzzers that expect
// the classic go-fuzz entry point rather than a testing.F harness.
func Fuzz(data []byte) int {
	tables, err := Parse(data)
	if err != nil {
		return 0
	}
	for _, t := range tables {
		if _, err := t.Owned(); err != nil {
			return 0
		}
	}
	return 1
}
