package models

// FileRange is an inclusive range of log-file indices assigned to a single
// worker. A range with Start > End is empty and the worker processes nothing.
type FileRange struct {
	Start int // Start is the first file index in the range.
	End   int // End is the last file index in the range, inclusive.
}

// Empty reports whether the range contains no file indices.
func (r FileRange) Empty() bool {
	return r.Start > r.End
}

// Len returns the number of file indices covered by the range.
func (r FileRange) Len() int {
	if r.Empty() {
		return 0
	}
	return r.End - r.Start + 1
}
