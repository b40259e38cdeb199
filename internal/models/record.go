package models

// Record is the sole stored entity: an opaque server-generated id mapped to
// a caller-supplied value that can be read at most once before ExpireAt.
type Record struct {
	ID       string
	Value    string
	ExpireAt int64 // epoch seconds
}
