package tile

// IndexError reports an out-of-bounds position lookup.
type IndexError struct {
	Message string
}

func (e *IndexError) Error() string { return e.Message }
