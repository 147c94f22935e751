package compatibility

// CompareOutput is the response for a compatibility comparison.
type CompareOutput struct {
	Body Result
}
