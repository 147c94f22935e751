package reading

// CreateOutput is the response for a full reading.
type CreateOutput struct {
	Body Reading
}
