package info

// GetOutput is the response for the service info endpoint.
type GetOutput struct {
	Body Data
}
