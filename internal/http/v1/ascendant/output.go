package ascendant

// ListOutput is the response for the ascendant listing.
type ListOutput struct {
	Body Listing
}
