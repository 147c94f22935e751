package ascendant

// Sign is one row of the ascendant table.
type Sign struct {
	Sign      string `json:"sign"       doc:"Ascendant sign"       example:"Aries"`
	TimeRange string `json:"time_range" doc:"Local two-hour window" example:"04:00 AM - 06:00 AM"`
}

// Listing is the wire form of the ascendant listing.
type Listing struct {
	BirthDate       string `json:"birth_date"          doc:"Normalized birth date"  example:"1990-05-15"`
	BirthLocation   string `json:"birth_location"      doc:"Trimmed birth location" example:"New York"`
	Ascendants      []Sign `json:"ascendants"          doc:"All twelve signs with their time ranges"`
	Instructions    string `json:"instructions"        doc:"What to do with the listing"`
	NarrativeStatus string `json:"narrative_status"    doc:"Whether a narrative was generated" enum:"available,unavailable,disabled"`
	Narrative       string `json:"narrative,omitempty" doc:"Generated description of likely ascendants"`
}
