package design

var attributes = map[Type]Profile{
	Manifestor: {
		Type:         Manifestor,
		Strategy:     "Inform before acting",
		Authority:    "Emotional",
		Signature:    "Peace",
		NotSelfTheme: "Anger",
		Description:  "Initiators who can start things independently",
	},
	Generator: {
		Type:         Generator,
		Strategy:     "Wait to Respond",
		Authority:    "Sacral",
		Signature:    "Satisfaction",
		NotSelfTheme: "Frustration",
		Description:  "Life-force energy workers who respond to opportunities",
	},
	ManifestingGenerator: {
		Type:         ManifestingGenerator,
		Strategy:     "Wait to Respond, then Inform",
		Authority:    "Sacral",
		Signature:    "Satisfaction",
		NotSelfTheme: "Frustration and Anger",
		Description:  "Multi-passionate builders who respond quickly and move fast",
	},
	Projector: {
		Type:         Projector,
		Strategy:     "Wait for the Invitation",
		Authority:    "Splenic",
		Signature:    "Success",
		NotSelfTheme: "Bitterness",
		Description:  "Guides and managers who direct energy of others",
	},
	Reflector: {
		Type:         Reflector,
		Strategy:     "Wait a lunar cycle before making decisions",
		Authority:    "Lunar",
		Signature:    "Surprise",
		NotSelfTheme: "Disappointment",
		Description:  "Rare type that samples and reflects community energy",
	},
}

// Lookup returns the attribute row for t. Unknown types resolve to the row of
// DefaultType.
func Lookup(t Type) Profile {
	if p, ok := attributes[t]; ok {
		return p
	}
	return attributes[DefaultType]
}
