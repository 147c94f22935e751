package numerology

// Description is the fixed text attached to a life path number.
type Description struct {
	Summary          string
	Challenges       []string
	PotentialCareers []string
}

var fallbackDescription = Description{
	Summary:          "Unique life path with complex characteristics",
	Challenges:       []string{"Integrating many different influences"},
	PotentialCareers: []string{"Any field that rewards versatility"},
}

var descriptions = map[int]Description{
	1: {
		Summary:          "Leadership, independence, and originality",
		Challenges:       []string{"Impatience", "Stubbornness", "Difficulty delegating"},
		PotentialCareers: []string{"Entrepreneur", "Executive", "Inventor"},
	},
	2: {
		Summary:          "Cooperation, diplomacy, and sensitivity",
		Challenges:       []string{"Indecision", "Over-sensitivity", "Avoiding conflict"},
		PotentialCareers: []string{"Mediator", "Counselor", "Diplomat"},
	},
	3: {
		Summary:          "Creativity, communication, and self-expression",
		Challenges:       []string{"Scattered focus", "Self-doubt", "Superficiality"},
		PotentialCareers: []string{"Writer", "Performer", "Designer"},
	},
	4: {
		Summary:          "Stability, discipline, and hard work",
		Challenges:       []string{"Rigidity", "Resistance to change", "Overwork"},
		PotentialCareers: []string{"Engineer", "Accountant", "Project manager"},
	},
	5: {
		Summary:          "Freedom, adventure, and versatility",
		Challenges:       []string{"Restlessness", "Inconsistency", "Impulsiveness"},
		PotentialCareers: []string{"Travel writer", "Sales", "Journalist"},
	},
	6: {
		Summary:          "Harmony, responsibility, and nurturing",
		Challenges:       []string{"Perfectionism", "Self-sacrifice", "Controlling behaviour"},
		PotentialCareers: []string{"Teacher", "Nurse", "Social worker"},
	},
	7: {
		Summary:          "Spirituality, analysis, and introspection",
		Challenges:       []string{"Isolation", "Skepticism", "Emotional distance"},
		PotentialCareers: []string{"Researcher", "Analyst", "Philosopher"},
	},
	8: {
		Summary:          "Personal power, ambition, and material success",
		Challenges:       []string{"Materialism", "Workaholism", "Domineering tendencies"},
		PotentialCareers: []string{"Business owner", "Banker", "Lawyer"},
	},
	9: {
		Summary:          "Compassion, generosity, and global consciousness",
		Challenges:       []string{"Letting go", "Martyrdom", "Emotional volatility"},
		PotentialCareers: []string{"Humanitarian", "Artist", "Healer"},
	},
	11: {
		Summary:          "Intuition, inspiration, and spiritual insight",
		Challenges:       []string{"Nervous tension", "Unrealistic expectations", "Self-criticism"},
		PotentialCareers: []string{"Spiritual teacher", "Psychologist", "Artist"},
	},
	22: {
		Summary:          "Master builder turning large visions into reality",
		Challenges:       []string{"Pressure of potential", "Overwhelm", "Control"},
		PotentialCareers: []string{"Architect", "Diplomat", "Organizational leader"},
	},
	33: {
		Summary:          "Master teacher devoted to compassionate service",
		Challenges:       []string{"Burnout", "Carrying others' burdens", "Idealism"},
		PotentialCareers: []string{"Educator", "Healer", "Community leader"},
	},
}

// Describe returns the description for a life path number. Numbers without a
// table entry get a generic description, so the result is never empty.
func Describe(lifePath int) Description {
	d, ok := descriptions[lifePath]
	if !ok {
		d = fallbackDescription
	}
	return Description{
		Summary:          d.Summary,
		Challenges:       append([]string(nil), d.Challenges...),
		PotentialCareers: append([]string(nil), d.PotentialCareers...),
	}
}
