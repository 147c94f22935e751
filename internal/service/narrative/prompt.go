package narrative

import "fmt"

// AscendantsPrompt asks for candidate rising signs for a date and place.
func AscendantsPrompt(date, location string) string {
	return fmt.Sprintf(
		"List possible Ascendant signs with time ranges for %s in %s. Provide a brief description of each.",
		date, location,
	)
}

// CareerPrompt asks for career guidance. time may be empty.
func CareerPrompt(date, time, location string) string {
	return fmt.Sprintf(
		"Provide career guidance based on astrology for someone born on %s at %s in %s.",
		date, timeOrUnknown(time), location,
	)
}

// GrowthPrompt asks for personal growth insights. time may be empty.
func GrowthPrompt(date, time, location string) string {
	return fmt.Sprintf(
		"Provide personal growth insights based on astrology for someone born on %s at %s in %s.",
		date, timeOrUnknown(time), location,
	)
}

func timeOrUnknown(t string) string {
	if t == "" {
		return "an unknown time"
	}
	return t
}
