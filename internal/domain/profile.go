package domain

// SkinType classifies the caller's skin as reported in their profile
type SkinType string

const (
	SkinOily        SkinType = "oily"
	SkinDry         SkinType = "dry"
	SkinCombination SkinType = "combination"
	SkinSensitive   SkinType = "sensitive"
	SkinNormal      SkinType = "normal"
	SkinUnknown     SkinType = "unknown"
)

// Profile is the caller-supplied skin/hair profile. The engine only reads it.
type Profile struct {
	SkinType      SkinType `json:"skinType"`
	Concerns      []string `json:"concerns,omitempty"`
	Sensitivities []string `json:"sensitivities,omitempty"`
	Region        string   `json:"region,omitempty"` // two-letter locale code, e.g. "in"
}

// HasSensitivity reports whether the profile declares the given sensitivity
func (p Profile) HasSensitivity(name string) bool {
	for _, s := range p.Sensitivities {
		if s == name {
			return true
		}
	}
	return false
}

// HasConcern reports whether the profile declares the given concern
func (p Profile) HasConcern(name string) bool {
	for _, c := range p.Concerns {
		if c == name {
			return true
		}
	}
	return false
}
