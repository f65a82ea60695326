package absorb

// Reference muR values for capillary measurements.
const (
	IdealMuR       = 1.0
	ImpracticalMuR = 5.0
)

// Class buckets a muR value against the reference thresholds.
type Class string

const (
	Ideal       Class = "ideal"
	Correctable Class = "correctable"
	Impractical Class = "impractical"
)

// Classify returns the class of muR. Values at a threshold fall into the
// lower class.
func Classify(muR float64) Class {
	switch {
	case muR <= IdealMuR:
		return Ideal
	case muR <= ImpracticalMuR:
		return Correctable
	default:
		return Impractical
	}
}

// Threshold is a reference line for rendering muR curves.
type Threshold struct {
	MuR         float64 `json:"mu_r"`
	Label       string  `json:"label"`
	Description string  `json:"description"`
}

// Thresholds returns the reference lines in ascending muR.
func Thresholds() []Threshold {
	return []Threshold{
		{MuR: IdealMuR, Label: "ideal", Description: "minimal absorption, usually no correction needed"},
		{MuR: ImpracticalMuR, Label: "impractical", Description: "severe absorption, corrections become inaccurate"},
	}
}
