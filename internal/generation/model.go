package generation

import "context"

// Model is the external generative-text capability.
//
// Implementations classify failures with ErrModelTimeout, ErrModelRejected or
// ErrModelUnavailable so the service can decide what to retry.
type Model interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Angle types proposed by the angle analysis.
const (
	AngleHarmony    = "HARMONIE"
	AngleRupture    = "RUPTURE"
	AngleConnection = "LIEN"

	// AngleError tags the synthetic entry returned when analysis fails.
	AngleError = "ERR"
)

// Angle is one editorial trajectory for the documentary.
type Angle struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ErrorAngle is the single entry returned in place of proposals when the
// analysis could not produce them.
func ErrorAngle(err error) Angle {
	return Angle{
		Type:        AngleError,
		Title:       "Analyse impossible",
		Description: err.Error(),
	}
}

// Brief carries the field data shared by every generation request.
type Brief struct {
	Context  string
	Gardiens [3]string
	Event    string
}

// ScriptRequest asks for a full script along one angle.
type ScriptRequest struct {
	Brief
	Angle string
}

// RefineRequest asks for a rewrite of an existing script.
type RefineRequest struct {
	CurrentScript string
	Instruction   string
}
