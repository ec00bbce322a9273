package generation

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseAngles decodes the model's answer to AnglePrompt. Markdown code fences
// around the JSON are tolerated. The angle types are not checked against the
// known vocabulary.
func ParseAngles(text string) ([]Angle, error) {
	body := stripCodeFence(text)

	var angles []Angle
	if err := json.Unmarshal([]byte(body), &angles); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	if angles == nil {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrMalformedOutput)
	}
	return angles, nil
}

func stripCodeFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	// Drop the opening fence line, including any language tag.
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(strings.TrimPrefix(s, "```"), "json")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
