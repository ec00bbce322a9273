package generation

import (
	"fmt"
	"strings"
)

const anglePromptTemplate = `Tu es directeur éditorial d'une collection de documentaires de 52 minutes.

À partir du repérage ci-dessous, propose exactement trois angles narratifs pour le film.

CONTEXTE : %s
GARDIEN 1 (MATIÈRE) : %s
GARDIEN 2 (TECHNIQUE) : %s
GARDIEN 3 (LIEN) : %s
FÊTE / RITUEL FINAL : %s

Les trois angles sont :
- HARMONIE : l'homme face à la nature, ambiance contemplative, respiration des gestes.
- RUPTURE : l'homme face au temps, urgence, déclin, transmission fragile.
- LIEN : l'homme face à la société, parole, marché, identité collective.

Réponds uniquement avec un tableau JSON de trois objets, sans texte autour :
[{"type": "HARMONIE", "title": "...", "description": "..."}, {"type": "RUPTURE", "title": "...", "description": "..."}, {"type": "LIEN", "title": "...", "description": "..."}]`

const scriptPromptTemplate = `Tu es scénariste de documentaires. Rédige le séquencier complet d'un documentaire de 52 minutes.

ANGLE CHOISI : %s
CONTEXTE : %s
GARDIEN 1 (MATIÈRE) : %s
GARDIEN 2 (TECHNIQUE) : %s
GARDIEN 3 (LIEN) : %s
FÊTE / RITUEL FINAL (+1) : %s

Règles d'écriture :
- Le récit est porté par les interviews des gardiens, jamais par une voix off descriptive.
- Chaque séquence commence par un en-tête (INT./EXT., lieu, moment) suivi de l'action et des paroles.
- Le film converge vers la fête finale qui réunit les trois gardiens.
- Mise en page de scénario en police à chasse fixe, sans mise en forme Markdown.`

const refinePromptTemplate = `Tu es co-scénariste. Voici le séquencier actuel d'un documentaire de 52 minutes :

%s

Réécris-le en appliquant la consigne suivante : %s

Conserve la mise en page et tout ce que la consigne ne modifie pas. Renvoie uniquement le séquencier complet réécrit.`

// AnglePrompt builds the prompt asking for the three editorial angles.
func AnglePrompt(b Brief) string {
	return fmt.Sprintf(anglePromptTemplate, b.Context, b.Gardiens[0], b.Gardiens[1], b.Gardiens[2], b.Event)
}

// ScriptPrompt builds the prompt for a full script along req.Angle.
func ScriptPrompt(req ScriptRequest) string {
	angle := strings.TrimSpace(req.Angle)
	if angle == "" {
		angle = "libre"
	}
	return fmt.Sprintf(scriptPromptTemplate, angle, req.Context, req.Gardiens[0], req.Gardiens[1], req.Gardiens[2], req.Event)
}

// RefinePrompt builds the rewrite prompt.
func RefinePrompt(req RefineRequest) string {
	return fmt.Sprintf(refinePromptTemplate, req.CurrentScript, req.Instruction)
}
