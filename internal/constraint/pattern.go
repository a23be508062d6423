package constraint

import (
	"sort"
	"strings"

	"github.com/ppiankov/boundary/internal/model"
)

// Normalize canonicalizes an environment action into the pattern
// constraints are keyed by.
//
// The pattern is built from the action's causal identity: the effect
// descriptors the environment attaches to the action (destination cell
// type, drug/condition pair, instrument/regime pair), never surface
// coordinates. Relocating a hazard between episodes changes coordinates
// but not effect descriptors, so a banned pattern keeps matching under
// distribution shift. When an environment declares no effects the verb
// and object form the identity.
func Normalize(envID string, a *model.EnvAction) string {
	var b strings.Builder
	b.WriteString(envID)
	b.WriteString("/")
	b.WriteString(strings.ToLower(a.Verb))

	if len(a.Effects) == 0 {
		b.WriteString(":object=")
		b.WriteString(strings.ToLower(a.Object))
		return b.String()
	}

	pairs := make([]string, 0, len(a.Effects))
	for _, e := range a.Effects {
		pairs = append(pairs, strings.ToLower(e.Key)+"="+strings.ToLower(e.Value))
	}
	sort.Strings(pairs)

	b.WriteString(":")
	b.WriteString(strings.Join(pairs, "|"))
	return b.String()
}
