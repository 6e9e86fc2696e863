package level

import (
	"fmt"
)

// Validation codes.
const (
	CodeMissingID        = "MISSING_ID"
	CodeBadLayout        = "BAD_LAYOUT"
	CodeNoSpawn          = "NO_SPAWN"
	CodeNoPortal         = "NO_PORTAL"
	CodeNoPath           = "NO_PATH"
	CodeUnknownAppliance = "UNKNOWN_APPLIANCE"
	CodeBadRecipe        = "BAD_RECIPE"
	CodeBadStart         = "BAD_START"
	CodeNoWaves          = "NO_WAVES"
	CodeBadWave          = "BAD_WAVE"
	CodeUnknownEnemy     = "UNKNOWN_ENEMY"
	CodeBadTower         = "BAD_TOWER"
	CodeBadEnemy         = "BAD_ENEMY"
	CodeBadSeat          = "BAD_SEAT"
)

// ValidationError contains details about validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func invalid(code, format string, args ...any) error {
	return ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Validate checks the level and returns the first problem found.
func (l *Level) Validate() error {
	if l.ID == "" {
		return invalid(CodeMissingID, "level has no id")
	}

	ingredients := make(map[string]bool, len(l.Ingredients))
	for _, in := range l.Ingredients {
		ingredients[in.ID] = true
	}

	for _, kind := range l.TowerKinds() {
		if err := l.Towers[kind].Validate(); err != nil {
			return invalid(CodeBadTower, "tower %q: %v", kind, err)
		}
	}
	for _, kind := range l.EnemyKinds() {
		st := l.Enemies[kind]
		if err := st.Validate(); err != nil {
			return invalid(CodeBadEnemy, "enemy %q: %v", kind, err)
		}
		for _, reward := range []map[string]int{toStrings(st.SatedReward), toStrings(st.KillReward)} {
			for k, n := range reward {
				if !ingredients[k] {
					return invalid(CodeBadEnemy, "enemy %q rewards unknown ingredient %q", kind, k)
				}
				if n < 0 {
					return invalid(CodeBadEnemy, "enemy %q rewards %d %s", kind, n, k)
				}
			}
		}
	}

	if len(l.Waves) == 0 {
		return invalid(CodeNoWaves, "level declares no waves")
	}
	for i, w := range l.Waves {
		for _, sp := range w.Spawns {
			if _, ok := l.Enemies[sp.Enemy]; !ok {
				return invalid(CodeUnknownEnemy, "wave %d spawns unknown enemy %q", i+1, sp.Enemy)
			}
		}
	}

	parts, err := l.Build()
	if err != nil {
		return err
	}

	for i, s := range l.Seats {
		if !parts.Grid.In(s.Cell()) {
			return invalid(CodeBadSeat, "seat %d at %s is outside the map", i+1, s.Cell())
		}
	}
	return nil
}
