package packs

import "fmt"

// EnforcementMode is the privacy enforcement level a package declares
// through the enforce_privacy key of its package.yml.
type EnforcementMode int

// Enforcement levels, from least to most demanding.
const (
	// ModeDisabled turns privacy checking off for the package entirely.
	ModeDisabled EnforcementMode = iota

	// ModeEnforced reports violations but defers all of them to the
	// package_todo.yml ledger for incremental adoption.
	ModeEnforced

	// ModeStrict reports every violation, listed in the ledger or not.
	ModeStrict

	// ModeStrictForNew reports violations that are absent from the ledger
	// while leaving previously accepted debt alone.
	ModeStrictForNew
)

func (m EnforcementMode) String() string {
	switch m {
	case ModeDisabled:
		return "false"
	case ModeEnforced:
		return "true"
	case ModeStrict:
		return "strict"
	case ModeStrictForNew:
		return "strict_for_new"
	default:
		return "unknown"
	}
}

// ParseEnforcementMode maps the raw YAML value of enforce_privacy onto an
// EnforcementMode. The key is a disguised sum type: boolean false/true plus
// the strings "strict" and "strict_for_new". Anything else is a
// configuration error; there is no fallback interpretation.
func ParseEnforcementMode(raw any) (EnforcementMode, error) {
	switch v := raw.(type) {
	case nil:
		return ModeDisabled, nil
	case bool:
		if v {
			return ModeEnforced, nil
		}
		return ModeDisabled, nil
	case string:
		switch v {
		case "strict":
			return ModeStrict, nil
		case "strict_for_new":
			return ModeStrictForNew, nil
		}
	}
	return ModeDisabled, fmt.Errorf("invalid enforce_privacy value %v (expected false, true, \"strict\" or \"strict_for_new\")", raw)
}
