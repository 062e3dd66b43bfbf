// Package privacy implements the privacy conformance checker: cross-package
// constant references into a package's private surface are violations
// unless the constant is exposed through the package's public API directory
// or explicitly allow-listed.
package privacy

import (
	"slices"
	"strings"

	"github.com/alxckn/packwerk-extensions/pkg/checker"
	"github.com/alxckn/packwerk-extensions/pkg/packs"
)

func init() {
	checker.Register(Checker{})
}

// Checker is the privacy rule. It is stateless and reentrant; any number of
// references may be evaluated concurrently.
type Checker struct{}

var _ checker.Checker = Checker{}

// Kind implements checker.Checker.
func (Checker) Kind() checker.Kind {
	return checker.KindPrivacy
}

// IsViolation reports whether the reference breaches the destination
// package's encapsulation boundary.
func (Checker) IsViolation(ref checker.Reference) bool {
	cfg := ref.Destination.Config
	if cfg.EnforcePrivacy == packs.ModeDisabled {
		return false
	}

	// When private_constants is empty, every constant the destination
	// declares is implicitly private.
	private := cfg.PrivateConstants

	if slices.Contains(cfg.IgnoredPrivateConstants, ref.ConstantName) {
		return false
	}

	// Constants exposed through the public surface are never private,
	// irrespective of mode or name lists.
	if strings.HasPrefix(ref.ConstantLocation, ref.Destination.PublicPath()) {
		return false
	}

	if len(private) == 0 {
		return true
	}
	for _, entry := range private {
		if matchesNamespace(ref.ConstantName, entry) {
			return true
		}
	}
	return false
}

// NewViolation builds the violation artifact for an offending reference.
func (c Checker) NewViolation(ref checker.Reference) checker.Violation {
	return checker.Violation{
		Reference: ref,
		Kind:      checker.KindPrivacy,
		Message:   Message(ref),
	}
}

// IsStrict reports whether a detected violation bypasses grandfathering.
// Strictness is a property of how the referencing (source) package has
// opted in to enforcement discipline, not of the destination.
func (Checker) IsStrict(v checker.Violation, ledger checker.Ledger) bool {
	switch v.Reference.Source.Config.EnforcePrivacy {
	case packs.ModeStrict:
		return true
	case packs.ModeStrictForNew:
		return !ledger.Listed(checker.KindPrivacy, v.Reference.Destination.Name, v.Reference.ConstantName, v.Reference.Path)
	default:
		return false
	}
}

// matchesNamespace matches name against entry on ::-delimited namespace
// boundaries: an entry ::Foo matches ::Foo and ::Foo::Bar but not ::FooBar.
func matchesNamespace(name, entry string) bool {
	return name == entry || strings.HasPrefix(name, entry+"::")
}
