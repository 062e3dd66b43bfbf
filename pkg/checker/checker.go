// Package checker defines the contract shared by all conformance checkers:
// the reference and violation model, the closed set of violation kinds, and
// the read-only ledger of grandfathered violations.
package checker

import "github.com/alxckn/packwerk-extensions/pkg/packs"

// Kind identifies a conformance rule. The set is closed; every checker
// claims exactly one variant.
type Kind string

// KindPrivacy tags violations of a package's encapsulation boundary.
const KindPrivacy Kind = "privacy"

// Reference is a single resolved cross-package constant reference. It is
// constructed by the resolver and never mutated afterwards.
type Reference struct {
	// Source is the package that authored the reference.
	Source *packs.Package

	// Destination is the package that owns the referenced constant.
	Destination *packs.Package

	// ConstantName is the fully-qualified, ::-delimited constant name.
	ConstantName string

	// ConstantLocation is the root-relative file the constant is defined in.
	ConstantLocation string

	// Path is the root-relative file containing the reference.
	Path string
}

// Violation is a detected conformance breach, produced by a checker and
// consumed by the reporting pipeline.
type Violation struct {
	Reference Reference
	Kind      Kind
	Message   string
}

// Ledger answers membership queries against a source package's record of
// violations accepted before enforcement began. Implementations are loaded
// once per run and treated as read-only during evaluation.
type Ledger interface {
	// Listed reports whether the violation identified by the kind,
	// destination package name, constant name and referencing file was
	// recorded when enforcement began.
	Listed(kind Kind, destination, constant, file string) bool
}

// Checker decides whether references violate a conformance rule and whether
// detected violations bypass grandfathering. Implementations are pure:
// both methods are total functions of their inputs.
type Checker interface {
	// Kind returns the violation kind this checker produces.
	Kind() Kind

	// IsViolation reports whether the reference breaches the rule.
	IsViolation(ref Reference) bool

	// NewViolation builds the violation artifact for an offending reference.
	NewViolation(ref Reference) Violation

	// IsStrict reports whether the violation must be reported even when the
	// ledger already lists it.
	IsStrict(v Violation, ledger Ledger) bool
}
