package privacy

import (
	"fmt"

	"github.com/alxckn/packwerk-extensions/pkg/checker"
)

// troubleshootingURL documents how to interpret and resolve violations.
const troubleshootingURL = "https://github.com/Shopify/packwerk/blob/main/TROUBLESHOOT.md"

// Message formats the user-facing explanation for a privacy violation.
// The wording is load-bearing: downstream tooling and documentation match
// on it, so it must stay byte-for-byte stable.
func Message(ref checker.Reference) string {
	return fmt.Sprintf(
		"Privacy violation: '%s' is private to '%s' but referenced from '%s'.\n"+
			"Is there a public entrypoint in '%s' that you can use instead?\n"+
			"\n"+
			"Inference details: this is a reference to %s which seems to be defined in %s.\n"+
			"To receive help interpreting or resolving this error message, see: %s#Troubleshooting-violations",
		ref.ConstantName,
		ref.Destination.Name,
		ref.Source.Name,
		ref.Destination.PublicPath(),
		ref.ConstantName,
		ref.ConstantLocation,
		troubleshootingURL,
	)
}
