package privacy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alxckn/packwerk-extensions/pkg/checker"
	"github.com/alxckn/packwerk-extensions/pkg/packs"
)

func TestMessage_Verbatim(t *testing.T) {
	ref := checker.Reference{
		Source:           &packs.Package{Name: "components/source"},
		Destination:      &packs.Package{Name: "components/destination"},
		ConstantName:     "::SomeName",
		ConstantLocation: "some/location.rb",
		Path:             "components/source/some/path.rb",
	}

	want := "Privacy violation: '::SomeName' is private to 'components/destination' but referenced from 'components/source'.\n" +
		"Is there a public entrypoint in 'components/destination/app/public/' that you can use instead?\n" +
		"\n" +
		"Inference details: this is a reference to ::SomeName which seems to be defined in some/location.rb.\n" +
		"To receive help interpreting or resolving this error message, see: https://github.com/Shopify/packwerk/blob/main/TROUBLESHOOT.md#Troubleshooting-violations"

	assert.Equal(t, want, Message(ref))
}

func TestMessage_UsesConfiguredPublicPath(t *testing.T) {
	ref := checker.Reference{
		Source:           &packs.Package{Name: "components/source"},
		Destination:      &packs.Package{Name: "components/destination", Config: packs.Config{PublicPath: "api"}},
		ConstantName:     "::SomeName",
		ConstantLocation: "some/location.rb",
	}

	assert.Contains(t, Message(ref), "Is there a public entrypoint in 'components/destination/api/' that you can use instead?")
}
