package privacy

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alxckn/packwerk-extensions/pkg/checker"
	"github.com/alxckn/packwerk-extensions/pkg/packs"
)

// fakeLedger lists violations keyed by kind|destination|constant|file.
type fakeLedger map[string]bool

func (f fakeLedger) Listed(kind checker.Kind, destination, constant, file string) bool {
	return f[fmt.Sprintf("%s|%s|%s|%s", kind, destination, constant, file)]
}

func newRef(destCfg packs.Config, constant, location string) checker.Reference {
	return checker.Reference{
		Source:           &packs.Package{Name: "components/source", Config: packs.Config{EnforcePrivacy: packs.ModeEnforced}},
		Destination:      &packs.Package{Name: "components/destination", Config: destCfg},
		ConstantName:     constant,
		ConstantLocation: location,
		Path:             "components/source/app/models/caller.rb",
	}
}

func TestIsViolation_DisabledMode(t *testing.T) {
	cfg := packs.Config{
		EnforcePrivacy:   packs.ModeDisabled,
		PrivateConstants: []string{"::Secret"},
	}
	ref := newRef(cfg, "::Secret", "components/destination/app/models/secret.rb")

	assert.False(t, Checker{}.IsViolation(ref), "disabled destinations never produce violations")
}

func TestIsViolation_NameAbsentFromPrivateList(t *testing.T) {
	cfg := packs.Config{
		EnforcePrivacy:   packs.ModeEnforced,
		PrivateConstants: []string{"::Secret"},
	}
	ref := newRef(cfg, "::Other", "components/destination/app/models/other.rb")

	assert.False(t, Checker{}.IsViolation(ref))
}

func TestIsViolation_EmptyPrivateListMeansEverythingPrivate(t *testing.T) {
	cfg := packs.Config{EnforcePrivacy: packs.ModeEnforced}

	ref := newRef(cfg, "::Anything", "components/destination/app/models/anything.rb")
	assert.True(t, Checker{}.IsViolation(ref))

	cfg.IgnoredPrivateConstants = []string{"::Anything"}
	ref = newRef(cfg, "::Anything", "components/destination/app/models/anything.rb")
	assert.False(t, Checker{}.IsViolation(ref), "allow-list overrides implicit privacy")
}

func TestIsViolation_NamespaceBoundaryMatching(t *testing.T) {
	cfg := packs.Config{
		EnforcePrivacy:   packs.ModeEnforced,
		PrivateConstants: []string{"::Foo"},
	}

	tests := []struct {
		constant string
		want     bool
	}{
		{"::Foo", true},
		{"::Foo::Bar", true},
		{"::Foo::Bar::Baz", true},
		{"::FooBar", false},
		{"::FooButNotQuite", false},
		{"::Fo", false},
	}
	for _, tt := range tests {
		t.Run(tt.constant, func(t *testing.T) {
			ref := newRef(cfg, tt.constant, "components/destination/app/models/foo.rb")
			assert.Equal(t, tt.want, Checker{}.IsViolation(ref))
		})
	}
}

func TestIsViolation_PublicPathOverride(t *testing.T) {
	cfg := packs.Config{EnforcePrivacy: packs.ModeEnforced}
	ref := newRef(cfg, "::Entry", "components/destination/app/public/entry.rb")

	assert.False(t, Checker{}.IsViolation(ref), "constants under the public surface are never private")

	// The override also wins over an explicit private listing and strict mode.
	cfg = packs.Config{
		EnforcePrivacy:   packs.ModeStrict,
		PrivateConstants: []string{"::Entry"},
	}
	ref = newRef(cfg, "::Entry", "components/destination/app/public/entry.rb")
	assert.False(t, Checker{}.IsViolation(ref))
}

func TestIsViolation_CustomPublicPath(t *testing.T) {
	cfg := packs.Config{EnforcePrivacy: packs.ModeEnforced, PublicPath: "api/"}

	ref := newRef(cfg, "::Entry", "components/destination/api/entry.rb")
	assert.False(t, Checker{}.IsViolation(ref))

	ref = newRef(cfg, "::Hidden", "components/destination/app/models/hidden.rb")
	assert.True(t, Checker{}.IsViolation(ref))
}

func TestIsStrict_TruthTable(t *testing.T) {
	tests := []struct {
		mode        packs.EnforcementMode
		listed      bool
		wantStrict  bool
		description string
	}{
		{packs.ModeDisabled, true, false, "disabled never escalates"},
		{packs.ModeDisabled, false, false, "disabled never escalates"},
		{packs.ModeEnforced, true, false, "enforced defers to the ledger"},
		{packs.ModeEnforced, false, false, "enforced defers to the ledger"},
		{packs.ModeStrict, true, true, "strict always escalates"},
		{packs.ModeStrict, false, true, "strict always escalates"},
		{packs.ModeStrictForNew, true, false, "strict_for_new leaves recorded debt alone"},
		{packs.ModeStrictForNew, false, true, "strict_for_new escalates new violations"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/listed=%v", tt.mode, tt.listed), func(t *testing.T) {
			ref := checker.Reference{
				Source:           &packs.Package{Name: "components/source", Config: packs.Config{EnforcePrivacy: tt.mode}},
				Destination:      &packs.Package{Name: "components/destination"},
				ConstantName:     "::Secret",
				ConstantLocation: "components/destination/app/models/secret.rb",
				Path:             "components/source/app/models/caller.rb",
			}
			v := Checker{}.NewViolation(ref)

			ledger := fakeLedger{}
			if tt.listed {
				ledger["privacy|components/destination|::Secret|components/source/app/models/caller.rb"] = true
			}

			assert.Equal(t, tt.wantStrict, Checker{}.IsStrict(v, ledger), tt.description)
		})
	}
}

func TestIsStrict_ReadsSourceModeNotDestination(t *testing.T) {
	ref := checker.Reference{
		Source:       &packs.Package{Name: "components/source", Config: packs.Config{EnforcePrivacy: packs.ModeEnforced}},
		Destination:  &packs.Package{Name: "components/destination", Config: packs.Config{EnforcePrivacy: packs.ModeStrict}},
		ConstantName: "::Secret",
		Path:         "components/source/app/models/caller.rb",
	}
	v := Checker{}.NewViolation(ref)

	assert.False(t, Checker{}.IsStrict(v, fakeLedger{}),
		"strictness comes from the source package's discipline, not the destination's")
}

func TestNewViolation(t *testing.T) {
	cfg := packs.Config{EnforcePrivacy: packs.ModeEnforced}
	ref := newRef(cfg, "::Secret", "components/destination/app/models/secret.rb")

	v := Checker{}.NewViolation(ref)

	assert.Equal(t, checker.KindPrivacy, v.Kind)
	assert.Equal(t, ref, v.Reference)
	require.NotEmpty(t, v.Message)
	assert.Equal(t, Message(ref), v.Message)
}

func TestIsViolation_Idempotent(t *testing.T) {
	cfg := packs.Config{
		EnforcePrivacy:   packs.ModeEnforced,
		PrivateConstants: []string{"::Secret"},
	}
	ref := newRef(cfg, "::Secret::Inner", "components/destination/app/models/secret/inner.rb")

	first := Checker{}.IsViolation(ref)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Checker{}.IsViolation(ref))
	}
	assert.True(t, first)
}
