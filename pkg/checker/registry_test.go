package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker struct {
	kind Kind
}

func (s stubChecker) Kind() Kind                        { return s.kind }
func (s stubChecker) IsViolation(Reference) bool        { return false }
func (s stubChecker) NewViolation(ref Reference) Violation {
	return Violation{Reference: ref, Kind: s.kind}
}
func (s stubChecker) IsStrict(Violation, Ledger) bool { return false }

func TestRegistry(t *testing.T) {
	Clear()
	t.Cleanup(Clear)

	assert.Empty(t, All())

	Register(stubChecker{kind: KindPrivacy})
	Register(stubChecker{kind: Kind("dependency")})

	assert.Len(t, All(), 2)

	c, ok := Get(KindPrivacy)
	require.True(t, ok)
	assert.Equal(t, KindPrivacy, c.Kind())

	_, ok = Get(Kind("nope"))
	assert.False(t, ok)

	// Re-registering a kind replaces the previous checker.
	Register(stubChecker{kind: KindPrivacy})
	assert.Len(t, All(), 2)
}
