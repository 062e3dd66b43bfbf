package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCamelize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"foo", "Foo"},
		{"foo_bar", "FooBar"},
		{"foo_bar_baz", "FooBarBaz"},
		{"foo__bar", "FooBar"},
		{"v2_api", "V2Api"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Camelize(tt.in), "Camelize(%q)", tt.in)
	}
}

func TestConstantForPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"invoice.rb", "::Invoice"},
		{"billing/invoice.rb", "::Billing::Invoice"},
		{"billing/line_item.rb", "::Billing::LineItem"},
		{"deeply/nested/foo_bar/baz.rb", "::Deeply::Nested::FooBar::Baz"},
		{"", ""},
		{".rb", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ConstantForPath(tt.in), "ConstantForPath(%q)", tt.in)
	}
}
