// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "lowercase", in: "CSRD Directive", want: "csrd directive"},
		{name: "hyphenated line break", in: "sustain-\nability", want: "sustainability"},
		{name: "hyphen with carriage return and indent", in: "Nachhaltigkeits-\r\n    bericht", want: "nachhaltigkeitsbericht"},
		{name: "hyphen followed by space", in: "305- Emissions", want: "305emissions"},
		{name: "inner hyphen kept", in: "CSR-RUG", want: "csr-rug"},
		{name: "trailing hyphen kept", in: "GRI 305-", want: "gri 305-"},
		{name: "collapse whitespace", in: "GHG \t\n  Protocol", want: "ghg protocol"},
		{name: "trim", in: "  \n ESRS \n", want: "esrs"},
		{name: "no-break space", in: "IFRS\u00a0S1", want: "ifrs s1"},
		{name: "consecutive hyphen breaks", in: "a-\n- b", want: "ab"},
		{name: "decomposed umlaut composed", in: "Europa\u0308isch", want: "europ\u00e4isch"},
		{name: "uppercase umlaut", in: "ÖKOLOGISCH", want: "ökologisch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.in))
		})
	}
}

func TestText_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"sustain-\nability",
		"Corporate Value Chain (Scope 3)",
		"a - b -- c -\t\n- d",
		"Richtlinie über die nicht-\nfinanzielle Berichterstattung",
		"  GRI 305-   \n  \n",
		"x- y z",
		"Scope-3-Standard",
	}

	for _, in := range inputs {
		once := Text(in)
		assert.Equal(t, once, Text(once), "input %q", in)
	}
}
