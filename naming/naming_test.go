package naming_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/valery1707/wro4j/naming"
)

func TestNoOp(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "core.css", naming.NoOp{}.Rename("core.css", "abc"))
}

func TestFingerprint(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		fingerprint string
		want        string
	}{
		{"core.css", "abc", "core-abc.css"},
		{"core.min.js", "abc", "core.min-abc.js"},
		{"noext", "abc", "noext-abc"},
		{"core.css", "", "core.css"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, naming.Fingerprint{}.Rename(tc.name, tc.fingerprint))
	}
}
