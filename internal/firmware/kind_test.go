package firmware

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind_CaseInsensitive(t *testing.T) {
	tests := []struct {
		input string
		want  Kind
	}{
		{"dell", KindDell},
		{"DELL", KindDell},
		{"Dell", KindDell},
		{"hp", KindHp},
		{"HP", KindHp},
		{"Oracle", KindOracle},
		{"ORACLE", KindOracle},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseKind(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseKind_RejectsUnknownAndPartial(t *testing.T) {
	for _, input := range []string{"", "bogus", "dell inc", " dell", "hpe", "orac"} {
		_, err := ParseKind(input)
		require.Error(t, err, "input %q", input)

		var parseErr *VendorParseError
		assert.True(t, errors.As(err, &parseErr), "input %q should yield VendorParseError", input)
		assert.Equal(t, input, parseErr.Vendor)
	}
}

func TestKind_NeedsSession(t *testing.T) {
	assert.True(t, KindDell.NeedsSession())
	assert.True(t, KindHp.NeedsSession())
	assert.False(t, KindOracle.NeedsSession())
}

func TestPattern_Memoized(t *testing.T) {
	first := Pattern(PatternDellVersion)
	second := Pattern(PatternDellVersion)
	assert.Same(t, first, second)

	assert.Panics(t, func() { Pattern("nope") })
}

func TestPattern_OracleVersionGroup(t *testing.T) {
	m := Pattern(PatternOracleVersion).FindStringSubmatch("Sun System Firmware 9.1.5.a build 3")
	require.NotNil(t, m)
	assert.Equal(t, "9.1.5.a", m[1])

	assert.Nil(t, Pattern(PatternOracleVersion).FindStringSubmatch("Firmware 9.1.5"))
}

func TestExtractError_Unwrap(t *testing.T) {
	inner := &NotFoundError{What: "a"}
	err := &ExtractError{Vendor: "HP", Model: "DL380", Err: inner}

	var nf *NotFoundError
	assert.True(t, errors.As(err, &nf))
	assert.Contains(t, err.Error(), "HP")
	assert.Contains(t, err.Error(), "DL380")
}
