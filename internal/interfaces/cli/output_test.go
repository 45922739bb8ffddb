package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/turtacn/Resilience-Insights/pkg/errors"
)

func TestFormatTable(t *testing.T) {
	got := FormatTable([]string{"ID", "SCORE", "TITLE"}, [][]string{
		{"cs-10", "0.5", "Flood clinics"},
		{"a", "0.25"},
	})

	want := "ID     SCORE  TITLE\n" +
		"-----  -----  -------------\n" +
		"cs-10  0.5    Flood clinics\n" +
		"a      0.25   \n"
	assert.Equal(t, want, got)
}

func TestFormatTable_NoHeaders(t *testing.T) {
	assert.Empty(t, FormatTable(nil, [][]string{{"x"}}))
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab  ", padRight("ab", 4))
	assert.Equal(t, "abcdef", padRight("abcdef", 3))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 2, ExitCode(errors.InputError("no records")))
	assert.Equal(t, 2, ExitCode(errors.InvalidParam("bad flag")))
	assert.Equal(t, 1, ExitCode(errors.New(errors.ErrCodeContentStoreFailed, "down")))
}

//Personal.AI order the ending
