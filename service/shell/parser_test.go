package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	testCases := []struct {
		description string
		line        string
		expect      []string
	}{
		{description: "empty line", line: ""},
		{description: "blank line", line: "   \t  "},
		{description: "single word", line: "help", expect: []string{"help"}},
		{description: "command with args", line: "allocate 1024", expect: []string{"allocate", "1024"}},
		{description: "extra whitespace", line: "  submit \t read   512  ", expect: []string{"submit", "read", "512"}},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, Tokenize(testCase.line), testCase.description)
	}
}

func TestParseSize(t *testing.T) {
	size, err := ParseSize("1024")
	assert.NoError(t, err)
	assert.EqualValues(t, 1024, size)

	for _, invalid := range []string{"", "-1", "abc", "12x"} {
		_, err = ParseSize(invalid)
		assert.Error(t, err, invalid)
	}
}
