package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ToSingleLine(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		s    string
		line string
	}{
		"empty": {},
		"multi lines": {
			s:    "{\r\n  \"ip\": \"203.0.113.7\"\n}",
			line: "{ \"ip\": \"203.0.113.7\"}",
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			line := ToSingleLine(testCase.s)

			assert.Equal(t, testCase.line, line)
		})
	}
}
