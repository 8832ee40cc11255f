package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"01712345678", "8801712345678"},
		{"8801712345678", "8801712345678"},
		{"+8801712345678", "8801712345678"},
		{"1712345678", "8801712345678"},
		{"017-1234 5678", "8801712345678"},
		{"", ""},
		{"abc", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizePhone(tc.in), "input %q", tc.in)
	}
}

func TestValidBDPhone(t *testing.T) {
	assert.True(t, ValidBDPhone("8801712345678"))
	assert.False(t, ValidBDPhone("880171234567"))   // too short
	assert.False(t, ValidBDPhone("88017123456789")) // too long
	assert.False(t, ValidBDPhone("8802712345678"))  // not a mobile prefix
	assert.False(t, ValidBDPhone(""))
}

func TestNormalizeThenValidate(t *testing.T) {
	assert.True(t, ValidBDPhone(NormalizePhone("01712-345678")))
	assert.False(t, ValidBDPhone(NormalizePhone("12345")))
}
