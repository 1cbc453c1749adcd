package gravatar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURL(t *testing.T) {
	// md5("myemailaddress@example.com") из документации Gravatar
	const want = "//www.gravatar.com/avatar/0bc83cb571cd1c50ba6f3e8a78ef1346?s=100&d=retro"

	tests := []struct {
		name  string
		email string
	}{
		{name: "canonical", email: "myemailaddress@example.com"},
		{name: "mixed case", email: "MyEmailAddress@example.com"},
		{name: "surrounding spaces", email: "  myemailaddress@example.com "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, want, URL(tt.email))
		})
	}
}

func TestURL_DifferentEmails(t *testing.T) {
	assert.NotEqual(t, URL("a@x.com"), URL("b@x.com"))
}
