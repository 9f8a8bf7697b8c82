package qubika_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/networkteam/contactform-e2e/qubika"
)

func TestFieldSelector(t *testing.T) {
	assert.Equal(t, `[name="firstname"]`, qubika.FieldSelector(qubika.FirstNameField))
	assert.Equal(t, `[name="lastname"]`, qubika.FieldSelector(qubika.LastNameField))
	assert.Equal(t, `[name="email"]`, qubika.FieldSelector(qubika.EmailField))
}

func TestSubmitSelector(t *testing.T) {
	assert.Equal(t, "#hsForm_5e204c31-ede2-4976-a096-6919a081b2df > div.hs_submit.hs-submit > div.actions > input", qubika.SubmitSelector)
}

func TestDefaultTarget(t *testing.T) {
	target := qubika.DefaultTarget()
	assert.Equal(t, "https://www.qubika.com", target.EntryURL)
	assert.Equal(t, "https://qubika.com/", target.CanonicalURL)
}
