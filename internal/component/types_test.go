package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	assert.Equal(t, "position", Name(TypePosition))
	assert.Equal(t, "tag", Name(TypeTag))
	assert.Equal(t, "", Name(Count))
}
