package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntityLabelKnown(t *testing.T) {
	assert.True(t, EntityLabelCase.Known())
	assert.True(t, EntityLabelLaw.Known())
	assert.False(t, EntityLabel("STATUTE").Known())
	assert.False(t, EntityLabel("").Known())
}
