// FILE: ./internal/browser/humanoid/clickmodel_test.go
package humanoid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/gesture-cli/api/schemas"
)

func TestButtonAction_Apply(t *testing.T) {
	tests := []struct {
		action ButtonAction
		want   []schemas.PointerAction
	}{
		{ButtonNone, nil},
		{ButtonLeftClick, []schemas.PointerAction{{Kind: schemas.ActionClick}}},
		{ButtonLeftHold, []schemas.PointerAction{{Kind: schemas.ActionClickAndHold}}},
		{ButtonLeftRelease, []schemas.PointerAction{{Kind: schemas.ActionRelease}}},
		{ButtonRightClick, []schemas.PointerAction{{Kind: schemas.ActionContextClick}}},
	}
	for _, tt := range tests {
		t.Run(tt.action.String(), func(t *testing.T) {
			seq := tt.action.Apply(schemas.NewActionSequence(0))
			assert.Equal(t, tt.want, seq.Actions)
		})
	}
}

func TestParseButtonAction(t *testing.T) {
	for action, name := range buttonActionNames {
		got, err := ParseButtonAction(name)
		require.NoError(t, err)
		assert.Equal(t, action, got)
	}

	got, err := ParseButtonAction("Left-Hold")
	require.NoError(t, err)
	assert.Equal(t, ButtonLeftHold, got)

	got, err = ParseButtonAction("  ")
	require.NoError(t, err)
	assert.Equal(t, ButtonNone, got)

	_, err = ParseButtonAction("double_click")
	assert.ErrorContains(t, err, "unknown button action")
}
