package schemas_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xkilldash9x/gesture-cli/api/schemas"
)

// TestStructJSONTags pins the JSON field names printed by the CLI and consumed by
// report readers.
func TestStructJSONTags(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name         string
		structRef    interface{}
		expectedTags map[string]string
	}{
		{
			name:         "Point",
			structRef:    schemas.Point{},
			expectedTags: map[string]string{"X": "x", "Y": "y"},
		},
		{
			name:      "Rect",
			structRef: schemas.Rect{},
			expectedTags: map[string]string{
				"X":      "x",
				"Y":      "y",
				"Width":  "width",
				"Height": "height",
			},
		},
		{
			name:      "MouseEventData",
			structRef: schemas.MouseEventData{},
			expectedTags: map[string]string{
				"Type":       "type",
				"X":          "x",
				"Y":          "y",
				"Button":     "button",
				"Buttons":    "buttons",
				"ClickCount": "clickCount",
			},
		},
		{
			name:      "PointerAction",
			structRef: schemas.PointerAction{},
			expectedTags: map[string]string{
				"Kind": "kind",
				"X":    "x,omitempty",
				"Y":    "y,omitempty",
			},
		},
		{
			name:      "ActionSequence",
			structRef: schemas.ActionSequence{},
			expectedTags: map[string]string{
				"Delay":   "delayMs",
				"Actions": "actions",
			},
		},
		{
			name:      "PointerState",
			structRef: schemas.PointerState{},
			expectedTags: map[string]string{
				"Pos":     "pos",
				"Buttons": "buttons",
			},
		},
	}

	for _, tc := range testCases {
		tt := tc
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			structType := reflect.TypeOf(tt.structRef)
			actualTags := make(map[string]string)

			for i := 0; i < structType.NumField(); i++ {
				field := structType.Field(i)
				if jsonTag := field.Tag.Get("json"); jsonTag != "" {
					actualTags[field.Name] = jsonTag
				}
			}
			assert.Equal(t, tt.expectedTags, actualTags, "JSON tags for struct %s do not match expectations", tt.name)
		})
	}
}
