package screen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCenterAndSuggestedAction(t *testing.T) {
	const dump = `<?xml version='1.0' encoding='UTF-8'?>
<hierarchy rotation="0">
  <node class="android.widget.Button" clickable="true" text="Connect"
        resource-id="com.example:id/connect" bounds="[100,200][300,400]"/>
</hierarchy>`

	elements, err := Extract(dump)
	require.NoError(t, err)
	require.Len(t, elements, 1)

	el := elements[0]
	assert.Equal(t, "com.example:id/connect", el.ID)
	assert.Equal(t, "Connect", el.Text)
	assert.Equal(t, "Button", el.Type)
	assert.Equal(t, "[100,200][300,400]", el.Bounds)
	assert.Equal(t, [2]int{200, 300}, el.Center)
	assert.True(t, el.Clickable)
	assert.False(t, el.Editable)
	assert.Equal(t, SuggestTap, el.Action)
}

func TestExtractSkipsEmptyLayoutContainers(t *testing.T) {
	const dump = `<hierarchy>
  <node class="android.widget.FrameLayout" clickable="false" text="" content-desc="" bounds="[0,0][1080,1920]"/>
</hierarchy>`

	elements, err := Extract(dump)
	require.NoError(t, err)
	assert.Empty(t, elements)
}

func TestExtractSkipsNodesWithUnparsableBounds(t *testing.T) {
	cases := map[string]string{
		"missing":     ``,
		"garbage":     `bounds="nonsense"`,
		"non-integer": `bounds="[a,b][c,d]"`,
		"short":       `bounds="[1,2]"`,
	}
	for name, attr := range cases {
		t.Run(name, func(t *testing.T) {
			dump := `<hierarchy><node clickable="true" text="Tap me" ` + attr + `/></hierarchy>`
			elements, err := Extract(dump)
			require.NoError(t, err)
			assert.Empty(t, elements, "node with bad bounds must be dropped")
		})
	}
}

func TestExtractLocalBoundsFailureDoesNotAbortPass(t *testing.T) {
	const dump = `<hierarchy>
  <node clickable="true" text="broken" bounds="[oops]"/>
  <node clickable="true" text="fine" bounds="[0,0][10,20]"/>
</hierarchy>`

	elements, err := Extract(dump)
	require.NoError(t, err)
	require.Len(t, elements, 1)
	assert.Equal(t, "fine", elements[0].Text)
}

func TestExtractEditableBeatsClickable(t *testing.T) {
	const dump = `<hierarchy>
  <node class="android.widget.EditText" clickable="true" text="" content-desc="search" bounds="[0,0][100,50]"/>
  <node class="android.widget.AutoCompleteTextView" clickable="false" text="url bar" bounds="[0,50][100,100]"/>
  <node class="custom.widget.Input" editable="true" clickable="true" text="field" bounds="[0,100][100,150]"/>
  <node class="android.widget.TextView" clickable="false" text="just a label" bounds="[0,150][100,200]"/>
</hierarchy>`

	elements, err := Extract(dump)
	require.NoError(t, err)
	require.Len(t, elements, 4)

	assert.Equal(t, SuggestType, elements[0].Action)
	assert.True(t, elements[0].Editable)
	assert.Equal(t, SuggestType, elements[1].Action)
	assert.Equal(t, SuggestType, elements[2].Action)
	assert.Equal(t, SuggestRead, elements[3].Action)
}

func TestExtractLabelFallsBackToContentDescription(t *testing.T) {
	const dump = `<hierarchy>
  <node class="android.widget.ImageButton" clickable="true" text="" content-desc="Open menu" bounds="[0,0][48,48]"/>
</hierarchy>`

	elements, err := Extract(dump)
	require.NoError(t, err)
	require.Len(t, elements, 1)
	assert.Equal(t, "Open menu", elements[0].Text)
}

func TestExtractDepthFirstPreOrder(t *testing.T) {
	const dump = `<hierarchy text="root" bounds="[0,0][10,10]">
  <node text="first" bounds="[0,0][2,2]">
    <node text="first-child" bounds="[0,0][1,1]"/>
  </node>
  <node text="second" bounds="[2,2][4,4]"/>
</hierarchy>`

	elements, err := Extract(dump)
	require.NoError(t, err)

	var order []string
	for _, el := range elements {
		order = append(order, el.Text)
	}
	assert.Equal(t, []string{"root", "first", "first-child", "second"}, order)
}

func TestExtractMalformedDocument(t *testing.T) {
	for name, dump := range map[string]string{
		"truncated": `<hierarchy><node text="x"`,
		"empty":     ``,
	} {
		t.Run(name, func(t *testing.T) {
			elements, err := Extract(dump)
			assert.Error(t, err)
			assert.Empty(t, elements)
		})
	}
}

func TestContextJSON(t *testing.T) {
	assert.Equal(t, "[]", ContextJSON(nil))

	elements, err := Extract(`<hierarchy><node clickable="true" text="ok" bounds="[0,0][4,4]"/></hierarchy>`)
	require.NoError(t, err)

	out := ContextJSON(elements)
	assert.Contains(t, out, `"text": "ok"`)
	assert.Contains(t, out, `"action": "tap"`)
	assert.Contains(t, out, `"center": [`)
}
