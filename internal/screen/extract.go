// Package screen converts raw uiautomator XML dumps into a compact,
// decision-ready list of interactive elements.
package screen

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Suggested actions attached to extracted elements.
const (
	SuggestTap  = "tap"
	SuggestType = "type"
	SuggestRead = "read"
)

// Element is one interactive UI node, flattened for the decision prompt.
// The JSON field names are part of the prompt contract.
type Element struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`
	Bounds    string `json:"bounds"`
	Center    [2]int `json:"center"`
	Clickable bool   `json:"clickable"`
	Editable  bool   `json:"editable"`
	Action    string `json:"action"`
}

// Extract parses an Android UI hierarchy dump and returns the interactive
// elements in depth-first pre-order. The traversal order is a contract: the
// decision step uses it as its implicit reading order.
//
// A malformed document returns an error; the caller should treat that as
// "screen not ready" rather than "no elements". A single node with unparsable
// bounds is skipped without aborting the pass.
func Extract(xmlContent string) ([]Element, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xmlContent); err != nil {
		return nil, fmt.Errorf("parse ui hierarchy: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, errors.New("parse ui hierarchy: document has no root element")
	}

	var elements []Element
	walk(root, &elements)
	return elements, nil
}

func walk(el *etree.Element, out *[]Element) {
	if e, ok := fromNode(el); ok {
		*out = append(*out, e)
	}
	for _, child := range el.ChildElements() {
		walk(child, out)
	}
}

// fromNode qualifies a single node and builds its element descriptor.
// Empty layout containers with no text, description or interactivity are
// dropped, as are otherwise-qualifying nodes whose bounds do not parse.
func fromNode(el *etree.Element) (Element, bool) {
	clickable := el.SelectAttrValue("clickable", "") == "true"

	// Editable detection is a class-substring heuristic plus the explicit
	// attribute flag. Custom input widgets that match neither are treated
	// as non-editable.
	class := el.SelectAttrValue("class", "")
	editable := strings.Contains(class, "EditText") ||
		strings.Contains(class, "AutoCompleteTextView") ||
		el.SelectAttrValue("editable", "") == "true"

	text := el.SelectAttrValue("text", "")
	desc := el.SelectAttrValue("content-desc", "")

	if !clickable && !editable && text == "" && desc == "" {
		return Element{}, false
	}

	bounds := el.SelectAttrValue("bounds", "")
	x1, y1, x2, y2, err := parseBounds(bounds)
	if err != nil {
		return Element{}, false
	}

	label := text
	if label == "" {
		label = desc
	}

	action := SuggestRead
	switch {
	case editable:
		action = SuggestType
	case clickable:
		action = SuggestTap
	}

	segments := strings.Split(class, ".")

	return Element{
		ID:        el.SelectAttrValue("resource-id", ""),
		Text:      label,
		Type:      segments[len(segments)-1],
		Bounds:    bounds,
		Center:    [2]int{(x1 + x2) / 2, (y1 + y2) / 2},
		Clickable: clickable,
		Editable:  editable,
		Action:    action,
	}, true
}

// parseBounds splits a "[x1,y1][x2,y2]" rectangle into its four coordinates.
func parseBounds(bounds string) (x1, y1, x2, y2 int, err error) {
	s := strings.ReplaceAll(bounds, "][", ",")
	s = strings.ReplaceAll(s, "[", "")
	s = strings.ReplaceAll(s, "]", "")

	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return 0, 0, 0, 0, fmt.Errorf("malformed bounds %q", bounds)
	}

	coords := make([]int, 4)
	for i, p := range parts {
		coords[i], err = strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return 0, 0, 0, 0, fmt.Errorf("malformed bounds %q: %w", bounds, err)
		}
	}
	return coords[0], coords[1], coords[2], coords[3], nil
}

// ContextJSON renders the extracted elements as the SCREEN_CONTEXT block of
// the decision prompt.
func ContextJSON(elements []Element) string {
	if elements == nil {
		elements = []Element{}
	}
	data, err := json.MarshalIndent(elements, "", "  ")
	if err != nil {
		return "[]"
	}
	return string(data)
}
