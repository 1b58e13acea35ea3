package admin

// Object is the erased form of an item: a JSON object whose numbers are kept
// as json.Number.
type Object = map[string]any

// RenderedField is the display form of one field of an item.
type RenderedField struct {
	FieldID     string `json:"field_id"`
	DisplayName string `json:"display_name"`
	Value       string `json:"value"`
}
