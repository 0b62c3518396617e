package action

// Button is the element that triggers an action. Its attributes carry the
// action parameters; Label and Disabled are what the UI shows.
type Button struct {
	Attrs    map[string]string
	Label    string
	Disabled bool

	idle    string
	holding bool
}

// NewButton creates an enabled button with the given label and attributes.
func NewButton(label string, attrs map[string]string) *Button {
	if attrs == nil {
		attrs = make(map[string]string)
	}
	return &Button{Attrs: attrs, Label: label}
}

// Attr returns the attribute value, or "" when absent.
func (b *Button) Attr(key string) string {
	if b == nil || b.Attrs == nil {
		return ""
	}
	return b.Attrs[key]
}

// SetAttr sets an attribute.
func (b *Button) SetAttr(key, value string) {
	if b.Attrs == nil {
		b.Attrs = make(map[string]string)
	}
	b.Attrs[key] = value
}

// hold swaps in a temporary label, remembering the idle one. Nested holds keep
// the first idle label so a repeated copy still reverts to the original text.
func (b *Button) hold(label string) {
	if !b.holding {
		b.idle = b.Label
		b.holding = true
	}
	b.Label = label
}

// release restores the idle label and enables the button.
func (b *Button) release() {
	if b.holding {
		b.Label = b.idle
		b.holding = false
		b.idle = ""
	}
	b.Disabled = false
}
