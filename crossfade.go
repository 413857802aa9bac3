package fade

// CrossFaded pairs two discrete renderable values, such as images or dash
// patterns, with the weight the renderer uses to draw them over each other.
//
// Declarations of piecewise-constant transitionable properties produce a
// CrossFaded whose To and ToScale describe the current value. A nil
// *CrossFaded, or one with an empty To, is undefined.
type CrossFaded struct {
	From      string  `json:"from" yaml:"from"`
	FromScale float64 `json:"fromScale" yaml:"fromScale"`
	To        string  `json:"to" yaml:"to"`
	ToScale   float64 `json:"toScale" yaml:"toScale"`
	T         float64 `json:"t" yaml:"t"`
}

// defined reports whether c carries a renderable value.
func (c *CrossFaded) defined() bool {
	return c != nil && c.To != ""
}

// InterpolateCrossFade returns a descriptor fading from the current value of
// from to the current value of to by t. It returns nil when either side is
// undefined; the renderer then draws only the defined side.
func InterpolateCrossFade(from, to *CrossFaded, t float64) *CrossFaded {
	if !from.defined() || !to.defined() {
		return nil
	}
	return &CrossFaded{
		From:      from.To,
		FromScale: from.ToScale,
		To:        to.To,
		ToScale:   to.ToScale,
		T:         t,
	}
}
