package receipt

// Window is a top/bottom pixel row range to crop from a source image. The full
// horizontal width is always kept.
type Window struct {
	Top    int
	Bottom int
}

// windowRule maps a range of timestamp offsets to the pixel deltas applied to
// the timestamp and terminator offsets. Rules are evaluated top to bottom and
// the first match wins.
type windowRule struct {
	match  func(start int) bool
	top    int
	bottom int
}

// The table is an empirical fit to one family of receipt screenshots: where
// OCR finds the timestamp in the text stream correlates with where the
// receipt sits on the page. The ranges are deliberately discontinuous; they
// must not be smoothed or interpolated.
var windowRules = []windowRule{
	{match: func(s int) bool { return s < 5 }, top: 0, bottom: 900},
	{match: func(s int) bool { return s > 10 && s < 45 }, top: 600, bottom: 1250},
	{match: func(s int) bool { return s >= 50 }, top: 700, bottom: 1200},
	{match: func(s int) bool { return true }, top: 0, bottom: 700},
}

// ResolveWindow computes the crop window for an image whose OCR text has the
// timestamp pattern starting at start and the terminator phrase starting at
// end.
func ResolveWindow(start, end int) Window {
	for _, r := range windowRules {
		if r.match(start) {
			return Window{Top: start + r.top, Bottom: end + r.bottom}
		}
	}
	// Unreachable: the last rule always matches.
	return Window{Top: start, Bottom: end + 700}
}
