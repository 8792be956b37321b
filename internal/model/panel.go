package model

// DetectActivePanel examines the top of the content tree for a modal dialog
// or popup that should scope focus, for hosts that do not designate an
// active panel themselves.
//
// Detection strategies (tried in order):
//  1. Family-based: the last shown child (or grandchild) of a dialog family.
//     Later children draw on top, so the last one is frontmost.
//  2. Bounds-based: a later child that is smaller than the root and centered
//     within it (typical dialog pattern).
//
// Returns nil if no overlay is detected.
func DetectActivePanel(root Node) Node {
	if root == nil {
		return nil
	}
	children := Children(root)
	if len(children) == 0 {
		return nil
	}

	var dialog Node
	for _, child := range children {
		if !IsShown(child) {
			continue
		}
		if MapFamily(child.TypeName()) == FamilyDialog {
			dialog = child
			continue
		}
		for _, gc := range Children(child) {
			if IsShown(gc) && MapFamily(gc.TypeName()) == FamilyDialog {
				dialog = gc
			}
		}
	}
	if dialog != nil {
		return dialog
	}

	rootBounds := root.Bounds()
	for i := len(children) - 1; i >= 1; i-- {
		child := children[i]
		if !IsShown(child) {
			continue
		}
		b := child.Bounds()
		if isOverlaySized(b, rootBounds) && isCentered(b, rootBounds) {
			return child
		}
	}
	return nil
}

// isOverlaySized returns true if the candidate is meaningfully smaller than
// the window (below 80% in at least one dimension).
func isOverlaySized(candidate, window Rect) bool {
	if window.Empty() || candidate.Empty() {
		return false
	}
	return candidate.Width < window.Width*0.8 || candidate.Height < window.Height*0.8
}

// isCentered returns true if the candidate's center is within a quarter of
// the window size from the window's center.
func isCentered(candidate, window Rect) bool {
	wc, cc := window.Center(), candidate.Center()
	dx, dy := cc.X-wc.X, cc.Y-wc.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx <= window.Width/4 && dy <= window.Height/4
}
