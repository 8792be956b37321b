package model

import "testing"

func TestDetectActivePanel(t *testing.T) {
	t.Run("no overlay", func(t *testing.T) {
		root := node("VisualElement",
			node("Panel").at(0, 0, 800, 600),
		).at(0, 0, 800, 600)
		if got := DetectActivePanel(root); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})

	t.Run("last shown dialog wins", func(t *testing.T) {
		first := node("ModalDialog").named("a")
		second := node("Popup").named("b")
		hidden := node("ModalDialog").named("c").hide()
		root := node("VisualElement", node("Panel"), first, second, hidden)
		if got := DetectActivePanel(root); got != Node(second) {
			t.Errorf("expected second dialog, got %v", got)
		}
	})

	t.Run("dialog one level down", func(t *testing.T) {
		dlg := node("Dialog").named("settings")
		root := node("VisualElement", node("Container", dlg))
		if got := DetectActivePanel(root); got != Node(dlg) {
			t.Errorf("expected nested dialog, got %v", got)
		}
	})

	t.Run("centered smaller child", func(t *testing.T) {
		overlay := node("Panel").at(250, 200, 300, 200)
		root := node("VisualElement",
			node("Panel").at(0, 0, 800, 600),
			overlay,
		).at(0, 0, 800, 600)
		if got := DetectActivePanel(root); got != Node(overlay) {
			t.Errorf("expected overlay, got %v", got)
		}
	})

	t.Run("off-center child", func(t *testing.T) {
		root := node("VisualElement",
			node("Panel").at(0, 0, 800, 600),
			node("Panel").at(0, 0, 100, 50),
		).at(0, 0, 800, 600)
		if got := DetectActivePanel(root); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})

	if DetectActivePanel(nil) != nil {
		t.Error("nil root")
	}
}
