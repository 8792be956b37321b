package platform

import (
	"testing"

	"github.com/mj1618/screen-bridge/internal/model"
)

type nopHost struct{}

func (nopHost) CurrentFocus() model.Node { return nil }
func (nopHost) ActiveContentRoot() model.Node { return nil }
func (nopHost) ActivePanel() model.Node { return nil }
func (nopHost) WindowOrigin() (model.Point, error) { return model.Point{}, nil }

func TestProviderValidate_NoHost(t *testing.T) {
	var p *Provider
	if err := p.Validate(); err != ErrUnsupported {
		t.Errorf("expected ErrUnsupported, got: %v", err)
	}
	if err := (&Provider{}).Validate(); err != ErrUnsupported {
		t.Errorf("expected ErrUnsupported, got: %v", err)
	}
}

func TestProviderValidate_NoSpeaker(t *testing.T) {
	p := &Provider{Host: nopHost{}}
	if err := p.Validate(); err == nil {
		t.Fatal("expected error without a speaker")
	}
}

func TestProviderValidate_OK(t *testing.T) {
	p := &Provider{Host: nopHost{}, Speaker: NewSafeSpeaker(nil, nil)}
	if err := p.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
