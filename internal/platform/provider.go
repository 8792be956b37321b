package platform

import "errors"

// Provider bundles the host-facing backends the bridge runs against.
type Provider struct {
	Host     Host
	Speaker  Speaker
	Inputter Inputter
}

// ErrUnsupported is returned when a provider lacks a required backend.
var ErrUnsupported = errors.New("host backend not available")

// Validate checks that the provider can drive the bridge. An Inputter is
// optional; without one the pointer-click activation path is skipped.
func (p *Provider) Validate() error {
	if p == nil || p.Host == nil {
		return ErrUnsupported
	}
	if p.Speaker == nil {
		return errors.New("speech output not available")
	}
	return nil
}
