package sensor

import "errors"

var (
	ErrRenderTargetSize = errors.New("sensor: render target is not the correct size")
	ErrNoRenderTarget   = errors.New("sensor: sensor has no rendering target")
	ErrNoRenderer       = errors.New("sensor: simulator has no renderer")
	ErrNotVisual        = errors.New("sensor: sensor produces no pixel observation")
	ErrInvalidParameter = errors.New("sensor: invalid parameter")
)
