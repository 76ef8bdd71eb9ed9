package app

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/midgard-globe/internal/globe/state"
)

var keyBindings = map[sdl.Keycode]state.Key{
	sdl.K_1:      state.KeyColor,
	sdl.K_2:      state.KeySpecular,
	sdl.K_3:      state.KeyNight,
	sdl.K_4:      state.KeyNormal,
	sdl.K_5:      state.KeyClouds,
	sdl.K_DOWN:   state.KeyZoomOut,
	sdl.K_UP:     state.KeyZoomIn,
	sdl.K_SPACE:  state.KeyPause,
	sdl.K_l:      state.KeyFilterLinear,
	sdl.K_n:      state.KeyFilterNearest,
	sdl.K_a:      state.KeyAnisoHigh,
	sdl.K_s:      state.KeyAnisoLow,
	sdl.K_F12:    state.KeyScreenshot,
	sdl.K_ESCAPE: state.KeyQuit,
}

// keyFor maps a key press to a viewer command. Held keys repeat only for zoom.
func keyFor(code sdl.Keycode, repeat bool) state.Key {
	k, ok := keyBindings[code]
	if !ok {
		return state.KeyNone
	}
	if repeat && k != state.KeyZoomIn && k != state.KeyZoomOut {
		return state.KeyNone
	}
	return k
}
