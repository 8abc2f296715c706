package gif

// Options configures a single Play call.
type Options struct {
	// X, Y place the GIF's logical screen origin on the destination
	// framebuffer.
	X, Y int

	// OnFrame, if non-nil, is invoked after each frame is composited and
	// before the inter-frame delay completes.
	OnFrame func(frameIndex int)

	// Clock overrides the inter-frame delay collaborator. Nil uses
	// RealClock{}.
	Clock Clock

	// MaxClearStrip bounds the width/height of a disposal-2 pre-clear
	// strip; strips exceeding it are skipped rather than drawn, matching
	// the legacy 320-pixel sanity cap. Zero means "use the legacy
	// default" (320).
	MaxClearStrip int
}

const defaultMaxClearStrip = 320

func (o Options) maxClearStrip() int {
	if o.MaxClearStrip <= 0 {
		return defaultMaxClearStrip
	}
	return o.MaxClearStrip
}

func (o Options) clock() Clock {
	if o.Clock == nil {
		return RealClock{}
	}
	return o.Clock
}
