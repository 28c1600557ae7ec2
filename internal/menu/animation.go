package menu

// Animation hints how a surface should transition. It never affects the
// logical open state.
type Animation int

const (
	AnimationNone Animation = iota
	AnimationFade
	AnimationFull
)

func (a Animation) String() string {
	switch a {
	case AnimationNone:
		return "none"
	case AnimationFade:
		return "fade"
	case AnimationFull:
		return "full"
	default:
		return "unknown"
	}
}

// Surface renders a menu. Show and Hide must return immediately; any
// animation runs after the logical transition has been emitted.
type Surface interface {
	Show(anim Animation)
	Hide(anim Animation)
	// NeedsScroll reports whether the menu's items exceed the space available
	// to it.
	NeedsScroll() bool
}

type nopSurface struct{}

func (nopSurface) Show(Animation)    {}
func (nopSurface) Hide(Animation)    {}
func (nopSurface) NeedsScroll() bool { return false }
