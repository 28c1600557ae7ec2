package shell

import (
	"testing"

	"github.com/atomicstack/shell-popup/internal/menu"
	"github.com/atomicstack/shell-popup/internal/stage"
)

type recorder struct {
	actions []Action
}

func (r *recorder) record(a Action) {
	r.actions = append(r.actions, a)
}

func (r *recorder) last() Action {
	if len(r.actions) == 0 {
		return Action{}
	}
	return r.actions[len(r.actions)-1]
}

func newTestPanel(t *testing.T) (*Panel, *recorder) {
	t.Helper()
	p := New(stage.New(), Options{UserName: "alice"})
	rec := &recorder{}
	p.OnAction(rec.record)
	return p, rec
}

func press(p *Panel, target *stage.Actor) bool {
	return p.Stage().Dispatch(stage.Event{Type: stage.ButtonPress, Target: target, Button: 1})
}

func key(p *Panel, k stage.Key) bool {
	return p.Stage().Dispatch(stage.Event{Type: stage.KeyPress, Key: k})
}

func itemByLabel(m *menu.Menu, label string) *menu.Item {
	for _, item := range m.Items() {
		if item.Label() == label {
			return item
		}
	}
	return nil
}

func TestPanelBuildsButtonsInOrder(t *testing.T) {
	p, _ := newTestPanel(t)
	buttons := p.Buttons()
	if len(buttons) != 3 {
		t.Fatalf("expected 3 buttons, got %d", len(buttons))
	}
	for i, name := range MenuNames() {
		if buttons[i].Name() != name {
			t.Fatalf("expected button %d to be %s, got %s", i, name, buttons[i].Name())
		}
		if !p.Manager().IsManaged(buttons[i].Menu()) {
			t.Fatalf("expected %s menu to be managed", name)
		}
		if buttons[i].Menu().SourceActor() != buttons[i].Actor() {
			t.Fatalf("expected %s menu to open from its button", name)
		}
	}
	if p.Button(MenuUser).Label() != "alice" {
		t.Fatalf("expected user button labelled alice, got %q", p.Button(MenuUser).Label())
	}
	if p.Button(MenuNetwork).Label() != "Network: home" {
		t.Fatalf("expected network label to show the connection, got %q", p.Button(MenuNetwork).Label())
	}
}

func TestRegistryListsNestedMenus(t *testing.T) {
	p, _ := newTestPanel(t)
	reg := p.Registry()
	for _, id := range []string{"places", "places:usb-stick", "network", "network:more", "user", "user:status"} {
		if _, ok := reg.Find(id); !ok {
			t.Fatalf("expected registry to contain %s, got %v", id, reg.IDs())
		}
	}
}

func TestButtonPressTogglesMenu(t *testing.T) {
	p, _ := newTestPanel(t)
	places := p.Button(MenuPlaces)

	press(p, places.Actor())
	if !places.IsOpen() || !p.Manager().Grabbed() {
		t.Fatalf("expected press to open places and grab")
	}
	if p.Stage().InputMode() != stage.InputFullscreen {
		t.Fatalf("expected fullscreen input while grabbed, got %s", p.Stage().InputMode())
	}
	p.Stage().Dispatch(stage.Event{Type: stage.ButtonRelease, Target: places.Actor(), Button: 1})
	if !places.IsOpen() {
		t.Fatalf("expected release on the button to keep the menu open")
	}

	press(p, places.Actor())
	if places.IsOpen() || p.Manager().Grabbed() {
		t.Fatalf("expected second press to close and release")
	}
	if p.Modal().Depth() != 0 {
		t.Fatalf("expected empty modal stack, got %d", p.Modal().Depth())
	}
}

func TestHoverMovesBetweenButtons(t *testing.T) {
	p, _ := newTestPanel(t)
	places := p.Button(MenuPlaces)
	network := p.Button(MenuNetwork)

	press(p, places.Actor())
	p.Stage().MovePointer(network.Actor(), 10, 0)
	if places.IsOpen() {
		t.Fatalf("expected places to close when hovering network")
	}
	if !network.IsOpen() || p.Manager().ActiveMenu() != network.Menu() {
		t.Fatalf("expected network to become the active menu")
	}
	if p.Modal().Depth() != 1 {
		t.Fatalf("expected the grab to be kept across the switch, depth %d", p.Modal().Depth())
	}
}

func TestPressOnDesktopDismisses(t *testing.T) {
	p, _ := newTestPanel(t)
	press(p, p.Button(MenuUser).Actor())
	if !press(p, p.Desktop()) {
		t.Fatalf("expected the dismissing press to be consumed")
	}
	if p.Button(MenuUser).IsOpen() || p.Manager().Grabbed() {
		t.Fatalf("expected press outside to close the user menu")
	}
}

func TestKeyboardNavigationAcrossPanel(t *testing.T) {
	p, _ := newTestPanel(t)
	places := p.Button(MenuPlaces)
	network := p.Button(MenuNetwork)

	p.FocusButton(places)
	if p.Stage().InputMode() != stage.InputFocused {
		t.Fatalf("expected focused input mode, got %s", p.Stage().InputMode())
	}
	key(p, stage.KeyEnter)
	if !places.IsOpen() {
		t.Fatalf("expected enter to open places")
	}
	if active := places.Menu().ActiveItem(); active == nil || active.Label() != "Home Folder" {
		t.Fatalf("expected first item to be highlighted, got %v", active)
	}

	key(p, stage.KeyRight)
	if places.IsOpen() || !network.IsOpen() {
		t.Fatalf("expected right to move from places to network")
	}
	if active := network.Menu().ActiveItem(); active == nil || active.Label() != "Wireless" {
		t.Fatalf("expected wireless switch to be highlighted, got %v", active)
	}

	key(p, stage.KeyEscape)
	if network.IsOpen() || p.Manager().Grabbed() {
		t.Fatalf("expected escape to close network and release")
	}
	if !network.HasKeyFocus() {
		t.Fatalf("expected focus back on the network button, got %v", p.Stage().KeyFocus())
	}
	if p.Stage().InputMode() != stage.InputFocused {
		t.Fatalf("expected focused input mode restored, got %s", p.Stage().InputMode())
	}

	key(p, stage.KeyLeft)
	if !places.HasKeyFocus() {
		t.Fatalf("expected left on the panel to focus places")
	}
	key(p, stage.KeyEscape)
	if p.Stage().KeyFocus() != nil || p.Stage().InputMode() != stage.InputNormal {
		t.Fatalf("expected escape on the panel to leave keyboard navigation")
	}
}

func TestOpenPathAndChoosePresence(t *testing.T) {
	p, rec := newTestPanel(t)
	user := p.Button(MenuUser)

	if !p.Open("user:status") {
		t.Fatalf("expected user:status to open")
	}
	reg := p.Registry()
	node, _ := reg.Find("user:status")
	status := node.Menu
	if p.Manager().ActiveMenu() != status {
		t.Fatalf("expected status submenu to be active")
	}
	if stack := p.Manager().MenuStack(); len(stack) != 1 || stack[0] != user.Menu() {
		t.Fatalf("expected user menu on the stack, got %d entries", len(stack))
	}

	key(p, stage.KeyDown)
	key(p, stage.KeyEnter)
	if rec.last().ID != "presence" || rec.last().Label != StatusBusy {
		t.Fatalf("expected busy presence action, got %+v", rec.last())
	}
	if status.IsOpen() || user.IsOpen() || p.Manager().Grabbed() {
		t.Fatalf("expected activation to close the whole tree")
	}
	statusItem := itemByLabel(user.Menu(), "Status")
	if statusItem.Status() != StatusBusy {
		t.Fatalf("expected status item to show busy, got %q", statusItem.Status())
	}
}

func TestOpenUnknownPath(t *testing.T) {
	p, _ := newTestPanel(t)
	if p.Open("user:missing") {
		t.Fatalf("expected unknown path to fail")
	}
	if p.Manager().Grabbed() {
		t.Fatalf("expected no grab after a failed open")
	}
}

func TestNotificationsSwitchKeepsMenuOpen(t *testing.T) {
	p, rec := newTestPanel(t)
	user := p.Button(MenuUser)
	p.Open(MenuUser)
	if active := user.Menu().ActiveItem(); active == nil || active.Label() != "Status" {
		t.Fatalf("expected the name row to be skipped, got %v", active)
	}

	key(p, stage.KeyDown)
	key(p, stage.KeySpace)
	if !user.IsOpen() {
		t.Fatalf("expected space on a switch to keep the menu open")
	}
	notifications := itemByLabel(user.Menu(), "Notifications")
	if notifications.State() {
		t.Fatalf("expected notifications switched off")
	}
	if rec.last().Label != StatusBusy {
		t.Fatalf("expected presence to follow notifications, got %+v", rec.last())
	}

	key(p, stage.KeyEnter)
	if user.IsOpen() {
		t.Fatalf("expected enter on a switch to close the menu")
	}
	if !notifications.State() || rec.last().Label != StatusAvailable {
		t.Fatalf("expected notifications back on and presence available, got %+v", rec.last())
	}
}

func TestWirelessSwitchHidesNetworks(t *testing.T) {
	p, rec := newTestPanel(t)
	network := p.Button(MenuNetwork)
	p.Open(MenuNetwork)

	key(p, stage.KeySpace)
	if rec.last().ID != "wireless" || rec.last().On {
		t.Fatalf("expected wireless off action, got %+v", rec.last())
	}
	for _, label := range []string{"home", "office", "More..."} {
		if item := itemByLabel(network.Menu(), label); item.Actor().Visible() {
			t.Fatalf("expected %s hidden with wireless off", label)
		}
	}
	if network.Label() != "Network: off" {
		t.Fatalf("expected button label to show off, got %q", network.Label())
	}

	key(p, stage.KeyDown)
	if active := network.Menu().ActiveItem(); active == nil || active.Label() != "Network Settings" {
		t.Fatalf("expected navigation to skip hidden networks, got %v", active)
	}
}

func TestConnectingMovesStatus(t *testing.T) {
	p, rec := newTestPanel(t)
	network := p.Button(MenuNetwork)
	p.Open(MenuNetwork)

	key(p, stage.KeyDown)
	key(p, stage.KeyDown)
	key(p, stage.KeyEnter)
	if rec.last().ID != "connect" || rec.last().Label != "office" {
		t.Fatalf("expected connect to office, got %+v", rec.last())
	}
	if itemByLabel(network.Menu(), "office").Status() != "connected" {
		t.Fatalf("expected office to be marked connected")
	}
	if itemByLabel(network.Menu(), "home").Status() != "" {
		t.Fatalf("expected home to lose its status")
	}
	if network.Label() != "Network: office" {
		t.Fatalf("expected button label to follow, got %q", network.Label())
	}
}

func TestEjectRemovesDevice(t *testing.T) {
	p, rec := newTestPanel(t)
	if !p.Open("places:usb-stick") {
		t.Fatalf("expected device submenu to open")
	}
	key(p, stage.KeyDown)
	key(p, stage.KeyEnter)
	if rec.last().ID != "device:eject" || rec.last().Label != "USB Stick" {
		t.Fatalf("expected eject action, got %+v", rec.last())
	}
	if p.Manager().Grabbed() || p.Modal().Depth() != 0 {
		t.Fatalf("expected eject to close everything")
	}
	if _, ok := p.Registry().Find("places:usb-stick"); ok {
		t.Fatalf("expected ejected device to leave the registry")
	}
	if itemByLabel(p.Button(MenuPlaces).Menu(), "USB Stick") != nil {
		t.Fatalf("expected device row to be gone")
	}
	if _, ok := p.Registry().Find("places:backup-disk"); !ok {
		t.Fatalf("expected other device to remain")
	}
}

func TestQuitActions(t *testing.T) {
	p, rec := newTestPanel(t)
	item := itemByLabel(p.Button(MenuUser).Menu(), "Log Out")
	p.Open(MenuUser)
	item.Activate(stage.Event{Type: stage.KeyPress, Key: stage.KeyEnter})
	if !rec.last().Quit || rec.last().ID != "log-out" {
		t.Fatalf("expected log out to request quit, got %+v", rec.last())
	}
}

func TestDestroyReleasesGrab(t *testing.T) {
	p, _ := newTestPanel(t)
	p.Open(MenuUser)
	p.Destroy()
	if p.Manager().Grabbed() || p.Modal().Depth() != 0 {
		t.Fatalf("expected destroy to release the grab")
	}
	if len(p.Manager().Menus()) != 0 {
		t.Fatalf("expected every menu unregistered, got %d", len(p.Manager().Menus()))
	}
}
