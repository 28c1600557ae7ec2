package shell

import (
	"github.com/atomicstack/shell-popup/internal/menu"
	"github.com/atomicstack/shell-popup/internal/stage"
)

// Presence values offered by the status chooser.
const (
	StatusAvailable   = "Available"
	StatusBusy        = "Busy"
	StatusInvisible   = "Invisible"
	StatusAway        = "Away"
	StatusIdle        = "Idle"
	StatusUnavailable = "Unavailable"
)

var presenceOrder = []string{
	StatusAvailable,
	StatusBusy,
	StatusInvisible,
	StatusAway,
	StatusIdle,
	StatusUnavailable,
}

type userMenu struct {
	panel         *Panel
	button        *Button
	menu          *menu.Menu
	name          *menu.Item
	status        *menu.Item
	notifications *menu.Item
	presence      string
}

func newUserMenu(p *Panel, userName string) *userMenu {
	um := &userMenu{panel: p}
	um.button = p.newButton(MenuUser, userName)
	um.menu = menu.NewMenu(MenuUser, um.button.Actor())

	account := menu.NewSection("account")
	um.name = menu.NewItem(userName, menu.WithReactive(false))
	account.AddMenuItem(um.name)
	um.status = menu.NewSubmenuItem("Status")
	for _, presence := range presenceOrder {
		um.status.Submenu().AddAction(presence, func(stage.Event) {
			um.setPresence(presence)
		})
	}
	account.AddMenuItem(um.status)
	um.menu.AddMenuItem(account)

	um.notifications = menu.NewSwitchItem("Notifications", true)
	um.notifications.Toggled.Connect(um.notificationsToggled)
	um.menu.AddMenuItem(um.notifications)

	um.menu.AddMenuItem(menu.NewSeparator(""))
	um.addAction("settings", "System Settings", false)
	um.menu.AddMenuItem(menu.NewSeparator(""))
	um.addAction("switch-user", "Switch User", false)
	um.addAction("log-out", "Log Out", true)
	um.addAction("lock", "Lock", false)
	um.menu.AddMenuItem(menu.NewSeparator(""))
	um.addAction("power-off", "Power Off", true)

	p.attach(um.button, um.menu)
	um.setPresence(StatusAvailable)
	return um
}

func (um *userMenu) addAction(id, label string, quit bool) {
	um.menu.AddAction(label, func(stage.Event) {
		um.panel.emit(Action{Menu: MenuUser, ID: id, Label: label, Quit: quit})
	})
}

func (um *userMenu) setPresence(presence string) {
	if um.presence == presence {
		return
	}
	um.presence = presence
	um.status.SetStatus(presence)
	um.panel.emit(Action{Menu: MenuUser, ID: "presence", Label: presence})
}

// notificationsToggled mirrors the switch into the presence: turning
// notifications off marks the user busy, turning them back on restores
// availability.
func (um *userMenu) notificationsToggled(on bool) {
	um.panel.emit(Action{Menu: MenuUser, ID: "notifications", Label: "Notifications", Switch: true, On: on})
	if on {
		um.setPresence(StatusAvailable)
		return
	}
	um.setPresence(StatusBusy)
}
