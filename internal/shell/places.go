package shell

import (
	"github.com/atomicstack/shell-popup/internal/menu"
	"github.com/atomicstack/shell-popup/internal/stage"
)

// DefaultDevices seeds the removable devices section.
func DefaultDevices() []string {
	return []string{"USB Stick", "Backup Disk"}
}

var placeEntries = []struct {
	id    string
	label string
}{
	{"home", "Home Folder"},
	{"desktop", "Desktop"},
	{"documents", "Documents"},
	{"downloads", "Downloads"},
}

type placesMenu struct {
	panel   *Panel
	menu    *menu.Menu
	devices *menu.Section
}

func newPlacesMenu(p *Panel, devices []string) *placesMenu {
	pm := &placesMenu{panel: p}
	b := p.newButton(MenuPlaces, "Places")
	pm.menu = menu.NewMenu(MenuPlaces, b.Actor())
	for _, place := range placeEntries {
		pm.menu.AddAction(place.label, func(stage.Event) {
			p.emit(Action{Menu: MenuPlaces, ID: "open:" + place.id, Label: place.label})
		})
	}
	pm.menu.AddMenuItem(menu.NewSeparator(""))
	pm.devices = menu.NewSection("devices")
	pm.menu.AddMenuItem(pm.devices)
	for _, name := range devices {
		pm.addDevice(name)
	}
	pm.menu.AddMenuItem(menu.NewSeparator(""))
	pm.menu.AddAction("Browse Network", func(stage.Event) {
		p.emit(Action{Menu: MenuPlaces, ID: "open:network", Label: "Browse Network"})
	})

	p.attach(b, pm.menu)
	return pm
}

// addDevice appends a removable device with its open and eject actions.
func (pm *placesMenu) addDevice(name string) *menu.Item {
	device := menu.NewSubmenuItem(name)
	sub := device.Submenu()
	sub.AddAction("Open", func(stage.Event) {
		pm.panel.emit(Action{Menu: MenuPlaces, ID: "device:open", Label: name})
	})
	sub.AddAction("Eject", func(stage.Event) {
		pm.panel.emit(Action{Menu: MenuPlaces, ID: "device:eject", Label: name})
		pm.panel.CloseAll()
		device.Destroy()
	})
	pm.devices.AddMenuItem(device)
	return device
}
