package shell

import (
	"github.com/atomicstack/shell-popup/internal/menu"
	"github.com/atomicstack/shell-popup/internal/stage"
)

// visibleNetworks is how many networks are listed before the rest move into
// a "More..." submenu.
const visibleNetworks = 5

// DefaultNetworks seeds the wireless list.
func DefaultNetworks() []string {
	return []string{"home", "office", "cafe", "library", "airport", "hotel", "train"}
}

type networkMenu struct {
	panel     *Panel
	button    *Button
	menu      *menu.Menu
	wireless  *menu.Item
	networks  *menu.Section
	overflow  *menu.Item
	items     map[string]*menu.Item
	connected string
}

func newNetworkMenu(p *Panel, networks []string) *networkMenu {
	nm := &networkMenu{panel: p, items: make(map[string]*menu.Item)}
	nm.button = p.newButton(MenuNetwork, "Network")
	nm.menu = menu.NewMenu(MenuNetwork, nm.button.Actor())

	nm.wireless = menu.NewSwitchItem("Wireless", true)
	nm.wireless.Toggled.Connect(nm.setEnabled)
	nm.menu.AddMenuItem(nm.wireless)

	nm.networks = menu.NewSection("wireless")
	nm.menu.AddMenuItem(nm.networks)
	for i, name := range networks {
		nm.addNetwork(name, i >= visibleNetworks)
	}

	nm.menu.AddMenuItem(menu.NewSeparator(""))
	nm.menu.AddAction("Network Settings", func(stage.Event) {
		p.emit(Action{Menu: MenuNetwork, ID: "settings", Label: "Network Settings"})
	})

	p.attach(nm.button, nm.menu)
	if len(networks) > 0 {
		nm.connect(networks[0])
	}
	return nm
}

func (nm *networkMenu) addNetwork(name string, overflow bool) {
	item := menu.NewItem(name)
	item.Activated.Connect(func(stage.Event) {
		nm.connect(name)
		nm.panel.emit(Action{Menu: MenuNetwork, ID: "connect", Label: name})
	})
	nm.items[name] = item
	if !overflow {
		nm.networks.AddMenuItem(item)
		return
	}
	if nm.overflow == nil {
		nm.overflow = menu.NewSubmenuItem("More...")
		nm.networks.AddMenuItem(nm.overflow)
	}
	nm.overflow.Submenu().AddMenuItem(item)
}

func (nm *networkMenu) connect(name string) {
	if prev, ok := nm.items[nm.connected]; ok {
		prev.SetStatus("")
	}
	nm.connected = name
	if item, ok := nm.items[name]; ok {
		item.SetStatus("connected")
	}
	nm.wireless.SetStatus(name)
	nm.button.SetLabel(networkLabel(name))
}

// setEnabled shows or hides the network list along with the wireless switch.
func (nm *networkMenu) setEnabled(on bool) {
	for _, item := range nm.networks.Items() {
		if on {
			item.Show()
		} else {
			item.Hide()
		}
	}
	status := nm.connected
	if !on {
		status = "off"
	}
	nm.wireless.SetStatus(status)
	nm.button.SetLabel(networkLabel(status))
	nm.panel.emit(Action{Menu: MenuNetwork, ID: "wireless", Label: "Wireless", Switch: true, On: on})
}

func networkLabel(status string) string {
	if status == "" {
		return "Network"
	}
	return "Network: " + status
}
