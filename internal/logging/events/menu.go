package events

import "github.com/atomicstack/shell-popup/internal/logging"

type MenuTracer struct{}

type ManagerTracer struct{}

type GrabTracer struct{}

var (
	Menu    = MenuTracer{}
	Manager = ManagerTracer{}
	Grab    = GrabTracer{}
)

func (MenuTracer) Open(menu, animation string, items int) {
	logging.Trace("menu.open", map[string]interface{}{"menu": menu, "animation": animation, "items": items})
}

func (MenuTracer) OpenEmpty(menu string) {
	logging.Trace("menu.open-empty", map[string]interface{}{"menu": menu})
}

func (MenuTracer) Close(menu, animation string) {
	logging.Trace("menu.close", map[string]interface{}{"menu": menu, "animation": animation})
}

func (MenuTracer) Activate(menu, item string) {
	logging.Trace("menu.activate", map[string]interface{}{"menu": menu, "item": item})
}

func (MenuTracer) Destroy(menu string) {
	logging.Trace("menu.destroy", map[string]interface{}{"menu": menu})
}

func (ManagerTracer) Register(menu string, total int) {
	logging.Trace("manager.register", map[string]interface{}{"menu": menu, "total": total})
}

func (ManagerTracer) Unregister(menu string, total int) {
	logging.Trace("manager.unregister", map[string]interface{}{"menu": menu, "total": total})
}

func (ManagerTracer) Unmanaged(op, menu string) {
	logging.Trace("manager.unmanaged", map[string]interface{}{"op": op, "menu": menu})
}

func (ManagerTracer) Push(parent, child string, depth int) {
	logging.Trace("manager.push", map[string]interface{}{"parent": parent, "child": child, "depth": depth})
}

func (ManagerTracer) Pop(closed, restored string, depth int) {
	logging.Trace("manager.pop", map[string]interface{}{"closed": closed, "restored": restored, "depth": depth})
}

func (ManagerTracer) Switch(from, to string) {
	logging.Trace("manager.switch", map[string]interface{}{"from": from, "to": to})
}

func (ManagerTracer) CloseChain(reason, active string, depth int) {
	logging.Trace("manager.close-chain", map[string]interface{}{"reason": reason, "active": active, "depth": depth})
}

func (ManagerTracer) Capture(eventType, target, verdict string) {
	logging.Trace("manager.capture", map[string]interface{}{"event": eventType, "target": target, "verdict": verdict})
}

func (GrabTracer) Acquire(region, inputMode string, fromKeynav bool) {
	logging.Trace("grab.acquire", map[string]interface{}{"region": region, "inputMode": inputMode, "fromKeynav": fromKeynav})
}

func (GrabTracer) Refused(region string) {
	logging.Trace("grab.refused", map[string]interface{}{"region": region})
}

func (GrabTracer) Release(region string) {
	logging.Trace("grab.release", map[string]interface{}{"region": region})
}

func (GrabTracer) ModalPush(region string, depth int) {
	logging.Trace("modal.push", map[string]interface{}{"region": region, "depth": depth})
}

func (GrabTracer) ModalPop(region string, depth int) {
	logging.Trace("modal.pop", map[string]interface{}{"region": region, "depth": depth})
}

func (GrabTracer) ModalPopUnknown(region string) {
	logging.Trace("modal.pop-unknown", map[string]interface{}{"region": region})
}
