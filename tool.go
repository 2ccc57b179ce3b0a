package dreamtable

// Tool is the active editing mode. The set is closed; every tool has an
// entry in the tools table.
type Tool uint8

const (
	ToolNone Tool = iota
	ToolMove
	ToolPencil
	ToolDropper
	ToolFill
	ToolGrid
	ToolCellRef
	ToolCellRefDropper
	ToolEgg
)

type toolInfo struct {
	name   string
	hotkey Key
	icon   string
}

var tools = [...]toolInfo{
	ToolNone:           {name: "none"},
	ToolMove:           {name: "move", hotkey: KeyQ, icon: "res://icons/hand.png"},
	ToolPencil:         {name: "pencil", hotkey: KeyW, icon: "res://icons/pencil.png"},
	ToolDropper:        {name: "dropper", hotkey: KeyE, icon: "res://icons/dropper.png"},
	ToolFill:           {name: "fill", hotkey: KeyI, icon: "res://icons/bucket.png"},
	ToolGrid:           {name: "grid", hotkey: KeyR, icon: "res://icons/grid.png"},
	ToolCellRef:        {name: "cellref", hotkey: KeyT, icon: "res://icons/cellref.png"},
	ToolCellRefDropper: {name: "cellref dropper", hotkey: KeyY, icon: "res://icons/cellref_dropper.png"},
	ToolEgg:            {name: "egg", hotkey: KeyU, icon: "res://icons/egg.png"},
}

// Tools lists the selectable tools in toolbar order.
var Tools = []Tool{
	ToolMove, ToolPencil, ToolDropper, ToolGrid,
	ToolCellRef, ToolCellRefDropper, ToolEgg, ToolFill,
}

func (t Tool) String() string {
	if int(t) < len(tools) {
		return tools[t].name
	}
	return "unknown"
}

// Hotkey returns the key that selects the tool.
func (t Tool) Hotkey() Key {
	if int(t) < len(tools) {
		return tools[t].hotkey
	}
	return KeyNone
}

// Icon returns the resource path of the tool's toolbar icon.
func (t Tool) Icon() string {
	if int(t) < len(tools) {
		return tools[t].icon
	}
	return ""
}

// toolOverride temporarily swaps From for To while Key is held.
type toolOverride struct {
	From Tool
	Key  Key
	To   Tool
}

var toolOverrides = []toolOverride{
	{From: ToolPencil, Key: KeyLeftAlt, To: ToolDropper},
	{From: ToolFill, Key: KeyLeftAlt, To: ToolDropper},
}
