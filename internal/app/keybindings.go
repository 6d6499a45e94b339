package app

import (
	"os"
	"slices"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/treykane/logicalroot/internal/config"
)

// ---------------------------------------------------------------------------
// Action constants
// ---------------------------------------------------------------------------
//
// Each constant below identifies a user-triggerable action on the canvas.
// The user presses a key, the key is looked up in the keyToAction map, and
// the resulting action string is dispatched in handleCanvasAction.
//
// Default key assignments are declared in defaultActionKeys. Users can
// override any assignment via the "keybindings" map in config.json or via an
// external keymap file (default: ~/.logicalroot/keymap.json).
// ---------------------------------------------------------------------------

const (
	// actionSelectPrev moves the selection to the previous visible node.
	actionSelectPrev = "select.prev"

	// actionSelectNext moves the selection to the next visible node.
	actionSelectNext = "select.next"

	// actionSelectParent moves the selection to the parent node.
	actionSelectParent = "select.parent"

	// actionSelectChild moves to the first child, expanding a collapsed node.
	actionSelectChild = "select.child"

	// actionSelectPrevSibling and actionSelectNextSibling step among siblings.
	actionSelectPrevSibling = "select.sibling.prev"
	actionSelectNextSibling = "select.sibling.next"

	// actionSelectClear drops the selection.
	actionSelectClear = "select.clear"

	// actionAddChild appends an empty child under the selection and starts
	// editing it.
	actionAddChild = "node.add_child"

	// actionEdit starts editing the selected node's label.
	actionEdit = "node.edit"

	// actionDelete removes the selected subtree. The root cannot be deleted.
	actionDelete = "node.delete"

	// actionToggle collapses or expands the selected node.
	actionToggle = "node.toggle"

	// actionZoomIn and actionZoomOut step the canvas scale.
	actionZoomIn  = "view.zoom_in"
	actionZoomOut = "view.zoom_out"

	// actionResetView restores 100% zoom and the default origin.
	actionResetView = "view.reset"

	// actionCenter pans so the selected node sits at the canvas anchor.
	actionCenter = "view.center"

	// Pan actions move the canvas by KeyPanStep cells.
	actionPanLeft  = "view.pan.left"
	actionPanRight = "view.pan.right"
	actionPanUp    = "view.pan.up"
	actionPanDown  = "view.pan.down"

	// actionSuggest asks the assistant for child branches of the selection.
	actionSuggest = "assistant.suggest"

	// actionAudit asks the assistant to review the whole tree.
	actionAudit = "assistant.audit"

	// actionTabNext and actionTabPrev cycle the sidebar tabs.
	actionTabNext = "sidebar.tab.next"
	actionTabPrev = "sidebar.tab.prev"

	// actionExport opens the export preview.
	actionExport = "export.open"

	// actionCopyOutline copies the Markdown outline to the clipboard.
	actionCopyOutline = "outline.copy"

	// actionNewProject closes the tree and returns to the intake form.
	actionNewProject = "project.new"

	// actionHelp toggles the keyboard shortcut reference.
	actionHelp = "help.toggle"

	// actionQuit exits the application.
	actionQuit = "app.quit"
)

// defaultActionKeys maps each action to its factory-default key bindings.
//
// Key strings use the Bubble Tea notation:
//   - Modifier keys: "ctrl+", "alt+", "shift+"
//   - Special keys: "enter", "esc", "tab", "up", "down", "left", "right"
//   - Single characters: "a", "s", "?", etc.
var defaultActionKeys = map[string][]string{
	actionSelectPrev:        {"up", "k"},
	actionSelectNext:        {"down", "j"},
	actionSelectParent:      {"left", "h"},
	actionSelectChild:       {"right", "l"},
	actionSelectPrevSibling: {"shift+k"},
	actionSelectNextSibling: {"shift+j"},
	actionSelectClear:       {"esc"},
	actionAddChild:          {"a", "tab"},
	actionEdit:              {"enter", "e"},
	actionDelete:            {"d", "delete"},
	actionToggle:            {"o"},
	actionZoomIn:            {"+", "="},
	actionZoomOut:           {"-", "_"},
	actionResetView:         {"0"},
	actionCenter:            {"c"},
	actionPanLeft:           {"shift+left", "shift+h"},
	actionPanRight:          {"shift+right", "shift+l"},
	actionPanUp:             {"shift+up"},
	actionPanDown:           {"shift+down"},
	actionSuggest:           {"s"},
	actionAudit:             {"shift+a"},
	actionTabNext:           {"]"},
	actionTabPrev:           {"["},
	actionExport:            {"x"},
	actionCopyOutline:       {"y"},
	actionNewProject:        {"n"},
	actionHelp:              {"?"},
	actionQuit:              {"q", "ctrl+c"},
}

// ---------------------------------------------------------------------------
// Keybinding initialization
// ---------------------------------------------------------------------------

// loadKeybindings initializes the bidirectional key↔action maps from three
// sources, applied in order of increasing priority:
//
//  1. defaultActionKeys, the built-in factory defaults.
//  2. cfg.Keybindings, inline overrides from config.json.
//  3. The keymap file at cfg.KeymapFile, if it exists.
//
// Unknown action names in user overrides are logged as warnings and ignored.
// An override replaces an action's full default key set. Conflicts (two
// actions mapped to the same key) are logged; the first action to claim a key
// wins.
func (m *Model) loadKeybindings(cfg config.Config) {
	m.keyForAction = map[string][]string{}
	for action, keys := range defaultActionKeys {
		m.keyForAction[action] = append([]string(nil), keys...)
	}

	for action, key := range cfg.Keybindings {
		m.applyKeybindingOverride(action, key)
	}

	fileOverrides := loadKeymapFile(cfg.KeymapFile)
	for action, key := range fileOverrides {
		m.applyKeybindingOverride(action, key)
	}

	m.rebuildActionKeyIndex()
}

// loadKeymapFile reads a flat JSON object mapping action strings to key
// strings, for example:
//
//	{
//	    "assistant.suggest": "ctrl+s",
//	    "node.toggle": "z"
//	}
//
// A missing file is not an error. Read or parse failures are logged and
// ignored.
func loadKeymapFile(path string) map[string]string {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			appLog.Warn("read keymap file", "path", path, "error", err)
		}
		return nil
	}
	overrides := map[string]string{}
	if err := json.Unmarshal(data, &overrides); err != nil {
		appLog.Warn("parse keymap file", "path", path, "error", err)
		return nil
	}
	return overrides
}

// applyKeybindingOverride replaces a single action's key set.
func (m *Model) applyKeybindingOverride(action, key string) {
	action = strings.TrimSpace(action)
	key = normalizeKeyString(key)
	if action == "" || key == "" {
		return
	}
	if _, ok := defaultActionKeys[action]; !ok {
		appLog.Warn("ignore unknown keybinding action", "action", action)
		return
	}
	m.keyForAction[action] = []string{key}
}

// rebuildActionKeyIndex constructs the reverse lookup map (keyToAction) from
// the current keyForAction map. Actions are visited in sorted order so the
// winner of a conflict does not depend on map iteration.
func (m *Model) rebuildActionKeyIndex() {
	m.keyToAction = map[string]string{}
	actions := make([]string, 0, len(m.keyForAction))
	for action := range m.keyForAction {
		actions = append(actions, action)
	}
	slices.Sort(actions)
	for _, action := range actions {
		for _, key := range m.keyForAction[action] {
			if key == "" {
				continue
			}
			if existing, ok := m.keyToAction[key]; ok && existing != action {
				appLog.Warn("keybinding conflict ignored", "key", key, "action", action, "existing_action", existing)
				continue
			}
			m.keyToAction[key] = action
		}
	}
}

// ---------------------------------------------------------------------------
// Key string normalization
// ---------------------------------------------------------------------------

// normalizeKeyString converts a user-provided key string into the canonical
// lowercase form used internally by Bubble Tea and the keybinding maps.
//
// A single uppercase letter (e.g. "A") becomes "shift+a" because Bubble Tea
// may report shifted letter keys as uppercase runes.
//
//	normalizeKeyString("Ctrl+P")  → "ctrl+p"
//	normalizeKeyString(" A ")     → "shift+a"
//	normalizeKeyString("")        → ""
func normalizeKeyString(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	if len([]rune(key)) == 1 && strings.ToUpper(key) == key && strings.ToLower(key) != key {
		return "shift+" + strings.ToLower(key)
	}
	return strings.ToLower(key)
}

// actionForKey looks up the action bound to the given key string.
func (m *Model) actionForKey(key string) string {
	if m.keyToAction == nil {
		return ""
	}
	return m.keyToAction[normalizeKeyString(key)]
}

func (m *Model) actionKeyLabels(action string) []string {
	keys, ok := m.keyForAction[action]
	if !ok || len(keys) == 0 {
		return nil
	}
	labels := make([]string, 0, len(keys))
	for _, key := range keys {
		label := humanizeKeyLabel(key)
		if label == "" {
			continue
		}
		if slices.Contains(labels, label) {
			continue
		}
		labels = append(labels, label)
	}
	return labels
}

func (m *Model) primaryActionKey(action, fallback string) string {
	keys := m.actionKeyLabels(action)
	if len(keys) == 0 {
		return fallback
	}
	return keys[0]
}

func (m *Model) allActionKeys(action, fallback string) string {
	keys := m.actionKeyLabels(action)
	if len(keys) == 0 {
		return fallback
	}
	return strings.Join(keys, ", ")
}

func humanizeKeyLabel(key string) string {
	normalized := normalizeKeyString(key)
	if normalized == "" {
		return ""
	}
	special := map[string]string{
		"up":        "↑",
		"down":      "↓",
		"left":      "←",
		"right":     "→",
		"enter":     "Enter",
		"esc":       "Esc",
		"tab":       "Tab",
		"home":      "Home",
		"end":       "End",
		"pgup":      "PgUp",
		"pgdown":    "PgDn",
		"space":     "Space",
		"delete":    "Del",
		"backspace": "Backspace",
	}
	if normalized == "+" {
		return "+"
	}
	parts := strings.Split(normalized, "+")
	for i, part := range parts {
		switch part {
		case "ctrl":
			parts[i] = "Ctrl"
		case "alt":
			parts[i] = "Alt"
		case "shift":
			parts[i] = "Shift"
		case "":
			parts[i] = "+"
		default:
			if label, ok := special[part]; ok {
				parts[i] = label
				continue
			}
			runes := []rune(part)
			if len(runes) == 1 && runes[0] >= 'a' && runes[0] <= 'z' {
				parts[i] = strings.ToUpper(part)
			} else {
				parts[i] = strings.ToUpper(part[:1]) + part[1:]
			}
		}
	}
	return strings.Join(parts, "+")
}
