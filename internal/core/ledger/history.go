package ledger

// History keeps the undo (past) and redo (future) stacks of one session. The top of each stack
// is its last element. Recreated items get new server ids, so aliases map a recorded id to the
// id it currently lives under.
type History struct {
	past    []Operation
	future  []Operation
	aliases map[string]string
}

func NewHistory() *History {
	return &History{aliases: make(map[string]string)}
}

// Record appends a confirmed operation and drops the redo stack.
func (h *History) Record(op Operation) {
	h.past = append(h.past, op)
	h.future = nil
}

func (h *History) CanUndo() bool { return len(h.past) > 0 }
func (h *History) CanRedo() bool { return len(h.future) > 0 }

func (h *History) UndoDepth() int { return len(h.past) }
func (h *History) RedoDepth() int { return len(h.future) }

func (h *History) peekPast() (Operation, bool) {
	if len(h.past) == 0 {
		return Operation{}, false
	}
	return h.past[len(h.past)-1], true
}

func (h *History) peekFuture() (Operation, bool) {
	if len(h.future) == 0 {
		return Operation{}, false
	}
	return h.future[len(h.future)-1], true
}

// undone moves the top of past onto future.
func (h *History) undone() {
	op := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append(h.future, op)
}

// redone moves the top of future back onto past.
func (h *History) redone() {
	op := h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	h.past = append(h.past, op)
}

// Resolve returns the id the item recorded as id currently has. Recreated keeps every alias
// pointing at the latest id, so this is a single lookup.
func (h *History) Resolve(id string) string {
	if next, ok := h.aliases[id]; ok {
		return next
	}
	return id
}

// Recreated records that the item last known as Resolve(id) now lives under newID. Every id
// already aliased to the old location is repointed so chains never grow past one hop.
func (h *History) Recreated(id, newID string) {
	current := h.Resolve(id)
	if current == newID {
		return
	}
	for from, to := range h.aliases {
		if to == current {
			h.aliases[from] = newID
		}
	}
	h.aliases[current] = newID
	if id != newID {
		h.aliases[id] = newID
	}
	delete(h.aliases, newID)
}
