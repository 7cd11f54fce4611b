// Package history provides undo/redo for byte strings.
//
// Each entry holds the contents before and after one edit, so undoing is a
// matter of restoring a snapshot:
//
//	h := history.NewHistory(100)
//
//	before := s.Bytes()
//	s.AppendString(" world")
//	h.Record("append", before, s.Bytes())
//
//	h.Undo(s) // s is back to its old contents
//	h.Redo(s)
//
// Recording a new edit clears the redo stack. When more than the maximum
// number of entries are recorded the oldest are dropped.
package history
