package sketchpad

import (
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

// AppKey names an observed AppModel field.
type AppKey string

const (
	AppKeyPage        AppKey = "page"
	AppKeyCurrentTool AppKey = "currentTool"
	AppKeySelection   AppKey = "selection"
)

// AppModel is the editor's UI state: the active page, the current tool and
// the selection. Every field write is reported to listeners registered with
// AddListener; the Change key is the field's AppKey.
type AppModel struct {
	page      Guid
	tool      Tool
	selection mapset.Set[Guid]

	observer Observer[*AppModel]
	sel      *Selection
}

// NewAppModel creates a model showing page with the default tool and an empty
// selection.
func NewAppModel(page Guid) *AppModel {
	m := &AppModel{
		page:      page,
		tool:      ToolDefault,
		selection: mapset.NewThreadUnsafeSet[Guid](),
	}
	m.sel = &Selection{model: m}
	return m
}

// AddListener registers fn for every field write.
func (m *AppModel) AddListener(fn func(Change[*AppModel])) ListenerHandle {
	return m.observer.AddListener(fn)
}

// Page returns the guid of the active canvas.
func (m *AppModel) Page() Guid { return m.page }

// SetPage switches the active canvas.
func (m *AppModel) SetPage(page Guid) {
	old := m.page
	m.page = page
	m.emit(AppKeyPage, old, page)
}

// Tool returns the current tool.
func (m *AppModel) Tool() Tool { return m.tool }

// SetTool switches the current tool.
func (m *AppModel) SetTool(t Tool) {
	old := m.tool
	m.tool = t
	m.emit(AppKeyCurrentTool, old, t)
}

// Selection returns the selection helper. All selection writes go through it.
func (m *AppModel) Selection() *Selection { return m.sel }

func (m *AppModel) setSelection(next mapset.Set[Guid]) {
	old := m.selection
	m.selection = next
	m.emit(AppKeySelection, old, next)
}

func (m *AppModel) emit(key AppKey, old, value any) {
	m.observer.Notify(Change[*AppModel]{
		Subject:  m,
		Key:      string(key),
		OldValue: old,
		NewValue: value,
		Kind:     ChangeSet,
	})
}

// Selection is the set of selected guids. The underlying set is replaced, never
// mutated in place, so the OldValue of a selection Change stays intact.
type Selection struct {
	model *AppModel
}

func (s *Selection) set() mapset.Set[Guid] { return s.model.selection }

// Has reports whether guid is selected.
func (s *Selection) Has(guid Guid) bool { return s.set().Contains(guid) }

// Len returns the number of selected guids.
func (s *Selection) Len() int { return s.set().Cardinality() }

// Guids returns the selected guids sorted.
func (s *Selection) Guids() []Guid {
	out := s.set().ToSlice()
	slices.Sort(out)
	return out
}

// Each calls fn for every selected guid in sorted order.
func (s *Selection) Each(fn func(Guid)) {
	for _, g := range s.Guids() {
		fn(g)
	}
}

// Clobber replaces the selection with guid alone.
func (s *Selection) Clobber(guid Guid) {
	s.model.setSelection(mapset.NewThreadUnsafeSet(guid))
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.model.setSelection(mapset.NewThreadUnsafeSet[Guid]())
}

// Delete deselects guid.
func (s *Selection) Delete(guid Guid) {
	next := s.set().Clone()
	next.Remove(guid)
	s.model.setSelection(next)
}

// Subtract deselects every guid in guids in one write.
func (s *Selection) Subtract(guids ...Guid) {
	next := s.set().Clone()
	for _, g := range guids {
		next.Remove(g)
	}
	s.model.setSelection(next)
}

// Add selects guid, first dropping any selected ancestor or descendant of it.
func (s *Selection) Add(guid Guid, scene *Scene) {
	next := s.set().Clone()
	for _, g := range s.SelectedAncestors(guid, scene) {
		next.Remove(g)
	}
	for _, g := range s.SelectedDescendants(guid, scene) {
		next.Remove(g)
	}
	next.Add(guid)
	s.model.setSelection(next)
}

// SelectedAncestors returns the selected guids that have guid below them.
func (s *Selection) SelectedAncestors(guid Guid, scene *Scene) []Guid {
	var out []Guid
	for _, g := range s.Guids() {
		if scene.Has(g) && scene.HasDescendant(g, guid) {
			out = append(out, g)
		}
	}
	return out
}

// SelectedDescendants returns the selected guids below guid.
func (s *Selection) SelectedDescendants(guid Guid, scene *Scene) []Guid {
	if !scene.Has(guid) {
		return nil
	}
	var out []Guid
	for _, g := range s.Guids() {
		if scene.HasDescendant(guid, g) {
			out = append(out, g)
		}
	}
	return out
}
