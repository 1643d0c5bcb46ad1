package transform

import (
	"reflect"
	"strings"
)

// Slot is a field that remembers whether it was ever assigned, so that an
// explicit null can be told apart from an absent field.
type Slot struct {
	Value any
	Set   bool
}

func slot(v any) Slot { return Slot{Value: v, Set: true} }

// System is one building-service system together with its current state
// and the modernisations recommended for it.
type System struct {
	Type                      Slot
	Note                      Slot
	ActualEnergeticQuality    *ActualQuality
	RecommendedModernisations []*Recommendation
}

// ActualQuality is the current energetic quality of a System.
type ActualQuality struct {
	Quality Slot
	Note    Slot
}

// Cleared reports whether the quality was recorded as an empty string.
// A cleared block is rendered as null.
func (a *ActualQuality) Cleared() bool {
	s, ok := a.Quality.Value.(string)
	return a.Quality.Set && ok && s == ""
}

// Recommendation groups the system elements proposed under one
// modernisation category. A nil Category is the category-less group.
type Recommendation struct {
	Category       any
	SystemElements []*Element
}

// Element is one recommended system element.
type Element struct {
	Name             Slot
	Description      Slot
	IsExcellentLevel Slot
}

func (s *System) MarshalJSON() ([]byte, error) {
	o := NewObject()
	setSlot(o, "buildingServiceSystemType", s.Type)
	setSlot(o, "note", s.Note)
	if s.ActualEnergeticQuality != nil {
		if s.ActualEnergeticQuality.Cleared() {
			o.Set("actualEnergeticQuality", nil)
		} else {
			o.Set("actualEnergeticQuality", s.ActualEnergeticQuality)
		}
	}
	if len(s.RecommendedModernisations) > 0 {
		o.Set("recommendedModernisations", s.RecommendedModernisations)
	}
	return o.MarshalJSON()
}

func (a *ActualQuality) MarshalJSON() ([]byte, error) {
	o := NewObject()
	setSlot(o, "quality", a.Quality)
	setSlot(o, "note", a.Note)
	return o.MarshalJSON()
}

func (r *Recommendation) MarshalJSON() ([]byte, error) {
	o := NewObject()
	if r.Category != nil {
		o.Set("modernisationCategory", r.Category)
	}
	elems := r.SystemElements
	if elems == nil {
		elems = []*Element{}
	}
	o.Set("systemElements", elems)
	return o.MarshalJSON()
}

func (e *Element) MarshalJSON() ([]byte, error) {
	o := NewObject()
	setSlot(o, "name", e.Name)
	setSlot(o, "description", e.Description)
	setSlot(o, "isExcellentLevel", e.IsExcellentLevel)
	return o.MarshalJSON()
}

func setSlot(o *Object, key string, s Slot) {
	if s.Set {
		o.Set(key, s.Value)
	}
}

// systemBuilder is the running state of BuildSystems. A system is only
// emitted when the next system type marker arrives or the stream ends.
type systemBuilder struct {
	out []*System

	system  *System
	actual  *ActualQuality
	groups  []*Recommendation
	group   *Recommendation
	element *Element
}

// BuildSystems rebuilds building-service system records from the systems
// stream, consuming entries strictly in input order.
func BuildSystems(entries []Entry) []*System {
	b := &systemBuilder{}
	for _, e := range entries {
		b.feed(e)
	}
	b.finishSystem()
	return b.out
}

func (b *systemBuilder) feed(e Entry) {
	value := Normalize(e.Value)
	suffix := strings.TrimLeft(strings.TrimPrefix(e.Key, SystemsKey+Separator), "_")
	parts := strings.Split(suffix, Separator)

	switch parts[0] {
	case "buildingServiceSystemType":
		b.finishSystem()
		b.reset()
		b.system = &System{Type: slot(value)}

	case "note":
		if len(parts) != 1 {
			return
		}
		if b.system == nil {
			b.system = &System{}
		}
		b.system.Note = slot(value)

	case "actualEnergeticQuality":
		if len(parts) != 2 {
			return
		}
		switch parts[1] {
		case "quality":
			b.actualQuality().Quality = slot(value)
		case "note":
			b.actualQuality().Note = slot(value)
		}

	case "recommendedModernisations":
		switch {
		case len(parts) == 2 && parts[1] == "modernisationCategory":
			b.finishElement()
			b.selectGroup(value)
		case len(parts) == 3 && parts[1] == "systemElements":
			switch parts[2] {
			case "name":
				b.finishElement()
				b.element = &Element{Name: slot(value)}
			case "description":
				b.openElement().Description = slot(value)
			case "isExcellentLevel":
				b.openElement().IsExcellentLevel = slot(value)
			}
		}
	}
}

func (b *systemBuilder) actualQuality() *ActualQuality {
	if b.actual == nil {
		b.actual = &ActualQuality{}
	}
	return b.actual
}

func (b *systemBuilder) openElement() *Element {
	if b.element == nil {
		b.element = &Element{}
	}
	return b.element
}

// selectGroup makes the group for category current, creating it on first
// use. Empty and null categories share the category-less group.
func (b *systemBuilder) selectGroup(category any) {
	if s, ok := category.(string); ok && s == "" {
		category = nil
	}
	for _, g := range b.groups {
		if reflect.DeepEqual(g.Category, category) {
			b.group = g
			return
		}
	}
	g := &Recommendation{Category: category, SystemElements: []*Element{}}
	b.groups = append(b.groups, g)
	b.group = g
}

func (b *systemBuilder) finishElement() {
	if b.element == nil {
		return
	}
	if b.group == nil {
		b.selectGroup(nil)
	}
	b.group.SystemElements = append(b.group.SystemElements, b.element)
	b.element = nil
}

// finishSystem flushes the open element, attaches the accumulated blocks
// and emits the current system. Without an open system it does nothing.
func (b *systemBuilder) finishSystem() {
	if b.system == nil {
		return
	}
	b.finishElement()
	if b.actual != nil {
		b.system.ActualEnergeticQuality = b.actual
	}
	if len(b.groups) > 0 {
		b.system.RecommendedModernisations = b.groups
	}
	b.out = append(b.out, b.system)
	b.reset()
}

func (b *systemBuilder) reset() {
	b.system = nil
	b.actual = nil
	b.groups = nil
	b.group = nil
	b.element = nil
}
