package configurator

// Actions are the controller operations a panel may trigger.
type Actions interface {
	Navigate(direction int)
	ApplySwatch(index int) error
	ResetCurrentPart() error
}

// Panel renders the selection state of the controller.
type Panel interface {
	// Bind connects the panel controls to the controller.
	Bind(a Actions)
	// ShowPart updates the part label and the "position/total" counter.
	// position is 1-based; total is 0 when nothing can be selected.
	ShowPart(label string, position, total int)
	// MarkSwatch makes index the only active swatch. -1 clears the mark.
	MarkSwatch(index int)
}

type nopPanel struct{}

func (nopPanel) Bind(Actions)              {}
func (nopPanel) ShowPart(string, int, int) {}
func (nopPanel) MarkSwatch(int)            {}
