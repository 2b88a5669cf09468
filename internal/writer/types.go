// internal/writer/types.go
package writer

// StatusPlan locates one axis status block in status memory.
type StatusPlan struct {
	AxisID     string
	Endpoint   string
	UnitID     uint8
	BaseSlot   uint16
	DeviceName string
}

// registerWriter is the exact contract the status writer uses.
// IMPORTANT: There must be NO other version of this interface anywhere.
type registerWriter interface {
	WriteRegisters(unitID uint8, addr uint16, regs []uint16) error
}
