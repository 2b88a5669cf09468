// internal/group/kind.go
package group

import "fmt"

// Kind identifies one configuration group.
// Declaration order is the canonical apply order.
type Kind int

const (
	KindFeedback Kind = iota
	KindHome
	KindMove
	KindEngine
	KindEntype
	KindPower
	KindSecure
	KindEdges
	KindPID
	KindSyncIn
	KindSyncOut
	KindExtio
	KindBrake
	KindControl
	KindJoystick
	KindCTP
	KindUART
	KindControllerName
	KindEMF
	KindEngineAdvanced
	KindExtended
	KindStageName
	KindStageInformation
	KindStageSettings
	KindMotorInformation
	KindMotorSettings
	KindEncoderInformation
	KindEncoderSettings
	KindHallsensorInformation
	KindHallsensorSettings
	KindGearInformation
	KindGearSettings
	KindAccessories

	kindCount
)

// ---- KIND TABLE ----

// name is used in profile files and logs.
// cmd is the three-letter suffix of the controller command ("s"+cmd / "g"+cmd).
var kindTable = [kindCount]struct {
	name string
	cmd  string
	new  func() Payload
}{
	KindFeedback:              {"feedback", "fbs", func() Payload { return &FeedbackSettings{} }},
	KindHome:                  {"home", "hom", func() Payload { return &HomeSettings{} }},
	KindMove:                  {"move", "mov", func() Payload { return &MoveSettings{} }},
	KindEngine:                {"engine", "eng", func() Payload { return &EngineSettings{} }},
	KindEntype:                {"entype", "ent", func() Payload { return &EntypeSettings{} }},
	KindPower:                 {"power", "pwr", func() Payload { return &PowerSettings{} }},
	KindSecure:                {"secure", "sec", func() Payload { return &SecureSettings{} }},
	KindEdges:                 {"edges", "edg", func() Payload { return &EdgesSettings{} }},
	KindPID:                   {"pid", "pid", func() Payload { return &PIDSettings{} }},
	KindSyncIn:                {"sync_in", "sni", func() Payload { return &SyncInSettings{} }},
	KindSyncOut:               {"sync_out", "sno", func() Payload { return &SyncOutSettings{} }},
	KindExtio:                 {"extio", "eio", func() Payload { return &ExtioSettings{} }},
	KindBrake:                 {"brake", "brk", func() Payload { return &BrakeSettings{} }},
	KindControl:               {"control", "ctl", func() Payload { return &ControlSettings{} }},
	KindJoystick:              {"joystick", "joy", func() Payload { return &JoystickSettings{} }},
	KindCTP:                   {"ctp", "ctp", func() Payload { return &CTPSettings{} }},
	KindUART:                  {"uart", "uar", func() Payload { return &UARTSettings{} }},
	KindControllerName:        {"controller_name", "nmf", func() Payload { return &ControllerName{} }},
	KindEMF:                   {"emf", "emf", func() Payload { return &EMFSettings{} }},
	KindEngineAdvanced:        {"engine_advanced", "eas", func() Payload { return &EngineAdvancedSetup{} }},
	KindExtended:              {"extended", "est", func() Payload { return &ExtendedSettings{} }},
	KindStageName:             {"stage_name", "nme", func() Payload { return &StageName{} }},
	KindStageInformation:      {"stage_information", "sti", func() Payload { return &StageInformation{} }},
	KindStageSettings:         {"stage_settings", "sts", func() Payload { return &StageSettings{} }},
	KindMotorInformation:      {"motor_information", "mti", func() Payload { return &MotorInformation{} }},
	KindMotorSettings:         {"motor_settings", "mts", func() Payload { return &MotorSettings{} }},
	KindEncoderInformation:    {"encoder_information", "eni", func() Payload { return &EncoderInformation{} }},
	KindEncoderSettings:       {"encoder_settings", "ens", func() Payload { return &EncoderSettings{} }},
	KindHallsensorInformation: {"hallsensor_information", "hsi", func() Payload { return &HallsensorInformation{} }},
	KindHallsensorSettings:    {"hallsensor_settings", "hss", func() Payload { return &HallsensorSettings{} }},
	KindGearInformation:       {"gear_information", "gri", func() Payload { return &GearInformation{} }},
	KindGearSettings:          {"gear_settings", "grs", func() Payload { return &GearSettings{} }},
	KindAccessories:           {"accessories", "acc", func() Payload { return &AccessoriesSettings{} }},
}

// Kinds returns every kind in canonical order.
func Kinds() []Kind {
	out := make([]Kind, kindCount)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// Valid reports whether k names a known group.
func (k Kind) Valid() bool {
	return k >= 0 && k < kindCount
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindTable[k].name
}

// SetCommand returns the 4-byte controller command that writes this group.
func (k Kind) SetCommand() string {
	return "s" + kindTable[k].cmd
}

// GetCommand returns the 4-byte controller command that reads this group.
func (k Kind) GetCommand() string {
	return "g" + kindTable[k].cmd
}

// ParseKind resolves a profile-file name ("sync_in") to a Kind.
func ParseKind(name string) (Kind, error) {
	for i := range kindTable {
		if kindTable[i].name == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("group: unknown kind %q", name)
}

// New returns a zero-initialized payload for k.
func New(k Kind) Payload {
	if !k.Valid() {
		return nil
	}
	return kindTable[k].new()
}
