// internal/group/settings.go
package group

// Payload is one typed configuration group.
// Payloads are passed by pointer; New returns a zero value.
type Payload interface {
	Kind() Kind
}

// Field layouts follow the controller structs:
// unsigned fields are uint32, signed fields int32, real fields float32.
// Fields prefixed with U are microstep fractions of the field before them.

type FeedbackSettings struct {
	IPS           uint32 `yaml:"ips"`
	FeedbackType  Bits   `yaml:"feedback_type"`
	FeedbackFlags Bits   `yaml:"feedback_flags"`
	CountsPerTurn uint32 `yaml:"counts_per_turn"`
}

type HomeSettings struct {
	FastHome   uint32 `yaml:"fast_home"`
	UFastHome  uint32 `yaml:"u_fast_home"`
	SlowHome   uint32 `yaml:"slow_home"`
	USlowHome  uint32 `yaml:"u_slow_home"`
	HomeDelta  int32  `yaml:"home_delta"`
	UHomeDelta int32  `yaml:"u_home_delta"`
	HomeFlags  Bits   `yaml:"home_flags"`
}

type MoveSettings struct {
	Speed          uint32 `yaml:"speed"`
	USpeed         uint32 `yaml:"u_speed"`
	Accel          uint32 `yaml:"accel"`
	Decel          uint32 `yaml:"decel"`
	AntiplaySpeed  uint32 `yaml:"antiplay_speed"`
	UAntiplaySpeed uint32 `yaml:"u_antiplay_speed"`
	MoveFlags      Bits   `yaml:"move_flags"`
}

type EngineSettings struct {
	NomVoltage    uint32 `yaml:"nom_voltage"`
	NomCurrent    uint32 `yaml:"nom_current"`
	NomSpeed      uint32 `yaml:"nom_speed"`
	UNomSpeed     uint32 `yaml:"u_nom_speed"`
	EngineFlags   Bits   `yaml:"engine_flags"`
	Antiplay      int32  `yaml:"antiplay"`
	MicrostepMode Bits   `yaml:"microstep_mode"`
	StepsPerRev   uint32 `yaml:"steps_per_rev"`
}

type EntypeSettings struct {
	EngineType Bits `yaml:"engine_type"`
	DriverType Bits `yaml:"driver_type"`
}

type PowerSettings struct {
	HoldCurrent     uint32 `yaml:"hold_current"`
	CurrReductDelay uint32 `yaml:"curr_reduct_delay"`
	PowerOffDelay   uint32 `yaml:"power_off_delay"`
	CurrentSetTime  uint32 `yaml:"current_set_time"`
	PowerFlags      Bits   `yaml:"power_flags"`
}

type SecureSettings struct {
	LowUpwrOff   uint32 `yaml:"low_upwr_off"`
	CriticalIpwr uint32 `yaml:"critical_ipwr"`
	CriticalUpwr uint32 `yaml:"critical_upwr"`
	CriticalT    uint32 `yaml:"critical_t"`
	CriticalIusb uint32 `yaml:"critical_iusb"`
	CriticalUusb uint32 `yaml:"critical_uusb"`
	MinimumUusb  uint32 `yaml:"minimum_uusb"`
	Flags        Bits   `yaml:"flags"`
}

type EdgesSettings struct {
	BorderFlags  Bits  `yaml:"border_flags"`
	EnderFlags   Bits  `yaml:"ender_flags"`
	LeftBorder   int32 `yaml:"left_border"`
	ULeftBorder  int32 `yaml:"u_left_border"`
	RightBorder  int32 `yaml:"right_border"`
	URightBorder int32 `yaml:"u_right_border"`
}

type PIDSettings struct {
	KpU uint32  `yaml:"kpu"`
	KiU uint32  `yaml:"kiu"`
	KdU uint32  `yaml:"kdu"`
	Kpf float32 `yaml:"kpf"`
	Kif float32 `yaml:"kif"`
	Kdf float32 `yaml:"kdf"`
}

type SyncInSettings struct {
	SyncInFlags Bits   `yaml:"sync_in_flags"`
	ClutterTime uint32 `yaml:"clutter_time"`
	Position    int32  `yaml:"position"`
	UPosition   int32  `yaml:"u_position"`
	Speed       uint32 `yaml:"speed"`
	USpeed      uint32 `yaml:"u_speed"`
}

type SyncOutSettings struct {
	SyncOutFlags      Bits   `yaml:"sync_out_flags"`
	SyncOutPulseSteps uint32 `yaml:"sync_out_pulse_steps"`
	SyncOutPeriod     uint32 `yaml:"sync_out_period"`
	Accuracy          uint32 `yaml:"accuracy"`
	UAccuracy         uint32 `yaml:"u_accuracy"`
}

type ExtioSettings struct {
	SetupFlags Bits `yaml:"setup_flags"`
	ModeFlags  Bits `yaml:"mode_flags"`
}

type BrakeSettings struct {
	T1         uint32 `yaml:"t1"`
	T2         uint32 `yaml:"t2"`
	T3         uint32 `yaml:"t3"`
	T4         uint32 `yaml:"t4"`
	BrakeFlags Bits   `yaml:"brake_flags"`
}

type ControlSettings struct {
	MaxSpeed       [10]uint32 `yaml:"max_speed"`
	UMaxSpeed      [10]uint32 `yaml:"u_max_speed"`
	Timeout        [9]uint32  `yaml:"timeout"`
	MaxClickTime   uint32     `yaml:"max_click_time"`
	Flags          Bits       `yaml:"flags"`
	DeltaPosition  int32      `yaml:"delta_position"`
	UDeltaPosition int32      `yaml:"u_delta_position"`
}

type JoystickSettings struct {
	JoyLowEnd  uint32 `yaml:"joy_low_end"`
	JoyCenter  uint32 `yaml:"joy_center"`
	JoyHighEnd uint32 `yaml:"joy_high_end"`
	ExpFactor  uint32 `yaml:"exp_factor"`
	DeadZone   uint32 `yaml:"dead_zone"`
	JoyFlags   Bits   `yaml:"joy_flags"`
}

type CTPSettings struct {
	CTPMinError uint32 `yaml:"ctp_min_error"`
	CTPFlags    Bits   `yaml:"ctp_flags"`
}

type UARTSettings struct {
	Speed      uint32 `yaml:"speed"`
	SetupFlags Bits   `yaml:"setup_flags"`
}

type ControllerName struct {
	ControllerName Text16 `yaml:"controller_name"`
	CtrlFlags      Bits   `yaml:"ctrl_flags"`
}

type EMFSettings struct {
	L            float32 `yaml:"l"`
	R            float32 `yaml:"r"`
	Km           float32 `yaml:"km"`
	BackEMFFlags Bits    `yaml:"back_emf_flags"`
}

// EngineAdvancedSetup tunes the step closed-loop regulator.
type EngineAdvancedSetup struct {
	StepCloseLoopKw     uint32 `yaml:"stepcloseloop_kw"`
	StepCloseLoopKpLow  uint32 `yaml:"stepcloseloop_kp_low"`
	StepCloseLoopKpHigh uint32 `yaml:"stepcloseloop_kp_high"`
}

type ExtendedSettings struct {
	Param1 uint32 `yaml:"param1"`
}

type StageName struct {
	PositionerName Text16 `yaml:"positioner_name"`
}

// Information is the manufacturer/part-number pair shared by the
// stage, motor, encoder, hall sensor and gear information groups.
type Information struct {
	Manufacturer Text16 `yaml:"manufacturer"`
	PartNumber   Text24 `yaml:"part_number"`
}

type StageInformation struct {
	Information `yaml:",inline"`
}

type StageSettings struct {
	LeadScrewPitch         float32 `yaml:"lead_screw_pitch"`
	Units                  Text8   `yaml:"units"`
	MaxSpeed               float32 `yaml:"max_speed"`
	TravelRange            float32 `yaml:"travel_range"`
	SupplyVoltageMin       float32 `yaml:"supply_voltage_min"`
	SupplyVoltageMax       float32 `yaml:"supply_voltage_max"`
	MaxCurrentConsumption  float32 `yaml:"max_current_consumption"`
	HorizontalLoadCapacity float32 `yaml:"horizontal_load_capacity"`
	VerticalLoadCapacity   float32 `yaml:"vertical_load_capacity"`
}

type MotorInformation struct {
	Information `yaml:",inline"`
}

type MotorSettings struct {
	MotorType              Bits    `yaml:"motor_type"`
	ReservedField          uint32  `yaml:"reserved_field"`
	Poles                  uint32  `yaml:"poles"`
	Phases                 uint32  `yaml:"phases"`
	NominalVoltage         float32 `yaml:"nominal_voltage"`
	NominalCurrent         float32 `yaml:"nominal_current"`
	NominalSpeed           float32 `yaml:"nominal_speed"`
	NominalTorque          float32 `yaml:"nominal_torque"`
	NominalPower           float32 `yaml:"nominal_power"`
	WindingResistance      float32 `yaml:"winding_resistance"`
	WindingInductance      float32 `yaml:"winding_inductance"`
	RotorInertia           float32 `yaml:"rotor_inertia"`
	StallTorque            float32 `yaml:"stall_torque"`
	DetentTorque           float32 `yaml:"detent_torque"`
	TorqueConstant         float32 `yaml:"torque_constant"`
	SpeedConstant          float32 `yaml:"speed_constant"`
	SpeedTorqueGradient    float32 `yaml:"speed_torque_gradient"`
	MechanicalTimeConstant float32 `yaml:"mechanical_time_constant"`
	MaxSpeed               float32 `yaml:"max_speed"`
	MaxCurrent             float32 `yaml:"max_current"`
	MaxCurrentTime         float32 `yaml:"max_current_time"`
	NoLoadCurrent          float32 `yaml:"no_load_current"`
	NoLoadSpeed            float32 `yaml:"no_load_speed"`
}

type EncoderInformation struct {
	Information `yaml:",inline"`
}

type EncoderSettings struct {
	MaxOperatingFrequency float32 `yaml:"max_operating_frequency"`
	SupplyVoltageMin      float32 `yaml:"supply_voltage_min"`
	SupplyVoltageMax      float32 `yaml:"supply_voltage_max"`
	MaxCurrentConsumption float32 `yaml:"max_current_consumption"`
	PPR                   uint32  `yaml:"ppr"`
	EncoderSettings       Bits    `yaml:"encoder_settings"`
}

type HallsensorInformation struct {
	Information `yaml:",inline"`
}

type HallsensorSettings struct {
	MaxOperatingFrequency float32 `yaml:"max_operating_frequency"`
	SupplyVoltageMin      float32 `yaml:"supply_voltage_min"`
	SupplyVoltageMax      float32 `yaml:"supply_voltage_max"`
	MaxCurrentConsumption float32 `yaml:"max_current_consumption"`
	PPR                   uint32  `yaml:"ppr"`
}

type GearInformation struct {
	Information `yaml:",inline"`
}

type GearSettings struct {
	ReductionIn       float32 `yaml:"reduction_in"`
	ReductionOut      float32 `yaml:"reduction_out"`
	RatedInputTorque  float32 `yaml:"rated_input_torque"`
	RatedInputSpeed   float32 `yaml:"rated_input_speed"`
	MaxOutputBacklash float32 `yaml:"max_output_backlash"`
	InputInertia      float32 `yaml:"input_inertia"`
	Efficiency        float32 `yaml:"efficiency"`
}

type AccessoriesSettings struct {
	MagneticBrakeInfo     Text24  `yaml:"magnetic_brake_info"`
	MBRatedVoltage        float32 `yaml:"mb_rated_voltage"`
	MBRatedCurrent        float32 `yaml:"mb_rated_current"`
	MBTorque              float32 `yaml:"mb_torque"`
	MBSettings            Bits    `yaml:"mb_settings"`
	TemperatureSensorInfo Text24  `yaml:"temperature_sensor_info"`
	TSMin                 float32 `yaml:"ts_min"`
	TSMax                 float32 `yaml:"ts_max"`
	TSGrad                float32 `yaml:"ts_grad"`
	TSSettings            Bits    `yaml:"ts_settings"`
	LimitSwitchesSettings Bits    `yaml:"limit_switches_settings"`
}

// ---- Kind bindings ----

func (FeedbackSettings) Kind() Kind      { return KindFeedback }
func (HomeSettings) Kind() Kind          { return KindHome }
func (MoveSettings) Kind() Kind          { return KindMove }
func (EngineSettings) Kind() Kind        { return KindEngine }
func (EntypeSettings) Kind() Kind        { return KindEntype }
func (PowerSettings) Kind() Kind         { return KindPower }
func (SecureSettings) Kind() Kind        { return KindSecure }
func (EdgesSettings) Kind() Kind         { return KindEdges }
func (PIDSettings) Kind() Kind           { return KindPID }
func (SyncInSettings) Kind() Kind        { return KindSyncIn }
func (SyncOutSettings) Kind() Kind       { return KindSyncOut }
func (ExtioSettings) Kind() Kind         { return KindExtio }
func (BrakeSettings) Kind() Kind         { return KindBrake }
func (ControlSettings) Kind() Kind       { return KindControl }
func (JoystickSettings) Kind() Kind      { return KindJoystick }
func (CTPSettings) Kind() Kind           { return KindCTP }
func (UARTSettings) Kind() Kind          { return KindUART }
func (ControllerName) Kind() Kind        { return KindControllerName }
func (EMFSettings) Kind() Kind           { return KindEMF }
func (EngineAdvancedSetup) Kind() Kind   { return KindEngineAdvanced }
func (ExtendedSettings) Kind() Kind      { return KindExtended }
func (StageName) Kind() Kind             { return KindStageName }
func (StageInformation) Kind() Kind      { return KindStageInformation }
func (StageSettings) Kind() Kind         { return KindStageSettings }
func (MotorInformation) Kind() Kind      { return KindMotorInformation }
func (MotorSettings) Kind() Kind         { return KindMotorSettings }
func (EncoderInformation) Kind() Kind    { return KindEncoderInformation }
func (EncoderSettings) Kind() Kind       { return KindEncoderSettings }
func (HallsensorInformation) Kind() Kind { return KindHallsensorInformation }
func (HallsensorSettings) Kind() Kind    { return KindHallsensorSettings }
func (GearInformation) Kind() Kind       { return KindGearInformation }
func (GearSettings) Kind() Kind          { return KindGearSettings }
func (AccessoriesSettings) Kind() Kind   { return KindAccessories }
