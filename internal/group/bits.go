// internal/group/bits.go
package group

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Bits is a flag set or enumerated mode field.
// In profile files it may be written as a number, a symbolic name,
// a "A | B" expression or a list of names.
type Bits uint32

// Has reports whether every bit of mask is set.
func (b Bits) Has(mask Bits) bool {
	return b&mask == mask
}

func (b *Bits) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		v, err := parseBitsExpr(n.Value)
		if err != nil {
			return fmt.Errorf("group: line %d: %w", n.Line, err)
		}
		*b = v
		return nil

	case yaml.SequenceNode:
		var acc Bits
		for _, item := range n.Content {
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("group: line %d: flag list items must be scalars", item.Line)
			}
			v, err := parseBitsExpr(item.Value)
			if err != nil {
				return fmt.Errorf("group: line %d: %w", item.Line, err)
			}
			acc |= v
		}
		*b = acc
		return nil

	default:
		return fmt.Errorf("group: line %d: flags must be a number, name or list", n.Line)
	}
}

func (b Bits) MarshalYAML() (interface{}, error) {
	return uint32(b), nil
}

func parseBitsExpr(expr string) (Bits, error) {
	var acc Bits
	for _, term := range strings.Split(expr, "|") {
		term = strings.TrimSpace(term)
		if term == "" {
			return 0, fmt.Errorf("empty flag term in %q", expr)
		}
		if v, ok := flagNames[term]; ok {
			acc |= v
			continue
		}
		n, err := strconv.ParseUint(term, 0, 32)
		if err != nil {
			return 0, fmt.Errorf("unknown flag %q", term)
		}
		acc |= Bits(n)
	}
	return acc, nil
}

// ---- CONTROLLER CONSTANTS ----

const (
	MicrostepModeFull    Bits = 0x01
	MicrostepModeFrac256 Bits = 0x09

	EngineTypeNone      Bits = 0x00
	EngineTypeBrushless Bits = 0x05

	DriverTypeDiscreteFET Bits = 0x01
	DriverTypeExternal    Bits = 0x03

	FeedbackEncoder         Bits = 0x01
	FeedbackEMF             Bits = 0x04
	FeedbackNone            Bits = 0x05
	FeedbackEncoderMediated Bits = 0x06

	MotorTypeBLDC Bits = 0x03

	BorderIsEncoder Bits = 0x01
)

// flagNames maps controller flag and enum names to their values.
// Names are unique across groups.
var flagNames = map[string]Bits{
	// move
	"RPM_DIV_1000": 0x01,

	// engine
	"ENGINE_REVERSE":        0x01,
	"ENGINE_CURRENT_AS_RMS": 0x02,
	"ENGINE_MAX_SPEED":      0x04,
	"ENGINE_ANTIPLAY":       0x08,
	"ENGINE_ACCEL_ON":       0x10,
	"ENGINE_LIMIT_VOLT":     0x20,
	"ENGINE_LIMIT_CURR":     0x40,
	"ENGINE_LIMIT_RPM":      0x80,

	"MICROSTEP_MODE_FULL":     0x01,
	"MICROSTEP_MODE_FRAC_2":   0x02,
	"MICROSTEP_MODE_FRAC_4":   0x03,
	"MICROSTEP_MODE_FRAC_8":   0x04,
	"MICROSTEP_MODE_FRAC_16":  0x05,
	"MICROSTEP_MODE_FRAC_32":  0x06,
	"MICROSTEP_MODE_FRAC_64":  0x07,
	"MICROSTEP_MODE_FRAC_128": 0x08,
	"MICROSTEP_MODE_FRAC_256": 0x09,

	// entype
	"ENGINE_TYPE_NONE":      0x00,
	"ENGINE_TYPE_DC":        0x01,
	"ENGINE_TYPE_2DC":       0x02,
	"ENGINE_TYPE_STEP":      0x03,
	"ENGINE_TYPE_TEST":      0x04,
	"ENGINE_TYPE_BRUSHLESS": 0x05,

	"DRIVER_TYPE_DISCRETE_FET": 0x01,
	"DRIVER_TYPE_INTEGRATE":    0x02,
	"DRIVER_TYPE_EXTERNAL":     0x03,

	// power
	"POWER_REDUCT_ENABLED": 0x01,
	"POWER_OFF_ENABLED":    0x02,
	"POWER_SMOOTH_CURRENT": 0x04,

	// secure
	"ALARM_ON_DRIVER_OVERHEATING":  0x01,
	"LOW_UPWR_PROTECTION":          0x02,
	"H_BRIDGE_ALERT":               0x04,
	"ALARM_ON_BORDERS_SWAP_MISSET": 0x08,
	"ALARM_FLAGS_STICKING":         0x10,
	"USB_BREAK_RECONNECT":          0x20,
	"ALARM_WINDING_MISMATCH":       0x40,
	"ALARM_ENGINE_RESPONSE":        0x80,

	// feedback
	"FEEDBACK_ENCODER":               0x01,
	"FEEDBACK_EMF":                   0x04,
	"FEEDBACK_NONE":                  0x05,
	"FEEDBACK_ENCODER_MEDIATED":      0x06,
	"FEEDBACK_ENC_REVERSE":           0x01,
	"FEEDBACK_ENC_TYPE_BITS":         0xC0,
	"FEEDBACK_ENC_TYPE_AUTO":         0x00,
	"FEEDBACK_ENC_TYPE_SINGLE_ENDED": 0x40,
	"FEEDBACK_ENC_TYPE_DIFFERENTIAL": 0x80,

	// sync
	"SYNCIN_ENABLED":      0x01,
	"SYNCIN_INVERT":       0x02,
	"SYNCIN_GOTOPOSITION": 0x04,

	"SYNCOUT_ENABLED":  0x01,
	"SYNCOUT_STATE":    0x02,
	"SYNCOUT_INVERT":   0x04,
	"SYNCOUT_IN_STEPS": 0x08,
	"SYNCOUT_ONSTART":  0x10,
	"SYNCOUT_ONSTOP":   0x20,
	"SYNCOUT_ONPERIOD": 0x40,

	// extio
	"EXTIO_SETUP_OUTPUT":            0x01,
	"EXTIO_SETUP_INVERT":            0x02,
	"EXTIO_SETUP_MODE_IN_BITS":      0x0F,
	"EXTIO_SETUP_MODE_IN_NOP":       0x00,
	"EXTIO_SETUP_MODE_IN_STOP":      0x01,
	"EXTIO_SETUP_MODE_IN_PWOF":      0x02,
	"EXTIO_SETUP_MODE_IN_MOVR":      0x03,
	"EXTIO_SETUP_MODE_IN_HOME":      0x04,
	"EXTIO_SETUP_MODE_IN_ALARM":     0x05,
	"EXTIO_SETUP_MODE_OUT_BITS":     0xF0,
	"EXTIO_SETUP_MODE_OUT_OFF":      0x00,
	"EXTIO_SETUP_MODE_OUT_ON":       0x10,
	"EXTIO_SETUP_MODE_OUT_MOVING":   0x20,
	"EXTIO_SETUP_MODE_OUT_ALARM":    0x30,
	"EXTIO_SETUP_MODE_OUT_MOTOR_ON": 0x40,

	// edges
	"BORDER_IS_ENCODER":             0x01,
	"BORDER_STOP_LEFT":              0x02,
	"BORDER_STOP_RIGHT":             0x04,
	"BORDERS_SWAP_MISSET_DETECTION": 0x08,

	"ENDER_SWAP":           0x01,
	"ENDER_SW1_ACTIVE_LOW": 0x02,
	"ENDER_SW2_ACTIVE_LOW": 0x04,

	// brake
	"BRAKE_ENABLED":    0x01,
	"BRAKE_ENG_PWROFF": 0x02,

	// control / joystick
	"CONTROL_MODE_BITS":             0x03,
	"CONTROL_MODE_OFF":              0x00,
	"CONTROL_MODE_JOY":              0x01,
	"CONTROL_MODE_LR":               0x02,
	"CONTROL_BTN_LEFT_PUSHED_OPEN":  0x04,
	"CONTROL_BTN_RIGHT_PUSHED_OPEN": 0x08,

	"JOY_REVERSE": 0x01,

	// ctp
	"CTP_ENABLED":          0x01,
	"CTP_BASE":             0x02,
	"CTP_ALARM_ON_ERROR":   0x04,
	"REV_SENS_INV":         0x08,
	"CTP_ERROR_CORRECTION": 0x10,

	// home
	"HOME_DIR_FIRST":        0x001,
	"HOME_DIR_SECOND":       0x002,
	"HOME_MV_SEC_EN":        0x004,
	"HOME_HALF_MV":          0x008,
	"HOME_STOP_FIRST_BITS":  0x030,
	"HOME_STOP_FIRST_REV":   0x010,
	"HOME_STOP_FIRST_SYN":   0x020,
	"HOME_STOP_FIRST_LIM":   0x030,
	"HOME_STOP_SECOND_BITS": 0x0C0,
	"HOME_STOP_SECOND_REV":  0x040,
	"HOME_STOP_SECOND_SYN":  0x080,
	"HOME_STOP_SECOND_LIM":  0x0C0,
	"HOME_USE_FAST":         0x100,

	// uart
	"UART_PARITY_BITS":      0x03,
	"UART_PARITY_BIT_EVEN":  0x00,
	"UART_PARITY_BIT_ODD":   0x01,
	"UART_PARITY_BIT_SPACE": 0x02,
	"UART_PARITY_BIT_MARK":  0x03,
	"UART_PARITY_BIT_USE":   0x04,
	"UART_STOP_BIT":         0x08,

	// controller name
	"EEPROM_PRECEDENCE": 0x01,

	// emf
	"BACK_EMF_INDUCTANCE_AUTO": 0x01,
	"BACK_EMF_RESISTANCE_AUTO": 0x02,
	"BACK_EMF_KM_AUTO":         0x04,

	// motor / encoder / accessories
	"MOTOR_TYPE_UNKNOWN": 0x00,
	"MOTOR_TYPE_STEP":    0x01,
	"MOTOR_TYPE_DC":      0x02,
	"MOTOR_TYPE_BLDC":    0x03,

	"ENCSET_DIFFERENTIAL_OUTPUT":          0x001,
	"ENCSET_PUSHPULL_OUTPUT":              0x004,
	"ENCSET_INDEXCHANNEL_PRESENT":         0x010,
	"ENCSET_REVOLUTIONSENSOR_PRESENT":     0x040,
	"ENCSET_REVOLUTIONSENSOR_ACTIVE_HIGH": 0x100,

	"MB_AVAILABLE":    0x01,
	"MB_POWERED_HOLD": 0x02,

	"TS_TYPE_BITS":          0x07,
	"TS_TYPE_UNKNOWN":       0x00,
	"TS_TYPE_THERMOCOUPLE":  0x01,
	"TS_TYPE_SEMICONDUCTOR": 0x02,
	"TS_AVAILABLE":          0x08,

	"LS_ON_SW1_AVAILABLE": 0x01,
	"LS_ON_SW2_AVAILABLE": 0x02,
	"LS_SW1_ACTIVE_LOW":   0x04,
	"LS_SW2_ACTIVE_LOW":   0x08,
	"LS_SHORTED":          0x10,
}
