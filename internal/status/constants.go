// internal/status/constants.go
package status

// Axis status block layout constants.
// These values define the published layout and MUST NOT be configurable.

// ---- BLOCK GEOMETRY ----

// SlotsPerDevice is the fixed number of logical slots per axis.
const SlotsPerDevice = 20

// ---- SLOT INDICES ----

// SlotHealthCode holds the axis health state.
const SlotHealthCode = 0

// SlotLastResult holds the last apply result as a positive code
// (0 ok, 1 error, 2 not implemented, 3 value error, 4 no device).
const SlotLastResult = 1

// SlotGroupsAttempted holds the number of groups the last run tried to set.
const SlotGroupsAttempted = 2

// SlotMismatches holds the number of groups that failed readback.
const SlotMismatches = 3

// ---- RESERVED RANGE ----

// Slots 4-10 are reserved for future use.
const SlotReservedStart = 4
const SlotReservedEnd = 10

// ---- DEVICE NAME ----

// SlotDeviceNameStart is the first slot used for the device name.
// Device name is always placed at the END of the status block.
const SlotDeviceNameStart = 11

// SlotDeviceNameSlots is the number of slots reserved for the device name.
const SlotDeviceNameSlots = 8

// SlotDeviceNameEnd is the last slot used for the device name (inclusive).
const SlotDeviceNameEnd = SlotDeviceNameStart + SlotDeviceNameSlots - 1

// ---- LIMITS ----

// DeviceNameMaxChars is the maximum number of ASCII characters stored for device name.
const DeviceNameMaxChars = 16

// ---- HEALTH CODES ----

// HealthUnknown represents an axis that has not been provisioned yet.
const HealthUnknown uint16 = 0

// HealthOK represents an axis whose profile applied cleanly.
const HealthOK uint16 = 1

// HealthPartial represents an axis where some values were rejected.
const HealthPartial uint16 = 2

// HealthError represents a failed apply.
const HealthError uint16 = 3
