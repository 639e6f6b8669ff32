package wmbus

// deviceTypeNames maps the device-type byte (address[5]) to its prEN
// 13757-3 medium name. Grounded on get_device_type() in
// original_source/mqtt_wmbus_interpreter/wmbus.py.
var deviceTypeNames = map[byte]string{
	0x00: "Other",
	0x01: "Oil",
	0x02: "Electricity",
	0x03: "Gas",
	0x04: "Head",
	0x05: "Steam",
	0x06: "Warm water (30-90 °C)",
	0x07: "Water",
	0x08: "Heat cost allocator",
	0x09: "Compressed air",
	0x0A: "Cooling load meter (Volume measured at return temperature: outlet)",
	0x0B: "Cooling load meter (Volume measured at flow temperature: inlet)",
	0x0C: "Heat (Volume measured at flow temperature: inlet)",
	0x0D: "Heat / Cooling load meter",
	0x0E: "Bus / System component",
	0x0F: "Unknown medium",
	0x10: "Reserved for consumption meter",
	0x11: "Reserved for consumption meter",
	0x12: "Reserved for consumption meter",
	0x13: "Reserved for consumption meter",
	0x14: "Calorific value",
	0x15: "Hot water (≥ 90 °C)",
	0x16: "Cold water",
	0x17: "Dual register (hot/cold) water meter",
	0x18: "Pressure",
	0x19: "A/D Converter",
	0x1A: "Smoke detector",
	0x1B: "Room sensor (eg temperature or humidity)",
	0x1C: "Gas detector",
	0x1D: "Reserved for sensors",
	0x1F: "Reserved for sensors",
	0x20: "Breaker (electricity)",
	0x21: "Valve (gas or water)",
	0x22: "Reserved for switching devices",
	0x23: "Reserved for switching devices",
	0x24: "Reserved for switching devices",
	0x25: "Customer unit (display device)",
	0x26: "Reserved for customer units",
	0x27: "Reserved for customer units",
	0x28: "Waste water",
	0x29: "Garbage",
	0x2A: "Reserved for Carbon dioxide",
	0x2B: "Reserved for environmental meter",
	0x2C: "Reserved for environmental meter",
	0x2D: "Reserved for environmental meter",
	0x2E: "Reserved for environmental meter",
	0x2F: "Reserved for environmental meter",
	0x30: "Reserved for system devices",
	0x31: "Reserved for communication controller",
	0x32: "Reserved for unidirectional repeater",
	0x33: "Reserved for bidirectional repeater",
	0x34: "Reserved for system devices",
	0x35: "Reserved for system devices",
	0x36: "Radio converter (system side)",
	0x37: "Radio converter (meter side)",
	0x38: "Reserved for system devices",
	0x39: "Reserved for system devices",
	0x3A: "Reserved for system devices",
	0x3B: "Reserved for system devices",
	0x3C: "Reserved for system devices",
	0x3D: "Reserved for system devices",
	0x3E: "Reserved for system devices",
	0x3F: "Reserved for system devices",
}

// DeviceTypeName returns the speaking name for a device-type byte. Values
// 0x40 and above are reserved, per get_device_type()'s leading guard.
func DeviceTypeName(b byte) string {
	if b >= 0x40 {
		return "Reserved"
	}
	if name, ok := deviceTypeNames[b]; ok {
		return name
	}
	return "unknown device type"
}

// functionCodeNames maps the low nibble of the control byte to its
// function-code mnemonic. Grounded on get_function_code() in
// original_source/mqtt_wmbus_interpreter/wmbus.py.
var functionCodeNames = map[byte]string{
	0x0: "SND-NKE",
	0x3: "SND-UD",
	0x4: "SND-NR",
	0x6: "SND-IR",
	0x7: "ACC-NR",
	0x8: "ACC-DMD",
	0xA: "REQ-UD1",
	0xB: "REQ-UD2",
}

// FunctionCodeName returns the speaking name for the control byte's
// function code (low nibble).
func FunctionCodeName(control byte) string {
	if name, ok := functionCodeNames[control&0x0F]; ok {
		return name
	}
	return "unknown function code"
}
