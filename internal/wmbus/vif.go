package wmbus

// vifPrimaryTable is the primary VIF table keyed by vif[0] & 0x7F. It
// holds 126 of the 128 codes: 0x7B and 0x7D have no entry and resolve to
// "VIF not found". Grounded on get_vif_description()'s "MAIN" block in
// original_source/mqtt_wmbus_interpreter/wmbus_data_record.py.
var vifPrimaryTable = map[byte]string{
	0x00: "Energy mWh",
	0x01: "Energy 10⁻² Wh",
	0x02: "Energy 10⁻¹ Wh",
	0x03: "Energy Wh",
	0x04: "Energy 10¹ Wh",
	0x05: "Energy 10² Wh",
	0x06: "Energy kWh",
	0x07: "Energy 10⁴ Wh",

	0x08: "Energy J",
	0x09: "Energy 10¹ J",
	0x0A: "Energy 10² J",
	0x0B: "Energy kJ",
	0x0C: "Energy 10⁴ J",
	0x0D: "Energy 10⁵ J",
	0x0E: "Energy MJ",
	0x0F: "Energy 10⁷ J",

	0x10: "Volume cm³",
	0x11: "Volume 10⁻⁵ m³",
	0x12: "Volume 10⁻⁴ m³",
	0x13: "Volume l",
	0x14: "Volume 10⁻² m³",
	0x15: "Volume 10⁻¹ m³",
	0x16: "Volume m³",
	0x17: "Volume 10¹ m³",

	0x18: "Mass g",
	0x19: "Mass 10⁻² kg",
	0x1A: "Mass 10⁻¹ kg",
	0x1B: "Mass kg",
	0x1C: "Mass 10¹ kg",
	0x1D: "Mass 10² kg",
	0x1E: "Mass t",
	0x1F: "Mass 10⁴ kg",

	0x20: "On time seconds",
	0x21: "On time minutes",
	0x22: "On time hours",
	0x23: "On time days",

	0x24: "Operating time seconds",
	0x25: "Operating time minutes",
	0x26: "Operating time hours",
	0x27: "Operating time days",

	0x28: "Power mW",
	0x29: "Power 10⁻² W",
	0x2A: "Power 10⁻¹ W",
	0x2B: "Power W",
	0x2C: "Power 10¹ W",
	0x2D: "Power 10² W",
	0x2E: "Power kW",
	0x2F: "Power 10⁴ W",

	0x30: "Power J/h",
	0x31: "Power 10¹ J/h",
	0x32: "Power 10² J/h",
	0x33: "Power kJ/h",
	0x34: "Power 10⁴ J/h",
	0x35: "Power 10⁵ J/h",
	0x36: "Power MJ/h",
	0x37: "Power 10⁷ J/h",

	0x38: "Volume flow cm³/h",
	0x39: "Volume flow 10⁻⁵ m³/h",
	0x3A: "Volume flow 10⁻⁴ m³/h",
	0x3B: "Volume flow l/h",
	0x3C: "Volume flow 10⁻² m³/h",
	0x3D: "Volume flow 10⁻¹ m³/h",
	0x3E: "Volume flow m³/h",
	0x3F: "Volume flow 10¹ m³/h",

	0x40: "Volume flow ext. 10⁻⁷ m³/min",
	0x41: "Volume flow ext. cm³/min",
	0x42: "Volume flow ext. 10⁻⁵ m³/min",
	0x43: "Volume flow ext. 10⁻⁴ m³/min",
	0x44: "Volume flow ext. l/min",
	0x45: "Volume flow ext. 10⁻² m³/min",
	0x46: "Volume flow ext. 10⁻¹ m³/min",
	0x47: "Volume flow ext. m³/min",

	0x48: "Volume flow ext. mm³/s",
	0x49: "Volume flow ext. 10⁻⁸ m³/s",
	0x4A: "Volume flow ext. 10⁻⁷ m³/s",
	0x4B: "Volume flow ext. cm³/s",
	0x4C: "Volume flow ext. 10⁻⁵ m³/s",
	0x4D: "Volume flow ext. 10⁻⁴ m³/s",
	0x4E: "Volume flow ext. l/s",
	0x4F: "Volume flow ext. 10⁻² m³/s",

	0x50: "Mass g/h",
	0x51: "Mass 10⁻² kg/h",
	0x52: "Mass 10⁻¹ kg/h",
	0x53: "Mass kg/h",
	0x54: "Mass 10¹ kg/h",
	0x55: "Mass 10² kg/h",
	0x56: "Mass t/h",
	0x57: "Mass 10⁴ kg/h",

	0x58: "Flow temperature 10⁻³ °C",
	0x59: "Flow temperature 10⁻² °C",
	0x5A: "Flow temperature 10⁻¹ °C",
	0x5B: "Flow temperature °C",

	0x5C: "Return temperature 10⁻³ °C",
	0x5D: "Return temperature 10⁻² °C",
	0x5E: "Return temperature 10⁻¹ °C",
	0x5F: "Return temperature °C",

	0x60: "Temperature difference mK",
	0x61: "Temperature difference 10⁻² K",
	0x62: "Temperature difference 10⁻¹ K",
	0x63: "Temperature difference K",

	0x64: "External temperature 10⁻³ °C",
	0x65: "External temperature 10⁻² °C",
	0x66: "External temperature 10⁻¹ °C",
	0x67: "External temperature °C",

	0x68: "Pressure mbar",
	0x69: "Pressure 10⁻² bar",
	0x6A: "Pressure 10⁻1 bar",
	0x6B: "Pressure bar",

	0x6C: "Date type G",
	0x6D: "Date/time depending on data field 0100b=type F, 0011b=type J, 0110b=type I",
	0x6E: "Units for H.C.A.",
	0x6F: "Reserved",

	0x70: "Averaging duration seconds",
	0x71: "Averaging duration minutes",
	0x72: "Averaging duration hours",
	0x73: "Averaging duration days",

	0x74: "Actuality duration seconds",
	0x75: "Actuality duration minutes",
	0x76: "Actuality duration hours",
	0x77: "Actuality duration days",

	0x78: "Fabrication no",
	0x79: "Enhanced identification",
	0x7A: "Address",

	0x7C: "VIF in following string (length in first byte)",
	0x7E: "Any VIF",
	0x7F: "Manufacturer specific",
}

// vifExtensionLabels covers the first-byte extension markers (vif[0] with
// the MSB set). The only second-byte entries the original interpreter
// resolves (0x7B's relative-humidity pair) live in vif7BExtension — the
// rest of the extension tables are out of scope per spec.md §1.
var vifExtensionLabels = map[byte]string{
	0xFB: "First extension of VIF-codes",
	0xFD: "Second extension of VIF-codes",
	0xEF: "Reserved extension",
}

// vif7BExtension resolves the second byte of a 0x7B-prefixed VIFE chain
// (relative humidity), the one extension entry original_source actually
// implements.
var vif7BExtension = map[byte]string{
	0x1A: "RH 10⁻¹ %",
	0x1B: "RH %",
}

// VIFDescription returns the human-readable unit/quantity description for
// a VIF/VIFE chain, following get_vif_description()'s precedence. When the
// MSB of the first byte is set, a 0xFB first byte followed by a second
// byte resolves through the 0x7B second-byte table, and any other first
// byte through the extension-table labels; otherwise the primary table is
// used.
func VIFDescription(chain []byte) string {
	if len(chain) == 0 {
		return "VIF not found"
	}

	first := chain[0]
	if first&0x80 != 0 {
		chooser := first & 0x7F
		if chooser == 0x7B && len(chain) > 1 {
			if label, ok := vif7BExtension[chain[1]]; ok {
				return label
			}
			return "1st ext. VIF not found"
		}
		if label, ok := vifExtensionLabels[first]; ok {
			return label
		}
		return "VIF not found"
	}

	chooser := first & 0x7F
	if label, ok := vifPrimaryTable[chooser]; ok {
		return label
	}
	return "VIF not found"
}
