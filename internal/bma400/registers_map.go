// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package bma400

// RegisterInfo describes one register for the debug tooling.
type RegisterInfo struct {
	Address     string     `json:"address"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Access      string     `json:"access"` // "R", "W", "RW"
	Default     string     `json:"default,omitempty"`
	BitFields   []BitField `json:"bit_fields,omitempty"`
}

// BitField describes a named field inside a register.
type BitField struct {
	Bits        string `json:"bits"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Values      string `json:"values,omitempty"`
}

// RegisterMap returns metadata for the BMA400 registers the tooling
// cares about.
func RegisterMap() []RegisterInfo {
	return []RegisterInfo{
		{Address: "0x00", Name: "CHIPID", Description: "Chip Identification", Access: "R", Default: "0x90"},
		{Address: "0x02", Name: "ERR_REG", Description: "Error flags", Access: "R", Default: "0x00",
			BitFields: []BitField{
				{Bits: "1", Name: "cmd_err", Description: "Command execution failed", Values: ""},
			}},
		{Address: "0x03", Name: "STATUS", Description: "Sensor status", Access: "R", Default: "0x00",
			BitFields: []BitField{
				{Bits: "7", Name: "drdy_stat", Description: "Data ready", Values: ""},
				{Bits: "2:1", Name: "power_mode_stat", Description: "Current power mode", Values: "0=Sleep, 1=Low power, 2=Normal"},
			}},
		{Address: "0x04", Name: "ACC_X_LSB", Description: "Acceleration X [7:0]", Access: "R"},
		{Address: "0x05", Name: "ACC_X_MSB", Description: "Acceleration X [11:8]", Access: "R"},
		{Address: "0x06", Name: "ACC_Y_LSB", Description: "Acceleration Y [7:0]", Access: "R"},
		{Address: "0x07", Name: "ACC_Y_MSB", Description: "Acceleration Y [11:8]", Access: "R"},
		{Address: "0x08", Name: "ACC_Z_LSB", Description: "Acceleration Z [7:0]", Access: "R"},
		{Address: "0x09", Name: "ACC_Z_MSB", Description: "Acceleration Z [11:8]", Access: "R"},
		{Address: "0x0E", Name: "INT_STAT0", Description: "Interrupt status 0", Access: "R",
			BitFields: []BitField{
				{Bits: "7", Name: "drdy_int_stat", Description: "Data ready interrupt", Values: ""},
				{Bits: "6", Name: "fwm_int_stat", Description: "FIFO watermark interrupt", Values: ""},
				{Bits: "2", Name: "gen1_int_stat", Description: "Generic interrupt 1", Values: ""},
			}},
		{Address: "0x12", Name: "FIFO_LENGTH", Description: "FIFO fill level [7:0]", Access: "R"},
		{Address: "0x19", Name: "ACC_CONFIG0", Description: "Power mode and low-power OSR", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "6:5", Name: "osr_lp", Description: "Oversampling in low-power mode", Values: "0-3"},
				{Bits: "1:0", Name: "power_mode_conf", Description: "Power mode", Values: "0=Sleep, 1=Low power, 2=Normal"},
			}},
		{Address: "0x1A", Name: "ACC_CONFIG1", Description: "Range and output data rate", Access: "RW", Default: "0x49",
			BitFields: []BitField{
				{Bits: "7:6", Name: "acc_range", Description: "Measurement range", Values: "0=±2g, 1=±4g, 2=±8g, 3=±16g"},
				{Bits: "3:0", Name: "acc_odr", Description: "Output data rate", Values: "5=12.5Hz, 6=25Hz, 7=50Hz, 8=100Hz, 9=200Hz, 10=400Hz, 11=800Hz"},
			}},
		{Address: "0x1B", Name: "ACC_CONFIG2", Description: "Data source selection", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "3:2", Name: "data_src_reg", Description: "Data register source filter", Values: "0=acc_filt1, 1=acc_filt2, 2=acc_filt_lp"},
			}},
		{Address: "0x1F", Name: "INT_CONFIG0", Description: "Interrupt enable 0", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "7", Name: "drdy_int_en", Description: "Data ready interrupt", Values: "0=Disabled, 1=Enabled"},
				{Bits: "6", Name: "fwm_int_en", Description: "FIFO watermark interrupt", Values: "0=Disabled, 1=Enabled"},
				{Bits: "5", Name: "ffull_int_en", Description: "FIFO full interrupt", Values: "0=Disabled, 1=Enabled"},
				{Bits: "3", Name: "gen2_int_en", Description: "Generic interrupt 2", Values: "0=Disabled, 1=Enabled"},
				{Bits: "2", Name: "gen1_int_en", Description: "Generic interrupt 1", Values: "0=Disabled, 1=Enabled"},
			}},
		{Address: "0x21", Name: "INT1_MAP", Description: "Interrupt routing to INT1 pin", Access: "RW", Default: "0x00"},
		{Address: "0x26", Name: "FIFO_CONFIG0", Description: "FIFO frame layout", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "7", Name: "fifo_z_en", Description: "Store Z axis", Values: "0=Disabled, 1=Enabled"},
				{Bits: "6", Name: "fifo_y_en", Description: "Store Y axis", Values: "0=Disabled, 1=Enabled"},
				{Bits: "5", Name: "fifo_x_en", Description: "Store X axis", Values: "0=Disabled, 1=Enabled"},
				{Bits: "2", Name: "fifo_data_src", Description: "8-bit frames", Values: "0=12-bit, 1=8-bit"},
				{Bits: "0", Name: "auto_flush", Description: "Flush on power mode change", Values: "0=Keep, 1=Flush"},
			}},
		{Address: "0x27", Name: "FIFO_CONFIG1", Description: "FIFO watermark [7:0]", Access: "RW", Default: "0x00"},
		{Address: "0x28", Name: "FIFO_CONFIG2", Description: "FIFO watermark [10:8]", Access: "RW", Default: "0x00"},
		{Address: "0x3F", Name: "GEN1INT_CONFIG0", Description: "Generic interrupt 1: axes and reference", Access: "RW", Default: "0x00"},
		{Address: "0x40", Name: "GEN1INT_CONFIG1", Description: "Generic interrupt 1: criterion", Access: "RW", Default: "0x00"},
		{Address: "0x41", Name: "GEN1INT_CONFIG2", Description: "Generic interrupt 1: threshold", Access: "RW", Default: "0x00"},
		{Address: "0x42", Name: "GEN1INT_CONFIG3", Description: "Generic interrupt 1: duration [15:8]", Access: "RW", Default: "0x00"},
		{Address: "0x43", Name: "GEN1INT_CONFIG4", Description: "Generic interrupt 1: duration [7:0]", Access: "RW", Default: "0x00"},
		{Address: "0x7E", Name: "CMD", Description: "Command register", Access: "W",
			BitFields: []BitField{
				{Bits: "7:0", Name: "cmd", Description: "Command", Values: "0xB6=Soft reset"},
			}},
	}
}
