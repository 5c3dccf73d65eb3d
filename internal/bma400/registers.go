// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package bma400

// BMA400 register addresses.
const (
	RegChipID     = 0x00
	RegErrReg     = 0x02
	RegStatus     = 0x03
	RegAccXLSB    = 0x04
	RegAccXMSB    = 0x05
	RegAccYLSB    = 0x06
	RegAccYMSB    = 0x07
	RegAccZLSB    = 0x08
	RegAccZMSB    = 0x09
	RegIntStat0   = 0x0E
	RegIntStat1   = 0x0F
	RegIntStat2   = 0x10
	RegTempData   = 0x11
	RegFifoLength = 0x12
	RegFifoData   = 0x14

	RegAccConfig0 = 0x19
	RegAccConfig1 = 0x1A
	RegAccConfig2 = 0x1B

	RegIntConfig0  = 0x1F
	RegIntConfig1  = 0x20
	RegInt1Map     = 0x21
	RegInt2Map     = 0x22
	RegInt12IOCtrl = 0x24

	RegFifoConfig0 = 0x26
	RegFifoConfig1 = 0x27 // watermark [7:0]
	RegFifoConfig2 = 0x28 // watermark [10:8]

	RegGen1IntConfig0 = 0x3F
	RegGen1IntConfig1 = 0x40
	RegGen1IntConfig2 = 0x41 // threshold
	RegGen1IntConfig3 = 0x42 // duration MSB
	RegGen1IntConfig4 = 0x43 // duration LSB

	RegCmd = 0x7E
)

// ChipID is the fixed identity the sensor reports from RegChipID.
const ChipID = 0x90

// spiReadBit is OR'd into the register address for read transactions;
// writes keep it clear.
const spiReadBit = 0x80

// CmdSoftReset restores all registers to their defaults.
const CmdSoftReset = 0xB6

// RegAccConfig0 fields.
const (
	powerModeMask       = 0x03
	PowerModeSleep      = 0x00
	PowerModeLowPower   = 0x01
	PowerModeNormal     = 0x02
	osrLowPowerSetting0 = 0x00 // osr_lp bits [6:5]
)

// RegAccConfig1 fields.
const (
	odrMask   = 0x0F
	rangeMask = 0xC0

	ODR12Hz  = 0x05
	ODR25Hz  = 0x06
	ODR50Hz  = 0x07
	ODR100Hz = 0x08
	ODR200Hz = 0x09
	ODR400Hz = 0x0A
	ODR800Hz = 0x0B

	Range2G  = 0x00
	Range4G  = 0x01
	Range8G  = 0x02
	Range16G = 0x03
)

// RegAccConfig2 data-source filter selection, bits [3:2].
const (
	dataSrcMask      = 0x0C
	DataSrcFilt1     = 0x00
	DataSrcFilt2     = 0x01
	DataSrcFiltLP    = 0x02
	dataSrcShift     = 2
	rangeShift       = 6
)

// RegIntConfig0 interrupt-enable bits. Each named mode enables exactly
// one of these.
const (
	IntDataReadyEn     = 1 << 7
	IntFifoWatermarkEn = 1 << 6
	IntFifoFullEn      = 1 << 5
	IntGen2En          = 1 << 3
	IntGen1En          = 1 << 2
)

// RegFifoConfig0 frame layout bits.
const (
	FifoAutoFlush = 1 << 0 // flush on power mode change
	Fifo8BitEn    = 1 << 2
	FifoXEn       = 1 << 5
	FifoYEn       = 1 << 6
	FifoZEn       = 1 << 7
)

// FifoFrameBytes is the size of one XYZ FIFO frame including its header.
const FifoFrameBytes = 4

// RegGen1IntConfig0 fields for the activity criterion.
const (
	Gen1AxesXYZEn      = 0xE0 // act_x/y/z_en, bits [7:5]
	Gen1DataSrcFilt2   = 1 << 4
	Gen1RefUpdateEvery = 0x08 // acc_ref_up, update every time
	Gen1Hyst48mg       = 0x03
)

// RegGen1IntConfig1 fields.
const (
	Gen1CriterionActivity = 1 << 1 // comp_sel: above threshold
	Gen1CombAnyAxis       = 0x00
)
