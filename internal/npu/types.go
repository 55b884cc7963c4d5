// Package npu defines the normalized descriptor types understood by the
// accelerator's capability-query API, and the oracle interface answering
// whether a described operation can run on the target.
package npu

import "fmt"

// TensorShape is the fixed four-slot accelerator shape. Unused trailing
// slots hold 1.
type TensorShape [4]uint32

// DataType is an accelerator element kind. The target supports exactly two
// quantized forms.
type DataType int

const (
	Uint8Quantized DataType = iota
	Int32Quantized
)

func (d DataType) String() string {
	switch d {
	case Uint8Quantized:
		return "UINT8_QUANTIZED"
	case Int32Quantized:
		return "INT32_QUANTIZED"
	}
	return fmt.Sprintf("DataType(%d)", int(d))
}

// DataFormat is an accelerator tensor layout.
type DataFormat int

const (
	NCHW DataFormat = iota
	NHWC
	HWIO
	HWIM
)

func (f DataFormat) String() string {
	switch f {
	case NCHW:
		return "NCHW"
	case NHWC:
		return "NHWC"
	case HWIO:
		return "HWIO"
	case HWIM:
		return "HWIM"
	}
	return fmt.Sprintf("DataFormat(%d)", int(f))
}

// QuantizationInfo is the affine mapping between an integer encoding and
// its real value: real = (encoded - ZeroPoint) * Scale. The two fields are
// only meaningful together.
type QuantizationInfo struct {
	ZeroPoint int32
	Scale     float32
}

// TensorInfo fully describes one tensor to the capability API.
type TensorInfo struct {
	Shape        TensorShape
	DataType     DataType
	Format       DataFormat
	Quantization QuantizationInfo
}

// Padding is the per-edge spatial padding of a convolution.
type Padding struct {
	Top    uint32
	Bottom uint32
	Left   uint32
	Right  uint32
}

// Stride is a spatial stride. X is the stride along the width axis, Y along
// the height axis.
type Stride struct {
	X uint32
	Y uint32
}

// ConvolutionInfo carries the non-tensor parameters of a convolution.
type ConvolutionInfo struct {
	Padding            Padding
	Stride             Stride
	OutputQuantization QuantizationInfo
}

// ConcatenationInfo carries the parameters of a concatenation.
type ConcatenationInfo struct {
	Axis               uint32
	OutputQuantization QuantizationInfo
}

// SplitInfo carries the parameters of a split: the axis and the length of
// each output segment along it.
type SplitInfo struct {
	Axis  uint32
	Sizes []uint32
}
