package ir

// Conv2DAttrs are the attributes of a quantized.conv2d call. Channels is
// nil when the output channel count is not statically declared.
type Conv2DAttrs struct {
	Strides      []int64 `json:"strides"`
	Padding      []int64 `json:"padding"`
	Dilation     []int64 `json:"dilation"`
	Groups       int64   `json:"groups"`
	Channels     *int64  `json:"channels,omitempty"`
	DataLayout   string  `json:"data_layout"`
	KernelLayout string  `json:"kernel_layout"`
}

// PadAttrs are the attributes of an nn.pad call: one [low, high] pair per
// tensor axis.
type PadAttrs struct {
	PadWidth [][2]int64 `json:"pad_width"`
	PadValue float64    `json:"pad_value"`
}

// ConcatenateAttrs are the attributes of a quantized.concatenate call.
type ConcatenateAttrs struct {
	Axis int64 `json:"axis"`
}

// SplitAttrs are the attributes of a split call. Exactly one of Sections
// (equal-count split) or Indices (explicit cut points) is set.
type SplitAttrs struct {
	Axis     int64   `json:"axis"`
	Sections *int64  `json:"sections,omitempty"`
	Indices  []int64 `json:"indices,omitempty"`
}
