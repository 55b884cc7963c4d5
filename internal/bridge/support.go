package bridge

import (
	"github.com/mbaret/npubridge/internal/ir"
	"github.com/mbaret/npubridge/internal/logger"
	"github.com/mbaret/npubridge/internal/npu"
)

// PatternKind names one of the recognized fused subgraph shapes.
type PatternKind string

const (
	KindConvolution   PatternKind = "convolution"
	KindConcatenation PatternKind = "concatenation"
	KindSplit         PatternKind = "split"
	KindUnknown       PatternKind = "unknown"
)

// DetectKind classifies an expression tree by its root operator.
func DetectKind(expr ir.Expr) PatternKind {
	call, ok := expr.(*ir.Call)
	if !ok {
		return KindUnknown
	}
	switch call.Op {
	case ir.OpRequantize:
		return KindConvolution
	case ir.OpQuantConcatenate:
		return KindConcatenation
	case ir.OpSplit:
		return KindSplit
	}
	return KindUnknown
}

// CheckerConfig configures a Checker. Zero fields get defaults: the
// software reference oracle, no hardware, the default logger.
type CheckerConfig struct {
	Oracle npu.Oracle
	// Hardware reports whether a real target device is present. It is an
	// injected capability flag, not data dependent.
	Hardware bool
	Logger   logger.Logger
}

// Checker answers whether fused-pattern expressions can be offloaded.
// Extraction or validation failure yields "unsupported" without consulting
// the oracle; the oracle never sees an incompletely validated bundle.
type Checker struct {
	oracle   npu.Oracle
	hardware bool
	log      logger.Logger
}

func NewChecker(cfg CheckerConfig) *Checker {
	if cfg.Oracle == nil {
		cfg.Oracle = npu.ReferenceOracle{}
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}
	return &Checker{oracle: cfg.Oracle, hardware: cfg.Hardware, log: cfg.Logger}
}

// ConvolutionSupported reports whether a fused quantized convolution
// expression is offloadable, along with every violation found.
func (c *Checker) ConvolutionSupported(expr ir.Expr) (bool, Violations) {
	params, err := QuantizedConv2D(expr)
	if err.Failed() {
		c.reject(KindConvolution, err)
		return false, err
	}
	if params.IsDepthwise {
		return c.oracle.IsDepthwiseConvolutionSupported(params.Bias, params.Weights, params.Conv, params.Activation), err
	}
	return c.oracle.IsConvolutionSupported(params.Bias, params.Weights, params.Conv, params.Activation), err
}

// ConcatenateSupported reports whether a quantized concatenation
// expression is offloadable.
func (c *Checker) ConcatenateSupported(expr ir.Expr) (bool, Violations) {
	params, err := QuantizedConcatenate(expr)
	if err.Failed() {
		c.reject(KindConcatenation, err)
		return false, err
	}
	return c.oracle.IsConcatenationSupported(params.Inputs, params.Concat), err
}

// SplitSupported reports whether a split expression is offloadable.
func (c *Checker) SplitSupported(expr ir.Expr) (bool, Violations) {
	params, err := Split(expr)
	if err.Failed() {
		c.reject(KindSplit, err)
		return false, err
	}
	return c.oracle.IsSplitSupported(params.Input, params.Split), err
}

// Supported dispatches on the detected pattern kind.
func (c *Checker) Supported(expr ir.Expr) (bool, Violations) {
	switch DetectKind(expr) {
	case KindConvolution:
		return c.ConvolutionSupported(expr)
	case KindConcatenation:
		return c.ConcatenateSupported(expr)
	case KindSplit:
		return c.SplitSupported(expr)
	}
	return false, Violationf("expression does not match any supported pattern")
}

// HardwareAvailable reports whether a real target device is present.
func (c *Checker) HardwareAvailable() bool {
	return c.hardware
}

func (c *Checker) reject(kind PatternKind, err Violations) {
	c.log.Debug("pattern rejected", "kind", string(kind), "violations", err.Reasons())
}
