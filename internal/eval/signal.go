package eval

// signalKind reports why statement execution stopped early.
type signalKind int

const (
	sigNormal signalKind = iota
	sigReturn
	sigBreak
	sigContinue
)

// signal carries control flow up out of nested blocks without mutable
// "are we returning" flags threaded through every call site.
type signal struct {
	kind  signalKind
	value Value
}

var normalSignal = signal{kind: sigNormal}

func returnSignal(v Value) signal { return signal{kind: sigReturn, value: v} }

var breakSignal = signal{kind: sigBreak}
var continueSignal = signal{kind: sigContinue}
