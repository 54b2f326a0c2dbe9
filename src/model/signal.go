package model

type SignalAction string

const (
	SignalActionBuy  SignalAction = "BUY"
	SignalActionSell SignalAction = "SELL"
	SignalActionHold SignalAction = "HOLD"
)

// Signal is a strategy verdict. Strength is a dimensionless 0-1 quality
// score and stays floating point; it is never used in money math.
type Signal struct {
	Action   SignalAction `json:"action"`
	Strength float64      `json:"strength"`
}

func BuySignal(strength float64) Signal {
	return Signal{Action: SignalActionBuy, Strength: strength}
}

func SellSignal(strength float64) Signal {
	return Signal{Action: SignalActionSell, Strength: strength}
}

func HoldSignal() Signal {
	return Signal{Action: SignalActionHold}
}

func (s Signal) IsBuy() bool {
	return s.Action == SignalActionBuy
}

func (s Signal) IsSell() bool {
	return s.Action == SignalActionSell
}

func (s Signal) IsHold() bool {
	return s.Action == SignalActionHold
}

func (s Signal) IsActionable(minStrength float64) bool {
	if s.IsHold() {
		return false
	}

	return s.Strength >= minStrength
}
