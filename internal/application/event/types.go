package event

const (
	RewardDecided     Type = "RewardDecided"     // Round outcome resolved (reward or game over)
	SuccessfulSpin    Type = "SuccessfulSpin"    // Round ended without a boom
	SpinComplete      Type = "SpinComplete"      // Back at Start, ready for the next spin
	BronzeSpin        Type = "BronzeSpin"        // Next spin is an ordinary one
	SilverSpinReached Type = "SilverSpinReached" // Every silver-th successful spin
	SuperSpinReached  Type = "SuperSpinReached"  // Every super-th successful spin
)

// Types lists every topic the controller publishes
var Types = []Type{RewardDecided, SuccessfulSpin, SpinComplete, BronzeSpin, SilverSpinReached, SuperSpinReached}
