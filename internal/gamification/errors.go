package gamification

type constError string

func (e constError) Error() string { return string(e) }

var (
	ErrUnknownAction     = constError("unknown action type")
	ErrInvalidQuantity   = constError("quantity must be between 1 and 1000")
	ErrDonationTooSmall  = constError("donation is below the minimum")
	ErrInsufficientPoint = constError("not enough points")
)
