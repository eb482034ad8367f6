package emissions

type constError string

func (e constError) Error() string { return string(e) }

var (
	ErrUnknownCategory = constError("unknown activity category")
	ErrUnknownType     = constError("unknown activity type")
	ErrNegativeValue   = constError("negative activity value")
	ErrValueTooLarge   = constError("activity value is too large")
)
