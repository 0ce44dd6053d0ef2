package styles

const (
	IconCursor  = "›"
	IconBike    = "🚲"
	IconWarning = "!"
	IconError   = "x"
)
