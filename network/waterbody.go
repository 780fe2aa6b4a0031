package network

// Waterbody encapsulates the attributes of one lake or pond polygon.
type Waterbody struct {
	// The permanent identifier for the waterbody.
	ID ID

	// Polygon area in square kilometers.
	AreaSqKm float64

	// The NHD feature classification code, used to decide lake-population
	// membership.
	FCode int

	// The external numeric identifier (NHDPlusID); zero when absent.
	NumericID int64
}

// WaterbodyIterator is implemented by objects that can iterate the waterbody
// attribute table.
type WaterbodyIterator interface {
	Iterator

	// Waterbody returns the currently fetched waterbody record.
	Waterbody() *Waterbody
}
