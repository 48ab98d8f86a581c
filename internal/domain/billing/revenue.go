package billing

// RevenuePoint is one month of the reference revenue series. The
// series is append-only and read-only from this layer's perspective,
// and carries no owner column.
type RevenuePoint struct {
	Month       string
	AmountMinor int64
}
