package geometry

// StackZone returns the centred sub-rectangle of bounds whose sides are
// fraction of the original sides. fraction is clamped to [0, 1].
func StackZone(bounds Rect, fraction float64) Rect {
	fraction = Clamp(fraction, 0, 1)
	insetX := bounds.Size.Width * (1 - fraction) / 2
	insetY := bounds.Size.Height * (1 - fraction) / 2
	return NewRect(
		bounds.MinX()+insetX,
		bounds.MinY()+insetY,
		bounds.Size.Width-2*insetX,
		bounds.Size.Height-2*insetY,
	)
}

// InStackZone reports whether p falls strictly inside the stack zone of cell.
// Points on the zone boundary are outside, so a zero fraction never matches
// and a cell corner never matches.
func InStackZone(p Point, cell Rect, fraction float64) bool {
	zone := StackZone(cell, fraction)
	return zone.MinX() < p.X && p.X < zone.MaxX() &&
		zone.MinY() < p.Y && p.Y < zone.MaxY()
}
