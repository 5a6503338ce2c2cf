package sch

// AutoRotateLabel turns l so its text points away from the wire ending at
// its anchor. It reports whether the spin changed. Labels in the middle of a
// wire, or on diagonal wires, keep their spin.
func AutoRotateLabel(s *Screen, l *Label) bool {
	if s == nil || l == nil {
		return false
	}
	for _, it := range s.At(l.pos) {
		w, ok := it.(*Wire)
		if !ok || w.IsNull() || !w.IsEndPoint(l.pos) {
			continue
		}
		dir := w.OtherEnd(l.pos).Sub(l.pos)
		var spin Spin
		switch {
		case dir.Y == 0 && dir.X > 0:
			spin = SpinLeft
		case dir.Y == 0 && dir.X < 0:
			spin = SpinRight
		case dir.X == 0 && dir.Y > 0:
			spin = SpinUp
		case dir.X == 0 && dir.Y < 0:
			spin = SpinBottom
		default:
			continue
		}
		if spin == l.Spin {
			return false
		}
		l.SetSpin(spin)
		return true
	}
	return false
}
