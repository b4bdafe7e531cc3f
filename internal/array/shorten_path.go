package array

// ShortenPath trims s units off the end of a vertex-distance sequence, removing
// whole vertices whose trailing segment is shorter than the remaining amount
// and then sliding the new endpoint back along the last surviving segment.
func ShortenPath(vs *VertexSequence[VertexDist], s float64, closed bool) {
	_ = closed

	if s <= 0.0 || vs.Size() <= 1 {
		return
	}

	for vs.Size() > 1 {
		n := vs.Size() - 2
		d := vs.Get(n).Dist
		if d > s {
			break
		}
		vs.storage.RemoveLast()
		s -= d
	}

	if vs.Size() < 2 {
		vs.RemoveAll()
		return
	}

	n := vs.Size() - 1
	prev := vs.Get(n - 1)
	last := vs.Get(n)

	d := (prev.Dist - s) / prev.Dist
	last.X = prev.X + (last.X-prev.X)*d
	last.Y = prev.Y + (last.Y-prev.Y)*d
	vs.storage.Set(n, last)

	if !prev.Validate(last) {
		vs.storage.RemoveLast()
	}
}
