package kmscon

// computeDamage scans the damage bitmap row by row and produces merged
// damage rectangles: damaged cells at most damageMergeLen columns apart in
// the same row share one rectangle. The result lands in r.damageRects.
func (r *Renderer) computeDamage() {
	fw, fh := r.font.CellSize()
	if r.orientation.Swapped() {
		fw, fh = fh, fw
	}

	for posy := 0; posy < r.rows; posy++ {
		// Gap since the last damaged cell; starts beyond the merge
		// distance so the first damaged cell opens a new rectangle.
		gap := damageMergeLen + 1
		for posx := 0; posx < r.cols; posx++ {
			if !r.damages[posx+posy*r.cols] {
				gap++
				continue
			}
			x, y := r.cellToPixel(posx, posy)
			rect := Rect{X1: x, Y1: y, X2: x + fw, Y2: y + fh}
			if gap <= damageMergeLen {
				r.damageRects[len(r.damageRects)-1].union(rect)
			} else {
				r.damageRects = append(r.damageRects, rect)
			}
			gap = 0
		}
	}
}
