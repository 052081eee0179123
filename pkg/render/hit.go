package render

// HitHandler receives the result of a one-shot pixel probe registered with
// Renderer.HitTest.
type HitHandler interface {
	// Hit reports the last polygon that won the z-test at the probed pixel
	// during the frame. It is not called when nothing was drawn there.
	Hit(x, y int, depth float64, c Color, p *Polygon)
	// Commit is called once when the frame is committed, after Hit.
	Commit()
}

// HitFuncs adapts plain functions to HitHandler. Nil fields are skipped.
type HitFuncs struct {
	OnHit    func(x, y int, depth float64, c Color, p *Polygon)
	OnCommit func()
}

// Hit implements HitHandler.
func (h HitFuncs) Hit(x, y int, depth float64, c Color, p *Polygon) {
	if h.OnHit != nil {
		h.OnHit(x, y, depth, c, p)
	}
}

// Commit implements HitHandler.
func (h HitFuncs) Commit() {
	if h.OnCommit != nil {
		h.OnCommit()
	}
}

type hitProbe struct {
	x, y    int
	handler HitHandler

	hit   bool
	depth float64
	color Color
	poly  *Polygon
}

func (p *hitProbe) record(depth float64, c Color, poly *Polygon) {
	p.hit = true
	p.depth, p.color, p.poly = depth, c, poly
}

func (p *hitProbe) reset() {
	p.hit = false
	p.depth, p.color, p.poly = 0, 0, nil
}

func (p *hitProbe) deliver() {
	if p.hit {
		p.handler.Hit(p.x, p.y, p.depth, p.color, p.poly)
	}
	p.handler.Commit()
}
