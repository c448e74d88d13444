package telemetry

// Collector accumulates generation records and produces WindowStats every
// window of generations.
type Collector struct {
	window int

	windowStart int
	alive       []float64
	births      int
	deaths      int
	stagnant    bool
	last        GenerationRecord
}

// NewCollector creates a new stats collector.
// window: number of generations per stats window (at least 1).
func NewCollector(window int) *Collector {
	if window < 1 {
		window = 1
	}
	return &Collector{
		window: window,
		alive:  make([]float64, 0, window),
	}
}

// Window returns the configured window length in generations.
func (c *Collector) Window() int { return c.window }

// Record adds one generation. When the window is full it returns the
// aggregated stats and true, and starts a new window.
func (c *Collector) Record(r GenerationRecord) (WindowStats, bool) {
	if len(c.alive) == 0 {
		c.windowStart = r.Generation
	}
	c.alive = append(c.alive, float64(r.Alive))
	c.births += r.Births
	c.deaths += r.Deaths
	c.stagnant = c.stagnant || r.Stagnant
	c.last = r

	if len(c.alive) < c.window {
		return WindowStats{}, false
	}
	ws := c.Flush()
	return ws, true
}

// Pending returns how many generations are in the current, unfinished window.
func (c *Collector) Pending() int { return len(c.alive) }

// Flush returns stats for whatever is in the current window and resets it.
// Call it at shutdown to emit a partial window.
func (c *Collector) Flush() WindowStats {
	mean, std, lo, p50, hi := ComputePopulationStats(c.alive)

	var turnover float64
	if sum := mean * float64(len(c.alive)); sum > 0 {
		turnover = float64(c.births+c.deaths) / sum
	}

	ws := WindowStats{
		WindowStart: c.windowStart,
		WindowEnd:   c.last.Generation,
		AliveMean:   mean,
		AliveStd:    std,
		AliveMin:    lo,
		AliveP50:    p50,
		AliveMax:    hi,
		FinalLive:   c.last.Alive,
		Births:      c.births,
		Deaths:      c.deaths,
		Turnover:    turnover,
		Extinct:     len(c.alive) > 0 && c.last.Alive == 0,
		Stagnant:    c.stagnant,
	}

	c.alive = c.alive[:0]
	c.births = 0
	c.deaths = 0
	c.stagnant = false
	return ws
}
