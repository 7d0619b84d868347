package extent

// Empty is the extent list that is always false on every primitive. It is
// secure (vacuously, there is nothing to leak) and is the materialization
// of a NotFoundError term lookup (spec §7: NotFound is recovered locally
// as an Empty leaf).
type Empty struct{}

func (Empty) FirstStartGE(int64) (Extent, bool) { return Extent{}, false }
func (Empty) FirstEndGE(int64) (Extent, bool)   { return Extent{}, false }
func (Empty) LastStartLE(int64) (Extent, bool)  { return Extent{}, false }
func (Empty) LastEndLE(int64) (Extent, bool)    { return Extent{}, false }

func (Empty) NextN(from, to int64, n int) []Extent { return nil }
func (Empty) Length() int64                        { return 0 }
func (Empty) Count(lo, hi int64) int64             { return 0 }
func (Empty) MemoryUsage() int64                   { return 0 }
func (Empty) Optimize()                            {}
func (Empty) String() string                       { return "(EMPTY)" }
func (Empty) IsSecure() bool                       { return true }
func (Empty) IsAlmostSecure() bool                 { return true }
