package racer

import "math"

// Snapshot contains the observable state of a race for determinism checks.
// Uses primitive types only for stable comparison.
type Snapshot struct {
	Tick       uint64
	Phase      int
	LevelIndex int
	Countdown  int
	TimeLeft   int
	Scores     []int

	// Vehicle state (each vehicle is 5 ints: X, Y, Angle, Speed, MaxSpeed; scaled by 1000)
	VehicleData []int

	// Pickup state (each pickup is 2 ints: X, Y, scaled by 1000)
	PickupData []int

	Collected int
}

// scaled converts a float to a fixed-point int with three decimals.
func scaled(f float64) int {
	return int(math.Round(f * 1000))
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	s := g.session
	if s == nil {
		return Snapshot{}
	}

	entrants := s.Entrants()
	vehicleData := make([]int, 0, len(entrants)*5)
	for _, e := range entrants {
		v := e.Vehicle
		vehicleData = append(vehicleData, scaled(v.X), scaled(v.Y), scaled(v.Angle), scaled(v.Speed), scaled(v.MaxSpeed))
	}

	pickups := s.Pickups()
	pickupData := make([]int, 0, len(pickups)*2)
	for _, p := range pickups {
		pickupData = append(pickupData, scaled(p.Box.X), scaled(p.Box.Y))
	}

	collected := 0
	for _, c := range s.Collectibles() {
		if c.Collected {
			collected++
		}
	}

	return Snapshot{
		Tick:        uint64(max(0, s.Frame())), //nolint:gosec // frame count is never negative
		Phase:       int(s.Phase()),
		LevelIndex:  s.LevelIndex(),
		Countdown:   s.Countdown(),
		TimeLeft:    s.TimeLeft(),
		Scores:      s.Scores(),
		VehicleData: vehicleData,
		PickupData:  pickupData,
		Collected:   collected,
	}
}

// Hash returns a hash of the snapshot for quick comparison.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Phase)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.LevelIndex) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Countdown)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.TimeLeft)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Collected)  //#nosec G115 -- hash computation

	for _, v := range snap.Scores {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.VehicleData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.PickupData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	return h
}
