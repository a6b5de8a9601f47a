package sensor

// FanStatus classifies a fan's current speed percent.
type FanStatus string

const (
	FanStatusNormal FanStatus = "Normal"
	FanStatusMedium FanStatus = "Medium"
	FanStatusHigh   FanStatus = "High"
)

// StatusForPercent derives the status from a speed percentage. Status is a
// pure function of percent, independent of RPM.
func StatusForPercent(percent int) FanStatus {
	switch {
	case percent > 80:
		return FanStatusHigh
	case percent > 60:
		return FanStatusMedium
	default:
		return FanStatusNormal
	}
}

// Fan is one named cooling fan with its current speed and limits.
type Fan struct {
	ID           string
	Name         string
	RPM          int
	MaxRPM       int
	SpeedPercent int
	Status       FanStatus
}

// FanMap holds fans by id.
type FanMap map[string]Fan

// Clone returns an independent copy of the map.
func (m FanMap) Clone() FanMap {
	out := make(FanMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
