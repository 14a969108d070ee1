package config

import "time"

const (
	WindowWidth  = 1024
	WindowHeight = 640
	WindowTitle  = "Petal Overlay - Space: music, B: boost, Esc/Q: quit"

	// Particle pool
	MaxParticles = 160
	WrapMargin   = 40

	// Emission
	AmbientPeriod = 120 * time.Millisecond
	AmbientBatch  = 2
	BoostBatch    = 6
	BoostRounds   = 18
	BoostSpeed    = 1.8

	// Playback persistence
	SavePeriod    = 900 * time.Millisecond
	KeyPlayIntent = "hb_play"
	KeyElapsed    = "hb_time"

	// Button dimensions
	ButtonWidth  = 150
	ButtonHeight = 40
	ButtonX      = 20
	ButtonY      = 50
	ButtonGap    = 16

	// Boost label stays on "Boosted" this long
	BoostLabelHold = time.Second

	// Level meter
	MeterRingSize   = 4096
	SmoothingFactor = 0.6
)
