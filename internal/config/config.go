// Package config provides YAML-based tuning for every arcade title and the
// hub, with embedded defaults and difficulty presets.
package config

import "time"

// Viewport is a title's logical resolution.
type Viewport struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// DodgeConfig contains all configuration for the falling-obstacle game.
type DodgeConfig struct {
	Viewport      Viewport       `yaml:"viewport"`
	Player        DodgePlayer    `yaml:"player"`
	Obstacles     DodgeObstacles `yaml:"obstacles"`
	SpawnInterval Ramp           `yaml:"spawn_interval"` // ms between spawns
	FallSpeed     Ramp           `yaml:"fall_speed"`     // px per frame, before spread
	SpawnReward   int            `yaml:"spawn_reward"`
}

// DodgePlayer defines the runner's size and motion.
type DodgePlayer struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	BottomMargin  float64 `yaml:"bottom_margin"`
	Accel         float64 `yaml:"accel"`
	MaxSpeed      float64 `yaml:"max_speed"`
	Friction      float64 `yaml:"friction"`
	TouchDeadZone float64 `yaml:"touch_dead_zone"`
	TouchAccel    float64 `yaml:"touch_accel"`
}

// DodgeObstacles defines falling obstacle ranges.
type DodgeObstacles struct {
	MinSize     float64 `yaml:"min_size"`
	SizeSpread  float64 `yaml:"size_spread"`
	SpeedSpread float64 `yaml:"speed_spread"`
	HitboxInset float64 `yaml:"hitbox_inset"`
	MaxSpin     float64 `yaml:"max_spin"` // radians per frame
}

// BrickConfig contains all configuration for the brick breaker.
type BrickConfig struct {
	Viewport Viewport    `yaml:"viewport"`
	Paddle   BrickPaddle `yaml:"paddle"`
	Ball     BrickBall   `yaml:"ball"`
	Bricks   BrickWall   `yaml:"bricks"`
}

// BrickPaddle defines the paddle.
type BrickPaddle struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	BottomOffset float64 `yaml:"bottom_offset"`
	KeySpeed     float64 `yaml:"key_speed"`
}

// BrickBall defines the ball and its bounce response.
type BrickBall struct {
	Radius      float64 `yaml:"radius"`
	StartOffset float64 `yaml:"start_offset"` // distance above the bottom edge
	DX          float64 `yaml:"dx"`
	DY          float64 `yaml:"dy"`
	Spin        float64 `yaml:"spin"`     // dx per px off paddle center
	SpeedUp     float64 `yaml:"speed_up"` // velocity factor per paddle hit
}

// BrickWall defines the brick grid.
type BrickWall struct {
	Rows    int     `yaml:"rows"`
	Cols    int     `yaml:"cols"`
	Padding float64 `yaml:"padding"`
	Height  float64 `yaml:"height"`
	Top     float64 `yaml:"top"`
	Reward  int     `yaml:"reward"`
}

// FlappyConfig contains all configuration for the flappy game.
type FlappyConfig struct {
	Viewport Viewport    `yaml:"viewport"`
	Bird     FlappyBird  `yaml:"bird"`
	Pipes    FlappyPipes `yaml:"pipes"`
	Ready    FlappyReady `yaml:"ready"`
}

// FlappyBird defines bird size and physics.
type FlappyBird struct {
	X       float64 `yaml:"x"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Gravity float64 `yaml:"gravity"`
	Jump    float64 `yaml:"jump"`
}

// FlappyPipes defines pipe spawning.
type FlappyPipes struct {
	Speed      float64 `yaml:"speed"`
	Gap        float64 `yaml:"gap"`
	IntervalMS float64 `yaml:"interval_ms"`
	MinHeight  float64 `yaml:"min_height"`
	Width      float64 `yaml:"width"`
	Reward     int     `yaml:"reward"`
}

// FlappyReady defines the hover before the first flap.
type FlappyReady struct {
	Amplitude float64 `yaml:"amplitude"`
	PeriodMS  float64 `yaml:"period_ms"`
}

// JumpConfig contains all configuration for the platform jumper.
type JumpConfig struct {
	Viewport  Viewport      `yaml:"viewport"`
	Player    JumpPlayer    `yaml:"player"`
	Platforms JumpPlatforms `yaml:"platforms"`
}

// JumpPlayer defines the jumper.
type JumpPlayer struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Speed         float64 `yaml:"speed"`
	JumpForce     float64 `yaml:"jump_force"`
	Gravity       float64 `yaml:"gravity"`
	StartOffset   float64 `yaml:"start_offset"` // distance above the bottom edge
	TouchDeadZone float64 `yaml:"touch_dead_zone"`
}

// JumpPlatforms defines platform layout and recycling.
type JumpPlatforms struct {
	StartWidth    float64 `yaml:"start_width"`
	StartOffset   float64 `yaml:"start_offset"`
	Height        float64 `yaml:"height"`
	MinWidth      float64 `yaml:"min_width"`
	WidthSpread   float64 `yaml:"width_spread"`
	FirstOffset   float64 `yaml:"first_offset"`
	MinGap        float64 `yaml:"min_gap"`
	GapSpread     float64 `yaml:"gap_spread"`
	FillTo        float64 `yaml:"fill_to"`
	RespawnMin    float64 `yaml:"respawn_min"`
	RespawnSpread float64 `yaml:"respawn_spread"`
	Reward        int     `yaml:"reward"`
}

// SnakeConfig contains all configuration for snake.
type SnakeConfig struct {
	Viewport Viewport   `yaml:"viewport"`
	Tile     float64    `yaml:"tile"`
	Start    GridPoint  `yaml:"start"`
	Apple    SnakeApple `yaml:"apple"`
	Interval Ramp       `yaml:"interval"` // ms per move
}

// GridPoint is a tile coordinate.
type GridPoint struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// SnakeApple defines the first apple and its reward.
type SnakeApple struct {
	Start  GridPoint `yaml:"start"`
	Reward int       `yaml:"reward"`
}

// HubConfig contains settings shared by every host.
type HubConfig struct {
	TickRate        int    `yaml:"tick_rate"`
	LeaderboardSize int    `yaml:"leaderboard_size"`
	PreviewSize     int    `yaml:"preview_size"`
	GuestName       string `yaml:"guest_name"`
	MaxFrameDeltaMS int    `yaml:"max_frame_delta_ms"`
	KeyHoldMS       int    `yaml:"key_hold_ms"`
}

// FrameInterval returns the host frame period for the tick rate.
func (c HubConfig) FrameInterval() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

// MaxFrameDelta is the upper clamp for a single frame's dt.
func (c HubConfig) MaxFrameDelta() time.Duration {
	return time.Duration(c.MaxFrameDeltaMS) * time.Millisecond
}

// KeyHold is the terminal key release synthesis window.
func (c HubConfig) KeyHold() time.Duration {
	return time.Duration(c.KeyHoldMS) * time.Millisecond
}
