package config

import (
	_ "embed"
)

//go:embed defaults/dodge.yaml
var defaultDodgeYAML []byte

//go:embed defaults/brick.yaml
var defaultBrickYAML []byte

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

//go:embed defaults/jump.yaml
var defaultJumpYAML []byte

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

//go:embed defaults/hub.yaml
var defaultHubYAML []byte

// DefaultDodgeConfig returns the default Dodge configuration.
func DefaultDodgeConfig() DodgeConfig {
	return DodgeConfig{
		Viewport: Viewport{Width: 480, Height: 800},
		Player: DodgePlayer{
			Width:         30,
			Height:        30,
			BottomMargin:  25,
			Accel:         0.2,
			MaxSpeed:      5,
			Friction:      0.95,
			TouchDeadZone: 5,
			TouchAccel:    0.4,
		},
		Obstacles: DodgeObstacles{
			MinSize:     20,
			SizeSpread:  20,
			SpeedSpread: 3,
			HitboxInset: 5,
			MaxSpin:     0.05,
		},
		SpawnInterval: Ramp{Base: 500, PerScore: -0.5, Min: 100},
		FallSpeed:     Ramp{Base: 3, PerScore: 0.05},
		SpawnReward:   10,
	}
}

// DefaultBrickConfig returns the default Brick configuration.
func DefaultBrickConfig() BrickConfig {
	return BrickConfig{
		Viewport: Viewport{Width: 480, Height: 800},
		Paddle: BrickPaddle{
			Width:        100,
			Height:       20,
			BottomOffset: 30,
			KeySpeed:     7,
		},
		Ball: BrickBall{
			Radius:      8,
			StartOffset: 50,
			DX:          4,
			DY:          -4,
			Spin:        0.15,
			SpeedUp:     1.05,
		},
		Bricks: BrickWall{
			Rows:    8,
			Cols:    6,
			Padding: 10,
			Height:  25,
			Top:     60,
			Reward:  20,
		},
	}
}

// DefaultFlappyConfig returns the default Flappy configuration.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Viewport: Viewport{Width: 480, Height: 800},
		Bird: FlappyBird{
			X:       50,
			Width:   30,
			Height:  30,
			Gravity: 0.5,
			Jump:    -8,
		},
		Pipes: FlappyPipes{
			Speed:      3,
			Gap:        180,
			IntervalMS: 2000,
			MinHeight:  100,
			Width:      60,
			Reward:     1,
		},
		Ready: FlappyReady{
			Amplitude: 10,
			PeriodMS:  300,
		},
	}
}

// DefaultJumpConfig returns the default Jump configuration.
func DefaultJumpConfig() JumpConfig {
	return JumpConfig{
		Viewport: Viewport{Width: 480, Height: 800},
		Player: JumpPlayer{
			Width:         30,
			Height:        30,
			Speed:         5,
			JumpForce:     -15,
			Gravity:       0.6,
			StartOffset:   100,
			TouchDeadZone: 5,
		},
		Platforms: JumpPlatforms{
			StartWidth:    100,
			StartOffset:   50,
			Height:        20,
			MinWidth:      80,
			WidthSpread:   40,
			FirstOffset:   150,
			MinGap:        100,
			GapSpread:     50,
			FillTo:        -1000,
			RespawnMin:    50,
			RespawnSpread: 50,
			Reward:        10,
		},
	}
}

// DefaultSnakeConfig returns the default Snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Viewport: Viewport{Width: 500, Height: 500},
		Tile:     25,
		Start:    GridPoint{X: 10, Y: 10},
		Apple: SnakeApple{
			Start:  GridPoint{X: 15, Y: 15},
			Reward: 100,
		},
		Interval: Ramp{Base: 100, PerScore: -0.01, Min: 50},
	}
}

// DefaultHubConfig returns the default hub configuration.
func DefaultHubConfig() HubConfig {
	return HubConfig{
		TickRate:        60,
		LeaderboardSize: 10,
		PreviewSize:     5,
		GuestName:       "Guest",
		MaxFrameDeltaMS: 250,
		KeyHoldMS:       120,
	}
}

// GetDefaultYAML returns the embedded default YAML for a config name.
func GetDefaultYAML(name string) []byte {
	switch name {
	case "dodge":
		return defaultDodgeYAML
	case "brick":
		return defaultBrickYAML
	case "flappy":
		return defaultFlappyYAML
	case "jump":
		return defaultJumpYAML
	case "snake":
		return defaultSnakeYAML
	case "hub":
		return defaultHubYAML
	default:
		return nil
	}
}
