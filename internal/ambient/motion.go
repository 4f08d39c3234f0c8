// Package ambient computes the decorative background motion: idle model
// animation, the starfield and floating shapes. It never touches site
// content.
package ambient

import (
	"fmt"
	"math"
)

type Scene string

const (
	SceneLaptop    Scene = "laptop"
	SceneSpaceship Scene = "spaceship"
	SceneIsland    Scene = "island"
	SceneCharacter Scene = "character"
	SceneCube      Scene = "cube"
)

var scenes = []Scene{SceneLaptop, SceneSpaceship, SceneIsland, SceneCharacter, SceneCube}

func Scenes() []Scene { return append([]Scene(nil), scenes...) }

func ParseScene(s string) (Scene, error) {
	for _, sc := range scenes {
		if string(sc) == s {
			return sc, nil
		}
	}
	return "", fmt.Errorf("unknown scene %q", s)
}

// Pose is a model's transform for one frame. Angles are radians.
type Pose struct {
	RotX float64 `json:"rot_x"`
	RotY float64 `json:"rot_y"`
	PosY float64 `json:"pos_y"`
}

// Motion advances a model by one frame. elapsed is seconds since the
// animation started, delta seconds since the previous frame.
type Motion interface {
	Advance(elapsed, delta float64) Pose
}

func NewMotion(s Scene) (Motion, error) {
	switch s {
	case SceneLaptop:
		return motionFunc(func(t, _ float64) Pose {
			return Pose{RotY: math.Sin(t) * 0.3}
		}), nil
	case SceneSpaceship:
		return &spaceship{}, nil
	case SceneIsland:
		return motionFunc(func(t, _ float64) Pose {
			return Pose{RotY: t * 0.2}
		}), nil
	case SceneCharacter:
		return motionFunc(func(t, _ float64) Pose {
			return Pose{RotY: math.Sin(t*0.5) * 0.3, PosY: math.Sin(t) * 0.1}
		}), nil
	case SceneCube:
		return &cube{}, nil
	}
	return nil, fmt.Errorf("unknown scene %q", s)
}

type motionFunc func(elapsed, delta float64) Pose

func (f motionFunc) Advance(elapsed, delta float64) Pose { return f(elapsed, delta) }

// spaceship spins a fixed step per frame regardless of frame time.
type spaceship struct{ rotY float64 }

func (s *spaceship) Advance(t, _ float64) Pose {
	s.rotY += 0.01
	return Pose{RotY: s.rotY, PosY: math.Sin(t) * 0.2}
}

type cube struct{ rotX, rotY float64 }

func (c *cube) Advance(_, delta float64) Pose {
	c.rotX += delta * 0.5
	c.rotY += delta * 0.5
	return Pose{RotX: c.rotX, RotY: c.rotY}
}
