package game

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/skyswarm/camera"
	"github.com/pthm-cable/skyswarm/components"
)

// Render holds the mesh state a host renderer reads.
type Render struct {
	Visibility components.Visibility
}

// Player tags the craft mesh entity.
type Player struct{}

// Enemy tags an agent mesh entity with its index into the agent slice.
type Enemy struct {
	Index int
}

var sceneUp = mgl32.Vec3{0, 1, 0}

// Scene mirrors simulation output into an ECS world the way a render host
// keeps its transforms. The simulation never reads it back.
type Scene struct {
	world *ecs.World

	playerMapper *ecs.Map3[components.Pose, Render, Player]
	enemyMapper  *ecs.Map3[components.Pose, Render, Enemy]
	enemyFilter  *ecs.Filter2[components.Pose, Enemy]

	poseMap   *ecs.Map1[components.Pose]
	renderMap *ecs.Map1[Render]

	player    ecs.Entity
	hasPlayer bool
	enemies   int
}

// NewScene creates a scene with one entity per agent.
func NewScene(enemyCount int) *Scene {
	world := ecs.NewWorld()

	s := &Scene{
		world:        world,
		playerMapper: ecs.NewMap3[components.Pose, Render, Player](world),
		enemyMapper:  ecs.NewMap3[components.Pose, Render, Enemy](world),
		enemyFilter:  ecs.NewFilter2[components.Pose, Enemy](world),
		poseMap:      ecs.NewMap1[components.Pose](world),
		renderMap:    ecs.NewMap1[Render](world),
	}
	s.spawnEnemies(enemyCount)
	return s
}

func (s *Scene) spawnEnemies(n int) {
	for i := s.enemies; i < n; i++ {
		pose := components.IdentityPose()
		render := Render{Visibility: components.Visible}
		enemy := Enemy{Index: i}
		s.enemyMapper.NewEntity(&pose, &render, &enemy)
	}
	if n > s.enemies {
		s.enemies = n
	}
}

// Sync writes one tick of output into the scene. The player entity is
// created the first time a craft is present. Safe on a nil scene.
func (s *Scene) Sync(out Output) {
	if s == nil {
		return
	}

	if out.CraftPresent {
		if !s.hasPlayer {
			pose := out.CraftMesh
			render := Render{Visibility: out.CraftVisibility}
			s.player = s.playerMapper.NewEntity(&pose, &render, &Player{})
			s.hasPlayer = true
		}
		*s.poseMap.Get(s.player) = out.CraftMesh
		s.renderMap.Get(s.player).Visibility = out.CraftVisibility
	}

	s.spawnEnemies(len(out.Agents))

	query := s.enemyFilter.Query()
	for query.Next() {
		pose, enemy := query.Get()
		if enemy.Index >= len(out.Agents) {
			continue
		}
		agent := out.Agents[enemy.Index]
		pose.Position = agent.Position
		// Face along velocity; keep the last heading while stationary
		pose.Rotation = camera.LookRotation(mgl32.Vec3{}, agent.Velocity, sceneUp, pose.Rotation)
	}
}

// PlayerPose returns the craft mesh transform and visibility.
func (s *Scene) PlayerPose() (components.Pose, components.Visibility, bool) {
	if s == nil || !s.hasPlayer {
		return components.Pose{}, components.Hidden, false
	}
	return *s.poseMap.Get(s.player), s.renderMap.Get(s.player).Visibility, true
}

// EnemyPoses returns agent mesh transforms indexed like the agent slice.
func (s *Scene) EnemyPoses() []components.Pose {
	if s == nil {
		return nil
	}
	poses := make([]components.Pose, s.enemies)
	query := s.enemyFilter.Query()
	for query.Next() {
		pose, enemy := query.Get()
		poses[enemy.Index] = *pose
	}
	return poses
}

// EnemyCount returns the number of enemy entities.
func (s *Scene) EnemyCount() int {
	if s == nil {
		return 0
	}
	return s.enemies
}
