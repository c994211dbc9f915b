package catapult

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/catapult/internal/engine/mesh"
	"github.com/Faultbox/catapult/pkg/math"
)

// Node names.
const (
	NodeFrame      = "frame"
	NodeRailLeft   = "rail-left"
	NodeRailRight  = "rail-right"
	NodeCrossFront = "cross-front"
	NodeCrossBack  = "cross-back"
	NodeStrutLeft  = "strut-left"
	NodeStrutRight = "strut-right"
	NodeAxle       = "axle"
	NodeArm        = "throw-arm"
	NodeBucket     = "bucket"
	NodeWinder     = "winder"
	NodeSpokeLeft  = "spoke-left"
	NodeSpokeRight = "spoke-right"
)

// Frame layout in catapult space: rails run along +X on the ground, the
// arm hinges on the axle and stands upright at rest.
var (
	// ArmPivot is the axle centre the arm rotates about.
	ArmPivot = math.Vec3{X: 2.5, Y: 3.5}
	// WinderPivot is the drum centre.
	WinderPivot = math.Vec3{X: 6.5, Y: 1.6}
)

const (
	railLength = 7.5
	railHeight = 1
	railDepth  = 0.5
	railOffset = 1.5 // rails sit at z = ±railOffset

	armLength = 5.5
	armWidth  = 0.4
	armBelow  = 0.5 // part of the arm below the pivot

	drumRadius = 0.35
	axleRadius = 0.15
	crossSpan  = 2*railOffset + railDepth
	drumLength = crossSpan + railDepth
	drumSides  = 12
)

// part describes one rigid piece.
type part struct {
	name   string
	parent string
	build  func() *mesh.Geometry
	local  math.Mat4
}

var rotZ90 = math.RotateAxis(math.Vec3{Z: 1}, math32.Pi/2)

// armRest stands the arm plank upright with armBelow of it under the pivot.
var armRest = math.TranslateVec(ArmPivot.Add(math.Vec3{Y: armLength/2 - armBelow})).Mul(rotZ90)

// armTip is the top end of the arm in the arm plank's own frame.
var armTip = math.Vec3{X: armLength / 2}

var winderRest = math.TranslateVec(WinderPivot)

func parts() []part {
	strutHeight := ArmPivot.Y + armWidth/2 - railHeight
	strutY := railHeight + strutHeight/2

	return []part{
		{name: NodeFrame, local: math.Identity()},
		{
			name: NodeRailLeft, parent: NodeFrame,
			build: func() *mesh.Geometry { return mesh.Plank(railLength, railHeight, railDepth) },
			local: math.Translate(railLength/2, railHeight/2, -railOffset),
		},
		{
			name: NodeRailRight, parent: NodeFrame,
			build: func() *mesh.Geometry { return mesh.Plank(railLength, railHeight, railDepth) },
			local: math.Translate(railLength/2, railHeight/2, railOffset),
		},
		{
			name: NodeCrossFront, parent: NodeFrame,
			build: func() *mesh.Geometry { return mesh.Box(0.5, 0.5, crossSpan) },
			local: math.Translate(0.5, railHeight+0.25, 0),
		},
		{
			name: NodeCrossBack, parent: NodeFrame,
			build: func() *mesh.Geometry { return mesh.Box(0.5, 0.5, crossSpan) },
			local: math.Translate(railLength-0.5, railHeight+0.25, 0),
		},
		{
			name: NodeStrutLeft, parent: NodeFrame,
			build: func() *mesh.Geometry { return mesh.Box(0.5, strutHeight, 0.5) },
			local: math.Translate(ArmPivot.X, strutY, -railOffset),
		},
		{
			name: NodeStrutRight, parent: NodeFrame,
			build: func() *mesh.Geometry { return mesh.Box(0.5, strutHeight, 0.5) },
			local: math.Translate(ArmPivot.X, strutY, railOffset),
		},
		{
			name: NodeAxle, parent: NodeFrame,
			build: func() *mesh.Geometry { return mesh.Prism(axleRadius, crossSpan, drumSides) },
			local: math.TranslateVec(ArmPivot),
		},
		{
			name: NodeArm, parent: NodeFrame,
			build: func() *mesh.Geometry { return mesh.Plank(armLength, armWidth, armWidth) },
			local: armRest,
		},
		{
			// In the arm's frame: X runs up the arm.
			name: NodeBucket, parent: NodeArm,
			build: func() *mesh.Geometry { return mesh.Box(0.3, 1.2, 1.2) },
			local: math.TranslateVec(armTip.Add(math.Vec3{X: 0.15})),
		},
		{
			name: NodeWinder, parent: NodeFrame,
			build: func() *mesh.Geometry { return mesh.Prism(drumRadius, drumLength, drumSides) },
			local: winderRest,
		},
		{
			name: NodeSpokeLeft, parent: NodeWinder,
			build: func() *mesh.Geometry { return mesh.Box(0.15, 1.4, 0.15) },
			local: math.Translate(0, 0, -drumLength/2),
		},
		{
			name: NodeSpokeRight, parent: NodeWinder,
			build: func() *mesh.Geometry { return mesh.Box(0.15, 1.4, 0.15) },
			local: math.Translate(0, 0, drumLength/2),
		},
	}
}
