package math

// Transform is a world-space position and orientation.
type Transform struct {
	Position Vec3
	Rotation Quat
}

// NewTransform returns a transform at position facing yaw radians from +Z.
func NewTransform(position Vec3, yaw float32) Transform {
	return Transform{Position: position, Rotation: QuatFromYaw(yaw)}
}

// Forward returns the direction the transform faces.
func (t Transform) Forward() Vec3 {
	return t.Rotation.Forward()
}
