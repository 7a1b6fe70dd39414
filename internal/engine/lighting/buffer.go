package lighting

// MaxLights is the maximum number of directional lights supported in shaders.
const MaxLights = 8

// LightBuffer holds lights for GPU upload.
type LightBuffer struct {
	Lights []DirectionalLight
	Count  int
}

// NewLightBuffer creates an empty light buffer.
func NewLightBuffer() *LightBuffer {
	return &LightBuffer{
		Lights: make([]DirectionalLight, 0, MaxLights),
	}
}

// Clear removes all lights from the buffer.
func (b *LightBuffer) Clear() {
	b.Lights = b.Lights[:0]
	b.Count = 0
}

// AddLight adds a light to the buffer.
// Returns false if buffer is full.
func (b *LightBuffer) AddLight(light DirectionalLight) bool {
	if b.Count >= MaxLights {
		return false
	}
	b.Lights = append(b.Lights, light)
	b.Count++
	return true
}

// SetLights replaces all lights in the buffer.
// Truncates to MaxLights if necessary.
func (b *LightBuffer) SetLights(lights []DirectionalLight) {
	b.Clear()
	count := min(len(lights), MaxLights)
	b.Lights = append(b.Lights, lights[:count]...)
	b.Count = count
}

// Directions returns the to-light directions as a flat slice sized for
// MaxLights: [x0, y0, z0, x1, y1, z1, ...]
func (b *LightBuffer) Directions() []float32 {
	result := make([]float32, MaxLights*3)
	for i, light := range b.Lights {
		d := light.ToLight()
		copy(result[i*3:], d[:])
	}
	return result
}

// Radiances returns linear color times intensity as a flat slice sized
// for MaxLights.
func (b *LightBuffer) Radiances() []float32 {
	result := make([]float32, MaxLights*3)
	for i, light := range b.Lights {
		c := light.Radiance()
		copy(result[i*3:], c[:])
	}
	return result
}
