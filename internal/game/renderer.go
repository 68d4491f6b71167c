package game

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"rainroad/internal/scene"
	"rainroad/internal/weather"
)

// Vertices per road segment in the road buffer: the surface quad followed by
// the centre line and two edge marks.
const (
	surfaceVerts  = 6
	markingVerts  = 18
	segmentVerts  = surfaceVerts + markingVerts
	rainStride    = 8 // floats per drop, see weather.RainPool.RenderData
	rainPointSize = 1800.0
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// Frame is everything the renderer needs for one frame.
type Frame struct {
	ViewProj   scene.Mat4
	Eye        weather.Vec3
	Travel     float64
	Atmosphere scene.Atmosphere
	Flash      float64
	Aspect     float64
	PointScale float64
}

// Renderer draws the road, rain and overlays. It implements
// weather.SegmentHooks so the road buffer is rebuilt only when the
// resident window changes.
type Renderer struct {
	log *zap.SugaredLogger

	// Road program.
	roadProg uint32
	roadVAO  uint32
	roadVBO  uint32

	uViewProj   int32
	uEye        int32
	uTextured   int32
	uTint       int32
	uRoughness  int32
	uReflection int32
	uSky        int32
	uFog        int32
	uFlash      int32

	// Rain program.
	rainProg        uint32
	rainVAO         uint32
	rainVBO         uint32
	rainCap         int
	rainUViewProj   int32
	rainUOffset     int32
	rainUPointScale int32

	// Overlay program.
	overlayProg   uint32
	overlayVAO    uint32
	overlayVBO    uint32
	overlayUColor int32

	// Road textures, zero until the loader delivers.
	albedoTex uint32
	normalTex uint32

	roadDirty bool
	roadBuf   []float32
	roadSegs  int
	rainBuf   []float32
	gaugeBuf  []float32
}

func NewRenderer(rainCapacity int, log *zap.SugaredLogger) (*Renderer, error) {
	roadProg, err := linkProgram(roadVertSrc, roadFragSrc)
	if err != nil {
		return nil, fmt.Errorf("road program: %w", err)
	}
	rainProg, err := linkProgram(rainVertSrc, rainFragSrc)
	if err != nil {
		gl.DeleteProgram(roadProg)
		return nil, fmt.Errorf("rain program: %w", err)
	}
	overlayProg, err := linkProgram(overlayVertSrc, overlayFragSrc)
	if err != nil {
		gl.DeleteProgram(roadProg)
		gl.DeleteProgram(rainProg)
		return nil, fmt.Errorf("overlay program: %w", err)
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	r := &Renderer{
		log:         log,
		roadProg:    roadProg,
		rainProg:    rainProg,
		overlayProg: overlayProg,
		rainCap:     rainCapacity,
		roadDirty:   true,
	}

	// Road VAO/VBO: rebuilt when segments come and go.
	var rVAO, rVBO uint32
	gl.GenVertexArrays(1, &rVAO)
	gl.GenBuffers(1, &rVBO)
	gl.BindVertexArray(rVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, rVBO)
	stride := int32(scene.VertexStride * 4)
	// aPos (vec3)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, glOffset(0))
	// aUV (vec2)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, glOffset(3*4))
	r.roadVAO = rVAO
	r.roadVBO = rVBO

	gl.UseProgram(roadProg)
	r.uViewProj = gl.GetUniformLocation(roadProg, gl.Str("uViewProj\x00"))
	r.uEye = gl.GetUniformLocation(roadProg, gl.Str("uEye\x00"))
	r.uTextured = gl.GetUniformLocation(roadProg, gl.Str("uTextured\x00"))
	r.uTint = gl.GetUniformLocation(roadProg, gl.Str("uTint\x00"))
	r.uRoughness = gl.GetUniformLocation(roadProg, gl.Str("uRoughness\x00"))
	r.uReflection = gl.GetUniformLocation(roadProg, gl.Str("uReflection\x00"))
	r.uSky = gl.GetUniformLocation(roadProg, gl.Str("uSky\x00"))
	r.uFog = gl.GetUniformLocation(roadProg, gl.Str("uFog\x00"))
	r.uFlash = gl.GetUniformLocation(roadProg, gl.Str("uFlash\x00"))
	gl.Uniform1i(gl.GetUniformLocation(roadProg, gl.Str("uAlbedo\x00")), 0)
	gl.Uniform1i(gl.GetUniformLocation(roadProg, gl.Str("uNormal\x00")), 1)
	gl.Uniform1i(r.uTextured, 0)

	// Rain VAO/VBO: streaming buffer, one point per drop.
	// Each drop: 8 floats (x, y, z, size, r, g, b, a).
	var pVAO, pVBO uint32
	gl.GenVertexArrays(1, &pVAO)
	gl.GenBuffers(1, &pVBO)
	gl.BindVertexArray(pVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, pVBO)
	pStride := int32(rainStride * 4)
	gl.BufferData(gl.ARRAY_BUFFER, rainCapacity*int(pStride), nil, gl.STREAM_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, pStride, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 1, gl.FLOAT, false, pStride, glOffset(3*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, pStride, glOffset(4*4))
	r.rainVAO = pVAO
	r.rainVBO = pVBO

	gl.UseProgram(rainProg)
	r.rainUViewProj = gl.GetUniformLocation(rainProg, gl.Str("uViewProj\x00"))
	r.rainUOffset = gl.GetUniformLocation(rainProg, gl.Str("uOffset\x00"))
	r.rainUPointScale = gl.GetUniformLocation(rainProg, gl.Str("uPointScale\x00"))

	// Overlay VAO/VBO: small 2D triangle lists.
	var oVAO, oVBO uint32
	gl.GenVertexArrays(1, &oVAO)
	gl.GenBuffers(1, &oVBO)
	gl.BindVertexArray(oVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, oVBO)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, glOffset(0))
	r.overlayVAO = oVAO
	r.overlayVBO = oVBO

	gl.UseProgram(overlayProg)
	r.overlayUColor = gl.GetUniformLocation(overlayProg, gl.Str("uColor\x00"))

	gl.BindVertexArray(0)
	return r, nil
}

func (r *Renderer) Destroy() {
	for _, id := range []uint32{r.roadVBO, r.rainVBO, r.overlayVBO} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	for _, id := range []uint32{r.roadVAO, r.rainVAO, r.overlayVAO} {
		if id != 0 {
			gl.DeleteVertexArrays(1, &id)
		}
	}
	for _, id := range []uint32{r.roadProg, r.rainProg, r.overlayProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
	for _, id := range []uint32{r.albedoTex, r.normalTex} {
		if id != 0 {
			gl.DeleteTextures(1, &id)
		}
	}
}

// SegmentCreated implements weather.SegmentHooks.
func (r *Renderer) SegmentCreated(seg *weather.RoadSegment) {
	r.roadDirty = true
	r.log.Debugw("road segment created", "id", seg.ID, "z", seg.Position)
}

// SegmentRetired implements weather.SegmentHooks.
func (r *Renderer) SegmentRetired(seg *weather.RoadSegment) {
	r.roadDirty = true
	r.log.Debugw("road segment retired", "id", seg.ID, "z", seg.Position)
}

// UploadRoadTextures moves the loader's pixels to the GPU. Must run on the
// GL thread.
func (r *Renderer) UploadRoadTextures(tex scene.RoadTextures) {
	r.albedoTex = uploadRepeating(tex.Albedo)
	r.normalTex = uploadRepeating(tex.Normal)
}

func uploadRepeating(t scene.Texture) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(t.Size), int32(t.Size), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(t.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	return tex
}

func (r *Renderer) BeginFrame(f Frame, fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	sr, sg, sb := scene.RGB32(f.Atmosphere.Sky)
	gl.ClearColor(sr, sg, sb, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DrawRoad draws every resident segment with its own material and clears
// the segments' dirty flags.
func (r *Renderer) DrawRoad(road *weather.RoadTiler, f Frame) {
	if road == nil || road.Len() == 0 {
		return
	}
	if r.roadDirty || r.roadSegs != road.Len() {
		r.rebuildRoad(road)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.UseProgram(r.roadProg)
	gl.BindVertexArray(r.roadVAO)
	gl.UniformMatrix4fv(r.uViewProj, 1, false, &f.ViewProj[0])
	gl.Uniform3f(r.uEye, float32(f.Eye.X), float32(f.Eye.Y), float32(f.Eye.Z))
	sr, sg, sb := scene.RGB32(f.Atmosphere.Sky)
	gl.Uniform3f(r.uSky, sr, sg, sb)
	gl.Uniform1f(r.uFog, float32(f.Atmosphere.Fog))
	gl.Uniform1f(r.uFlash, float32(f.Flash))

	textured := road.TexturesLoaded() && r.albedoTex != 0
	if textured {
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, r.albedoTex)
		gl.ActiveTexture(gl.TEXTURE1)
		gl.BindTexture(gl.TEXTURE_2D, r.normalTex)
	}

	mr, mg, mb := scene.RGB32(scene.MarkingColor)
	road.Each(func(i int, seg *weather.RoadSegment) {
		m := seg.Material
		tr, tg, tb := scene.RGB32(scene.AsphaltTint(m))
		gl.Uniform3f(r.uTint, tr, tg, tb)
		gl.Uniform1f(r.uRoughness, float32(m.Roughness))
		gl.Uniform1f(r.uReflection, float32(m.Reflection))
		if textured {
			gl.Uniform1i(r.uTextured, 1)
		} else {
			gl.Uniform1i(r.uTextured, 0)
		}
		first := int32(i * segmentVerts)
		gl.DrawArrays(gl.TRIANGLES, first, surfaceVerts)

		// Paint stays flat and a little glossier than the asphalt.
		gl.Uniform1i(r.uTextured, 0)
		gl.Uniform3f(r.uTint, mr, mg, mb)
		gl.Uniform1f(r.uRoughness, float32(m.Roughness*0.5))
		gl.DrawArrays(gl.TRIANGLES, first+surfaceVerts, markingVerts)
		seg.Dirty = false
	})
	gl.Disable(gl.DEPTH_TEST)
}

func (r *Renderer) rebuildRoad(road *weather.RoadTiler) {
	r.roadBuf = r.roadBuf[:0]
	width, length := road.Width(), road.SegmentLength()
	road.Each(func(_ int, seg *weather.RoadSegment) {
		r.roadBuf = scene.AppendSegment(r.roadBuf, seg, width, length)
		r.roadBuf = scene.AppendMarkings(r.roadBuf, seg, width, length)
	})
	gl.BindBuffer(gl.ARRAY_BUFFER, r.roadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.roadBuf)*4, gl.Ptr(r.roadBuf), gl.DYNAMIC_DRAW)
	r.roadSegs = road.Len()
	r.roadDirty = false
}

// DrawRain renders the pool as blended streaks around the car.
func (r *Renderer) DrawRain(rain *weather.RainPool, f Frame) {
	if rain == nil || rain.Intensity() <= 0 {
		return
	}
	r.rainBuf = rain.RenderData(r.rainBuf)
	count := rain.Cap()
	if count > r.rainCap {
		count = r.rainCap
	}

	gl.UseProgram(r.rainProg)
	gl.BindVertexArray(r.rainVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.rainVBO)
	gl.UniformMatrix4fv(r.rainUViewProj, 1, false, &f.ViewProj[0])
	gl.Uniform3f(r.rainUOffset, 0, 0, float32(f.Travel))
	gl.Uniform1f(r.rainUPointScale, float32(f.PointScale))

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.BufferData(gl.ARRAY_BUFFER, count*rainStride*4, gl.Ptr(r.rainBuf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.POINTS, 0, int32(count))
	gl.Disable(gl.BLEND)
}

var fullscreenQuad = []float32{
	-1, -1, 1, -1, 1, 1,
	-1, -1, 1, 1, -1, 1,
}

// DrawOverlays draws the wind gauge and, on top, the lightning flash.
func (r *Renderer) DrawOverlays(ind weather.WindIndicator, f Frame) {
	gl.UseProgram(r.overlayProg)
	gl.BindVertexArray(r.overlayVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.overlayVBO)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	r.gaugeBuf = scene.AppendWindGauge(r.gaugeBuf[:0], ind, f.Aspect)
	wr, wg, wb := scene.RGB32(scene.WindColor)
	gl.Uniform4f(r.overlayUColor, wr, wg, wb, float32(ind.Opacity))
	gl.BufferData(gl.ARRAY_BUFFER, len(r.gaugeBuf)*4, gl.Ptr(r.gaugeBuf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(r.gaugeBuf)/2))

	if f.Flash > 0 {
		gl.Uniform4f(r.overlayUColor, 1, 1, 1, float32(f.Flash))
		gl.BufferData(gl.ARRAY_BUFFER, len(fullscreenQuad)*4, gl.Ptr(fullscreenQuad), gl.STREAM_DRAW)
		gl.DrawArrays(gl.TRIANGLES, 0, int32(len(fullscreenQuad)/2))
	}
	gl.Disable(gl.BLEND)
}

var _ weather.SegmentHooks = (*Renderer)(nil)
