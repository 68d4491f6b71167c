package scene

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ErrTextureSize is returned for sizes that are not a power of two in
// [MinTextureSize, MaxTextureSize].
var ErrTextureSize = errors.New("texture size must be a power of two between 16 and 2048")

const (
	MinTextureSize     = 16
	MaxTextureSize     = 2048
	DefaultTextureSize = 512

	// TextureRepeatU/V tile the asphalt across one segment.
	TextureRepeatU = 4
	TextureRepeatV = 20
)

// Texture is a square RGBA8 image.
type Texture struct {
	Size int
	Pix  []byte
}

// RoadTextures is the asphalt colour map and its tangent-space normal map.
type RoadTextures struct {
	Albedo Texture
	Normal Texture
}

// LoadResult is what the background loader hands back to the frame loop.
type LoadResult struct {
	Textures RoadTextures
	Err      error
}

// LoadRoadTextures generates the road textures on a background goroutine.
// The returned channel receives exactly one result.
func LoadRoadTextures(ctx context.Context, size int, seed uint64) <-chan LoadResult {
	out := make(chan LoadResult, 1)
	go func() {
		tex, err := GenerateRoadTextures(ctx, size, seed)
		out <- LoadResult{Textures: tex, Err: err}
	}()
	return out
}

// GenerateRoadTextures builds tileable asphalt textures. Rows are filled
// in parallel bands; the result depends only on size and seed.
func GenerateRoadTextures(ctx context.Context, size int, seed uint64) (RoadTextures, error) {
	if size < MinTextureSize || size > MaxTextureSize || size&(size-1) != 0 {
		return RoadTextures{}, fmt.Errorf("generate road textures: %w (got %d)", ErrTextureSize, size)
	}

	height := make([]float64, size*size)
	if err := fillBands(ctx, size, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < size; x++ {
				height[y*size+x] = asphaltHeight(x, y, size, seed)
			}
		}
	}); err != nil {
		return RoadTextures{}, fmt.Errorf("generate height field: %w", err)
	}

	tex := RoadTextures{
		Albedo: Texture{Size: size, Pix: make([]byte, size*size*4)},
		Normal: Texture{Size: size, Pix: make([]byte, size*size*4)},
	}
	if err := fillBands(ctx, size, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < size; x++ {
				i := y*size + x
				h := height[i]

				// Grey aggregate with rare light stones.
				g := 0.16 + 0.12*h
				if h > 0.82 {
					g += 0.18
				}
				putRGBA(tex.Albedo.Pix, i, g, g, g*1.02, 1)

				// Central differences on the wrapped height field.
				l := height[y*size+(x+size-1)%size]
				r := height[y*size+(x+1)%size]
				d := height[((y+size-1)%size)*size+x]
				u := height[((y+1)%size)*size+x]
				nx, ny := (l-r)*2, (d-u)*2
				inv := 1 / math.Sqrt(nx*nx+ny*ny+1)
				putRGBA(tex.Normal.Pix, i, nx*inv*0.5+0.5, ny*inv*0.5+0.5, inv*0.5+0.5, 1)
			}
		}
	}); err != nil {
		return RoadTextures{}, fmt.Errorf("generate road maps: %w", err)
	}
	return tex, nil
}

func fillBands(ctx context.Context, size int, fill func(y0, y1 int)) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	band := size / 8
	if band < 1 {
		band = 1
	}
	for y0 := 0; y0 < size; y0 += band {
		y1 := min(y0+band, size)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fill(y0, y1)
			return nil
		})
	}
	return g.Wait()
}

// asphaltHeight is tileable value noise in [0,1]: four octaves on integer
// lattices that divide size.
func asphaltHeight(x, y, size int, seed uint64) float64 {
	var sum, norm float64
	amp := 1.0
	for cells := 4; cells <= 32 && cells <= size; cells *= 2 {
		fx := float64(x) * float64(cells) / float64(size)
		fy := float64(y) * float64(cells) / float64(size)
		sum += amp * latticeNoise(fx, fy, cells, seed+uint64(cells))
		norm += amp
		amp *= 0.55
	}
	// Fine grain on top of the lattice octaves.
	sum += 0.35 * hash01(uint64(x), uint64(y), seed^0xA5F1)
	norm += 0.35
	return sum / norm
}

func latticeNoise(fx, fy float64, cells int, seed uint64) float64 {
	ix, iy := int(fx), int(fy)
	tx, ty := smooth(fx-float64(ix)), smooth(fy-float64(iy))
	x0, y0 := ix%cells, iy%cells
	x1, y1 := (x0+1)%cells, (y0+1)%cells

	v00 := hash01(uint64(x0), uint64(y0), seed)
	v10 := hash01(uint64(x1), uint64(y0), seed)
	v01 := hash01(uint64(x0), uint64(y1), seed)
	v11 := hash01(uint64(x1), uint64(y1), seed)
	top := v00 + (v10-v00)*tx
	bot := v01 + (v11-v01)*tx
	return top + (bot-top)*ty
}

func smooth(t float64) float64 { return t * t * (3 - 2*t) }

func hash01(x, y, seed uint64) float64 {
	h := seed ^ x*0x9E3779B97F4A7C15 ^ y*0xC2B2AE3D27D4EB4F
	h ^= h >> 33
	h *= 0xFF51AFD7ED558CCD
	h ^= h >> 33
	h *= 0xC4CEB9FE1A85EC53
	h ^= h >> 33
	return float64(h>>11) / float64(1<<53)
}

func putRGBA(pix []byte, i int, r, g, b, a float64) {
	pix[i*4] = to8(r)
	pix[i*4+1] = to8(g)
	pix[i*4+2] = to8(b)
	pix[i*4+3] = to8(a)
}

func to8(v float64) byte {
	return byte(clamp01(v)*255 + 0.5)
}
