package thumbnail

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
)

const (
	TitleFontSize    = 80
	SubtitleFontSize = 50

	builtinFontName = "basicfont"
)

// systemFontPaths are tried after the configured paths.
var systemFontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/TTF/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/dejavu/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Bold.ttf",
	"/Library/Fonts/Arial Bold.ttf",
	"/System/Library/Fonts/Supplemental/Arial Bold.ttf",
	`C:\Windows\Fonts\arialbd.ttf`,
}

// FontCandidate is one entry of the resolution chain.
type FontCandidate struct {
	Name string
	Load func() (*opentype.Font, error)
}

// FileFont loads a TrueType/OpenType file from disk.
func FileFont(path string) FontCandidate {
	return FontCandidate{
		Name: path,
		Load: func() (*opentype.Font, error) {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, err
			}
			return opentype.Parse(data)
		},
	}
}

// GoBoldFont is the embedded Go Bold face.
func GoBoldFont() FontCandidate {
	return FontCandidate{
		Name: "gobold",
		Load: func() (*opentype.Font, error) { return opentype.Parse(gobold.TTF) },
	}
}

// FontResolver tries its candidates in order; the first one that loads wins.
// When all fail it hands out the built-in bitmap face.
type FontResolver struct {
	candidates []FontCandidate
}

// NewFontResolver builds the chain: configured paths, common system paths, Go Bold.
func NewFontResolver(paths []string) *FontResolver {
	var c []FontCandidate
	for _, p := range paths {
		if p != "" {
			c = append(c, FileFont(p))
		}
	}
	for _, p := range systemFontPaths {
		c = append(c, FileFont(p))
	}
	c = append(c, GoBoldFont())
	return &FontResolver{candidates: c}
}

// NewFontResolverFrom uses exactly the given candidates before the built-in face.
func NewFontResolverFrom(candidates ...FontCandidate) *FontResolver {
	return &FontResolver{candidates: candidates}
}

// Faces returns one face per requested pixel size and the name of the font used.
// It never fails. Callers close the faces.
func (r *FontResolver) Faces(sizes ...float64) ([]font.Face, string) {
	if r != nil {
		for _, cand := range r.candidates {
			faces, err := loadFaces(cand, sizes)
			if err != nil {
				log.Debug().Err(err).Str("font", cand.Name).Msg("Font candidate unavailable")
				continue
			}
			return faces, cand.Name
		}
	}
	log.Warn().Msg("No scalable font available, using built-in bitmap font")
	return builtinFaces(len(sizes)), builtinFontName
}

func loadFaces(cand FontCandidate, sizes []float64) (faces []font.Face, err error) {
	if cand.Load == nil {
		return nil, fmt.Errorf("font %s: no loader", cand.Name)
	}
	f, err := cand.Load()
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", cand.Name, err)
	}
	for _, size := range sizes {
		face, err := opentype.NewFace(f, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			closeFaces(faces)
			return nil, fmt.Errorf("font %s size %.0f: %w", cand.Name, size, err)
		}
		faces = append(faces, face)
	}
	return faces, nil
}

func builtinFaces(n int) []font.Face {
	faces := make([]font.Face, n)
	for i := range faces {
		faces[i] = basicfont.Face7x13
	}
	return faces
}

func closeFaces(faces []font.Face) {
	for _, f := range faces {
		if f != nil {
			f.Close()
		}
	}
}
