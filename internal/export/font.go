package export

import (
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// fontPaths are the system fonts tried for captions, CJK capable ones first
// so transliterated sentences can carry their original Hanzi.
var fontPaths = []string{
	// macOS
	"/System/Library/Fonts/PingFang.ttc",
	"/System/Library/Fonts/STHeiti Light.ttc",
	"/Library/Fonts/Arial Unicode.ttf",
	// Linux
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/noto-cjk/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/truetype/droid/DroidSansFallbackFull.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	// Windows
	"C:\\Windows\\Fonts\\msyh.ttc",
	"C:\\Windows\\Fonts\\arial.ttf",
}

// CaptionSize is the point size of system caption fonts.
const CaptionSize = 18

var captionFace = sync.OnceValue(func() font.Face {
	for _, path := range fontPaths {
		if face := loadFace(path); face != nil {
			return face
		}
	}
	return basicfont.Face7x13
})

// CaptionFace returns the first usable system font, or the built-in 7x13
// bitmap face when none is installed.
func CaptionFace() font.Face {
	return captionFace()
}

func loadFace(path string) font.Face {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	opts := &opentype.FaceOptions{Size: CaptionSize, DPI: 72, Hinting: font.HintingFull}

	if coll, err := opentype.ParseCollection(data); err == nil && coll.NumFonts() > 0 {
		if fnt, err := coll.Font(0); err == nil {
			if face, err := opentype.NewFace(fnt, opts); err == nil {
				return face
			}
		}
	}
	if fnt, err := opentype.Parse(data); err == nil {
		if face, err := opentype.NewFace(fnt, opts); err == nil {
			return face
		}
	}
	return nil
}
