package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"
)

func makeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x += 10 {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return buf.Bytes()
}

func decodeSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode result: %v", err)
	}
	return cfg.Width, cfg.Height
}

func TestPrepareJPEGCapsLongestSide(t *testing.T) {
	src := makeJPEG(t, 2048, 1024)

	out, err := PrepareJPEG(src, 1024)
	if err != nil {
		t.Fatalf("PrepareJPEG() error = %v", err)
	}

	w, h := decodeSize(t, out)
	if w != 1024 || h != 512 {
		t.Errorf("resized to %dx%d, want 1024x512 (aspect preserved)", w, h)
	}
}

func TestPrepareJPEGPortraitOrientation(t *testing.T) {
	src := makeJPEG(t, 600, 3000)

	out, err := PrepareJPEG(src, 1024)
	if err != nil {
		t.Fatalf("PrepareJPEG() error = %v", err)
	}

	w, h := decodeSize(t, out)
	if h != 1024 {
		t.Errorf("height = %d, want 1024", h)
	}
	if w != 600*1024/3000 {
		t.Errorf("width = %d, want %d", w, 600*1024/3000)
	}
}

func TestPrepareJPEGSmallImageUntouched(t *testing.T) {
	src := makeJPEG(t, 640, 480)

	out, err := PrepareJPEG(src, 1024)
	if err != nil {
		t.Fatalf("PrepareJPEG() error = %v", err)
	}
	if !bytes.Equal(out, src) {
		t.Error("small JPEG should pass through unchanged")
	}
}

func TestPrepareJPEGRejectsGarbage(t *testing.T) {
	if _, err := PrepareJPEG([]byte("not an image"), 1024); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestScaledSize(t *testing.T) {
	tests := []struct {
		name           string
		w, h, max      int
		wantW, wantH   int
	}{
		{"landscape", 4000, 2000, 1000, 1000, 500},
		{"portrait", 2000, 4000, 1000, 500, 1000},
		{"square", 3000, 3000, 1024, 1024, 1024},
		{"extreme ratio keeps a pixel", 10000, 3, 1000, 1000, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := scaledSize(tt.w, tt.h, tt.max)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("scaledSize(%d, %d, %d) = %dx%d, want %dx%d", tt.w, tt.h, tt.max, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}
