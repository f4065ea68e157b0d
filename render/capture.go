package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// FrameWriter receives completed frames from Renderer.Flush.
type FrameWriter interface {
	WriteFrame(img *ebiten.Image) error
	Finish() error
}

// NewFrameWriter picks an exporter from the output path: a video extension
// pipes raw frames into ffmpeg, anything else is treated as a directory for a
// PNG sequence. width and height must match the frames that will arrive.
func NewFrameWriter(path string, width, height, fps int) (FrameWriter, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4", ".mkv", ".mov", ".avi", ".webm":
		return newVideoWriter(path, width, height, fps)
	default:
		return newPNGSequenceWriter(path, width, height)
	}
}

// readFrame pulls the frame's pixels back into buf as RGBA.
func readFrame(img *ebiten.Image, width, height int, buf []byte) error {
	b := img.Bounds()
	if b.Dx() != width || b.Dy() != height {
		return fmt.Errorf("frame is %dx%d, writer expects %dx%d", b.Dx(), b.Dy(), width, height)
	}
	img.ReadPixels(buf)
	return nil
}

type pngSequenceWriter struct {
	dir    string
	width  int
	height int
	frame  int
	buf    []byte
}

func newPNGSequenceWriter(dir string, width, height int) (*pngSequenceWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create frame dir: %w", err)
	}
	return &pngSequenceWriter{
		dir:    dir,
		width:  width,
		height: height,
		buf:    make([]byte, 4*width*height),
	}, nil
}

func (w *pngSequenceWriter) WriteFrame(img *ebiten.Image) error {
	if err := readFrame(img, w.width, w.height, w.buf); err != nil {
		return err
	}
	rgba := &image.RGBA{
		Pix:    w.buf,
		Stride: 4 * w.width,
		Rect:   image.Rect(0, 0, w.width, w.height),
	}
	path := filepath.Join(w.dir, fmt.Sprintf("frame_%05d.png", w.frame))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create frame file: %w", err)
	}
	if err := png.Encode(f, rgba); err != nil {
		f.Close()
		return fmt.Errorf("encode frame: %w", err)
	}
	w.frame++
	return f.Close()
}

func (w *pngSequenceWriter) Finish() error { return nil }

// videoWriter streams raw RGBA frames to an ffmpeg child process.
type videoWriter struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	width  int
	height int
	buf    []byte
}

func newVideoWriter(path string, width, height, fps int) (*videoWriter, error) {
	cmd := exec.Command("ffmpeg",
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", width, height),
		"-framerate", fmt.Sprintf("%d", fps),
		"-i", "-",
		"-pix_fmt", "yuv420p",
		path,
	)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg stdin: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start ffmpeg: %w", err)
	}
	return &videoWriter{
		cmd:    cmd,
		stdin:  stdin,
		width:  width,
		height: height,
		buf:    make([]byte, 4*width*height),
	}, nil
}

func (w *videoWriter) WriteFrame(img *ebiten.Image) error {
	if err := readFrame(img, w.width, w.height, w.buf); err != nil {
		return err
	}
	if _, err := w.stdin.Write(w.buf); err != nil {
		return fmt.Errorf("write frame to ffmpeg: %w", err)
	}
	return nil
}

func (w *videoWriter) Finish() error {
	if err := w.stdin.Close(); err != nil {
		w.cmd.Wait()
		return err
	}
	return w.cmd.Wait()
}
