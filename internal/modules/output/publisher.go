// README: Output stage; JPEG encoding and the single published artifact slot.
package output

import (
	"bytes"
	"image"
	"image/jpeg"
	"sync"
	"time"
)

// DownloadFilename is the fixed name of the downloadable artifact.
const DownloadFilename = "geotagged_photo.jpg"

// Artifact is one published photograph. Immutable once published.
type Artifact struct {
	Data        []byte
	ContentType string
	Filename    string
	Width       int
	Height      int
	PublishedAt time.Time
}

// Publisher holds at most one live artifact; publishing replaces the
// previous result wholesale.
type Publisher struct {
	quality int

	mu     sync.RWMutex
	latest *Artifact
}

func NewPublisher(quality int) *Publisher {
	if quality <= 0 || quality > 100 {
		quality = 92
	}
	return &Publisher{quality: quality}
}

func (p *Publisher) Publish(img image.Image) (*Artifact, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.quality}); err != nil {
		return nil, err
	}
	b := img.Bounds()
	a := &Artifact{
		Data:        buf.Bytes(),
		ContentType: "image/jpeg",
		Filename:    DownloadFilename,
		Width:       b.Dx(),
		Height:      b.Dy(),
		PublishedAt: time.Now(),
	}

	p.mu.Lock()
	p.latest = a
	p.mu.Unlock()
	return a, nil
}

// Latest returns the current artifact, or nil before the first capture.
func (p *Publisher) Latest() *Artifact {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.latest
}
