package scan

import (
	"context"
	"image"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var ErrUnknownSession = errors.New("unknown scan session")

// DecodeImage runs a one-shot session over an uploaded image.
func DecodeImage(ctx context.Context, decoder Decoder, r io.Reader) (string, error) {
	img, err := ReadImage(r)
	if err != nil {
		return "", err
	}
	sess := NewSession(decoder)
	if err := sess.Start(NewImageSource(img)); err != nil {
		return "", err
	}
	var text string
	if err := sess.Run(ctx, func(t string) { text = t }); err != nil {
		return "", err
	}
	return text, nil
}

// Camera is a live browser-camera session.
type Camera struct {
	ID      string
	session *Session
	frames  *FrameSource
	cancel  context.CancelFunc
}

// Status is what the browser polls after each frame.
type Status struct {
	ID    string `json:"id"`
	State string `json:"state"`
	Text  string `json:"text,omitempty"`
}

func (c *Camera) Status() Status {
	return Status{ID: c.ID, State: c.session.State().String(), Text: c.session.Text()}
}

func (c *Camera) stop() {
	c.cancel()
	c.session.Stop()
}

// Registry keeps camera sessions alive between frame uploads. Sessions that see no
// frame for the TTL are evicted and their source released.
type Registry struct {
	decoder Decoder
	cache   *cache.Cache
}

func NewRegistry(decoder Decoder, ttl time.Duration) *Registry {
	c := cache.New(ttl, ttl)
	c.OnEvicted(func(id string, v interface{}) {
		if cam, ok := v.(*Camera); ok {
			log.Debugf("scan session %s released", id)
			cam.stop()
		}
	})
	return &Registry{decoder: decoder, cache: c}
}

// Open starts a camera session decoding in the background.
func (r *Registry) Open() (*Camera, error) {
	frames := NewFrameSource()
	sess := NewSession(r.decoder)
	if err := sess.Start(frames); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	cam := &Camera{
		ID:      uuid.NewString(),
		session: sess,
		frames:  frames,
		cancel:  cancel,
	}
	go func() {
		err := sess.Run(ctx, func(text string) {
			log.Debugf("scan session %s decoded %q", cam.ID, text)
		})
		if err != nil && !errors.Is(err, ErrClosed) && !errors.Is(err, context.Canceled) {
			log.WithError(err).Debugf("scan session %s ended", cam.ID)
		}
	}()

	r.cache.SetDefault(cam.ID, cam)
	return cam, nil
}

// Feed hands one camera frame to session id and refreshes its expiry.
func (r *Registry) Feed(id string, img image.Image) (Status, error) {
	cam, err := r.get(id)
	if err != nil {
		return Status{}, err
	}
	r.cache.SetDefault(id, cam)

	if cam.session.State() == Scanning {
		if _, err := cam.frames.Push(img); err != nil && !errors.Is(err, ErrClosed) {
			return Status{}, err
		}
	}
	return cam.Status(), nil
}

func (r *Registry) Status(id string) (Status, error) {
	cam, err := r.get(id)
	if err != nil {
		return Status{}, err
	}
	return cam.Status(), nil
}

// Close releases session id. Closing an unknown session is not an error.
func (r *Registry) Close(id string) {
	r.cache.Delete(id)
}

func (r *Registry) Len() int { return r.cache.ItemCount() }

func (r *Registry) get(id string) (*Camera, error) {
	v, ok := r.cache.Get(id)
	if !ok {
		return nil, ErrUnknownSession
	}
	return v.(*Camera), nil
}
