package deliverable

import (
	"encoding/base64"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReleaseGrace is how long a staged blob stays addressable after Stage
// returns. The open action returns immediately while the member's new
// tab fetches the blob afterwards, so release has to lag the return.
const ReleaseGrace = 60 * time.Second

// ErrBadDataURL is returned when a stored payload is not a decodable
// base64 data URL.
var ErrBadDataURL = errors.New("deliverable: malformed data URL payload")

type blob struct {
	data []byte
	mime string
}

// Registry stages decoded payloads under single-use tokens and
// reclaims them after the grace period. It is safe for concurrent use.
type Registry struct {
	mu    sync.Mutex
	blobs map[string]blob
	grace time.Duration
	log   *zap.Logger

	// after is swappable in tests; production uses time.AfterFunc.
	after func(d time.Duration, f func()) *time.Timer
}

// NewRegistry creates an empty registry with the standard grace period.
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		blobs: make(map[string]blob),
		grace: ReleaseGrace,
		log:   logger,
		after: time.AfterFunc,
	}
}

// Stage decodes a base64 data URL ("data:<mime>;base64,<payload>"),
// parks the bytes under a fresh token, and schedules their release
// after the grace period. It returns the token addressing the blob.
func (g *Registry) Stage(dataURL string) (string, error) {
	mime, data, err := decodeDataURL(dataURL)
	if err != nil {
		return "", err
	}

	token := uuid.NewString()
	g.mu.Lock()
	g.blobs[token] = blob{data: data, mime: mime}
	g.mu.Unlock()

	g.after(g.grace, func() { g.release(token) })
	return token, nil
}

// Fetch returns the staged bytes and MIME type for a token. A token
// that was already released (or never existed) reports false.
func (g *Registry) Fetch(token string) ([]byte, string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	b, ok := g.blobs[token]
	if !ok {
		return nil, "", false
	}
	return b.data, b.mime, true
}

func (g *Registry) release(token string) {
	g.mu.Lock()
	_, ok := g.blobs[token]
	delete(g.blobs, token)
	g.mu.Unlock()
	if ok && g.log != nil {
		g.log.Debug("released staged blob", zap.String("token", token))
	}
}

// decodeDataURL splits "data:<mime>;base64,<payload>" and decodes the
// payload. Payloads without a data: header are accepted as raw base64
// with an empty MIME type.
func decodeDataURL(dataURL string) (string, []byte, error) {
	payload := dataURL
	mime := ""

	if strings.HasPrefix(dataURL, "data:") {
		head, rest, found := strings.Cut(dataURL, ",")
		if !found {
			return "", nil, ErrBadDataURL
		}
		payload = rest
		mime = strings.TrimPrefix(head, "data:")
		mime = strings.TrimSuffix(mime, ";base64")
		if i := strings.IndexByte(mime, ';'); i >= 0 {
			mime = mime[:i]
		}
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, ErrBadDataURL
	}
	return mime, data, nil
}
