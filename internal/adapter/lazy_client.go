package adapter

import (
	"sync"

	"github.com/MKhiriev/go-tool-access/internal/utils"
)

// lazyClient defers building the outbound HTTP client until the first call
// that needs it. The build runs exactly once; its result, error included, is
// shared by every later caller.
type lazyClient struct {
	once   sync.Once
	build  func() (*utils.HTTPClient, error)
	client *utils.HTTPClient
	err    error
}

func newLazyClient(build func() (*utils.HTTPClient, error)) *lazyClient {
	return &lazyClient{build: build}
}

func (l *lazyClient) get() (*utils.HTTPClient, error) {
	l.once.Do(func() {
		l.client, l.err = l.build()
	})
	return l.client, l.err
}
